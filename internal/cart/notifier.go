package cart

import (
	"context"

	"github.com/inkwellpress/inkwell-backend/pkg/logger"
)

// Notifier receives an acknowledgment for every successful AddItem. It fires
// for adds only, never for remove/update/clear, and must not block the
// mutation path; implementations that fail just lose the acknowledgment.
type Notifier interface {
	ItemAdded(ctx context.Context, sessionID, title string)
}

// LogNotifier emits the add acknowledgment as a structured log line.
type LogNotifier struct {
	logg *logger.Logger
}

// NewLogNotifier wires the acknowledgment channel onto the shared logger.
func NewLogNotifier(logg *logger.Logger) *LogNotifier {
	return &LogNotifier{logg: logg}
}

func (n *LogNotifier) ItemAdded(ctx context.Context, sessionID, title string) {
	if n == nil || n.logg == nil {
		return
	}
	ctx = n.logg.WithFields(ctx, map[string]any{
		"cart_session": sessionID,
		"title":        title,
	})
	n.logg.Info(ctx, "cart.item_added")
}
