package diagnostics

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwellpress/inkwell-backend/pkg/db/models"
)

// Prober is the low-level database surface the diagnostics report
// exercises. Kept narrow so tests can fake it.
type Prober interface {
	Ping(ctx context.Context) error
	TableExists(ctx context.Context, table string) (bool, error)
	InsertProbe(ctx context.Context) (string, error)
	DeleteProbe(ctx context.Context, id string) error
}

type gormProber struct {
	conn   *gorm.DB
	pinger interface {
		Ping(ctx context.Context) error
	}
}

// NewProber builds a prober on top of the shared GORM connection.
func NewProber(conn *gorm.DB, pinger interface {
	Ping(ctx context.Context) error
}) Prober {
	return &gormProber{conn: conn, pinger: pinger}
}

func (p *gormProber) Ping(ctx context.Context) error {
	return p.pinger.Ping(ctx)
}

func (p *gormProber) TableExists(ctx context.Context, table string) (bool, error) {
	return p.conn.WithContext(ctx).Migrator().HasTable(table), nil
}

// InsertProbe writes a marker row into contact_messages and returns its id
// so the caller can clean it up.
func (p *gormProber) InsertProbe(ctx context.Context) (string, error) {
	row := &models.ContactMessage{
		ID:      uuid.New(),
		Name:    "diagnostics",
		Email:   "diagnostics@internal",
		Subject: probeSubject,
		Message: "connectivity probe",
	}
	if err := p.conn.WithContext(ctx).Create(row).Error; err != nil {
		return "", err
	}
	return row.ID.String(), nil
}

func (p *gormProber) DeleteProbe(ctx context.Context, id string) error {
	return p.conn.WithContext(ctx).
		Delete(&models.ContactMessage{}, "id = ?", id).Error
}

const probeSubject = "__diagnostics_probe__"
