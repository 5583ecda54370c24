package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/inkwellpress/inkwell-backend/pkg/errors"
	"github.com/inkwellpress/inkwell-backend/pkg/logger"
)

// View is the read model handed back after every operation.
type View struct {
	Lines      []Line          `json:"lines"`
	Open       bool            `json:"is_open"`
	ItemCount  int             `json:"total_item_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Service owns the per-session cart state. Each session is hydrated from the
// snapshot store once, mutated in memory for the life of the session, and
// mirrored back to the store after every mutation.
type Service interface {
	Get(ctx context.Context, sessionID string) (*View, error)
	AddItem(ctx context.Context, sessionID string, item Line, quantity int) (*View, error)
	UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*View, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (*View, error)
	Clear(ctx context.Context, sessionID string) (*View, error)
	SetOpen(ctx context.Context, sessionID string, open bool) (*View, error)
}

type session struct {
	mu    sync.Mutex
	state *State
}

type service struct {
	mu       sync.Mutex
	sessions map[string]*session

	snapshots SnapshotStore
	notifier  Notifier
	logg      *logger.Logger
}

// NewService builds the cart service backed by the provided snapshot store.
func NewService(snapshots SnapshotStore, notifier Notifier, logg *logger.Logger) (Service, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	return &service{
		sessions:  map[string]*session{},
		snapshots: snapshots,
		notifier:  notifier,
		logg:      logg,
	}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*View, error) {
	return s.withSession(ctx, sessionID, func(ctx context.Context, st *State) {})
}

func (s *service) AddItem(ctx context.Context, sessionID string, item Line, quantity int) (*View, error) {
	if item.ItemID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if quantity < 1 {
		// non-positive adds are a caller mistake; clamp rather than fail
		quantity = 1
	}

	view, err := s.withSession(ctx, sessionID, func(ctx context.Context, st *State) {
		st.AddItem(item, quantity)
		s.persist(ctx, sessionID, st)
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		// fire-and-forget: the acknowledgment never blocks the mutation path
		go s.notifier.ItemAdded(context.WithoutCancel(ctx), sessionID, item.Title)
	}
	return view, nil
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*View, error) {
	if itemID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	return s.withSession(ctx, sessionID, func(ctx context.Context, st *State) {
		st.SetQuantity(itemID, quantity)
		s.persist(ctx, sessionID, st)
	})
}

func (s *service) RemoveItem(ctx context.Context, sessionID, itemID string) (*View, error) {
	if itemID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	return s.withSession(ctx, sessionID, func(ctx context.Context, st *State) {
		st.Remove(itemID)
		s.persist(ctx, sessionID, st)
	})
}

func (s *service) Clear(ctx context.Context, sessionID string) (*View, error) {
	return s.withSession(ctx, sessionID, func(ctx context.Context, st *State) {
		st.Clear()
		s.persist(ctx, sessionID, st)
	})
}

func (s *service) SetOpen(ctx context.Context, sessionID string, open bool) (*View, error) {
	// visibility is per-session UI state and is never persisted
	return s.withSession(ctx, sessionID, func(ctx context.Context, st *State) {
		st.SetOpen(open)
	})
}

// withSession runs fn with exclusive access to the session's state, hydrating
// it from the snapshot store on first touch.
func (s *service) withSession(ctx context.Context, sessionID string, fn func(ctx context.Context, st *State)) (*View, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart session id is required")
	}

	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state == nil {
		sess.state = s.hydrate(ctx, sessionID)
	}

	fn(ctx, sess.state)
	return newView(sess.state), nil
}

func (s *service) session(sessionID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{}
		s.sessions[sessionID] = sess
	}
	return sess
}

func (s *service) hydrate(ctx context.Context, sessionID string) *State {
	lines, err := s.snapshots.Load(ctx, sessionID)
	if err != nil {
		// an unreachable store degrades to an empty cart, not a failure
		if s.logg != nil {
			s.logg.Error(ctx, "cart.hydrate_failed", err)
		}
		return NewState()
	}
	return Hydrate(lines)
}

// persist mirrors the in-memory lines to the snapshot store, strictly after
// the state transition. A failed write leaves durable state one mutation
// behind, which is the accepted data-loss envelope; it never fails the caller.
func (s *service) persist(ctx context.Context, sessionID string, st *State) {
	if err := s.snapshots.Save(ctx, sessionID, st.Lines()); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "cart.persist_failed", err)
		}
	}
}

func newView(st *State) *View {
	totals := st.Totals()
	return &View{
		Lines:      st.Lines(),
		Open:       st.IsOpen(),
		ItemCount:  totals.ItemCount,
		TotalPrice: totals.TotalPrice,
	}
}
