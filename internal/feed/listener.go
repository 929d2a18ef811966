// Package feed delivers row-level insert/update/delete notifications
// for the expenses table to per-user subscribers. The database raises
// them via pg_notify from a trigger; one listener connection fans them
// out.
package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/metrics"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/models"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/worker"
	"github.com/jackc/pgx/v5/pgxpool"
)

const channelName = "expense_changes"

type Listener struct {
	pool *pgxpool.Pool
	wp   *worker.Pool
	log  *slog.Logger

	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
}

func NewListener(pool *pgxpool.Pool, wp *worker.Pool, log *slog.Logger) *Listener {
	return &Listener{
		pool: pool,
		wp:   wp,
		log:  log,
		subs: make(map[string]map[*Subscription]struct{}),
	}
}

// Subscription is a handle on one user's slice of the change feed. It
// lives for as long as the user is active on a view; Close releases the
// channel and must always be called (it is also tied to the subscribe
// context, so a canceled request cleans up on its own).
type Subscription struct {
	userID string
	ch     chan models.ChangeEvent
	l      *Listener

	mu     sync.Mutex
	closed bool
}

func (s *Subscription) Events() <-chan models.ChangeEvent { return s.ch }

func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.ch)
	s.mu.Unlock()

	s.l.mu.Lock()
	if set, ok := s.l.subs[s.userID]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(s.l.subs, s.userID)
		}
	}
	s.l.mu.Unlock()
}

func (s *Subscription) send(ev models.ChangeEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- ev:
		return true
	default:
		return false
	}
}

// Subscribe registers for the user's expense changes until ctx is done.
func (l *Listener) Subscribe(ctx context.Context, userID string) *Subscription {
	sub := &Subscription{
		userID: userID,
		ch:     make(chan models.ChangeEvent, 16),
		l:      l,
	}
	l.mu.Lock()
	if l.subs[userID] == nil {
		l.subs[userID] = make(map[*Subscription]struct{})
	}
	l.subs[userID][sub] = struct{}{}
	l.mu.Unlock()

	go func() {
		<-ctx.Done()
		sub.Close()
	}()
	return sub
}

// Run blocks listening for notifications until ctx is canceled,
// reconnecting with a short delay after connection failures.
func (l *Listener) Run(ctx context.Context) {
	for ctx.Err() == nil {
		if err := l.listen(ctx); err != nil && ctx.Err() == nil {
			l.log.Error("change feed listener", "err", err)
			select {
			case <-time.After(2 * time.Second):
			case <-ctx.Done():
			}
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+channelName); err != nil {
		return err
	}
	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		var ev models.ChangeEvent
		if err := json.Unmarshal([]byte(n.Payload), &ev); err != nil {
			l.log.Warn("bad change feed payload", "err", err)
			continue
		}
		l.dispatch(ev)
	}
}

func (l *Listener) dispatch(ev models.ChangeEvent) {
	metrics.FeedEvents.WithLabelValues(string(ev.Op)).Inc()

	l.mu.Lock()
	targets := make([]*Subscription, 0, len(l.subs[ev.Row.UserID]))
	for sub := range l.subs[ev.Row.UserID] {
		targets = append(targets, sub)
	}
	l.mu.Unlock()

	for _, sub := range targets {
		sub := sub
		l.wp.Submit(func() {
			// drop rather than block the pool on a slow consumer
			if !sub.send(ev) {
				l.log.Warn("change feed event dropped", "user_id", sub.userID)
			}
		})
	}
}
