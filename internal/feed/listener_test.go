package feed

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/models"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/worker"
)

func newTestListener(t *testing.T) (*Listener, *worker.Pool) {
	t.Helper()
	wp := worker.NewPool(1)
	t.Cleanup(wp.Stop)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewListener(nil, wp, log), wp
}

func (l *Listener) subCount(userID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs[userID])
}

func TestSubscribeRegistersAndCloseReleases(t *testing.T) {
	l, _ := newTestListener(t)

	sub := l.Subscribe(context.Background(), "u1")
	assert.Equal(t, 1, l.subCount("u1"))

	sub.Close()
	assert.Equal(t, 0, l.subCount("u1"))

	_, open := <-sub.Events()
	assert.False(t, open, "events channel must be closed after Close")
}

func TestSubscribeContextCancelTearsDown(t *testing.T) {
	l, _ := newTestListener(t)

	ctx, cancel := context.WithCancel(context.Background())
	sub := l.Subscribe(ctx, "u1")
	require.Equal(t, 1, l.subCount("u1"))

	cancel()
	require.Eventually(t, func() bool { return l.subCount("u1") == 0 },
		time.Second, 10*time.Millisecond, "canceled context must release the subscription")

	_, open := <-sub.Events()
	assert.False(t, open)
}

func TestCloseIsIdempotent(t *testing.T) {
	l, _ := newTestListener(t)

	sub := l.Subscribe(context.Background(), "u1")
	sub.Close()
	assert.NotPanics(t, sub.Close)
}

func TestDispatchRoutesToSubscribedUserOnly(t *testing.T) {
	l, _ := newTestListener(t)

	subA := l.Subscribe(context.Background(), "u1")
	defer subA.Close()
	subB := l.Subscribe(context.Background(), "u2")
	defer subB.Close()

	ev := models.ChangeEvent{Op: models.ChangeInsert, Row: models.Expense{ID: "e1", UserID: "u1"}}
	l.dispatch(ev)

	select {
	case got := <-subA.Events():
		assert.Equal(t, "e1", got.Row.ID)
	case <-time.After(time.Second):
		t.Fatal("subscribed user never received the event")
	}

	select {
	case got := <-subB.Events():
		t.Fatalf("event for u1 leaked to u2: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDispatchAfterCloseDoesNotPanic(t *testing.T) {
	l, _ := newTestListener(t)

	sub := l.Subscribe(context.Background(), "u1")
	sub.Close()

	ev := models.ChangeEvent{Op: models.ChangeInsert, Row: models.Expense{ID: "e1", UserID: "u1"}}
	assert.NotPanics(t, func() { l.dispatch(ev) })

	// give the worker a beat; a send to the closed channel would panic
	// the pool goroutine and fail the test
	time.Sleep(50 * time.Millisecond)
}
