package feed

import (
	"sync"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/models"
)

// View is the in-memory ledger a session keeps in sync with the change
// feed. The record id is the single source of truth for deduplication:
// an insert notification for an id already present (the echo of a local
// optimistic insert) is a no-op.
type View struct {
	mu      sync.RWMutex
	entries []models.Expense // newest first
}

func NewView() *View { return &View{} }

// Seed replaces the view contents with an authoritative listing.
func (v *View) Seed(expenses []models.Expense) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries = append(v.entries[:0], expenses...)
}

// Apply folds one feed event into the view and reports whether it
// changed anything. A duplicate insert echo reports false.
func (v *View) Apply(ev models.ChangeEvent) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch ev.Op {
	case models.ChangeInsert:
		for _, e := range v.entries {
			if e.ID == ev.Row.ID {
				return false
			}
		}
		v.entries = append([]models.Expense{ev.Row}, v.entries...)
		return true
	case models.ChangeUpdate:
		for i, e := range v.entries {
			if e.ID == ev.Row.ID {
				v.entries[i] = ev.Row
				return true
			}
		}
	case models.ChangeDelete:
		for i, e := range v.entries {
			if e.ID == ev.Row.ID {
				v.entries = append(v.entries[:i], v.entries[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Snapshot returns a copy of the current entries, newest first.
func (v *View) Snapshot() []models.Expense {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]models.Expense, len(v.entries))
	copy(out, v.entries)
	return out
}

func (v *View) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.entries)
}
