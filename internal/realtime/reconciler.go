package realtime

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/solhub/admin-api/internal/model"
	"github.com/solhub/admin-api/internal/monitoring"
)

// Filter decides whether a laboratory belongs in the reconciled list.
type Filter func(model.Laboratory) bool

// StatusFilter matches laboratories by status; an empty status matches all.
func StatusFilter(status string) Filter {
	return func(lab model.Laboratory) bool {
		return status == "" || lab.Status == status
	}
}

// Reconciler keeps a cached laboratory list consistent with an ordered
// stream of change events. The list stays sorted by creation time
// descending. The filter is consulted at event-handling time, so swapping
// it never requires resubscribing to the feed.
type Reconciler struct {
	mu     sync.Mutex
	filter Filter
	items  []model.Laboratory
}

func NewReconciler(filter Filter) *Reconciler {
	if filter == nil {
		filter = func(model.Laboratory) bool { return true }
	}
	return &Reconciler{filter: filter}
}

// SetFilter swaps the live predicate. Events already applied are not
// re-evaluated; callers reload the snapshot when the view changes.
func (r *Reconciler) SetFilter(filter Filter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filter = filter
}

// Reset replaces the cached list with a fresh snapshot, keeping only
// records matching the current filter.
func (r *Reconciler) Reset(labs []model.Laboratory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = r.items[:0]
	for _, lab := range labs {
		if r.filter(lab) {
			r.items = append(r.items, lab)
		}
	}
	r.resort()
}

// Snapshot returns a copy of the current list.
func (r *Reconciler) Snapshot() []model.Laboratory {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Laboratory, len(r.items))
	copy(out, r.items)
	return out
}

// Len returns the current list length.
func (r *Reconciler) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Apply folds one change event into the list. Events are applied strictly
// in arrival order; events without a record ID are discarded and logged.
func (r *Reconciler) Apply(ev model.ChangeEvent) {
	if ev.Record.ID == uuid.Nil {
		monitoring.FeedDropped.Inc()
		log.Warn().Str("kind", string(ev.Kind)).Msg("Discarding change event without record id")
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.index(ev.Record.ID)
	switch ev.Kind {
	case model.ChangeInsert:
		// Duplicate delivery of the same insert is a no-op.
		if idx >= 0 {
			return
		}
		if r.filter(ev.Record) {
			r.items = append(r.items, ev.Record)
			r.resort()
		}
	case model.ChangeUpdate:
		matches := r.filter(ev.Record)
		switch {
		case idx >= 0 && matches:
			r.items[idx] = ev.Record
		case idx >= 0 && !matches:
			r.items = append(r.items[:idx], r.items[idx+1:]...)
		case idx < 0 && matches:
			// The update itself made the record match the filter.
			r.items = append(r.items, ev.Record)
			r.resort()
		}
	case model.ChangeDelete:
		if idx >= 0 {
			r.items = append(r.items[:idx], r.items[idx+1:]...)
		}
	default:
		monitoring.FeedDropped.Inc()
		log.Warn().Str("kind", string(ev.Kind)).Msg("Discarding change event of unknown kind")
		return
	}
	monitoring.FeedEvents.WithLabelValues(string(ev.Kind)).Inc()
}

func (r *Reconciler) index(id uuid.UUID) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Reconciler) resort() {
	sort.SliceStable(r.items, func(i, j int) bool {
		return r.items[i].CreatedAt.After(r.items[j].CreatedAt)
	})
}
