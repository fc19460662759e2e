package realtime

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/solhub/admin-api/internal/store"
)

// Watcher ties a Reconciler to the laboratory change feed: it loads an
// initial snapshot, then applies feed events in delivery order on a single
// goroutine until Stop is called.
type Watcher struct {
	rec  *Reconciler
	sub  *store.ChangeSubscription
	done chan struct{}
}

// Start opens the subscription before loading the snapshot, so a mutation
// racing the initial query is still observed (insert idempotence absorbs
// the overlap).
func Start(ctx context.Context, labs *store.LaboratoryRepository, st *store.Store, status string) (*Watcher, error) {
	rec := NewReconciler(StatusFilter(status))
	sub := st.SubscribeChanges(ctx, store.TableLaboratories)

	snapshot, err := labs.List(ctx, "")
	if err != nil {
		sub.Close()
		return nil, err
	}
	rec.Reset(snapshot)

	w := &Watcher{rec: rec, sub: sub, done: make(chan struct{})}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)
	for ev := range w.sub.Events() {
		w.rec.Apply(ev)
	}
	log.Info().Msg("Change feed subscription closed")
}

// Reconciler exposes the reconciled list for the console's list view.
func (w *Watcher) Reconciler() *Reconciler {
	return w.rec
}

// Stop tears down the subscription and waits for the event loop to drain.
func (w *Watcher) Stop() {
	if err := w.sub.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close change feed subscription")
	}
	<-w.done
}
