package realtime

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/solhub/admin-api/internal/model"
)

func lab(id uuid.UUID, status string, createdAt time.Time) model.Laboratory {
	return model.Laboratory{ID: id, Status: status, CreatedAt: createdAt}
}

func insertEvent(l model.Laboratory) model.ChangeEvent {
	return model.ChangeEvent{Kind: model.ChangeInsert, Table: "laboratories", Record: l}
}

func updateEvent(l model.Laboratory) model.ChangeEvent {
	return model.ChangeEvent{Kind: model.ChangeUpdate, Table: "laboratories", Record: l}
}

func deleteEvent(id uuid.UUID) model.ChangeEvent {
	return model.ChangeEvent{Kind: model.ChangeDelete, Table: "laboratories", Record: model.Laboratory{ID: id}}
}

func ids(labs []model.Laboratory) []uuid.UUID {
	out := make([]uuid.UUID, len(labs))
	for i, l := range labs {
		out[i] = l.ID
	}
	return out
}

func TestReconciler_InsertIdempotence(t *testing.T) {
	r := NewReconciler(StatusFilter(model.StatusActive))
	a := lab(uuid.New(), model.StatusActive, time.Now())

	r.Apply(insertEvent(a))
	once := r.Snapshot()
	r.Apply(insertEvent(a))

	assert.Equal(t, once, r.Snapshot())
	assert.Equal(t, 1, r.Len())
}

func TestReconciler_InsertRespectsFilter(t *testing.T) {
	r := NewReconciler(StatusFilter(model.StatusActive))

	r.Apply(insertEvent(lab(uuid.New(), model.StatusInactive, time.Now())))

	assert.Equal(t, 0, r.Len())
}

func TestReconciler_UpdateRemovesNonMatching(t *testing.T) {
	// filter = active; initial list = [{id:1,status:active}];
	// update({id:1,status:inactive}) -> list = [].
	r := NewReconciler(StatusFilter(model.StatusActive))
	a := lab(uuid.New(), model.StatusActive, time.Now())
	r.Reset([]model.Laboratory{a})

	a.Status = model.StatusInactive
	r.Apply(updateEvent(a))

	assert.Empty(t, r.Snapshot())
}

func TestReconciler_UpdateInsertsNewlyMatching(t *testing.T) {
	r := NewReconciler(StatusFilter(model.StatusActive))
	a := lab(uuid.New(), model.StatusTrial, time.Now())
	r.Apply(insertEvent(a))
	assert.Equal(t, 0, r.Len())

	// The update itself makes the record match.
	a.Status = model.StatusActive
	r.Apply(updateEvent(a))

	assert.Equal(t, []uuid.UUID{a.ID}, ids(r.Snapshot()))
}

func TestReconciler_UpdateReplacesInPlace(t *testing.T) {
	r := NewReconciler(StatusFilter(model.StatusActive))
	a := lab(uuid.New(), model.StatusActive, time.Now())
	r.Reset([]model.Laboratory{a})

	a.Name = "Renamed"
	r.Apply(updateEvent(a))

	snap := r.Snapshot()
	assert.Equal(t, 1, len(snap))
	assert.Equal(t, "Renamed", snap[0].Name)
}

func TestReconciler_OrderingScenario(t *testing.T) {
	// [insert(A non-matching), update(A still non-matching), insert(B)]
	// under filter status=active: A absent, B present if it matches.
	r := NewReconciler(StatusFilter(model.StatusActive))
	a := lab(uuid.New(), model.StatusInactive, time.Now())
	b := lab(uuid.New(), model.StatusActive, time.Now().Add(time.Second))

	r.Apply(insertEvent(a))
	a.Name = "still hidden"
	r.Apply(updateEvent(a))
	r.Apply(insertEvent(b))

	assert.Equal(t, []uuid.UUID{b.ID}, ids(r.Snapshot()))
}

func TestReconciler_DeleteRemovesUnconditionally(t *testing.T) {
	r := NewReconciler(StatusFilter(""))
	a := lab(uuid.New(), model.StatusActive, time.Now())
	r.Reset([]model.Laboratory{a})

	r.Apply(deleteEvent(a.ID))
	r.Apply(deleteEvent(a.ID)) // second delivery is a no-op

	assert.Empty(t, r.Snapshot())
}

func TestReconciler_SortsByCreationDescending(t *testing.T) {
	r := NewReconciler(StatusFilter(""))
	now := time.Now()
	oldest := lab(uuid.New(), model.StatusActive, now.Add(-2*time.Hour))
	middle := lab(uuid.New(), model.StatusActive, now.Add(-time.Hour))
	newest := lab(uuid.New(), model.StatusActive, now)

	r.Apply(insertEvent(middle))
	r.Apply(insertEvent(oldest))
	r.Apply(insertEvent(newest))

	assert.Equal(t, []uuid.UUID{newest.ID, middle.ID, oldest.ID}, ids(r.Snapshot()))
}

func TestReconciler_FilterReadAtEventTime(t *testing.T) {
	r := NewReconciler(StatusFilter(model.StatusActive))
	a := lab(uuid.New(), model.StatusTrial, time.Now())

	r.Apply(insertEvent(a))
	assert.Equal(t, 0, r.Len())

	// Swapping the filter must affect the very next event without any
	// resubscription.
	r.SetFilter(StatusFilter(model.StatusTrial))
	b := lab(uuid.New(), model.StatusTrial, time.Now())
	r.Apply(insertEvent(b))

	assert.Equal(t, []uuid.UUID{b.ID}, ids(r.Snapshot()))
}

func TestReconciler_DiscardsEventWithoutID(t *testing.T) {
	r := NewReconciler(StatusFilter(""))

	r.Apply(model.ChangeEvent{Kind: model.ChangeInsert, Table: "laboratories"})

	assert.Equal(t, 0, r.Len())
}

func TestReconciler_ResetAppliesFilter(t *testing.T) {
	r := NewReconciler(StatusFilter(model.StatusActive))

	r.Reset([]model.Laboratory{
		lab(uuid.New(), model.StatusActive, time.Now()),
		lab(uuid.New(), model.StatusInactive, time.Now()),
	})

	assert.Equal(t, 1, r.Len())
}
