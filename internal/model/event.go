package model

// ChangeKind identifies which table mutation produced a change event.
type ChangeKind string

const (
	ChangeInsert ChangeKind = "insert"
	ChangeUpdate ChangeKind = "update"
	ChangeDelete ChangeKind = "delete"
)

// ChangeEvent is one row-level mutation notification on the change feed.
// Delete events carry only the record ID.
type ChangeEvent struct {
	Kind   ChangeKind `json:"kind"`
	Table  string     `json:"table"`
	Record Laboratory `json:"record"`
}
