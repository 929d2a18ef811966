package models

type ChangeOp string

const (
	ChangeInsert ChangeOp = "INSERT"
	ChangeUpdate ChangeOp = "UPDATE"
	ChangeDelete ChangeOp = "DELETE"
)

// ChangeEvent is one row-level notification from the expenses change
// feed. Row is populated for inserts and updates, only Row.ID is
// meaningful for deletes.
type ChangeEvent struct {
	Op  ChangeOp `json:"op"`
	Row Expense  `json:"row"`
}
