package models

// LabelKind selects one of the two purchase reference lists.
type LabelKind string

const (
	LabelType  LabelKind = "type"
	LabelClass LabelKind = "classe"
)

func (k LabelKind) Valid() bool {
	return k == LabelType || k == LabelClass
}

// Label is a lower-cased entry of a reference list.
type Label struct {
	ID   int       `json:"id"`
	Kind LabelKind `json:"kind"`
	Name string    `json:"name"`
}

type CreateLabelRequest struct {
	Name string `json:"name"`
}
