package diagnostics

import (
	"sort"

	"github.com/Happy-Ferret/futhark/internal/token"
)

// Warning is a non-fatal diagnostic. Warnings accumulate monotonically and
// are always surfaced, even when generation elsewhere succeeds.
type Warning struct {
	Token   token.Token
	Message string
}

// Warnings is an append-only collection ordered by source position on
// retrieval. Duplicate messages at distinct locations are kept distinct.
type Warnings struct {
	list []Warning
}

func NewWarnings() *Warnings {
	return &Warnings{}
}

func (w *Warnings) Add(tok token.Token, message string) {
	w.list = append(w.list, Warning{Token: tok, Message: message})
}

func (w *Warnings) Len() int {
	return len(w.list)
}

// Sorted returns the warnings in source-position order. Warnings at the same
// position keep their accumulation order.
func (w *Warnings) Sorted() []Warning {
	out := make([]Warning, len(w.list))
	copy(out, w.list)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Token.Line != out[j].Token.Line {
			return out[i].Token.Line < out[j].Token.Line
		}
		return out[i].Token.Column < out[j].Token.Column
	})
	return out
}
