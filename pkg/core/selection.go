package core

import (
	"golang.org/x/exp/constraints"
)

// AllSites is the site selection sentinel matching every launch site
const AllSites = "ALL"

// Bounds is an inclusive range of ordered values
type Bounds[T constraints.Ordered] struct {
	Min T `json:"min"`
	Max T `json:"max"`
}

// Contains reports whether v lies within the inclusive range
func (b Bounds[T]) Contains(v T) bool {
	return b.Min <= v && v <= b.Max
}

// Normalize returns the range with its bounds in ascending order
func (b Bounds[T]) Normalize() Bounds[T] {
	if b.Min > b.Max {
		return Bounds[T]{Min: b.Max, Max: b.Min}
	}
	return b
}

// PayloadRange is an inclusive payload mass range in kilograms
type PayloadRange = Bounds[float64]

// Selection is the state of the dashboard controls for one recompute
type Selection struct {
	Site    string       `json:"site"`
	Payload PayloadRange `json:"payload"`
}

// Filters returns the record predicates described by the selection
func (s Selection) Filters() []RecordFilter {
	return []RecordFilter{WithSite(s.Site), WithPayloadIn(s.Payload)}
}
