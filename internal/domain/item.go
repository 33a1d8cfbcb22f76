package domain

import "time"

// Item is a single listing observed on a marketplace source.
// (Source, ID) is the deduplication identity and must be stable
// across polls of the same listing.
type Item struct {
	Source    string
	ID        string
	Title     string
	Price     *float64 // nil means unknown
	CreatedAt time.Time
	URL       string
}

// HasIdentity reports whether the item carries the (source, id) pair
// required for deduplication.
func (i Item) HasIdentity() bool {
	return i.Source != "" && i.ID != ""
}

// Alert pairs a listing with the excitation that cleared the
// notification threshold.
type Alert struct {
	Item       Item
	Excitation float64
}
