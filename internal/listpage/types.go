// Package listpage assembles administration list pages: it checks access, validates
// the request, keeps per-user sort, filter and pager state, fetches rows and turns
// them into a page view-model.
package listpage

import (
	"slices"

	"github.com/noah-isme/monitoring-admin-api/internal/preference"
)

// SortOrder is the direction of a list sort.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// SortSpec is the field and direction a list is sorted by.
type SortSpec struct {
	Field string    `json:"sort"`
	Order SortOrder `json:"sortorder"`
}

// CompareKind selects the comparator of a sort field.
type CompareKind int

const (
	// CompareNatural orders strings case-insensitively with embedded numbers
	// compared by value.
	CompareNatural CompareKind = iota
	CompareString
	CompareNumeric
)

// SortField describes how rows are ordered by one field.
type SortField[R any] struct {
	Kind  CompareKind
	Value func(R) string
}

// FilterField is a filter input persisted in the user's preferences.
type FilterField struct {
	// Name is the request field and the preference key suffix.
	Name    string
	List    bool
	Type    preference.ValueType
	Default string
}

// FilterState is the current filter of a list page.
type FilterState struct {
	scalars map[string]string
	lists   map[string][]string
}

// NewFilterState builds a FilterState from explicit values.
func NewFilterState(scalars map[string]string, lists map[string][]string) FilterState {
	if scalars == nil {
		scalars = map[string]string{}
	}
	if lists == nil {
		lists = map[string][]string{}
	}
	return FilterState{scalars: scalars, lists: lists}
}

// String returns the scalar filter value of name.
func (f FilterState) String(name string) string {
	return f.scalars[name]
}

// List returns the list filter value of name. It is never nil.
func (f FilterState) List(name string) []string {
	values := f.lists[name]
	if values == nil {
		return []string{}
	}
	return slices.Clone(values)
}

// Pager describes the page shown and the rows around it.
type Pager struct {
	Page      int `json:"page"`
	PageSize  int `json:"page_size"`
	PageCount int `json:"page_count"`
	// Total is the number of rows shown across all pages. When LimitExceeded is
	// set the real number of matches is larger.
	Total         int  `json:"total"`
	LimitExceeded bool `json:"limit_exceeded"`
	HasPrevious   bool `json:"has_previous"`
	HasNext       bool `json:"has_next"`
}
