package validation

import (
	"slices"
	"strconv"
	"strings"
)

// Input exposes the fields that passed validation.
type Input struct {
	values map[string][]string
}

// Has reports whether field was present in the request.
func (in Input) Has(field string) bool {
	_, ok := in.values[field]
	return ok
}

// String returns the single value of field, or def when absent.
func (in Input) String(field, def string) string {
	values, ok := in.values[field]
	if !ok || len(values) == 0 {
		return def
	}
	return values[0]
}

// IDs returns the identifiers of field, or def when absent.
func (in Input) IDs(field string, def []string) []string {
	values, ok := in.values[field]
	if !ok {
		return def
	}
	return slices.Clone(values)
}

// Int returns the integer value of field, or def when absent.
func (in Input) Int(field string, def int) int {
	raw := strings.TrimSpace(in.String(field, ""))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
