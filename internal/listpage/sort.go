package listpage

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortRows sorts rows in place by field. Rows with equal keys keep their order.
func SortRows[R any](rows []R, field SortField[R], order SortOrder) {
	compare := comparator(field.Kind)
	slices.SortStableFunc(rows, func(a, b R) int {
		c := compare(field.Value(a), field.Value(b))
		if order == SortDesc {
			return -c
		}
		return c
	})
}

func comparator(kind CompareKind) func(a, b string) int {
	switch kind {
	case CompareString:
		return strings.Compare
	case CompareNumeric:
		return compareNumeric
	default:
		// A collator keeps internal buffers, so each sort gets its own.
		collator := collate.New(language.Und, collate.IgnoreCase, collate.Numeric)
		return collator.CompareString
	}
}

func compareNumeric(a, b string) int {
	x, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	y, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(x, y)
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return 1
	default:
		return -1
	}
}
