package listpage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sortRow struct {
	key string
	seq int
}

func keyField(kind CompareKind) SortField[sortRow] {
	return SortField[sortRow]{Kind: kind, Value: func(r sortRow) string { return r.key }}
}

func TestSortRowsIsStable(t *testing.T) {
	rows := []sortRow{{"b", 1}, {"a", 2}, {"b", 3}, {"a", 4}, {"b", 5}}

	SortRows(rows, keyField(CompareString), SortAsc)
	assert.Equal(t, []sortRow{{"a", 2}, {"a", 4}, {"b", 1}, {"b", 3}, {"b", 5}}, rows)

	SortRows(rows, keyField(CompareString), SortDesc)
	assert.Equal(t, []sortRow{{"b", 1}, {"b", 3}, {"b", 5}, {"a", 2}, {"a", 4}}, rows)
}

func TestSortRowsNaturalOrder(t *testing.T) {
	rows := []sortRow{{"user10", 1}, {"User2", 2}, {"admin", 3}, {"user1", 4}}

	SortRows(rows, keyField(CompareNatural), SortAsc)

	var keys []string
	for _, r := range rows {
		keys = append(keys, r.key)
	}
	assert.Equal(t, []string{"admin", "user1", "User2", "user10"}, keys)
}

func TestSortRowsNaturalIgnoresCase(t *testing.T) {
	rows := []sortRow{{"Bob", 1}, {"bob", 2}, {"alice", 3}}

	SortRows(rows, keyField(CompareNatural), SortAsc)

	assert.Equal(t, []sortRow{{"alice", 3}, {"Bob", 1}, {"bob", 2}}, rows)
}

func TestSortRowsCaseSensitive(t *testing.T) {
	rows := []sortRow{{"b", 1}, {"B", 2}, {"a", 3}}

	SortRows(rows, keyField(CompareString), SortAsc)

	assert.Equal(t, []sortRow{{"B", 2}, {"a", 3}, {"b", 1}}, rows)
}

func TestSortRowsNumeric(t *testing.T) {
	rows := []sortRow{{"100", 1}, {"20", 2}, {"", 3}, {"3", 4}}

	SortRows(rows, keyField(CompareNumeric), SortAsc)

	assert.Equal(t, []sortRow{{"3", 4}, {"20", 2}, {"100", 1}, {"", 3}}, rows)
}
