package listpage

import (
	"context"
	"strconv"

	"github.com/noah-isme/monitoring-admin-api/internal/preference"
)

const (
	pagerEntityKey = "web.pager.entity"
	pagerPageKey   = "web.pager.page"
)

// Paginate trims the search-limit sentinel row and cuts out page. rows must be
// sorted; the surplus row is dropped from the tail for ascending order and from
// the head for descending order. A page past the end yields no rows.
func Paginate[R any](rows []R, page, pageSize, searchLimit int, order SortOrder) ([]R, Pager) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	exceeded := searchLimit > 0 && len(rows) > searchLimit
	if exceeded {
		if order == SortDesc {
			rows = rows[len(rows)-searchLimit:]
		} else {
			rows = rows[:searchLimit]
		}
	}

	total := len(rows)
	pageCount := (total + pageSize - 1) / pageSize
	pager := Pager{
		Page:          page,
		PageSize:      pageSize,
		PageCount:     pageCount,
		Total:         total,
		LimitExceeded: exceeded,
		HasPrevious:   page > 1,
		HasNext:       page < pageCount,
	}

	start := (page - 1) * pageSize
	if start >= total {
		return []R{}, pager
	}
	end := min(start+pageSize, total)
	return rows[start:end], pager
}

// SavePage remembers page as the current page of listID.
func SavePage(ctx context.Context, store preference.Store, listID string, page int) error {
	if err := store.Set(ctx, pagerEntityKey, listID, preference.TypeStr); err != nil {
		return err
	}
	return store.Set(ctx, pagerPageKey, strconv.Itoa(page), preference.TypeInt)
}

// LoadPage returns the page last saved for listID, or 1 when the saved page
// belongs to another list.
func LoadPage(ctx context.Context, store preference.Store, listID string) (int, error) {
	entity, err := store.Get(ctx, pagerEntityKey, "")
	if err != nil {
		return 1, err
	}
	if entity != listID {
		return 1, nil
	}
	raw, err := store.Get(ctx, pagerPageKey, "1")
	if err != nil {
		return 1, err
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1, nil
	}
	return page, nil
}
