package models

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Pagination defaults
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListFilters narrows which feedback records a list operation returns.
// Zero values mean "no constraint", never "match empty".
type ListFilters struct {
	Search    string
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// ParseListFilters builds ListFilters from raw query parameters. Absent or
// empty parameters impose no constraint; malformed page/limit/date values
// coerce to their defaults rather than failing the request.
func ParseListFilters(query url.Values) ListFilters {
	f := ListFilters{
		Search:   strings.TrimSpace(query.Get("search")),
		Category: query.Get("category"),
		Page:     parsePositiveInt(query.Get("page"), DefaultPage),
		Limit:    parsePositiveInt(query.Get("limit"), DefaultLimit),
	}
	if t, ok := parseDate(query.Get("startDate")); ok {
		f.StartDate = &t
	}
	if t, ok := parseDate(query.Get("endDate")); ok {
		f.EndDate = &t
	}
	return f
}

// Scope returns a gorm scope applying the search, category and date
// constraints. The same scope is used for both the page query and the
// total count so pagination always reflects the filtered set.
func (f ListFilters) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Search != "" {
			pattern := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
			db = db.Where(
				`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR LOWER(message) LIKE ? ESCAPE '\'`,
				pattern, pattern, pattern,
			)
		}
		if f.Category != "" && f.Category != "all" {
			db = db.Where("category = ?", f.Category)
		}
		if f.StartDate != nil {
			db = db.Where("created_at >= ?", *f.StartDate)
		}
		if f.EndDate != nil {
			db = db.Where("created_at <= ?", *f.EndDate)
		}
		return db
	}
}

// Window returns the (offset, limit) pair for the requested page.
func (f ListFilters) Window() (offset, limit int) {
	return (f.Page - 1) * f.Limit, f.Limit
}

// TotalPages computes ceil(total/limit) for the response envelope.
func (f ListFilters) TotalPages(total int64) int {
	pages := total / int64(f.Limit)
	if total%int64(f.Limit) != 0 {
		pages++
	}
	return int(pages)
}

func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// parseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates. A
// date-only bound is taken at midnight UTC.
func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// escapeLike neutralizes LIKE wildcards in user-supplied search text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
