package listquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/JaimeStill/aspiredu/pkg/pagination"
)

// QueryFromValues binds page, page_size (or perpage), sort and sort_by from
// URL query values. An absent page size uses cfg's default, an explicit zero
// requests every record, and anything above cfg's maximum is clamped.
func QueryFromValues(values url.Values, cfg pagination.Config) (Query, error) {
	q := NewQuery(cfg.DefaultPageSize)

	if v := values.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return Query{}, Invalid("page", v)
		}
		q.Page = page
	}

	size := values.Get("page_size")
	if size == "" {
		size = values.Get("perpage")
	}
	if size != "" {
		n, err := strconv.Atoi(size)
		if err != nil {
			return Query{}, Invalid("page_size", size)
		}
		switch {
		case n <= 0:
			q.PageSize = 0
		case cfg.MaxPageSize > 0 && n > cfg.MaxPageSize:
			q.PageSize = cfg.MaxPageSize
		default:
			q.PageSize = n
		}
	}

	dir, err := ParseDirection(values.Get("sort"))
	if err != nil {
		return Query{}, err
	}
	q.Direction = dir
	q.SortField = strings.ToLower(strings.TrimSpace(values.Get("sort_by")))

	return q, nil
}

// DateRange bounds a unix timestamp field. Zero on either side is unbounded.
type DateRange struct {
	Start int64
	End   int64
}

// Bounded reports whether either side of the range is set.
func (r DateRange) Bounded() bool {
	return r.Start != 0 || r.End != 0
}

// Contains reports whether ts falls inside the range.
func (r DateRange) Contains(ts int64) bool {
	if !r.Bounded() {
		return true
	}
	return ts >= r.Start && (r.End == 0 || ts <= r.End)
}

// DateRangeFromValues binds start_date and end_date.
func DateRangeFromValues(values url.Values) (DateRange, error) {
	var r DateRange
	var err error

	if r.Start, err = Int64(values, "start_date", 0); err != nil {
		return DateRange{}, err
	}
	if r.End, err = Int64(values, "end_date", 0); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// Int64 parses key as an integer, returning def when absent.
func Int64(values url.Values, key string, def int64) (int64, error) {
	v := values.Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, Invalid(key, v)
	}
	return n, nil
}

// Bool parses key as a boolean, returning def when absent.
func Bool(values url.Values, key string, def bool) (bool, error) {
	v := values.Get(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, Invalid(key, v)
	}
	return b, nil
}

// IDs parses key as a list of integer ids. Both comma-separated values and
// repeated keys are accepted.
func IDs(values url.Values, key string) ([]int64, error) {
	var ids []int64
	for _, raw := range values[key] {
		for part := range strings.SplitSeq(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, Invalid(key, part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
