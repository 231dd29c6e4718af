package listing

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidFilter marks a malformed listing request: an unknown filter
// field, an unknown comparator tag, or a non-numeric value for a numeric
// field. Malformed bounds are rejected rather than coerced so a typo never
// widens a query into match-all.
var ErrInvalidFilter = errors.New("invalid filter")

// Reserved query keys consumed by the builder itself. They are stripped
// before the remaining keys are interpreted as entity-field filters.
var reservedKeys = map[string]bool{
	"keyword": true,
	"limit":   true,
	"page":    true,
}

type Op string

const (
	OpEq  Op = "="
	OpGt  Op = ">"
	OpGte Op = ">="
	OpLt  Op = "<"
	OpLte Op = "<="
)

var comparatorTags = map[string]Op{
	"gt":  OpGt,
	"gte": OpGte,
	"lt":  OpLt,
	"lte": OpLte,
}

type fieldKind int

const (
	kindNumeric fieldKind = iota
	kindString
)

// filterableFields is the closed set of product columns a caller may filter
// on. Field names flow into SQL, so anything outside this set is rejected.
var filterableFields = map[string]fieldKind{
	"price":    kindNumeric,
	"ratings":  kindNumeric,
	"stock":    kindNumeric,
	"category": kindString,
	"seller":   kindString,
}

// Filter is one conjunctive constraint on a whitelisted field.
type Filter struct {
	Field string
	Op    Op
	Value interface{}
}

// Request is a parsed, validated listing request.
type Request struct {
	Keyword    string
	Page       int
	ResPerPage int
	Filters    []Filter
}

// ParseRequest translates raw query parameters into a Request. Range
// comparators arrive as bracketed keys, e.g. price[gte]=10; bare keys are
// equality filters. page defaults to 1 when absent, non-numeric or
// non-positive.
func ParseRequest(values url.Values, resPerPage int) (*Request, error) {
	req := &Request{
		Keyword:    strings.TrimSpace(values.Get("keyword")),
		Page:       parsePage(values.Get("page")),
		ResPerPage: resPerPage,
	}

	for key, vals := range values {
		if reservedKeys[key] || len(vals) == 0 {
			continue
		}

		filter, err := parseFilter(key, vals[0])
		if err != nil {
			return nil, err
		}
		req.Filters = append(req.Filters, filter)
	}

	// Map iteration order is random; keep the conjunction deterministic.
	sort.Slice(req.Filters, func(i, j int) bool {
		if req.Filters[i].Field != req.Filters[j].Field {
			return req.Filters[i].Field < req.Filters[j].Field
		}
		return req.Filters[i].Op < req.Filters[j].Op
	})

	return req, nil
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page <= 0 {
		return 1
	}
	return page
}

func parseFilter(key, value string) (Filter, error) {
	field, op, err := splitKey(key)
	if err != nil {
		return Filter{}, err
	}

	kind, ok := filterableFields[field]
	if !ok {
		return Filter{}, fmt.Errorf("%w: cannot filter by field %q", ErrInvalidFilter, field)
	}

	switch kind {
	case kindNumeric:
		num, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: non-numeric value %q for field %q", ErrInvalidFilter, value, field)
		}
		return Filter{Field: field, Op: op, Value: num}, nil
	default:
		if op != OpEq {
			return Filter{}, fmt.Errorf("%w: range comparator not supported for field %q", ErrInvalidFilter, field)
		}
		return Filter{Field: field, Op: OpEq, Value: value}, nil
	}
}

// splitKey decomposes "price[gte]" into ("price", >=). A key without a
// bracketed tag is an equality filter.
func splitKey(key string) (string, Op, error) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return key, OpEq, nil
	}
	if !strings.HasSuffix(key, "]") || open == 0 {
		return "", "", fmt.Errorf("%w: malformed filter key %q", ErrInvalidFilter, key)
	}

	field := key[:open]
	tag := key[open+1 : len(key)-1]
	op, ok := comparatorTags[tag]
	if !ok {
		return "", "", fmt.Errorf("%w: unknown comparator %q in key %q", ErrInvalidFilter, tag, key)
	}
	return field, op, nil
}

// Offset is the number of records skipped before the requested page.
func (r *Request) Offset() int {
	return r.ResPerPage * (r.Page - 1)
}
