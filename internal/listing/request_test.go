package listing

import (
	"errors"
	"net/url"
	"testing"
)

func TestParseRequestStripsReservedKeys(t *testing.T) {
	values := url.Values{}
	values.Set("keyword", "apple")
	values.Set("limit", "50")
	values.Set("page", "2")

	req, err := ParseRequest(values, 4)
	if err != nil {
		t.Fatalf("ParseRequest returned error: %v", err)
	}
	if len(req.Filters) != 0 {
		t.Fatalf("expected reserved keys to produce no filters, got %d", len(req.Filters))
	}
	if req.Keyword != "apple" {
		t.Fatalf("expected keyword %q, got %q", "apple", req.Keyword)
	}
	if req.Page != 2 {
		t.Fatalf("expected page 2, got %d", req.Page)
	}
	if req.ResPerPage != 4 {
		t.Fatalf("expected resPerPage 4, got %d", req.ResPerPage)
	}
}

func TestParseRequestPageDefaults(t *testing.T) {
	cases := []struct {
		name string
		page string
		want int
	}{
		{"absent", "", 1},
		{"zero", "0", 1},
		{"negative", "-3", 1},
		{"non-numeric", "abc", 1},
		{"valid", "7", 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values := url.Values{}
			if tc.page != "" {
				values.Set("page", tc.page)
			}

			req, err := ParseRequest(values, 4)
			if err != nil {
				t.Fatalf("ParseRequest returned error: %v", err)
			}
			if req.Page != tc.want {
				t.Fatalf("expected page %d, got %d", tc.want, req.Page)
			}
		})
	}
}

func TestRequestOffset(t *testing.T) {
	cases := []struct {
		page       int
		resPerPage int
		want       int
	}{
		{1, 4, 0},
		{2, 4, 4},
		{3, 10, 20},
	}

	for _, tc := range cases {
		req := &Request{Page: tc.page, ResPerPage: tc.resPerPage}
		if got := req.Offset(); got != tc.want {
			t.Fatalf("Offset() with page=%d resPerPage=%d: expected %d, got %d",
				tc.page, tc.resPerPage, tc.want, got)
		}
	}
}

func TestParseRequestRangeFilters(t *testing.T) {
	values := url.Values{}
	values.Set("price[gte]", "10")
	values.Set("price[lte]", "200")
	values.Set("ratings[gt]", "3.5")

	req, err := ParseRequest(values, 4)
	if err != nil {
		t.Fatalf("ParseRequest returned error: %v", err)
	}
	if len(req.Filters) != 3 {
		t.Fatalf("expected 3 filters, got %d", len(req.Filters))
	}

	// Filters are sorted by field then operator.
	want := []Filter{
		{Field: "price", Op: OpLte, Value: 200.0},
		{Field: "price", Op: OpGte, Value: 10.0},
		{Field: "ratings", Op: OpGt, Value: 3.5},
	}
	for i, f := range want {
		got := req.Filters[i]
		if got.Field != f.Field || got.Op != f.Op || got.Value != f.Value {
			t.Fatalf("filter %d: expected %+v, got %+v", i, f, got)
		}
	}
}

func TestParseRequestEqualityFilters(t *testing.T) {
	values := url.Values{}
	values.Set("category", "Electronics")
	values.Set("stock", "5")

	req, err := ParseRequest(values, 4)
	if err != nil {
		t.Fatalf("ParseRequest returned error: %v", err)
	}
	if len(req.Filters) != 2 {
		t.Fatalf("expected 2 filters, got %d", len(req.Filters))
	}
	if req.Filters[0].Field != "category" || req.Filters[0].Op != OpEq || req.Filters[0].Value != "Electronics" {
		t.Fatalf("unexpected category filter: %+v", req.Filters[0])
	}
	if req.Filters[1].Field != "stock" || req.Filters[1].Op != OpEq || req.Filters[1].Value != 5.0 {
		t.Fatalf("unexpected stock filter: %+v", req.Filters[1])
	}
}

func TestParseRequestRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown field", "password_hashed", "x"},
		{"unknown comparator", "price[between]", "10"},
		{"non-numeric bound", "price[gte]", "cheap"},
		{"non-numeric equality", "stock", "many"},
		{"range on string field", "category[gte]", "Books"},
		{"malformed key", "price[gte", "10"},
		{"empty field name", "[gte]", "10"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values := url.Values{}
			values.Set(tc.key, tc.value)

			if _, err := ParseRequest(values, 4); !errors.Is(err, ErrInvalidFilter) {
				t.Fatalf("expected ErrInvalidFilter, got %v", err)
			}
		})
	}
}

func TestConditionsKeyword(t *testing.T) {
	req := &Request{Keyword: "phone"}

	conds := req.Conditions()
	if len(conds) != 1 {
		t.Fatalf("expected 1 condition, got %d", len(conds))
	}
	if conds[0].Expr != "name ILIKE ?" {
		t.Fatalf("unexpected expression %q", conds[0].Expr)
	}
	if len(conds[0].Args) != 1 || conds[0].Args[0] != "%phone%" {
		t.Fatalf("unexpected args %v", conds[0].Args)
	}
}

func TestConditionsComposeKeywordAndFilters(t *testing.T) {
	values := url.Values{}
	values.Set("keyword", "camera")
	values.Set("price[lte]", "500")

	req, err := ParseRequest(values, 4)
	if err != nil {
		t.Fatalf("ParseRequest returned error: %v", err)
	}

	conds := req.Conditions()
	if len(conds) != 2 {
		t.Fatalf("expected 2 conditions, got %d", len(conds))
	}
	if conds[0].Expr != "name ILIKE ?" {
		t.Fatalf("expected keyword condition first, got %q", conds[0].Expr)
	}
	if conds[1].Expr != "price <= ?" {
		t.Fatalf("unexpected filter expression %q", conds[1].Expr)
	}
	if conds[1].Args[0] != 500.0 {
		t.Fatalf("unexpected filter argument %v", conds[1].Args[0])
	}
}

func TestConditionsEmptyRequest(t *testing.T) {
	req, err := ParseRequest(url.Values{}, 4)
	if err != nil {
		t.Fatalf("ParseRequest returned error: %v", err)
	}
	if conds := req.Conditions(); len(conds) != 0 {
		t.Fatalf("expected no conditions, got %d", len(conds))
	}
}
