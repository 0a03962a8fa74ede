package pagination_test

import (
	"net/url"
	"testing"

	"github.com/privacypoint/privacypoint/pkg/pagination"
)

func testConfig(t *testing.T) pagination.Config {
	t.Helper()
	cfg := pagination.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	return cfg
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []pagination.SortField
	}{
		{"empty", "", []pagination.SortField{}},
		{"single ascending", "company_name", []pagination.SortField{
			{Field: "company_name"},
		}},
		{"descending", "-created_at", []pagination.SortField{
			{Field: "created_at", Descending: true},
		}},
		{"mixed with spaces", "status, -updated_at", []pagination.SortField{
			{Field: "status"},
			{Field: "updated_at", Descending: true},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pagination.ParseSortFields(tt.expr)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("field %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	cfg := testConfig(t)
	values := url.Values{}
	values.Set("page", "3")
	values.Set("page_size", "10")
	values.Set("search", "acme")
	values.Set("sort", "-created_at")

	req := pagination.PageRequestFromQuery(values, cfg)

	if req.Page != 3 || req.PageSize != 10 {
		t.Errorf("page = %d/%d, want 3/10", req.Page, req.PageSize)
	}
	if req.Search == nil || *req.Search != "acme" {
		t.Error("search not parsed")
	}
	if len(req.Sort) != 1 || !req.Sort[0].Descending {
		t.Errorf("sort = %+v", req.Sort)
	}
	if req.Offset() != 20 {
		t.Errorf("offset = %d, want 20", req.Offset())
	}
}

func TestNormalizeClampsValues(t *testing.T) {
	cfg := testConfig(t)

	req := pagination.PageRequest{Page: 0, PageSize: 0}
	req.Normalize(cfg)
	if req.Page != 1 || req.PageSize != cfg.DefaultPageSize {
		t.Errorf("normalized = %d/%d", req.Page, req.PageSize)
	}

	req = pagination.PageRequest{Page: 1, PageSize: 5000}
	req.Normalize(cfg)
	if req.PageSize != cfg.MaxPageSize {
		t.Errorf("page size = %d, want %d", req.PageSize, cfg.MaxPageSize)
	}
}

func TestNewPageResult(t *testing.T) {
	result := pagination.NewPageResult([]string{"a", "b"}, 5, 1, 2)

	if result.TotalPages != 3 {
		t.Errorf("total pages = %d, want 3", result.TotalPages)
	}
	if result.Total != 5 {
		t.Errorf("total = %d, want 5", result.Total)
	}

	empty := pagination.NewPageResult[string](nil, 0, 1, 2)
	if empty.Data == nil {
		t.Error("data must not be nil")
	}
	if empty.TotalPages != 1 {
		t.Errorf("empty total pages = %d, want 1", empty.TotalPages)
	}
}
