package documents

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/privacypoint/privacypoint/pkg/pagination"
)

func strptr(s string) *string { return &s }

func TestWhereClause(t *testing.T) {
	tests := []struct {
		name     string
		filters  Filters
		search   *string
		wantSQL  string
		wantArgs int
	}{
		{
			name:    "empty",
			wantSQL: "",
		},
		{
			name:     "status only",
			filters:  Filters{Status: strptr("approved")},
			wantSQL:  " WHERE status = $1",
			wantArgs: 1,
		},
		{
			name: "all filters",
			filters: Filters{
				Status:         strptr("approved"),
				DocumentType:   strptr("privacy_policy"),
				CompanyName:    strptr("acme"),
				IndustrySector: strptr("saude"),
			},
			wantSQL:  " WHERE status = $1 AND document_type = $2 AND industry_sector = $3 AND company_name ILIKE $4",
			wantArgs: 4,
		},
		{
			name:     "search only",
			search:   strptr("acme"),
			wantSQL:  " WHERE company_name ILIKE $1",
			wantArgs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := whereClause(tt.filters, tt.search)
			if sql != tt.wantSQL {
				t.Errorf("sql = %q, want %q", sql, tt.wantSQL)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("args = %d, want %d", len(args), tt.wantArgs)
			}
		})
	}
}

func TestWhereClauseContainsWildcards(t *testing.T) {
	_, args := whereClause(Filters{CompanyName: strptr("acme")}, nil)
	if len(args) != 1 {
		t.Fatalf("args = %d", len(args))
	}
	if args[0] != "%acme%" {
		t.Errorf("arg = %q, want %q", args[0], "%acme%")
	}
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name string
		sort []pagination.SortField
		want string
	}{
		{
			name: "default when empty",
			want: " ORDER BY created_at DESC",
		},
		{
			name: "default when unknown field",
			sort: []pagination.SortField{{Field: "state"}},
			want: " ORDER BY created_at DESC",
		},
		{
			name: "descending score",
			sort: []pagination.SortField{{Field: "quality_score", Descending: true}},
			want: " ORDER BY quality_score DESC",
		},
		{
			name: "multiple fields",
			sort: []pagination.SortField{
				{Field: "company_name"},
				{Field: "updated_at", Descending: true},
			},
			want: " ORDER BY company_name, updated_at DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := orderClause(tt.sort); got != tt.want {
				t.Errorf("orderClause = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "contrato.pdf", "contrato.pdf"},
		{"path stripped", "../../etc/passwd", "passwd"},
		{"empty", "", "document"},
		{"spaces escaped", "meu contrato.pdf", "meu%20contrato.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeFilename(tt.input); got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildStorageKey(t *testing.T) {
	id := uuid.New()
	key := buildStorageKey(id, "contrato.pdf")

	if !strings.HasPrefix(key, "documents/"+id.String()+"/") {
		t.Errorf("key = %q", key)
	}
	if !strings.HasSuffix(key, "contrato.pdf") {
		t.Errorf("key = %q", key)
	}
}

func TestDetectContentType(t *testing.T) {
	if got := detectContentType("application/pdf", nil); got != "application/pdf" {
		t.Errorf("header type = %q", got)
	}

	got := detectContentType("application/octet-stream", []byte("%PDF-1.7 content"))
	if got != "application/pdf" {
		t.Errorf("sniffed type = %q", got)
	}
}
