package documents

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/privacypoint/privacypoint/pkg/pagination"
	"github.com/privacypoint/privacypoint/pkg/repository"
)

const projection = `
	SELECT id, document_type, company_name, industry_sector, status,
	       current_step, quality_score, compliance_score, revision_attempts,
	       needs_revision, file_name, storage_key, created_at, updated_at
	FROM document_states`

// sortColumns is the allow-list of client-sortable fields mapped to their
// columns. Requests naming anything else fall back to the default order.
var sortColumns = map[string]string{
	"created_at":       "created_at",
	"updated_at":       "updated_at",
	"company_name":     "company_name",
	"document_type":    "document_type",
	"status":           "status",
	"quality_score":    "quality_score",
	"compliance_score": "compliance_score",
}

const defaultOrder = "created_at DESC"

// Filters contains optional filtering criteria for document queries.
// Nil fields are ignored. Status, DocumentType, and IndustrySector use
// exact matching; CompanyName uses case-insensitive contains matching.
type Filters struct {
	Status         *string `json:"status,omitempty"`
	DocumentType   *string `json:"document_type,omitempty"`
	CompanyName    *string `json:"company_name,omitempty"`
	IndustrySector *string `json:"industry_sector,omitempty"`
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if dt := values.Get("document_type"); dt != "" {
		f.DocumentType = &dt
	}

	if cn := values.Get("company_name"); cn != "" {
		f.CompanyName = &cn
	}

	if is := values.Get("industry_sector"); is != "" {
		f.IndustrySector = &is
	}

	return f
}

// whereClause builds the WHERE fragment and positional arguments for the
// active filters plus an optional free-text search over company names.
func whereClause(f Filters, search *string) (string, []any) {
	var (
		conds []string
		args  []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != nil {
		conds = append(conds, "status = "+arg(*f.Status))
	}
	if f.DocumentType != nil {
		conds = append(conds, "document_type = "+arg(*f.DocumentType))
	}
	if f.IndustrySector != nil {
		conds = append(conds, "industry_sector = "+arg(*f.IndustrySector))
	}
	if f.CompanyName != nil {
		conds = append(conds, "company_name ILIKE "+arg("%"+*f.CompanyName+"%"))
	}
	if search != nil && *search != "" {
		conds = append(conds, "company_name ILIKE "+arg("%"+*search+"%"))
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderClause maps requested sort fields through the allow-list, falling
// back to the default order when nothing usable was requested.
func orderClause(sort []pagination.SortField) string {
	var parts []string

	for _, s := range sort {
		col, ok := sortColumns[strings.ToLower(s.Field)]
		if !ok {
			continue
		}
		if s.Descending {
			col += " DESC"
		}
		parts = append(parts, col)
	}

	if len(parts) == 0 {
		return " ORDER BY " + defaultOrder
	}

	return " ORDER BY " + strings.Join(parts, ", ")
}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.DocumentType,
		&d.CompanyName,
		&d.IndustrySector,
		&d.Status,
		&d.CurrentStep,
		&d.QualityScore,
		&d.ComplianceScore,
		&d.RevisionAttempts,
		&d.NeedsRevision,
		&d.FileName,
		&d.StorageKey,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}
