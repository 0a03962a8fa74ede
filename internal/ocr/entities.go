package ocr

import "regexp"

// Entities holds personal data references discovered in extracted text.
type Entities struct {
	Identifiers    []string
	Emails         []string
	Phones         []string
	Dates          []string
	MonetaryValues []string
}

// Brazilian document and contact formats.
var (
	cpfPattern      = regexp.MustCompile(`\b\d{3}\.\d{3}\.\d{3}-\d{2}\b`)
	cnpjPattern     = regexp.MustCompile(`\b\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}\b`)
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`\(?\d{2}\)?\s?9?\d{4}-?\d{4}`)
	datePattern     = regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`)
	currencyPattern = regexp.MustCompile(`R\$\s?\d{1,3}(?:\.\d{3})*(?:,\d{2})?`)
)

// ExtractEntities scans text for CPF/CNPJ identifiers, contact data, dates,
// and monetary values. Results are deduplicated preserving first occurrence.
func ExtractEntities(text string) Entities {
	identifiers := append(
		cpfPattern.FindAllString(text, -1),
		cnpjPattern.FindAllString(text, -1)...,
	)

	return Entities{
		Identifiers:    dedupe(identifiers),
		Emails:         dedupe(emailPattern.FindAllString(text, -1)),
		Phones:         dedupe(phonePattern.FindAllString(text, -1)),
		Dates:          dedupe(datePattern.FindAllString(text, -1)),
		MonetaryValues: dedupe(currencyPattern.FindAllString(text, -1)),
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))

	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}

	return out
}
