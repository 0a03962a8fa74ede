package agents

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/privacypoint/privacypoint/internal/pipeline"
	"github.com/privacypoint/privacypoint/internal/prompts"
	"github.com/privacypoint/privacypoint/pkg/formatting"
)

type structureResponse struct {
	Title    string            `json:"title"`
	Sections []sectionResponse `json:"sections"`
}

type sectionResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Order       int    `json:"order"`
}

// StructureStage plans the document outline from the accumulated analysis.
// Required sections the model missed are appended so the generation stage
// always receives a complete plan.
func StructureStage(rt *Runtime) pipeline.Stage {
	return pipeline.Stage{
		Name:   pipeline.StageStructure,
		Status: pipeline.StatusStructured,
		Run: func(ctx context.Context, s *pipeline.DocumentState) error {
			content, err := rt.Completer.Complete(ctx, prompts.Structure(s))
			if err != nil {
				return fmt.Errorf("structure request: %w", err)
			}

			parsed, err := formatting.Parse[structureResponse](content)
			if err != nil {
				return fmt.Errorf("%w: structure response: %w", pipeline.ErrContent, err)
			}

			if len(parsed.Sections) == 0 {
				return fmt.Errorf("%w: structure returned no sections", pipeline.ErrContent)
			}

			applyStructure(s, parsed)
			return nil
		},
	}
}

func applyStructure(s *pipeline.DocumentState, resp structureResponse) {
	title := strings.TrimSpace(resp.Title)
	if title == "" {
		title = fmt.Sprintf("%s - %s", s.DocumentType, s.CompanyName)
	}

	sections := make([]pipeline.SectionSpec, 0, len(resp.Sections))
	for _, sec := range resp.Sections {
		if strings.TrimSpace(sec.Title) == "" {
			continue
		}
		sections = append(sections, pipeline.SectionSpec{
			Title:       sec.Title,
			Description: sec.Description,
			Required:    sec.Required,
			Order:       sec.Order,
		})
	}

	sections = appendMissingSections(sections, s.RequiredSections)
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})
	for i := range sections {
		sections[i].Order = i + 1
	}

	s.Structure = pipeline.DocumentStructure{
		Title:    title,
		Sections: sections,
	}
	s.ContentOutline = outlineSummary(s.Structure)
}

func appendMissingSections(sections []pipeline.SectionSpec, required []string) []pipeline.SectionSpec {
	for _, title := range required {
		if hasSection(sections, title) {
			continue
		}
		sections = append(sections, pipeline.SectionSpec{
			Title:    title,
			Required: true,
			Order:    len(sections) + 1,
		})
	}
	return sections
}

func hasSection(sections []pipeline.SectionSpec, title string) bool {
	for _, sec := range sections {
		if strings.EqualFold(strings.TrimSpace(sec.Title), strings.TrimSpace(title)) {
			return true
		}
	}
	return false
}

func outlineSummary(structure pipeline.DocumentStructure) string {
	var b strings.Builder
	b.WriteString(structure.Title)
	for _, sec := range structure.Sections {
		fmt.Fprintf(&b, "\n%d. %s", sec.Order, sec.Title)
	}
	return b.String()
}
