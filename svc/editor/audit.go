package editor

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/varlayer/pkg/placeholder"
)

// AuditReport lists disagreements between the raw HTML and the stored
// variables.
type AuditReport struct {
	// OrphanIDs are referenced by markers but belong to no variable.
	OrphanIDs []string `json:"orphan_ids"`
	// MissingVariables have no marker left in the HTML.
	MissingVariables []uuid.UUID `json:"missing_variables"`
	// DuplicateIDs are referenced by more than one marker.
	DuplicateIDs []string `json:"duplicate_ids"`
}

// Clean reports whether the template needs no repair.
func (r AuditReport) Clean() bool {
	return len(r.OrphanIDs) == 0 && len(r.MissingVariables) == 0 && len(r.DuplicateIDs) == 0
}

// Audit compares the template's markers with its variables. It never
// modifies the template.
func (s *Service) Audit(ctx context.Context, scope Scope) (AuditReport, error) {
	t, err := s.load(ctx, scope)
	if err != nil {
		return AuditReport{}, err
	}

	vars := t.Placeholders()
	known := make([]string, 0, len(vars))
	for _, v := range vars {
		known = append(known, v.ID)
	}

	inv := placeholder.Scan(t.RawHTML)
	report := AuditReport{
		OrphanIDs:        nonNil(inv.Orphans(known)),
		MissingVariables: []uuid.UUID{},
		DuplicateIDs:     nonNil(inv.Duplicates()),
	}
	for _, v := range inv.Missing(vars) {
		report.MissingVariables = append(report.MissingVariables, uuid.MustParse(v.ID))
	}
	return report, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
