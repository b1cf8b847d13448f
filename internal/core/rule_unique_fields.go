package core

import (
	"context"
	"fmt"
	"sort"

	"rostercore/pkg/domain"
)

// UniqueFieldsRule blocks any commit that would leave two roster entries
// sharing a member code or a title. The validator already rejects duplicates
// field-by-field before a transaction starts; this rule is the store-level
// backstop for callers that bypass it.
func UniqueFieldsRule() domain.Rule {
	return uniqueFieldsRule{}
}

type uniqueFieldsRule struct{}

func (uniqueFieldsRule) Name() string { return "unique_fields" }

func (uniqueFieldsRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	entries := view.ListRosterEntries()

	byCode := make(map[string][]string)
	byTitle := make(map[string][]string)
	for _, e := range entries {
		byCode[e.MemberCode] = append(byCode[e.MemberCode], e.ID)
		byTitle[e.Title] = append(byTitle[e.Title], e.ID)
	}

	res.Violations = append(res.Violations, duplicateViolations(byCode, "member code")...)
	res.Violations = append(res.Violations, duplicateViolations(byTitle, "title")...)
	return res, nil
}

func duplicateViolations(index map[string][]string, label string) []domain.Violation {
	values := make([]string, 0, len(index))
	for value, ids := range index {
		if len(ids) > 1 {
			values = append(values, value)
		}
	}
	sort.Strings(values)

	var out []domain.Violation
	for _, value := range values {
		ids := index[value]
		sort.Strings(ids)
		for _, id := range ids {
			out = append(out, domain.Violation{
				Rule:     "unique_fields",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("roster entry %s duplicates %s %q", id, label, value),
				Entity:   domain.EntityRosterEntry,
				EntityID: id,
			})
		}
	}
	return out
}
