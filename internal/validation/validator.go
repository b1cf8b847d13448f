// Package validation combines the pure schema checks with cross-record
// uniqueness against a collection snapshot. Every validator either returns a
// fully populated record or a non-empty set of field errors; there is no
// partial success.
package validation

import (
	"strings"

	"rostercore/internal/schema"
	"rostercore/pkg/domain"
)

// MemberForCreate validates raw input for a new member profile. The returned
// record carries no ID; the store assigns one on insert.
func MemberForCreate(in schema.RawInput, view domain.RuleView) (domain.Member, domain.FieldErrors) {
	errs := schema.CheckMember(in)
	if len(errs) > 0 {
		return domain.Member{}, errs
	}
	_ = view // member profiles carry no uniqueness constraint beyond the store-assigned ID
	return memberFromInput(in), nil
}

// MemberForUpdate validates raw input for editing an existing member profile.
// The target ID is immutable and excluded from re-validation.
func MemberForUpdate(in schema.RawInput, targetID string, view domain.RuleView) (domain.Member, domain.FieldErrors) {
	errs := schema.CheckMember(in)
	if len(errs) > 0 {
		return domain.Member{}, errs
	}
	_ = view
	m := memberFromInput(in)
	m.ID = targetID
	return m, nil
}

// EntryForCreate validates raw input for a new roster entry. Uniqueness of
// the member code and the title runs only after the schema passes, matching
// the submit flow of the editor.
func EntryForCreate(in schema.RawInput, view domain.RuleView) (domain.RosterEntry, domain.FieldErrors) {
	errs := schema.CheckEntry(in, schema.ModeCreate)
	if len(errs) > 0 {
		return domain.RosterEntry{}, errs
	}
	entry := entryFromInput(in)
	if errs := checkEntryUniqueness(entry, "", view); len(errs) > 0 {
		return domain.RosterEntry{}, errs
	}
	return entry, nil
}

// EntryForUpdate validates raw input for editing the roster entry identified
// by targetID. Uniqueness checks skip the target so a record may keep its own
// code and title. An absent image reference means "keep the existing image";
// resolving it against the stored record is the caller's concern.
func EntryForUpdate(in schema.RawInput, targetID string, view domain.RuleView) (domain.RosterEntry, domain.FieldErrors) {
	errs := schema.CheckEntry(in, schema.ModeEdit)
	if len(errs) > 0 {
		return domain.RosterEntry{}, errs
	}
	entry := entryFromInput(in)
	entry.ID = targetID
	if errs := checkEntryUniqueness(entry, targetID, view); len(errs) > 0 {
		return domain.RosterEntry{}, errs
	}
	return entry, nil
}

func checkEntryUniqueness(entry domain.RosterEntry, excludeID string, view domain.RuleView) domain.FieldErrors {
	errs := domain.FieldErrors{}
	for _, existing := range view.ListRosterEntries() {
		if excludeID != "" && existing.ID == excludeID {
			continue
		}
		if existing.MemberCode == entry.MemberCode {
			errs.Set(schema.FieldMemberCode, domain.ErrCodeDuplicateKey, schema.MsgMemberCodeTaken)
		}
		if existing.Title == entry.Title {
			errs.Set(schema.FieldTitle, domain.ErrCodeDuplicateName, schema.MsgTitleTaken)
		}
	}
	return errs
}

// memberFromInput copies field values verbatim; only validity is checked,
// never normalized, so clean input round-trips unchanged.
func memberFromInput(in schema.RawInput) domain.Member {
	return domain.Member{
		Prefix:           in[schema.FieldPrefix],
		FirstName:        in[schema.FieldFirstName],
		LastName:         in[schema.FieldLastName],
		PhotoURL:         in[schema.FieldPhoto],
		WorkHistory:      in[schema.FieldWorkHistory],
		PastAchievements: in[schema.FieldPastAchievements],
		MinisterPosition: in[schema.FieldMinisterPosition],
		Ministry:         in[schema.FieldMinistry],
		PoliticalParty:   in[schema.FieldPoliticalParty],
	}
}

// entryFromInput trims the title and member code the way the editor declares
// them; group and image reference pass through verbatim.
func entryFromInput(in schema.RawInput) domain.RosterEntry {
	return domain.RosterEntry{
		Title:      strings.TrimSpace(in[schema.FieldTitle]),
		MemberCode: strings.TrimSpace(in[schema.FieldMemberCode]),
		Group:      in[schema.FieldGroup],
		ImageKey:   in[schema.FieldImage],
	}
}
