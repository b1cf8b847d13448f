package validation_test

import (
	"testing"

	"rostercore/internal/schema"
	"rostercore/internal/validation"
	"rostercore/pkg/domain"
)

// listView is a minimal snapshot over fixed records.
type listView struct {
	members []domain.Member
	entries []domain.RosterEntry
}

func (v listView) ListMembers() []domain.Member            { return v.members }
func (v listView) ListRosterEntries() []domain.RosterEntry { return v.entries }

func (v listView) FindMember(id string) (domain.Member, bool) {
	for _, m := range v.members {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Member{}, false
}

func (v listView) FindRosterEntry(id string) (domain.RosterEntry, bool) {
	for _, e := range v.entries {
		if e.ID == id {
			return e, true
		}
	}
	return domain.RosterEntry{}, false
}

func entryFixture(id, title, code string) domain.RosterEntry {
	e := domain.RosterEntry{Title: title, MemberCode: code, ImageKey: "portraits/" + id}
	e.ID = id
	return e
}

func entryInput(title, code, image string) schema.RawInput {
	return schema.RawInput{
		schema.FieldTitle:      title,
		schema.FieldMemberCode: code,
		schema.FieldImage:      image,
	}
}

func TestEntryForCreateBuildsRecordWithoutID(t *testing.T) {
	entry, errs := validation.EntryForCreate(entryInput("สมชาย ใจดี", "123", "portraits/x"), listView{})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if entry.ID != "" {
		t.Fatalf("validator must not assign IDs, got %q", entry.ID)
	}
	if entry.Title != "สมชาย ใจดี" || entry.MemberCode != "123" || entry.ImageKey != "portraits/x" {
		t.Fatalf("unexpected record: %+v", entry)
	}
}

func TestEntryForCreateRejectsDuplicates(t *testing.T) {
	view := listView{entries: []domain.RosterEntry{entryFixture("e1", "สมชาย ใจดี", "001")}}

	_, errs := validation.EntryForCreate(entryInput("สมชาย ใจดี", "456", "portraits/x"), view)
	if fe := errs[schema.FieldTitle]; fe.Code != domain.ErrCodeDuplicateName || fe.Message != schema.MsgTitleTaken {
		t.Fatalf("duplicate title verdict: %+v", fe)
	}

	_, errs = validation.EntryForCreate(entryInput("สมหญิง รักเรียน", "001", "portraits/x"), view)
	if fe := errs[schema.FieldMemberCode]; fe.Code != domain.ErrCodeDuplicateKey || fe.Message != schema.MsgMemberCodeTaken {
		t.Fatalf("duplicate code verdict: %+v", fe)
	}
}

func TestEntryForCreateSchemaErrorsBlockUniquenessChecks(t *testing.T) {
	view := listView{entries: []domain.RosterEntry{entryFixture("e1", "สมชาย ใจดี", "001")}}
	_, errs := validation.EntryForCreate(entryInput("สมชาย ใจดี", "bad", "portraits/x"), view)
	if !errs.Has(schema.FieldMemberCode) {
		t.Fatalf("expected pattern error: %v", errs)
	}
	if errs.Has(schema.FieldTitle) {
		t.Fatalf("uniqueness must not run until the schema passes: %v", errs)
	}
}

func TestEntryForUpdateExcludesSelf(t *testing.T) {
	view := listView{entries: []domain.RosterEntry{
		entryFixture("e1", "สมชาย ใจดี", "001"),
		entryFixture("e2", "สมหญิง รักเรียน", "002"),
	}}

	// keeping its own code and title is allowed
	entry, errs := validation.EntryForUpdate(entryInput("สมชาย ใจดี", "001", ""), "e1", view)
	if len(errs) != 0 {
		t.Fatalf("self-collision must be allowed: %v", errs)
	}
	if entry.ID != "e1" {
		t.Fatalf("target ID not carried: %+v", entry)
	}

	// colliding with another record is not
	_, errs = validation.EntryForUpdate(entryInput("สมชาย ใจดี", "002", ""), "e1", view)
	if fe := errs[schema.FieldMemberCode]; fe.Code != domain.ErrCodeDuplicateKey {
		t.Fatalf("expected duplicate key, got %v", errs)
	}
}

func TestEntryForUpdateOmittedImageKeepsExisting(t *testing.T) {
	view := listView{entries: []domain.RosterEntry{entryFixture("e1", "สมชาย ใจดี", "001")}}
	entry, errs := validation.EntryForUpdate(entryInput("สมชาย ใจดี", "001", ""), "e1", view)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if entry.ImageKey != "" {
		t.Fatalf("validator must leave image resolution to the caller, got %q", entry.ImageKey)
	}
}

func TestMemberForCreateRoundTripsValues(t *testing.T) {
	in := schema.RawInput{
		schema.FieldPrefix:           "นาย",
		schema.FieldFirstName:        "กมลศักดิ์",
		schema.FieldLastName:         "ลีวาเมาะ",
		schema.FieldPhoto:            "https://example.com/photos/002.jpg",
		schema.FieldWorkHistory:      "เลขานุการคณะกรรมาธิการ",
		schema.FieldPastAchievements: "ผลงาน",
		schema.FieldMinisterPosition: "สมาชิกสภาผู้แทนราษฎร",
		schema.FieldPoliticalParty:   "พรรคประชาชาติ",
	}
	m, errs := validation.MemberForCreate(in, listView{})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if m.FirstName != in[schema.FieldFirstName] || m.PhotoURL != in[schema.FieldPhoto] || m.MinisterPosition != in[schema.FieldMinisterPosition] {
		t.Fatalf("fields did not round-trip: %+v", m)
	}
	if m.Ministry != "" {
		t.Fatalf("absent optional field must stay empty: %+v", m)
	}

	// validating the produced values again yields the same record
	again, errs := validation.MemberForCreate(in, listView{})
	if len(errs) != 0 || again != m {
		t.Fatalf("validation not idempotent on clean input: %+v vs %+v", again, m)
	}
}

func TestMemberForCreateAccumulatesAllFieldErrors(t *testing.T) {
	_, errs := validation.MemberForCreate(schema.RawInput{}, listView{})
	want := []string{
		schema.FieldFirstName,
		schema.FieldLastName,
		schema.FieldPastAchievements,
		schema.FieldPhoto,
		schema.FieldPoliticalParty,
		schema.FieldPrefix,
		schema.FieldWorkHistory,
	}
	got := errs.Fields()
	if len(got) != len(want) {
		t.Fatalf("fields = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fields = %v, want %v", got, want)
		}
	}
}

func TestMemberForUpdateCarriesTargetID(t *testing.T) {
	in := schema.RawInput{
		schema.FieldPrefix:           "นาย",
		schema.FieldFirstName:        "กรวีร์",
		schema.FieldLastName:         "ปริศนานันทกุล",
		schema.FieldPhoto:            "https://example.com/photos/003.jpg",
		schema.FieldWorkHistory:      "งานการเมืองท้องถิ่น",
		schema.FieldPastAchievements: "ผลงาน",
		schema.FieldPoliticalParty:   "พรรคภูมิใจไทย",
	}
	m, errs := validation.MemberForUpdate(in, "m-7", listView{})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if m.ID != "m-7" {
		t.Fatalf("target ID not carried: %q", m.ID)
	}
}
