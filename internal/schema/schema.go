// Package schema declares the per-field validation rules for roster records.
// Checks are pure: given the same raw input they always return the same
// verdict, and they never consult the store. Cross-record uniqueness lives in
// the validation package.
package schema

import (
	"net/url"
	"regexp"
	"strings"

	"rostercore/pkg/domain"
)

// RawInput carries submitted field values keyed by field name. A missing key
// means the presentation layer did not supply the field at all; file inputs
// arrive as blob store keys.
type RawInput map[string]string

// Mode distinguishes create from edit submissions. The image presence rule is
// the only mode-aware check: an edit may omit the image to keep the existing
// one.
type Mode string

// Submission modes.
const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Field names accepted from the presentation layer.
const (
	FieldPrefix           = "prefix"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldPhoto            = "photo"
	FieldWorkHistory      = "work_history"
	FieldPastAchievements = "past_achievements"
	FieldMinisterPosition = "minister_position"
	FieldMinistry         = "ministry"
	FieldPoliticalParty   = "political_party"

	FieldTitle      = "title"
	FieldMemberCode = "member_id"
	FieldGroup      = "group"
	FieldImage      = "image"
)

// Default messages shown when a field is rejected. Kept in Thai to match the
// labels the roster ships with; presentation layers may localize on the code.
const (
	MsgPrefixEmpty           = "คำนำหน้าห้ามว่าง"
	MsgFirstNameEmpty        = "ชื่อห้ามว่าง"
	MsgLastNameEmpty         = "นามสกุลห้ามว่าง"
	MsgPhotoEmpty            = "รูปถ่ายห้ามว่าง"
	MsgPhotoInvalidURL       = "URL รูปถ่ายไม่ถูกต้อง"
	MsgWorkHistoryEmpty      = "ประวัติการทำงานห้ามว่าง"
	MsgPastAchievementsEmpty = "ผลงานที่ผ่านมาห้ามว่าง"
	MsgPoliticalPartyEmpty   = "สังกัดพรรคการเมืองห้ามว่าง"

	MsgTitleEmpty         = "กรุณากรอกชื่อ นามสกุล"
	MsgMemberCodePattern  = "เลขประจำตัวสมาชิกต้องเป็นตัวเลข 3 หลัก"
	MsgGroupBlank         = "ห้ามมีช่องว่างในพรรค"
	MsgImageMissing       = "กรุณาใส่รูปภาพ"
	MsgMemberCodeTaken    = "เลขประจำตัวสมาชิกนี้มีอยู่แล้ว"
	MsgTitleTaken         = "ชื่อ นามสกุลนี้มีอยู่แล้ว"
)

var memberCodePattern = regexp.MustCompile(`^\d{3}$`)

type fieldSpec struct {
	name  string
	check func(value string, present bool) *domain.FieldError
}

func requiredString(message string) func(string, bool) *domain.FieldError {
	return func(value string, _ bool) *domain.FieldError {
		if strings.TrimSpace(value) == "" {
			return &domain.FieldError{Code: domain.ErrCodeEmptyField, Message: message}
		}
		return nil
	}
}

func requiredURL(emptyMessage, invalidMessage string) func(string, bool) *domain.FieldError {
	return func(value string, _ bool) *domain.FieldError {
		if strings.TrimSpace(value) == "" {
			return &domain.FieldError{Code: domain.ErrCodeEmptyField, Message: emptyMessage}
		}
		u, err := url.Parse(value)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return &domain.FieldError{Code: domain.ErrCodeInvalidURL, Message: invalidMessage}
		}
		return nil
	}
}

func requiredPattern(pattern *regexp.Regexp, message string) func(string, bool) *domain.FieldError {
	return func(value string, _ bool) *domain.FieldError {
		if !pattern.MatchString(strings.TrimSpace(value)) {
			return &domain.FieldError{Code: domain.ErrCodePatternMismatch, Message: message}
		}
		return nil
	}
}

// optionalNonBlank passes an absent or empty value but rejects whitespace-only
// content.
func optionalNonBlank(message string) func(string, bool) *domain.FieldError {
	return func(value string, present bool) *domain.FieldError {
		if !present || value == "" {
			return nil
		}
		if strings.TrimSpace(value) == "" {
			return &domain.FieldError{Code: domain.ErrCodeBlankNotAllowed, Message: message}
		}
		return nil
	}
}

var memberSpecs = []fieldSpec{
	{name: FieldPrefix, check: requiredString(MsgPrefixEmpty)},
	{name: FieldFirstName, check: requiredString(MsgFirstNameEmpty)},
	{name: FieldLastName, check: requiredString(MsgLastNameEmpty)},
	{name: FieldPhoto, check: requiredURL(MsgPhotoEmpty, MsgPhotoInvalidURL)},
	{name: FieldWorkHistory, check: requiredString(MsgWorkHistoryEmpty)},
	{name: FieldPastAchievements, check: requiredString(MsgPastAchievementsEmpty)},
	{name: FieldPoliticalParty, check: requiredString(MsgPoliticalPartyEmpty)},
}

var entrySpecs = []fieldSpec{
	{name: FieldTitle, check: requiredString(MsgTitleEmpty)},
	{name: FieldMemberCode, check: requiredPattern(memberCodePattern, MsgMemberCodePattern)},
	{name: FieldGroup, check: optionalNonBlank(MsgGroupBlank)},
}

// CheckMember validates the full profile variant. MinisterPosition and
// Ministry are free-form optional fields with no checks.
func CheckMember(in RawInput) domain.FieldErrors {
	return runSpecs(memberSpecs, in)
}

// CheckEntry validates the compact roster variant. On create the image
// reference must be present; on edit its absence means "keep existing image".
func CheckEntry(in RawInput, mode Mode) domain.FieldErrors {
	errs := runSpecs(entrySpecs, in)
	if mode == ModeCreate && strings.TrimSpace(in[FieldImage]) == "" {
		errs.Set(FieldImage, domain.ErrCodeMissingImage, MsgImageMissing)
	}
	return errs
}

func runSpecs(specs []fieldSpec, in RawInput) domain.FieldErrors {
	errs := domain.FieldErrors{}
	for _, spec := range specs {
		value, present := in[spec.name]
		if fe := spec.check(value, present); fe != nil {
			errs[spec.name] = *fe
		}
	}
	return errs
}
