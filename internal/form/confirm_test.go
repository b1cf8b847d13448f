package form

import (
	"context"
	"errors"
	"strings"
	"testing"

	"rostercore/internal/core"
	"rostercore/internal/schema"
)

func newConfirmFixture(t *testing.T) (*core.Service, *DeleteConfirmation, string) {
	t.Helper()
	svc := core.NewInMemoryService()
	key, err := svc.AttachPortrait(context.Background(), strings.NewReader("jpegbytes"), "image/jpeg")
	if err != nil {
		t.Fatalf("attach portrait: %v", err)
	}
	created, ferrs, err := svc.CreateRosterEntry(context.Background(), schema.RawInput{
		schema.FieldTitle:      "สมชาย ใจดี",
		schema.FieldMemberCode: "123",
		schema.FieldImage:      key,
	})
	if err != nil || len(ferrs) != 0 {
		t.Fatalf("seed entry: ferrs=%v err=%v", ferrs, err)
	}
	gate := NewDeleteConfirmation(ConfirmInline, svc.DeleteRosterEntry)
	return svc, gate, created.ID
}

func TestConfirmWithoutRequestFails(t *testing.T) {
	_, gate, _ := newConfirmFixture(t)
	if _, err := gate.Confirm(context.Background()); !errors.Is(err, ErrNoPendingDelete) {
		t.Fatalf("confirm without request = %v", err)
	}
}

func TestRequestAloneDeletesNothing(t *testing.T) {
	svc, gate, id := newConfirmFixture(t)
	gate.Request(id)

	pendingID, pending := gate.Pending()
	if !pending || pendingID != id {
		t.Fatalf("pending = %q %v", pendingID, pending)
	}
	if _, ok := svc.GetRosterEntry(id); !ok {
		t.Fatal("request must not delete")
	}
}

func TestCancelDropsPendingRequest(t *testing.T) {
	svc, gate, id := newConfirmFixture(t)
	gate.Request(id)
	gate.Cancel()

	if _, pending := gate.Pending(); pending {
		t.Fatal("cancel left a pending request")
	}
	if _, ok := svc.GetRosterEntry(id); !ok {
		t.Fatal("cancel must not delete")
	}
	if _, err := gate.Confirm(context.Background()); !errors.Is(err, ErrNoPendingDelete) {
		t.Fatalf("confirm after cancel = %v", err)
	}
}

func TestConfirmDeletesAndClearsPending(t *testing.T) {
	svc, gate, id := newConfirmFixture(t)
	gate.Request(id)

	existed, err := gate.Confirm(context.Background())
	if err != nil || !existed {
		t.Fatalf("confirm existed=%v err=%v", existed, err)
	}
	if _, ok := svc.GetRosterEntry(id); ok {
		t.Fatal("record survived confirmed delete")
	}
	if _, pending := gate.Pending(); pending {
		t.Fatal("pending not cleared after confirm")
	}
}

func TestConfirmVanishedRecordReportsFalse(t *testing.T) {
	svc, gate, id := newConfirmFixture(t)
	gate.Request(id)
	if _, err := svc.DeleteRosterEntry(context.Background(), id); err != nil {
		t.Fatalf("delete behind gate: %v", err)
	}

	existed, err := gate.Confirm(context.Background())
	if err != nil || existed {
		t.Fatalf("confirm existed=%v err=%v", existed, err)
	}
}

func TestSecondRequestReplacesFirst(t *testing.T) {
	svc, gate, id := newConfirmFixture(t)
	key, err := svc.AttachPortrait(context.Background(), strings.NewReader("png"), "image/png")
	if err != nil {
		t.Fatalf("attach portrait: %v", err)
	}
	second, ferrs, err := svc.CreateRosterEntry(context.Background(), schema.RawInput{
		schema.FieldTitle:      "สมหญิง รักเรียน",
		schema.FieldMemberCode: "456",
		schema.FieldImage:      key,
	})
	if err != nil || len(ferrs) != 0 {
		t.Fatalf("seed second: ferrs=%v err=%v", ferrs, err)
	}

	gate.Request(id)
	gate.Request(second.ID)
	if existed, err := gate.Confirm(context.Background()); err != nil || !existed {
		t.Fatalf("confirm existed=%v err=%v", existed, err)
	}
	if _, ok := svc.GetRosterEntry(id); !ok {
		t.Fatal("first record must survive a replaced request")
	}
	if _, ok := svc.GetRosterEntry(second.ID); ok {
		t.Fatal("second record should be gone")
	}
}

func TestStyleFromEnv(t *testing.T) {
	t.Setenv("ROSTERCORE_CONFIRM_STYLE", "")
	if style, err := StyleFromEnv(); err != nil || style != ConfirmInline {
		t.Fatalf("default style=%v err=%v", style, err)
	}

	t.Setenv("ROSTERCORE_CONFIRM_STYLE", "modal")
	if style, err := StyleFromEnv(); err != nil || style != ConfirmModal {
		t.Fatalf("modal style=%v err=%v", style, err)
	}

	t.Setenv("ROSTERCORE_CONFIRM_STYLE", "popup")
	if _, err := StyleFromEnv(); err == nil {
		t.Fatal("expected error for unknown style")
	}
}
