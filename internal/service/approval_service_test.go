package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"email-responder-be/internal/pkg/logger"
	"email-responder-be/internal/repository/memory"
	"email-responder-be/pkg/draftstore"
	"email-responder-be/pkg/email"
)

func newTestApprovalService(t *testing.T) (IApprovalService, *draftstore.Store) {
	t.Helper()

	store := draftstore.NewStore(filepath.Join(t.TempDir(), "drafts.json"))
	err := store.Put(draftstore.Record{
		MessageId: "msg-42",
		Text:      "old body",
		Email:     email.Message{Id: "msg-42", Sender: "a@uni.edu", Subject: "Exam"},
	})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	svc := NewApprovalService(memory.NewSessionRepository(0), store, nil, logger.NewNoopLogger())
	return svc, store
}

func TestHandleOperatorMessageListAndFocus(t *testing.T) {
	svc, _ := newTestApprovalService(t)
	ctx := context.Background()

	reply, err := svc.HandleOperatorMessage(ctx, "op-1", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(reply, "/draft msg-42") {
		t.Errorf("list should enumerate pending drafts, got %q", reply)
	}

	reply, err = svc.HandleOperatorMessage(ctx, "op-1", "/draft msg-42")
	if err != nil {
		t.Fatalf("focus: %v", err)
	}
	if !strings.Contains(reply, "old body") {
		t.Errorf("focus should show the draft text, got %q", reply)
	}
}

func TestModificationTextSwallowsCommandWords(t *testing.T) {
	svc, store := newTestApprovalService(t)
	ctx := context.Background()

	if _, err := svc.HandleOperatorMessage(ctx, "op-1", "/draft msg-42"); err != nil {
		t.Fatalf("focus: %v", err)
	}
	if _, err := svc.HandleOperatorMessage(ctx, "op-1", "modify"); err != nil {
		t.Fatalf("modify: %v", err)
	}

	// "list" is the replacement body here, not the list command.
	reply, err := svc.HandleOperatorMessage(ctx, "op-1", "list")
	if err != nil {
		t.Fatalf("replacement text: %v", err)
	}
	if !strings.Contains(reply, "Draft updated") {
		t.Errorf("expected update confirmation, got %q", reply)
	}

	record, ok, err := store.Get("msg-42")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if record.Text != "list" {
		t.Errorf("draft text = %q, want the verbatim message %q", record.Text, "list")
	}

	// The session is focused again, so "list" is a command once more.
	reply, err = svc.HandleOperatorMessage(ctx, "op-1", "list")
	if err != nil {
		t.Fatalf("list after update: %v", err)
	}
	if !strings.Contains(reply, "Pending drafts") {
		t.Errorf("list should work again after the update, got %q", reply)
	}
}
