package draftstore

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"email-responder-be/pkg/email"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "drafts.json"))
}

func sampleRecord(id string) Record {
	return Record{
		MessageId: id,
		Text:      "Hello,\n\nThanks for your email.\n\nBest,\nSam",
		Email:     email.Message{Id: id, Sender: "a@b.com", Subject: "Hi", Body: "Hello"},
	}
}

func TestMissingFileIsEmptyStore(t *testing.T) {
	store := newTestStore(t)

	ids, err := store.ListIds()
	if err != nil {
		t.Fatalf("ListIds: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected empty store, got %v", ids)
	}
	if _, ok, err := store.Get("nope"); err != nil || ok {
		t.Errorf("Get on empty store = (%v, %v)", ok, err)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if err := store.Put(sampleRecord("msg-1")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := store.Get("msg-1")
	if err != nil || !ok {
		t.Fatalf("Get = (%v, %v)", ok, err)
	}
	if got.Email.Sender != "a@b.com" || got.Text == "" {
		t.Errorf("record lost data: %+v", got)
	}
}

func TestPutOverwrites(t *testing.T) {
	store := newTestStore(t)

	record := sampleRecord("msg-1")
	if err := store.Put(record); err != nil {
		t.Fatal(err)
	}
	record.Text = "replacement"
	if err := store.Put(record); err != nil {
		t.Fatal(err)
	}

	got, _, _ := store.Get("msg-1")
	if got.Text != "replacement" {
		t.Errorf("text = %q, want overwrite", got.Text)
	}
}

func TestUpdateTextMissingIdReturnsFalse(t *testing.T) {
	store := newTestStore(t)

	ok, err := store.UpdateText("ghost", "new text")
	if err != nil {
		t.Fatalf("UpdateText: %v", err)
	}
	if ok {
		t.Error("updating an absent draft must report false")
	}
}

func TestUpdateTextPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.json")
	store := NewStore(path)

	if err := store.Put(sampleRecord("msg-1")); err != nil {
		t.Fatal(err)
	}
	ok, err := store.UpdateText("msg-1", "edited body")
	if err != nil || !ok {
		t.Fatalf("UpdateText = (%v, %v)", ok, err)
	}

	// A fresh store over the same file must see the mutation.
	reopened := NewStore(path)
	got, _, _ := reopened.Get("msg-1")
	if got.Text != "edited body" {
		t.Errorf("text = %q after reload", got.Text)
	}
	if got.Email.Sender != "a@b.com" {
		t.Error("update must not touch the source email")
	}
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)
	if err := store.Put(sampleRecord("msg-1")); err != nil {
		t.Fatal(err)
	}

	ok, err := store.Remove("msg-1")
	if err != nil || !ok {
		t.Fatalf("Remove = (%v, %v)", ok, err)
	}
	if ok, _ := store.Remove("msg-1"); ok {
		t.Error("second Remove must report false")
	}
	if _, ok, _ := store.Get("msg-1"); ok {
		t.Error("removed draft still readable")
	}
}

func TestListIds(t *testing.T) {
	store := newTestStore(t)
	for _, id := range []string{"a", "b", "c"} {
		if err := store.Put(sampleRecord(id)); err != nil {
			t.Fatal(err)
		}
	}

	ids, err := store.ListIds()
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(ids)
	if len(ids) != 3 || ids[0] != "a" || ids[2] != "c" {
		t.Errorf("ids = %v", ids)
	}
}

func TestCorruptSnapshotSurfacesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path)
	if _, err := store.ListIds(); err == nil {
		t.Fatal("expected error for corrupt snapshot")
	}
}

func TestConcurrentMutationsDoNotLoseUpdates(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n%5))
			_ = store.Put(sampleRecord(id))
			_, _ = store.UpdateText(id, "updated")
		}(i)
	}
	wg.Wait()

	ids, err := store.ListIds()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 5 {
		t.Errorf("expected 5 drafts to survive, got %v", ids)
	}
}
