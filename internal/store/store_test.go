package store

import (
	"os"
	"path/filepath"
	"testing"

	"atscan/internal/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return New(t.TempDir(), logger)
}

func TestSaveGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	saved, err := s.Save(CollectionCVs, "alice", "Experience\n- developed services")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.SizeBytes != len("Experience\n- developed services") {
		t.Errorf("size = %d", saved.SizeBytes)
	}

	got, err := s.Get(CollectionCVs, "alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Content != "Experience\n- developed services" {
		t.Errorf("content = %q", got.Content)
	}
	if got.Name != "alice" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Save(CollectionJobDescriptions, "backend", "v1"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := s.Save(CollectionJobDescriptions, "backend", "v2"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(CollectionJobDescriptions, "backend")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Content != "v2" {
		t.Errorf("content = %q, want v2", got.Content)
	}
}

func TestListSortsAndSkipsCorrupt(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"charlie", "alice", "bob"} {
		if _, err := s.Save(CollectionCVs, name, "content"); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	// drop a corrupt entry alongside the valid ones
	corrupt := filepath.Join(s.baseDir, string(CollectionCVs), "broken.json")
	if err := os.WriteFile(corrupt, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt: %v", err)
	}

	docs, err := s.List(CollectionCVs)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("len = %d, want 3", len(docs))
	}
	for i, want := range []string{"alice", "bob", "charlie"} {
		if docs[i].Name != want {
			t.Errorf("docs[%d] = %q, want %q", i, docs[i].Name, want)
		}
	}
}

func TestListEmptyCollection(t *testing.T) {
	s := newTestStore(t)
	docs, err := s.List(CollectionCVs)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("docs = %v", docs)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Save(CollectionCVs, "alice", "content"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(CollectionCVs, "alice"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(CollectionCVs, "alice"); err == nil {
		t.Error("Get after delete should fail")
	}
	if err := s.Delete(CollectionCVs, "alice"); err == nil {
		t.Error("double delete should fail")
	}
}

func TestInvalidNames(t *testing.T) {
	s := newTestStore(t)
	for _, name := range []string{"", "../escape", "a/b", `a\b`} {
		if _, err := s.Save(CollectionCVs, name, "content"); err == nil {
			t.Errorf("Save(%q) should fail", name)
		}
		if _, err := s.Get(CollectionCVs, name); err == nil {
			t.Errorf("Get(%q) should fail", name)
		}
	}
}
