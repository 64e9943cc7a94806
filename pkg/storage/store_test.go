package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blackcoderx/volt/pkg/core"
)

func TestSaveAndListCollectionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	c := core.ApiCollection{
		ID:   "abc-123",
		Name: "My Collection",
		Endpoints: []core.ApiEndpoint{
			{ID: "e1", Name: "Get users", Method: core.MethodGet, URL: "http://x/users"},
			{ID: "e2", Name: "Create user", Method: core.MethodPost, URL: "http://x/users"},
		},
		CreatedAt: time.Now().Truncate(time.Second),
		UpdatedAt: time.Now().Truncate(time.Second),
	}

	if err := s.SaveCollection(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, errs := s.ListCollections()
	if len(errs) != 0 {
		t.Fatalf("unexpected load errors: %v", errs)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 collection, got %d", len(loaded))
	}
	got := loaded[0]
	if got.ID != c.ID || got.Name != c.Name || len(got.Endpoints) != 2 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Endpoints[0].ID != "e1" || got.Endpoints[1].ID != "e2" {
		t.Fatalf("endpoint order not preserved: %+v", got.Endpoints)
	}
}

func TestDeleteCollection(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	c := core.ApiCollection{ID: "to-delete", Name: "x"}
	if err := s.SaveCollection(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.DeleteCollection("to-delete"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, _ := s.ListCollections()
	if len(loaded) != 0 {
		t.Fatalf("expected collection to be deleted, got %d", len(loaded))
	}
}

func TestDeleteMissingCollectionIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.DeleteCollection("never-existed"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestListCollectionsSkipsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	good := core.ApiCollection{ID: "good", Name: "Good"}
	if err := s.SaveCollection(good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	corruptPath := filepath.Join(dir, "collections", "bad.yaml")
	writeFileAtomic(corruptPath, []byte("{not: valid: yaml: at: all"))

	loaded, errs := s.ListCollections()
	if len(errs) != 1 {
		t.Fatalf("expected 1 load error, got %d", len(errs))
	}
	if len(loaded) != 1 || loaded[0].ID != "good" {
		t.Fatalf("expected the good collection to still load, got %+v", loaded)
	}
}

func TestListCollectionsEmptyDirReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	loaded, errs := s.ListCollections()
	if len(loaded) != 0 || len(errs) != 0 {
		t.Fatalf("expected empty, got loaded=%v errs=%v", loaded, errs)
	}
}

func TestLoadVariablesDefaultsWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	set, err := s.LoadVariables()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Name != core.DefaultVariableSetName {
		t.Fatalf("expected default name, got %q", set.Name)
	}
	if set.Variables == nil {
		t.Fatal("expected non-nil variables map")
	}
}

func TestSaveAndLoadVariablesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	set := core.VariableSet{Name: "default", Variables: map[string]string{"host": "api.example.com"}}
	if err := s.SaveVariables(set); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, err := s.LoadVariables()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Variables["host"] != "api.example.com" {
		t.Fatalf("got %+v", loaded)
	}
}

func TestSeedVariablesFromEnvMergesOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.SeedVariablesFromEnv(map[string]string{"API_KEY": "secret"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, err := s.LoadVariables()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Variables["API_KEY"] != "secret" {
		t.Fatalf("expected seeded variable, got %+v", loaded.Variables)
	}
}

func TestSeedVariablesFromEnvSkipsOnceFileExists(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.SaveVariables(core.VariableSet{Name: "default", Variables: map[string]string{"host": "api.example.com"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SeedVariablesFromEnv(map[string]string{"API_KEY": "secret"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, err := s.LoadVariables()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := loaded.Variables["API_KEY"]; ok {
		t.Fatalf("expected .env not merged once variables file already exists, got %+v", loaded.Variables)
	}
	if loaded.Variables["host"] != "api.example.com" {
		t.Fatalf("expected existing variables untouched, got %+v", loaded.Variables)
	}
}

func TestSeedVariablesFromEnvNoopOnEmptyPairs(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.SeedVariablesFromEnv(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "variables.yaml")); !os.IsNotExist(err) {
		t.Fatalf("expected no variables file to be created, stat err=%v", err)
	}
}

func TestSaveCollectionRejectsPathTraversalID(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	c := core.ApiCollection{ID: "../../etc/passwd", Name: "evil"}
	if err := s.SaveCollection(c); err == nil {
		t.Fatal("expected error for path-traversal id")
	}
}
