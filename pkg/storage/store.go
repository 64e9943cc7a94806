// Package storage is the on-disk persistence collaborator: one YAML file
// per collection keyed by id, and a single YAML file for the variable
// set, both written atomically. Grounded on the teacher's
// pkg/storage/yaml.go (gopkg.in/yaml.v3, os.MkdirAll + write pattern) and
// env.go (single-file variable persistence), extended with atomic
// write-temp-then-rename (see atomic.go) and a corrupt-file recovery path
// the teacher does not need (§4.1: unreadable files are skipped and
// reported, not fatal).
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/blackcoderx/volt/pkg/core"
	"gopkg.in/yaml.v3"
)

const collectionFileExt = ".yaml"

// Store is the storage collaborator. collectionsDir holds one file per
// collection and variablesFile is the single variable-set file.
type Store struct {
	collectionsDir string
	variablesFile  string
}

// New creates a Store rooted at baseDir, e.g. "~/.volt".
func New(baseDir string) *Store {
	return &Store{
		collectionsDir: filepath.Join(baseDir, "collections"),
		variablesFile:  filepath.Join(baseDir, "variables.yaml"),
	}
}

// LoadError describes one collection file that failed to load; callers
// surface it to the router as a status message while still returning every
// collection that DID load successfully.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// ListCollections loads every collection file under collectionsDir. A
// corrupt file is skipped and reported as a LoadError rather than failing
// the whole listing, per §4.1's recovery contract.
func (s *Store) ListCollections() ([]core.ApiCollection, []error) {
	entries, err := os.ReadDir(s.collectionsDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, []error{&core.SerializationError{Path: s.collectionsDir, Err: err}}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), collectionFileExt) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var collections []core.ApiCollection
	var loadErrors []error
	for _, name := range names {
		path := filepath.Join(s.collectionsDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			loadErrors = append(loadErrors, &LoadError{Path: path, Err: err})
			continue
		}
		var c core.ApiCollection
		if err := yaml.Unmarshal(data, &c); err != nil {
			loadErrors = append(loadErrors, &LoadError{Path: path, Err: err})
			continue
		}
		collections = append(collections, c)
	}
	return collections, loadErrors
}

// SaveCollection persists c atomically, keyed by its id.
func (s *Store) SaveCollection(c core.ApiCollection) error {
	path, err := safeJoin(s.collectionsDir, c.ID+collectionFileExt)
	if err != nil {
		return &core.SerializationError{Path: c.ID, Err: err}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return &core.SerializationError{Path: path, Err: err}
	}
	if err := writeFileAtomic(path, data); err != nil {
		return &core.SerializationError{Path: path, Err: err}
	}
	return nil
}

// DeleteCollection removes the collection file for id. Deleting an
// already-absent collection is not an error.
func (s *Store) DeleteCollection(id string) error {
	path, err := safeJoin(s.collectionsDir, id+collectionFileExt)
	if err != nil {
		return &core.SerializationError{Path: id, Err: err}
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return &core.SerializationError{Path: path, Err: err}
	}
	return nil
}

// LoadVariables reads the single variable-set file, returning a fresh
// empty default set if it does not yet exist.
func (s *Store) LoadVariables() (core.VariableSet, error) {
	data, err := os.ReadFile(s.variablesFile)
	if os.IsNotExist(err) {
		return core.NewDefaultVariableSet(), nil
	}
	if err != nil {
		return core.VariableSet{}, &core.SerializationError{Path: s.variablesFile, Err: err}
	}
	var set core.VariableSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return core.VariableSet{}, &core.SerializationError{Path: s.variablesFile, Err: err}
	}
	if set.Variables == nil {
		set.Variables = map[string]string{}
	}
	if set.Name == "" {
		set.Name = core.DefaultVariableSetName
	}
	return set, nil
}

// SeedVariablesFromEnv merges .env key/value pairs into the default
// variable set on first run only: once variables.yaml exists on disk the
// set is user-owned and .env is never merged into it again. A no-op when
// pairs is empty or the file already exists.
func (s *Store) SeedVariablesFromEnv(pairs map[string]string) error {
	if len(pairs) == 0 {
		return nil
	}
	if _, err := os.Stat(s.variablesFile); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return &core.SerializationError{Path: s.variablesFile, Err: err}
	}
	set := core.NewDefaultVariableSet()
	for k, v := range pairs {
		set.Variables[k] = v
	}
	return s.SaveVariables(set)
}

// SaveVariables persists set atomically to the single variables file.
func (s *Store) SaveVariables(set core.VariableSet) error {
	data, err := yaml.Marshal(set)
	if err != nil {
		return &core.SerializationError{Path: s.variablesFile, Err: err}
	}
	if err := writeFileAtomic(s.variablesFile, data); err != nil {
		return &core.SerializationError{Path: s.variablesFile, Err: err}
	}
	return nil
}
