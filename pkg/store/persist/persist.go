// Package persist saves small named documents, such as store search
// parameters, between CLI invocations.
package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	json "github.com/goccy/go-json"
)

// ErrNotFound is returned by Load when nothing was saved under the name.
var ErrNotFound = errors.New("not found")

// ErrInvalidName is returned for names that are not a single safe path element.
var ErrInvalidName = errors.New("invalid name")

// Persister loads and saves JSON-encodable values by name.
type Persister interface {
	Load(name string, v any) error
	Save(name string, v any) error
}

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

func checkName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// FilePersister stores one JSON file per name in a directory.
type FilePersister struct {
	dir string
	mu  sync.Mutex
}

// NewFilePersister returns a persister rooted at dir. An empty dir uses
// DefaultStateDir. The directory is created on first save.
func NewFilePersister(dir string) *FilePersister {
	if dir == "" {
		dir = DefaultStateDir()
	}
	return &FilePersister{dir: dir}
}

// Dir returns the directory documents are written to.
func (p *FilePersister) Dir() string {
	return p.dir
}

func (p *FilePersister) path(name string) string {
	return filepath.Join(p.dir, name+".json")
}

// Load decodes the document saved under name into v.
func (p *FilePersister) Load(name string, v any) error {
	if err := checkName(name); err != nil {
		return err
	}
	data, err := os.ReadFile(p.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// Save writes v under name, replacing any previous document atomically.
func (p *FilePersister) Save(name string, v any) error {
	if err := checkName(name); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := os.MkdirAll(p.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	tmp, err := os.CreateTemp(p.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmpName, p.path(name)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Delete removes the document saved under name. Missing documents are not an error.
func (p *FilePersister) Delete(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.Remove(p.path(name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemoryPersister keeps documents in memory. Values round-trip through JSON
// so callers never share state with the persister.
type MemoryPersister struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewMemoryPersister returns an empty in-memory persister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{docs: make(map[string][]byte)}
}

func (p *MemoryPersister) Load(name string, v any) error {
	if err := checkName(name); err != nil {
		return err
	}
	p.mu.Lock()
	data, ok := p.docs[name]
	p.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(data, v)
}

func (p *MemoryPersister) Save(name string, v any) error {
	if err := checkName(name); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	p.mu.Lock()
	p.docs[name] = data
	p.mu.Unlock()
	return nil
}

// Delete removes the document saved under name.
func (p *MemoryPersister) Delete(name string) error {
	p.mu.Lock()
	delete(p.docs, name)
	p.mu.Unlock()
	return nil
}
