package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileBackend keeps all sessions in one YAML document on local disk.
// Each write replaces the file atomically and fsyncs it before returning.
type FileBackend struct {
	mu   sync.Mutex
	path string
}

type fileDocument struct {
	Sessions map[string]Record `yaml:"sessions"`
}

// NewFileBackend stores sessions at path. The file is created on first save.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Save(ctx context.Context, rec Record) error {
	if !rec.valid() {
		return ErrInvalidRecord
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.read()
	if err != nil {
		return err
	}
	doc.Sessions[rec.ID] = rec
	return b.write(doc)
}

func (b *FileBackend) Load(ctx context.Context, sessionID string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.read()
	if err != nil {
		return nil, err
	}
	rec, ok := doc.Sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	rec.ID = sessionID
	return &rec, nil
}

func (b *FileBackend) Delete(ctx context.Context, sessionID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.read()
	if err != nil {
		return false, err
	}
	if _, ok := doc.Sessions[sessionID]; !ok {
		return false, nil
	}
	delete(doc.Sessions, sessionID)
	return true, b.write(doc)
}

func (b *FileBackend) read() (*fileDocument, error) {
	doc := &fileDocument{}

	data, err := os.ReadFile(b.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read session file: %w", err)
	default:
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("decode session file %s: %w", b.path, err)
		}
	}

	if doc.Sessions == nil {
		doc.Sessions = make(map[string]Record)
	}
	return doc, nil
}

func (b *FileBackend) write(doc *fileDocument) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}

	// Persist the rename itself.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}
