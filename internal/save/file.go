package save

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps one pretty-printed JSON file per slot in Dir.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "saves"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating save directory: %w", err)
	}
	return &FileStore{Dir: dir}, nil
}

func (s *FileStore) path(slot string) string {
	return filepath.Join(s.Dir, slot+".json")
}

func (s *FileStore) Exists(_ context.Context, slot string) (bool, error) {
	if err := checkSlot(slot); err != nil {
		return false, err
	}
	_, err := os.Stat(s.path(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat save %q: %w", slot, err)
	}
	return true, nil
}

func (s *FileStore) Load(_ context.Context, slot string) (Save, bool, error) {
	if err := checkSlot(slot); err != nil {
		return Save{}, false, err
	}
	b, err := os.ReadFile(s.path(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return Save{}, false, nil
	}
	if err != nil {
		return Save{}, false, fmt.Errorf("reading save %q: %w", slot, err)
	}
	var sv Save
	if err := json.Unmarshal(b, &sv); err != nil {
		return Save{}, false, fmt.Errorf("decoding save %q: %w", slot, err)
	}
	return sv, true, nil
}

// Write replaces the slot atomically: the file is written aside, then
// renamed.
func (s *FileStore) Write(_ context.Context, slot string, sv Save) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	b, err := json.MarshalIndent(sv, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding save %q: %w", slot, err)
	}
	tmp, err := os.CreateTemp(s.Dir, slot+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing save %q: %w", slot, err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing save %q: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing save %q: %w", slot, err)
	}
	if err := os.Rename(tmp.Name(), s.path(slot)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing save %q: %w", slot, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
