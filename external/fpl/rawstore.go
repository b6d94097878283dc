package fpl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RawStore keeps upstream payloads on disk, keyed by request path, so a build can be
// replayed without the network.
type RawStore struct {
	root string
}

func NewRawStore(root string) *RawStore {
	return &RawStore{root: strings.TrimSpace(root)}
}

func (s *RawStore) Enabled() bool {
	return s != nil && s.root != ""
}

func (s *RawStore) Path(requestPath string) string {
	rel := strings.Trim(requestPath, "/")
	if rel == "" {
		rel = "index"
	}
	return filepath.Join(s.root, filepath.FromSlash(rel)+".json")
}

// Read returns the stored payload and whether one was found.
func (s *RawStore) Read(requestPath string) ([]byte, bool, error) {
	if !s.Enabled() {
		return nil, false, nil
	}
	raw, err := os.ReadFile(s.Path(requestPath))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read raw payload %s: %w", requestPath, err)
	}
	return raw, true, nil
}

func (s *RawStore) Write(requestPath string, raw []byte) error {
	if !s.Enabled() {
		return nil
	}
	path := s.Path(requestPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create raw payload dir: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write raw payload %s: %w", requestPath, err)
	}
	return nil
}
