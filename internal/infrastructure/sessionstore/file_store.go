// Package sessionstore keeps the client's session record on local disk.
package sessionstore

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorilla/securecookie"

	"github.com/uninorte/lead-system/internal/core/session"
)

const recordName = "leadctl_session"

// ErrTampered is returned when the stored record fails signature or decryption checks.
var ErrTampered = errors.New("session file failed integrity check")

// FileStore implements session.Store with a single file. When a secret is
// configured the record is signed and encrypted with securecookie.
type FileStore struct {
	path  string
	codec *securecookie.SecureCookie
}

// NewFileStore stores the record at path. An empty secret stores plain JSON.
func NewFileStore(path, secret string) *FileStore {
	fs := &FileStore{path: path}
	if secret != "" {
		h := sha256.Sum256([]byte("auth:" + secret))
		e := sha256.Sum256([]byte("enc:" + secret))
		fs.codec = securecookie.New(h[:], e[:]).
			MaxAge(0).
			MaxLength(0).
			SetSerializer(securecookie.NopEncoder{})
	}
	return fs
}

// Path returns the file backing the store.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(_ context.Context) ([]byte, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, session.ErrNoRecord
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if len(raw) == 0 {
		return nil, session.ErrNoRecord
	}
	if s.codec == nil {
		return raw, nil
	}

	var data []byte
	if err := s.codec.Decode(recordName, string(raw), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTampered, err)
	}
	return data, nil
}

// Save replaces the file atomically so a crash never leaves half a record.
func (s *FileStore) Save(_ context.Context, data []byte) error {
	payload := data
	if s.codec != nil {
		encoded, err := s.codec.Encode(recordName, data)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		payload = []byte(encoded)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
