// Package storesvc persists the little client-side state the SPA kept in
// local storage: the session object under one key, plus a couple of one-off
// workflow keys (last password-reset email, per-day attendance-marked flags).
package storesvc

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/kazi/core"
)

const localFileName = "local.json"

// FileStore keeps the session in a single JSON file and the one-off keys in a
// sibling local.json. Files are user-only (0600).
type FileStore struct {
	sessionPath string
	localPath   string
	mutex       sync.Mutex
}

var _ core.SessionStore = (*FileStore)(nil)

func NewFileStore(sessionPath string) *FileStore {
	return &FileStore{
		sessionPath: sessionPath,
		localPath:   filepath.Join(filepath.Dir(sessionPath), localFileName),
	}
}

func (s *FileStore) Load() (core.Session, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var sess core.Session
	data, err := os.ReadFile(s.sessionPath)
	if err != nil {
		if os.IsNotExist(err) {
			return sess, nil
		}
		return sess, errors.Wrap(err, "reading session file")
	}
	if err := json.Unmarshal(data, &sess); err != nil {
		return core.Session{}, errors.Wrap(err, "decoding session file")
	}
	return sess, nil
}

func (s *FileStore) Save(sess core.Session) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	return s.write(s.sessionPath, data)
}

func (s *FileStore) Drop() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := os.Remove(s.sessionPath); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing session file")
	}
	return nil
}

// SetLastResetEmail remembers the email last submitted to the forgot-password
// flow so it can prefill the form next run.
func (s *FileStore) SetLastResetEmail(email string) error {
	return s.setLocal("last_reset_email", email)
}

func (s *FileStore) LastResetEmail() string {
	return s.getLocal("last_reset_email")
}

// MarkAttendance flags the employee as checked in for the given day.
func (s *FileStore) MarkAttendance(employeeID string, day time.Time) error {
	return s.setLocal("attendance_marked:"+employeeID, core.DateOf(day).String())
}

// AttendanceMarked reports whether the employee already checked in that day.
func (s *FileStore) AttendanceMarked(employeeID string, day time.Time) bool {
	return s.getLocal("attendance_marked:"+employeeID) == core.DateOf(day).String()
}

func (s *FileStore) setLocal(key, val string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	kv := s.readLocal()
	kv[key] = val
	data, err := json.Marshal(kv)
	if err != nil {
		return errors.Wrap(err, "encoding local state")
	}
	return s.write(s.localPath, data)
}

func (s *FileStore) getLocal(key string) string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.readLocal()[key]
}

func (s *FileStore) readLocal() map[string]string {
	kv := make(map[string]string)
	if data, err := os.ReadFile(s.localPath); err == nil {
		_ = json.Unmarshal(data, &kv) // a corrupt file is treated as empty
	}
	return kv
}

func (s *FileStore) write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(err, "creating state dir")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o600), "writing "+filepath.Base(path))
}
