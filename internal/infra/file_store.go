package infra

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Vovarama1992/voicelab/internal/models"
	"github.com/Vovarama1992/voicelab/internal/ports"
)

// FileStore keeps each session's artifacts in its own directory. The default
// session lives directly in the root, so a single-client deployment sees the
// plain audio/recording.wav layout.
type FileStore struct {
	root string

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is dropped from the store once nobody holds or waits on it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewFileStore(root string) (*FileStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{
		root:  abs,
		locks: make(map[string]*sessionLock),
	}, nil
}

var _ ports.Storage = (*FileStore)(nil)

func (s *FileStore) Root() string { return s.root }

func (s *FileStore) Lock(session string) func() {
	s.mu.Lock()
	l, ok := s.locks[session]
	if !ok {
		l = &sessionLock{}
		s.locks[session] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, session)
		}
		s.mu.Unlock()
	}
}

func (s *FileStore) sessionsDir() string {
	return filepath.Join(s.root, "sessions")
}

// Sweep deletes session directories whose newest entry is older than maxAge and
// returns how many were removed. The default session is never swept.
func (s *FileStore) Sweep(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.sessionsDir())
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("list sessions: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		ok, err := s.sweepOne(e.Name(), cutoff)
		if err != nil {
			return removed, err
		}
		if ok {
			removed++
		}
	}
	return removed, nil
}

func (s *FileStore) sweepOne(session string, cutoff time.Time) (bool, error) {
	unlock := s.Lock(session)
	defer unlock()

	dir := s.dir(session)
	last, err := lastModified(dir)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat session %s: %w", session, err)
	}
	if last.After(cutoff) {
		return false, nil
	}

	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("remove session %s: %w", session, err)
	}
	return true, nil
}

// lastModified is the newest mtime of dir and the files directly inside it.
func lastModified(dir string) (time.Time, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return time.Time{}, err
	}
	last := fi.ModTime()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return time.Time{}, err
	}
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(last) {
			last = info.ModTime()
		}
	}
	return last, nil
}

func (s *FileStore) dir(session string) string {
	if session == "" || session == models.DefaultSession {
		return s.root
	}
	return filepath.Join(s.sessionsDir(), filepath.Base(session))
}

func (s *FileStore) Path(session string, a models.Artifact) string {
	return filepath.Join(s.dir(session), filepath.Base(string(a)))
}

func (s *FileStore) Exists(session string, a models.Artifact) (bool, error) {
	fi, err := os.Stat(s.Path(session, a))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return fi.Mode().IsRegular(), nil
}

func (s *FileStore) Write(session string, a models.Artifact, r io.Reader) error {
	if err := os.MkdirAll(s.dir(session), 0755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	f, err := os.Create(s.Path(session, a))
	if err != nil {
		return fmt.Errorf("create %s: %w", a, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", a, err)
	}
	return f.Close()
}

func (s *FileStore) Read(session string, a models.Artifact) ([]byte, error) {
	return os.ReadFile(s.Path(session, a))
}

func (s *FileStore) Remove(session string, a models.Artifact) error {
	err := os.Remove(s.Path(session, a))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
