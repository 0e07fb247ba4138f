package persist

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"pkt.systems/pslog"
	"pkt.systems/tabdeck/schema"
)

// PaneLayout captures one node of a tab's split tree for persistence.
// Leaves carry a profile and title; internal nodes carry a direction, the
// first child's ratio, and exactly two children.
type PaneLayout struct {
	Direction schema.SplitDirection `json:"direction"`
	Ratio     float64               `json:"ratio,omitempty"`
	Profile   schema.ProfileID      `json:"profile,omitempty"`
	Title     string                `json:"title,omitempty"`
	Focused   bool                  `json:"focused,omitempty"`
	Children  []PaneLayout          `json:"children,omitempty"`
}

// TabSnapshot captures a tab for persistence.
type TabSnapshot struct {
	ID       schema.TabID    `json:"id"`
	Title    schema.TabTitle `json:"title"`
	ReadOnly bool            `json:"read_only,omitempty"`
	Layout   PaneLayout      `json:"layout"`
}

// WindowSnapshot captures a window's tab state for persistence.
type WindowSnapshot struct {
	Order   []schema.TabID `json:"order"`
	MRU     []schema.TabID `json:"mru"`
	Focused schema.TabID   `json:"focused,omitempty"`
	Tabs    []TabSnapshot  `json:"tabs"`
}

// Store persists window snapshots to disk.
type Store struct {
	dir string
	log pslog.Logger
}

// NewStore constructs a persistent store at the given directory.
func NewStore(dir string) (*Store, error) {
	return NewStoreWithLogger(dir, nil)
}

// NewStoreWithLogger constructs a persistent store with logging.
func NewStoreWithLogger(dir string, logger pslog.Logger) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("state directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	if logger != nil {
		logger = logger.With("state_dir", dir)
	}
	return &Store{dir: dir, log: logger}, nil
}

// Load reads a window snapshot from disk.
func (s *Store) Load(windowID schema.WindowID) (WindowSnapshot, bool, error) {
	path := s.pathForWindow(windowID)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if s.log != nil {
				s.log.Debug("state load miss", "window", windowID)
			}
			return WindowSnapshot{}, false, nil
		}
		if s.log != nil {
			s.log.Warn("state load failed", "window", windowID, "err", err)
		}
		return WindowSnapshot{}, false, err
	}
	var snapshot WindowSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		if s.log != nil {
			s.log.Warn("state load failed", "window", windowID, "err", err)
		}
		return WindowSnapshot{}, false, err
	}
	if s.log != nil {
		s.log.Debug("state load ok", "window", windowID, "tabs", len(snapshot.Tabs))
	}
	return snapshot, true, nil
}

// Save writes a window snapshot to disk atomically.
func (s *Store) Save(windowID schema.WindowID, snapshot WindowSnapshot) error {
	path := s.pathForWindow(windowID)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		if s.log != nil {
			s.log.Warn("state save failed", "window", windowID, "err", err)
		}
		return err
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		if s.log != nil {
			s.log.Warn("state save failed", "window", windowID, "err", err)
		}
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "state-*.json")
	if err != nil {
		if s.log != nil {
			s.log.Warn("state save failed", "window", windowID, "err", err)
		}
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		if s.log != nil {
			s.log.Warn("state save failed", "window", windowID, "err", err)
		}
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		if s.log != nil {
			s.log.Warn("state save failed", "window", windowID, "err", err)
		}
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		if s.log != nil {
			s.log.Warn("state save failed", "window", windowID, "err", err)
		}
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		_ = os.Remove(tmp.Name())
		if s.log != nil {
			s.log.Warn("state save failed", "window", windowID, "err", err)
		}
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		if s.log != nil {
			s.log.Warn("state save failed", "window", windowID, "err", err)
		}
		return err
	}
	if s.log != nil {
		s.log.Trace("state save ok", "window", windowID, "tabs", len(snapshot.Tabs))
	}
	return nil
}

func (s *Store) pathForWindow(windowID schema.WindowID) string {
	name := sanitize(string(windowID))
	if name == "" {
		name = "unknown"
	}
	return filepath.Join(s.dir, name+".json")
}

func sanitize(value string) string {
	var b strings.Builder
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		if r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	return b.String()
}
