package profiles

import (
	"context"
	"sync"
	"sync/atomic"

	"pkt.systems/pslog"
	"pkt.systems/tabdeck/core"
	"pkt.systems/tabdeck/internal/appconfig"
	"pkt.systems/tabdeck/schema"
)

// Factory resolves configured profiles into pane content. It implements
// core.ContentFactory. The profile set can be swapped wholesale on config
// reload; sessions created from a removed profile keep running.
type Factory struct {
	mu       sync.RWMutex
	profiles map[schema.ProfileID]appconfig.ProfileConfig
	log      pslog.Logger
}

// New constructs a Factory from the configured profile list.
func New(logger pslog.Logger, configs []appconfig.ProfileConfig) *Factory {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	f := &Factory{log: logger}
	f.Replace(configs)
	return f
}

// Replace swaps the full profile set, typically after a config reload.
func (f *Factory) Replace(configs []appconfig.ProfileConfig) {
	profiles := make(map[schema.ProfileID]appconfig.ProfileConfig, len(configs))
	for _, cfg := range configs {
		profiles[schema.ProfileID(cfg.Name)] = cfg
	}
	f.mu.Lock()
	f.profiles = profiles
	f.mu.Unlock()
	f.log.Debug("profiles replaced", "count", len(profiles))
}

// Create resolves the profile and returns a content handle for it. A profile
// that is not configured yields schema.ErrSourceUnavailable.
func (f *Factory) Create(ctx context.Context, profile schema.ProfileID) (core.Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.RLock()
	cfg, ok := f.profiles[profile]
	f.mu.RUnlock()
	if !ok {
		f.log.Debug("profile unavailable", "profile", profile)
		return nil, schema.ErrSourceUnavailable
	}
	title := cfg.Title
	if title == "" {
		title = cfg.Name
	}
	return &session{title: title}, nil
}

// session is a content handle. The hosting layer owns the actual process;
// the core only tracks identity, title, and lifetime through this handle.
type session struct {
	title  string
	closed atomic.Bool
}

func (s *session) Title() string {
	return s.title
}

func (s *session) Close() error {
	s.closed.Store(true)
	return nil
}
