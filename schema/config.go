package schema

import "errors"

// ServiceConfig defines defaults and limits for the core service.
type ServiceConfig struct {
	StateDir       string
	DefaultProfile ProfileID
	SwitchMode     SwitchMode
	// DefaultSplitRatio is the ratio given to the new pane on split when the
	// request does not specify one.
	DefaultSplitRatio float64
	// MinSplitRatio is the smallest share a pane may be resized down to.
	MinSplitRatio float64
	// ResizeStep is how far one resize request moves a separator.
	ResizeStep float64
	// TabTitleMax truncates derived tab titles; TabTitleSuffix marks the cut.
	TabTitleMax    int
	TabTitleSuffix string
}

// NormalizeServiceConfig applies defaults and validates the config.
func NormalizeServiceConfig(cfg ServiceConfig) (ServiceConfig, error) {
	if cfg.SwitchMode == "" {
		cfg.SwitchMode = SwitchInOrder
	}
	switch cfg.SwitchMode {
	case SwitchInOrder, SwitchMostRecentlyUsed, SwitchDisabled:
	default:
		return ServiceConfig{}, errors.New("unknown switch mode")
	}
	if cfg.DefaultSplitRatio <= 0 || cfg.DefaultSplitRatio >= 1 {
		cfg.DefaultSplitRatio = 0.5
	}
	if cfg.MinSplitRatio <= 0 || cfg.MinSplitRatio >= 0.5 {
		cfg.MinSplitRatio = 0.1
	}
	if cfg.ResizeStep <= 0 || cfg.ResizeStep >= 0.5 {
		cfg.ResizeStep = 0.05
	}
	if cfg.TabTitleMax <= 0 {
		cfg.TabTitleMax = 40
	}
	if cfg.TabTitleSuffix == "" {
		cfg.TabTitleSuffix = "…"
	}
	if cfg.TabTitleMax <= len(cfg.TabTitleSuffix) {
		return ServiceConfig{}, errors.New("tab title max must exceed suffix length")
	}
	return cfg, nil
}

// ValidateWindowID rejects empty window identifiers.
func ValidateWindowID(id WindowID) error {
	if id == "" {
		return ErrInvalidWindow
	}
	return nil
}
