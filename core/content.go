package core

import (
	"context"

	"pkt.systems/tabdeck/schema"
)

// Content is a live content session hosted by a leaf pane. The core never
// reads from or writes to the content; it only tracks identity, title, and
// lifetime.
type Content interface {
	Title() string
	Close() error
}

// ContentFactory constructs content for a profile. Create returns
// schema.ErrSourceUnavailable when the profile no longer resolves; the
// caller treats that as a silent no-op.
type ContentFactory interface {
	Create(ctx context.Context, profile schema.ProfileID) (Content, error)
}
