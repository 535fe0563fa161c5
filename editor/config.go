package editor

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg/toolbar"
)

// MinRecheckDelay is the shortest delay before a deferred toolbar recheck.
const MinRecheckDelay = 10 * time.Millisecond

// OffsetFunc reports the rendered offset of an element relative to the
// document. Popovers inside a table wrapper subtract the wrapper's offset.
type OffsetFunc func(n *html.Node) (x, y int)

// Config configures a Manager and every Editor it builds.
type Config struct {
	// Selector matches host elements. CSS subset or XPath.
	// Default: toolbar.DefaultSelector.
	Selector string

	// Tools lists enabled tool ids in toolbar order. Default: toolbar.DefaultTools().
	Tools []string

	// Registry supplies tool descriptors. Default: toolbar.Default().
	Registry *toolbar.Registry

	KeyMap KeyMap
	Style  Style

	// RecheckDelay defers toolbar state refreshes. Values below
	// MinRecheckDelay are raised to it.
	RecheckDelay time.Duration

	// Forwarded to dom.Options.
	HistoryLimit int

	// Optional. Used by the paste and copy key bindings.
	Clipboard Clipboard

	// MaxMediaSize caps local media files in bytes. Default: 0, no limit.
	MaxMediaSize int64

	// Optional. Nil means every element sits at the origin.
	Offset OffsetFunc

	// Default: zap.NewNop().
	Logger *zap.Logger
}

func (c Config) withDefaults() Config {
	if c.Selector == "" {
		c.Selector = toolbar.DefaultSelector
	}
	if c.Tools == nil {
		c.Tools = toolbar.DefaultTools()
	}
	if c.Registry == nil {
		c.Registry = toolbar.Default()
	}
	c.KeyMap = normalizeKeyMap(c.KeyMap)
	c.Style = normalizeStyle(c.Style)
	if c.RecheckDelay < MinRecheckDelay {
		c.RecheckDelay = MinRecheckDelay
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

func (c Config) offset(n *html.Node) (int, int) {
	if c.Offset == nil || n == nil {
		return 0, 0
	}
	return c.Offset(n)
}
