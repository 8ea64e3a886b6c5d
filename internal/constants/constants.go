package constants

import "time"

// SyntaxTheme is the Chroma style the grid palette is derived from when
// the config does not name one.
//
// Good dark choices:
//   - vulcan            - Star Trek inspired (default)
//   - github-dark       - GitHub's dark theme
//   - dracula           - Popular purple/pink theme
//   - nord              - Cool bluish theme
//   - gruvbox           - Warm, retro colors
//   - catppuccin-mocha  - Pastel dark theme
//   - tokyonight-night  - Popular VSCode theme
//
// Light themes:
//   - github            - GitHub's light theme
//   - solarized-light   - Classic Solarized light
//   - catppuccin-latte  - Pastel light theme
//
// Any style registered with chroma works.
const SyntaxTheme = "vulcan"

// Column sizing, in terminal cells.
const (
	DefaultColumnWidth = 12
	MinColumnWidth     = 3
	MaxColumnWidth     = 40
)

// RowHeaderWidth is the width of the row number gutter.
const RowHeaderWidth = 6

// CacheTTL is how long a parsed sheet stays in the cache when the config
// does not say otherwise.
const CacheTTL = 24 * time.Hour

// WatchDebounce collapses bursts of write events from editors that save
// through a temp file and rename.
const WatchDebounce = 300 * time.Millisecond

// MouseThrottle is the minimum interval between handled mouse motion events.
const MouseThrottle = 15 * time.Millisecond
