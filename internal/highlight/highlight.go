// Package highlight derives the grid's colors from a Chroma style, so the
// viewer follows whatever theme the user already likes for code.
package highlight

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// ThemeBg extracts the background hex color from a Chroma style.
// Returns "" if no background is set.
func ThemeBg(theme string) string {
	sty := styles.Get(theme)
	if sty == nil {
		return ""
	}
	bg := sty.Get(chroma.Background).Background
	if !bg.IsSet() {
		return ""
	}
	return bg.String() // "#rrggbb"
}

// Palette holds grid colors derived deterministically from a Chroma theme.
// The grayscale ramp is a linear interpolation from bg to fg; the accent is the
// most saturated token color in the palette; error comes from the Error token.
type Palette struct {
	Bg     string // Theme background
	Fg     string // Theme foreground (cell text)
	Border string // 10% bg→fg : grid lines
	Header string // 7% bg→fg : header background
	Dim    string // 25% bg→fg : empty cells, merge continuations
	Muted  string // 45% bg→fg : header text
	Accent string // Most saturated token color
	Error  string // From chroma Error token, lerped 45% toward fg

	Selected       string // 30% bg→accent : selected cell background
	SelectedHeader string // 55% bg→accent : header of a selected row/column
	Touched        string // 15% bg→accent : header of a row/column a region touches

	Number  string // LiteralNumber token color
	Keyword string // KeywordConstant token color, used for booleans
}

// ThemePalette derives a full grid color palette from a Chroma theme name.
// Deterministic: same theme → same output. Falls back to sensible defaults
// when the theme is missing entries.
func ThemePalette(theme string) Palette {
	sty := styles.Get(theme)
	if sty == nil {
		return defaultPalette()
	}
	entry := sty.Get(chroma.Background)
	bg := "#000000"
	fg := "#c8c8c8"
	if entry.Background.IsSet() {
		bg = entry.Background.String()
	}
	if entry.Colour.IsSet() {
		fg = entry.Colour.String()
	}

	accent := pickAccent(sty, fg)
	return Palette{
		Bg:             bg,
		Fg:             fg,
		Border:         lerpHex(bg, fg, 0.10),
		Header:         lerpHex(bg, fg, 0.07),
		Dim:            lerpHex(bg, fg, 0.25),
		Muted:          lerpHex(bg, fg, 0.45),
		Accent:         accent,
		Error:          pickError(sty, bg, fg),
		Selected:       lerpHex(bg, accent, 0.30),
		SelectedHeader: lerpHex(bg, accent, 0.55),
		Touched:        lerpHex(bg, accent, 0.15),
		Number:         tokenColour(sty, chroma.LiteralNumber, fg),
		Keyword:        tokenColour(sty, chroma.KeywordConstant, accent),
	}
}

func defaultPalette() Palette {
	return Palette{
		Bg: "#000000", Fg: "#c8c8c8",
		Border: "#141414", Header: "#0e0e0e",
		Dim: "#323232", Muted: "#5a5a5a",
		Accent: "#00dfff", Error: "#932e2e",
		Selected: "#00434d", SelectedHeader: "#007b8c", Touched: "#002126",
		Number: "#c8c8c8", Keyword: "#00dfff",
	}
}

// ValueColor picks a foreground for cell text: numbers and booleans take
// their token colors, spreadsheet error values (#DIV/0!, #N/A, ...) the
// error color, everything else the plain foreground.
func (p Palette) ValueColor(v string) string {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return p.Fg
	case isSheetError(v):
		return p.Error
	case strings.EqualFold(v, "true") || strings.EqualFold(v, "false"):
		return p.Keyword
	case isNumber(v):
		return p.Number
	}
	return p.Fg
}

func isSheetError(v string) bool {
	switch v {
	case "#DIV/0!", "#N/A", "#NAME?", "#NULL!", "#NUM!", "#REF!", "#VALUE!", "#SPILL!", "#CALC!":
		return true
	}
	return false
}

func isNumber(v string) bool {
	v = strings.TrimSuffix(v, "%")
	v = strings.ReplaceAll(v, ",", "")
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

func tokenColour(sty *chroma.Style, tt chroma.TokenType, fallback string) string {
	e := sty.Get(tt)
	if !e.Colour.IsSet() {
		return fallback
	}
	return e.Colour.String()
}

// pickAccent returns the most saturated foreground color across all tokens.
func pickAccent(sty *chroma.Style, fallback string) string {
	best := fallback
	bestSat := 0.0
	for tt := chroma.TokenType(0); tt < 2000; tt++ {
		e := sty.Get(tt)
		if !e.Colour.IsSet() {
			continue
		}
		hex := e.Colour.String()
		r, g, b := hexToRGBf(hex)
		mx := max(r, g, b)
		mn := min(r, g, b)
		if mx == 0 {
			continue
		}
		sat := (mx - mn) / mx
		if sat > bestSat {
			bestSat = sat
			best = hex
		}
	}
	return best
}

// pickError extracts the Error token color and lerps it 45% toward fg
// so it's visible but not garish against the theme background.
func pickError(sty *chroma.Style, bg, fg string) string {
	e := sty.Get(chroma.Error)
	if !e.Colour.IsSet() {
		return lerpHex(bg, fg, 0.45) // muted fallback
	}
	return lerpHex(bg, e.Colour.String(), 0.45)
}

// lerpHex linearly interpolates between two hex colors at fraction t.
func lerpHex(a, b string, t float64) string {
	ar, ag, ab := hexToRGBf(a)
	br, bg, bb := hexToRGBf(b)
	return fmt.Sprintf("#%02x%02x%02x",
		clampByte(ar+(br-ar)*t),
		clampByte(ag+(bg-ag)*t),
		clampByte(ab+(bb-ab)*t),
	)
}

func hexToRGBf(hex string) (float64, float64, float64) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0
	}
	return float64(hexByte(hex[1], hex[2])),
		float64(hexByte(hex[3], hex[4])),
		float64(hexByte(hex[5], hex[6]))
}

func hexByte(hi, lo byte) int {
	return hexNibble(hi)<<4 | hexNibble(lo)
}

func hexNibble(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 0
}

func clampByte(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v + 0.5)
}
