package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/xonecas/gridsel/internal/intervalset"
	"github.com/xonecas/gridsel/internal/sheet"
)

// renderStatusBar writes the status separator and bar.
func (m Model) renderStatusBar(b *strings.Builder) {
	b.WriteString(m.styles.Border.Render(strings.Repeat("─", m.width)))
	b.WriteByte('\n')

	// -- Left segments --
	var leftParts []string

	name := m.sheet.Name
	if m.path != "" {
		name = filepath.Base(m.path) + ":" + name
	}
	leftParts = append(leftParts, m.styles.StatusText.Render(" "+name))

	if m.sel.HasSelections() || m.sel.IsColumnOrRowSelected() {
		ref := sheet.ColumnName(m.cursor.X) + strconv.Itoa(m.cursor.Y+1)
		leftParts = append(leftParts, m.styles.StatusKey.Render(ref))
		leftParts = append(leftParts, m.styles.StatusText.Render(m.selectionSummary()))
	}

	if m.status != "" {
		st := m.styles.StatusText
		if m.statusErr {
			st = m.styles.Error
		}
		leftParts = append(leftParts, st.Render(m.status))
	}

	left := strings.Join(leftParts, m.styles.StatusText.Render("  "))

	// -- Right segment: key help --
	right := ""
	if !m.help.ShowAll {
		right = m.help.ShortHelpView(m.keys.ShortHelp())
	}

	// -- Compose: left + gap + right + trailing space --
	leftW := lipgloss.Width(left)
	rightW := lipgloss.Width(right)
	gap := m.width - leftW - rightW - 1
	if gap < 0 {
		right, gap = "", max(m.width-leftW-1, 0)
	}
	b.WriteString(m.fill(left + m.styles.BgFill.Render(strings.Repeat(" ", gap)) + right))
}

// selectionSummary describes the selection kind, region count and the
// selected rows and columns.
func (m Model) selectionSummary() string {
	parts := []string{m.sel.LastKind().String()}
	if n := len(m.sel.Regions()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", n, plural(n, "region", "regions")))
	}
	if rows := m.sel.SelectedRows(); len(rows) > 0 {
		parts = append(parts, "rows "+formatRanges(rows, func(i int) string { return strconv.Itoa(i + 1) }))
	}
	if cols := m.sel.SelectedColumns(); len(cols) > 0 {
		parts = append(parts, "cols "+formatRanges(cols, sheet.ColumnName))
	}
	return strings.Join(parts, " · ")
}

// formatRanges renders ranges as "2-6,9" using label for each end.
func formatRanges(ranges []intervalset.Range, label func(int) string) string {
	out := make([]string, len(ranges))
	for i, r := range ranges {
		if r.Start == r.End {
			out[i] = label(r.Start)
			continue
		}
		out[i] = label(r.Start) + "-" + label(r.End)
	}
	return strings.Join(out, ",")
}
