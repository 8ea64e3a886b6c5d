package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xonecas/gridsel/internal/intervalset"
	"github.com/xonecas/gridsel/internal/selection"
	"github.com/xonecas/gridsel/internal/sheet"
)

var (
	rectSpecs   []string
	toggleSpecs []string
	rowSpecs    []string
	colSpecs    []string
	jsonOut     bool
)

func newSelectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select <file>",
		Short: "Apply selections to a sheet and print the result as TSV",
		Long: `select applies the given selections in order (rectangles, toggles, rows,
then columns) and prints the selected cells as TSV on stdout. A summary of
the selection kind, regions and selected row and column ranges goes to
stderr, or everything is printed as JSON with --json.

Rectangles are "ox,oy,ex,ey" (zero-based origin plus extent, negative
extents allowed) or A1 ranges such as "B2:D4". Rectangles that cut through
merged cells grow to include them.`,
		Args: cobra.ExactArgs(1),
		RunE: runSelect,
	}

	f := cmd.Flags()
	f.StringArrayVar(&rectSpecs, "rect", nil, `Cell region "ox,oy,ex,ey" or "B2:D4" (repeatable)`)
	f.StringArrayVar(&toggleSpecs, "toggle", nil, "Region to toggle, same format as --rect (repeatable)")
	f.StringArrayVar(&rowSpecs, "rows", nil, `Zero-based row range "a,b" or single row "a" (repeatable)`)
	f.StringArrayVar(&colSpecs, "columns", nil, `Zero-based column range "a,b" or single column "a" (repeatable)`)
	f.BoolVar(&jsonOut, "json", false, "Print a JSON document instead of TSV")
	return cmd
}

// selectRequest is the parsed form of the select flags.
type selectRequest struct {
	rects   [][4]int
	toggles [][4]int
	rows    [][2]int
	columns [][2]int
}

func parseSelectRequest() (selectRequest, error) {
	var req selectRequest
	for _, spec := range rectSpecs {
		r, err := parseRect(spec)
		if err != nil {
			return req, err
		}
		req.rects = append(req.rects, r)
	}
	for _, spec := range toggleSpecs {
		r, err := parseRect(spec)
		if err != nil {
			return req, err
		}
		req.toggles = append(req.toggles, r)
	}
	for _, spec := range rowSpecs {
		p, err := parsePair(spec)
		if err != nil {
			return req, fmt.Errorf("--rows: %w", err)
		}
		req.rows = append(req.rows, p)
	}
	for _, spec := range colSpecs {
		p, err := parsePair(spec)
		if err != nil {
			return req, fmt.Errorf("--columns: %w", err)
		}
		req.columns = append(req.columns, p)
	}
	return req, nil
}

// apply runs the request against m.
func (req selectRequest) apply(m *selection.Model) {
	for _, r := range req.rects {
		m.Select(r[0], r[1], r[2], r[3], false)
	}
	for _, r := range req.toggles {
		m.ToggleSelect(r[0], r[1], r[2], r[3])
	}
	for _, p := range req.rows {
		m.SelectRow(p[0], p[1])
	}
	for _, p := range req.columns {
		m.SelectColumn(p[0], p[1])
	}
}

func runSelect(cmd *cobra.Command, args []string) error {
	req, err := parseSelectRequest()
	if err != nil {
		return err
	}

	cache := openCache(cfg)
	defer cache.Close()

	s, err := loadSheet(cache, args[0], sheetName)
	if err != nil {
		return err
	}

	m := selection.New(s, s, cfg.SelectionOptions())
	req.apply(m)

	tsv, err := sheet.SelectionTSV(s, m)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(newSelectResult(s, m, tsv))
	}

	if tsv != "" {
		fmt.Fprintln(cmd.OutOrStdout(), tsv)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "sheet=%s kind=%s regions=%d rows=%s columns=%s\n",
		s.Name, m.LastKind(), len(m.Regions()),
		formatRanges(m.SelectedRows()), formatRanges(m.SelectedColumns()))
	return nil
}

// selectResult is the --json output document.
type selectResult struct {
	Sheet   string              `json:"sheet"`
	Kind    string              `json:"kind"`
	Regions []regionResult      `json:"regions"`
	Rows    []intervalset.Range `json:"rows"`
	Columns []intervalset.Range `json:"columns"`
	TSV     string              `json:"tsv"`
}

type regionResult struct {
	Ref    string `json:"ref"`
	Origin [2]int `json:"origin"`
	Extent [2]int `json:"extent"`
}

func newSelectResult(s *sheet.Sheet, m *selection.Model, tsv string) selectResult {
	res := selectResult{
		Sheet:   s.Name,
		Kind:    m.LastKind().String(),
		Regions: []regionResult{},
		Rows:    nonNil(m.SelectedRows()),
		Columns: nonNil(m.SelectedColumns()),
		TSV:     tsv,
	}
	for _, r := range m.Regions() {
		lo, hi := r.Bounds()
		res.Regions = append(res.Regions, regionResult{
			Ref:    a1(lo) + ":" + a1(hi),
			Origin: [2]int{r.Origin.X, r.Origin.Y},
			Extent: [2]int{r.Extent.X, r.Extent.Y},
		})
	}
	return res
}

func nonNil(rs []intervalset.Range) []intervalset.Range {
	if rs == nil {
		return []intervalset.Range{}
	}
	return rs
}

func a1(p selection.Point) string {
	if p.Y < 0 {
		return sheet.ColumnName(p.X) + strconv.Itoa(p.Y+1)
	}
	return sheet.ColumnName(p.X) + strconv.FormatUint(uint64(p.Y)+1, 10)
}

// parseRect accepts "ox,oy,ex,ey" or an A1 range. Numeric fields may be
// fractional; they are truncated, NaN or infinite values count as 0, and
// values beyond the range of int saturate.
func parseRect(spec string) ([4]int, error) {
	parts := strings.Split(spec, ",")
	if len(parts) == 1 {
		r, err := sheet.ParseRange(spec)
		if err != nil {
			return [4]int{}, fmt.Errorf("rect %q: %w", spec, err)
		}
		return [4]int{r.X1, r.Y1, r.X2 - r.X1, r.Y2 - r.Y1}, nil
	}
	if len(parts) != 4 {
		return [4]int{}, fmt.Errorf("rect %q: want ox,oy,ex,ey or an A1 range", spec)
	}
	var out [4]int
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return [4]int{}, fmt.Errorf("rect %q: %w", spec, err)
		}
		out[i] = selection.CoerceExtent(v)
	}
	if out[0] < 0 || out[1] < 0 {
		return [4]int{}, fmt.Errorf("rect %q: origin must not be negative", spec)
	}
	return out, nil
}

// parsePair accepts "a,b" or "a".
func parsePair(spec string) ([2]int, error) {
	first, second, ok := strings.Cut(spec, ",")
	if !ok {
		second = first
	}
	a, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return [2]int{}, fmt.Errorf("range %q: %w", spec, err)
	}
	b, err := strconv.Atoi(strings.TrimSpace(second))
	if err != nil {
		return [2]int{}, fmt.Errorf("range %q: %w", spec, err)
	}
	if a < 0 || b < 0 {
		return [2]int{}, fmt.Errorf("range %q: indexes must not be negative", spec)
	}
	return [2]int{a, b}, nil
}

// formatRanges renders ranges as "1-3,5", or "-" when empty.
func formatRanges(rs []intervalset.Range) string {
	if len(rs) == 0 {
		return "-"
	}
	out := make([]string, len(rs))
	for i, r := range rs {
		if r.Start == r.End {
			out[i] = strconv.Itoa(r.Start)
		} else {
			out[i] = strconv.Itoa(r.Start) + "-" + strconv.Itoa(r.End)
		}
	}
	return strings.Join(out, ",")
}
