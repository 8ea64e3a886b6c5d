package main

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the root command with args and a throwaway HOME so logs and
// the cache stay inside the test's temp dir.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GRIDSEL_LOG_LEVEL", "")
	t.Setenv("GRIDSEL_CACHE_DISABLED", "")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("a,b,c\n1,2,3\n4,5,6\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSelectCmd(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		summary string
	}{
		{"rect", []string{"--rect", "0,1,1,1"}, "1\t2\n4\t5\n", "kind=cell regions=1"},
		{"negative extent", []string{"--rect", "1,2,-1,-1"}, "1\t2\n4\t5\n", "regions=1"},
		{"a1 range", []string{"--rect", "B1:C2"}, "b\tc\n2\t3\n", "kind=cell"},
		{"single cell", []string{"--rect", "C3"}, "6\n", "kind=cell"},
		{"rows", []string{"--rows", "2"}, "4\t5\t6\n", "kind=row regions=1 rows=2"},
		{"columns", []string{"--columns", "1,2"}, "b\tc\n2\t3\n5\t6\n", "columns=1-2"},
		{"toggle off", []string{"--rect", "A1", "--toggle", "A1"}, "", "regions=0"},
		{"nothing", nil, "", "kind=none regions=0 rows=- columns=-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t)
			args := append([]string{"select", path, "--no-cache"}, tt.args...)
			out, errOut, err := execute(t, args...)
			if err != nil {
				t.Fatalf("select: %v (%s)", err, errOut)
			}
			if out != tt.want {
				t.Errorf("stdout = %q, want %q", out, tt.want)
			}
			if !strings.Contains(errOut, tt.summary) {
				t.Errorf("stderr = %q, want it to contain %q", errOut, tt.summary)
			}
		})
	}
}

func TestSelectCmdJSON(t *testing.T) {
	path := writeCSV(t)
	out, _, err := execute(t, "select", path, "--no-cache", "--json", "--rect", "2,2,-1,-2")
	if err != nil {
		t.Fatal(err)
	}

	var res selectResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if res.Sheet != "data.csv" || res.Kind != "cell" {
		t.Errorf("sheet/kind = %q/%q", res.Sheet, res.Kind)
	}
	if len(res.Regions) != 1 {
		t.Fatalf("regions = %+v, want one", res.Regions)
	}
	r := res.Regions[0]
	if r.Ref != "B1:C3" || r.Origin != [2]int{2, 2} || r.Extent != [2]int{-1, -2} {
		t.Errorf("region = %+v", r)
	}
	if res.TSV != "b\tc\n2\t3\n5\t6" {
		t.Errorf("tsv = %q", res.TSV)
	}
	if res.Rows == nil || res.Columns == nil {
		t.Error("rows and columns must encode as arrays")
	}
}

func TestSelectCmdErrors(t *testing.T) {
	path := writeCSV(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing file", []string{"select", filepath.Join(t.TempDir(), "nope.csv")}, "file not found"},
		{"bad rect", []string{"select", path, "--rect", "1,2,3"}, "want ox,oy,ex,ey"},
		{"bad rows", []string{"select", path, "--rows", "x"}, "--rows"},
		{"bad columns", []string{"select", path, "--columns", "-1,2"}, "must not be negative"},
		{"huge rect", []string{"select", path, "--rect", "0,0,1e18,0"}, "too large"},
		{"saturated rect", []string{"select", path, "--rect", "1,1,1e300,-1e300"}, "too large"},
		{"huge columns", []string{"select", path, "--columns", "0,9223372036854775807"}, "too large"},
		{"missing config", []string{"select", path, "--config", filepath.Join(t.TempDir(), "missing.toml")}, "config file not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "--no-cache")
			_, _, err := execute(t, args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestParseRect(t *testing.T) {
	tests := []struct {
		spec    string
		want    [4]int
		wantErr bool
	}{
		{"1,2,3,4", [4]int{1, 2, 3, 4}, false},
		{" 1 , 2 , -3 , -1 ", [4]int{1, 2, -3, -1}, false},
		{"1.9,0,-2.5,NaN", [4]int{1, 0, -2, 0}, false},
		{"0,0,Inf,1", [4]int{0, 0, 0, 1}, false},
		{"B2:D4", [4]int{1, 1, 2, 2}, false},
		{"D4:B2", [4]int{1, 1, 2, 2}, false},
		{"C7", [4]int{2, 6, 0, 0}, false},
		{"0,0,1e300,-1e300", [4]int{0, 0, math.MaxInt, math.MinInt}, false},
		{"9223372036854775807,0,-9223372036854775808,0", [4]int{math.MaxInt, 0, math.MinInt, 0}, false},
		{"1,2", [4]int{}, true},
		{"x,0,0,0", [4]int{}, true},
		{"-1,0,0,0", [4]int{}, true},
		{"nope", [4]int{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := parseRect(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRect(%q) err = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseRect(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParsePair(t *testing.T) {
	tests := []struct {
		spec    string
		want    [2]int
		wantErr bool
	}{
		{"3", [2]int{3, 3}, false},
		{"1,4", [2]int{1, 4}, false},
		{"4, 1", [2]int{4, 1}, false},
		{"", [2]int{}, true},
		{"1,", [2]int{}, true},
		{"a,b", [2]int{}, true},
		{"-2", [2]int{}, true},
	}
	for _, tt := range tests {
		got, err := parsePair(tt.spec)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parsePair(%q) = %v, %v; want %v, err %v", tt.spec, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestSheetsCmd(t *testing.T) {
	path := writeCSV(t)
	out, _, err := execute(t, "sheets", path)
	if err != nil {
		t.Fatal(err)
	}
	if out != "data.csv\n" {
		t.Errorf("sheets = %q", out)
	}
}

func TestRecentCmd(t *testing.T) {
	path := writeCSV(t)
	home := t.TempDir()

	t.Setenv("HOME", home)
	t.Setenv("GRIDSEL_CACHE_DISABLED", "")

	run := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetArgs(args)
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return out.String()
	}

	run("select", path, "--rect", "A1")
	// Second load is served from the cache and still recorded.
	run("select", path, "--rect", "A1")

	out := run("recent")
	if strings.Count(out, path) != 1 || !strings.Contains(out, "data.csv") {
		t.Errorf("recent = %q, want one entry for %s", out, path)
	}

	run("recent", "--forget", path)
	if out := run("recent"); out != "" {
		t.Errorf("recent after forget = %q", out)
	}
}

func TestRecentCmdCacheDisabled(t *testing.T) {
	_, _, err := execute(t, "recent", "--no-cache")
	if err == nil || !strings.Contains(err.Error(), "cache") {
		t.Errorf("err = %v", err)
	}
}

func TestViewNeedsTerminal(t *testing.T) {
	path := writeCSV(t)
	_, _, err := execute(t, path, "--no-cache")
	if err != errNotTerminal {
		t.Errorf("err = %v, want errNotTerminal", err)
	}
}
