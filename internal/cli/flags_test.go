package cli

import "testing"

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		want      Flags
		remaining int
	}{
		{"empty", nil, Flags{}, 0},
		{"verbose", []string{"-v"}, Flags{Verbose: 1}, 0},
		{"double verbose", []string{"-vv"}, Flags{Verbose: 2}, 0},
		{"stacked verbose", []string{"-vvv"}, Flags{Verbose: 3}, 0},
		{"preset", []string{"--preset", "members"}, Flags{Preset: "members"}, 0},
		{"preset short", []string{"-p", "members"}, Flags{Preset: "members"}, 0},
		{"ndjson", []string{"--ndjson"}, Flags{NDJSON: true}, 0},
		{"db and query", []string{"--db", "x.db", "-q", "SELECT 1"}, Flags{DB: "x.db", Query: "SELECT 1"}, 0},
		{"output", []string{"-o", "out.html"}, Flags{Output: "out.html"}, 0},
		{"version", []string{"--version"}, Flags{Version: true}, 0},
		{"help", []string{"-h"}, Flags{Help: true}, 0},
		{"positional survives", []string{"-v", `src|table:tstyle=plain`, "data.json"}, Flags{Verbose: 1}, 2},
		{"value flag at end", []string{"--preset"}, Flags{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, rest := ParseFlags(tt.args)
			if flags != tt.want {
				t.Errorf("flags = %+v, want %+v", flags, tt.want)
			}
			if len(rest) != tt.remaining {
				t.Errorf("remaining = %v, want %d args", rest, tt.remaining)
			}
		})
	}
}

func TestIsStackedVerboseFlag(t *testing.T) {
	tests := []struct {
		arg  string
		want bool
	}{
		{"-vvv", true},
		{"-v", true},
		{"--vvv", false},
		{"-vx", false},
		{"-", false},
		{"vvv", false},
	}
	for _, tt := range tests {
		if got := isStackedVerboseFlag(tt.arg); got != tt.want {
			t.Errorf("isStackedVerboseFlag(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}
