package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/edouard-claude/tably/internal/config"
	"github.com/edouard-claude/tably/internal/directive"
	"github.com/edouard-claude/tably/internal/display"
	"github.com/edouard-claude/tably/internal/filters"
	"github.com/edouard-claude/tably/internal/preset"
	"github.com/edouard-claude/tably/internal/record"
	"github.com/edouard-claude/tably/internal/render"
	"github.com/edouard-claude/tably/internal/source"
	"github.com/edouard-claude/tably/internal/table"
)

const version = "0.1.0"

// Run is the main entry point. Returns exit code.
func Run(args []string) int {
	if len(args) < 2 {
		printUsage()
		return 0
	}

	flags, remaining := ParseFlags(args[1:])

	if flags.Version {
		fmt.Printf("tably v%s\n", version)
		return 0
	}
	if flags.Help || (len(remaining) == 0 && flags.Preset == "") {
		printUsage()
		return 0
	}

	// Built-in commands
	if len(remaining) > 0 {
		switch remaining[0] {
		case "styles":
			return runStyles()

		case "filters":
			return runFilters()

		case "presets":
			return runPresets()

		case "config":
			cfg, err := config.Load()
			if err != nil {
				display.PrintError(err.Error())
				return 1
			}
			fmt.Printf("table.style: %s\n", cfg.Table.Style)
			fmt.Printf("table.join_separator: %q\n", cfg.Table.JoinSeparator)
			fmt.Printf("table.empty_message: %s\n", cfg.Table.EmptyMessage)
			fmt.Printf("table.empty_cell_text: %q\n", cfg.Table.EmptyCellText)
			fmt.Printf("presets.dir: %s\n", cfg.Presets.Dir)
			fmt.Printf("display.color: %v\n", cfg.Display.Color)
			return 0
		}
	}

	return runRender(flags, remaining)
}

func runRender(flags Flags, args []string) int {
	cfg, err := config.Load()
	if err != nil {
		if flags.Verbose > 0 {
			fmt.Fprintf(os.Stderr, "tably: config error: %v, using defaults\n", err)
		}
		cfg = config.DefaultConfig()
	}

	text, dataPath, ok := directiveText(flags, args, cfg)
	if !ok {
		return 1
	}

	d, err := directive.Parse(text)
	if err != nil {
		display.PrintError(err.Error())
		return 1
	}
	if d.Name != "table" {
		display.PrintError(fmt.Sprintf("unsupported filter %q (only 'table' is available)", d.Name))
		return 1
	}

	input, err := loadInput(flags, dataPath)
	if err != nil {
		display.PrintError(err.Error())
		return 1
	}

	// A non-empty source selects a subtree of the input document.
	if d.Source != "" {
		if row, isMap := input.(map[string]any); isMap {
			v, found := record.Resolve(row, d.Source)
			if !found {
				display.PrintError(fmt.Sprintf("source %q not found in input", d.Source))
				return 1
			}
			input = v
		}
	}

	asm := table.NewAssembler(filters.NewRegistry())
	asm.Defaults = table.Defaults{
		Style:         cfg.Table.Style,
		JoinSeparator: cfg.Table.JoinSeparator,
		EmptyMessage:  cfg.Table.EmptyMessage,
		EmptyCellText: cfg.Table.EmptyCellText,
	}

	tbl, err := asm.Render(d.RawArgs, input)
	if err != nil {
		display.PrintError(err.Error())
		return 1
	}

	if flags.Verbose > 0 {
		for _, cellErr := range tbl.CellErrors {
			display.PrintWarning(cellErr.Error())
		}
	}

	html := render.HTML(tbl)
	if flags.Output != "" {
		if err := os.WriteFile(flags.Output, []byte(html+"\n"), 0644); err != nil {
			display.PrintError(err.Error())
			return 1
		}
		return 0
	}
	fmt.Println(html)
	return 0
}

// directiveText resolves the directive to render: either the first
// positional argument, or the directive of the preset named by --preset.
// The remaining positional argument, if any, is the data file.
func directiveText(flags Flags, args []string, cfg *config.Config) (text, dataPath string, ok bool) {
	if flags.Preset != "" {
		presets, err := preset.LoadAll(cfg.Presets.Dir)
		if err != nil {
			display.PrintError(err.Error())
			return "", "", false
		}
		p := preset.Find(presets, flags.Preset)
		if p == nil {
			display.PrintError(fmt.Sprintf("preset %q not found", flags.Preset))
			return "", "", false
		}
		if len(args) > 0 {
			dataPath = args[0]
		}
		return p.Directive, dataPath, true
	}

	if len(args) == 0 {
		display.PrintError("missing directive argument")
		return "", "", false
	}
	text = args[0]
	if len(args) > 1 {
		dataPath = args[1]
	}
	return text, dataPath, true
}

// loadInput reads the records: a SQLite query, a file, or stdin.
func loadInput(flags Flags, dataPath string) (any, error) {
	if flags.Query != "" {
		if flags.DB == "" {
			return nil, fmt.Errorf("--query requires --db")
		}
		return source.QuerySQLite(flags.DB, flags.Query)
	}

	if dataPath != "" && dataPath != "-" {
		if flags.NDJSON {
			f, err := os.Open(dataPath)
			if err != nil {
				return nil, fmt.Errorf("open %s: %w", dataPath, err)
			}
			defer f.Close()
			return source.ReadNDJSON(f)
		}
		return source.LoadJSON(dataPath)
	}

	if flags.NDJSON {
		return source.ReadNDJSON(os.Stdin)
	}
	return source.ReadJSON(os.Stdin)
}

func runStyles() int {
	entries := make([][2]string, 0)
	for _, token := range table.StyleTokens() {
		classes, err := table.StyleFor(token)
		if err != nil {
			continue
		}
		entries = append(entries, [2]string{token, strings.Join(classes, " ")})
	}
	fmt.Print(display.FormatListing("Table styles", entries))
	return 0
}

func runFilters() int {
	registry := filters.NewRegistry()
	entries := make([][2]string, 0)
	for _, name := range registry.Names() {
		entries = append(entries, [2]string{name, ""})
	}
	fmt.Print(display.FormatListing("Registered filters", entries))
	return 0
}

func runPresets() int {
	cfg, err := config.Load()
	if err != nil {
		display.PrintError(err.Error())
		return 1
	}
	presets, err := preset.LoadAll(cfg.Presets.Dir)
	if err != nil {
		display.PrintError(err.Error())
		return 1
	}
	entries := make([][2]string, 0, len(presets))
	for _, p := range presets {
		entries = append(entries, [2]string{p.Name, p.Description})
	}
	fmt.Print(display.FormatListing("Presets", entries))
	return 0
}

func printUsage() {
	usage := `tably v%s - render records as HTML tables from a directive

Usage: tably [flags] '<source>|table:param=value,...' [data.json]

Commands:
  styles       List table style tokens and their CSS classes
  filters      List registered value filters
  presets      List available presets
  config       Show current configuration

Flags:
  -p, --preset NAME   Render the named preset's directive
  --ndjson            Read newline-delimited JSON
  --db PATH           SQLite database to query
  -q, --query SQL     Query producing the input records
  -o, --output FILE   Write HTML to FILE instead of stdout
  -v, -vv             Verbose output (stackable)
  --version           Show version
  --help              Show this help

Examples:
  tably 'people|table:cols="[name,role]",tstyle=striped' people.json
  cat people.ndjson | tably --ndjson 'people|table:limit=10'
  tably --db app.db -q 'SELECT name, email FROM users' 'users|table'
  tably -p members members.json
`
	fmt.Printf(usage, version)
}

// Version returns the current version string.
func Version() string {
	return version
}
