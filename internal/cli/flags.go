package cli

import "strings"

// Flags holds parsed global flags.
type Flags struct {
	Verbose int
	Version bool
	Help    bool

	Preset string // render the named preset's directive
	NDJSON bool   // input is newline-delimited JSON
	DB     string // SQLite database path
	Query  string // SQLite query producing the input records
	Output string // write rendered HTML here instead of stdout
}

// ParseFlags extracts global flags from args and returns remaining args.
// Flags taking a value consume the following argument.
func ParseFlags(args []string) (Flags, []string) {
	var flags Flags
	var remaining []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		takeValue := func() string {
			if i+1 < len(args) {
				i++
				return args[i]
			}
			return ""
		}

		switch {
		case arg == "-vv":
			flags.Verbose = 2
		case arg == "-v":
			if flags.Verbose < 1 {
				flags.Verbose = 1
			}
		case arg == "--ndjson":
			flags.NDJSON = true
		case arg == "--preset" || arg == "-p":
			flags.Preset = takeValue()
		case arg == "--db":
			flags.DB = takeValue()
		case arg == "--query" || arg == "-q":
			flags.Query = takeValue()
		case arg == "--output" || arg == "-o":
			flags.Output = takeValue()
		case arg == "--version":
			flags.Version = true
		case arg == "--help" || arg == "-h":
			flags.Help = true
		case isStackedVerboseFlag(arg):
			flags.Verbose = strings.Count(arg, "v")
		default:
			remaining = append(remaining, arg)
		}
	}

	return flags, remaining
}

// isStackedVerboseFlag detects flags like -vvv, -vvvv (only 'v' chars after dash).
func isStackedVerboseFlag(arg string) bool {
	if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") {
		return false
	}
	trimmed := strings.TrimLeft(arg, "-")
	return len(trimmed) > 0 && strings.Trim(trimmed, "v") == ""
}
