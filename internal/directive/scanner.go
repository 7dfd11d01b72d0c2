package directive

// The scanner is a small explicit-state machine over the directive text.
// A quoted span begins at a double or single quote and ends at the next
// unescaped quote of the same kind; quotes of the other kind inside the
// span are literal content. Brackets are deliberately not a barrier:
// only quoting protects delimiters, so an unquoted array literal splits
// at its commas (documented authoring error).

type scanState int

const (
	stateOutside scanState = iota
	stateInQuote
)

// splitOutsideQuotes splits s at every occurrence of delim that is not
// inside a quoted span. Parts are whitespace-trimmed; empty parts are
// dropped.
func splitOutsideQuotes(s string, delim byte) []string {
	var parts []string
	var current []byte

	state := stateOutside
	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch state {
		case stateOutside:
			switch {
			case c == '"' || c == '\'':
				state = stateInQuote
				quote = c
				current = append(current, c)
			case c == delim:
				if p := trimBytes(current); p != "" {
					parts = append(parts, p)
				}
				current = current[:0]
			default:
				current = append(current, c)
			}
		case stateInQuote:
			if c == quote && (i == 0 || s[i-1] != '\\') {
				state = stateOutside
			}
			current = append(current, c)
		}
	}

	if p := trimBytes(current); p != "" {
		parts = append(parts, p)
	}
	return parts
}

// indexOutsideQuotes returns the index of the first occurrence of delim
// that is not inside a quoted span, or -1.
func indexOutsideQuotes(s string, delim byte) int {
	state := stateOutside
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch state {
		case stateOutside:
			switch {
			case c == '"' || c == '\'':
				state = stateInQuote
				quote = c
			case c == delim:
				return i
			}
		case stateInQuote:
			if c == quote && (i == 0 || s[i-1] != '\\') {
				state = stateOutside
			}
		}
	}
	return -1
}

func trimBytes(b []byte) string {
	start, end := 0, len(b)
	for start < end && (b[start] == ' ' || b[start] == '\t') {
		start++
	}
	for end > start && (b[end-1] == ' ' || b[end-1] == '\t') {
		end--
	}
	return string(b[start:end])
}
