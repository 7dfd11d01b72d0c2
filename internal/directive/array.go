package directive

import (
	"fmt"
	"strings"

	"github.com/edouard-claude/tably/internal/utils"
)

// ParseArray parses a bracketed array literal into its ordered elements.
// The value must be wrapped in [...] (surrounding quotes already
// stripped by the tokenizer). The interior splits at commas outside
// quoted spans; elements are trimmed and one pair of matching outer
// quotes is removed. Unquoted elements are accepted verbatim, so plain
// identifiers like role or profile.email need no quoting.
//
// The empty literal [] yields an empty slice.
func ParseArray(value string) ([]string, error) {
	value = strings.TrimSpace(value)
	if len(value) < 2 || value[0] != '[' || value[len(value)-1] != ']' {
		return nil, fmt.Errorf("%w: %q is not wrapped in [...]", ErrInvalidArrayLiteral, value)
	}

	interior := value[1 : len(value)-1]
	if strings.TrimSpace(interior) == "" {
		return []string{}, nil
	}

	parts := splitOutsideQuotes(interior, ',')
	elems := make([]string, 0, len(parts))
	for _, part := range parts {
		elems = append(elems, utils.StripQuotes(part))
	}
	return elems, nil
}
