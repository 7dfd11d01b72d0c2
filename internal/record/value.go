package record

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/edouard-claude/tably/internal/utils"
)

// String renders a resolved value as cell text. Maps are JSON-encoded so
// structured values stay readable; everything else goes through the
// default formatting.
func String(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		// JSON numbers decode as float64; print integers without the
		// trailing ".0".
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case map[string]any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", val)
	}
}

var placeholderRe = utils.NewLazyRegex(`\[([^\]]+)\]`)

// Interpolate replaces [path] placeholders in s with values resolved
// from the row. A list value contributes its first element; an
// unresolvable placeholder is removed.
func Interpolate(s string, row Row) string {
	return placeholderRe.Re().ReplaceAllStringFunc(s, func(match string) string {
		path := match[1 : len(match)-1]
		v, ok := Resolve(row, path)
		if !ok || v == nil {
			return ""
		}
		if list, isList := v.([]any); isList {
			if len(list) == 0 {
				return ""
			}
			v = list[0]
		}
		return String(v)
	})
}
