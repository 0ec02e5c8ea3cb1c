package fixture

import "fmt"

// FormatValue renders a value the way assertion messages do. Booleans
// render as TRUE and FALSE; everything else takes its default formatting,
// so bytes and runes appear as their numeric values rather than as
// characters.
func FormatValue(v any) string {
	if b, ok := v.(bool); ok {
		if b {
			return "TRUE"
		}
		return "FALSE"
	}
	return fmt.Sprintf("%v", v)
}
