package markup

import "strconv"

// EntityReplacer resolves an entity reference name to its literal
// replacement text. Returning false drops the entity silently.
type EntityReplacer interface {
	Replace(name string) (string, bool)
}

// EntityReplacerFunc adapts a function to the EntityReplacer interface.
type EntityReplacerFunc func(name string) (string, bool)

func (f EntityReplacerFunc) Replace(name string) (string, bool) {
	return f(name)
}

// namedEntities covers the references a WYSIWYG editor typically emits.
var namedEntities = map[string]string{
	"amp":    "&",
	"lt":     "<",
	"gt":     ">",
	"quot":   "\"",
	"apos":   "'",
	"nbsp":   " ",
	"copy":   "©",
	"reg":    "®",
	"trade":  "™",
	"deg":    "°",
	"plusmn": "±",
	"frac12": "½",
	"frac14": "¼",
	"times":  "×",
	"divide": "÷",
	"ndash":  "–",
	"mdash":  "—",
	"lsquo":  "‘",
	"rsquo":  "’",
	"ldquo":  "“",
	"rdquo":  "”",
	"bull":   "•",
	"hellip": "…",
	"middot": "·",
	"sect":   "§",
	"para":   "¶",
	"laquo":  "«",
	"raquo":  "»",
	"euro":   "€",
	"pound":  "£",
	"cent":   "¢",
	"yen":    "¥",
}

type defaultEntityReplacer struct{}

// DefaultEntityReplacer resolves the common HTML named entities plus
// decimal ("#160") and hexadecimal ("#xA0") character references.
func DefaultEntityReplacer() EntityReplacer {
	return defaultEntityReplacer{}
}

func (defaultEntityReplacer) Replace(name string) (string, bool) {
	if v, ok := namedEntities[name]; ok {
		return v, true
	}
	if len(name) > 1 && name[0] == '#' {
		digits := name[1:]
		base := 10
		if digits[0] == 'x' || digits[0] == 'X' {
			digits = digits[1:]
			base = 16
		}
		if n, err := strconv.ParseInt(digits, base, 32); err == nil && n > 0 {
			return string(rune(n)), true
		}
	}
	return "", false
}
