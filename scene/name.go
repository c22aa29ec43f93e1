package scene

import (
	"strings"
	"unicode"
)

// SanitizeName makes a node name usable as a lookup key: whitespace becomes
// '_' and the path separators "[]./:\" are dropped. Exporters and the scene
// loader disagree on punctuation, so every name lookup goes through here.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return '_'
		case strings.ContainsRune(`[].:/\`, r):
			return -1
		}
		return r
	}, name)
}
