// Package slug turns titles into URL path segments. Russian titles are
// transliterated to Latin first so they keep a readable slug.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var cyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo", 'ж': "zh",
	'з': "z", 'и': "i", 'й': "j", 'к': "k", 'л': "l", 'м': "m", 'н': "n", 'о': "o",
	'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u", 'ф': "f", 'х': "kh", 'ц': "ts",
	'ч': "ch", 'ш': "sh", 'щ': "shch", 'ы': "i", 'э': "e", 'ю': "yu", 'я': "ya",
}

// Make returns the slug for s.
func Make(s string) string {
	var translit strings.Builder
	for _, r := range strings.ToLower(s) {
		if latin, ok := cyrillic[r]; ok {
			translit.WriteString(latin)
			continue
		}
		translit.WriteRune(r)
	}

	// decomposed accents fall out with the rest of the non-ASCII runes
	var b strings.Builder
	for _, r := range norm.NFKD.String(translit.String()) {
		switch {
		case r > unicode.MaxASCII:
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(unicode.ToLower(r))
		case r == '-' || unicode.IsSpace(r):
			b.WriteRune('-')
		}
	}

	fields := strings.FieldsFunc(b.String(), func(r rune) bool { return r == '-' })
	return strings.Trim(strings.Join(fields, "-"), "-_")
}
