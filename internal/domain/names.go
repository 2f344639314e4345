package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CanonicalName приводит название команды или вида спорта к канонической форме:
// первая буква заглавная, остальные строчные. Имена, отличающиеся только
// регистром, после приведения совпадают.
func CanonicalName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
