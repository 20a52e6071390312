package content

import (
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English, cases.NoLower)

// TitleCase capitalizes every word, leaving the rest of each word untouched.
func TitleCase(text string) string {
	return titleCaser.String(text)
}

// Capitalize upper-cases the first rune of text.
func Capitalize(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if r == utf8.RuneError {
		return text
	}
	return string(unicode.ToUpper(r)) + text[size:]
}

// HumanPathSection turns the last section of an entry ID into words
// ("2023/my-first-game" -> "my first game").
func HumanPathSection(id string) string {
	section := path.Base(strings.Trim(id, "/"))
	return strings.NewReplacer("-", " ", "_", " ").Replace(section)
}

// entryKey normalizes an ID for exclusion comparisons.
func entryKey(id string) string {
	return strings.ToLower(strings.Trim(id, "/"))
}
