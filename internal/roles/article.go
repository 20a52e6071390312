package roles

import (
	"strings"
	"unicode"
)

// Letters whose spoken name starts with a vowel sound.
const vowelSoundLetters = "AEFHILMNORSX"

var (
	// Words starting with a vowel letter but a consonant sound.
	consonantSoundPrefixes = []string{"uni", "use", "usu", "uti", "eu", "one", "once", "ubi", "ure"}
	// Words starting with a silent h.
	silentH = []string{"hour", "honest", "honor", "honour", "heir"}
)

// WithArticle prefixes phrase with "a" or "an" ("an AI Programmer", "a Game Designer").
func WithArticle(phrase string) string {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return phrase
	}
	return article(strings.Fields(phrase)[0]) + " " + phrase
}

func article(word string) string {
	first := []rune(word)[0]

	// Acronyms are read letter by letter
	if isAcronym(word) {
		if strings.ContainsRune(vowelSoundLetters, unicode.ToUpper(first)) {
			return "an"
		}
		return "a"
	}

	lower := strings.ToLower(word)
	for _, prefix := range silentH {
		if strings.HasPrefix(lower, prefix) {
			return "an"
		}
	}
	for _, prefix := range consonantSoundPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return "a"
		}
	}
	if unicode.IsDigit(first) {
		if first == '8' || strings.HasPrefix(lower, "11") || strings.HasPrefix(lower, "18") {
			return "an"
		}
		return "a"
	}
	if strings.ContainsRune("aeiou", unicode.ToLower(first)) {
		return "an"
	}
	return "a"
}

func isAcronym(word string) bool {
	letters := 0
	for _, r := range word {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters > 1
}
