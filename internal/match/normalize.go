package match

import (
	"strings"
	"unicode"
)

// FormatTeam title-cases every whitespace-delimited word of a team
// name, dropping empty tokens. NA and empty input come back as NA.
func FormatTeam(team string) string {
	if team == "" || team == NA {
		return NA
	}

	words := strings.Fields(team)
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

// FormatVenue normalizes a venue string: hyphen-separated components
// are trimmed and title-cased word by word, then rejoined with commas.
// "palestra comunale - via roma" becomes "Palestra Comunale, Via Roma".
// NA and empty input come back as NA.
func FormatVenue(venue string) string {
	if venue == "" || venue == NA {
		return NA
	}

	parts := strings.Split(venue, "-")
	formatted := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		words := strings.Fields(part)
		for i, w := range words {
			words[i] = titleWord(w)
		}
		formatted = append(formatted, strings.Join(words, " "))
	}
	return strings.Join(formatted, ", ")
}

// titleWord upper-cases the first rune and lower-cases the rest.
func titleWord(w string) string {
	runes := []rune(w)
	if len(runes) == 0 {
		return w
	}
	return string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
}
