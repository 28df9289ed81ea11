// Package cards finds MS card references in document text and renders
// the per-card record files and the series index.
package cards

import (
	"regexp"
	"sort"
	"strings"
)

// MaxContentLength caps a card excerpt, in characters
const MaxContentLength = 5000

// Placeholder replaces card content that could not be extracted
const Placeholder = "Content extraction pending. Please refer to the original document."

// separatorClass matches the colon or any Unicode whitespace that may
// follow a card ID (Word often emits U+00A0 after a label)
const separatorClass = `[:\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`

var (
	// cardRegex matches card IDs like MS05-16. Case-sensitive.
	cardRegex = regexp.MustCompile(`MS\d{2}-\d{1,2}`)
	// sectionEndRegex marks where the next card section begins
	sectionEndRegex = regexp.MustCompile(`(?i)MS\d{2}-\d{1,2}` + separatorClass)
)

// Find returns the distinct card IDs in text, sorted
func Find(text string) []string {
	matches := cardRegex.FindAllString(text, -1)

	set := make(map[string]bool, len(matches))
	for _, m := range matches {
		set[m] = true
	}

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// IsCardID reports whether s is exactly one card ID
func IsCardID(s string) bool {
	loc := cardRegex.FindStringIndex(s)
	return loc != nil && loc[0] == 0 && loc[1] == len(s)
}

// Section returns the text belonging to card id: from the first
// case-insensitive occurrence of the ID followed by a colon or whitespace,
// up to the next card heading or the end of text. Returns "" when the ID
// never introduces a section.
func Section(text, id string) string {
	startRegex, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(id) + separatorClass)
	if err != nil {
		return ""
	}

	loc := startRegex.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	start, bodyStart := loc[0], loc[1]

	var section string
	if next := sectionEndRegex.FindStringIndex(text[bodyStart:]); next != nil {
		section = text[start : bodyStart+next[0]]
	} else {
		section = text[start:]
		// A section running to the end excludes one trailing newline,
		// unless that newline is the separator after the ID
		if strings.HasSuffix(text, "\n") && len(text)-1 >= bodyStart {
			section = strings.TrimSuffix(section, "\n")
		}
	}

	return truncate(section, MaxContentLength)
}

// truncate keeps at most n characters (runes) of s
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
