// Package normalize coerces scraped cell text into integers and canonical
// club names.
package normalize

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// placeholderMarkers are fragments of UI prompts that some sources render as
// table rows ("Sélectionner une équipe").
var placeholderMarkers = []string{
	"sélectionner",
	"selectionner",
	"select a team",
	"choose a team",
	"choisir une équipe",
}

// ParseIntSafe keeps digits and minus signs and parses the leading integer.
// It returns nil when nothing parseable remains; it never fails.
func ParseIntSafe(text string) *int {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-', r == '−', r == '–':
			b.WriteByte('-')
		}
	}

	kept := b.String()
	negative := strings.HasPrefix(kept, "-")
	if negative {
		kept = kept[1:]
	}

	end := 0
	for end < len(kept) && kept[end] >= '0' && kept[end] <= '9' {
		end++
	}
	if end == 0 {
		return nil
	}

	n, err := strconv.Atoi(kept[:end])
	if err != nil {
		return nil
	}
	if negative {
		n = -n
	}
	return &n
}

// CleanName collapses whitespace, drops leading "Logo" markers and removes a
// repeated trailing word or a fully doubled name. CleanName(CleanName(x)) ==
// CleanName(x).
func CleanName(text string) string {
	fields := strings.Fields(norm.NFC.String(text))

	for changed := true; changed; {
		changed = false

		if len(fields) > 0 {
			if stripped, ok := stripLogo(fields[0]); ok {
				if stripped == "" {
					fields = fields[1:]
				} else {
					fields[0] = stripped
				}
				changed = true
				continue
			}
		}

		n := len(fields)
		if n >= 2 && fields[n-1] == fields[n-2] {
			fields = fields[:n-1]
			changed = true
			continue
		}

		if n >= 4 && n%2 == 0 && equalWords(fields[:n/2], fields[n/2:]) {
			fields = fields[:n/2]
			changed = true
		}
	}

	return strings.Join(fields, " ")
}

// IsPlaceholder reports whether name is a UI prompt rather than a club.
func IsPlaceholder(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range placeholderMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// ValidName reports whether a cleaned name may reach a snapshot.
func ValidName(name string) bool {
	return name != "" && !IsPlaceholder(name)
}

// stripLogo removes a "Logo" token, or a "Logo" prefix glued to a
// capitalised word ("LogoLens").
func stripLogo(word string) (string, bool) {
	if strings.EqualFold(word, "logo") {
		return "", true
	}
	if len(word) <= 4 || !strings.EqualFold(word[:4], "logo") {
		return word, false
	}
	next, _ := utf8.DecodeRuneInString(word[4:])
	if !unicode.IsUpper(next) {
		return word, false
	}
	return word[4:], true
}

func equalWords(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
