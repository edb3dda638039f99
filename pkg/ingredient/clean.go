package ingredient

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	parenthesized = regexp.MustCompile(`\([^)]*\)`)
	quantities    = regexp.MustCompile(`[\p{Nd}¼½¾⅐⅑⅒⅓⅔⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞⁄]+`)
	punctuation   = strings.NewReplacer("/", "", "-", "", ".", "")
)

// stopWords are unit, quantity and filler terms dropped from display text
var stopWords = map[string]struct{}{
	"g": {}, "ml": {}, "oz": {}, "lb": {}, "kg": {},
	"tsp": {}, "tbsp": {}, "cup": {}, "cups": {}, "liter": {},
	"teaspoon": {}, "tablespoon": {}, "ounce": {}, "gram": {}, "pound": {},
	"large": {}, "small": {}, "medium": {}, "fresh": {}, "dried": {}, "chopped": {},
	"optional": {}, "if": {}, "necessary": {}, "to": {}, "serve": {}, "taste": {}, "and": {},
}

// minDisplayLen is the shortest cleaned entry still worth showing
const minDisplayLen = 3

// CleanForDisplay strips quantities, units and filler words from a raw
// ingredient line for presentation. ok is false when nothing meaningful is
// left and the entry should not be shown. The result never feeds back into
// scoring.
func CleanForDisplay(raw string) (string, bool) {
	text := strings.ToLower(strings.TrimSpace(raw))
	text = parenthesized.ReplaceAllString(text, "")
	text = quantities.ReplaceAllString(text, "")
	text = punctuation.Replace(text)

	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if _, stop := stopWords[w]; stop {
			continue
		}
		kept = append(kept, w)
	}

	// a Caser is stateful, so one per call
	text = strings.TrimSpace(cases.Title(language.Und).String(strings.Join(kept, " ")))
	if utf8.RuneCountInString(text) < minDisplayLen {
		return "", false
	}
	return text, true
}

// CleanAll cleans every entry and drops the suppressed ones, keeping order
func CleanAll(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if text, ok := CleanForDisplay(r); ok {
			out = append(out, text)
		}
	}
	return out
}
