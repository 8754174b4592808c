package dates

import (
	"regexp"
	"strconv"
)

var generationPattern = regexp.MustCompile(`(?i)(\d+)(st|nd|rd|th)?\s*generation`)

// ExtractGeneration reads a generation number from text such as
// "3rd generation". The number must precede the word.
func ExtractGeneration(text string) (int, bool) {
	m := generationPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
