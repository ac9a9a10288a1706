package pages

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// notFound is the index returned by indexByName when nothing matches
const notFound = -1

var digitRun = regexp.MustCompile(`\d+`)

// ParseAmount extracts the first contiguous digit run from a currency
// string such as "Rs. 500". It reports false when text holds no digits.
func ParseAmount(text string) (int, bool) {
	run := digitRun.FindString(text)
	if run == "" {
		return 0, false
	}
	n, err := strconv.Atoi(run)
	if err != nil {
		return 0, false
	}
	return n, true
}

// indexByName returns the position of the first entry whose trimmed text
// equals name exactly, or notFound.
func indexByName(names []string, name string) int {
	_, i, ok := lo.FindIndexOf(names, func(n string) bool {
		return strings.TrimSpace(n) == name
	})
	if !ok {
		return notFound
	}
	return i
}
