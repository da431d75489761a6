package analysis

import (
	"strconv"
	"strings"
)

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func itoa(n int) string { return strconv.Itoa(n) }
