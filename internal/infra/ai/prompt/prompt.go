// Package prompt builds the provider prompts for every analysis. Builders
// are pure: the same request always yields the same text, and every system
// prompt spells out the JSON shape the response extractor expects.
package prompt

import (
	"fmt"
	"strings"
)

// NotSpecified is rendered for optional request fields that are blank.
const NotSpecified = "Not specified"

const jsonRules = `You must produce one valid JSON object only (no markdown, no commentary) that follows the schema below. Do not include code fences.`

// system assembles role, rules and the schema example into one system prompt.
func system(role string, requirements []string, schema string) string {
	var b strings.Builder
	b.WriteString(role)
	b.WriteString(" ")
	b.WriteString(jsonRules)
	b.WriteString("\n\nRequirements:\n- Output must be a single JSON object.\n")
	for _, r := range requirements {
		b.WriteString("- ")
		b.WriteString(r)
		b.WriteString("\n")
	}
	b.WriteString("\nSchema (example with empty values):\n")
	b.WriteString(strings.TrimSpace(schema))
	return b.String()
}

// context renders "Label: value" lines, substituting NotSpecified for blanks.
func context(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(&b, "%s: %s\n", pairs[i], orNotSpecified(pairs[i+1]))
	}
	return b.String()
}

func orNotSpecified(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return NotSpecified
	}
	return s
}

func list(items []string) string {
	clean := make([]string, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			clean = append(clean, s)
		}
	}
	return strings.Join(clean, ", ")
}
