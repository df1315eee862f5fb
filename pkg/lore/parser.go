// Package lore extracts structured attribute information from the decorated
// free-form lore text attached to auction listings.
package lore

import (
	"regexp"
	"strings"
)

// Match is one attribute occurrence parsed from lore text.
type Match struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// ShardLevel marks shard entries, which carry no roman-numeral level.
const ShardLevel = "N/A"

// shardMarker identifies attribute shard lines literally.
const shardMarker = "Attribute Shard"

// Attributes is the fixed vocabulary recognized in lore text.
var Attributes = []string{
	"Arachno Resistance", "Blazing Resistance", "Breeze", "Dominance",
	"Ender Resistance", "Experience", "Fortitude", "Life Regeneration",
	"Lifeline", "Magic Find", "Mana Pool", "Mana Regeneration",
	"Vitality", "Speed", "Undead Resistance", "Veteran",
}

var (
	// Minecraft formatting codes: a section sign followed by one color or
	// style character. They appear anywhere in the text, not just at line
	// starts.
	decorationRe = regexp.MustCompile(`§[0-9a-fk-or]`)

	attributeRe = regexp.MustCompile("(" + strings.Join(Attributes, "|") + ") ([IVXLCDM]+)")
)

// Extract strips decoration codes and collects attribute matches line by
// line. Each line contributes at most one attribute match (the first on the
// line) and, independently, one shard entry; both can fire on the same line.
// Results keep line order and are not deduplicated. Lines that match nothing
// are skipped silently, including truncated level tokens such as "Mana Pool 7".
func Extract(text string) []Match {
	normalized := decorationRe.ReplaceAllString(text, "")

	var matches []Match
	for _, line := range strings.Split(normalized, "\n") {
		if m := attributeRe.FindStringSubmatch(line); m != nil {
			matches = append(matches, Match{Name: m[1], Level: m[2]})
		}
		if strings.Contains(line, shardMarker) {
			matches = append(matches, Match{Name: shardMarker, Level: ShardLevel})
		}
	}
	return matches
}
