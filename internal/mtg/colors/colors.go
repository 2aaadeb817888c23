// Package colors classifies and orders Magic color identities.
//
// A color identity is a subset of the five canonical letters W, U, B, R, G.
// Classification reads the color-count mapping Archidekt attaches to a deck;
// ordering produces the conventional display sequence for each combination
// (guild, shard/wedge and four-color orderings).
package colors

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Letters is the canonical color priority order.
var Letters = []string{"W", "U", "B", "R", "G"}

// Canonical display orderings for two-, three- and four-color identities.
// Each entry covers exactly one combination, so together they are exhaustive
// for all C(5,2), C(5,3) and C(5,4) sets.
var (
	pairOrders = []string{
		"WU", "UB", "BR", "RG", "GW", "WB", "UR", "BG", "RW", "GU",
	}
	tripleOrders = []string{
		"WUB", "UBR", "BRG", "RGW", "GWU", "WBG", "URW", "BGU", "RWB", "GUR",
	}
	quadOrders = []string{
		"WUBR", "UBRG", "BRGW", "RGWU", "GWUB",
	}
)

// Set is an unordered color identity.
type Set map[string]bool

// NewSet builds a Set from color letters. Letters outside W,U,B,R,G are
// ignored; callers that need validation use ParseSet.
func NewSet(letters []string) Set {
	s := make(Set, len(letters))
	for _, l := range letters {
		u := strings.ToUpper(l)
		for _, c := range Letters {
			if u == c {
				s[c] = true
			}
		}
	}
	return s
}

// ParseSet parses a color string such as "wub" into a Set. Letters are
// case-insensitive and deduplicated. Any character outside W,U,B,R,G is an
// error.
func ParseSet(s string) (Set, error) {
	set := make(Set, len(s))
	for _, r := range strings.ToUpper(s) {
		c := string(r)
		if !isColorLetter(c) {
			return nil, fmt.Errorf("invalid color character %q", c)
		}
		set[c] = true
	}
	return set, nil
}

func isColorLetter(c string) bool {
	for _, l := range Letters {
		if c == l {
			return true
		}
	}
	return false
}

// Equal reports whether two sets contain the same colors.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for c := range s {
		if !o[c] {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every color in s is also in o.
func (s Set) SubsetOf(o Set) bool {
	for c := range s {
		if !o[c] {
			return false
		}
	}
	return true
}

// Classify extracts the present color letters from a deck's raw colors
// field. The field is expected to map single letters to card counts
// ({"W": 12, "U": 0, ...}); a letter is present iff its count is a positive
// integer. Counts that are missing or not parseable are treated as zero.
// Anything other than a mapping yields an empty identity (colorless).
//
// The result is in canonical W,U,B,R,G priority order.
func Classify(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var counts map[string]any
	if err := json.Unmarshal(raw, &counts); err != nil {
		return nil
	}

	var present []string
	for _, letter := range Letters {
		n, ok := counts[letter]
		if !ok {
			n, ok = counts[strings.ToLower(letter)]
		}
		if ok && asCount(n) > 0 {
			present = append(present, letter)
		}
	}
	return present
}

// asCount coerces an upstream count value to an int, returning 0 for
// anything that does not parse.
func asCount(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// Order arranges a color identity into its canonical display sequence.
// Single colors and the full five-color identity have fixed orderings;
// two-, three- and four-color identities use the predefined tables. The
// same set always orders identically.
func Order(letters []string) []string {
	set := NewSet(letters)

	switch len(set) {
	case 0:
		return nil
	case 1:
		for c := range set {
			return []string{c}
		}
	case 2:
		if seq := lookupOrder(set, pairOrders); seq != nil {
			return seq
		}
	case 3:
		if seq := lookupOrder(set, tripleOrders); seq != nil {
			return seq
		}
	case 4:
		if seq := lookupOrder(set, quadOrders); seq != nil {
			return seq
		}
	case 5:
		return append([]string(nil), Letters...)
	}

	// The tables cover every combination, so this only guards against an
	// out-of-range set. Fall back to base priority order.
	var seq []string
	for _, c := range Letters {
		if set[c] {
			seq = append(seq, c)
		}
	}
	return seq
}

// lookupOrder finds the table entry whose letters form the given set.
func lookupOrder(set Set, orders []string) []string {
	for _, order := range orders {
		if len(order) != len(set) {
			continue
		}
		match := true
		for _, r := range order {
			if !set[string(r)] {
				match = false
				break
			}
		}
		if match {
			return strings.Split(order, "")
		}
	}
	return nil
}
