package mnemonic

import (
	"math"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// MaxTypoDistance is the largest Levenshtein distance still considered a
// plausible typo; words farther than this from every dictionary entry are
// reported as unsuggestable.
const MaxTypoDistance = 2

// Typo describes a word in a candidate mnemonic that is absent from its
// dictionary, along with the closest dictionary word (if any).
type Typo struct {
	Index      int
	Word       string
	Suggestion string
	Distance   int
}

// SuggestWord returns the closest word to input in dict's word list, or
// the empty string if nothing is within MaxTypoDistance.
func SuggestWord(dict Dictionary, input string) string {
	input = strings.ToLower(input)

	minDist := math.MaxInt
	var best string
	for _, word := range dict.WordList() {
		dist := levenshtein.ComputeDistance(input, word)
		if dist < minDist {
			minDist = dist
			best = word
		}
		if dist == 0 {
			return word
		}
	}

	if minDist <= MaxTypoDistance {
		return best
	}
	return ""
}

// DetectTypos scans phrase word-by-word against dict and reports every
// word not present in the dictionary, each with its closest suggestion.
// This never participates in SeedFromMnemonic's checksum validation; it is
// a purely assistive operation for recovery flows.
func DetectTypos(dict Dictionary, phrase string) []Typo {
	if phrase == "" {
		return nil
	}

	words := dict.Split(strings.ToLower(phrase))
	var typos []Typo
	for i, word := range words {
		if dict.IndexOf(word) >= 0 {
			continue
		}
		suggestion := SuggestWord(dict, word)
		distance := 0
		if suggestion != "" {
			distance = levenshtein.ComputeDistance(word, suggestion)
		}
		typos = append(typos, Typo{Index: i, Word: word, Suggestion: suggestion, Distance: distance})
	}
	return typos
}

// FormatTypos renders typos as a human-readable, newline-separated list.
func FormatTypos(typos []Typo) string {
	if len(typos) == 0 {
		return ""
	}

	var b strings.Builder
	for i, t := range typos {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("word ")
		b.WriteString(strconv.Itoa(t.Index + 1))
		b.WriteString(": '")
		b.WriteString(t.Word)
		b.WriteByte('\'')
		if t.Suggestion != "" {
			b.WriteString(" - did you mean '")
			b.WriteString(t.Suggestion)
			b.WriteString("'?")
		} else {
			b.WriteString(" is not a recognized word in this dictionary")
		}
	}
	return b.String()
}
