package statistic

import (
	"strings"
	"unicode/utf8"

	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"
)

// MinWordLen is the minimum token length (in runes) counted into the
// per-user word frequency map. Shorter tokens still count toward the
// word total.
const MinWordLen = 3

func isWordRune(r rune) bool {
	if (r >= 'a' && r <= 'z') || r == ' ' {
		return true
	}
	switch r {
	case 'ğ', 'ü', 'ş', 'ö', 'ç', 'ı':
		return true
	}
	return false
}

// Tokenize lower-cases the content, drops every rune outside the
// Latin/Turkish letter set and spaces, and splits on whitespace.
func Tokenize(content string) []string {
	lowered := strings.ToLower(content)
	cleaned := strings.Map(func(r rune) rune {
		if isWordRune(r) {
			return r
		}
		return -1
	}, lowered)
	return strings.Fields(cleaned)
}

// CountEmojis walks the content grapheme cluster by grapheme cluster
// and counts each pictographic symbol occurrence into the given map.
// Cluster-level matching keeps multi-rune emoji (skin tones, ZWJ
// sequences, flags) intact.
func CountEmojis(content string, into map[string]int) {
	state := -1
	var cluster string
	for len(content) > 0 {
		cluster, content, _, state = uniseg.FirstGraphemeClusterInString(content, state)
		if len(cluster) == 1 && cluster[0] < utf8.RuneSelf {
			// single ASCII byte, cannot be pictographic
			continue
		}
		if gomoji.ContainsEmoji(cluster) {
			into[cluster]++
		}
	}
}

// WordRuneLen reports the token length the frequency cutoff is measured
// against.
func WordRuneLen(token string) int {
	return utf8.RuneCountInString(token)
}
