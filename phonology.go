package navlang

import (
	"fmt"
	"regexp"
	"strings"
)

// reToken matches a single Na'vi word token: letters of the Na'vi alphabet
// plus the glottal stop (apostrophe). Hyphens split compounds into tokens.
var reToken = regexp.MustCompile(`[a-zA-ZìäÌÄ']+`)

// Tokenize splits a sentence into word tokens, preserving surface order.
func Tokenize(text string) []string {
	return reToken.FindAllString(text, -1)
}

// naviLetters is the Na'vi phonemic inventory as written in the romanized
// orthography. The letters b, c, d, g (outside ng), j and q do not occur;
// x occurs only as the second half of an ejective digraph (px, tx, kx).
const naviLetters = "aäeiìoufhklmnprstvwxyz'g"

func isNaviLetter(r rune) bool {
	return strings.ContainsRune(naviLetters, r)
}

// vowels are the seven simple vowels. w and y are consonants; the
// diphthongs aw/ay/ew/ey therefore read as vowel + consonant here.
const vowels = "aäeiìou"

func isVowel(r rune) bool {
	return strings.ContainsRune(vowels, r)
}

// diphthongs in final position behave like vowels for several case
// allomorphs even though they end in a consonant letter.
var diphthongs = []string{"aw", "ay", "ew", "ey"}

// CheckToken validates a token against the phonemic inventory. It returns
// a MalformedToken issue error for anything containing letters outside the
// inventory, including a bare or misplaced x. The check is deliberately
// orthographic, not a full phonotactic validation.
func CheckToken(token string) error {
	lower := strings.ToLower(token)
	prev := rune(0)
	for _, r := range lower {
		if !isNaviLetter(r) {
			return fmt.Errorf("%w: %q contains %q", ErrMalformedToken, token, r)
		}
		if r == 'x' && prev != 'p' && prev != 't' && prev != 'k' {
			return fmt.Errorf("%w: %q has x outside an ejective digraph", ErrMalformedToken, token)
		}
		prev = r
	}
	if lower == "" {
		return fmt.Errorf("%w: empty token", ErrMalformedToken)
	}
	return nil
}

// EndsWithVowel reports whether the final letter of s is a simple vowel.
func EndsWithVowel(s string) bool {
	runes := []rune(s)
	return len(runes) > 0 && isVowel(runes[len(runes)-1])
}

// EndsWithDiphthong reports whether s ends in one of the four diphthongs.
func EndsWithDiphthong(s string) bool {
	for _, d := range diphthongs {
		if strings.HasSuffix(s, d) {
			return true
		}
	}
	return false
}

// syllables splits a word after each vowel; a trailing consonant cluster
// joins the last syllable. "kame" → [ka me], "taron" → [ta ron].
func syllables(word string) []string {
	var sylls []string
	var cur []rune
	for _, r := range word {
		cur = append(cur, r)
		if isVowel(r) {
			sylls = append(sylls, string(cur))
			cur = nil
		}
	}
	if len(cur) > 0 {
		if len(sylls) > 0 {
			sylls[len(sylls)-1] += string(cur)
		} else {
			sylls = append(sylls, string(cur))
		}
	}
	return sylls
}

// infixPoint returns the byte offset in root where an infix in the given
// slot is inserted: before the vowel of the penultimate syllable for slot
// one, before the vowel of the final syllable for slot two. On a
// monosyllabic root both slots share the single insertion point, with the
// slot-one infix ordered outermost.
func infixPoint(root string, slot Attachment) int {
	sylls := syllables(root)
	if len(sylls) == 0 {
		return 0
	}
	idx := len(sylls) - 1
	if slot == AttachInfix1 && len(sylls) >= 2 {
		idx = len(sylls) - 2
	}
	off := 0
	for i := 0; i < idx; i++ {
		off += len(sylls[i])
	}
	for j, r := range sylls[idx] {
		if isVowel(r) {
			return off + j
		}
	}
	return off + len(sylls[idx])
}

// lenitionPairs lists the lenition mutations triggered by the number
// prefixes, ejective digraphs before their plain counterparts so the
// longest match wins. The glottal stop is dropped entirely.
var lenitionPairs = []struct{ from, to string }{
	{"px", "p"},
	{"tx", "t"},
	{"kx", "k"},
	{"ts", "s"},
	{"p", "f"},
	{"t", "s"},
	{"k", "h"},
	{"'", ""},
}

// Lenite applies initial-consonant lenition to word. Words beginning with
// a non-lenitable sound are returned unchanged.
func Lenite(word string) string {
	for _, lp := range lenitionPairs {
		if strings.HasPrefix(word, lp.from) {
			return lp.to + word[len(lp.from):]
		}
	}
	return word
}

// unleniteCandidates returns every stem that lenites to the given surface
// stem, in the fixed order of the lenition table. The surface stem itself
// is included when it is not subject to lenition, so a non-lenitable stem
// under a number prefix still round-trips.
func unleniteCandidates(stem string) []string {
	var out []string
	for _, lp := range lenitionPairs {
		var cand string
		if lp.to == "" {
			cand = lp.from + stem
		} else if strings.HasPrefix(stem, lp.to) {
			cand = lp.from + stem[len(lp.to):]
		} else {
			continue
		}
		if Lenite(cand) == stem {
			out = append(out, cand)
		}
	}
	if Lenite(stem) == stem {
		out = append(out, stem)
	}
	return out
}
