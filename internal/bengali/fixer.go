package bengali

import "strings"

// consonant range for Bengali, ক (U+0995) through হ (U+09B9).
const (
	consonantLo = 'ক'
	consonantHi = 'হ'
)

// iKar is the dependent vowel sign ি (U+09BF). Rendered before the
// consonant it modifies but encoded after it; character-level extraction
// emits it in visual order, which is what the fixer repairs.
const iKar = 'ি'

// Fixer repairs known keyboard-layout and font-encoding corruption in
// extracted Bengali text. The rule slice is treated as immutable after
// construction; callers inject reduced tables in tests.
type Fixer struct {
	rules []Rule
}

// NewFixer creates a fixer over the given ordered rule sets, applied in
// the order provided.
func NewFixer(ruleSets ...[]Rule) *Fixer {
	var rules []Rule
	for _, rs := range ruleSets {
		rules = append(rules, rs...)
	}
	return &Fixer{rules: rules}
}

// Rules returns the fixer's rule table.
func (f *Fixer) Rules() []Rule {
	return f.rules
}

// Fix returns the corrected form of a text fragment. It applies the
// substitution rules in order, strips replacement characters left behind
// by failed glyph decoding, and repositions misplaced ই-কার signs.
// Unknown corruption patterns are left unchanged.
func (f *Fixer) Fix(text string) string {
	if text == "" {
		return text
	}

	for _, r := range f.rules {
		text = strings.ReplaceAll(text, r.Pattern, r.Replacement)
	}

	// U+FFFD marks glyphs the extractor could not decode. Nothing can be
	// recovered from it, so drop it rather than guess.
	text = strings.ReplaceAll(text, "�", "")

	return fixIKarPosition(text)
}

// fixIKarPosition moves an ই-কার that precedes a consonant to its encoded
// position after that consonant, but only when the sign is not already
// attached to a preceding consonant. "িনম্মী" becomes "নিম্মী" while a
// correct "কি" is untouched.
func fixIKarPosition(text string) string {
	runes := []rune(text)
	changed := false

	for i := 0; i < len(runes)-1; i++ {
		if runes[i] != iKar || !isConsonant(runes[i+1]) {
			continue
		}
		if i > 0 && isConsonant(runes[i-1]) {
			// Sign already follows a consonant; this is the correct
			// encoding even though a consonant comes next.
			continue
		}
		runes[i], runes[i+1] = runes[i+1], runes[i]
		changed = true
		i++ // the swapped pair is now correct
	}

	if !changed {
		return text
	}
	return string(runes)
}

func isConsonant(r rune) bool {
	return r >= consonantLo && r <= consonantHi
}
