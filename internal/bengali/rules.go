package bengali

// Rule maps a corrupted substring to its corrected form. Rules are applied
// in slice order; later rules may rely on earlier ones having already
// normalized a pattern, so the order of a rule set is part of its contract.
type Rule struct {
	Pattern     string
	Replacement string
}

// DefaultRules returns the substitution table for text extracted from
// voter-roll PDFs typeset with the Bijoy keyboard layout. The dominant
// corruption is a dropped ো/ে vowel sign (extracted as U+FFFD and then
// lost), so most entries restore a missing o-kar or e-kar inside names
// and labels. Longer patterns come before their shorter prefixes.
func DefaultRules() []Rule {
	return []Rule{
		// ভোটার / কোড / রোড header words
		{"ভাটার", "ভোটার"},
		{"কাড", "কোড"},
		{"রাড", "রোড"},

		// মোঃ honorific family, longest first so মাঃ does not fire early
		{"মাহাম্মদ", "মোহাম্মদ"},
		{"মাসােদ্দক", "মোসাদ্দেক"},
		{"মাসাম্মৎ", "মোসাম্মৎ"},
		{"মাসাম্মত", "মোসাম্মত"},
		{"মাসিলম", "মোছলিম"},
		{"মাহাঃ", "মোহাঃ"},
		{"মাসাঃ", "মোসাঃ"},
		{"মাছাঃ", "মোছাঃ"},
		{"মাঃ", "মোঃ"},

		{"বগম", "বেগম"},
		{"পশা", "পেশা"},
		{"কন্দ্র", "কেন্দ্র"},
		{"খােদজা", "খোদেজা"},
		{"জােবদা", "জোবেদা"},
		{"গালাম", "গোলাম"},
		{"ফরেদৌসী", "ফরিদৌসী"},
		{"শখ", "শেখ"},
		{"রজওয়ানা", "রেজওয়ানা"},
		{"রজাউল", "রেজাউল"},
		{"হােসন", "হোসেন"},

		// address vocabulary
		{"কায়াটার", "কোয়ার্টার"},
		{"কায়াটা", "কোয়ার্টার"},
		{"কায়াট", "কোয়ার্টার"},
		{"গালস", "গার্লস"},
		{"টচার", "টিচার"},
	}
}

// DoubleConsonantRules returns fixes for the doubled-consonant artifact the
// extractor produces when a glyph is emitted twice around a vowel sign
// (মমো for মো and so on). Applied in the final cleanup pass.
func DoubleConsonantRules() []Rule {
	return []Rule{
		{"মমোঃ", "মোঃ"},
		{"মমোছাঃ", "মোছাঃ"},
		{"মমোসাঃ", "মোসাঃ"},
		{"মমোস্ত", "মোস্ত"},
		{"মমোত", "মোত"},
		{"মমোজ", "মোজ"},
		{"মমোল", "মোল"},
		{"মমো", "মো"},
		{"মমী", "মী"},
		{"হহো", "হো"},
		{"ররো", "রো"},
		{"গগো", "গো"},
		{"ককো", "কো"},
	}
}
