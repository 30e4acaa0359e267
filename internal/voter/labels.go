package voter

import (
	"regexp"

	"github.com/bdvoterdata/voterscan/internal/bengali"
)

// Field identifies one column of the record schema that is filled from a
// labeled value.
type Field int

const (
	// FieldName is only filled from a label when a roll format carries an
	// explicit name marker; the default table takes names from the
	// serial-number line instead.
	FieldName Field = iota
	FieldNID
	FieldFather
	FieldMother
	FieldDOB
	FieldProfession
	FieldAddress
)

// FieldLabel binds a literal label marker to the field it introduces.
type FieldLabel struct {
	Field Field
	Label string
}

// LabelSet is the replaceable rule table driving record-boundary and field
// detection. The label heuristics have proven fragile across PDF sources,
// so they live in data rather than in parser logic.
type LabelSet struct {
	// RecordStart matches a serial-number line opening a new record; the
	// first capture group is the person's name.
	RecordStart *regexp.Regexp

	// Labels are tried in order when slicing a line into field segments.
	Labels []FieldLabel

	// Normalizations repair corrupted label spellings before matching.
	// Extraction noise garbles labels just like values.
	Normalizations []bengali.Rule

	// SkipKeywords mark page-header boilerplate lines to ignore.
	SkipKeywords []string
}

// numeric token patterns for value post-processing; some rolls mix ASCII
// digits into otherwise Bengali-digit numbers
var (
	digitRun = regexp.MustCompile(`[০-৯0-9]+`)
	dobRun   = regexp.MustCompile(`[০-৯0-9][০-৯0-9/]*`)
)

// DefaultLabels returns the label table for Bangladesh voter-roll PDFs.
func DefaultLabels() *LabelSet {
	return &LabelSet{
		// "১. name", "১ . name" and looser spacings all occur.
		RecordStart: regexp.MustCompile(`^[০-৯]+\s*\.\s*(.+)$`),

		Labels: []FieldLabel{
			{FieldNID, "ভোটার নং:"},
			{FieldFather, "পিতা:"},
			{FieldMother, "মাতা:"},
			{FieldDOB, "জন্মতারিখ:"},
			{FieldProfession, "পেশা:"},
			{FieldAddress, "ঠিকানা:"},
		},

		Normalizations: []bengali.Rule{
			{Pattern: "িপতা:", Replacement: "পিতা:"},
			{Pattern: "জন্মতািরখ:", Replacement: "জন্মতারিখ:"},
			{Pattern: "িঠকানা:", Replacement: "ঠিকানা:"},
			{Pattern: "পশা:", Replacement: "পেশা:"},
			{Pattern: "ভোটার  নং:", Replacement: "ভোটার নং:"},
		},

		SkipKeywords: []string{
			"আদমজী",
			"ক্যান্টনমেন্ট",
			"এলাকা কোড",
			"পৃষ্ঠা",
			"ক্রিমক",
			"ভাবন",
			"কেন্দ্র",
			"শহীদ রমিজ",
		},
	}
}
