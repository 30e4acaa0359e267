package voter

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdvoterdata/voterscan/internal/pdf"
)

func page(number int, lines ...string) pdf.PageText {
	return pdf.PageText{Number: number, Lines: lines}
}

func TestParseSerialNumberedRecords(t *testing.T) {
	parser := NewParser(DefaultLabels())

	pages := []pdf.PageText{
		page(1,
			"১. আব্দুল করিম",
			"ভোটার নং: ১২৩৪৫৬৭৮৯০",
			"পিতা: মোঃ রহিম",
			"মাতা: রহিমা বেগম",
			"জন্মতারিখ: ০১/০২/১৯৮০",
			"পেশা: কৃষি",
			"ঠিকানা: গ্রাম উত্তর পাড়া",
			"২. ফাতেমা খাতুন",
			"ভোটার নং: ৯৮৭৬৫৪৩২১০",
			"পিতা: আব্দুল মালেক",
			"মাতা: সালমা বেগম",
			"জন্মতারিখ: ১৫/০৮/১৯৯২",
			"পেশা: গৃহিণী",
			"ঠিকানা: গ্রাম দক্ষিণ পাড়া",
		),
	}

	records, warnings := parser.Parse(pages)
	require.Len(t, records, 2)
	assert.Empty(t, warnings)

	assert.Equal(t, Record{
		Name:       "আব্দুল করিম",
		NID:        "১২৩৪৫৬৭৮৯০",
		Father:     "মোঃ রহিম",
		Mother:     "রহিমা বেগম",
		DOB:        "০১/০২/১৯৮০",
		Profession: "কৃষি",
		Address:    "গ্রাম উত্তর পাড়া",
		Page:       1,
	}, records[0])

	assert.Equal(t, "ফাতেমা খাতুন", records[1].Name)
	assert.Equal(t, "৯৮৭৬৫৪৩২১০", records[1].NID)
}

func TestParseMergedSerialAndLabelLine(t *testing.T) {
	parser := NewParser(DefaultLabels())

	pages := []pdf.PageText{
		page(1, "১. আব্দুল করিম ভোটার নং: ১২৩৪৫ পিতা: রহিম"),
	}

	records, _ := parser.Parse(pages)
	require.Len(t, records, 1)
	assert.Equal(t, "আব্দুল করিম", records[0].Name)
	assert.Equal(t, "১২৩৪৫", records[0].NID)
	assert.Equal(t, "রহিম", records[0].Father)
}

func TestParseMultipleLabelsOnOneLine(t *testing.T) {
	parser := NewParser(DefaultLabels())

	pages := []pdf.PageText{
		page(1,
			"১. করিম",
			"পিতা: রহিম মাতা: রহিমা বেগম",
		),
	}

	records, _ := parser.Parse(pages)
	require.Len(t, records, 1)
	assert.Equal(t, "রহিম", records[0].Father)
	assert.Equal(t, "রহিমা বেগম", records[0].Mother)
}

func TestParseEmptyLabeledValue(t *testing.T) {
	parser := NewParser(DefaultLabels())

	pages := []pdf.PageText{
		page(1,
			"১. করিম",
			"ভোটার নং: ১২৩",
			"পেশা:",
		),
	}

	records, _ := parser.Parse(pages)
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].Profession)
}

func TestParseNormalizesCorruptedLabels(t *testing.T) {
	parser := NewParser(DefaultLabels())

	pages := []pdf.PageText{
		page(1,
			"১. করিম",
			"িপতা: রহিম",
			"জন্মতািরখ: ০১/০১/১৯৮৫",
			"িঠকানা: ঢাকা",
		),
	}

	records, _ := parser.Parse(pages)
	require.Len(t, records, 1)
	assert.Equal(t, "রহিম", records[0].Father)
	assert.Equal(t, "০১/০১/১৯৮৫", records[0].DOB)
	assert.Equal(t, "ঢাকা", records[0].Address)
}

func TestParseSkipsBoilerplate(t *testing.T) {
	parser := NewParser(DefaultLabels())

	pages := []pdf.PageText{
		page(1,
			"এলাকা কোড: ১২৩৪",
			"পৃষ্ঠা ১",
			"১. করিম",
			"ভোটার নং: ১২৩",
		),
	}

	records, warnings := parser.Parse(pages)
	require.Len(t, records, 1)
	assert.Empty(t, warnings)
	assert.Equal(t, "করিম", records[0].Name)
}

func TestParseAddressContinuationAcrossPages(t *testing.T) {
	parser := NewParser(DefaultLabels())

	pages := []pdf.PageText{
		page(1,
			"১. করিম",
			"ভোটার নং: ১২৩",
			"ঠিকানা: বাড়ি ৫, ব্লক খ",
		),
		page(2,
			"সেকশন ১২, মিরপুর",
			"২. ফাতেমা",
			"ভোটার নং: ৪৫৬",
		),
	}

	records, warnings := parser.Parse(pages)
	require.Len(t, records, 2)
	assert.Empty(t, warnings)
	assert.Equal(t, "বাড়ি ৫, ব্লক খ সেকশন ১২, মিরপুর", records[0].Address)
}

func TestParseUnmatchedFragmentWarns(t *testing.T) {
	parser := NewParser(DefaultLabels())

	pages := []pdf.PageText{
		page(1,
			"১. করিম",
			"ভোটার নং: ১২৩",
			"আলগা টুকরা লেখা",
		),
	}

	records, warnings := parser.Parse(pages)
	require.Len(t, records, 1)
	require.Len(t, warnings, 1)
	assert.Equal(t, "unmatched fragment dropped", warnings[0].Reason)
	assert.Equal(t, 1, warnings[0].Page)

	// A dropped fragment never changes the record.
	assert.Equal(t, "", records[0].Address)
}

func TestParseLabeledValueOutsideRecordWarns(t *testing.T) {
	parser := NewParser(DefaultLabels())

	pages := []pdf.PageText{
		page(1, "পিতা: রহিম"),
	}

	records, warnings := parser.Parse(pages)
	assert.Empty(t, records)
	require.Len(t, warnings, 1)
	assert.Equal(t, "labeled value outside any record", warnings[0].Reason)
}

func TestParseDropsNamelessRecord(t *testing.T) {
	parser := NewParser(DefaultLabels())

	// The serial line lost its name and merged straight into the labels.
	pages := []pdf.PageText{
		page(1, "১. ভোটার নং: ১২৩"),
	}

	records, warnings := parser.Parse(pages)
	assert.Empty(t, records)
	require.Len(t, warnings, 1)
	assert.Equal(t, "record without name dropped", warnings[0].Reason)
}

func TestParseWarnsOnMissingVoterNumber(t *testing.T) {
	parser := NewParser(DefaultLabels())

	pages := []pdf.PageText{
		page(1,
			"১. করিম",
			"পিতা: রহিম",
		),
	}

	records, warnings := parser.Parse(pages)
	require.Len(t, records, 1)
	require.Len(t, warnings, 1)
	assert.Equal(t, "record has no voter number", warnings[0].Reason)
}

func TestParseFirstLabeledValueWins(t *testing.T) {
	parser := NewParser(DefaultLabels())

	pages := []pdf.PageText{
		page(1,
			"১. করিম",
			"ভোটার নং: ১১১",
			"ভোটার নং: ২২২",
		),
	}

	records, _ := parser.Parse(pages)
	require.Len(t, records, 1)
	assert.Equal(t, "১১১", records[0].NID)
}

func TestParseExtractsDateFromNoisyValue(t *testing.T) {
	parser := NewParser(DefaultLabels())

	pages := []pdf.PageText{
		page(1,
			"১. করিম",
			"জন্মতারিখ: ০১/০২/১৯৮০ অতিরিক্ত",
		),
	}

	records, _ := parser.Parse(pages)
	require.Len(t, records, 1)
	assert.Equal(t, "০১/০২/১৯৮০", records[0].DOB)
}

func TestParseEmptyInput(t *testing.T) {
	parser := NewParser(DefaultLabels())

	records, warnings := parser.Parse(nil)
	assert.Empty(t, records)
	assert.Empty(t, warnings)

	records, warnings = parser.Parse([]pdf.PageText{page(1)})
	assert.Empty(t, records)
	assert.Empty(t, warnings)
}

// Formats without serial numbers open records at an explicit name label
// instead; the table is data, so swapping it needs no parser changes.
func TestParseCustomLabelTable(t *testing.T) {
	labels := &LabelSet{
		RecordStart: regexp.MustCompile(`^$`),
		Labels: []FieldLabel{
			{FieldName, "Name:"},
			{FieldNID, "ID:"},
			{FieldFather, "Father:"},
		},
	}
	parser := NewParser(labels)

	pages := []pdf.PageText{
		page(1,
			"Name: করিম",
			"ID: 123",
			"Father: রহিম",
			"Name: ফাতেমা",
			"ID: 456",
		),
	}

	records, warnings := parser.Parse(pages)
	require.Len(t, records, 2)
	assert.Empty(t, warnings)
	assert.Equal(t, Record{Name: "করিম", NID: "123", Father: "রহিম", Page: 1}, records[0])
	assert.Equal(t, Record{Name: "ফাতেমা", NID: "456", Page: 1}, records[1])
}
