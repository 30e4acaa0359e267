package voter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bdvoterdata/voterscan/internal/pdf"
	"github.com/phuslu/log"
)

// Warning flags a text fragment that could not be matched to the record
// shape. Warnings never abort a run; silently misassigning data is worse
// than losing a fragment.
type Warning struct {
	Page   int    `json:"page"`
	Line   string `json:"line"`
	Reason string `json:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("page %d: %s: %q", w.Page, w.Reason, w.Line)
}

// Parser splits cleaned page text into voter records using label-anchored
// matching driven by a LabelSet.
type Parser struct {
	labels *LabelSet
}

// NewParser creates a parser over the given label table.
func NewParser(labels *LabelSet) *Parser {
	return &Parser{labels: labels}
}

// Parse scans the ordered page texts and produces one Record per person.
//
// A record opens at a serial-number line and collects labeled field values
// from the following lines until the next serial number. A labeled field
// with an empty value stays an empty string. The leading run of unmatched
// lines at the top of a page continues the previous record's address (an
// address wrapping across a page boundary); any later unmatched line is
// dropped with a warning.
func (p *Parser) Parse(pages []pdf.PageText) ([]Record, []Warning) {
	var records []Record
	var warnings []Warning
	var current *Record

	finalize := func() {
		if current == nil {
			return
		}
		if current.Name == "" {
			// Never fabricate a person from a nameless fragment.
			warnings = append(warnings, Warning{
				Page:   current.Page,
				Reason: "record without name dropped",
			})
		} else {
			if current.NID == "" {
				warnings = append(warnings, Warning{
					Page:   current.Page,
					Line:   current.Name,
					Reason: "record has no voter number",
				})
			}
			records = append(records, *current)
		}
		current = nil
	}

	for _, page := range pages {
		matchedOnPage := false
		continuationOpen := true

		for _, rawLine := range page.Lines {
			line := p.normalize(rawLine)
			if line == "" {
				continue
			}

			if p.isBoilerplate(line) {
				continue
			}

			if m := p.recordStart(line); m != nil {
				finalize()
				rest := strings.TrimSpace(m[1])
				current = &Record{Page: page.Number}
				// Extraction sometimes merges the serial line with the
				// first labeled line; the name ends where labels begin.
				if idx := p.firstLabelIndex(rest); idx >= 0 {
					current.Name = strings.TrimSpace(rest[:idx])
					p.assign(current, p.splitByLabels(rest[idx:]))
				} else {
					current.Name = rest
				}
				matchedOnPage = true
				continuationOpen = false
				continue
			}

			segments := p.splitByLabels(line)
			if len(segments) > 0 {
				// A name label is an ID-like token of its own: it opens
				// a record in roll formats without serial numbers.
				if name, ok := nameSegment(segments); ok && (current == nil || current.Name != "") {
					finalize()
					current = &Record{Name: name, Page: page.Number}
				}
				if current == nil {
					warnings = append(warnings, Warning{
						Page:   page.Number,
						Line:   line,
						Reason: "labeled value outside any record",
					})
					matchedOnPage = true
					continuationOpen = false
					continue
				}
				p.assign(current, segments)
				matchedOnPage = true
				continuationOpen = false
				continue
			}

			// Unmatched fragment. At the top of a page it continues the
			// address of the record left open by the previous page.
			if !matchedOnPage && continuationOpen {
				var target *Record
				if current != nil {
					target = current
				} else if len(records) > 0 {
					target = &records[len(records)-1]
				}
				if target != nil {
					if target.Address != "" {
						target.Address += " "
					}
					target.Address += line
					log.Debug().Int("page", page.Number).Msg("appended page-wrap address continuation")
					continue
				}
			}

			warnings = append(warnings, Warning{
				Page:   page.Number,
				Line:   line,
				Reason: "unmatched fragment dropped",
			})
		}
	}
	finalize()

	return records, warnings
}

// recordStart matches a record-opening line. Label tables for formats
// without serial numbers leave RecordStart nil.
func (p *Parser) recordStart(line string) []string {
	if p.labels.RecordStart == nil {
		return nil
	}
	return p.labels.RecordStart.FindStringSubmatch(line)
}

// normalize cleans a line and repairs corrupted label spellings so the
// literal label matching below can anchor on them.
func (p *Parser) normalize(line string) string {
	line = strings.TrimSpace(line)
	for _, r := range p.labels.Normalizations {
		line = strings.ReplaceAll(line, r.Pattern, r.Replacement)
	}
	return line
}

// isBoilerplate reports whether the line is page-header boilerplate.
func (p *Parser) isBoilerplate(line string) bool {
	for _, kw := range p.labels.SkipKeywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}

// firstLabelIndex returns the byte offset of the earliest label on the
// line, or -1 when no label occurs.
func (p *Parser) firstLabelIndex(line string) int {
	first := -1
	for _, fl := range p.labels.Labels {
		if idx := strings.Index(line, fl.Label); idx >= 0 && (first < 0 || idx < first) {
			first = idx
		}
	}
	return first
}

// segment is one labeled slice of a line.
type segment struct {
	field Field
	value string
}

// splitByLabels slices a line into labeled segments. Each segment's value
// runs from just after its label to the start of the next label on the
// line, so one physical line can fill several fields.
func (p *Parser) splitByLabels(line string) []segment {
	type anchor struct {
		field Field
		start int // label start
		end   int // value start
	}
	var anchors []anchor

	for _, fl := range p.labels.Labels {
		offset := 0
		rest := line
		for {
			idx := strings.Index(rest, fl.Label)
			if idx < 0 {
				break
			}
			anchors = append(anchors, anchor{
				field: fl.Field,
				start: offset + idx,
				end:   offset + idx + len(fl.Label),
			})
			offset += idx + len(fl.Label)
			rest = line[offset:]
		}
	}
	if len(anchors) == 0 {
		return nil
	}

	sort.Slice(anchors, func(i, j int) bool { return anchors[i].start < anchors[j].start })

	segments := make([]segment, 0, len(anchors))
	for i, a := range anchors {
		valueEnd := len(line)
		if i+1 < len(anchors) {
			valueEnd = anchors[i+1].start
		}
		segments = append(segments, segment{
			field: a.field,
			value: strings.TrimSpace(line[a.end:valueEnd]),
		})
	}
	return segments
}

// nameSegment returns the first name-labeled value on the line, if any.
func nameSegment(segments []segment) (string, bool) {
	for _, s := range segments {
		if s.field == FieldName {
			return s.value, true
		}
	}
	return "", false
}

// assign fills record fields from labeled segments. The first value seen
// for a field wins; an empty labeled value still counts as present.
func (p *Parser) assign(rec *Record, segments []segment) {
	for _, s := range segments {
		switch s.field {
		case FieldName:
			// Handled at record-boundary time in Parse.
		case FieldNID:
			if rec.NID == "" {
				rec.NID = extractDigits(s.value)
			}
		case FieldFather:
			if rec.Father == "" {
				rec.Father = s.value
			}
		case FieldMother:
			if rec.Mother == "" {
				rec.Mother = s.value
			}
		case FieldDOB:
			if rec.DOB == "" {
				rec.DOB = extractDOB(s.value)
			}
		case FieldProfession:
			if rec.Profession == "" {
				rec.Profession = s.value
			}
		case FieldAddress:
			if rec.Address == "" {
				rec.Address = s.value
			}
		}
	}
}

// extractDigits pulls the first digit run out of a voter number value,
// discarding trailing noise.
func extractDigits(value string) string {
	return digitRun.FindString(value)
}

// extractDOB pulls a date like ০১/০২/১৯৮০ out of a value.
func extractDOB(value string) string {
	return strings.TrimRight(dobRun.FindString(value), "/")
}
