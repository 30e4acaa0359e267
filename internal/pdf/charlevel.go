package pdf

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// charGapFactor controls when a horizontal gap between two glyphs is wide
// enough to count as a word boundary, as a fraction of the font size.
const charGapFactor = 0.3

// CharExtractor extracts text glyph by glyph using ledongthuc/pdf and
// reassembles lines from glyph positions. Character-level extraction keeps
// the visual order of complex-script glyphs, which the downstream Bengali
// fixer depends on.
type CharExtractor struct{}

// NewCharExtractor creates the character-level extractor.
func NewCharExtractor() *CharExtractor {
	return &CharExtractor{}
}

// Name returns the extractor identifier.
func (e *CharExtractor) Name() string {
	return "ledongthuc-char"
}

// Open opens the PDF at path for character-level extraction.
func (e *CharExtractor) Open(path string) (Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ledongthuc open %s: %w", path, err)
	}
	return &charDocument{file: f, reader: reader}, nil
}

type charDocument struct {
	file   *os.File
	reader *pdf.Reader
}

func (d *charDocument) PageCount() int {
	return d.reader.NumPage()
}

func (d *charDocument) Close() error {
	return d.file.Close()
}

// PageText extracts one page and groups its glyphs into lines by baseline.
func (d *charDocument) PageText(pageNum int) (PageText, error) {
	if pageNum < 1 || pageNum > d.reader.NumPage() {
		return PageText{}, fmt.Errorf("invalid page number %d (document has %d pages)",
			pageNum, d.reader.NumPage())
	}

	page := d.reader.Page(pageNum)
	if page.V.IsNull() {
		return PageText{Number: pageNum}, nil
	}

	content := page.Content()
	return PageText{
		Number: pageNum,
		Lines:  assembleLines(content.Text),
	}, nil
}

// assembleLines turns a positioned glyph stream into text lines: glyphs are
// bucketed by baseline Y, buckets ordered top to bottom, glyphs within a
// bucket ordered left to right. A wide horizontal gap becomes a space.
func assembleLines(glyphs []pdf.Text) []string {
	if len(glyphs) == 0 {
		return nil
	}

	type row struct {
		y      float64
		glyphs []pdf.Text
	}
	var rows []*row

	for _, g := range glyphs {
		tolerance := g.FontSize / 2
		if tolerance <= 0 {
			tolerance = 3
		}
		var target *row
		for _, r := range rows {
			if g.Y >= r.y-tolerance && g.Y <= r.y+tolerance {
				target = r
				break
			}
		}
		if target == nil {
			target = &row{y: g.Y}
			rows = append(rows, target)
		}
		target.glyphs = append(target.glyphs, g)
	}

	// PDF Y grows upward, so higher baselines come first.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		sort.SliceStable(r.glyphs, func(i, j int) bool { return r.glyphs[i].X < r.glyphs[j].X })

		var sb strings.Builder
		prevEnd := -1.0
		for _, g := range r.glyphs {
			if prevEnd >= 0 {
				gap := g.X - prevEnd
				threshold := g.FontSize * charGapFactor
				if threshold <= 0 {
					threshold = 1
				}
				if gap > threshold {
					sb.WriteByte(' ')
				}
			}
			sb.WriteString(g.S)
			prevEnd = g.X + g.W
		}

		line := strings.TrimSpace(sb.String())
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
