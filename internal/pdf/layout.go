package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// LayoutExtractor is the layout-aware fallback backend built on pdfcpu. It
// reads whole content streams and scrapes the text-showing operators, which
// survives malformed page trees that break glyph-level extraction, at the
// cost of coarser text ordering.
type LayoutExtractor struct{}

// NewLayoutExtractor creates the pdfcpu-backed extractor.
func NewLayoutExtractor() *LayoutExtractor {
	return &LayoutExtractor{}
}

// Name returns the extractor identifier.
func (e *LayoutExtractor) Name() string {
	return "pdfcpu-layout"
}

// Open opens and validates the PDF at path with relaxed validation.
func (e *LayoutExtractor) Open(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu open %s: %w", path, err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pdfcpu read %s: %w", path, err)
	}

	return &layoutDocument{file: f, ctx: ctx}, nil
}

type layoutDocument struct {
	file *os.File
	ctx  *model.Context
}

func (d *layoutDocument) PageCount() int {
	return d.ctx.PageCount
}

func (d *layoutDocument) Close() error {
	return d.file.Close()
}

// PageText extracts one page by scraping its content stream.
func (d *layoutDocument) PageText(pageNum int) (PageText, error) {
	if pageNum < 1 || pageNum > d.ctx.PageCount {
		return PageText{}, fmt.Errorf("invalid page number %d (document has %d pages)",
			pageNum, d.ctx.PageCount)
	}

	r, err := pdfcpu.ExtractPageContent(d.ctx, pageNum)
	if err != nil {
		return PageText{}, fmt.Errorf("extract page %d content: %w", pageNum, err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return PageText{}, fmt.Errorf("read page %d content: %w", pageNum, err)
	}

	return PageText{
		Number: pageNum,
		Lines:  scrapeContentStream(data),
	}, nil
}

// pdfStringLiteral matches PDF string literals: (text)
var pdfStringLiteral = regexp.MustCompile(`\(([^)]*)\)`)

// scrapeContentStream walks content stream operators and collects shown
// text. Tj and TJ append to the current line; ', T* and TD start a new one.
func scrapeContentStream(data []byte) []string {
	var lines []string
	var current strings.Builder

	flush := func() {
		if line := strings.TrimSpace(current.String()); line != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}

	for _, raw := range bytes.Split(data, []byte{'\n'}) {
		op := bytes.TrimSpace(raw)
		if len(op) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(op, []byte("Tj")) || bytes.HasSuffix(op, []byte("TJ")):
			for _, m := range pdfStringLiteral.FindAllSubmatch(op, -1) {
				current.WriteString(decodePDFString(m[1]))
			}
		case bytes.HasSuffix(op, []byte("'")) && bytes.Contains(op, []byte("(")):
			flush()
			for _, m := range pdfStringLiteral.FindAllSubmatch(op, -1) {
				current.WriteString(decodePDFString(m[1]))
			}
		case bytes.Equal(op, []byte("T*")), bytes.HasSuffix(op, []byte("TD")):
			flush()
		case bytes.HasSuffix(op, []byte("Td")):
			if current.Len() > 0 {
				current.WriteByte(' ')
			}
		}
	}
	flush()

	return lines
}

// decodePDFString resolves the escape sequences PDF string literals allow.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'b', 'f':
			// discard
		case '(', ')', '\\':
			sb.WriteByte(raw[i])
		default:
			// octal escapes and line continuations are rare in the
			// documents this tool sees; pass the character through
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}
