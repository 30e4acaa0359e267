package pdf

import (
	"errors"
	"fmt"

	"github.com/phuslu/log"
)

// ErrMissingDependency is returned when no extraction backend is available
// for a document. With both bundled backends compiled in this only happens
// when a caller constructs an empty chain, but the pipeline still treats it
// as a fatal configuration error rather than attempting extraction.
var ErrMissingDependency = errors.New("no PDF extraction backend available")

// InputError marks a document that could not be opened or parsed by any
// backend. It identifies the offending file.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("unreadable PDF %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Document is an open PDF exposing per-page text extraction.
type Document interface {
	PageCount() int
	// PageText extracts the text of a single page, 1-based.
	PageText(pageNum int) (PageText, error)
	Close() error
}

// Extractor opens PDF documents with one particular extraction strategy.
// Implementations must be safe to probe at startup without touching a file.
type Extractor interface {
	Name() string
	Open(path string) (Document, error)
}

// Probe returns the extractor chain in preference order: the
// character-level backend first, the layout-aware backend as fallback.
// Selection happens here, once, instead of through error-driven retries
// scattered over the call sites.
func Probe() []Extractor {
	return []Extractor{
		NewCharExtractor(),
		NewLayoutExtractor(),
	}
}

// Chain runs a document through an ordered list of extractors with
// per-page fallback.
type Chain struct {
	extractors []Extractor
}

// NewChain creates a chain over the given extractors, tried in order.
func NewChain(extractors ...Extractor) *Chain {
	return &Chain{extractors: extractors}
}

// Extract pulls per-page text from the PDF at path. The first extractor
// that can open the file drives the extraction; a page it fails on is
// retried with the remaining extractors before being recorded as a
// warning. Extraction warnings never abort the run.
func (c *Chain) Extract(path string) (*ExtractResult, error) {
	if len(c.extractors) == 0 {
		return nil, ErrMissingDependency
	}

	primaryIdx, doc, err := c.open(path, 0)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	primary := c.extractors[primaryIdx]
	result := &ExtractResult{
		Path:      path,
		PageCount: doc.PageCount(),
		Engine:    primary.Name(),
	}

	// Fallback documents are opened lazily and at most once each.
	fallbacks := make(map[int]Document)
	defer func() {
		for _, fd := range fallbacks {
			fd.Close()
		}
	}()

	for pageNum := 1; pageNum <= result.PageCount; pageNum++ {
		page, err := doc.PageText(pageNum)
		if err != nil || page.IsEmpty() {
			page, err = c.fallbackPage(path, primaryIdx, pageNum, fallbacks)
		}
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("page %d: extraction failed: %v", pageNum, err))
			result.Pages = append(result.Pages, PageText{Number: pageNum})
			continue
		}
		if page.IsEmpty() {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("page %d: no text extracted", pageNum))
		}
		page.Number = pageNum
		result.Pages = append(result.Pages, page)
	}

	return result, nil
}

// open tries extractors from startIdx until one opens the file.
func (c *Chain) open(path string, startIdx int) (int, Document, error) {
	var lastErr error
	for i := startIdx; i < len(c.extractors); i++ {
		doc, err := c.extractors[i].Open(path)
		if err == nil {
			return i, doc, nil
		}
		lastErr = err
		log.Debug().Str("extractor", c.extractors[i].Name()).Err(err).Msg("open failed")
	}
	return 0, nil, &InputError{Path: path, Err: lastErr}
}

// fallbackPage retries a single page with the extractors after primaryIdx.
func (c *Chain) fallbackPage(path string, primaryIdx, pageNum int, open map[int]Document) (PageText, error) {
	var lastErr error
	for i := primaryIdx + 1; i < len(c.extractors); i++ {
		doc, ok := open[i]
		if !ok {
			var err error
			doc, err = c.extractors[i].Open(path)
			if err != nil {
				lastErr = err
				continue
			}
			open[i] = doc
		}
		page, err := doc.PageText(pageNum)
		if err != nil {
			lastErr = err
			continue
		}
		if !page.IsEmpty() {
			log.Debug().Int("page", pageNum).Str("extractor", c.extractors[i].Name()).
				Msg("fallback extractor recovered page text")
			return page, nil
		}
	}
	if lastErr != nil {
		return PageText{}, lastErr
	}
	return PageText{Number: pageNum}, nil
}
