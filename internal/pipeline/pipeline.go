// Package pipeline runs the linear batch conversion of one voter-roll PDF
// into three CSV files: the raw extraction dump, the structured records,
// and the final cleaned records.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/phuslu/log"

	"github.com/bdvoterdata/voterscan/internal/bengali"
	"github.com/bdvoterdata/voterscan/internal/csvio"
	"github.com/bdvoterdata/voterscan/internal/pdf"
	"github.com/bdvoterdata/voterscan/internal/voter"
)

// Options configures a pipeline. Zero values select the production
// defaults; tests inject reduced rule tables and extractor chains.
type Options struct {
	// Extractors is the ordered extractor chain. Defaults to pdf.Probe().
	Extractors []pdf.Extractor

	// Fixer repairs encoding corruption during the cleaning stage.
	// Defaults to the production substitution table.
	Fixer *bengali.Fixer

	// FinalFixer is re-applied field-wise to structured records in the
	// finalize stage. Defaults to the production table plus the
	// doubled-consonant rules.
	FinalFixer *bengali.Fixer

	// Labels drives record and field detection. Defaults to the
	// Bangladesh voter-roll table.
	Labels *voter.LabelSet

	// OutDir receives the output files. Defaults to the input's directory.
	OutDir string

	// MaxFileSize bounds input PDFs, 0 meaning no limit.
	MaxFileSize int64
}

// Result summarizes a completed run of one file.
type Result struct {
	Input         string
	RawCSV        string
	StructuredCSV string
	FinalCSV      string
	PageCount     int
	RecordCount   int
	Warnings      []string
}

// Pipeline converts voter-roll PDFs to CSV. One file is processed start
// to finish before the next; runs share no mutable state.
type Pipeline struct {
	chain      *pdf.Chain
	validator  *pdf.Validator
	fixer      *bengali.Fixer
	finalFixer *bengali.Fixer
	parser     *voter.Parser
	outDir     string
	extractors int
}

// New creates a pipeline, filling unset options with production defaults.
func New(opts Options) *Pipeline {
	extractors := opts.Extractors
	if extractors == nil {
		extractors = pdf.Probe()
	}
	fixer := opts.Fixer
	if fixer == nil {
		fixer = bengali.NewFixer(bengali.DefaultRules())
	}
	finalFixer := opts.FinalFixer
	if finalFixer == nil {
		finalFixer = bengali.NewFixer(bengali.DefaultRules(), bengali.DoubleConsonantRules())
	}
	labels := opts.Labels
	if labels == nil {
		labels = voter.DefaultLabels()
	}

	return &Pipeline{
		chain:      pdf.NewChain(extractors...),
		validator:  pdf.NewValidator(opts.MaxFileSize),
		fixer:      fixer,
		finalFixer: finalFixer,
		parser:     voter.NewParser(labels),
		outDir:     opts.OutDir,
		extractors: len(extractors),
	}
}

// Run converts a single PDF. Fatal errors (missing backend, unreadable
// input, unwritable output) abort immediately; degraded pages and
// unparseable fragments accumulate as warnings reported at end of run.
func (p *Pipeline) Run(pdfPath string) (*Result, error) {
	// Configuration problems must surface before any output file exists.
	if p.extractors == 0 {
		return nil, &StageError{Stage: StageStart, Path: pdfPath, Err: pdf.ErrMissingDependency}
	}
	if err := p.validator.ValidateFile(pdfPath); err != nil {
		return nil, &StageError{Stage: StageStart, Path: pdfPath, Err: err}
	}

	result := &Result{Input: pdfPath}
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	outDir := p.outDir
	if outDir == "" {
		outDir = filepath.Dir(pdfPath)
	}
	result.RawCSV = filepath.Join(outDir, base+".csv")
	result.StructuredCSV = filepath.Join(outDir, base+"_structured.csv")
	result.FinalCSV = filepath.Join(outDir, base+"_structured_final.csv")

	// Start -> Extracted
	log.Info().Str("file", pdfPath).Msg("extracting text")
	extracted, err := p.chain.Extract(pdfPath)
	if err != nil {
		return nil, &StageError{Stage: StageExtracted, Path: pdfPath, Err: err}
	}
	result.PageCount = extracted.PageCount
	result.Warnings = append(result.Warnings, extracted.Warnings...)

	for i := range extracted.Pages {
		extracted.Pages[i].Lines = cleanLines(extracted.Pages[i].Lines)
	}
	if err := csvio.WriteRawLines(result.RawCSV, extracted.Pages); err != nil {
		return nil, &StageError{Stage: StageExtracted, Path: pdfPath, Err: err}
	}
	log.Info().Str("file", result.RawCSV).Int("pages", result.PageCount).Msg("raw CSV written")

	// Extracted -> Cleaned
	cleaned := make([]pdf.PageText, len(extracted.Pages))
	for i, page := range extracted.Pages {
		lines := make([]string, len(page.Lines))
		for j, line := range page.Lines {
			lines[j] = p.fixer.Fix(line)
		}
		cleaned[i] = pdf.PageText{Number: page.Number, Lines: lines}
	}

	// Cleaned -> Structured
	records, parseWarnings := p.parser.Parse(cleaned)
	for _, w := range parseWarnings {
		result.Warnings = append(result.Warnings, w.String())
	}
	result.RecordCount = len(records)
	if err := csvio.WriteRecords(result.StructuredCSV, records); err != nil {
		return nil, &StageError{Stage: StageStructured, Path: pdfPath, Err: err}
	}
	log.Info().Str("file", result.StructuredCSV).Int("records", len(records)).Msg("structured CSV written")

	// Structured -> Finalized: re-apply the fixer to already-structured
	// fields to catch corruption that only became matchable after the
	// fields were cut apart.
	final := make([]voter.Record, len(records))
	for i, rec := range records {
		final[i] = p.finalizeRecord(rec)
	}
	if err := csvio.WriteRecords(result.FinalCSV, final); err != nil {
		return nil, &StageError{Stage: StageFinalized, Path: pdfPath, Err: err}
	}
	log.Info().Str("file", result.FinalCSV).Msg("final CSV written")

	// Finalized -> Done
	for _, w := range result.Warnings {
		log.Warn().Str("file", pdfPath).Msg(w)
	}
	log.Info().Str("file", pdfPath).
		Int("records", result.RecordCount).
		Int("warnings", len(result.Warnings)).
		Msg("pipeline done")

	return result, nil
}

// RunDir converts every PDF in dir sequentially in lexicographic order so
// repeated runs over the same inputs produce identical output. Each file
// is independent; one file's failure does not stop the rest.
func (p *Pipeline) RunDir(dir string) ([]*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var pdfs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			pdfs = append(pdfs, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(pdfs)

	if len(pdfs) == 0 {
		return nil, fmt.Errorf("no PDF files found in %s", dir)
	}

	var results []*Result
	var errs []error
	for _, path := range pdfs {
		res, err := p.Run(path)
		if err != nil {
			log.Error().Str("file", path).Err(err).Msg("file failed")
			errs = append(errs, err)
			continue
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

// finalizeRecord applies the final fixer to every text field.
func (p *Pipeline) finalizeRecord(rec voter.Record) voter.Record {
	rec.Name = p.finalFixer.Fix(rec.Name)
	rec.NID = p.finalFixer.Fix(rec.NID)
	rec.Father = p.finalFixer.Fix(rec.Father)
	rec.Mother = p.finalFixer.Fix(rec.Mother)
	rec.DOB = p.finalFixer.Fix(rec.DOB)
	rec.Profession = p.finalFixer.Fix(rec.Profession)
	rec.Address = p.finalFixer.Fix(rec.Address)
	return rec
}

// cleanLines strips control characters and normalizes whitespace,
// dropping lines that end up empty.
func cleanLines(lines []string) []string {
	out := lines[:0]
	for _, line := range lines {
		if cleaned := bengali.CleanText(line); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
