package pdf

// PageText holds the text extracted from a single PDF page as an ordered
// sequence of lines.
type PageText struct {
	Number int      `json:"number"`
	Lines  []string `json:"lines"`
}

// IsEmpty reports whether no text was recovered from the page.
func (p PageText) IsEmpty() bool {
	for _, line := range p.Lines {
		if line != "" {
			return false
		}
	}
	return true
}

// ExtractResult is the outcome of extracting a whole document.
type ExtractResult struct {
	Path      string     `json:"path"`
	PageCount int        `json:"page_count"`
	Pages     []PageText `json:"pages"`
	// Engine names the extractor that produced the bulk of the text.
	Engine string `json:"engine"`
	// Warnings records pages that yielded no text or needed the fallback
	// extractor. The pipeline reports them at end of run.
	Warnings []string `json:"warnings,omitempty"`
}
