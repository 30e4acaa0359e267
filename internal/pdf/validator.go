package pdf

import (
	"fmt"
	"os"
	"strings"
)

// Validator performs up-front checks on input PDF files so the pipeline can
// fail with a clear input error before any output file is created.
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a validator with the given file size limit.
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{maxFileSize: maxFileSize}
}

// ValidateFile checks that path names a readable, plausibly valid PDF.
// Any failure is wrapped as an InputError.
func (v *Validator) ValidateFile(path string) error {
	if err := v.validate(path); err != nil {
		return &InputError{Path: path, Err: err}
	}
	return nil
}

func (v *Validator) validate(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist")
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file")
	}

	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return fmt.Errorf("file is not a PDF")
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty")
	}

	if v.maxFileSize > 0 && fileInfo.Size() > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), v.maxFileSize)
	}

	// Cheap signature check instead of a full parse; the extractors
	// report structural problems with better context.
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	header := make([]byte, 5)
	if _, err := f.Read(header); err != nil {
		return fmt.Errorf("cannot read file header: %w", err)
	}
	if string(header) != "%PDF-" {
		return fmt.Errorf("missing %%PDF header")
	}

	return nil
}

// IsValidPDF reports whether path passes validation.
func (v *Validator) IsValidPDF(path string) bool {
	return v.validate(path) == nil
}
