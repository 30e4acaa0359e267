package pdf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writePDFStub creates a file that passes the signature check.
func writePDFStub(t *testing.T, dir, name string, size int) string {
	t.Helper()
	content := append([]byte("%PDF-1.4\n"), make([]byte, size)...)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write stub: %v", err)
	}
	return path
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	valid := writePDFStub(t, dir, "valid.pdf", 100)

	noHeader := filepath.Join(dir, "noheader.pdf")
	if err := os.WriteFile(noHeader, []byte("not a pdf at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	empty := filepath.Join(dir, "empty.pdf")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	notPDF := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notPDF, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		path        string
		maxFileSize int64
		wantErr     bool
	}{
		{
			name:        "valid pdf",
			path:        valid,
			maxFileSize: 1024,
			wantErr:     false,
		},
		{
			name:        "empty path",
			path:        "",
			maxFileSize: 1024,
			wantErr:     true,
		},
		{
			name:        "nonexistent file",
			path:        filepath.Join(dir, "missing.pdf"),
			maxFileSize: 1024,
			wantErr:     true,
		},
		{
			name:        "directory instead of file",
			path:        dir,
			maxFileSize: 1024,
			wantErr:     true,
		},
		{
			name:        "wrong extension",
			path:        notPDF,
			maxFileSize: 1024,
			wantErr:     true,
		},
		{
			name:        "empty file",
			path:        empty,
			maxFileSize: 1024,
			wantErr:     true,
		},
		{
			name:        "file too large",
			path:        valid,
			maxFileSize: 10,
			wantErr:     true,
		},
		{
			name:        "missing pdf signature",
			path:        noHeader,
			maxFileSize: 1024,
			wantErr:     true,
		},
		{
			name:        "no size limit",
			path:        valid,
			maxFileSize: 0,
			wantErr:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(tt.maxFileSize)
			err := v.ValidateFile(tt.path)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateFileWrapsInputError(t *testing.T) {
	v := NewValidator(1024)
	err := v.ValidateFile(filepath.Join(t.TempDir(), "missing.pdf"))

	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %T", err)
	}
}

func TestIsValidPDF(t *testing.T) {
	dir := t.TempDir()
	valid := writePDFStub(t, dir, "valid.pdf", 10)

	v := NewValidator(1024)
	if !v.IsValidPDF(valid) {
		t.Error("expected valid PDF to pass")
	}
	if v.IsValidPDF(filepath.Join(dir, "missing.pdf")) {
		t.Error("expected missing file to fail")
	}
}
