package importer

import (
	"fmt"
	"testing"
)

func TestForFile_Dispatch(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"doc.txt", "*importer.TextImporter"},
		{"doc.md", "*importer.MarkdownImporter"},
		{"doc.markdown", "*importer.MarkdownImporter"},
		{"doc.html", "*importer.HTMLImporter"},
		{"doc.HTM", "*importer.HTMLImporter"},
		{"doc.pdf", "*importer.PDFImporter"},
		{"doc.docx", "*importer.DOCXImporter"},
	}
	for _, tt := range tests {
		imp, err := ForFile(tt.filename)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.filename, err)
			continue
		}
		if got := fmt.Sprintf("%T", imp); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.filename, tt.want, got)
		}
	}
}

func TestForFile_Unsupported(t *testing.T) {
	for _, name := range []string{"doc.exe", "doc", "archive.tar.gz"} {
		if _, err := ForFile(name); err == nil {
			t.Errorf("%s: expected error for unsupported extension", name)
		}
	}
}

func TestIsSupportedExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"a.txt", true},
		{"a.PDF", true},
		{"a.docx", true},
		{"a.csv", false},
		{"a", false},
	}
	for _, tt := range tests {
		if got := IsSupportedExtension(tt.filename); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.filename, tt.want, got)
		}
	}
}
