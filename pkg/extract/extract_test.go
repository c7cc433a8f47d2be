package extract

import (
	"context"
	"errors"
	"os/exec"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/phrasenet/pkg/cache"
	perrors "github.com/matzehuels/phrasenet/pkg/errors"
)

func TestDetectMIME(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"notes.txt", MIMEText, true},
		{"NOTES.TXT", MIMEText, true},
		{"paper.pdf", MIMEPDF, true},
		{"paper.PDF", MIMEPDF, true},
		{"image.png", "image/png", false},
		{"noext", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectMIME(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("DetectMIME(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExtract_Text(t *testing.T) {
	e := New(nil, nil)
	got, err := e.Extract(context.Background(), "a.txt", []byte("\xEF\xBB\xBFhello world"))
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if got != "hello world" {
		t.Errorf("Extract() = %q", got)
	}
}

func TestExtract_Errors(t *testing.T) {
	e := New(nil, nil)
	tests := []struct {
		name     string
		filename string
		data     []byte
		want     perrors.Code
	}{
		{"unsupported", "slides.pptx", []byte("x"), perrors.ErrCodeUnsupported},
		{"invalid utf8", "bad.txt", []byte{0xff, 0xfe, 0x00}, perrors.ErrCodeInvalidFile},
		{"bad filename", "../x.txt", []byte("x"), perrors.ErrCodeInvalidFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Extract(context.Background(), tt.filename, tt.data)
			if !perrors.Is(err, tt.want) {
				t.Errorf("Extract() error = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestExtract_PDFFailureIsInvalidFile(t *testing.T) {
	e := New(nil, nil)
	e.PDFToText = func(context.Context, []byte) (string, error) {
		return "", errors.New("syntax error in xref")
	}
	_, err := e.Extract(context.Background(), "broken.pdf", []byte("%PDF-1.4"))
	if !perrors.Is(err, perrors.ErrCodeInvalidFile) {
		t.Errorf("Extract() error = %v, want INVALID_FILE", err)
	}
}

func TestExtract_CachesByContent(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	e := New(fc, nil)
	var runs atomic.Int32
	e.PDFToText = func(context.Context, []byte) (string, error) {
		runs.Add(1)
		return "pdf text", nil
	}

	ctx := context.Background()
	for _, name := range []string{"a.pdf", "renamed.pdf"} {
		got, err := e.Extract(ctx, name, []byte("%PDF same bytes"))
		if err != nil || got != "pdf text" {
			t.Fatalf("Extract(%s) = %q, %v", name, got, err)
		}
	}
	if runs.Load() != 1 {
		t.Errorf("pdftotext runs = %d, want 1", runs.Load())
	}
}

func TestPDFToText_Garbage(t *testing.T) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		t.Skip("pdftotext not installed")
	}
	_, err := New(nil, nil).Extract(context.Background(), "junk.pdf", []byte("not a pdf"))
	if !perrors.Is(err, perrors.ErrCodeInvalidFile) {
		t.Errorf("Extract() error = %v, want INVALID_FILE", err)
	}
}
