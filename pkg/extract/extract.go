// Package extract turns uploaded documents into plain text.
//
// Supported types are PDF, via the poppler "pdftotext" tool, and UTF-8 plain
// text. The type is chosen from the file name's extension. Extracted text is
// cached by content hash, and concurrent extractions of the same content
// share one run.
package extract

import (
	"bytes"
	"context"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/phrasenet/pkg/cache"
	perrors "github.com/matzehuels/phrasenet/pkg/errors"
)

// MIME types handled by [Extractor].
const (
	MIMEPDF  = "application/pdf"
	MIMEText = "text/plain"
)

// DefaultTimeout bounds a single pdftotext run.
const DefaultTimeout = 30 * time.Second

// Extractor extracts text from documents. It is safe for concurrent use.
type Extractor struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	TTL    time.Duration
	Logger *log.Logger

	// PDFToText converts PDF bytes to text. Defaults to running pdftotext
	// with DefaultTimeout.
	PDFToText func(ctx context.Context, data []byte) (string, error)

	group singleflight.Group
}

// New creates an Extractor backed by c. A nil cache disables caching.
func New(c cache.Cache, logger *log.Logger) *Extractor {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Extractor{
		Cache:     c,
		Keyer:     cache.NewDefaultKeyer(),
		TTL:       cache.DefaultTTL,
		Logger:    logger,
		PDFToText: func(ctx context.Context, data []byte) (string, error) { return pdfToText(ctx, data, DefaultTimeout) },
	}
}

// DetectMIME returns the supported MIME type for filename, or the detected
// type (possibly empty) and false.
func DetectMIME(filename string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".txt" {
		return MIMEText, true
	}
	mt, _, _ := mime.ParseMediaType(mime.TypeByExtension(ext))
	switch mt {
	case MIMEPDF, MIMEText:
		return mt, true
	default:
		return mt, false
	}
}

// Extract returns the text of the document named filename with contents
// data.
//
// Unsupported types return an UNSUPPORTED error. Unreadable documents
// return INVALID_FILE. Cache failures are logged and otherwise ignored.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	if err := perrors.ValidateFilename(filename); err != nil {
		return "", err
	}
	mt, ok := DetectMIME(filename)
	if !ok {
		return "", perrors.New(perrors.ErrCodeUnsupported,
			"unsupported file type %q for %s (want .pdf or .txt)", mt, filepath.Base(filename))
	}

	key := e.Keyer.ExtractKey(cache.Hash(data), mt)
	if cached, hit, err := e.Cache.Get(ctx, key); err != nil {
		e.Logger.Warn("extract cache read failed", "error", err)
	} else if hit {
		e.Logger.Debug("extract cache hit", "file", filepath.Base(filename))
		return string(cached), nil
	}

	v, err, _ := e.group.Do(key, func() (any, error) {
		start := time.Now()
		text, err := e.extract(ctx, mt, data)
		if err != nil {
			return "", err
		}
		e.Logger.Debug("extracted text", "file", filepath.Base(filename), "type", mt,
			"chars", utf8.RuneCountInString(text), "duration", time.Since(start).Round(time.Millisecond))
		if err := e.Cache.Set(ctx, key, []byte(text), e.TTL); err != nil {
			e.Logger.Warn("extract cache write failed", "error", err)
		}
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (e *Extractor) extract(ctx context.Context, mt string, data []byte) (string, error) {
	switch mt {
	case MIMEPDF:
		text, err := e.PDFToText(ctx, data)
		if err != nil {
			if perrors.GetCode(err) != "" {
				return "", err
			}
			return "", perrors.Wrap(perrors.ErrCodeInvalidFile, err, "could not extract text from the PDF file")
		}
		return text, nil
	default:
		return decodeText(data)
	}
}

var bom = []byte{0xEF, 0xBB, 0xBF}

func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, bom)
	if !utf8.Valid(data) {
		return "", perrors.New(perrors.ErrCodeInvalidFile, "could not read the TXT file: not valid UTF-8")
	}
	return string(data), nil
}
