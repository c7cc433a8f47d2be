package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	perrors "github.com/matzehuels/phrasenet/pkg/errors"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// pdfToText runs pdftotext on data and normalizes the output.
func pdfToText(ctx context.Context, data []byte, timeout time.Duration) (string, error) {
	bin, err := exec.LookPath("pdftotext")
	if err != nil {
		return "", perrors.Wrap(perrors.ErrCodeInternal, err, "pdftotext not found in PATH")
	}

	tmp, err := os.CreateTemp("", "phrasenet-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp PDF: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp PDF: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write temp PDF: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin,
		"-enc", "UTF-8",
		"-eol", "unix",
		"-nopgbrk",
		"-q",
		tmp.Name(),
		"-",
	)
	cmd.Env = append(os.Environ(), "LANG=C.UTF-8", "LC_ALL=C.UTF-8")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("pdftotext timed out after %s", timeout)
	}
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}

	text := strings.TrimSpace(string(out))
	return blankRuns.ReplaceAllString(text, "\n\n"), nil
}
