package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PDFEngine converts rendered HTML to PDF bytes. Conversion is synchronous
// and must be idempotent for identical input. The core never rasterises
// itself; engines wrap an external renderer such as wkhtmltopdf or headless
// Chrome.
type PDFEngine interface {
	RenderHTML(ctx context.Context, html []byte) ([]byte, error)
}

// ExecEngine shells out to a converter reading HTML on stdin and writing PDF
// to stdout (wkhtmltopdf-style "- -" invocation).
type ExecEngine struct {
	Command string
	Args    []string
	Timeout time.Duration
}

func (e *ExecEngine) RenderHTML(ctx context.Context, html []byte) ([]byte, error) {
	if e.Command == "" {
		return nil, errors.New("pdf engine command not configured")
	}
	timeout := e.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(append([]string{}, e.Args...), "-", "-")
	cmd := exec.CommandContext(ctx, e.Command, args...)
	cmd.Stdin = bytes.NewReader(html)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdf engine %s: %w (%s)", e.Command, err, bytes.TrimSpace(stderr.Bytes()))
	}
	pdf := stdout.Bytes()
	if err := validatePDF(pdf); err != nil {
		return nil, fmt.Errorf("pdf engine produced invalid output: %w", err)
	}
	return pdf, nil
}

// validatePDF runs a structural check on the engine output before anything
// is written to its final path.
func validatePDF(pdf []byte) error {
	if len(pdf) == 0 {
		return errors.New("empty pdf")
	}
	return api.Validate(bytes.NewReader(pdf), nil)
}
