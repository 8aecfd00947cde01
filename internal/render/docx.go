package render

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/diewo77/exportdocs/internal/docctx"
)

// docx parts whose text runs carry placeholders.
var docxTextParts = regexp.MustCompile(`^word/(document|header\d*|footer\d*)\.xml$`)

// wtRun matches one <w:t> text run, keeping its attributes intact so run
// formatting survives substitution.
var wtRun = regexp.MustCompile(`(<w:t[^>]*>)([^<]*)(</w:t>)`)

// FillDOCX substitutes placeholders inside the text runs of a .docx
// template. Only runs that fully contain a "{{ ... }}" expression are
// touched; a placeholder split across runs by the editor stays as-is.
func FillDOCX(tpl []byte, ctx *docctx.Context, strict bool) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(tpl), int64(len(tpl)))
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open docx part %q: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read docx part %q: %w", f.Name, err)
		}
		if docxTextParts.MatchString(f.Name) {
			data, err = substituteRuns(data, ctx, strict)
			if err != nil {
				return nil, err
			}
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("write docx part %q: %w", f.Name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("write docx part %q: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close docx: %w", err)
	}
	return out.Bytes(), nil
}

func substituteRuns(data []byte, ctx *docctx.Context, strict bool) ([]byte, error) {
	resolve := contextResolver(ctx)
	var firstErr error
	replaced := wtRun.ReplaceAllFunc(data, func(run []byte) []byte {
		if firstErr != nil || !bytes.Contains(run, []byte("{{")) {
			return run
		}
		m := wtRun.FindSubmatch(run)
		text := xmlUnescape(string(m[2]))
		out, err := Substitute(text, resolve, strict)
		if err != nil {
			firstErr = err
			return run
		}
		return append(append(append([]byte{}, m[1]...), []byte(xmlEscape(out))...), m[3]...)
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return replaced, nil
}

var (
	xmlEscaper   = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&apos;")
	xmlUnescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'", "&amp;", "&")
)

func xmlEscape(s string) string   { return xmlEscaper.Replace(s) }
func xmlUnescape(s string) string { return xmlUnescaper.Replace(s) }
