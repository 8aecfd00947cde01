package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/diewo77/exportdocs/internal/docctx"
	"github.com/diewo77/exportdocs/internal/docerr"
	"github.com/diewo77/exportdocs/internal/models"
)

// Filler renders templates from TemplateDir into OutputDir. Strict mode
// turns unknown placeholders into Template errors instead of empty strings.
type Filler struct {
	TemplateDir string
	OutputDir   string
	Strict      bool
	PDF         PDFEngine
}

// Fill renders the template against the context and writes the result under
// OutputDir, returning the output path. The file is written to a temporary
// name and renamed on success; failed renders leave nothing behind.
func (f *Filler) Fill(td *models.DocumentTemplate, ctx *docctx.Context) (string, error) {
	data, err := f.Render(td, ctx)
	if err != nil {
		return "", err
	}
	return f.writeAtomic(td.BaseFileName, data)
}

// Render produces the filled document bytes without touching the filesystem
// beyond reading the template.
func (f *Filler) Render(td *models.DocumentTemplate, ctx *docctx.Context) ([]byte, error) {
	if td == nil {
		return nil, docerr.New(docerr.InvalidArgument, "template descriptor")
	}
	if err := checkPackingList(ctx); err != nil {
		return nil, err
	}
	path := filepath.Join(f.TemplateDir, filepath.Clean(td.BaseFileName))

	switch td.TemplateType {
	case models.TemplateTypeHTML:
		tpl, err := os.ReadFile(path)
		if err != nil {
			return nil, docerr.Wrap(docerr.NotFound, "template "+td.BaseFileName, err)
		}
		return FillHTML(tpl, ctx, f.Strict)
	case models.TemplateTypeXLSX:
		wb, err := excelize.OpenFile(path)
		if err != nil {
			return nil, docerr.Wrap(docerr.NotFound, "template "+td.BaseFileName, err)
		}
		defer wb.Close()
		if err := FillWorkbook(wb, ctx, f.Strict); err != nil {
			return nil, err
		}
		buf, err := wb.WriteToBuffer()
		if err != nil {
			return nil, fmt.Errorf("serialise workbook: %w", err)
		}
		return buf.Bytes(), nil
	case models.TemplateTypeDOCX:
		tpl, err := os.ReadFile(path)
		if err != nil {
			return nil, docerr.Wrap(docerr.NotFound, "template "+td.BaseFileName, err)
		}
		return FillDOCX(tpl, ctx, f.Strict)
	default:
		return nil, docerr.New(docerr.Template, "unsupported template type: "+td.TemplateType)
	}
}

// ToPDF converts rendered HTML through the configured engine and writes the
// result next to the HTML output. baseName keeps its stem, the extension
// becomes .pdf.
func (f *Filler) ToPDF(ctx context.Context, html []byte, baseName string) (string, error) {
	if f.PDF == nil {
		return "", docerr.New(docerr.InvalidArgument, "pdf engine")
	}
	pdf, err := f.PDF.RenderHTML(ctx, html)
	if err != nil {
		return "", err
	}
	stem := strings.TrimSuffix(baseName, filepath.Ext(baseName))
	return f.writeAtomic(stem+".pdf", pdf)
}

// checkPackingList is the belt-and-braces guard for the price-exclusion
// rule: a packing-list context must carry no product lines, and its rendered
// items fragment must be free of price tokens.
func checkPackingList(ctx *docctx.Context) error {
	if ctx == nil {
		return docerr.New(docerr.InvalidArgument, "context")
	}
	if !ctx.IsPackingList() {
		return nil
	}
	if len(ctx.Products) > 0 {
		return docerr.New(docerr.InvalidArgument, "packing list context carries product lines")
	}
	items, _ := ctx.Doc["packing_list_items"].(string)
	lower := strings.ToLower(items)
	for _, forbidden := range []string{"price", "unit_price", "total_price", "€", "$"} {
		if strings.Contains(lower, forbidden) {
			return docerr.New(docerr.InvalidArgument, "packing list items contain price data")
		}
	}
	return nil
}

// WriteOutput stores already-rendered bytes under OutputDir with the same
// atomic temp-then-rename discipline as Fill.
func (f *Filler) WriteOutput(name string, data []byte) (string, error) {
	return f.writeAtomic(name, data)
}

func (f *Filler) writeAtomic(name string, data []byte) (string, error) {
	if err := os.MkdirAll(f.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	tmp := filepath.Join(f.OutputDir, ".tmp-"+uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	final := filepath.Join(f.OutputDir, filepath.Base(name))
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("rename output: %w", err)
	}
	return final, nil
}
