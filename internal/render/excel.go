package render

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/diewo77/exportdocs/internal/docctx"
	"github.com/diewo77/exportdocs/internal/docerr"
)

// RepeaterSentinel marks a spreadsheet row for expansion. The first row of a
// repeated range carries "#repeat:<list path>" in column A; the remaining
// cells of that row are the per-entry template, with "item.*" tokens bound
// to the current entry.
const RepeaterSentinel = "#repeat:"

// FillWorkbook substitutes placeholders in every sheet of an open workbook,
// expanding repeater rows first. The workbook is modified in place.
func FillWorkbook(f *excelize.File, ctx *docctx.Context, strict bool) error {
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		// Bottom-up so row insertion does not shift pending repeaters.
		for r := len(rows); r >= 1; r-- {
			row := rows[r-1]
			if len(row) == 0 || !strings.HasPrefix(strings.TrimSpace(row[0]), RepeaterSentinel) {
				continue
			}
			listPath := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(row[0]), RepeaterSentinel))
			if err := expandRepeater(f, sheet, r, row, listPath, ctx, strict); err != nil {
				return err
			}
		}
		// A fresh read: repeaters may have inserted rows.
		rows, err = f.GetRows(sheet)
		if err != nil {
			return fmt.Errorf("reread sheet %q: %w", sheet, err)
		}
		for r, row := range rows {
			for c, cell := range row {
				if !strings.Contains(cell, "{{") {
					continue
				}
				out, err := Substitute(cell, contextResolver(ctx), strict)
				if err != nil {
					return err
				}
				if out == cell {
					continue
				}
				name, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return fmt.Errorf("cell name: %w", err)
				}
				if err := f.SetCellValue(sheet, name, out); err != nil {
					return fmt.Errorf("set cell %s: %w", name, err)
				}
			}
		}
	}
	return nil
}

func expandRepeater(f *excelize.File, sheet string, rowIdx int, templateRow []string, listPath string, ctx *docctx.Context, strict bool) error {
	if listPath != "products" {
		return docerr.New(docerr.Template, "unknown repeater list: "+listPath)
	}
	entries := ctx.Products
	if len(entries) == 0 {
		if err := f.RemoveRow(sheet, rowIdx); err != nil {
			return fmt.Errorf("remove repeater row: %w", err)
		}
		return nil
	}
	for i := 1; i < len(entries); i++ {
		if err := f.DuplicateRowTo(sheet, rowIdx, rowIdx+i); err != nil {
			return fmt.Errorf("duplicate repeater row: %w", err)
		}
	}
	for i, entry := range entries {
		resolve := entryResolver(entry, ctx)
		for c, cell := range templateRow {
			out := ""
			if c > 0 {
				var err error
				out, err = Substitute(cell, resolve, strict)
				if err != nil {
					return err
				}
			}
			name, err := excelize.CoordinatesToCellName(c+1, rowIdx+i)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, name, out); err != nil {
				return fmt.Errorf("set cell %s: %w", name, err)
			}
		}
	}
	return nil
}

// entryResolver binds "item.*" tokens to one product line and defers
// everything else to the surrounding context.
func entryResolver(entry docctx.ProductLine, ctx *docctx.Context) resolver {
	base := contextResolver(ctx)
	return func(token string) (string, bool) {
		if rest, ok := strings.CutPrefix(token, "item."); ok {
			return entry.Field(rest)
		}
		return base(token)
	}
}
