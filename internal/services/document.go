// Package services orchestrates the document pipeline: assemble a context,
// fill the template, optionally convert to PDF.
package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/diewo77/exportdocs/internal/docctx"
	"github.com/diewo77/exportdocs/internal/docerr"
	"github.com/diewo77/exportdocs/internal/models"
	"github.com/diewo77/exportdocs/internal/render"
)

type DocumentService struct {
	data   docctx.DataAccess
	asm    *docctx.Assembler
	filler *render.Filler
	log    *zap.Logger
}

func NewDocumentService(data docctx.DataAccess, filler *render.Filler, log *zap.Logger) *DocumentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DocumentService{
		data:   data,
		asm:    docctx.New(data),
		filler: filler,
		log:    log,
	}
}

// Assembler exposes the underlying assembler, mainly so callers can preview
// contexts without rendering.
func (s *DocumentService) Assembler() *docctx.Assembler { return s.asm }

type RenderRequest struct {
	ClientID        uint          `json:"client_id"`
	SellerCompanyID uint          `json:"seller_company_id"`
	LanguageCode    string        `json:"language"`
	DocumentType    string        `json:"document_type"`
	TemplateID      uint          `json:"template_id"`
	Additional      docctx.Values `json:"additional_context"`
	ToPDF           bool          `json:"pdf"`
}

type RenderResult struct {
	OutputPath string          `json:"output_path"`
	PDFPath    string          `json:"pdf_path,omitempty"`
	Context    *docctx.Context `json:"-"`
}

// Render runs the full pipeline for one document. PDF conversion only
// applies to HTML templates; requesting it for other types is a caller error.
func (s *DocumentService) Render(ctx context.Context, req RenderRequest) (*RenderResult, error) {
	tpl, err := s.data.LoadTemplate(req.TemplateID)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, docerr.NotFoundf("template %d", req.TemplateID)
	}
	if req.ToPDF && tpl.TemplateType != models.TemplateTypeHTML {
		return nil, docerr.New(docerr.InvalidArgument, "pdf conversion requires an html template")
	}

	lang := strings.TrimSpace(req.LanguageCode)
	if lang == "" {
		lang = tpl.LanguageCode
	}
	docCtx, err := s.asm.Assemble(req.ClientID, req.SellerCompanyID, lang, req.DocumentType, req.Additional)
	if err != nil {
		return nil, err
	}

	data, err := s.filler.Render(tpl, docCtx)
	if err != nil {
		return nil, err
	}
	outPath, err := s.filler.WriteOutput(tpl.BaseFileName, data)
	if err != nil {
		return nil, err
	}
	res := &RenderResult{OutputPath: outPath, Context: docCtx}

	if req.ToPDF {
		pdfPath, err := s.filler.ToPDF(ctx, data, tpl.BaseFileName)
		if err != nil {
			return nil, err
		}
		res.PDFPath = pdfPath
	}

	s.log.Info("document rendered",
		zap.Uint("client_id", req.ClientID),
		zap.String("document_type", req.DocumentType),
		zap.String("language", lang),
		zap.String("template", tpl.BaseFileName),
		zap.Bool("pdf", req.ToPDF),
	)
	return res, nil
}
