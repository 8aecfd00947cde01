package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/diewo77/exportdocs/internal/docerr"
	"github.com/diewo77/exportdocs/internal/httpx"
	"github.com/diewo77/exportdocs/internal/i18n"
	"github.com/diewo77/exportdocs/internal/services"
)

// DocumentHandler exposes the render pipeline over JSON.
type DocumentHandler struct {
	Svc *services.DocumentService
	Log *zap.Logger
}

func NewDocumentHandler(svc *services.DocumentService, log *zap.Logger) *DocumentHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &DocumentHandler{Svc: svc, Log: log}
}

// Render: POST /documents/render
func (h *DocumentHandler) Render(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var req services.RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.LanguageCode == "" {
		req.LanguageCode = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
	}
	res, err := h.Svc.Render(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

// Context: GET /documents/context – assembled context preview, no rendering.
func (h *DocumentHandler) Context(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	q := r.URL.Query()
	clientID := parseUint(q.Get("client_id"))
	sellerID := parseUint(q.Get("seller_company_id"))
	lang := strings.TrimSpace(q.Get("language"))
	if lang == "" {
		lang = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
	}
	docType := strings.TrimSpace(q.Get("document_type"))

	ctx, err := h.Svc.Assembler().Assemble(clientID, sellerID, lang, docType, nil)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ctx.Map())
}

func (h *DocumentHandler) writeError(w http.ResponseWriter, err error) {
	switch docerr.KindOf(err) {
	case docerr.NotFound:
		httpx.JSONError(w, http.StatusNotFound, "not_found", err.Error())
	case docerr.InvalidArgument:
		httpx.JSONError(w, http.StatusBadRequest, "invalid_argument", err.Error())
	case docerr.Template:
		httpx.JSONError(w, http.StatusUnprocessableEntity, "template_error", err.Error())
	default:
		h.Log.Error("render failed", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}

func parseUint(s string) uint {
	n, _ := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	return uint(n)
}
