package server

import (
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/exportdocs/internal/handlers"
	"github.com/diewo77/exportdocs/internal/httpx"
	"github.com/diewo77/exportdocs/internal/services"
)

// New constructs the root http.Handler with all routes applied.
func New(db *gorm.DB, svc *services.DocumentService, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	dh := handlers.NewDocumentHandler(svc, log)
	mux.HandleFunc("/documents/render", dh.Render)
	mux.HandleFunc("/documents/context", dh.Context)

	return mux
}
