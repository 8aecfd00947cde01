package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port        string
	DatabaseDSN string
	Env         string

	// TemplateDir holds the template files referenced by document_templates
	// rows; OutputDir receives rendered documents.
	TemplateDir string
	OutputDir   string

	// PDFCommand is the external HTML-to-PDF converter ("" disables PDF
	// output). It must read HTML on stdin and write PDF to stdout.
	PDFCommand string

	// StrictTemplates makes unknown placeholders an error instead of
	// rendering empty.
	StrictTemplates bool
}

// Load reads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by the caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "exportdocs.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.TemplateDir = getEnv("TEMPLATE_DIR", "templates")
	cfg.OutputDir = getEnv("OUTPUT_DIR", "output")
	cfg.PDFCommand = getEnv("PDF_COMMAND", "")
	cfg.StrictTemplates = ParseBool("STRICT_TEMPLATES", false)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
