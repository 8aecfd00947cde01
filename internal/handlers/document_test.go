package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/exportdocs/internal/db"
	"github.com/diewo77/exportdocs/internal/models"
	"github.com/diewo77/exportdocs/internal/render"
	"github.com/diewo77/exportdocs/internal/services"
	"github.com/diewo77/exportdocs/internal/store"
)

type testEnv struct {
	handler  *DocumentHandler
	conn     *gorm.DB
	tplDir   string
	outDir   string
	client   models.Client
	company  models.Company
	template models.DocumentTemplate
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	env := &testEnv{conn: conn, tplDir: t.TempDir(), outDir: t.TempDir()}

	env.company = models.Company{LegalName: "Export SARL", Address: "1 rue du Port\n13000 Marseille", IsDefault: true}
	if err := conn.Create(&env.company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	env.client = models.Client{DisplayName: "Importer GmbH", AddressLine1: "Hafenstr. 5",
		CityName: "Hamburg", PostalCode: "20095", CountryName: "Germany"}
	if err := conn.Create(&env.client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	product := models.Product{Name: "Widget", LanguageCode: "en", BaseUnitPrice: 10}
	if err := conn.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	link := models.ClientProductLink{ClientID: env.client.ID, ProductID: product.ID, Quantity: 3}
	if err := conn.Create(&link).Error; err != nil {
		t.Fatalf("seed link: %v", err)
	}

	tplPath := filepath.Join(env.tplDir, "proforma.html")
	tpl := "<h1>{{ seller.company_name }}</h1><p>{{ client.company_name }}</p><p>{{ products.0.name }} x {{ products.0.quantity }}</p>"
	if err := os.WriteFile(tplPath, []byte(tpl), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	env.template = models.DocumentTemplate{LanguageCode: "en", BaseFileName: "proforma.html",
		TemplateType: models.TemplateTypeHTML, CategoryPurpose: "proforma"}
	if err := conn.Create(&env.template).Error; err != nil {
		t.Fatalf("seed template: %v", err)
	}

	filler := &render.Filler{TemplateDir: env.tplDir, OutputDir: env.outDir}
	svc := services.NewDocumentService(store.New(conn), filler, nil)
	env.handler = NewDocumentHandler(svc, nil)
	return env
}

func postRender(t *testing.T, env *testEnv, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/documents/render", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.handler.Render(rec, req)
	return rec
}

func TestRenderEndpoint(t *testing.T) {
	env := setupEnv(t)
	body := fmt.Sprintf(`{"client_id":%d,"seller_company_id":%d,"language":"en","document_type":"proforma","template_id":%d}`,
		env.client.ID, env.company.ID, env.template.ID)
	rec := postRender(t, env, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var res services.RenderResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	out, err := os.ReadFile(res.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	html := string(out)
	for _, want := range []string{"Export SARL", "Importer GmbH", "Widget x 3"} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q:\n%s", want, html)
		}
	}
}

func TestRenderEndpointTemplateNotFound(t *testing.T) {
	env := setupEnv(t)
	body := fmt.Sprintf(`{"client_id":%d,"language":"en","document_type":"proforma","template_id":999}`, env.client.ID)
	rec := postRender(t, env, body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body %s", rec.Code, rec.Body.String())
	}
}

func TestRenderEndpointUnknownClient(t *testing.T) {
	env := setupEnv(t)
	body := fmt.Sprintf(`{"client_id":999,"language":"en","document_type":"proforma","template_id":%d}`, env.template.ID)
	rec := postRender(t, env, body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body %s", rec.Code, rec.Body.String())
	}
}

func TestRenderEndpointMissingDocumentType(t *testing.T) {
	env := setupEnv(t)
	body := fmt.Sprintf(`{"client_id":%d,"language":"en","template_id":%d}`, env.client.ID, env.template.ID)
	rec := postRender(t, env, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
}

func TestRenderEndpointPDFRequiresHTML(t *testing.T) {
	env := setupEnv(t)
	xlsx := models.DocumentTemplate{LanguageCode: "en", BaseFileName: "sheet.xlsx", TemplateType: models.TemplateTypeXLSX}
	if err := env.conn.Create(&xlsx).Error; err != nil {
		t.Fatalf("seed template: %v", err)
	}
	body := fmt.Sprintf(`{"client_id":%d,"language":"en","document_type":"proforma","template_id":%d,"pdf":true}`,
		env.client.ID, xlsx.ID)
	rec := postRender(t, env, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
}

func TestRenderEndpointInvalidJSON(t *testing.T) {
	env := setupEnv(t)
	rec := postRender(t, env, "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRenderEndpointRejectsGet(t *testing.T) {
	env := setupEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/documents/render", nil)
	rec := httptest.NewRecorder()
	env.handler.Render(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestRenderEndpointAcceptLanguageFallback(t *testing.T) {
	env := setupEnv(t)
	body := fmt.Sprintf(`{"client_id":%d,"seller_company_id":%d,"document_type":"proforma","template_id":%d}`,
		env.client.ID, env.company.ID, env.template.ID)
	req := httptest.NewRequest(http.MethodPost, "/documents/render", strings.NewReader(body))
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
	rec := httptest.NewRecorder()
	env.handler.Render(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestContextEndpoint(t *testing.T) {
	env := setupEnv(t)
	url := fmt.Sprintf("/documents/context?client_id=%d&seller_company_id=%d&language=en&document_type=proforma",
		env.client.ID, env.company.ID)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	env.handler.Context(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	for _, key := range []string{"seller", "client", "contact_person", "doc", "products", "placeholders"} {
		if _, ok := m[key]; !ok {
			t.Errorf("context preview missing %q", key)
		}
	}
	seller, _ := m["seller"].(map[string]any)
	if seller["company_name"] != "Export SARL" {
		t.Errorf("seller.company_name = %v", seller["company_name"])
	}
}

func TestContextEndpointUnknownClient(t *testing.T) {
	env := setupEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/documents/context?client_id=999&language=en&document_type=proforma", nil)
	rec := httptest.NewRecorder()
	env.handler.Context(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body %s", rec.Code, rec.Body.String())
	}
}
