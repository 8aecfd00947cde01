package render

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

const docxDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">{{ seller.company_name }}</w:t></w:r></w:p>
<w:p><w:r><w:t>Buyer: {{ client.company_name }}</w:t></w:r></w:p>
<w:p><w:r><w:t>Static paragraph &amp; entities</w:t></w:r></w:p>
</w:body>
</w:document>`

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":   documentXML,
	}
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func readDocxPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open result: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open part: %v", err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read part: %v", err)
		}
		return string(b)
	}
	t.Fatalf("part %s missing from result", name)
	return ""
}

func TestFillDOCX(t *testing.T) {
	tpl := buildDocx(t, docxDocumentXML)
	out, err := FillDOCX(tpl, testContext(), false)
	if err != nil {
		t.Fatalf("fill docx: %v", err)
	}
	doc := readDocxPart(t, out, "word/document.xml")
	if !strings.Contains(doc, ">Test Exporter Co.</w:t>") {
		t.Fatalf("seller name not substituted:\n%s", doc)
	}
	if !strings.Contains(doc, "Buyer: Test Importer Ltd.") {
		t.Fatalf("client name not substituted:\n%s", doc)
	}
	// run attributes survive substitution
	if !strings.Contains(doc, `<w:t xml:space="preserve">Test Exporter Co.</w:t>`) {
		t.Fatalf("run attributes lost:\n%s", doc)
	}
	// untouched paragraphs keep their escaped entities
	if !strings.Contains(doc, "Static paragraph &amp; entities") {
		t.Fatalf("static content altered:\n%s", doc)
	}
}

func TestFillDOCXEscapesValues(t *testing.T) {
	ctx := testContext()
	ctx.Seller["company_name"] = `R&D <Export> "Co"`
	out, err := FillDOCX(buildDocx(t, docxDocumentXML), ctx, false)
	if err != nil {
		t.Fatalf("fill docx: %v", err)
	}
	doc := readDocxPart(t, out, "word/document.xml")
	if !strings.Contains(doc, "R&amp;D &lt;Export&gt; &quot;Co&quot;") {
		t.Fatalf("value not escaped:\n%s", doc)
	}
}

func TestFillDOCXInvalidArchive(t *testing.T) {
	if _, err := FillDOCX([]byte("not a zip"), testContext(), false); err == nil {
		t.Fatalf("expected error for invalid archive")
	}
}
