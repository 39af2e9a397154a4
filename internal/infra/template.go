package infra

// template.go: the invoice document template.
// The DOCX output exists for the legacy download path; PDF is the canonical
// format. The template is loaded once at startup into a process-lifetime
// store and only re-read through an explicit Reload, never per request.

import (
	"archive/zip"
	"bytes"
	_ "embed"
	"os"
	"strings"
	"sync"
	"text/template"

	"clinicore/internal/apierror"

	"github.com/shopspring/decimal"
)

//go:embed invoice_template.xml
var embeddedTemplate string

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

var templateFuncs = template.FuncMap{
	"esc": func(s string) string {
		r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&apos;")
		return r.Replace(s)
	},
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"pct":   func(d decimal.Decimal) string { return d.StringFixed(0) + "%" },
}

// TemplateStore holds the parsed invoice document template for the lifetime
// of the process. Safe for concurrent use; Reload swaps the template atomically.
type TemplateStore struct {
	mu   sync.RWMutex
	tmpl *template.Template
	// path optionally overrides the embedded template with a file on disk
	path string
}

// NewTemplateStore parses the invoice template at startup. When path is
// non-empty it is read from disk instead of the embedded copy; a missing or
// unparsable template is a template error, not a validation error.
func NewTemplateStore(path string) (*TemplateStore, error) {
	s := &TemplateStore{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-parses the template source. Intended for template updates without
// a restart; the hot path never reads from disk.
func (s *TemplateStore) Reload() error {
	src := embeddedTemplate
	if s.path != "" {
		data, err := os.ReadFile(s.path)
		if err != nil {
			return apierror.Wrap(apierror.KindTemplate, "invoice template missing", err)
		}
		src = string(data)
	}
	tmpl, err := template.New("invoice").Funcs(templateFuncs).Parse(src)
	if err != nil {
		return apierror.Wrap(apierror.KindTemplate, "invoice template corrupt", err)
	}
	s.mu.Lock()
	s.tmpl = tmpl
	s.mu.Unlock()
	return nil
}

// RenderDOCX populates the document template with the computed invoice and
// packages it as a DOCX (OOXML zip).
func (s *TemplateStore) RenderDOCX(inv *Invoice) ([]byte, error) {
	s.mu.RLock()
	tmpl := s.tmpl
	s.mu.RUnlock()

	var doc bytes.Buffer
	if err := tmpl.Execute(&doc, inv); err != nil {
		return nil, apierror.Wrap(apierror.KindTemplate, "invoice template execution failed", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct{ name, body string }{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", doc.String()},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, apierror.Wrap(apierror.KindConversion, "docx packaging failed", err)
		}
		if _, err := w.Write([]byte(p.body)); err != nil {
			return nil, apierror.Wrap(apierror.KindConversion, "docx packaging failed", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, apierror.Wrap(apierror.KindConversion, "docx packaging failed", err)
	}
	return buf.Bytes(), nil
}
