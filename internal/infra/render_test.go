package infra

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"clinicore/internal/apierror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvoice() *Invoice {
	return &Invoice{
		BillNo:        "BILL-001",
		PatientName:   "Asha & Co <Family>",
		Phone:         "9000000001",
		Date:          "2026-08-28",
		BillType:      "Product",
		PaymentMethod: "Cash",
		Lines: []InvoiceLine{
			{
				Description: "Paracetamol",
				HSN:         "3004",
				Quantity:    10,
				Price:       decimal.NewFromInt(5),
				GSTPct:      decimal.NewFromInt(12),
				GSTAmount:   decimal.NewFromInt(6),
				Amount:      decimal.NewFromInt(50),
				Product:     true,
			},
			{Description: "Take after food", Product: false},
		},
		ItemSubtotal:   decimal.NewFromInt(50),
		Subtotal:       decimal.NewFromInt(50),
		DiscountPct:    decimal.NewFromInt(10),
		DiscountAmount: decimal.NewFromInt(5),
		Total:          decimal.NewFromInt(45),
		Clinic: Letterhead{
			Name:    "Clinicore Health",
			Address: "12 Temple St",
			Phone:   "0400000000",
			GSTIN:   "33AAAAA0000A1Z5",
		},
	}
}

func TestRenderInvoicePDF(t *testing.T) {
	data, err := RenderInvoicePDF(context.Background(), sampleInvoice())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output is not a PDF")
}

func TestRenderInvoicePDFHonorsContext(t *testing.T) {
	inv := sampleInvoice()
	// Enough rows that rendering cannot finish before the select runs.
	for i := 0; i < 20000; i++ {
		inv.Lines = append(inv.Lines, inv.Lines[0])
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RenderInvoicePDF(ctx, inv)
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindConversion))
}

func TestRenderDOCXPackaging(t *testing.T) {
	store, err := NewTemplateStore("")
	require.NoError(t, err)

	data, err := store.RenderDOCX(sampleInvoice())
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	parts := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		parts[f.Name] = string(body)
	}

	require.Contains(t, parts, "[Content_Types].xml")
	require.Contains(t, parts, "_rels/.rels")
	require.Contains(t, parts, "word/document.xml")

	doc := parts["word/document.xml"]
	assert.Contains(t, doc, "Bill No: BILL-001")
	assert.Contains(t, doc, "TOTAL: 45.00")
	// Markup-significant characters are escaped, not injected.
	assert.Contains(t, doc, "Asha &amp; Co &lt;Family&gt;")
	assert.False(t, strings.Contains(doc, "Asha & Co <Family>"))
}

func TestTemplateStoreMissingFile(t *testing.T) {
	_, err := NewTemplateStore("/nonexistent/invoice.xml")
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindTemplate))
}

func TestTemplateStoreReloadFromDisk(t *testing.T) {
	path := t.TempDir() + "/invoice.xml"
	writeTemplate := func(body string) {
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	writeTemplate(`<doc>{{esc .BillNo}}</doc>`)

	store, err := NewTemplateStore(path)
	require.NoError(t, err)

	data, err := store.RenderDOCX(sampleInvoice())
	require.NoError(t, err)
	assert.Contains(t, string(extractDocument(t, data)), "BILL-001")

	writeTemplate(`<doc>changed {{esc .BillNo}}</doc>`)
	require.NoError(t, store.Reload())

	data, err = store.RenderDOCX(sampleInvoice())
	require.NoError(t, err)
	assert.Contains(t, string(extractDocument(t, data)), "changed BILL-001")
}

func extractDocument(t *testing.T, docx []byte) []byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(docx), int64(len(docx)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			body, err := io.ReadAll(rc)
			require.NoError(t, err)
			return body
		}
	}
	t.Fatal("word/document.xml missing from archive")
	return nil
}
