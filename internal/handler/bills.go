package handler

import (
	"fmt"
	"net/http"

	"clinicore/internal/apierror"
	"clinicore/internal/dto"
	"clinicore/internal/store"

	"github.com/gin-gonic/gin"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type BillHandler struct {
	stores *store.Router
}

func NewBillHandler(stores *store.Router) *BillHandler {
	return &BillHandler{stores: stores}
}

// Generate computes, persists, and renders a bill in one request. The
// response is the finished PDF; the JSON view is available via the ledger.
func (h *BillHandler) Generate(c *gin.Context) {
	req, ok := bindAndValidate[dto.GenerateBillRequest](c)
	if !ok {
		return
	}
	resp, pdf, err := storeFor(h.stores, c).Billing.Generate(c.Request.Context(), *req)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=generated-bill-%s.pdf", resp.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *BillHandler) List(c *gin.Context) {
	resp, err := storeFor(h.stores, c).Billing.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BillHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "billId")
	if !ok {
		return
	}
	resp, err := storeFor(h.stores, c).Billing.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BillHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "billId")
	if !ok {
		return
	}
	req, ok := bindAndValidate[dto.UpdateBillRequest](c)
	if !ok {
		return
	}
	resp, err := storeFor(h.stores, c).Billing.Update(c.Request.Context(), id, *req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BillHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "billId")
	if !ok {
		return
	}
	if err := storeFor(h.stores, c).Billing.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.New("Bill deleted successfully."))
}

func (h *BillHandler) DeleteAll(c *gin.Context) {
	if err := storeFor(h.stores, c).Billing.DeleteAll(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.New("All bills deleted successfully."))
}

// Download re-renders a stored bill. PDF is the default; ?format=docx serves
// the legacy word-processor rendition.
func (h *BillHandler) Download(c *gin.Context) {
	id, ok := parseUUID(c, "billId")
	if !ok {
		return
	}
	billing := storeFor(h.stores, c).Billing

	if c.Query("format") == "docx" {
		bill, data, err := billing.DownloadDOCX(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=generated-bill-%s.docx", bill.BillNo))
		c.Data(http.StatusOK, docxContentType, data)
		return
	}

	bill, data, err := billing.DownloadPDF(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=generated-bill-%s.pdf", bill.BillNo))
	c.Data(http.StatusOK, "application/pdf", data)
}
