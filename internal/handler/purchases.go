package handler

import (
	"net/http"

	"clinicore/internal/apierror"
	"clinicore/internal/dto"
	"clinicore/internal/store"

	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	stores *store.Router
}

func NewPurchaseHandler(stores *store.Router) *PurchaseHandler {
	return &PurchaseHandler{stores: stores}
}

func (h *PurchaseHandler) Record(c *gin.Context) {
	req, ok := bindAndValidate[dto.RecordPurchaseRequest](c)
	if !ok {
		return
	}
	resp, err := storeFor(h.stores, c).Purchases.Record(c.Request.Context(), *req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PurchaseHandler) List(c *gin.Context) {
	resp, err := storeFor(h.stores, c).Purchases.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	if err := storeFor(h.stores, c).Purchases.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.New("Purchase deleted successfully."))
}
