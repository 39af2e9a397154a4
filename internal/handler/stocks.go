package handler

import (
	"net/http"

	"clinicore/internal/apierror"
	"clinicore/internal/dto"
	"clinicore/internal/store"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	stores *store.Router
}

func NewStockHandler(stores *store.Router) *StockHandler {
	return &StockHandler{stores: stores}
}

func (h *StockHandler) Create(c *gin.Context) {
	req, ok := bindAndValidate[dto.CreateStockRequest](c)
	if !ok {
		return
	}
	resp, err := storeFor(h.stores, c).Inventory.Create(c.Request.Context(), *req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *StockHandler) List(c *gin.Context) {
	resp, err := storeFor(h.stores, c).Inventory.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockHandler) Get(c *gin.Context) {
	resp, err := storeFor(h.stores, c).Inventory.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockHandler) Update(c *gin.Context) {
	req, ok := bindAndValidate[dto.UpdateStockRequest](c)
	if !ok {
		return
	}
	resp, err := storeFor(h.stores, c).Inventory.Update(c.Request.Context(), c.Param("id"), *req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockHandler) Delete(c *gin.Context) {
	if err := storeFor(h.stores, c).Inventory.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.New("Stock item deleted successfully."))
}
