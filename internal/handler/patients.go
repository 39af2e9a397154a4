package handler

import (
	"net/http"

	"clinicore/internal/apierror"
	"clinicore/internal/dto"
	"clinicore/internal/store"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	stores *store.Router
}

func NewPatientHandler(stores *store.Router) *PatientHandler {
	return &PatientHandler{stores: stores}
}

func (h *PatientHandler) Create(c *gin.Context) {
	req, ok := bindAndValidate[dto.CreatePatientRequest](c)
	if !ok {
		return
	}
	resp, err := storeFor(h.stores, c).Patients.Create(c.Request.Context(), *req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PatientHandler) List(c *gin.Context) {
	resp, err := storeFor(h.stores, c).Patients.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PatientHandler) Get(c *gin.Context) {
	resp, err := storeFor(h.stores, c).Patients.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PatientHandler) Update(c *gin.Context) {
	req, ok := bindAndValidate[dto.UpdatePatientRequest](c)
	if !ok {
		return
	}
	resp, err := storeFor(h.stores, c).Patients.Update(c.Request.Context(), c.Param("id"), *req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	if err := storeFor(h.stores, c).Patients.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.New("Patient deleted successfully."))
}
