package handler

import (
	"net/http"

	"clinicore/internal/dto"
	"clinicore/internal/middleware"
	"clinicore/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Login(c *gin.Context) {
	req, ok := bindAndValidate[dto.LoginRequest](c)
	if !ok {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), *req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Register(c *gin.Context) {
	req, ok := bindAndValidate[dto.RegisterRequest](c)
	if !ok {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), *req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Verify echoes the identity the auth middleware already validated. Reaching
// this handler at all means the token is good.
func (h *AuthHandler) Verify(c *gin.Context) {
	claims := middleware.GetClaims(c)
	c.JSON(http.StatusOK, dto.VerifyResponse{Email: claims.Email, Role: claims.Role})
}
