package handler

import (
	"net/http"

	"clinicore/internal/apierror"
	"clinicore/internal/store"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	stores *store.Router
}

func NewAdminHandler(stores *store.Router) *AdminHandler {
	return &AdminHandler{stores: stores}
}

// ReloadTemplate re-parses the invoice template without a restart. The hot
// render path never reads from disk, so this is the only way a template
// update takes effect.
func (h *AdminHandler) ReloadTemplate(c *gin.Context) {
	tmpl := h.stores.Template()
	if tmpl == nil {
		fail(c, apierror.E(apierror.KindInternal, "template store not configured"))
		return
	}
	if err := tmpl.Reload(); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.New("Invoice template reloaded."))
}
