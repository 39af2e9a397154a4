package handler

import (
	"net/http"
	"reflect"

	"clinicore/internal/apierror"
	"clinicore/internal/middleware"
	"clinicore/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// decimal.Decimal validates through its float value so min/max tags work.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// bindAndValidate decodes the JSON body into T and runs struct validation.
// On failure it writes the 400 response itself and reports false.
func bindAndValidate[T any](c *gin.Context) (*T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("Invalid request body."))
		return nil, false
	}
	if err := validate.Struct(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New(validationMessage(err)))
		return nil, false
	}
	return &req, true
}

func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "Validation failed."
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required."
	case "email":
		return fe.Field() + " must be a valid email address."
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + "."
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + "."
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param() + "."
	default:
		return fe.Field() + " is invalid."
	}
}

// fail hands the error to the ErrorHandler middleware, which owns the
// status mapping and the response envelope.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// parseUUID reads a UUID path parameter or writes a 400.
func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("Invalid "+param+"."))
		return uuid.Nil, false
	}
	return id, true
}

// storeFor resolves the data store backing this request from the verified
// token role.
func storeFor(stores *store.Router, c *gin.Context) *store.Set {
	claims := middleware.GetClaims(c)
	role := ""
	if claims != nil {
		role = claims.Role
	}
	return stores.ForRole(role)
}
