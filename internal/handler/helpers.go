package handler

import (
	"errors"
	"net/http"
	"reflect"

	"cataldo/internal/apierror"
	"cataldo/internal/middleware"
	"cataldo/internal/model"
	"cataldo/internal/rut"
	"cataldo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// envelope is the uniform success wrapper of every 2xx response.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func ok(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, apierror.NewValidation(fields))
		return false
	}
	return true
}

// actorDe builds the service-layer caller identity from the JWT claims.
func actorDe(c *gin.Context) service.Actor {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return service.Actor{IP: c.ClientIP()}
	}
	rol, _ := model.ParseRol(claims.Rol)
	return service.Actor{
		UserID: claims.UserID,
		Email:  claims.Email,
		Rol:    rol,
		IP:     c.ClientIP(),
	}
}

// writeError maps service sentinel errors onto HTTP status codes. Unknown
// errors become an opaque 500 so internals never leak to clients.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUsuarioNoEncontrado),
		errors.Is(err, service.ErrOperacionNoEncontrada),
		errors.Is(err, service.ErrMaterialNoEncontrado),
		errors.Is(err, service.ErrProductoNoEncontrado),
		errors.Is(err, service.ErrProveedorNoEncontrado),
		errors.Is(err, service.ErrCorreoNoEncontrado),
		errors.Is(err, service.ErrEncuestaNoEncontrada),
		errors.Is(err, service.ErrUbicacionNoEncontrada):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))

	case errors.Is(err, service.ErrCredencialesInvalidas),
		errors.Is(err, service.ErrCuentaBloqueada):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))

	case errors.Is(err, service.ErrSinAccesoOperacion):
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))

	case errors.Is(err, service.ErrEmailEnUso),
		errors.Is(err, service.ErrRutEnUso),
		errors.Is(err, service.ErrProveedorRutEnUso),
		errors.Is(err, service.ErrEncuestaDuplicada),
		errors.Is(err, service.ErrMismoEstado),
		errors.Is(err, service.ErrMaterialReferenciado):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))

	case errors.Is(err, service.ErrDatosInvalidos),
		errors.Is(err, rut.ErrFormato),
		errors.Is(err, rut.ErrDigitoVerif),
		errors.Is(err, service.ErrEstadoInvalido),
		errors.Is(err, service.ErrOperacionAnulada),
		errors.Is(err, service.ErrAbonoInvalido),
		errors.Is(err, service.ErrAbonoExcedeCosto),
		errors.Is(err, service.ErrStockNegativo),
		errors.Is(err, service.ErrClienteInvalido),
		errors.Is(err, service.ErrProductoInactivo),
		errors.Is(err, service.ErrPerfilIncompatible),
		errors.Is(err, service.ErrAutoEliminacion),
		errors.Is(err, service.ErrOperacionNoEntregada),
		errors.Is(err, service.ErrCorreoNoReintentable),
		errors.Is(err, service.ErrCostoTercerosInvalido):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))

	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}
