package handler

import (
	"net/http"

	"cataldo/internal/config"
	"cataldo/internal/dto"
	"cataldo/internal/middleware"
	"cataldo/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc service.AuthService
	cfg *config.Config
}

func NewAuthHandler(svc service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Verifica credenciales, emite el JWT y lo deja en una cookie httpOnly.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.LoginRequest true "Credenciales"
// @Success      200 {object} dto.LoginResponse
// @Failure      401 {object} apierror.APIError
// @Router       /auth/verify [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		writeError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, resp.Token, resp.ExpiresIn, "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)
	ok(c, http.StatusOK, "Sesión iniciada", resp)
}

// Registro godoc
// @Summary      Registrar cuenta
// @Description  Autorregistro público. La cuenta nace con rol usuario hasta que un administrador la eleve.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.RegistroRequest true "Datos de la cuenta"
// @Success      201 {object} dto.UsuarioResponse
// @Failure      409 {object} apierror.APIError
// @Router       /auth/create [post]
func (h *AuthHandler) Registro(c *gin.Context) {
	var req dto.RegistroRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Registro(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusCreated, "Cuenta creada", resp)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Expira la cookie de sesión y registra el evento.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.envelope
// @Router       /auth/end [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims != nil {
		h.svc.Logout(c.Request.Context(), claims.Email, c.ClientIP())
	}
	c.SetCookie(middleware.CookieName, "", -1, "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)
	ok(c, http.StatusOK, "Sesión cerrada", nil)
}
