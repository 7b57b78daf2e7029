package middleware

import (
	"net/http"
	"strings"

	"cataldo/internal/apierror"
	"cataldo/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey = "claims"
	// CookieName is the session cookie set at login.
	CookieName = "jwt"
)

// JWTClaims are the custom claims embedded in every access token.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Rut    string `json:"rut"`
	Rol    string `json:"rol"`
	jwt.RegisteredClaims
}

// JWTAuth validates the session token on every protected route. The token is
// read from the jwt cookie; an Authorization: Bearer header is accepted as a
// fallback (API clients and tests).
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(CookieName)
		if err != nil || tokenStr == "" {
			header := c.GetHeader("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				tokenStr = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticación requerida"))
			return
		}

		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token inválido o expirado"))
			return
		}

		rol, err := model.ParseRol(claims.Rol)
		if err != nil || rol == model.RolBloqueado {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Cuenta bloqueada"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects requests whose role is not in the allowed set.
func RequireRole(roles ...model.Rol) gin.HandlerFunc {
	allowed := make(map[model.Rol]bool, len(roles))
	nombres := make([]string, 0, len(roles))
	for _, r := range roles {
		allowed[r] = true
		nombres = append(nombres, string(r))
	}
	requerido := strings.Join(nombres, "|")

	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !allowed[model.Rol(claims.Rol)] {
			actual := ""
			if claims != nil {
				actual = claims.Rol
			}
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.NewForbidden(actual, requerido))
			return
		}
		c.Next()
	}
}

// RequireMinimumRole rejects requests below min in the role hierarchy.
func RequireMinimumRole(min model.Rol) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !model.Rol(claims.Rol).AtLeast(min) {
			actual := ""
			if claims != nil {
				actual = claims.Rol
			}
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.NewForbidden(actual, string(min)+" o superior"))
			return
		}
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *JWTClaims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*JWTClaims)
	return claims
}
