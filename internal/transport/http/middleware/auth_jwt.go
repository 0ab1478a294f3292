package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"salon-suite/internal/core/auth"
	"salon-suite/internal/scope"
	resp "salon-suite/internal/transport/http/response"
)

const keyPrincipal = "principal"

// AuthJWT 强制登录；requireRole 非空时再卡角色（大小写不敏感）
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(resp.HTTPStatus(resp.CodeUnauthorized), resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(resp.HTTPStatus(resp.CodeUnauthorized), resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if requireRole != "" && scope.ParseRole(claims.Role) != scope.ParseRole(requireRole) {
			c.AbortWithStatusJSON(resp.HTTPStatus(resp.CodeForbidden), resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		setPrincipal(c, claims)
		c.Next()
	}
}

// AuthOptional 能解析就带上 principal，解析不了按匿名继续
// （公开只读接口的兜底行为）
func AuthOptional(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if strings.HasPrefix(ah, "Bearer ") {
			if claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer ")); err == nil {
				setPrincipal(c, claims)
			}
		}
		c.Next()
	}
}

func setPrincipal(c *gin.Context, claims *auth.Claims) {
	c.Set("claims", claims)
	c.Set("userId", claims.UID)
	c.Set("role", claims.Role)
	c.Set(keyPrincipal, &scope.Principal{
		ID:        claims.UID,
		Role:      scope.ParseRole(claims.Role),
		Locations: claims.Locations,
		Email:     claims.Email,
	})
}

// PrincipalFrom 取当前请求的 principal；匿名返回 nil
func PrincipalFrom(c *gin.Context) *scope.Principal {
	if v, ok := c.Get(keyPrincipal); ok {
		if p, ok := v.(*scope.Principal); ok {
			return p
		}
	}
	return nil
}
