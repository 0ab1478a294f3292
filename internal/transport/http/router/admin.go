package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"salon-suite/internal/core/auth"
	"salon-suite/internal/core/cache"
	"salon-suite/internal/core/server"
	mdw "salon-suite/internal/transport/http/middleware"
)

// NewAdminEngine 后台引擎：统一要求 admin 角色
func NewAdminEngine(l *zap.Logger, db *gorm.DB, ca *cache.Cache, jwter *auth.JWTer) *gin.Engine {
	r := server.NewBaseRouter(l)
	r.Use(mdw.RequestID(), mdw.Metrics())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, "admin"))

	MountAdminActions(admin, db, ca, l)

	return r
}
