package router

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"salon-suite/internal/core/auth"
	"salon-suite/internal/core/cache"
	"salon-suite/internal/feature/booking"
	"salon-suite/internal/feature/client"
	"salon-suite/internal/repo"
	httpez "salon-suite/internal/transport/http/ez"
	mdw "salon-suite/internal/transport/http/middleware"
)

// NewAPIEngine 前台引擎：客户判重/建档/列表、目录与导航守卫、
// 登录、本人预约 CRUD
func NewAPIEngine(l *zap.Logger, db *gorm.DB, ca *cache.Cache, jwter *auth.JWTer) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	clientRepo := repo.NewClientRepo(db, l)
	dirRepo := repo.NewDirectoryRepo(db)
	resolver := client.NewResolver(clientRepo, l)

	api := r.Group("/api/v1")
	api.Use(mdw.AuthOptional(jwter)) // 公开只读兜底：匿名可读

	reg := NewRegistry()
	reg.Add(NewClientModule(resolver, l))
	reg.Add(NewDirectoryModule(dirRepo, ca, l))
	reg.MountAPI(api)

	// 鉴权分组（/me、本人预约）
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, ""))

	mountAuthActions(api, authed, db, dirRepo, jwter)

	httpez.Crud(httpez.CrudConfig[booking.AppointmentModel]{
		DB:         db,
		Group:      authed,
		Path:       "/bookings",
		New:        func() *booking.AppointmentModel { return &booking.AppointmentModel{} },
		OwnerField: "UserID",
		OrderBy:    "start_at ASC",
		Hooks: httpez.CrudHooks[booking.AppointmentModel]{
			BeforeCreate: func(c *gin.Context, m *booking.AppointmentModel) error {
				if m.StartAt.IsZero() || m.EndAt.IsZero() || !m.EndAt.After(m.StartAt) {
					return errBookingWindow
				}
				if m.Status == "" {
					m.Status = "booked"
				}
				return nil
			},
			ScopeList: func(c *gin.Context, q *gorm.DB) *gorm.DB {
				if s := c.Query("status"); s != "" {
					q = q.Where("status = ?", s)
				}
				return q
			},
		},
	})

	return r
}

var errBookingWindow = errors.New("startAt must be before endAt")
