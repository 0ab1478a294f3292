package router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salon-suite/internal/core/cache"
	"salon-suite/internal/domain"
	"salon-suite/internal/scope"
	httpez "salon-suite/internal/transport/http/ez"
	mdw "salon-suite/internal/transport/http/middleware"
)

const (
	cacheKeyLocations = "directory:locations"
	locationsCacheTTL = 5 * time.Minute
)

// directoryModule：网点 / 员工 / 预约列表（按 principal 过滤）+ 导航守卫
type directoryModule struct {
	repo  domain.DirectoryRepository
	cache *cache.Cache
	guard scope.Guard
	log   *zap.Logger
}

func NewDirectoryModule(repo domain.DirectoryRepository, ca *cache.Cache, log *zap.Logger) APIModule {
	return &directoryModule{repo: repo, cache: ca, guard: scope.NewSalesGuard(), log: log}
}

func (m *directoryModule) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api)

	ez.GET("/locations", func(c *gin.Context) (any, error) {
		physical, err := m.loadLocations(c.Request.Context())
		if err != nil {
			m.log.Error("list locations failed", zap.Error(err))
			return nil, httpez.Internal("internal error", nil)
		}
		// 虚拟网点不落库，列表层补齐后统一走过滤
		all := append(physical,
			domain.Location{ID: scope.LocationOnline, Name: "Online Store", Active: true},
			domain.Location{ID: scope.LocationHome, Name: "Home Service", Active: true},
		)
		return gin.H{"locations": scope.FilterLocations(mdw.PrincipalFrom(c), all)}, nil
	})

	ez.GET("/staff", func(c *gin.Context) (any, error) {
		items, err := m.repo.ListStaff(c.Request.Context())
		if err != nil {
			m.log.Error("list staff failed", zap.Error(err))
			return nil, httpez.Internal("internal error", nil)
		}
		return gin.H{"staff": scope.FilterStaff(mdw.PrincipalFrom(c), items)}, nil
	})

	ez.GET("/appointments", func(c *gin.Context) (any, error) {
		items, err := m.repo.ListAppointments(c.Request.Context())
		if err != nil {
			m.log.Error("list appointments failed", zap.Error(err))
			return nil, httpez.Internal("internal error", nil)
		}
		return gin.H{"appointments": scope.FilterAppointments(mdw.PrincipalFrom(c), items)}, nil
	})

	// 导航守卫：SPA 在路由变化时询问是否需要跳转。
	// 会话未解析（匿名）时恒不跳转。
	ez.GET("/navigation/guard", func(c *gin.Context) (any, error) {
		path := c.Query("path")
		if path == "" {
			return nil, httpez.BadRequest("path is required")
		}
		redirect, need := m.guard.Evaluate(mdw.PrincipalFrom(c), path)
		return gin.H{"allowed": !need, "redirect": redirect}, nil
	})
}

// WarmLocationCache 预热网点缓存（后台轮询调用）
func WarmLocationCache(ctx context.Context, repo domain.DirectoryRepository, ca *cache.Cache) error {
	m := &directoryModule{repo: repo, cache: ca}
	_, err := m.loadLocations(ctx)
	return err
}

func (m *directoryModule) loadLocations(ctx context.Context) ([]domain.Location, error) {
	if m.cache == nil {
		return m.repo.ListLocations(ctx)
	}
	out, err := cache.GetOrLoadJSON[[]domain.Location](m.cache, ctx, cacheKeyLocations, locationsCacheTTL,
		func(ctx context.Context) (*[]domain.Location, error) {
			items, e := m.repo.ListLocations(ctx)
			if e != nil {
				return nil, e
			}
			return &items, nil
		})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return *out, nil
}
