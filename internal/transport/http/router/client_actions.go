package router

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salon-suite/internal/domain"
	"salon-suite/internal/feature/client"
	httpez "salon-suite/internal/transport/http/ez"
)

// ClientService 客户身份解析器的路由侧视角（便于替身测试）
type ClientService interface {
	FindDuplicates(ctx context.Context, name, phone string) ([]domain.DuplicateMatch, error)
	CreateClient(ctx context.Context, in client.CreateInput) (*domain.Client, error)
	ListClients(ctx context.Context, locationID string) ([]domain.Client, error)
}

type clientModule struct {
	svc ClientService
	log *zap.Logger
}

func NewClientModule(svc ClientService, log *zap.Logger) APIModule {
	return &clientModule{svc: svc, log: log}
}

func (m *clientModule) Priority() int { return 10 }

func (m *clientModule) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api)

	// 查重：name / phone 至少一个
	type dupIn struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	httpez.POST(ez, "/clients/duplicate-check", func(c *gin.Context, in dupIn) (any, error) {
		matches, err := m.svc.FindDuplicates(c.Request.Context(), in.Name, in.Phone)
		if err != nil {
			return nil, m.mapErr(err)
		}
		if matches == nil {
			matches = []domain.DuplicateMatch{}
		}
		return gin.H{"hasDuplicates": len(matches) > 0, "duplicates": matches}, nil
	})

	// 建档：命中判重返回 409 + 命中明细
	httpez.POST(ez, "/clients", func(c *gin.Context, in client.CreateInput) (any, error) {
		created, err := m.svc.CreateClient(c.Request.Context(), in)
		if err != nil {
			return nil, m.mapErr(err)
		}
		return created, nil
	})

	// 列表：可按偏好网点过滤，派生 segment/avatar/totalSpent
	ez.GET("/clients", func(c *gin.Context) (any, error) {
		views, err := m.svc.ListClients(c.Request.Context(), strings.TrimSpace(c.Query("locationId")))
		if err != nil {
			return nil, m.mapErr(err)
		}
		if views == nil {
			views = []domain.Client{}
		}
		return gin.H{"clients": views}, nil
	})
}

// 域错误 → 传输层错误；持久层故障记日志，对外只给不透明 500
func (m *clientModule) mapErr(err error) error {
	var ve *client.ValidationError
	if errors.As(err, &ve) {
		return httpez.BadRequest(ve.Msg)
	}
	var de *client.DuplicateError
	if errors.As(err, &de) {
		return httpez.Conflict(de.Message(), gin.H{
			"duplicateType":  de.Kind,
			"existingClient": de.Existing,
			"message":        de.Message(),
		})
	}
	m.log.Error("client operation failed", zap.Error(err))
	return httpez.Internal("internal error", nil)
}
