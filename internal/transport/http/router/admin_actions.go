package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"salon-suite/internal/core/cache"
	"salon-suite/internal/feature/account"
	"salon-suite/internal/feature/client"
	"salon-suite/internal/feature/staff"
	httpez "salon-suite/internal/transport/http/ez"
	"salon-suite/pkg/utils"
)

// 员工初始口令，首次登录后台后自行修改
const defaultStaffPassword = "staff123"

// 后台接口集中在这里注册（分组已卡 admin 角色）
func MountAdminActions(admin *gin.RouterGroup, db *gorm.DB, ca *cache.Cache, l *zap.Logger) {
	ez := httpez.New(admin)

	// --- GET /admin/v1/clients 客户档案列表 ---
	type clientQ struct {
		Offset      int    `form:"offset,default=0"`
		Limit       int    `form:"limit,default=20"`
		Q           string `form:"q"`            // 按姓名/电话模糊搜
		WithDeleted bool   `form:"with_deleted"` // 是否包含软删
	}
	type clientRow struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Phone     string    `json:"phone"`
		Source    string    `json:"source"`
		CreatedAt time.Time `json:"createdAt"`
	}
	type clientList struct {
		Total int64       `json:"total"`
		Items []clientRow `json:"items"`
	}
	httpez.RegisterAction[clientQ, clientList](ez, db, httpez.Action[clientQ, clientList]{
		Method: http.MethodGet,
		Path:   "/clients",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, tx *gorm.DB, in *clientQ) (clientList, error) {
			if in.Limit <= 0 || in.Limit > 100 {
				in.Limit = 20
			}
			q := tx.Model(&client.ClientModel{})
			if in.WithDeleted {
				q = q.Unscoped()
			}
			if s := strings.TrimSpace(in.Q); s != "" {
				like := "%" + s + "%"
				q = q.Where("name LIKE ? OR phone LIKE ?", like, like)
			}

			var total int64
			if err := q.Count(&total).Error; err != nil {
				return clientList{}, httpez.Internal("count clients failed", err)
			}
			var rows []client.ClientModel
			if err := q.Order("created_at DESC").Limit(in.Limit).Offset(in.Offset).Find(&rows).Error; err != nil {
				return clientList{}, httpez.Internal("list clients failed", err)
			}

			out := clientList{Total: total, Items: make([]clientRow, 0, len(rows))}
			for _, r := range rows {
				out.Items = append(out.Items, clientRow{
					ID: r.ID, Name: r.Name, Phone: r.Phone, Source: r.Source, CreatedAt: r.CreatedAt,
				})
			}
			return out, nil
		},
	})

	// --- POST /admin/v1/staff 员工 + 网点指派，一个事务 ---
	type staffIn struct {
		Name      string   `json:"name"     binding:"required,max=64"`
		Email     string   `json:"email"    binding:"required,email"`
		JobTitle  string   `json:"jobTitle" binding:"omitempty,max=64"`
		Locations []string `json:"locations"`
	}
	type staffOut struct {
		ID        string   `json:"id"`
		UserID    string   `json:"userId"`
		Name      string   `json:"name"`
		JobTitle  string   `json:"jobTitle"`
		Locations []string `json:"locations"`
	}
	httpez.RegisterAction[staffIn, staffOut](ez, db, httpez.Action[staffIn, staffOut]{
		Method: http.MethodPost,
		Path:   "/staff",
		Binder: httpez.BindJSON,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, in *staffIn) (staffOut, error) {
			acc := account.AccountModel{
				ID:           utils.NewID(),
				Email:        strings.TrimSpace(in.Email),
				Name:         strings.TrimSpace(in.Name),
				PasswordHash: utils.HashPassword(defaultStaffPassword),
				Role:         "staff",
			}
			if err := tx.Create(&acc).Error; err != nil {
				if isDupKey(err) {
					return staffOut{}, httpez.Conflict("an account with this email already exists", nil)
				}
				return staffOut{}, httpez.Internal("create staff account failed", err)
			}
			s := staff.StaffModel{
				ID:       utils.NewID(),
				UserID:   acc.ID,
				Name:     acc.Name,
				JobTitle: in.JobTitle,
				Active:   true,
			}
			if err := tx.Create(&s).Error; err != nil {
				return staffOut{}, httpez.Internal("create staff failed", err)
			}
			for _, loc := range in.Locations {
				a := staff.StaffLocationModel{ID: utils.NewID(), StaffID: s.ID, LocationID: loc}
				if err := tx.Create(&a).Error; err != nil {
					return staffOut{}, httpez.Internal("assign staff location failed", err)
				}
			}
			l.Info("staff created", zap.String("staff_id", s.ID), zap.Strings("locations", in.Locations))
			return staffOut{ID: s.ID, UserID: acc.ID, Name: s.Name, JobTitle: s.JobTitle, Locations: in.Locations}, nil
		},
	})

	// --- GET /admin/v1/staff ---
	httpez.RegisterAction[struct{}, gin.H](ez, db, httpez.Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/staff",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			var rows []staff.StaffModel
			if err := tx.Preload("Assignments").Order("name ASC").Find(&rows).Error; err != nil {
				return nil, httpez.Internal("list staff failed", err)
			}
			return gin.H{"staff": rows}, nil
		},
	})

	// --- POST /admin/v1/locations ---
	type locIn struct {
		Name    string `json:"name"    binding:"required,max=100"`
		Address string `json:"address" binding:"omitempty,max=255"`
	}
	httpez.RegisterAction[locIn, gin.H](ez, db, httpez.Action[locIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/locations",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *locIn) (gin.H, error) {
			m := staff.LocationModel{ID: utils.NewID(), Name: in.Name, Address: in.Address, Active: true}
			if err := tx.Create(&m).Error; err != nil {
				return nil, httpez.Internal("create location failed", err)
			}
			if ca != nil {
				ca.Invalidate(c.Request.Context(), cacheKeyLocations)
			}
			return gin.H{"id": m.ID}, nil
		},
	})

	// --- POST /admin/v1/transactions 消费流水（completed 计入客户消费合计） ---
	type txIn struct {
		ClientID   string  `json:"clientId"   binding:"required"`
		LocationID string  `json:"locationId"`
		Amount     float64 `json:"amount"     binding:"required,gt=0"`
		Status     string  `json:"status"     binding:"omitempty,oneof=completed pending voided"`
		Kind       string  `json:"kind"       binding:"omitempty,max=32"`
	}
	httpez.RegisterAction[txIn, gin.H](ez, db, httpez.Action[txIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/transactions",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *txIn) (gin.H, error) {
			var exists int64
			if err := tx.Model(&client.ClientModel{}).Where("id = ?", in.ClientID).Count(&exists).Error; err != nil {
				return nil, httpez.Internal("check client failed", err)
			}
			if exists == 0 {
				return nil, httpez.NotFound("client not found")
			}
			status := in.Status
			if status == "" {
				status = "completed"
			}
			m := client.TransactionModel{
				ID:         utils.NewID(),
				ClientID:   in.ClientID,
				LocationID: in.LocationID,
				Amount:     in.Amount,
				Status:     status,
				Kind:       in.Kind,
			}
			if err := tx.Create(&m).Error; err != nil {
				return nil, httpez.Internal("create transaction failed", err)
			}
			return gin.H{"id": m.ID, "status": m.Status}, nil
		},
	})

	// --- GET /admin/v1/transactions?clientId= ---
	httpez.RegisterAction[struct{}, gin.H](ez, db, httpez.Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/transactions",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (gin.H, error) {
			q := tx.Model(&client.TransactionModel{})
			if cid := c.Query("clientId"); cid != "" {
				q = q.Where("client_id = ?", cid)
			}
			var rows []client.TransactionModel
			if err := q.Order("created_at DESC").Limit(200).Find(&rows).Error; err != nil {
				return nil, httpez.Internal("list transactions failed", err)
			}
			return gin.H{"transactions": rows}, nil
		},
	})
}

// 不依赖 gorm.ErrDuplicatedKey，避免驱动差异
func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
