package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"salon-suite/internal/core/auth"
	"salon-suite/internal/domain"
	"salon-suite/internal/feature/account"
	"salon-suite/internal/scope"
	httpez "salon-suite/internal/transport/http/ez"
	"salon-suite/pkg/utils"
)

// 登录与会话自省；员工 token 里带上指派网点，供过滤逻辑直接使用
func mountAuthActions(api, authed *gin.RouterGroup, db *gorm.DB, dir domain.DirectoryRepository, jwter *auth.JWTer) {
	ezPublic := httpez.New(api)

	type loginIn struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	type loginOut struct {
		Token string `json:"token"`
		User  gin.H  `json:"user"`
	}
	httpez.RegisterAction[loginIn, loginOut](ezPublic, db, httpez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, tx *gorm.DB, in *loginIn) (loginOut, error) {
			email := strings.TrimSpace(in.Email)

			var acc account.AccountModel
			err := tx.Where("email = ?", email).First(&acc).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loginOut{}, httpez.Unauthorized("invalid credentials")
			}
			if err != nil {
				return loginOut{}, httpez.Internal("db error", err)
			}
			if !utils.CheckPassword(in.Password, acc.PasswordHash) {
				return loginOut{}, httpez.Unauthorized("invalid credentials")
			}

			locations, err := locationsFor(c, tx, dir, &acc)
			if err != nil {
				return loginOut{}, httpez.Internal("load staff locations failed", err)
			}

			tok, err := jwter.Issue(acc.ID, acc.Role, locations, acc.Email)
			if err != nil || tok == "" {
				return loginOut{}, httpez.Internal("issue token failed", err)
			}
			return loginOut{
				Token: tok,
				User: gin.H{
					"id": acc.ID, "email": acc.Email, "name": acc.Name,
					"role": acc.Role, "locations": locations,
				},
			}, nil
		},
	})

	ezAuth := httpez.New(authed)

	type meOut struct {
		ID        string   `json:"id"`
		Email     string   `json:"email"`
		Name      string   `json:"name"`
		Role      string   `json:"role"`
		Locations []string `json:"locations"`
	}
	httpez.RegisterAction[struct{}, meOut](ezAuth, db, httpez.Action[struct{}, meOut]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (meOut, error) {
			uid := c.GetString("userId")
			var acc account.AccountModel
			if err := tx.Where("id = ?", uid).First(&acc).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return meOut{}, httpez.NotFound("account not found")
				}
				return meOut{}, httpez.Internal("db error", err)
			}
			var locs []string
			if claims, ok := c.Get("claims"); ok {
				if cl, ok := claims.(*auth.Claims); ok {
					locs = cl.Locations
				}
			}
			return meOut{ID: acc.ID, Email: acc.Email, Name: acc.Name, Role: acc.Role, Locations: locs}, nil
		},
	})
}

// 管理员视作全网点；员工取指派表；其余角色无网点
func locationsFor(c *gin.Context, tx *gorm.DB, dir domain.DirectoryRepository, acc *account.AccountModel) ([]string, error) {
	switch scope.ParseRole(acc.Role) {
	case scope.RoleAdmin:
		return []string{scope.LocationAll}, nil
	case scope.RoleManager, scope.RoleStaff, scope.RoleSales:
		return dir.StaffLocations(c.Request.Context(), acc.ID)
	}
	return nil, nil
}
