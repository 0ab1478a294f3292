package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	resp "salon-suite/internal/transport/http/response"
)

/* ================== 轻封装 ================== */

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

func (e EZ) GET(path string, h func(c *gin.Context) (any, error)) {
	e.g.GET(path, func(c *gin.Context) {
		data, err := h(c)
		if err != nil {
			Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(data))
	})
}

func POST[T any](e EZ, path string, h func(c *gin.Context, in T) (any, error)) {
	e.g.POST(path, func(c *gin.Context) {
		var in T
		if err := c.ShouldBindJSON(&in); err != nil {
			Fail(c, BadRequest(err.Error()))
			return
		}
		data, err := h(c, in)
		if err != nil {
			Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(data))
	})
}

/* ================== 统一错误对象 ================== */

// AErr 配合 resp 包输出；Payload 可携带结构化明细（409 冲突等）
type AErr struct {
	Code    int
	Msg     string
	Payload any
	Err     error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Conflict(msg string, payload any) error {
	return &AErr{Code: resp.CodeConflict, Msg: msg, Payload: payload}
}
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// Fail 统一错误出口：HTTP 状态跟随业务码
func Fail(c *gin.Context, err error) {
	var ae *AErr
	if errors.As(err, &ae) {
		if ae.Payload != nil {
			c.JSON(resp.HTTPStatus(ae.Code), resp.ErrorData(ae.Code, ae.Error(), ae.Payload))
			return
		}
		c.JSON(resp.HTTPStatus(ae.Code), resp.Error(ae.Code, ae.Error()))
		return
	}
	c.JSON(resp.HTTPStatus(resp.CodeServerError), resp.Error(resp.CodeServerError, err.Error()))
}

/* ================== Action（非 CRUD 一行注册） ================== */

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none" // 自己从 c.Param / c.Query 取
)

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Auth    bool     // 要求登录（检查 userId）
	Roles   []string // 限定角色（可选）
	UseTx   bool     // 包一层 gorm.Transaction
	Handler func(c *gin.Context, db *gorm.DB, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, db *gorm.DB, a Action[I, O]) {
	h := func(c *gin.Context) {
		if a.Auth {
			uid := c.GetString("userId")
			if uid == "" {
				Fail(c, Unauthorized("unauthorized"))
				return
			}
			if len(a.Roles) > 0 {
				role := strings.ToLower(c.GetString("role"))
				ok := false
				for _, r := range a.Roles {
					if role == strings.ToLower(r) {
						ok = true
						break
					}
				}
				if !ok {
					Fail(c, Forbidden("forbidden"))
					return
				}
			}
		}

		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone
		}
		if bindErr != nil {
			Fail(c, BadRequest(bindErr.Error()))
			return
		}

		run := func(tx *gorm.DB) (O, error) { return a.Handler(c, tx, &in) }
		var out O
		var err error
		if a.UseTx {
			err = db.WithContext(c).Transaction(func(tx *gorm.DB) error {
				o, e := run(tx)
				out = o
				return e
			})
		} else {
			out, err = run(db.WithContext(c))
		}

		if err != nil {
			Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}
