package ez

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ad-board/internal/core/schema"
	mdw "ad-board/internal/transport/http/middleware"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// 绑定方式
type Binder string

const (
	BindJSON Binder = "json" // 按 schema 校验 JSON body
	BindNone Binder = "none" // 不读 body
)

const keyPathID = "ez.path_id"

// 动作定义：I 入参（schema 结构体），O 出参
type Action[I any, O any] struct {
	Method string // GET | POST | PATCH | DELETE
	Path   string // 例："/user/:id"
	Binder Binder

	// 路径带 :id 时填写：id 不是正整数直接 404 并返回这条文案
	NotFound string

	// tx 是本次请求独占的连接，动作返回后归还
	Handler func(c *gin.Context, tx *gorm.DB, in *I) (O, error)
}

// parseID 只接受不带符号的十进制正整数
func parseID(raw string) (int64, bool) {
	if raw == "" || strings.TrimLeft(raw, "0123456789") != "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// PathID 取已校验的路径 id
func PathID(c *gin.Context) int64 { return c.GetInt64(keyPathID) }

func RegisterAction[I any, O any](e EZ, db *gorm.DB, a Action[I, O]) {
	h := func(c *gin.Context) {
		// 1) 路径 id
		if a.NotFound != "" {
			id, ok := parseID(c.Param("id"))
			if !ok {
				WriteError(c, NotFound(a.NotFound))
				return
			}
			c.Set(keyPathID, id)
		}

		// 2) 校验入参
		in := new(I)
		if a.Binder == BindJSON {
			raw, err := io.ReadAll(c.Request.Body)
			if err != nil {
				_ = c.Error(err)
				if mdw.IsBodyTooLarge(err) {
					WriteError(c, BadRequest(mdw.MsgBodyTooLarge))
					return
				}
				WriteError(c, BadRequest("invalid request body"))
				return
			}
			if in, err = schema.Validate[I](raw); err != nil {
				WriteError(c, err)
				return
			}
		}

		// 3) 每个请求独占一条连接，结束即归还
		var out O
		err := db.WithContext(c.Request.Context()).Connection(func(tx *gorm.DB) error {
			// Session 让 handler 里的每次调用都从干净的 Statement 开始，仍走同一条连接
			o, e := a.Handler(c, tx.Session(&gorm.Session{}), in)
			out = o
			return e
		})

		// 4) 统一错误映射
		if err != nil {
			WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}
