package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ad-board/internal/core/cache"
	"ad-board/internal/core/database"
	"ad-board/internal/core/server"
	"ad-board/internal/feature/advertisement"
	"ad-board/internal/feature/user"
	mdw "ad-board/internal/transport/http/middleware"
	resp "ad-board/internal/transport/http/response"
)

type Options struct {
	MaxBodyBytes   int64
	MaxInFlight    int64
	RequestTimeout time.Duration // 0 关闭

	// 为空时新建一个，并带上 go / process 指标
	Metrics *prometheus.Registry
}

func NewAPIEngine(l *zap.Logger, db *gorm.DB, c *cache.Cache, opt Options) *gin.Engine {
	reg := opt.Metrics
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	r := server.NewRouter(l)

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.NewMetrics(reg).Handler(),
		mdw.AccessLog(l),
		mdw.ConcurrencyLimit(opt.MaxInFlight),
		mdw.MaxBodyBytes(opt.MaxBodyBytes),
		mdw.Timeout(opt.RequestTimeout),
	)

	// 运维接口
	r.GET("/health", health(db))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	var mods Registry
	mods.Register(
		user.NewModule(db, c, l),
		advertisement.NewModule(db, c, l),
	)
	mods.MountAPI(r.Group(""))

	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.Ping(ctx, db); err != nil {
			_ = c.Error(err)
			resp.Abort(c, resp.CodeUnavailable, "database unavailable")
			return
		}
		c.JSON(http.StatusOK, resp.OK())
	}
}
