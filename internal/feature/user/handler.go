package user

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ad-board/internal/core/cache"
	"ad-board/internal/domain"
	"ad-board/internal/repo"
	"ad-board/internal/transport/http/ez"
	resp "ad-board/internal/transport/http/response"
	"ad-board/pkg/utils"
)

var notFound = domain.KindUser + " not found"

type Module struct {
	db    *gorm.DB
	cache *cache.Cache // nil 表示不缓存
	log   *zap.Logger
}

func NewModule(db *gorm.DB, c *cache.Cache, l *zap.Logger) *Module {
	if l == nil {
		l = zap.NewNop()
	}
	return &Module{db: db, cache: c, log: l.Named("user")}
}

func (m *Module) Priority() int { return 10 }

func (m *Module) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, m.db, ez.Action[CreateUser, resp.Created]{
		Method:  http.MethodPost,
		Path:    "/user",
		Binder:  ez.BindJSON,
		Handler: m.create,
	})
	ez.RegisterAction(e, m.db, ez.Action[struct{}, Record]{
		Method:   http.MethodGet,
		Path:     "/user/:id",
		Binder:   ez.BindNone,
		NotFound: notFound,
		Handler:  m.read,
	})
	ez.RegisterAction(e, m.db, ez.Action[PatchUser, Record]{
		Method:   http.MethodPatch,
		Path:     "/user/:id",
		Binder:   ez.BindJSON,
		NotFound: notFound,
		Handler:  m.update,
	})
	ez.RegisterAction(e, m.db, ez.Action[struct{}, resp.Status]{
		Method:   http.MethodDelete,
		Path:     "/user/:id",
		Binder:   ez.BindNone,
		NotFound: notFound,
		Handler:  m.delete,
	})
}

func (m *Module) read(c *gin.Context, tx *gorm.DB, _ *struct{}) (Record, error) {
	id := ez.PathID(c)
	rec, err := cache.GetOrLoadJSON(m.cache, c.Request.Context(), cache.Key(domain.KindUser, id),
		func(context.Context) (*Record, error) {
			u, err := repo.NewUserRepo(tx).FindByID(id)
			if err != nil {
				return nil, err
			}
			r := toRecord(u)
			return &r, nil
		})
	if err != nil {
		return Record{}, err
	}
	return *rec, nil
}

func (m *Module) create(_ *gin.Context, tx *gorm.DB, in *CreateUser) (resp.Created, error) {
	hashed, err := utils.HashPassword(*in.Password)
	if err != nil {
		return resp.Created{}, ez.Internal("hash password failed", err)
	}
	u := &domain.User{Name: *in.Name, Password: hashed}
	if err := repo.NewUserRepo(tx).Create(u); err != nil {
		return resp.Created{}, err
	}
	return resp.Created{ID: u.ID}, nil
}

func (m *Module) update(c *gin.Context, tx *gorm.DB, in *PatchUser) (Record, error) {
	// 先哈希再查库
	if in.Password != nil {
		hashed, err := utils.HashPassword(*in.Password)
		if err != nil {
			return Record{}, ez.Internal("hash password failed", err)
		}
		in.Password = &hashed
	}

	users := repo.NewUserRepo(tx)
	u, err := users.FindByID(ez.PathID(c))
	if err != nil {
		return Record{}, err
	}
	if err := users.Update(u, in.Apply(u)...); err != nil {
		return Record{}, err
	}
	m.invalidate(c.Request.Context(), cache.Key(domain.KindUser, u.ID))
	return toRecord(u), nil
}

func (m *Module) delete(c *gin.Context, tx *gorm.DB, _ *struct{}) (resp.Status, error) {
	users := repo.NewUserRepo(tx)
	u, err := users.FindByID(ez.PathID(c))
	if err != nil {
		return resp.Status{}, err
	}

	keys := []string{cache.Key(domain.KindUser, u.ID)}
	if m.cache.Enabled() {
		// 级联删除的广告也要从缓存里清掉
		ids, err := repo.NewAdvertisementRepo(tx).IDsByOwner(u.ID)
		if err != nil {
			return resp.Status{}, err
		}
		for _, id := range ids {
			keys = append(keys, cache.Key(domain.KindAdvertisement, id))
		}
	}

	if err := users.Delete(u); err != nil {
		return resp.Status{}, err
	}
	m.invalidate(c.Request.Context(), keys...)
	return resp.OK(), nil
}

func (m *Module) invalidate(ctx context.Context, keys ...string) {
	if err := m.cache.Invalidate(ctx, keys...); err != nil {
		m.log.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
