package advertisement

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
)

var notFound = domain.KindAdvertisement + " not found"

type Module struct {
	db    *gorm.DB
	cache *cache.Cache
	log   *zap.Logger
}

func NewModule(db *gorm.DB, c *cache.Cache, l *zap.Logger) *Module {
	if l == nil {
		l = zap.NewNop()
	}
	return &Module{db: db, cache: c, log: l.Named("advertisement")}
}

func (m *Module) Priority() int { return 20 }

func (m *Module) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, m.db, ez.Action[CreateAdvertisement, resp.Created]{
		Method:  http.MethodPost,
		Path:    "/advertisement",
		Binder:  ez.BindJSON,
		Handler: m.create,
	})
	ez.RegisterAction(e, m.db, ez.Action[struct{}, Record]{
		Method:   http.MethodGet,
		Path:     "/advertisement/:id",
		Binder:   ez.BindNone,
		NotFound: notFound,
		Handler:  m.read,
	})
	ez.RegisterAction(e, m.db, ez.Action[PatchAdvertisement, Record]{
		Method:   http.MethodPatch,
		Path:     "/advertisement/:id",
		Binder:   ez.BindJSON,
		NotFound: notFound,
		Handler:  m.update,
	})
	ez.RegisterAction(e, m.db, ez.Action[struct{}, resp.Status]{
		Method:   http.MethodDelete,
		Path:     "/advertisement/:id",
		Binder:   ez.BindNone,
		NotFound: notFound,
		Handler:  m.delete,
	})
}

func (m *Module) read(c *gin.Context, tx *gorm.DB, _ *struct{}) (Record, error) {
	id := ez.PathID(c)
	rec, err := cache.GetOrLoadJSON(m.cache, c.Request.Context(), cache.Key(domain.KindAdvertisement, id),
		func(context.Context) (*Record, error) {
			a, err := repo.NewAdvertisementRepo(tx).FindByID(id)
			if err != nil {
				return nil, err
			}
			r := toRecord(a)
			return &r, nil
		})
	if err != nil {
		return Record{}, err
	}
	return *rec, nil
}

// create 不预查 owner，由外键拒绝
func (m *Module) create(_ *gin.Context, tx *gorm.DB, in *CreateAdvertisement) (resp.Created, error) {
	a := &domain.Advertisement{
		Heading:     *in.Heading,
		Description: *in.Description,
		OwnerID:     *in.OwnerID,
	}
	if err := repo.NewAdvertisementRepo(tx).Create(a); err != nil {
		return resp.Created{}, err
	}
	return resp.Created{ID: a.ID}, nil
}

func (m *Module) update(c *gin.Context, tx *gorm.DB, in *PatchAdvertisement) (Record, error) {
	ads := repo.NewAdvertisementRepo(tx)
	a, err := ads.FindByID(ez.PathID(c))
	if err != nil {
		return Record{}, err
	}
	if err := ads.Update(a, in.Apply(a)...); err != nil {
		return Record{}, err
	}
	m.invalidate(c.Request.Context(), cache.Key(domain.KindAdvertisement, a.ID))
	return toRecord(a), nil
}

func (m *Module) delete(c *gin.Context, tx *gorm.DB, _ *struct{}) (resp.Status, error) {
	ads := repo.NewAdvertisementRepo(tx)
	a, err := ads.FindByID(ez.PathID(c))
	if err != nil {
		return resp.Status{}, err
	}
	if err := ads.Delete(a); err != nil {
		return resp.Status{}, err
	}
	m.invalidate(c.Request.Context(), cache.Key(domain.KindAdvertisement, a.ID))
	return resp.OK(), nil
}

func (m *Module) invalidate(ctx context.Context, keys ...string) {
	if err := m.cache.Invalidate(ctx, keys...); err != nil {
		m.log.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
