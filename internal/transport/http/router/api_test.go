package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ad-board/internal/core/database/dbtest"
	mdw "ad-board/internal/transport/http/middleware"
)

func newEngine(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := dbtest.New(t)
	r := NewAPIEngine(zap.NewNop(), db, nil, Options{
		MaxBodyBytes: 1 << 10,
		MaxInFlight:  4,
		Metrics:      prometheus.NewRegistry(),
	})
	return r, db
}

func call(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer not-checked")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, db := newEngine(t)

	w := call(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(mdw.KeyRequestID))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w = call(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"database unavailable"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newEngine(t)
	call(r, http.MethodGet, "/user/1", "")

	w := call(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",path="/user/:id",status="404"} 1`)
}

func TestRoundTrip(t *testing.T) {
	r, _ := newEngine(t)

	w := call(r, http.MethodPost, "/user", `{"name":"alice","password":"password1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = call(r, http.MethodPost, "/advertisement",
		fmt.Sprintf(`{"heading":"Bike","description":"Red bike","owner_id":%d}`, created.ID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var ad struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ad))

	w = call(r, http.MethodGet, fmt.Sprintf("/advertisement/%d", ad.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Bike", got["heading"])
	assert.Equal(t, "Red bike", got["description"])
	assert.EqualValues(t, created.ID, got["owner_id"])

	w = call(r, http.MethodDelete, fmt.Sprintf("/user/%d", created.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	w = call(r, http.MethodGet, fmt.Sprintf("/advertisement/%d", ad.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBodyLimit(t *testing.T) {
	r, _ := newEngine(t)
	w := call(r, http.MethodPost, "/user",
		`{"name":"alice","password":"`+strings.Repeat("p", 2<<10)+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"request body too large"}`, w.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newEngine(t)
	assert.Equal(t, http.StatusNotFound, call(r, http.MethodGet, "/users", "").Code)
	assert.Equal(t, http.StatusNotFound, call(r, http.MethodPut, "/user/1", `{}`).Code)
}

type stubModule struct {
	name     string
	priority int
	order    *[]string
}

func (m stubModule) MountAPI(*gin.RouterGroup) { *m.order = append(*m.order, m.name) }
func (m stubModule) Priority() int             { return m.priority }

type plainModule struct{ order *[]string }

func (m plainModule) MountAPI(*gin.RouterGroup) { *m.order = append(*m.order, "plain") }

func TestRegistryMountsByPriority(t *testing.T) {
	var order []string
	var reg Registry
	reg.Register(
		plainModule{&order},
		stubModule{"second", 20, &order},
		stubModule{"first", 10, &order},
	)
	reg.MountAPI(gin.New().Group(""))
	assert.Equal(t, []string{"first", "second", "plain"}, order)
}
