package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
	assert.Empty(t, r.pages)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup_PagesAtRootAPIUnderVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	pages := NewDomainGroup("materials", "")
	pages.GET("/materials-page", func(c *gin.Context) { c.String(http.StatusOK, "page") })
	api := NewDomainGroup("materials", "/materials")
	api.GET("", func(c *gin.Context) { c.String(http.StatusOK, "api") })

	r.RegisterPages(pages).Register(api).Setup()

	w := serve(engine, http.MethodGet, "/materials-page")
	assert.Equal(t, "page", w.Body.String())
	w = serve(engine, http.MethodGet, "/api/v1/materials")
	assert.Equal(t, "api", w.Body.String())
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/materials-page").Code)
}

func TestRouterUse_OnlyWrapsAPI(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine).Use(func(c *gin.Context) {
		c.Header("X-API", "1")
		c.Next()
	})

	page := NewDomainGroup("home", "")
	page.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	api := NewDomainGroup("dashboard", "/dashboard")
	api.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.RegisterPages(page).Register(api).Setup()

	assert.Empty(t, serve(engine, http.MethodGet, "/").Header().Get("X-API"))
	assert.Equal(t, "1", serve(engine, http.MethodGet, "/api/v1/dashboard").Header().Get("X-API"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("tasks", "/tasks")
		assert.Equal(t, "tasks", g.Name())
		assert.Equal(t, "/tasks", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("tasks", "/tasks")
		g.GET("/:id", func(c *gin.Context) { c.String(http.StatusOK, "get "+c.Param("id")) }).
			POST("", func(c *gin.Context) { c.Status(http.StatusCreated) }).
			PUT("/:id", func(c *gin.Context) { c.Status(http.StatusOK) }).
			DELETE("/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/tasks/7")
		assert.Equal(t, "get 7", w.Body.String())
		assert.Equal(t, http.StatusCreated, serve(engine, http.MethodPost, "/api/v1/tasks").Code)
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodPut, "/api/v1/tasks/7").Code)
		assert.Equal(t, http.StatusNoContent, serve(engine, http.MethodDelete, "/api/v1/tasks/7").Code)
	})

	t.Run("group middleware runs before the handler", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("reports", "/reports").Use(func(c *gin.Context) {
			c.AbortWithStatus(http.StatusForbidden)
		})
		g.GET("/costs", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.RegisterRoutes(&engine.RouterGroup)

		assert.Equal(t, http.StatusForbidden, serve(engine, http.MethodGet, "/reports/costs").Code)
	})

	t.Run("subgroups nest their prefix", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("materials", "/materials")
		g.Group("transactions", "/transactions").GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "ledger")
		})
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/materials/transactions")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ledger", w.Body.String())
	})
}
