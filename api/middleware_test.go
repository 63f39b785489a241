package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func middlewareRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/ping", handler)
	return router
}

func TestRequestIDMiddlewareGeneratesID(t *testing.T) {
	router := middlewareRouter(func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRequestIDMiddlewareHonorsCallerID(t *testing.T) {
	router := middlewareRouter(func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, "req-42", rec.Header().Get(requestIDHeader))
}

func TestRequestIDMiddlewareBindsContextLogger(t *testing.T) {
	var seen *zerolog.Logger
	router := middlewareRouter(func(c *gin.Context) {
		seen = zerolog.Ctx(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-42")
	router.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	require.NotEqual(t, zerolog.Disabled, seen.GetLevel())
}

func TestCORSMiddlewareShortCircuitsPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/ping", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
