package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinRequestIDMiddleware())
	router.Use(GinCORSMiddleware())
	return router
}

func TestRequestIDGenerated(t *testing.T) {
	router := newTestRouter()
	var seenID string
	router.GET("/ping", func(c *gin.Context) {
		seenID = GetRequestIDFromGin(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	if seenID == "" {
		t.Error("request ID не сгенерирован")
	}
	if w.Header().Get("X-Request-ID") != seenID {
		t.Errorf("заголовок ответа %q не совпадает с ID контекста %q",
			w.Header().Get("X-Request-ID"), seenID)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	router := newTestRouter()
	router.GET("/ping", func(c *gin.Context) {
		// ID доступен и через контекст запроса
		if GetRequestID(c.Request.Context()) != "client-supplied-id" {
			t.Errorf("ID в http контексте = %q", GetRequestID(c.Request.Context()))
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	router.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") != "client-supplied-id" {
		t.Errorf("клиентский request ID не проброшен: %q", w.Header().Get("X-Request-ID"))
	}
}

func TestCORSHeaders(t *testing.T) {
	router := newTestRouter()
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Allow-Origin = %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter()
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight вернул %d, ожидается 204", w.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinRecoveryMiddleware())
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("паника вернула %d, ожидается 500", w.Code)
	}
}
