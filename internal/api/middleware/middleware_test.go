package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("缺失请求 ID 时应自动生成并写入响应头")
	}
}

func TestRequestID_KeepsValidExternalID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "gateway-abc_123")
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "gateway-abc_123" {
		t.Errorf("合法外部 ID 应原样透传，实际: %s", got)
	}
}

func TestRequestID_RejectsInjectableID(t *testing.T) {
	cases := []struct {
		name string
		rid  string
	}{
		{"含空格", "abc def"},
		{"含换行", "abc\ndef"},
		{"超长", strings.Repeat("a", requestIDMaxLen+1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RequestID())
			r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("X-Request-ID", tc.rid)
			r.ServeHTTP(w, req)

			if got := w.Header().Get("X-Request-ID"); got == tc.rid || got == "" {
				t.Errorf("不合规 ID 应被替换为新生成的 UUID，实际: %q", got)
			}
		})
	}
}

func TestCORS_ExposesDownloadHeaders(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://exam.example.com"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://exam.example.com")
	r.ServeHTTP(w, req)

	exposed := w.Header().Get("Access-Control-Expose-Headers")
	if !strings.Contains(exposed, "Content-Disposition") {
		t.Errorf("导出接口依赖前端可读 Content-Disposition，实际暴露: %s", exposed)
	}
}

func TestCORS_UnknownOriginGetsNoHeaders(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://exam.example.com"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	r.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("未在白名单内的来源不应获得 CORS 头")
	}
}

func TestSecurityHeaders_NoStore(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("含个人信息的响应应禁止缓存，实际 Cache-Control: %s", got)
	}
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("X-Frame-Options 应为 DENY")
	}
}

func TestBodyLimit_RejectsOversizedBody(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(16))
	r.POST("/upload", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			_ = c.Error(err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(strings.Repeat("x", 64)))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("超限请求体期望 413，实际: %d", w.Code)
	}
}

func TestBodyLimit_AllowsSmallBody(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(1 << 10))
	r.POST("/upload", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			_ = c.Error(err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("ok"))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("正常请求体期望 200，实际: %d", w.Code)
	}
}
