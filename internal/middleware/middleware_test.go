package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-manager/internal/config"
	"github.com/iliyamo/hotel-manager/internal/utils"
)

const secret = "middleware-secret"

func bearer(t *testing.T, userID uint64, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(secret, userID, role, 5)
	if err != nil {
		t.Fatalf("NewAccessToken() error = %v", err)
	}
	return "Bearer " + tok.Token
}

func newProtectedServer(roles ...string) *echo.Echo {
	e := echo.New()
	g := e.Group("/v1", JWTAuth(secret), RequireRole(roles...))
	g.GET("/whoami", func(c echo.Context) error {
		id, ok := UserID(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, echo.Map{"id": id, "role": Role(c)})
	})
	return e
}

func TestJWTAuthAndRole(t *testing.T) {
	e := newProtectedServer("ADMIN", "STAFF")

	tests := []struct {
		name       string
		auth       string
		wantStatus int
		wantBody   string
	}{
		{name: "no header", wantStatus: http.StatusUnauthorized, wantBody: "missing bearer token"},
		{name: "wrong scheme", auth: "Basic Zm9vOmJhcg==", wantStatus: http.StatusUnauthorized},
		{name: "empty bearer", auth: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "bad token", auth: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized, wantBody: "invalid token"},
		{name: "unknown role", auth: bearer(t, 3, "GUEST"), wantStatus: http.StatusForbidden},
		{name: "staff", auth: bearer(t, 3, "STAFF"), wantStatus: http.StatusOK, wantBody: `"id":3`},
		{name: "admin", auth: bearer(t, 9, "ADMIN"), wantStatus: http.StatusOK, wantBody: `"role":"ADMIN"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
			if tt.auth != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.auth)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body)
			}
			if tt.wantBody != "" && !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body %s does not contain %s", rec.Body, tt.wantBody)
			}
		})
	}
}

func TestRequireRoleAdminOnly(t *testing.T) {
	e := newProtectedServer("ADMIN")
	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, bearer(t, 3, "STAFF"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestDisabledRedisMiddlewareIsPassThrough(t *testing.T) {
	e := echo.New()
	calls := 0
	h := func(c echo.Context) error {
		calls++
		return c.String(http.StatusCreated, "done")
	}
	e.POST("/x", h,
		RateLimit(config.RateLimitConfig{Enabled: true}, nil),
		ResponseCache(config.CacheConfig{Enabled: true}, nil, "tariffs"),
		InvalidateOnWrite(config.CacheConfig{Enabled: true}, nil, "dashboard"),
	)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))
	if rec.Code != http.StatusCreated || calls != 1 {
		t.Errorf("status = %d, calls = %d", rec.Code, calls)
	}
	if rec.Header().Get("X-Cache") != "" || rec.Header().Get("X-RateLimit-Limit") != "" {
		t.Error("disabled middleware touched the response")
	}
}

func TestRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/rooms")

	tests := []struct {
		strategy string
		user     uint64
		want     string
	}{
		{strategy: "ip", want: "rl:ip:10.0.0.7"},
		{strategy: "user", user: 12, want: "rl:user:12"},
		{strategy: "user", want: "rl:user:anon"},
		{strategy: "route", want: "rl:route:GET /v1/rooms"},
		{strategy: "ip_user_route", user: 12, want: "rl:ip:10.0.0.7:user:12:route:GET /v1/rooms"},
	}
	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			c.Set(ctxUserID, nil)
			if tt.user != 0 {
				c.Set(ctxUserID, tt.user)
			}
			got := rateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: tt.strategy}, c)
			if got != tt.want {
				t.Errorf("rateKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	for ms, want := range map[int64]int{-5: 0, 0: 0, 1: 1, 999: 1, 1000: 1, 1001: 2} {
		if got := retryAfterSeconds(ms); got != want {
			t.Errorf("retryAfterSeconds(%d) = %d, want %d", ms, got, want)
		}
	}
}

func TestCacheKey(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "hotel:cache"}
	get := func(target string) *http.Request { return httptest.NewRequest(http.MethodGet, target, nil) }

	a := cacheKey(cfg, "tariffs", get("/v1/tariffs/1"))
	b := cacheKey(cfg, "tariffs", get("/v1/tariffs/2"))
	q := cacheKey(cfg, "tariffs", get("/v1/tariffs/1?x=1"))

	if a == b {
		t.Error("different ids share a cache key")
	}
	if a == q {
		t.Error("query string ignored by default strategy")
	}
	if a != cacheKey(cfg, "tariffs", get("/v1/tariffs/1")) {
		t.Error("cache key is not stable")
	}
	if !strings.HasPrefix(a, "hotel:cache:tariffs:") {
		t.Errorf("key %q lacks namespace prefix", a)
	}

	cfg.KeyStrategy = "route"
	if cacheKey(cfg, "tariffs", get("/v1/tariffs/1")) != cacheKey(cfg, "tariffs", get("/v1/tariffs/1?x=1")) {
		t.Error("route strategy should ignore the query")
	}
}

func TestBodyRecorderOverflow(t *testing.T) {
	rec := &bodyRecorder{ResponseWriter: httptest.NewRecorder(), limit: 4}
	rec.Write([]byte("abc"))
	if rec.overflow || rec.buf.String() != "abc" {
		t.Fatalf("buf = %q overflow = %v", rec.buf.String(), rec.overflow)
	}
	rec.Write([]byte("de"))
	if !rec.overflow || rec.buf.Len() != 0 {
		t.Errorf("buf = %q overflow = %v, want dropped", rec.buf.String(), rec.overflow)
	}
}

func TestAccessLogKeepsStatus(t *testing.T) {
	e := echo.New()
	e.Use(AccessLog())
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
}
