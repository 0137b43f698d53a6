package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/fashion_api/internal/db"
	"github.com/Skotchmaster/fashion_api/internal/hash"
	"github.com/Skotchmaster/fashion_api/internal/logging"
	"github.com/Skotchmaster/fashion_api/internal/metrics"
	"github.com/Skotchmaster/fashion_api/internal/mykafka"
	"github.com/Skotchmaster/fashion_api/internal/repo"
	"github.com/Skotchmaster/fashion_api/internal/service"
	"github.com/Skotchmaster/fashion_api/internal/tokens"
)

type testEnv struct {
	t     *testing.T
	e     *echo.Echo
	codec *tokens.Codec
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	hash.Cost = bcrypt.MinCost
	ctx := context.Background()

	gdb, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx, gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := repo.New(gdb)
	codec := tokens.NewCodec([]byte("test-secret"), time.Hour)
	events := mykafka.Nop{}

	e := New(&Deps{
		ServiceName:    "api-fashion",
		Logger:         logging.NewWithWriter("error", io.Discard),
		Metrics:        metrics.New(),
		Tokens:         codec,
		AuthHandler:    &AuthHTTP{Svc: &service.AuthService{Repo: r, Tokens: codec, Events: events}},
		CatalogHandler: &CatalogHTTP{Svc: &service.CatalogService{Repo: r, Events: events}},
		Ready: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})

	return &testEnv{t: t, e: e, codec: codec}
}

// do sends body verbatim when it is a string, JSON-encoded otherwise.
func (env *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(env.t, err)
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) register(path, username, password string) {
	env.t.Helper()
	rec := env.do(http.MethodPost, path, map[string]string{"username": username, "password": password}, "")
	require.Equal(env.t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (env *testEnv) login(username, password string) string {
	env.t.Helper()
	rec := env.do(http.MethodPost, "/auth/login", map[string]string{"username": username, "password": password}, "")
	require.Equal(env.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	require.NoError(env.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(env.t, resp.Token)
	return resp.Token
}

func (env *testEnv) adminToken() string {
	env.register("/auth/register-admin", "admin", "admin-pass")
	return env.login("admin", "admin-pass")
}

func (env *testEnv) userToken() string {
	env.register("/auth/register", "shopper", "shopper-pass")
	return env.login("shopper", "shopper-pass")
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp.Error
}
