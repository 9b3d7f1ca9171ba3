package handlers_test

import (
	"FileKeeper/internal/cache"
	"FileKeeper/internal/config"
	"FileKeeper/internal/handlers"
	"FileKeeper/internal/repo"
	"FileKeeper/internal/service"
	"FileKeeper/internal/session"
	"FileKeeper/internal/storage"
	"FileKeeper/internal/thumbnail"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	router http.Handler
	db     *gorm.DB
	cache  *cache.Badger
	queue  *thumbnail.ChannelQueue
}

// newTestEnv собирает сервер целиком: sqlite в памяти, Badger в памяти, диск во временном каталоге.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop().Sugar()
	cfg := &config.Config{MaxUploadMB: 1, SessionTTL: time.Hour}

	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.CloseDB(db) })

	c, err := cache.NewBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	disk := storage.NewDisk(filepath.Join(t.TempDir(), "files"))
	queue := thumbnail.NewChannelQueue(8, logger)

	users := repo.NewUserRepository(db)
	files := repo.NewFileRepository(db, disk)
	sessions := session.NewStore(c, cfg.SessionTTL, logger)

	h := handlers.NewHandler(
		service.NewUserService(users),
		service.NewAuthService(users, sessions, logger),
		service.NewFileService(files, disk, queue, logger),
		service.NewAppService(c, repo.NewHealth(db), users, files, queue),
		logger,
		cfg,
	)
	return &testEnv{router: h.Router, db: db, cache: c, queue: queue}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	case []byte:
		buf.Write(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("X-Token", token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) register(t *testing.T, email, password string) {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/users", map[string]string{"email": email, "password": password}, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

func (e *testEnv) connect(t *testing.T, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/connect", nil)
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(email+":"+password)))
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// login регистрирует пользователя и возвращает токен сессии.
func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	e.register(t, email, password)
	rr := e.connect(t, email, password)
	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// createFile создаёт файл и возвращает его JSON-представление.
func (e *testEnv) createFile(t *testing.T, token string, body map[string]any) map[string]any {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/files", body, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var view map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	return view
}

func decodeMap(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))
	return m
}

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }
