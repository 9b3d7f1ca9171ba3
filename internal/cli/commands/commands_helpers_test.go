package commands

import (
	"FileKeeper/internal/cache"
	"FileKeeper/internal/config"
	"FileKeeper/internal/handlers"
	"FileKeeper/internal/repo"
	"FileKeeper/internal/service"
	"FileKeeper/internal/session"
	"FileKeeper/internal/storage"
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// withTempConfig переопределяет пользовательские каталоги на время теста,
// чтобы артефакты (токен/логин) создавались в temp.
func withTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	return dir
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

// cfgFor направляет клиента на тестовый сервер.
func cfgFor(ts *httptest.Server) *config.Config {
	return &config.Config{BaseURL: strings.TrimPrefix(ts.URL, "http://")}
}

// newServer поднимает настоящий сервер поверх sqlite и Badger в памяти.
func newServer(t *testing.T) *httptest.Server {
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
	users := repo.NewUserRepository(db)
	files := repo.NewFileRepository(db, disk)
	sessions := session.NewStore(c, cfg.SessionTTL, logger)

	h := handlers.NewHandler(
		service.NewUserService(users),
		service.NewAuthService(users, sessions, logger),
		service.NewFileService(files, disk, nil, logger),
		service.NewAppService(c, repo.NewHealth(db), users, files, nil),
		logger,
		cfg,
	)
	ts := httptest.NewServer(h.Router)
	t.Cleanup(ts.Close)
	return ts
}
