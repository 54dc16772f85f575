package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"mentorhub_backend/database"
	"mentorhub_backend/internal/app"
	"mentorhub_backend/internal/config"
	"mentorhub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestServer держит роутер и подключение к тестовой БД.
// Запросы прогоняются через роутер in-process, без сетевого сервера:
// так транзакцию теста можно передать через контекст запроса.
type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

// NewTestServer подключается к тестовой БД и собирает приложение.
// Без TEST_DATABASE_URL тесты пропускаются, а не падают.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set, skipping integration tests")
	}

	os.Setenv("DATABASE_URL", dsn)
	os.Setenv("SERVER_ENV", "test")
	if os.Getenv("JWT_ACCESS_SECRET") == "" {
		os.Setenv("JWT_ACCESS_SECRET", "integration-access-secret")
	}
	if os.Getenv("JWT_REFRESH_SECRET") == "" {
		os.Setenv("JWT_REFRESH_SECRET", "integration-refresh-secret")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Не удалось подключиться к тестовой БД (%s): %v", dsn, err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Не удалось выполнить миграции тестовой БД: %v", err)
	}

	return &TestServer{
		Router: app.SetupRouter(cfg, db),
		DB:     db,
	}
}

func (ts *TestServer) Close() {
	sqlDB, err := ts.DB.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// BeginTransaction открывает транзакцию для изоляции теста
func (ts *TestServer) BeginTransaction(t *testing.T) *gorm.DB {
	t.Helper()
	tx := ts.DB.Begin()
	if tx.Error != nil {
		t.Fatalf("Не удалось открыть транзакцию: %v", tx.Error)
	}
	return tx
}

// RollbackTransaction откатывает транзакцию, убирая все данные теста
func (ts *TestServer) RollbackTransaction(t *testing.T, tx *gorm.DB) {
	t.Helper()
	if err := tx.Rollback().Error; err != nil {
		t.Logf("Откат транзакции: %v", err)
	}
}

// SendRequest прогоняет запрос через роутер. Транзакция теста кладется
// в контекст запроса, DBMiddleware подхватит ее вместо пула.
func (ts *TestServer) SendRequest(t *testing.T, tx *gorm.DB, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if tx != nil {
		ctx := context.WithValue(req.Context(), contextkeys.DBContextKey, tx)
		req = req.WithContext(ctx)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)

	res := w.Result()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}
	res.Body.Close()

	return res, string(resBody)
}
