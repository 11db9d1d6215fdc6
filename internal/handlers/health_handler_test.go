package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"transactions-dashboard/internal/database"
	"transactions-dashboard/internal/repositories"
	"transactions-dashboard/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHealth(t *testing.T, handler *HealthCheckHandler) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	require.NoError(t, handler.HealthCheck(c))
	return rec
}

func TestHealthCheck_Healthy(t *testing.T) {
	db := database.SetupTestDB(t)
	require.NoError(t, db.SeedSampleTransactions())

	handler := NewHealthCheckHandler(db.DB, repositories.NewTransactionRepository(db.DB))
	handler.now = func() time.Time { return time.Date(2022, 2, 28, 10, 0, 0, 0, time.UTC) }

	rec := serveHealth(t, handler)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","transactions":2,"time":"2022-02-28T10:00:00Z"}`, rec.Body.String())
}

func TestHealthCheck_DatabaseClosed(t *testing.T) {
	db := database.SetupTestDB(t)
	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	handler := NewHealthCheckHandler(db.DB, repositories.NewTransactionRepository(db.DB))

	rec := serveHealth(t, handler)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "SYSTEM_003")
}

func TestHealthCheck_CountFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository_mocks.NewMockTransactionRepositoryInterface(ctrl)
	repo.EXPECT().Count(gomock.Any()).Return(int64(0), errors.New("no such table: transactions"))

	db := database.SetupTestDB(t)
	rec := serveHealth(t, NewHealthCheckHandler(db.DB, repo))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Transactions table is not readable")
	assert.NotContains(t, rec.Body.String(), "no such table")
}
