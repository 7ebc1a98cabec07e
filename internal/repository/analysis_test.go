package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sudooom.mj.advisor/internal/model"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// setupTestDB 连接测试库，不可用时跳过
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("POSTGRES_USER", "postgres"),
		getEnv("POSTGRES_PASSWORD", "password"),
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_DB", "mj_advisor"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Skipf("跳过集成测试: 无法连接数据库: %v", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		t.Skipf("跳过集成测试: 数据库 ping 失败: %v", err)
	}
	t.Cleanup(db.Close)
	return db
}

func TestAnalysisRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnalysisRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.EnsureSchema(ctx))

	id := time.Now().UnixNano()
	t.Cleanup(func() {
		db.Exec(context.Background(), `DELETE FROM analysis_records WHERE id = $1`, id)
	})

	record := &model.AnalysisRecord{
		ID:        id,
		Operation: model.OperationRecommend,
		Hand:      "123456789m1122p1z",
		Result:    json.RawMessage(`{"recommend":"1z"}`),
	}
	require.NoError(t, repo.Create(ctx, record))
	assert.False(t, record.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.OperationRecommend, got.Operation)
	assert.Equal(t, record.Hand, got.Hand)
	assert.JSONEq(t, `{"recommend":"1z"}`, string(got.Result))

	records, err := repo.ListRecent(ctx, model.OperationRecommend, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, records)
}

func TestAnalysisRepository_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnalysisRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.EnsureSchema(ctx))

	_, err := repo.GetByID(ctx, -1)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
