package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sudooom.mj.advisor/internal/model"
)

var ErrRecordNotFound = errors.New("analysis record not found")

// Schema 分析记录表结构
const Schema = `
	CREATE TABLE IF NOT EXISTS analysis_records (
		id         BIGINT PRIMARY KEY,
		operation  VARCHAR(16) NOT NULL,
		hand       TEXT NOT NULL,
		client_id  VARCHAR(64) NOT NULL DEFAULT '',
		result     JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_analysis_records_created_at ON analysis_records (created_at DESC);
`

// maxListLimit 单次查询上限
const maxListLimit = 100

// AnalysisRepository 分析记录数据访问
type AnalysisRepository struct {
	db *pgxpool.Pool
}

// NewAnalysisRepository 创建分析记录仓库
func NewAnalysisRepository(db *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// EnsureSchema 建表
func (r *AnalysisRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, Schema)
	return err
}

// Create 写入分析记录，ID 由调用方生成
func (r *AnalysisRepository) Create(ctx context.Context, record *model.AnalysisRecord) error {
	query := `
		INSERT INTO analysis_records (id, operation, hand, client_id, result)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, query,
		record.ID,
		record.Operation,
		record.Hand,
		record.ClientID,
		[]byte(record.Result),
	).Scan(&record.CreatedAt)
}

// GetByID 通过 ID 获取记录
func (r *AnalysisRepository) GetByID(ctx context.Context, id int64) (*model.AnalysisRecord, error) {
	query := `
		SELECT id, operation, hand, client_id, result, created_at
		FROM analysis_records WHERE id = $1
	`
	record := &model.AnalysisRecord{}
	var result []byte
	err := r.db.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.Operation,
		&record.Hand,
		&record.ClientID,
		&result,
		&record.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	record.Result = result
	return record, nil
}

// ListRecent 最近的记录，operation 为空时不过滤
func (r *AnalysisRepository) ListRecent(ctx context.Context, operation model.Operation, limit int) ([]*model.AnalysisRecord, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	query := `
		SELECT id, operation, hand, client_id, result, created_at
		FROM analysis_records
		WHERE ($1::text = '' OR operation = $1::text)
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, string(operation), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*model.AnalysisRecord
	for rows.Next() {
		record := &model.AnalysisRecord{}
		var result []byte
		if err := rows.Scan(
			&record.ID,
			&record.Operation,
			&record.Hand,
			&record.ClientID,
			&result,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		record.Result = result
		records = append(records, record)
	}
	return records, rows.Err()
}
