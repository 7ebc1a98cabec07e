package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	appErrors "sudooom.mj.advisor/internal/errors"
	"sudooom.mj.advisor/internal/mahjong"
	"sudooom.mj.advisor/internal/model"
	"sudooom.mj.advisor/internal/repository"
	"sudooom.mj.advisor/internal/scoring"
	"sudooom.mj.advisor/internal/snowflake"
)

// 健康检查使用的固定手牌
const (
	SampleRecommendHand = "11223345678m112s"
	SampleWaitsHand     = "1122334567m112s"
	SampleScoreHand     = "112233456789m11s"
)

const recordTimeout = 2 * time.Second

// ResultCache 分析结果缓存
type ResultCache interface {
	Get(ctx context.Context, operation, hand string, dst any) (bool, error)
	Set(ctx context.Context, operation, hand string, value any) error
}

// RecordStore 分析记录存储
type RecordStore interface {
	Create(ctx context.Context, record *model.AnalysisRecord) error
	GetByID(ctx context.Context, id int64) (*model.AnalysisRecord, error)
	ListRecent(ctx context.Context, operation model.Operation, limit int) ([]*model.AnalysisRecord, error)
}

// IDGenerator 记录 ID 生成器
type IDGenerator interface {
	Generate() snowflake.ID
}

// AdvisorService 牌效建议服务
type AdvisorService struct {
	analyzer *mahjong.Analyzer
	cache    ResultCache
	records  RecordStore
	ids      IDGenerator
	scorer   scoring.Scorer
	logger   *slog.Logger
}

// NewAdvisorService 创建牌效建议服务
// cache、records、scorer 可为 nil，对应功能关闭
func NewAdvisorService(analyzer *mahjong.Analyzer, cache ResultCache, records RecordStore, ids IDGenerator, scorer scoring.Scorer) *AdvisorService {
	return &AdvisorService{
		analyzer: analyzer,
		cache:    cache,
		records:  records,
		ids:      ids,
		scorer:   scorer,
		logger:   slog.Default(),
	}
}

// HandRequest 手牌请求
type HandRequest struct {
	Hand string `json:"hand" binding:"required"`
}

// RecommendResponse 推荐打牌结果
type RecommendResponse struct {
	Hand      string       `json:"hand"`
	Recommend mahjong.Tile `json:"recommend"`
}

// AnalyzeResponse 全部候选结果
type AnalyzeResponse struct {
	Hand       string              `json:"hand"`
	Recommend  mahjong.Tile        `json:"recommend"`
	Candidates []mahjong.Candidate `json:"candidates"`
}

// AgarihaiResponse 13 张手牌的听牌结果
type AgarihaiResponse struct {
	Hand     string                  `json:"hand"`
	Shanten  int                     `json:"shanten"`
	IsTenpai bool                    `json:"isTenpai"`
	Total    int                     `json:"total"`
	Agarihai []mahjong.EffectiveTile `json:"agarihai"`
}

// EvaluateResponse 向听评估结果
type EvaluateResponse struct {
	Hand string `json:"hand"`
	mahjong.Evaluation
}

// ScoreRequest 点数计算请求
type ScoreRequest struct {
	Hand            string   `json:"hand" binding:"required"`
	Dora            []string `json:"dora"`
	Extra           string   `json:"extra"`
	Wind            string   `json:"wind"`
	DisableWyakuman bool     `json:"disable_wyakuman"`
	DisableKuitan   bool     `json:"disable_kuitan"`
	DisableAka      bool     `json:"disable_aka"`
	EnableLocalYaku []string `json:"enable_local_yaku"`
	DisableYaku     []string `json:"disable_yaku"`
}

// Recommend 推荐打牌
func (s *AdvisorService) Recommend(ctx context.Context, hand, clientID string) (*RecommendResponse, error) {
	hand = strings.TrimSpace(hand)

	resp := &RecommendResponse{}
	if s.lookup(ctx, model.OperationRecommend, hand, resp) {
		s.record(ctx, model.OperationRecommend, hand, clientID, resp)
		return resp, nil
	}

	tile, err := s.analyzer.Recommend(hand)
	if err != nil {
		return nil, handError(err)
	}

	resp = &RecommendResponse{Hand: hand, Recommend: tile}
	s.store(ctx, model.OperationRecommend, hand, resp)
	s.record(ctx, model.OperationRecommend, hand, clientID, resp)
	return resp, nil
}

// Analyze 评估全部候选打牌
func (s *AdvisorService) Analyze(ctx context.Context, hand, clientID string) (*AnalyzeResponse, error) {
	hand = strings.TrimSpace(hand)

	resp := &AnalyzeResponse{}
	if s.lookup(ctx, model.OperationAnalyze, hand, resp) {
		s.record(ctx, model.OperationAnalyze, hand, clientID, resp)
		return resp, nil
	}

	candidates, err := s.analyzer.Analyze(hand)
	if err != nil {
		return nil, handError(err)
	}

	tile, err := s.analyzer.Recommend(hand)
	if err != nil {
		return nil, handError(err)
	}

	resp = &AnalyzeResponse{Hand: hand, Recommend: tile, Candidates: candidates}
	s.store(ctx, model.OperationAnalyze, hand, resp)
	s.record(ctx, model.OperationAnalyze, hand, clientID, resp)
	return resp, nil
}

// Agarihai 13 张手牌的向听与听牌
func (s *AdvisorService) Agarihai(ctx context.Context, hand, clientID string) (*AgarihaiResponse, error) {
	hand = strings.TrimSpace(hand)

	resp := &AgarihaiResponse{}
	if s.lookup(ctx, model.OperationWaits, hand, resp) {
		s.record(ctx, model.OperationWaits, hand, clientID, resp)
		return resp, nil
	}

	res, err := s.analyzer.Waits(hand)
	if err != nil {
		return nil, handError(err)
	}

	resp = &AgarihaiResponse{
		Hand:     hand,
		Shanten:  res.Shanten,
		IsTenpai: res.Tenpai,
		Total:    res.Total,
		Agarihai: res.Tiles,
	}
	s.store(ctx, model.OperationWaits, hand, resp)
	s.record(ctx, model.OperationWaits, hand, clientID, resp)
	return resp, nil
}

// Evaluate 13 或 14 张手牌的向听评估
func (s *AdvisorService) Evaluate(ctx context.Context, hand, clientID string) (*EvaluateResponse, error) {
	hand = strings.TrimSpace(hand)

	eval, err := s.analyzer.Evaluate(hand)
	if err != nil {
		return nil, handError(err)
	}

	resp := &EvaluateResponse{Hand: hand, Evaluation: eval}
	s.record(ctx, model.OperationEvaluate, hand, clientID, resp)
	return resp, nil
}

// Score 调用外部计算器计算点数
func (s *AdvisorService) Score(ctx context.Context, req *ScoreRequest, clientID string) (*scoring.Response, error) {
	if s.scorer == nil {
		return nil, appErrors.ErrScoringDisabled
	}

	resp, err := s.scorer.Score(ctx, &scoring.Request{
		Hand: strings.TrimSpace(req.Hand),
		Options: scoring.Options{
			Dora:            req.Dora,
			Extra:           req.Extra,
			Wind:            req.Wind,
			DisableWyakuman: req.DisableWyakuman,
			DisableKuitan:   req.DisableKuitan,
			DisableAka:      req.DisableAka,
			EnableLocalYaku: req.EnableLocalYaku,
			DisableYaku:     req.DisableYaku,
		},
	})
	if err != nil {
		if errors.Is(err, scoring.ErrEmptyHand) {
			return nil, appErrors.ErrInvalidParams.WithMessage("hand is required")
		}
		return nil, appErrors.ErrScoringFailed.Wrap(err)
	}
	if !resp.Success {
		if resp.Error != nil && resp.Error.Message != "" {
			return nil, appErrors.ErrScoringFailed.WithMessage(resp.Error.Message)
		}
		return nil, appErrors.ErrScoringFailed
	}

	s.record(ctx, model.OperationScore, req.Hand, clientID, resp)
	return resp, nil
}

// GetRecord 获取分析记录
func (s *AdvisorService) GetRecord(ctx context.Context, id int64) (*model.AnalysisRecord, error) {
	if s.records == nil {
		return nil, appErrors.ErrRecordNotFound
	}
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, appErrors.ErrRecordNotFound
		}
		return nil, appErrors.ErrDBError.Wrap(err)
	}
	return record, nil
}

// ListRecords 最近的分析记录
func (s *AdvisorService) ListRecords(ctx context.Context, operation model.Operation, limit int) ([]*model.AnalysisRecord, error) {
	if s.records == nil {
		return []*model.AnalysisRecord{}, nil
	}
	records, err := s.records.ListRecent(ctx, operation, limit)
	if err != nil {
		return nil, appErrors.ErrDBError.Wrap(err)
	}
	if records == nil {
		records = []*model.AnalysisRecord{}
	}
	return records, nil
}

// CheckRecommend 用固定手牌检查推荐打牌
func (s *AdvisorService) CheckRecommend() error {
	_, err := s.analyzer.Recommend(SampleRecommendHand)
	return err
}

// CheckAgarihai 用固定手牌检查听牌计算
func (s *AdvisorService) CheckAgarihai() error {
	_, err := s.analyzer.Waits(SampleWaitsHand)
	return err
}

// CheckScore 用固定和了形检查外部计算器
func (s *AdvisorService) CheckScore(ctx context.Context) error {
	_, err := s.Score(ctx, &ScoreRequest{Hand: SampleScoreHand}, "")
	return err
}

// lookup 读取缓存，出错时按未命中处理
func (s *AdvisorService) lookup(ctx context.Context, op model.Operation, hand string, dst any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, string(op), hand, dst)
	if err != nil {
		s.logger.Warn("Failed to read result cache", "operation", op, "hand", hand, "error", err)
		return false
	}
	return hit
}

func (s *AdvisorService) store(ctx context.Context, op model.Operation, hand string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, string(op), hand, value); err != nil {
		s.logger.Warn("Failed to write result cache", "operation", op, "hand", hand, "error", err)
	}
}

// record 写入分析记录，失败只记日志
func (s *AdvisorService) record(ctx context.Context, op model.Operation, hand, clientID string, result any) {
	if s.records == nil || s.ids == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("Failed to encode analysis record", "operation", op, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	rec := &model.AnalysisRecord{
		ID:        s.ids.Generate().Int64(),
		Operation: op,
		Hand:      hand,
		ClientID:  clientID,
		Result:    data,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		s.logger.Error("Failed to save analysis record", "operation", op, "id", rec.ID, "error", err)
	}
}

// handError 手牌校验错误转为应用错误码
func handError(err error) error {
	var he *mahjong.HandError
	if !errors.As(err, &he) {
		return appErrors.ErrServerError.Wrap(err)
	}
	switch {
	case errors.Is(err, mahjong.ErrWrongTileCount):
		return appErrors.ErrWrongTileCount.WithMessage(he.Error()).Wrap(err)
	case errors.Is(err, mahjong.ErrInvalidTileKind):
		return appErrors.ErrInvalidTileKind.WithMessage(he.Error()).Wrap(err)
	case errors.Is(err, mahjong.ErrTooManyCopies):
		return appErrors.ErrTooManyCopies.WithMessage(he.Error()).Wrap(err)
	}
	return appErrors.ErrInvalidParams.WithMessage(he.Error()).Wrap(err)
}
