package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "sudooom.mj.advisor/internal/errors"
	"sudooom.mj.advisor/internal/mahjong"
	"sudooom.mj.advisor/internal/model"
	"sudooom.mj.advisor/internal/repository"
	"sudooom.mj.advisor/internal/scoring"
	"sudooom.mj.advisor/internal/snowflake"
)

// memCache 内存结果缓存
type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	hits    int
	failGet bool
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, operation, hand string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return false, errors.New("connection refused")
	}
	data, ok := c.data[operation+":"+hand]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(data, dst)
}

func (c *memCache) Set(_ context.Context, operation, hand string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data[operation+":"+hand] = data
	c.mu.Unlock()
	return nil
}

// memStore 内存记录存储
type memStore struct {
	mu      sync.Mutex
	records []*model.AnalysisRecord
	failAll bool
}

func (s *memStore) Create(_ context.Context, record *model.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return errors.New("database is down")
	}
	s.records = append(s.records, record)
	return nil
}

func (s *memStore) GetByID(_ context.Context, id int64) (*model.AnalysisRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return nil, errors.New("database is down")
	}
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, repository.ErrRecordNotFound
}

func (s *memStore) ListRecent(_ context.Context, operation model.Operation, limit int) ([]*model.AnalysisRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.AnalysisRecord
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		if operation == "" || s.records[i].Operation == operation {
			out = append(out, s.records[i])
		}
	}
	return out, nil
}

type stubScorer struct {
	resp *scoring.Response
	err  error
	req  *scoring.Request
}

func (s *stubScorer) Score(_ context.Context, req *scoring.Request) (*scoring.Response, error) {
	s.req = req
	return s.resp, s.err
}

func newTestService(t *testing.T, cache ResultCache, records RecordStore, scorer scoring.Scorer) *AdvisorService {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return NewAdvisorService(mahjong.NewAnalyzer(), cache, records, node, scorer)
}

func TestAdvisorService_Recommend(t *testing.T) {
	cache := newMemCache()
	store := &memStore{}
	svc := newTestService(t, cache, store, nil)
	ctx := context.Background()

	resp, err := svc.Recommend(ctx, " 123456789m1122p1z ", "client-1")
	require.NoError(t, err)
	assert.Equal(t, "123456789m1122p1z", resp.Hand)
	assert.Equal(t, "1z", resp.Recommend.String())

	// 第二次命中缓存，结果相同
	again, err := svc.Recommend(ctx, "123456789m1122p1z", "client-1")
	require.NoError(t, err)
	assert.Equal(t, resp, again)
	assert.Equal(t, 1, cache.hits)

	require.Len(t, store.records, 2)
	rec := store.records[0]
	assert.Equal(t, model.OperationRecommend, rec.Operation)
	assert.Equal(t, "client-1", rec.ClientID)
	assert.NotZero(t, rec.ID)
	assert.JSONEq(t, `{"hand":"123456789m1122p1z","recommend":"1z"}`, string(rec.Result))
}

func TestAdvisorService_Analyze(t *testing.T) {
	svc := newTestService(t, newMemCache(), nil, nil)

	resp, err := svc.Analyze(context.Background(), "123456789m111p5s9s", "")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Candidates)
	assert.Equal(t, "9s", resp.Recommend.String())
	assert.Equal(t, resp.Recommend, resp.Candidates[0].Discard)

	// 缓存反序列化后保持一致
	cached, err := svc.Analyze(context.Background(), "123456789m111p5s9s", "")
	require.NoError(t, err)
	assert.Equal(t, resp, cached)
}

func TestAdvisorService_Agarihai(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	resp, err := svc.Agarihai(context.Background(), "123456789m1122p", "")
	require.NoError(t, err)
	assert.True(t, resp.IsTenpai)
	assert.Equal(t, 0, resp.Shanten)
	assert.Equal(t, 4, resp.Total)
	require.Len(t, resp.Agarihai, 2)

	resp, err = svc.Agarihai(context.Background(), "1122334567m112s", "")
	require.NoError(t, err)
	assert.False(t, resp.IsTenpai)
	assert.Equal(t, 1, resp.Shanten)
	assert.Empty(t, resp.Agarihai)
}

func TestAdvisorService_Evaluate(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	resp, err := svc.Evaluate(context.Background(), SampleScoreHand, "")
	require.NoError(t, err)
	assert.True(t, resp.IsComplete)
	assert.Equal(t, mahjong.ShantenComplete, resp.Shanten)
	assert.Equal(t, 14, resp.TileCount)
}

func TestAdvisorService_HandErrors(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		hand string
		want *appErrors.AppError
	}{
		{"garbage", "hello", appErrors.ErrWrongTileCount},
		{"too short", "123m", appErrors.ErrWrongTileCount},
		{"invalid kind", "123456789m1122p8z", appErrors.ErrInvalidTileKind},
		{"five copies", "11111m23456789p1z", appErrors.ErrTooManyCopies},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Recommend(ctx, tt.hand, "")
			require.Error(t, err)
			assert.True(t, appErrors.Is(err, tt.want), "got %v", err)
			assert.True(t, errors.Is(err, mahjong.ErrWrongTileCount) ||
				errors.Is(err, mahjong.ErrInvalidTileKind) ||
				errors.Is(err, mahjong.ErrTooManyCopies))
		})
	}
}

func TestAdvisorService_CacheFailureFallsThrough(t *testing.T) {
	cache := newMemCache()
	cache.failGet = true
	store := &memStore{failAll: true}
	svc := newTestService(t, cache, store, nil)

	// 缓存与存储故障不影响分析结果
	resp, err := svc.Recommend(context.Background(), "123456789m1122p1z", "")
	require.NoError(t, err)
	assert.Equal(t, "1z", resp.Recommend.String())
}

func TestAdvisorService_Score(t *testing.T) {
	ctx := context.Background()

	_, err := newTestService(t, nil, nil, nil).Score(ctx, &ScoreRequest{Hand: SampleScoreHand}, "")
	assert.True(t, appErrors.Is(err, appErrors.ErrScoringDisabled))

	scorer := &stubScorer{resp: &scoring.Response{
		Success: true,
		Result:  &scoring.Result{IsAgari: true, Han: 2, Fu: 30, Ten: 2000},
	}}
	store := &memStore{}
	svc := newTestService(t, nil, store, scorer)

	resp, err := svc.Score(ctx, &ScoreRequest{Hand: SampleScoreHand, Dora: []string{"1m"}, Wind: "1z"}, "c")
	require.NoError(t, err)
	assert.Equal(t, 2000, resp.Result.Ten)
	assert.Equal(t, SampleScoreHand, scorer.req.Hand)
	assert.Equal(t, []string{"1m"}, scorer.req.Options.Dora)
	assert.Equal(t, "1z", scorer.req.Options.Wind)
	require.Len(t, store.records, 1)
	assert.Equal(t, model.OperationScore, store.records[0].Operation)

	scorer.resp = &scoring.Response{Success: false, Error: &scoring.Failure{Message: "not agari"}}
	_, err = svc.Score(ctx, &ScoreRequest{Hand: "123m"}, "")
	assert.True(t, appErrors.Is(err, appErrors.ErrScoringFailed))
	assert.Equal(t, "not agari", appErrors.GetMessage(err))

	scorer.resp, scorer.err = nil, scoring.ErrCommandFailed
	_, err = svc.Score(ctx, &ScoreRequest{Hand: "123m"}, "")
	assert.True(t, appErrors.Is(err, appErrors.ErrScoringFailed))
	assert.ErrorIs(t, err, scoring.ErrCommandFailed)

	scorer.err = scoring.ErrEmptyHand
	_, err = svc.Score(ctx, &ScoreRequest{}, "")
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidParams))
}

func TestAdvisorService_Records(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	svc := newTestService(t, nil, store, nil)

	_, err := svc.Recommend(ctx, "123456789m1122p1z", "")
	require.NoError(t, err)
	_, err = svc.Agarihai(ctx, "123456789m1122p", "")
	require.NoError(t, err)

	all, err := svc.ListRecords(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	waits, err := svc.ListRecords(ctx, model.OperationWaits, 10)
	require.NoError(t, err)
	require.Len(t, waits, 1)

	got, err := svc.GetRecord(ctx, waits[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "123456789m1122p", got.Hand)

	_, err = svc.GetRecord(ctx, 42)
	assert.True(t, appErrors.Is(err, appErrors.ErrRecordNotFound))

	store.failAll = true
	_, err = svc.GetRecord(ctx, 42)
	assert.True(t, appErrors.Is(err, appErrors.ErrDBError))
}

func TestAdvisorService_RecordsDisabled(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	list, err := svc.ListRecords(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.GetRecord(context.Background(), 1)
	assert.True(t, appErrors.Is(err, appErrors.ErrRecordNotFound))
}

func TestAdvisorService_Checks(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)
	assert.NoError(t, svc.CheckRecommend())
	assert.NoError(t, svc.CheckAgarihai())
	assert.True(t, appErrors.Is(svc.CheckScore(context.Background()), appErrors.ErrScoringDisabled))
}
