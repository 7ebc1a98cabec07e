package mahjong

import (
	"log/slog"
	"sync"
)

const (
	// HandSizeDraw 摸牌后待打出的张数
	HandSizeDraw = 14
	// HandSizeWait 打牌后等待摸牌的张数
	HandSizeWait = 13

	defaultCacheLimit = 1 << 16
)

// Analyzer 牌效分析器
// 向听数结果按手牌缓存，可并发使用
type Analyzer struct {
	workers    int
	cacheLimit int
	logger     *slog.Logger

	mu   sync.RWMutex
	memo map[Counts]int8
}

// Option 分析器选项
type Option func(*Analyzer)

// WithWorkers 并行评估候选打牌的协程数，<=1 时顺序执行
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		a.workers = n
	}
}

// WithCacheLimit 向听缓存上限，<=0 关闭缓存
func WithCacheLimit(n int) Option {
	return func(a *Analyzer) {
		a.cacheLimit = n
	}
}

// WithLogger 设置日志
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// NewAnalyzer 创建分析器
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		workers:    1,
		cacheLimit: defaultCacheLimit,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.cacheLimit > 0 {
		a.memo = make(map[Counts]int8)
	}
	return a
}

// Shanten 手牌的最小向听数
func (a *Analyzer) Shanten(c Counts) int {
	if a.memo == nil {
		return computeShanten(c)
	}

	a.mu.RLock()
	v, ok := a.memo[c]
	a.mu.RUnlock()
	if ok {
		return int(v)
	}

	s := computeShanten(c)

	a.mu.Lock()
	if len(a.memo) >= a.cacheLimit {
		a.logger.Debug("Shanten cache full, resetting", "entries", len(a.memo))
		clear(a.memo)
	}
	a.memo[c] = int8(s)
	a.mu.Unlock()

	return s
}

// CacheSize 当前缓存条目数
func (a *Analyzer) CacheSize() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.memo)
}

// EffectiveTile 有效牌及剩余张数
type EffectiveTile struct {
	Tile  Tile `json:"tile"`
	Count int  `json:"count"`
}

// Ukeire 进张统计
type Ukeire struct {
	Shanten int             `json:"shanten"`
	Total   int             `json:"total"`
	Tiles   []EffectiveTile `json:"tiles"`
}

// Ukeire 计算摸到后能使向听数下降的牌
func (a *Analyzer) Ukeire(c Counts) Ukeire {
	return a.ukeireAt(c, a.Shanten(c))
}

// ukeireAt 已知当前向听数 s 时计算进张
// 剩余张数按 4 减去手中张数计，不考虑场上已见的牌
func (a *Analyzer) ukeireAt(c Counts, s int) Ukeire {
	u := Ukeire{Shanten: s, Tiles: []EffectiveTile{}}
	// 已和了的 14 张再摸牌没有意义
	if s <= ShantenComplete {
		return u
	}
	for i, n := range c {
		if n >= 4 {
			continue
		}
		t := TileFromIndex(i)
		if a.Shanten(c.With(t, 1)) < s {
			remaining := 4 - int(n)
			u.Total += remaining
			u.Tiles = append(u.Tiles, EffectiveTile{Tile: t, Count: remaining})
		}
	}
	return u
}

// WaitResult 13 张手牌的向听与听牌
type WaitResult struct {
	Shanten int             `json:"shanten"`
	Tenpai  bool            `json:"is_tenpai"`
	Total   int             `json:"total"`
	Tiles   []EffectiveTile `json:"tiles"`
}

// Waits 13 张手牌的向听数，听牌时给出待牌
func (a *Analyzer) Waits(notation string) (WaitResult, error) {
	h, err := ParseHand(notation, HandSizeWait)
	if err != nil {
		return WaitResult{}, err
	}

	s := a.Shanten(h.Counts)
	res := WaitResult{Shanten: s, Tenpai: s == 0, Tiles: []EffectiveTile{}}
	if s == 0 {
		u := a.ukeireAt(h.Counts, s)
		res.Total = u.Total
		res.Tiles = u.Tiles
	}
	return res, nil
}

// Evaluation 13 或 14 张手牌的向听评估
type Evaluation struct {
	TileCount      int             `json:"tile_count"`
	Shanten        int             `json:"shanten"`
	IsComplete     bool            `json:"is_complete"`
	Decompositions []Decomposition `json:"decompositions"`
}

// Evaluate 求最小向听数及达到该值的全部拆解
// 和了形返回 ShantenComplete 并置 IsComplete
func (a *Analyzer) Evaluate(notation string) (Evaluation, error) {
	h, err := ParseHand(notation, HandSizeWait, HandSizeDraw)
	if err != nil {
		return Evaluation{}, err
	}

	s, decomps := MinShanten(h.Counts)
	return Evaluation{
		TileCount:      len(h.Tiles),
		Shanten:        s,
		IsComplete:     s == ShantenComplete,
		Decompositions: decomps,
	}, nil
}
