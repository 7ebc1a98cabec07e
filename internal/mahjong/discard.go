package mahjong

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Priority 打牌优先级，向听与进张相同时优先打出数值高的牌
// 字牌 > 幺九 > 二八 > 三七 > 四五六
func Priority(t Tile) int {
	rank := int(t.Rank)
	switch {
	case t.IsHonor():
		return 1000 + rank
	case rank == 1 || rank == 9:
		return 500 + rank
	case rank == 2 || rank == 8:
		return 250 + rank
	case rank == 3 || rank == 7:
		return 100 + rank
	default:
		return rank
	}
}

// Candidate 一种候选打牌及打出后的牌效
type Candidate struct {
	Discard   Tile            `json:"discard"`
	Shanten   int             `json:"shanten"`
	Ukeire    int             `json:"effective_tiles"`
	Effective []EffectiveTile `json:"effective_tile_types"`
	Priority  int             `json:"priority"`
}

// betterThan 向听更低 > 进张更多 > 优先级更高
func (c Candidate) betterThan(o Candidate) bool {
	if c.Shanten != o.Shanten {
		return c.Shanten < o.Shanten
	}
	if c.Ukeire != o.Ukeire {
		return c.Ukeire > o.Ukeire
	}
	return c.Priority > o.Priority
}

func compareCandidates(a, b Candidate) int {
	return cmp.Or(
		cmp.Compare(a.Shanten, b.Shanten),
		cmp.Compare(b.Ukeire, a.Ukeire),
		cmp.Compare(b.Priority, a.Priority),
	)
}

// Recommend 14 张手牌的推荐打牌
func (a *Analyzer) Recommend(notation string) (Tile, error) {
	h, err := ParseHand(notation, HandSizeDraw)
	if err != nil {
		return Tile{}, err
	}

	order := candidateOrder(h)

	var (
		best  Candidate
		found bool
	)
	if a.workers > 1 {
		for _, cand := range a.evaluateAll(h.Counts, order) {
			if !found || cand.betterThan(best) {
				best, found = cand, true
			}
		}
	} else {
		for _, t := range order {
			rest := h.Counts.With(t, -1)
			s := a.Shanten(rest)
			if found && s > best.Shanten {
				continue
			}
			cand := a.candidateAt(t, rest, s)
			if !found || cand.betterThan(best) {
				best, found = cand, true
			}
		}
	}

	if !found {
		return h.Tiles[0], nil
	}
	return best.Discard, nil
}

// Analyze 评估每种可打出的牌，按推荐顺序排列
// 完全相同的候选保持与 Recommend 一致的先后
func (a *Analyzer) Analyze(notation string) ([]Candidate, error) {
	h, err := ParseHand(notation, HandSizeDraw)
	if err != nil {
		return nil, err
	}

	candidates := a.evaluateAll(h.Counts, candidateOrder(h))
	slices.SortStableFunc(candidates, compareCandidates)
	return candidates, nil
}

// candidateOrder 去重后按手中张数降序，张数相同保持出现顺序
func candidateOrder(h Hand) []Tile {
	order := lo.Uniq(h.Tiles)
	slices.SortStableFunc(order, func(x, y Tile) int {
		return cmp.Compare(h.Counts.Of(y), h.Counts.Of(x))
	})
	return order
}

func (a *Analyzer) candidateAt(t Tile, rest Counts, s int) Candidate {
	u := a.ukeireAt(rest, s)
	return Candidate{
		Discard:   t,
		Shanten:   s,
		Ukeire:    u.Total,
		Effective: u.Tiles,
		Priority:  Priority(t),
	}
}

// evaluateAll 评估全部候选，结果与 tiles 顺序一一对应
func (a *Analyzer) evaluateAll(c Counts, tiles []Tile) []Candidate {
	out := make([]Candidate, len(tiles))
	eval := func(i int) {
		rest := c.With(tiles[i], -1)
		out[i] = a.candidateAt(tiles[i], rest, a.Shanten(rest))
	}

	if a.workers <= 1 {
		for i := range tiles {
			eval(i)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(a.workers)
	for i := range tiles {
		g.Go(func() error {
			eval(i)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
