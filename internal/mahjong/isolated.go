package mahjong

// isolationRadius 判断孤立时向两侧检查的点数范围
const isolationRadius = 2

// ExtractIsolated 预先取出孤立的刻子和顺子
// 孤立块不可能参与更优的组合，取出后完整搜索只需处理剩余部分
func ExtractIsolated(c Counts) (Counts, []Block) {
	var blocks []Block

	for s := SuitMan; s < SuitHonor; s++ {
		for r := 1; r <= 9; r++ {
			t := Tile{Suit: s, Rank: uint8(r)}

			if c.Of(t) >= 3 && !hasNeighbors(c, t, r, r) {
				c = c.With(t, -3)
				blocks = append(blocks, Block{Kind: BlockTriplet, Tile: t})
			}

			if r <= 7 && isSingleRun(c, t) && !hasNeighbors(c, t, r, r+2) {
				for k := 0; k < 3; k++ {
					n, _ := t.Offset(k)
					c = c.With(n, -1)
				}
				blocks = append(blocks, Block{Kind: BlockSequence, Tile: t})
			}
		}
	}

	// 字牌没有顺子，也没有相邻牌
	for r := 1; r <= SuitHonor.Size(); r++ {
		t := Tile{Suit: SuitHonor, Rank: uint8(r)}
		if c.Of(t) >= 3 {
			c = c.With(t, -3)
			blocks = append(blocks, Block{Kind: BlockTriplet, Tile: t})
		}
	}

	return c, blocks
}

// hasNeighbors 同花色 [lo-2, hi+2] 内、[lo, hi] 之外是否有牌
func hasNeighbors(c Counts, t Tile, lo, hi int) bool {
	for r := max(1, lo-isolationRadius); r <= min(9, hi+isolationRadius); r++ {
		if r >= lo && r <= hi {
			continue
		}
		if c.Of(Tile{Suit: t.Suit, Rank: uint8(r)}) > 0 {
			return true
		}
	}
	return false
}

// isSingleRun t 起连续三种牌是否各恰好一张
func isSingleRun(c Counts, t Tile) bool {
	for k := 0; k < 3; k++ {
		n, ok := t.Offset(k)
		if !ok || c.Of(n) != 1 {
			return false
		}
	}
	return true
}
