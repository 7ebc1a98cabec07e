package mahjong

// Decompose 枚举手牌的全部拆解方式
// 先取出孤立块，再对剩余部分做穷举搜索
func Decompose(c Counts) []Decomposition {
	var out []Decomposition
	walkHand(c, func(rest Counts, blocks *blockStack) {
		out = append(out, Decomposition{Rest: rest, Blocks: blocks.slice()})
	})
	return out
}

// walkHand 对每一种拆解调用 emit，孤立块位于块栈底部
func walkHand(c Counts, emit func(rest Counts, blocks *blockStack)) {
	rest, isolated := ExtractIsolated(c)
	var stack blockStack
	for _, b := range isolated {
		stack = stack.push(b)
	}
	walk(rest, stack, emit)
}

// walk 以最小的非零牌为轴展开全部分支
// c 与 stack 均为值拷贝，每个分支持有独立副本
func walk(c Counts, stack blockStack, emit func(rest Counts, blocks *blockStack)) {
	pivot, ok := lowestTile(c)
	if !ok {
		emit(c, &stack)
		return
	}

	n := c.Of(pivot)

	if n >= 2 {
		walk(c.With(pivot, -2), stack.push(Block{Kind: BlockPair, Tile: pivot}), emit)
	}

	if n >= 3 {
		walk(c.With(pivot, -3), stack.push(Block{Kind: BlockTriplet, Tile: pivot}), emit)
	}

	next, hasNext := pivot.Offset(1)
	skip, hasSkip := pivot.Offset(2)

	if hasNext && hasSkip && c.Of(next) > 0 && c.Of(skip) > 0 {
		rest := c.With(pivot, -1).With(next, -1).With(skip, -1)
		walk(rest, stack.push(Block{Kind: BlockSequence, Tile: pivot}), emit)
	}

	// 12、89 也走两面分支，不单独生成边张
	if hasNext && c.Of(next) > 0 {
		rest := c.With(pivot, -1).With(next, -1)
		walk(rest, stack.push(Block{Kind: BlockTwoSided, Tile: pivot}), emit)
	}

	if hasSkip && c.Of(skip) > 0 {
		rest := c.With(pivot, -1).With(skip, -1)
		walk(rest, stack.push(Block{Kind: BlockClosed, Tile: pivot}), emit)
	}

	// 浮牌
	walk(c.With(pivot, -1), stack, emit)
}

func lowestTile(c Counts) (Tile, bool) {
	for i, v := range c {
		if v > 0 {
			return TileFromIndex(i), true
		}
	}
	return Tile{}, false
}
