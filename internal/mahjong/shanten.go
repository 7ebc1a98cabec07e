package mahjong

// 一般形和了需要 4 组面子加 1 个雀头
const (
	groupsNeeded = 4
	maxShanten   = 8
)

// ShantenComplete 和了形的向听数
const ShantenComplete = -1

// EvaluateBlocks 由一种拆解计算向听数
// fixedMelds 为手牌外已确定的面子数，门清时为 0
func EvaluateBlocks(blocks []Block, fixedMelds int) int {
	var complete, partial, pairs int
	for _, b := range blocks {
		switch b.Kind {
		case BlockTriplet, BlockSequence:
			complete++
		case BlockPair:
			pairs++
			partial++
		case BlockTwoSided, BlockClosed, BlockEdge:
			partial++
		}
	}
	return shantenFormula(complete+fixedMelds, partial, pairs)
}

// shantenFormula 8 - 2×面子 - 有效搭子 - 雀头修正
// 面子与搭子合计超过 4 时多余搭子作废，此时有对子可作雀头
func shantenFormula(complete, partial, pairs int) int {
	hasPairBonus := false
	if complete+partial > groupsNeeded {
		partial = max(0, groupsNeeded-complete)
		hasPairBonus = pairs > 0
	}

	shanten := maxShanten - 2*complete - partial
	if hasPairBonus {
		shanten--
	}
	return shanten
}

func stackShanten(s *blockStack) int {
	var complete, partial, pairs int
	for i := 0; i < s.n; i++ {
		switch s.blocks[i].Kind {
		case BlockTriplet, BlockSequence:
			complete++
		case BlockPair:
			pairs++
			partial++
		default:
			partial++
		}
	}
	return shantenFormula(complete, partial, pairs)
}

// MinShanten 返回最小向听数以及达到该值的全部拆解
func MinShanten(c Counts) (int, []Decomposition) {
	best := maxShanten + 1
	var kept []Decomposition
	walkHand(c, func(rest Counts, blocks *blockStack) {
		s := stackShanten(blocks)
		switch {
		case s < best:
			best = s
			kept = append(kept[:0], Decomposition{Rest: rest, Blocks: blocks.slice()})
		case s == best:
			kept = append(kept, Decomposition{Rest: rest, Blocks: blocks.slice()})
		}
	})
	return best, kept
}

// computeShanten 只求最小值，不保留拆解
func computeShanten(c Counts) int {
	best := maxShanten
	walkHand(c, func(_ Counts, blocks *blockStack) {
		if s := stackShanten(blocks); s < best {
			best = s
		}
	})
	return best
}
