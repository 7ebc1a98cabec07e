package mahjong

import "strings"

// BlockKind 面子/搭子类型
type BlockKind uint8

const (
	BlockTriplet  BlockKind = iota + 1 // 刻子
	BlockSequence                      // 顺子
	BlockPair                          // 对子
	BlockTwoSided                      // 两面搭子
	BlockClosed                        // 嵌张搭子
	BlockEdge                          // 边张搭子，搜索不会生成，仅参与计数
)

var blockKindNames = map[BlockKind]string{
	BlockTriplet:  "triplet",
	BlockSequence: "sequence",
	BlockPair:     "pair",
	BlockTwoSided: "two_sided",
	BlockClosed:   "closed",
	BlockEdge:     "edge",
}

func (k BlockKind) String() string {
	if name, ok := blockKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText 序列化为名称
func (k BlockKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsComplete 是否完整面子
func (k BlockKind) IsComplete() bool {
	return k == BlockTriplet || k == BlockSequence
}

// Block 从手牌中取出的一组牌，Tile 为最小的那张
type Block struct {
	Kind BlockKind `json:"kind"`
	Tile Tile      `json:"tile"`
}

// Tiles 展开为具体的牌
func (b Block) Tiles() []Tile {
	switch b.Kind {
	case BlockTriplet:
		return []Tile{b.Tile, b.Tile, b.Tile}
	case BlockPair:
		return []Tile{b.Tile, b.Tile}
	case BlockSequence:
		second, _ := b.Tile.Offset(1)
		third, _ := b.Tile.Offset(2)
		return []Tile{b.Tile, second, third}
	case BlockTwoSided, BlockEdge:
		next, _ := b.Tile.Offset(1)
		return []Tile{b.Tile, next}
	case BlockClosed:
		next, _ := b.Tile.Offset(2)
		return []Tile{b.Tile, next}
	}
	return nil
}

func (b Block) String() string {
	var sb strings.Builder
	for _, t := range b.Tiles() {
		sb.WriteByte(byte('0' + t.Rank))
	}
	sb.WriteByte(b.Tile.Suit.Letter())
	return sb.String()
}

// Decomposition 一条搜索路径的拆解结果
type Decomposition struct {
	Rest   Counts  `json:"-"`
	Blocks []Block `json:"blocks"`
}

// maxBlocks 136 张牌全部拆成对子的块数上限
const maxBlocks = NumKinds * 4 / 2

// blockStack 定长块栈，按值复制，分支之间不共享底层存储
type blockStack struct {
	n      int
	blocks [maxBlocks]Block
}

func (s blockStack) push(b Block) blockStack {
	s.blocks[s.n] = b
	s.n++
	return s
}

func (s *blockStack) slice() []Block {
	out := make([]Block, s.n)
	copy(out, s.blocks[:s.n])
	return out
}
