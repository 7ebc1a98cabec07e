package mahjong

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// NumKinds 牌种数量（万、筒、索各 9 种，字牌 7 种）
const NumKinds = 34

// Suit 花色
type Suit uint8

const (
	SuitMan   Suit = iota // 万子 m
	SuitPin               // 筒子 p
	SuitSou               // 索子 s
	SuitHonor             // 字牌 z
)

var suitLetters = [...]byte{'m', 'p', 's', 'z'}

// Letter 返回花色在牌谱记法中的字母
func (s Suit) Letter() byte {
	if int(s) < len(suitLetters) {
		return suitLetters[s]
	}
	return '?'
}

func (s Suit) String() string {
	return string(s.Letter())
}

// IsNumbered 是否数牌花色
func (s Suit) IsNumbered() bool {
	return s < SuitHonor
}

// Size 花色内的牌种数
func (s Suit) Size() int {
	if s == SuitHonor {
		return 7
	}
	return 9
}

// suitFromLetter 字母转花色
func suitFromLetter(b byte) (Suit, bool) {
	for i, l := range suitLetters {
		if l == b {
			return Suit(i), true
		}
	}
	return 0, false
}

// Tile 牌种（花色 + 点数）
// 点数从 1 开始，数牌 1-9，字牌 1-7（东南西北白发中）
type Tile struct {
	Suit Suit
	Rank uint8
}

// NewTile 创建牌种，点数越界返回 ErrInvalidTileKind
func NewTile(suit Suit, rank int) (Tile, error) {
	if suit > SuitHonor || rank < 1 || rank > suit.Size() {
		return Tile{}, ErrInvalidTileKind.WithContext("tile", fmt.Sprintf("%d%c", rank, suit.Letter()))
	}
	return Tile{Suit: suit, Rank: uint8(rank)}, nil
}

// TileFromIndex 由 0-33 的索引还原牌种
func TileFromIndex(i int) Tile {
	if i < 0 || i >= NumKinds {
		panic(fmt.Sprintf("mahjong: tile index %d out of range", i))
	}
	return Tile{Suit: Suit(i / 9), Rank: uint8(i%9 + 1)}
}

// Index 返回扁平索引：[0,9) 万，[9,18) 筒，[18,27) 索，[27,34) 字
func (t Tile) Index() int {
	return int(t.Suit)*9 + int(t.Rank) - 1
}

// Valid 是否 34 种合法牌之一
func (t Tile) Valid() bool {
	return t.Suit <= SuitHonor && t.Rank >= 1 && int(t.Rank) <= t.Suit.Size()
}

// IsHonor 是否字牌
func (t Tile) IsHonor() bool {
	return t.Suit == SuitHonor
}

// IsTerminal 是否老头牌（1、9）
func (t Tile) IsTerminal() bool {
	return t.Suit.IsNumbered() && (t.Rank == 1 || t.Rank == 9)
}

// Offset 同花色点数偏移 k 后的牌，字牌或越界时 ok 为 false
func (t Tile) Offset(k int) (Tile, bool) {
	if !t.Suit.IsNumbered() {
		return Tile{}, false
	}
	r := int(t.Rank) + k
	if r < 1 || r > 9 {
		return Tile{}, false
	}
	return Tile{Suit: t.Suit, Rank: uint8(r)}, true
}

func (t Tile) String() string {
	return fmt.Sprintf("%d%c", t.Rank, t.Suit.Letter())
}

// MarshalText 以牌谱记法序列化，例如 "5m"、"7z"
func (t Tile) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, ErrInvalidTileKind.WithContext("tile", fmt.Sprintf("%d%c", t.Rank, t.Suit.Letter()))
	}
	return []byte(t.String()), nil
}

// UnmarshalText 解析单张牌记法
func (t *Tile) UnmarshalText(text []byte) error {
	tokens := Tokenize(string(text))
	if len(tokens) != 1 {
		return ErrWrongTileCount.WithContext("tile", string(text))
	}
	tile, err := tokens[0].Tile()
	if err != nil {
		return err
	}
	*t = tile
	return nil
}

var notationPattern = regexp.MustCompile(`(\d+)([mpsz])`)

// Token 记法中的一张牌，尚未校验是否合法
type Token struct {
	Digit byte
	Suit  Suit
}

// Tile 转换为牌种，"0m"、"8z" 之类返回 ErrInvalidTileKind
func (tk Token) Tile() (Tile, error) {
	return NewTile(tk.Suit, int(tk.Digit-'0'))
}

func (tk Token) String() string {
	return fmt.Sprintf("%c%c", tk.Digit, tk.Suit.Letter())
}

// Tokenize 将 "123m456p11z" 形式的记法展开为逐张的 Token
// 不匹配 <数字><花色> 的片段直接忽略
func Tokenize(notation string) []Token {
	var tokens []Token
	for _, m := range notationPattern.FindAllStringSubmatch(notation, -1) {
		suit, _ := suitFromLetter(m[2][0])
		for i := 0; i < len(m[1]); i++ {
			tokens = append(tokens, Token{Digit: m[1][i], Suit: suit})
		}
	}
	return tokens
}

// Counts 每种牌的张数，按 Tile.Index 排列
// 数组按值传递，搜索分支之间天然互不影响
type Counts [NumKinds]uint8

// Of 某种牌的张数
func (c Counts) Of(t Tile) int {
	return int(c[t.Index()])
}

// With 返回调整 t 张数后的副本
func (c Counts) With(t Tile, delta int) Counts {
	c[t.Index()] = uint8(int(c[t.Index()]) + delta)
	return c
}

// Total 总张数
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += int(v)
	}
	return n
}

// IsEmpty 是否没有任何牌
func (c Counts) IsEmpty() bool {
	for _, v := range c {
		if v != 0 {
			return false
		}
	}
	return true
}

// Notation 按花色排序输出规范记法，例如 "123m55p777z"
func (c Counts) Notation() string {
	var sb strings.Builder
	for s := SuitMan; s <= SuitHonor; s++ {
		wrote := false
		for r := 1; r <= s.Size(); r++ {
			t := Tile{Suit: s, Rank: uint8(r)}
			for n := c.Of(t); n > 0; n-- {
				sb.WriteByte(byte('0' + r))
				wrote = true
			}
		}
		if wrote {
			sb.WriteByte(s.Letter())
		}
	}
	return sb.String()
}

// CountsOf 统计牌列表，单种超过 4 张返回 ErrTooManyCopies
func CountsOf(tiles []Tile) (Counts, error) {
	var c Counts
	for _, t := range tiles {
		if !t.Valid() {
			return Counts{}, ErrInvalidTileKind.WithContext("tile", t.String())
		}
		c[t.Index()]++
		if c[t.Index()] > 4 {
			return Counts{}, ErrTooManyCopies.WithContext("tile", t.String())
		}
	}
	return c, nil
}

// Hand 一手牌，保留摸入顺序
type Hand struct {
	Tiles  []Tile
	Counts Counts
}

// ParseHand 解析记法并校验张数
// 张数不在 sizes 中时返回 ErrWrongTileCount，校验先于牌种检查
func ParseHand(notation string, sizes ...int) (Hand, error) {
	tokens := Tokenize(notation)
	if len(sizes) > 0 && !slices.Contains(sizes, len(tokens)) {
		var want interface{} = sizes
		if len(sizes) == 1 {
			want = sizes[0]
		}
		return Hand{}, ErrWrongTileCount.
			WithContext("want", want).
			WithContext("got", len(tokens))
	}

	tiles := make([]Tile, 0, len(tokens))
	for _, tk := range tokens {
		t, err := tk.Tile()
		if err != nil {
			return Hand{}, err
		}
		tiles = append(tiles, t)
	}

	counts, err := CountsOf(tiles)
	if err != nil {
		return Hand{}, err
	}
	return Hand{Tiles: tiles, Counts: counts}, nil
}

// String 按原顺序输出记法，相邻同花色合并
func (h Hand) String() string {
	var sb strings.Builder
	for i, t := range h.Tiles {
		sb.WriteByte(byte('0' + t.Rank))
		if i == len(h.Tiles)-1 || h.Tiles[i+1].Suit != t.Suit {
			sb.WriteByte(t.Suit.Letter())
		}
	}
	return sb.String()
}
