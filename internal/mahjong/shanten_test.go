package mahjong

import "testing"

func TestEvaluateBlocks(t *testing.T) {
	pair := Block{Kind: BlockPair}
	seq := Block{Kind: BlockSequence}
	trip := Block{Kind: BlockTriplet}
	open := Block{Kind: BlockTwoSided}
	closed := Block{Kind: BlockClosed}
	edge := Block{Kind: BlockEdge}

	tests := []struct {
		name   string
		blocks []Block
		want   int
	}{
		{"nothing", nil, 8},
		{"one sequence", []Block{seq}, 6},
		{"two partials", []Block{open, closed}, 6},
		{"edge counts as partial", []Block{edge}, 7},
		{"four groups no pair", []Block{seq, seq, trip, seq}, 0},
		{"four groups and pair", []Block{seq, seq, trip, seq, pair}, -1},
		{"three groups two pairs", []Block{seq, seq, seq, pair, pair}, 0},
		{"three groups two partials", []Block{seq, seq, seq, open, closed}, 1},
		{"surplus partials capped", []Block{seq, seq, open, open, closed, closed}, 2},
		{"surplus partials with pair", []Block{seq, seq, open, open, pair}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EvaluateBlocks(tt.blocks, 0); got != tt.want {
				t.Errorf("EvaluateBlocks() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEvaluateBlocksFixedMelds(t *testing.T) {
	seq := Block{Kind: BlockSequence}
	pair := Block{Kind: BlockPair}
	if got := EvaluateBlocks([]Block{seq, pair}, 3); got != -1 {
		t.Errorf("EvaluateBlocks with 3 melds = %d, want -1", got)
	}
}

func TestMinShanten(t *testing.T) {
	tests := []struct {
		name     string
		notation string
		want     int
	}{
		{"complete hand", "112233456789m11s", ShantenComplete},
		{"tenpai shanpon", "123456789m1122p", 0},
		{"one away", "1122334567m112s", 1},
		{"thirteen orphans shape", "19m19p19s1234567z", 8},
		{"isolated triplets", "111m555p999s777z1z", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, decomps := MinShanten(mustCounts(t, tt.notation))
			if got != tt.want {
				t.Errorf("MinShanten(%s) = %d, want %d", tt.notation, got, tt.want)
			}
			if len(decomps) == 0 {
				t.Fatal("no decomposition kept")
			}
			for _, d := range decomps {
				if s := EvaluateBlocks(d.Blocks, 0); s != got {
					t.Errorf("kept decomposition %s scores %d", blocksString(d.Blocks), s)
				}
			}
		})
	}
}

func TestMinShantenKeepsAllTies(t *testing.T) {
	_, decomps := MinShanten(mustCounts(t, "1234m"))
	if len(decomps) != 4 {
		var shapes []string
		for _, d := range decomps {
			shapes = append(shapes, blocksString(d.Blocks))
		}
		t.Errorf("expected 4 minimal decompositions, got %d: %q", len(decomps), shapes)
	}
}

func TestShantenBounds(t *testing.T) {
	a := NewAnalyzer()
	for _, notation := range sampleHands {
		h, err := ParseHand(notation, HandSizeWait, HandSizeDraw)
		if err != nil {
			t.Fatalf("ParseHand(%q) failed: %v", notation, err)
		}
		s := a.Shanten(h.Counts)
		if s < ShantenComplete || s > 8 {
			t.Errorf("Shanten(%s) = %d out of range", notation, s)
		}
		if len(h.Tiles) == HandSizeWait && s == ShantenComplete {
			t.Errorf("13 tiles cannot be complete: %s", notation)
		}
	}
}

func TestShantenMonotonic(t *testing.T) {
	a := NewAnalyzer()
	for _, notation := range sampleHands {
		h, err := ParseHand(notation, HandSizeWait)
		if err != nil {
			continue
		}
		base := a.Shanten(h.Counts)
		for i, n := range h.Counts {
			if n >= 4 {
				continue
			}
			tile := TileFromIndex(i)
			if s := a.Shanten(h.Counts.With(tile, 1)); s > base {
				t.Errorf("%s + %s: shanten %d > %d", notation, tile, s, base)
			}
		}
	}
}

func TestAnalyzerCache(t *testing.T) {
	c := mustCounts(t, "123456789m1122p")

	cached := NewAnalyzer(WithCacheLimit(2))
	first := cached.Shanten(c)
	if cached.CacheSize() != 1 {
		t.Errorf("CacheSize() = %d, want 1", cached.CacheSize())
	}
	if again := cached.Shanten(c); again != first {
		t.Errorf("cached value %d != %d", again, first)
	}

	cached.Shanten(mustCounts(t, "19m19p19s1234567z"))
	cached.Shanten(mustCounts(t, "1122334567m112s"))
	if cached.CacheSize() > 2 {
		t.Errorf("cache exceeded its limit: %d", cached.CacheSize())
	}

	uncached := NewAnalyzer(WithCacheLimit(0))
	if got := uncached.Shanten(c); got != first {
		t.Errorf("uncached = %d, cached = %d", got, first)
	}
	if uncached.CacheSize() != 0 {
		t.Error("disabled cache should stay empty")
	}
}

// sampleHands 13 或 14 张的测试手牌
var sampleHands = []string{
	"123456789m1122p",
	"1122334567m112s",
	"19m19p19s1234567z",
	"147m258p369s1234z",
	"2345678m234p556s",
	"111222333m444p5p",
	"1112345678999m",
	"11223344556677z",
	"135m246p579s11z23z",
	"112233456789m11s",
	"11223345678m112s",
	"3334445556667m",
}
