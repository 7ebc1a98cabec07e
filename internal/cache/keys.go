package cache

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

const (
	// DefaultKeyPrefix 分析结果 Redis Key 前缀
	DefaultKeyPrefix = "mj:advisor:"

	maxInlineHandLen = 40
)

// BuildResultKey 构建分析结果 Key
// Key: {prefix}result:{operation}:{hand}，过长的手牌取摘要
func BuildResultKey(prefix, operation, hand string) string {
	if len(hand) > maxInlineHandLen {
		hand = "h" + strconv.FormatUint(xxhash.Sum64String(hand), 16)
	}
	return fmt.Sprintf("%sresult:%s:%s", prefix, operation, hand)
}
