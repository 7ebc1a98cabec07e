package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

var (
	ErrEmptyHand     = errors.New("scoring: hand is empty")
	ErrCommandFailed = errors.New("scoring: calculator command failed")
	ErrBadOutput     = errors.New("scoring: calculator output is not valid json")
)

// Options 点数计算选项，字段名与外部计算器保持一致
type Options struct {
	Dora            []string `json:"dora"`            // 宝牌指示，例如 ["1s", "2s"]
	Extra           string   `json:"extra,omitempty"` // 追加状态，例如 "ri" 立直
	Wind            string   `json:"wind,omitempty"`  // 场风自风，例如 "22"
	DisableWyakuman bool     `json:"disableWyakuman"` // 关闭双倍役满
	DisableKuitan   bool     `json:"disableKuitan"`   // 关闭食断
	DisableAka      bool     `json:"disableAka"`      // 关闭赤宝牌
	EnableLocalYaku []string `json:"enableLocalYaku"` // 启用的古役
	DisableYaku     []string `json:"disableYaku"`     // 关闭的役
}

// Request 计算请求
type Request struct {
	Hand    string  `json:"hand"`
	Options Options `json:"options"`
}

// Result 计算器返回的点数结果
type Result struct {
	IsAgari bool              `json:"isAgari"`
	Yakuman int               `json:"yakuman"`
	Yaku    map[string]string `json:"yaku"`
	Han     int               `json:"han"`
	Fu      int               `json:"fu"`
	Ten     int               `json:"ten"`
	Name    string            `json:"name"`
	Text    string            `json:"text"`
	Oya     []int             `json:"oya,omitempty"`
	Ko      []int             `json:"ko,omitempty"`
	Error   bool              `json:"error"`
	Hairi   json.RawMessage   `json:"hairi,omitempty"`
}

// Failure 计算器错误信息
type Failure struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// Response 计算器输出
type Response struct {
	Success bool            `json:"success"`
	Result  *Result         `json:"result,omitempty"`
	Error   *Failure        `json:"error,omitempty"`
	Input   json.RawMessage `json:"input,omitempty"`
}

// Scorer 点数计算器
type Scorer interface {
	Score(ctx context.Context, req *Request) (*Response, error)
}

// BuildHandString 拼接计算器使用的手牌描述
// 手牌 + "+d" 宝牌 + "+" 追加状态 + "+" 场风自风，缺省的部分省略
func BuildHandString(hand string, opts Options) string {
	var sb strings.Builder
	sb.WriteString(hand)
	if len(opts.Dora) > 0 {
		sb.WriteString("+d")
		sb.WriteString(strings.Join(opts.Dora, ""))
	}
	if opts.Extra != "" {
		sb.WriteString("+")
		sb.WriteString(opts.Extra)
	}
	if opts.Wind != "" {
		sb.WriteString("+")
		sb.WriteString(opts.Wind)
	}
	return sb.String()
}

// normalize 空列表编码为 []，与计算器的默认值一致
func (o Options) normalize() Options {
	if o.Dora == nil {
		o.Dora = []string{}
	}
	if o.EnableLocalYaku == nil {
		o.EnableLocalYaku = []string{}
	}
	if o.DisableYaku == nil {
		o.DisableYaku = []string{}
	}
	return o
}
