package model

import (
	"encoding/json"
	"time"
)

// Operation 分析操作类型
type Operation string

const (
	OperationRecommend Operation = "recommend" // 推荐打牌
	OperationAnalyze   Operation = "analyze"   // 全部候选
	OperationWaits     Operation = "waits"     // 13 张听牌
	OperationEvaluate  Operation = "evaluate"  // 向听评估
	OperationScore     Operation = "score"     // 点数计算
)

// CachedOperations 结果会写入缓存的操作
var CachedOperations = []Operation{OperationRecommend, OperationAnalyze, OperationWaits}

// AnalysisRecord 分析记录实体
type AnalysisRecord struct {
	ID        int64           `json:"id,string" db:"id"`
	Operation Operation       `json:"operation" db:"operation"`
	Hand      string          `json:"hand" db:"hand"`
	ClientID  string          `json:"client_id,omitempty" db:"client_id"`
	Result    json.RawMessage `json:"result" db:"result"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
