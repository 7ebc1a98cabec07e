package nats

// NATS Subject 常量定义
const (
	// SubjectPrefix 请求主题前缀，完整格式: mj.advisor.{operation}
	SubjectPrefix = "mj.advisor."

	SubjectRecommend = SubjectPrefix + "recommend"
	SubjectAnalyze   = SubjectPrefix + "analyze"
	SubjectWaits     = SubjectPrefix + "waits"
	SubjectEvaluate  = SubjectPrefix + "evaluate"

	// QueueGroupAdvisor 默认队列组
	QueueGroupAdvisor = "advisor"
)

// Subjects 订阅的全部主题
func Subjects() []string {
	return []string{SubjectRecommend, SubjectAnalyze, SubjectWaits, SubjectEvaluate}
}
