package nats

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/nats-io/nats.go"

	appErrors "sudooom.mj.advisor/internal/errors"
	"sudooom.mj.advisor/internal/service"
)

// Advisor 请求处理所需的分析能力
type Advisor interface {
	Recommend(ctx context.Context, hand, clientID string) (*service.RecommendResponse, error)
	Analyze(ctx context.Context, hand, clientID string) (*service.AnalyzeResponse, error)
	Agarihai(ctx context.Context, hand, clientID string) (*service.AgarihaiResponse, error)
	Evaluate(ctx context.Context, hand, clientID string) (*service.EvaluateResponse, error)
}

// Request 请求体
type Request struct {
	Hand     string `json:"hand"`
	ClientID string `json:"client_id,omitempty"`
}

// Reply 应答体，与 HTTP 响应结构一致
type Reply struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SubscriberConfig Worker Pool 配置
type SubscriberConfig struct {
	QueueGroup  string // 队列组
	WorkerCount int    // Worker 数量
	BufferSize  int    // 消息缓冲区大小
}

// RequestSubscriber 分析请求订阅器
type RequestSubscriber struct {
	nc            *nats.Conn
	advisor       Advisor
	logger        *slog.Logger
	config        SubscriberConfig
	subscriptions []*nats.Subscription
	msgChan       chan *nats.Msg
	wg            sync.WaitGroup
	cancelFunc    context.CancelFunc
}

// NewRequestSubscriber 创建请求订阅器
func NewRequestSubscriber(nc *nats.Conn, advisor Advisor, config SubscriberConfig) *RequestSubscriber {
	if config.QueueGroup == "" {
		config.QueueGroup = QueueGroupAdvisor
	}
	if config.WorkerCount <= 0 {
		config.WorkerCount = 16
	}
	if config.BufferSize <= 0 {
		config.BufferSize = 1024
	}

	return &RequestSubscriber{
		nc:      nc,
		advisor: advisor,
		logger:  slog.Default(),
		config:  config,
	}
}

// Start 启动订阅
func (s *RequestSubscriber) Start(ctx context.Context) error {
	s.msgChan = make(chan *nats.Msg, s.config.BufferSize)

	workerCtx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel

	for i := 0; i < s.config.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(workerCtx)
	}

	for _, subject := range Subjects() {
		sub, err := s.nc.QueueSubscribe(subject, s.config.QueueGroup, s.enqueue)
		if err != nil {
			cancel()
			s.unsubscribe()
			return err
		}
		s.subscriptions = append(s.subscriptions, sub)
	}

	s.logger.Info("NATS subscriber started",
		"subjects", Subjects(),
		"queueGroup", s.config.QueueGroup,
		"workerCount", s.config.WorkerCount,
		"bufferSize", s.config.BufferSize,
	)
	return nil
}

// enqueue 消息入队，缓冲区满时直接应答繁忙
func (s *RequestSubscriber) enqueue(msg *nats.Msg) {
	select {
	case s.msgChan <- msg:
	default:
		s.logger.Warn("Request buffer full, rejecting", "subject", msg.Subject, "bufferSize", s.config.BufferSize)
		s.respond(msg, Reply{Code: appErrors.CodeServerError, Message: "server busy"})
	}
}

// worker 工作协程
func (s *RequestSubscriber) worker(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-s.msgChan:
			s.respond(msg, s.handle(ctx, msg.Subject, msg.Data))
		}
	}
}

// handle 按主题分发请求
func (s *RequestSubscriber) handle(ctx context.Context, subject string, data []byte) Reply {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Reply{Code: appErrors.CodeInvalidParams, Message: "invalid request body"}
	}
	if req.Hand == "" {
		return Reply{Code: appErrors.CodeInvalidParams, Message: "hand is required"}
	}

	var (
		result interface{}
		err    error
	)
	switch subject {
	case SubjectRecommend:
		result, err = s.advisor.Recommend(ctx, req.Hand, req.ClientID)
	case SubjectAnalyze:
		result, err = s.advisor.Analyze(ctx, req.Hand, req.ClientID)
	case SubjectWaits:
		result, err = s.advisor.Agarihai(ctx, req.Hand, req.ClientID)
	case SubjectEvaluate:
		result, err = s.advisor.Evaluate(ctx, req.Hand, req.ClientID)
	default:
		err = appErrors.ErrInvalidParams.WithMessage("unknown subject " + subject)
	}

	if err != nil {
		var appErr *appErrors.AppError
		if !errors.As(err, &appErr) {
			s.logger.Error("Request failed", "subject", subject, "error", err)
		}
		return Reply{Code: appErrors.GetCode(err), Message: appErrors.GetMessage(err)}
	}
	return Reply{Code: appErrors.CodeSuccess, Message: "success", Data: result}
}

func (s *RequestSubscriber) respond(msg *nats.Msg, reply Reply) {
	if msg.Reply == "" {
		return
	}
	data, err := json.Marshal(reply)
	if err != nil {
		s.logger.Error("Failed to marshal reply", "subject", msg.Subject, "error", err)
		return
	}
	if err := msg.Respond(data); err != nil {
		s.logger.Error("Failed to respond", "subject", msg.Subject, "error", err)
	}
}

func (s *RequestSubscriber) unsubscribe() {
	for _, sub := range s.subscriptions {
		if err := sub.Unsubscribe(); err != nil {
			s.logger.Error("Failed to unsubscribe", "subject", sub.Subject, "error", err)
		}
	}
	s.subscriptions = nil
}

// Stop 停止订阅，等待 worker 退出后清空缓冲区
func (s *RequestSubscriber) Stop() error {
	s.unsubscribe()

	if s.cancelFunc != nil {
		s.cancelFunc()
	}

	s.wg.Wait()

	if n := s.drain(); n > 0 {
		s.logger.Warn("Rejected buffered requests on shutdown", "count", n)
	}

	s.logger.Info("NATS subscriber stopped")
	return nil
}

// drain 清空缓冲区，未处理的请求应答繁忙
func (s *RequestSubscriber) drain() int {
	n := 0
	for {
		select {
		case msg := <-s.msgChan:
			s.respond(msg, Reply{Code: appErrors.CodeServerError, Message: "server busy"})
			n++
		default:
			return n
		}
	}
}

// GetBufferUsage 获取缓冲区使用情况
func (s *RequestSubscriber) GetBufferUsage() (current int, capacity int) {
	if s.msgChan == nil {
		return 0, 0
	}
	return len(s.msgChan), cap(s.msgChan)
}
