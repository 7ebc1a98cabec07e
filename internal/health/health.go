package health

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// 组件状态
const (
	StatusUp       = "up"
	StatusDown     = "down"
	StatusDisabled = "disabled"
)

// 总体状态
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

const defaultTimeout = 2 * time.Second

var errNotConnected = errors.New("not connected")

// Check 单个依赖的探测函数
type Check func(ctx context.Context) error

// ComponentStatus 单个依赖的探测结果
type ComponentStatus struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Report 探测汇总
type Report struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentStatus `json:"components"`
}

// Healthy 所有已启用的依赖均可用
func (r Report) Healthy() bool {
	return r.Status == StatusOK
}

// Checker 依赖探测器
type Checker struct {
	timeout time.Duration

	mu     sync.RWMutex
	names  []string
	checks map[string]Check
}

// NewChecker 创建探测器，timeout<=0 时使用默认值
func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Checker{
		timeout: timeout,
		checks:  make(map[string]Check),
	}
}

// Register 注册依赖，check 为 nil 表示未启用
func (c *Checker) Register(name string, check Check) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.checks[name]; !ok {
		c.names = append(c.names, name)
	}
	c.checks[name] = check
}

// Run 并发探测全部依赖
func (c *Checker) Run(ctx context.Context) Report {
	c.mu.RLock()
	names := append([]string(nil), c.names...)
	checks := make([]Check, len(names))
	for i, name := range names {
		checks[i] = c.checks[name]
	}
	c.mu.RUnlock()

	results := make([]ComponentStatus, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, check := range checks {
		if check == nil {
			results[i] = ComponentStatus{Status: StatusDisabled}
			continue
		}
		g.Go(func() error {
			results[i] = c.probe(gctx, check)
			return nil
		})
	}
	_ = g.Wait()

	report := Report{Status: StatusOK, Components: make(map[string]ComponentStatus, len(names))}
	for i, name := range names {
		if results[i].Status == StatusDown {
			report.Status = StatusDegraded
		}
		report.Components[name] = results[i]
	}
	return report
}

func (c *Checker) probe(ctx context.Context, check Check) ComponentStatus {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := check(ctx)
	latency := time.Since(start).Round(time.Microsecond).String()
	if err != nil {
		return ComponentStatus{Status: StatusDown, Error: err.Error(), Latency: latency}
	}
	return ComponentStatus{Status: StatusUp, Latency: latency}
}

// RedisCheck Redis PING，client 为 nil 时返回 nil
func RedisCheck(client *redis.Client) Check {
	if client == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

// PostgresCheck PostgreSQL Ping
func PostgresCheck(pool *pgxpool.Pool) Check {
	if pool == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return pool.Ping(ctx)
	}
}

// NATSCheck NATS 连接状态与往返
func NATSCheck(conn *nats.Conn) Check {
	if conn == nil {
		return nil
	}
	return func(ctx context.Context) error {
		if !conn.IsConnected() {
			return errNotConnected
		}
		deadline, ok := ctx.Deadline()
		if !ok {
			return conn.Flush()
		}
		return conn.FlushTimeout(time.Until(deadline))
	}
}
