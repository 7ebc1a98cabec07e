package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// runFunc 执行外部命令，返回标准输出与标准错误
type runFunc func(ctx context.Context, dir, name string, args ...string) (stdout, stderr []byte, err error)

// CommandScorer 通过子进程调用外部点数计算器
// 默认命令为 node riichi_calculator.js <json>
type CommandScorer struct {
	command string
	script  string
	dir     string
	timeout time.Duration
	logger  *slog.Logger
	run     runFunc
}

// NewCommandScorer 创建子进程计算器
func NewCommandScorer(command, script, dir string, timeout time.Duration) *CommandScorer {
	if command == "" {
		command = "node"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CommandScorer{
		command: command,
		script:  script,
		dir:     dir,
		timeout: timeout,
		logger:  slog.Default(),
		run:     runCommand,
	}
}

// Score 执行点数计算
// 进程失败或输出无法解析时返回错误，计算器报告的失败保留在 Response 中
func (s *CommandScorer) Score(ctx context.Context, req *Request) (*Response, error) {
	if strings.TrimSpace(req.Hand) == "" {
		return nil, ErrEmptyHand
	}

	payload := Request{Hand: req.Hand, Options: req.Options.normalize()}
	input, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	args := make([]string, 0, 2)
	if s.script != "" {
		args = append(args, s.script)
	}
	args = append(args, string(input))

	start := time.Now()
	stdout, stderr, err := s.run(ctx, s.dir, s.command, args...)
	if err != nil {
		s.logger.Error("Scoring command failed",
			"hand", BuildHandString(req.Hand, req.Options),
			"error", err,
			"stderr", string(bytes.TrimSpace(stderr)),
		)
		return nil, fmt.Errorf("%w: %v: %s", ErrCommandFailed, err, bytes.TrimSpace(stderr))
	}

	var resp Response
	if err := json.Unmarshal(stdout, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadOutput, err)
	}

	s.logger.Debug("Scoring finished",
		"hand", BuildHandString(req.Hand, req.Options),
		"success", resp.Success,
		"latency", time.Since(start),
	)
	return &resp, nil
}

func runCommand(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
