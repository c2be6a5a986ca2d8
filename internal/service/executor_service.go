package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"code_arena_backend/internal/config"
	"code_arena_backend/internal/model"
	"code_arena_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// LanguageVersions 各语言在执行引擎上对应的运行时版本
var LanguageVersions = map[string]string{
	"python":     "3.10.0",
	"javascript": "18.15.0",
	"c":          "10.2.0",
	"cpp":        "10.2.0",
	"java":       "15.0.2",
	"go":         "1.16.2",
}

type ExecutorService struct {
	Config *config.Config
	Client *http.Client
	Logger *zap.Logger
}

func NewExecutorService(cfg *config.Config, logger *zap.Logger) *ExecutorService {
	timeout := time.Duration(cfg.Executor.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ExecutorService{
		Config: cfg,
		Client: &http.Client{Timeout: timeout},
		Logger: logger,
	}
}

// TestCaseResult 单个测试用例的评测结果
type TestCaseResult struct {
	TestCaseID     uint   `json:"testCaseId"`
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
	ActualOutput   string `json:"actualOutput"`
	Passed         bool   `json:"passed"`
	ErrorMessage   string `json:"errorMessage,omitempty"`
}

// ExecutionReport 一次提交跑完全部（或提前终止的）用例后的汇总
type ExecutionReport struct {
	TotalTestCases  int              `json:"totalTestCases"`
	PassedTestCases int              `json:"passedTestCases"`
	ErrorDetails    string           `json:"errorDetails,omitempty"`
	Results         []TestCaseResult `json:"results"`
}

func (r *ExecutionReport) AllPassed() bool {
	return r.TotalTestCases > 0 && r.PassedTestCases == r.TotalTestCases
}

// NormalizeInput 把存储格式的用例输入转换为目标语言期望的 stdin 形状。
// python: 逐行处理，多 token 的行拆成每 token 一行，单 token 的行（含空行）
// 只去首尾空白，行结构不变；javascript: 逐行去首尾空白；其余语言原样
func NormalizeInput(raw, language string) string {
	switch language {
	case "python":
		lines := strings.Split(raw, "\n")
		out := make([]string, 0, len(lines))
		for _, l := range lines {
			trimmed := strings.TrimSpace(l)
			if strings.Contains(trimmed, " ") {
				out = append(out, strings.Join(strings.Fields(trimmed), "\n"))
			} else {
				out = append(out, trimmed)
			}
		}
		return strings.Join(out, "\n")
	case "javascript":
		lines := strings.Split(raw, "\n")
		out := make([]string, 0, len(lines))
		for _, l := range lines {
			out = append(out, strings.TrimSpace(l))
		}
		return strings.Join(out, "\n")
	default:
		return raw
	}
}

// NormalizeOutput 比较前的输出规整：去首尾空白并统一换行为 LF
func NormalizeOutput(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	return strings.TrimSpace(s)
}

type executeRequest struct {
	Language string        `json:"language"`
	Version  string        `json:"version"`
	Files    []executeFile `json:"files"`
	Stdin    string        `json:"stdin"`
}

type executeFile struct {
	Content string `json:"content"`
}

type executeResponse struct {
	Run *executeRun `json:"run"`
}

type executeRun struct {
	Output string `json:"output"`
	Stderr string `json:"stderr"`
	Code   int    `json:"code"`
}

// runOnce 把一段代码连同一份 stdin 投给执行引擎，返回原始运行结果
func (s *ExecutorService) runOnce(ctx context.Context, code, language, stdin string) (*executeRun, error) {
	version, ok := LanguageVersions[language]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", language)
	}

	reqBody := executeRequest{
		Language: language,
		Version:  version,
		Files:    []executeFile{{Content: code}},
		Stdin:    stdin,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Config.Executor.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.Config.Executor.APIKey != "" {
		req.Header.Set("Authorization", s.Config.Executor.APIKey)
	}

	start := time.Now()
	resp, err := s.Client.Do(req)
	monitoring.ExecutionDuration.WithLabelValues(language).Observe(time.Since(start).Seconds())
	if err != nil {
		s.Logger.Error("execution engine request failed", zap.String("language", language), zap.Error(err))
		return nil, fmt.Errorf("execution engine unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("execution engine returned status %d", resp.StatusCode)
	}

	var execResp executeResponse
	if err := json.NewDecoder(resp.Body).Decode(&execResp); err != nil {
		return nil, fmt.Errorf("invalid execution engine response: %w", err)
	}
	if execResp.Run == nil {
		return nil, fmt.Errorf("execution engine response missing run result")
	}
	return execResp.Run, nil
}

// Execute 按存储顺序逐用例评测。stopOnFailure 为 true 时首个失败用例后停止，
// 后续用例不再执行但仍计入 TotalTestCases。
// 执行引擎本身的故障（不可达、超时、响应缺 run）记为该用例失败，不中断整个请求
func (s *ExecutorService) Execute(ctx context.Context, code, language string, testCases []model.TestCase, stopOnFailure bool) (*ExecutionReport, error) {
	if _, ok := LanguageVersions[language]; !ok {
		return nil, fmt.Errorf("unsupported language: %s", language)
	}

	report := &ExecutionReport{
		TotalTestCases: len(testCases),
		Results:        make([]TestCaseResult, 0, len(testCases)),
	}

	for _, tc := range testCases {
		stdin := NormalizeInput(tc.Input, language)

		result := TestCaseResult{
			TestCaseID:     tc.ID,
			Input:          tc.Input,
			ExpectedOutput: tc.Output,
		}

		run, err := s.runOnce(ctx, code, language, stdin)
		if err != nil {
			result.ErrorMessage = err.Error()
			report.Results = append(report.Results, result)
			report.ErrorDetails = result.ErrorMessage
			if stopOnFailure {
				break
			}
			continue
		}

		result.ActualOutput = NormalizeOutput(run.Output)
		expected := NormalizeOutput(tc.Output)
		switch {
		case strings.TrimSpace(run.Stderr) != "":
			result.ErrorMessage = strings.TrimSpace(run.Stderr)
		case run.Code != 0:
			result.ErrorMessage = fmt.Sprintf("Process exited with code %d", run.Code)
		case result.ActualOutput != expected:
			result.ErrorMessage = "Output mismatch"
		default:
			result.Passed = true
		}

		report.Results = append(report.Results, result)
		if result.Passed {
			report.PassedTestCases++
		} else {
			// 保留最后一条失败信息
			report.ErrorDetails = result.ErrorMessage
			if stopOnFailure {
				break
			}
		}
	}

	return report, nil
}
