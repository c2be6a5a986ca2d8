package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"code_arena_backend/internal/config"
	"code_arena_backend/internal/model"

	"go.uber.org/zap"
)

func TestNormalizeInput(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		language string
		want     string
	}{
		{"python multi-token line split to lines", "3 4\n5", "python", "3\n4\n5"},
		{"python blank lines preserved", "a\n\nb", "python", "a\n\nb"},
		{"python single-token lines trimmed in place", "  1   2  \n\n 3 ", "python", "1\n2\n\n3"},
		{"javascript trims each line", "  hello \n world  ", "javascript", "hello\nworld"},
		{"other languages passthrough", "3 4\n5", "cpp", "3 4\n5"},
		{"empty input", "", "python", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeInput(tt.raw, tt.language)
			if got != tt.want {
				t.Errorf("NormalizeInput(%q, %q) = %q, want %q", tt.raw, tt.language, got, tt.want)
			}
		})
	}
}

func TestNormalizeOutput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"trims trailing newline", "7\n", "7"},
		{"converts crlf", "7\r\n", "7"},
		{"crlf inside is preserved as lf", "a\r\nb\r\n", "a\nb"},
		{"leading and trailing spaces", "  result  ", "result"},
		{"already clean", "42", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeOutput(tt.raw)
			if got != tt.want {
				t.Errorf("NormalizeOutput(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// fakeExecutor 按 stdin 返回预设结果，模拟远端执行引擎
func fakeExecutor(t *testing.T, results map[string]executeRun) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req executeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		run, ok := results[req.Stdin]
		if !ok {
			t.Fatalf("unexpected stdin %q", req.Stdin)
		}
		json.NewEncoder(w).Encode(executeResponse{Run: &run})
	}))
}

func newTestExecutor(url string) *ExecutorService {
	cfg := &config.Config{}
	cfg.Executor.URL = url
	cfg.Executor.TimeoutSeconds = 5
	return NewExecutorService(cfg, zap.NewNop())
}

func TestExecuteStopOnFailure(t *testing.T) {
	srv := fakeExecutor(t, map[string]executeRun{
		"1": {Output: "1\n", Code: 0},
		"2": {Output: "wrong\n", Code: 0},
		"3": {Output: "3\n", Code: 0},
	})
	defer srv.Close()

	svc := newTestExecutor(srv.URL)
	testCases := []model.TestCase{
		{Input: "1", Output: "1"},
		{Input: "2", Output: "2"},
		{Input: "3", Output: "3"},
	}

	report, err := svc.Execute(context.Background(), "code", "cpp", testCases, true)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if report.TotalTestCases != 3 {
		t.Errorf("TotalTestCases = %d, want 3", report.TotalTestCases)
	}
	if report.PassedTestCases != 1 {
		t.Errorf("PassedTestCases = %d, want 1", report.PassedTestCases)
	}
	if len(report.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2 (stopped after first failure)", len(report.Results))
	}
	if report.Results[1].ErrorMessage != "Output mismatch" {
		t.Errorf("ErrorMessage = %q, want %q", report.Results[1].ErrorMessage, "Output mismatch")
	}
	if report.AllPassed() {
		t.Error("AllPassed() = true, want false")
	}
}

func TestExecuteAllPass(t *testing.T) {
	srv := fakeExecutor(t, map[string]executeRun{
		"a": {Output: "A\r\n", Code: 0},
		"b": {Output: " B \n", Code: 0},
	})
	defer srv.Close()

	svc := newTestExecutor(srv.URL)
	testCases := []model.TestCase{
		{Input: "a", Output: "A"},
		{Input: "b", Output: "B"},
	}

	report, err := svc.Execute(context.Background(), "code", "c", testCases, true)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !report.AllPassed() {
		t.Errorf("AllPassed() = false, passed %d/%d", report.PassedTestCases, report.TotalTestCases)
	}
}

func TestExecuteVerdicts(t *testing.T) {
	tests := []struct {
		name      string
		run       executeRun
		wantError string
	}{
		{"stderr wins over output", executeRun{Output: "5\n", Stderr: "  traceback  \n", Code: 0}, "traceback"},
		{"nonzero exit code", executeRun{Output: "5\n", Code: 139}, "Process exited with code 139"},
		{"output mismatch", executeRun{Output: "6\n", Code: 0}, "Output mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeExecutor(t, map[string]executeRun{"x": tt.run})
			defer srv.Close()

			svc := newTestExecutor(srv.URL)
			report, err := svc.Execute(context.Background(), "code", "go", []model.TestCase{{Input: "x", Output: "5"}}, true)
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if report.PassedTestCases != 0 {
				t.Errorf("PassedTestCases = %d, want 0", report.PassedTestCases)
			}
			if report.Results[0].ErrorMessage != tt.wantError {
				t.Errorf("ErrorMessage = %q, want %q", report.Results[0].ErrorMessage, tt.wantError)
			}
			if report.ErrorDetails != tt.wantError {
				t.Errorf("ErrorDetails = %q, want %q", report.ErrorDetails, tt.wantError)
			}
		})
	}
}

// 跑完全部用例时 ErrorDetails 保留最后一次失败的信息
func TestExecuteErrorDetailsKeepsLastFailure(t *testing.T) {
	srv := fakeExecutor(t, map[string]executeRun{
		"1": {Stderr: "first boom", Code: 1},
		"2": {Stderr: "second boom", Code: 1},
	})
	defer srv.Close()

	svc := newTestExecutor(srv.URL)
	testCases := []model.TestCase{
		{Input: "1", Output: "1"},
		{Input: "2", Output: "2"},
	}

	report, err := svc.Execute(context.Background(), "code", "cpp", testCases, false)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(report.Results))
	}
	if report.ErrorDetails != "second boom" {
		t.Errorf("ErrorDetails = %q, want %q", report.ErrorDetails, "second boom")
	}
}

func TestExecuteUnsupportedLanguage(t *testing.T) {
	svc := newTestExecutor("http://localhost:0")
	_, err := svc.Execute(context.Background(), "code", "brainfuck", []model.TestCase{{Input: "x", Output: "y"}}, true)
	if err == nil {
		t.Fatal("expected error for unsupported language")
	}
}

// 引擎故障算该用例失败，整个请求仍然成功返回
func TestExecuteEngineFailuresBecomeFailingResults(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"response missing run result", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}},
		{"non-200 engine status", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}},
		{"malformed response body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			svc := newTestExecutor(srv.URL)
			report, err := svc.Execute(context.Background(), "code", "python",
				[]model.TestCase{{Input: "x", Output: "y"}, {Input: "z", Output: "w"}}, true)
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if report.PassedTestCases != 0 {
				t.Errorf("PassedTestCases = %d, want 0", report.PassedTestCases)
			}
			if len(report.Results) != 1 {
				t.Fatalf("len(Results) = %d, want 1 (stopped after engine failure)", len(report.Results))
			}
			if report.Results[0].ErrorMessage == "" {
				t.Error("expected non-empty ErrorMessage for engine failure")
			}
			if report.ErrorDetails == "" {
				t.Error("expected non-empty ErrorDetails")
			}
		})
	}
}
