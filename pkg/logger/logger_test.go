package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func initFileLogger(t *testing.T, format string) string {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "logs", "server.log")

	if err := Init(Options{Level: "debug", Output: "file", Format: format, FilePath: logPath}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { Close() })
	return logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(content)
}

func TestInitRejectsUnknownOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"unknown level", Options{Level: "verbose"}},
		{"unknown output", Options{Output: "syslog"}},
		{"unknown format", Options{Format: "xml"}},
		{"file without path", Options{Output: "file"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Init(tt.opts); err == nil {
				t.Errorf("Init(%+v) expected error", tt.opts)
			}
		})
	}
}

func TestFileOutputCreatesDirectory(t *testing.T) {
	logPath := initFileLogger(t, "text")

	Info("request", "method", "GET", "url", "/a.txt")

	content := readLog(t, logPath)
	if !strings.Contains(content, "msg=request") || !strings.Contains(content, "url=/a.txt") {
		t.Fatalf("log content missing request line: %s", content)
	}
}

func TestJSONOutput(t *testing.T) {
	logPath := initFileLogger(t, "json")

	Info("upload finished", "path", "/a/b/c.txt", "bytes", 5)

	content := readLog(t, logPath)
	if !strings.Contains(content, `"msg":"upload finished"`) {
		t.Fatalf("JSON log does not contain expected message: %s", content)
	}
	if !strings.Contains(content, `"path":"/a/b/c.txt"`) {
		t.Fatalf("JSON log does not contain expected key-value pair: %s", content)
	}
}

func TestSetLevel(t *testing.T) {
	logPath := initFileLogger(t, "text")

	if err := SetLevel("error"); err != nil {
		t.Fatalf("SetLevel failed: %v", err)
	}
	Info("should not appear")
	Error("should appear")

	content := readLog(t, logPath)
	if strings.Contains(content, "should not appear") {
		t.Error("info message written at error level")
	}
	if !strings.Contains(content, "should appear") {
		t.Error("error message missing")
	}

	if err := SetLevel("loud"); err == nil {
		t.Error("SetLevel accepted unknown level")
	}
}

func TestSecretsAreMasked(t *testing.T) {
	logPath := initFileLogger(t, "text")

	Info("telegram configured", "bot_token", "123456:ABCDEFGHIJ")

	content := readLog(t, logPath)
	if strings.Contains(content, "123456:ABCDEFGHIJ") {
		t.Fatalf("token leaked into log: %s", content)
	}
	if !strings.Contains(content, "1234*********GHIJ") {
		t.Fatalf("masked token missing: %s", content)
	}
}

func TestInitDefault(t *testing.T) {
	mu.Lock()
	defaultLogger = nil
	mu.Unlock()

	Info("test default init")

	if defaultLogger == nil {
		t.Fatal("Default logger was not initialized")
	}
}

func BenchmarkLogger(b *testing.B) {
	if err := Init(Options{Level: "info", Output: "file", FilePath: filepath.Join(b.TempDir(), "bench.log")}); err != nil {
		b.Fatalf("Init failed: %v", err)
	}
	defer Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Info("benchmark message", "key", "value", "count", i)
	}
}
