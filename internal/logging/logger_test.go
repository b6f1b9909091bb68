package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInitialize_RequiresDir(t *testing.T) {
	if err := Initialize("", Options{}); err == nil {
		t.Fatal("expected error for empty dir")
	}
}

func TestInitialize_ProductionModeWritesNothing(t *testing.T) {
	t.Cleanup(reset)
	tempDir := t.TempDir()

	if err := Initialize(tempDir, Options{DebugMode: false}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	API("should not be written")

	if _, err := os.Stat(filepath.Join(tempDir, "logs")); !os.IsNotExist(err) {
		t.Errorf("expected no logs directory in production mode, stat err=%v", err)
	}
	if IsDebugMode() {
		t.Error("expected debug mode to be disabled")
	}
}

func TestAllCategoriesLog(t *testing.T) {
	t.Cleanup(reset)
	tempDir := t.TempDir()

	if err := Initialize(tempDir, Options{DebugMode: true, Level: "debug"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	Boot("boot message")
	API("api message")
	UI("ui message")
	Upload("upload message")
	Watch("watch message")
	CloseAll()

	date := time.Now().Format("2006-01-02")
	for _, cat := range []Category{CategoryBoot, CategoryAPI, CategoryUI, CategoryUpload, CategoryWatch} {
		path := filepath.Join(tempDir, "logs", date+"_"+string(cat)+".log")
		data, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("expected log file for %s: %v", cat, err)
			continue
		}
		if !strings.Contains(string(data), string(cat)+" message") {
			t.Errorf("log for %s missing message, got %q", cat, string(data))
		}
	}
}

func TestCategoryFilter(t *testing.T) {
	t.Cleanup(reset)
	tempDir := t.TempDir()

	err := Initialize(tempDir, Options{
		DebugMode:  true,
		Categories: map[string]bool{"ui": false},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if IsCategoryEnabled(CategoryUI) {
		t.Error("expected ui category to be disabled")
	}
	if !IsCategoryEnabled(CategoryAPI) {
		t.Error("expected unlisted api category to be enabled")
	}
	if Get(CategoryUI).sugar != nil {
		t.Error("expected no-op logger for disabled category")
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Cleanup(reset)
	tempDir := t.TempDir()

	if err := Initialize(tempDir, Options{DebugMode: true, Level: "warn"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	APIDebug("hidden debug")
	APIWarn("visible warn")
	CloseAll()

	date := time.Now().Format("2006-01-02")
	data, err := os.ReadFile(filepath.Join(tempDir, "logs", date+"_api.log"))
	if err != nil {
		t.Fatalf("read api log: %v", err)
	}
	if strings.Contains(string(data), "hidden debug") {
		t.Error("debug line written at warn level")
	}
	if !strings.Contains(string(data), "visible warn") {
		t.Error("warn line missing")
	}
}

func TestJSONFormatAndRequestID(t *testing.T) {
	t.Cleanup(reset)
	tempDir := t.TempDir()

	if err := Initialize(tempDir, Options{DebugMode: true, Format: "json"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	WithRequestID(CategoryAPI, "req-123").Info("traced")
	CloseAll()

	date := time.Now().Format("2006-01-02")
	data, err := os.ReadFile(filepath.Join(tempDir, "logs", date+"_api.log"))
	if err != nil {
		t.Fatalf("read api log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, `"req":"req-123"`) {
		t.Errorf("expected request id field in json log, got %q", line)
	}
}

func TestNoopLoggerIsSafe(t *testing.T) {
	t.Cleanup(reset)
	l := Get(CategoryAPI)
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	l.With("k", "v").Info("x")

	timer := StartTimer(CategoryAPI, "op")
	if d := timer.StopWithThreshold(time.Hour); d < 0 {
		t.Errorf("negative duration %v", d)
	}
}
