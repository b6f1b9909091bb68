package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func readAudit(t *testing.T, dir string) []AuditEvent {
	t.Helper()
	path := filepath.Join(dir, "logs", time.Now().Format("2006-01-02")+"_audit.jsonl")
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open audit log: %v", err)
	}
	defer f.Close()

	var events []AuditEvent
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e AuditEvent
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("bad audit line %q: %v", sc.Text(), err)
		}
		events = append(events, e)
	}
	return events
}

func TestAudit_WritesJSONLines(t *testing.T) {
	t.Cleanup(reset)
	tempDir := t.TempDir()

	if err := Initialize(tempDir, Options{DebugMode: true}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := InitAudit("sess-1"); err != nil {
		t.Fatalf("InitAudit failed: %v", err)
	}

	Audit().SessionStart("cards list")
	AuditWithRequest("req-1").Request("fetch_all", "http://svc/visiting_card_get_all", 200, 23, 40*time.Millisecond, nil)
	AuditWithRequest("req-2").Request("search", "http://svc/visiting_card_search?search=x", 502, 0, time.Millisecond, errors.New("Failed to search cards"))
	AuditWithRequest("req-3").Upload("card.png", 2048, 200, 5*time.Millisecond, nil)
	Audit().SessionEnd("cards list", time.Second)
	CloseAudit()

	events := readAudit(t, tempDir)
	if len(events) != 5 {
		t.Fatalf("expected 5 events, got %d", len(events))
	}

	for _, e := range events {
		if e.SessionID != "sess-1" {
			t.Errorf("event %s has session %q", e.EventType, e.SessionID)
		}
		if e.Timestamp == 0 {
			t.Errorf("event %s has no timestamp", e.EventType)
		}
	}

	ok := events[1]
	if ok.EventType != AuditRequest || ok.RequestID != "req-1" || ok.Count != 23 || !ok.Success || ok.DurationMs != 40 {
		t.Errorf("unexpected request event: %+v", ok)
	}

	failed := events[2]
	if failed.EventType != AuditRequestError || failed.Success || failed.Status != 502 || failed.Error != "Failed to search cards" {
		t.Errorf("unexpected request error event: %+v", failed)
	}

	up := events[3]
	if up.EventType != AuditUpload || up.Op != "upload" || up.Bytes != 2048 || up.Target != "card.png" {
		t.Errorf("unexpected upload event: %+v", up)
	}
}

func TestAudit_DisabledOutsideDebugMode(t *testing.T) {
	t.Cleanup(reset)
	tempDir := t.TempDir()

	if err := Initialize(tempDir, Options{DebugMode: false}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := InitAudit("sess"); err != nil {
		t.Fatalf("InitAudit failed: %v", err)
	}

	// Must not panic or create files.
	Audit().Upload("card.png", 1, 200, time.Millisecond, nil)

	if _, err := os.Stat(filepath.Join(tempDir, "logs")); !os.IsNotExist(err) {
		t.Errorf("expected no logs directory, stat err=%v", err)
	}
}
