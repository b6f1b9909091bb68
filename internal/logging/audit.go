package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// =============================================================================
// AUDIT EVENT TYPES
// =============================================================================

// AuditEventType identifies what an audit line records.
type AuditEventType string

const (
	// Command lifecycle
	AuditSessionStart AuditEventType = "session_start"
	AuditSessionEnd   AuditEventType = "session_end"

	// Webhook list calls (fetch_all, search)
	AuditRequest      AuditEventType = "request"
	AuditRequestError AuditEventType = "request_error"

	// Webhook uploads
	AuditUpload      AuditEventType = "upload"
	AuditUploadError AuditEventType = "upload_error"
)

// =============================================================================
// AUDIT EVENT STRUCTURE
// =============================================================================

// AuditEvent is one JSON line in the audit log. The audit log is a record of
// every call made against the webhook service, written only in debug mode.
type AuditEvent struct {
	Timestamp  int64          `json:"ts"`               // Unix milliseconds
	EventType  AuditEventType `json:"event"`            // What happened
	SessionID  string         `json:"session"`          // One per CLI invocation
	RequestID  string         `json:"req,omitempty"`    // Matches the req field of api/upload logs
	Op         string         `json:"op,omitempty"`     // fetch_all, search, upload
	Target     string         `json:"target,omitempty"` // URL or file name
	Status     int            `json:"status,omitempty"` // HTTP status, 0 if none was received
	Success    bool           `json:"success"`
	DurationMs int64          `json:"dur_ms"`
	Count      int            `json:"count,omitempty"` // Cards returned
	Bytes      int64          `json:"bytes,omitempty"` // Upload size
	Error      string         `json:"error,omitempty"`
	Message    string         `json:"msg,omitempty"`
}

// =============================================================================
// AUDIT LOGGER
// =============================================================================

var (
	auditFile    *os.File
	auditMu      sync.Mutex
	auditSession string
)

// AuditLogger writes audit events, optionally scoped to a request.
type AuditLogger struct {
	requestID string
}

// InitAudit opens <logs>/<date>_audit.jsonl. It is a no-op unless logging
// was initialized in debug mode.
func InitAudit(sessionID string) error {
	if !IsDebugMode() {
		return nil
	}

	loggersMu.RLock()
	dir := logsDir
	loggersMu.RUnlock()
	if dir == "" {
		return nil
	}

	auditMu.Lock()
	defer auditMu.Unlock()

	auditSession = sessionID
	if auditFile != nil {
		return nil // Already initialized
	}

	date := time.Now().Format("2006-01-02")
	auditPath := filepath.Join(dir, fmt.Sprintf("%s_audit.jsonl", date))
	file, err := os.OpenFile(auditPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	auditFile = file
	return nil
}

// CloseAudit closes the audit log file
func CloseAudit() {
	auditMu.Lock()
	defer auditMu.Unlock()

	if auditFile != nil {
		auditFile.Close()
		auditFile = nil
	}
	auditSession = ""
}

// Audit returns an unscoped audit logger
func Audit() *AuditLogger {
	return &AuditLogger{}
}

// AuditWithRequest returns an audit logger scoped to one webhook request.
func AuditWithRequest(requestID string) *AuditLogger {
	return &AuditLogger{requestID: requestID}
}

// =============================================================================
// AUDIT LOGGING METHODS
// =============================================================================

// Log writes an audit event
func (a *AuditLogger) Log(event AuditEvent) {
	auditMu.Lock()
	defer auditMu.Unlock()

	if auditFile == nil {
		return
	}

	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}
	if event.SessionID == "" {
		event.SessionID = auditSession
	}
	if event.RequestID == "" {
		event.RequestID = a.requestID
	}

	data, err := json.Marshal(event)
	if err == nil {
		auditFile.Write(append(data, '\n'))
	}
}

// =============================================================================
// CONVENIENCE METHODS FOR COMMON EVENTS
// =============================================================================

// SessionStart records the command being run.
func (a *AuditLogger) SessionStart(command string) {
	a.Log(AuditEvent{
		EventType: AuditSessionStart,
		Target:    command,
		Success:   true,
		Message:   fmt.Sprintf("Session started: %s", command),
	})
}

// SessionEnd records the end of a command.
func (a *AuditLogger) SessionEnd(command string, elapsed time.Duration) {
	a.Log(AuditEvent{
		EventType:  AuditSessionEnd,
		Target:     command,
		Success:    true,
		DurationMs: elapsed.Milliseconds(),
		Message:    fmt.Sprintf("Session ended: %s (%v)", command, elapsed),
	})
}

// Request records a completed fetch-all or search call.
func (a *AuditLogger) Request(op, url string, status, count int, elapsed time.Duration, err error) {
	e := AuditEvent{
		EventType:  AuditRequest,
		Op:         op,
		Target:     url,
		Status:     status,
		Success:    err == nil,
		DurationMs: elapsed.Milliseconds(),
		Count:      count,
		Message:    fmt.Sprintf("%s -> %d cards (%dms)", op, count, elapsed.Milliseconds()),
	}
	if err != nil {
		e.EventType = AuditRequestError
		e.Error = err.Error()
		e.Message = fmt.Sprintf("%s failed: %v", op, err)
	}
	a.Log(e)
}

// Upload records a completed upload call.
func (a *AuditLogger) Upload(filename string, size int64, status int, elapsed time.Duration, err error) {
	e := AuditEvent{
		EventType:  AuditUpload,
		Op:         "upload",
		Target:     filename,
		Status:     status,
		Success:    err == nil,
		DurationMs: elapsed.Milliseconds(),
		Bytes:      size,
		Message:    fmt.Sprintf("uploaded %s (%d bytes, %dms)", filename, size, elapsed.Milliseconds()),
	}
	if err != nil {
		e.EventType = AuditUploadError
		e.Error = err.Error()
		e.Message = fmt.Sprintf("upload %s failed: %v", filename, err)
	}
	a.Log(e)
}
