package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultBatchSize     = 10
	defaultFlushInterval = time.Minute
)

// ContactAuditor appends contact actions to daily JSON-lines files.
// Entries are buffered and written in batches, on a timer and on Close.
type ContactAuditor struct {
	logDir        string
	batchSize     int
	flushInterval time.Duration
	batchMu       sync.Mutex
	batchLogs     []AuditLog
	flushTimer    *time.Timer
	closed        bool
	writeMu       sync.Mutex
	now           func() time.Time
}

// NewContactAuditor creates a new ContactAuditor instance
func NewContactAuditor(logDir string) (*ContactAuditor, error) {
	return newContactAuditor(logDir, defaultFlushInterval)
}

func newContactAuditor(logDir string, flushInterval time.Duration) (*ContactAuditor, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %w", err)
	}

	auditor := &ContactAuditor{
		logDir:        logDir,
		batchSize:     defaultBatchSize,
		flushInterval: flushInterval,
		batchLogs:     make([]AuditLog, 0, defaultBatchSize),
		now:           time.Now,
	}

	auditor.batchMu.Lock()
	auditor.flushTimer = time.AfterFunc(flushInterval, auditor.tick)
	auditor.batchMu.Unlock()

	return auditor, nil
}

// tick flushes whatever is pending and re-arms the timer until Close.
func (a *ContactAuditor) tick() {
	_ = a.Flush()

	a.batchMu.Lock()
	defer a.batchMu.Unlock()
	if !a.closed {
		a.flushTimer.Reset(a.flushInterval)
	}
}

// LogFile returns the file that entries logged now are written to.
func (a *ContactAuditor) LogFile() string {
	return a.logPath(a.now())
}

func (a *ContactAuditor) logPath(t time.Time) string {
	return filepath.Join(a.logDir, fmt.Sprintf("contact_audit_%s.log", t.Format("2006-01-02")))
}

// LogContactAction logs a contact-related action
func (a *ContactAuditor) LogContactAction(action AuditAction, contactID string, details map[string]interface{}) error {
	log := AuditLog{
		ID:        uuid.NewString(),
		ContactID: contactID,
		Action:    action,
		Timestamp: a.now(),
		Details:   details,
	}

	a.batchMu.Lock()
	a.batchLogs = append(a.batchLogs, log)

	if len(a.batchLogs) >= a.batchSize {
		a.batchMu.Unlock()
		return a.Flush()
	}
	a.batchMu.Unlock()

	return nil
}

// Flush writes all pending audit logs to storage. Each entry goes to the
// file for the day it was logged.
func (a *ContactAuditor) Flush() error {
	a.batchMu.Lock()
	if len(a.batchLogs) == 0 {
		a.batchMu.Unlock()
		return nil
	}

	logsToFlush := make([]AuditLog, len(a.batchLogs))
	copy(logsToFlush, a.batchLogs)
	a.batchLogs = a.batchLogs[:0]
	a.batchMu.Unlock()

	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	var (
		file     *os.File
		openPath string
	)
	defer func() {
		if file != nil {
			file.Close()
		}
	}()

	for _, log := range logsToFlush {
		path := a.logPath(log.Timestamp)
		if path != openPath {
			if file != nil {
				file.Close()
			}
			var err error
			file, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				file = nil
				return fmt.Errorf("failed to open audit log file: %w", err)
			}
			openPath = path
		}

		logJSON, err := json.Marshal(log)
		if err != nil {
			return fmt.Errorf("failed to marshal audit log: %w", err)
		}

		if _, err := file.Write(append(logJSON, '\n')); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
	}

	return nil
}

// GetContactHistory returns every entry recorded for contactID across all
// daily log files, oldest first.
func (a *ContactAuditor) GetContactHistory(contactID string) ([]AuditLog, error) {
	var logs []AuditLog

	if err := a.Flush(); err != nil {
		return nil, err
	}

	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	// Date-stamped names sort chronologically.
	files, err := filepath.Glob(filepath.Join(a.logDir, "contact_audit_*.log"))
	if err != nil {
		return nil, fmt.Errorf("failed to list audit log files: %w", err)
	}
	sort.Strings(files)

	for _, path := range files {
		fileLogs, err := readContactLogs(path, contactID)
		if err != nil {
			return nil, err
		}
		logs = append(logs, fileLogs...)
	}

	return logs, nil
}

func readContactLogs(path, contactID string) ([]AuditLog, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log file: %w", err)
	}
	defer file.Close()

	var logs []AuditLog
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var log AuditLog
		if err := json.Unmarshal(scanner.Bytes(), &log); err != nil {
			// A torn line from an interrupted write.
			continue
		}

		if log.ContactID == contactID {
			logs = append(logs, log)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log file: %w", err)
	}

	return logs, nil
}

// Close ensures all pending logs are written
func (a *ContactAuditor) Close() error {
	a.batchMu.Lock()
	a.closed = true
	a.flushTimer.Stop()
	a.batchMu.Unlock()

	return a.Flush()
}
