// Package faillog appends failures to a date-partitioned plain-text log file
// for offline diagnosis. Writes are best-effort and never return an error.
package faillog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	instance *FailureLog
	once     sync.Once
)

type FailureLog struct {
	dir    string
	prefix string
	mu     sync.Mutex
}

// Init initializes the global failure log instance
func Init(dir string) {
	once.Do(func() {
		instance = &FailureLog{
			dir:    dir,
			prefix: "log",
		}
	})
}

// Error records a failure message in the current day's log file
func Error(format string, args ...any) {
	write("ERROR", fmt.Sprintf(format, args...))
}

// Info records an informational message in the current day's log file
func Info(format string, args ...any) {
	write("INFO", fmt.Sprintf(format, args...))
}

func write(level, message string) {
	if instance == nil {
		log.Printf("⚠️ Failure log not initialized, skipping entry: %s", message)
		return
	}

	instance.append(level, message)
}

func (f *FailureLog) append(level, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	filename := filepath.Join(f.dir, fmt.Sprintf("%s_%s.txt", f.prefix, now.Format("20060102")))

	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("⚠️ Failed to open failure log file %s: %v", filename, err)
		return
	}
	defer file.Close()

	entry := fmt.Sprintf("[%s] [%s] - %s\n", now.Format("2006-01-02 15:04:05"), level, message)
	if _, err := file.WriteString(entry); err != nil {
		log.Printf("⚠️ Failed to write failure log entry: %v", err)
	}
}
