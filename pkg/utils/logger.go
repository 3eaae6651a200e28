package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger for debug messages. This is the developer log: raw errors go here,
// users only ever see notifications.
var (
	mu        sync.Mutex
	isVerbose = false
	logFile   *os.File
)

// Log prints debug messages to the log file if verbose mode is enabled
func Log(text string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if isVerbose && logFile != nil {
		fmt.Fprintf(logFile, "%s "+text+"\n", append([]interface{}{time.Now().Format("15:04:05.000")}, args...)...)
	}
}

// LogError records a failed operation
func LogError(op string, err error) {
	if err != nil {
		Log("ERROR %s: %v", op, err)
	}
}

// LogPath is the file verbose logging writes to today
func LogPath(now time.Time) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("tickit_%s.log", now.Format("2006-01-02")))
}

// InitLogger initializes the logging system
func InitLogger(verbose bool) {
	mu.Lock()
	isVerbose = verbose
	mu.Unlock()

	if verbose {
		f, err := os.OpenFile(LogPath(time.Now()), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Printf("Error creating log file: %v\n", err)
			return
		}

		mu.Lock()
		logFile = f
		mu.Unlock()

		Log("Verbose logging enabled")
	}
}

// CloseLogger closes the log file if it's open
func CloseLogger() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
