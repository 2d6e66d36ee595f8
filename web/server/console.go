package server

import (
	"fmt"
	"log"
	"strings"

	"github.com/df07/sphere-raytracer/pkg/core"
)

// Console message levels
const (
	levelInfo    = "info"
	levelWarning = "warning"
	levelError   = "error"
)

// ConsoleMessage is one render log line, buffered until the response headers are written
type ConsoleMessage struct {
	Message string
	Level   string
}

// WebLogger is the core.Logger handed to a request's raytracer. Every line goes to the
// server log tagged with the render ID, and is also offered to the request's console.
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a logger for one render request. consoleChan may be nil.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{renderID: renderID, consoleChan: consoleChan}
}

func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	if trimmed := strings.TrimSpace(message); trimmed != "" {
		log.Printf("[%s] %s", wl.renderID, trimmed)
	}

	if wl.consoleChan == nil {
		return
	}
	// Never block the render on a slow or full console
	select {
	case wl.consoleChan <- ConsoleMessage{Message: message, Level: messageLevel(message)}:
	default:
	}
}

// messageLevel classifies a log line by its wording
func messageLevel(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "error"), strings.Contains(lower, "failed"):
		return levelError
	case strings.Contains(lower, "warning"):
		return levelWarning
	}
	return levelInfo
}
