package server

import (
	"testing"
	"time"
)

func TestWebLogger_SendsMessage(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("render-1", messageChan)

	logger.Printf("Loading %s with %d spheres...\n", "mirror-hall.json", 3)

	select {
	case msg := <-messageChan:
		if expected := "Loading mirror-hall.json with 3 spheres...\n"; msg.Message != expected {
			t.Errorf("Expected message %q, got %q", expected, msg.Message)
		}
		if msg.Level != levelInfo {
			t.Errorf("Expected level info, got %q", msg.Level)
		}
	default:
		t.Fatal("Expected a buffered console message")
	}
}

func TestWebLogger_PreservesOrder(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("render-2", messageChan)

	messages := []string{"Tile 1 done", "Tile 2 done", "Tile 3 done"}
	for _, msg := range messages {
		logger.Printf("%s\n", msg)
	}

	for i, expected := range messages {
		select {
		case msg := <-messageChan:
			if msg.Message != expected+"\n" {
				t.Errorf("Message %d: expected %q, got %q", i, expected+"\n", msg.Message)
			}
		default:
			t.Fatalf("Missing message %d", i)
		}
	}
}

func TestWebLogger_DoesNotBlock(t *testing.T) {
	// A full channel drops messages instead of stalling the render
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("render-3", messageChan)
	logger.Printf("first\n")
	logger.Printf("second\n")
	logger.Printf("third\n")

	if msg := <-messageChan; msg.Message != "first\n" {
		t.Errorf("Expected the first message to be kept, got %q", msg.Message)
	}

	// A nil channel only logs
	NewWebLogger("render-nil", nil).Printf("no console\n")
}

func TestMessageLevel(t *testing.T) {
	tests := []struct {
		message  string
		expected string
	}{
		{"Rendering default at 400x225\n", "info"},
		{"Render warning: bounce limit 20 exceeds the cap of 16", "warning"},
		{"Render failed: context canceled", "error"},
		{"Error: unknown scene", "error"},
	}

	for _, tt := range tests {
		if got := messageLevel(tt.message); got != tt.expected {
			t.Errorf("messageLevel(%q) = %q, expected %q", tt.message, got, tt.expected)
		}
	}
}

func TestDrainConsole(t *testing.T) {
	consoleChan, logger := (&Server{}).setupConsoleLogging()
	logger.Printf("Rendering %s...\n", "default")
	logger.Printf("\n")
	logger.Printf("Warning: bounce limit %d exceeds the cap of %d\n", 20, 16)
	logger.Printf("Render completed in %v\n", time.Second)

	lines := drainConsole(consoleChan)
	expected := []string{
		"Rendering default...",
		"[warning] Warning: bounce limit 20 exceeds the cap of 16",
		"Render completed in 1s",
	}
	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %v", len(expected), lines)
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("Line %d: expected %q, got %q", i, expected[i], lines[i])
		}
	}

	if again := drainConsole(consoleChan); len(again) != 0 {
		t.Errorf("Expected drained channel to be empty, got %v", again)
	}
}
