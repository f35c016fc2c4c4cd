package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLoggerDefaultsToInfo(t *testing.T) {
	t.Parallel()

	logger, err := NewLogger("")
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}

	if logger.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level, got %s", logger.GetLevel())
	}
}

func TestNewLoggerParsesLevelCaseInsensitively(t *testing.T) {
	t.Parallel()

	logger, err := NewLogger("DEBUG")
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}

	if logger.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", logger.GetLevel())
	}
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	if _, err := NewLogger("chatty"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestWithComponentEmitsJSONField(t *testing.T) {
	t.Parallel()

	logger, err := NewLogger("info")
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}

	var buf bytes.Buffer
	logger.SetOutput(&buf)

	WithComponent(logger, "pagetitle.repository").Info("hello")

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}

	if payload["component"] != "pagetitle.repository" {
		t.Fatalf("expected component field, got %v", payload["component"])
	}

	if payload["msg"] != "hello" {
		t.Fatalf("expected msg field, got %v", payload["msg"])
	}
}

func TestNewGormLoggerHandlesNilLogger(t *testing.T) {
	t.Parallel()

	if NewGormLogger(nil) == nil {
		t.Fatalf("expected fallback gorm logger")
	}
}

func TestInitSentryWithoutDSNIsNoop(t *testing.T) {
	t.Parallel()

	logger := logrus.New()

	flush, err := InitSentry(logger, SentrySettings{})
	if err != nil {
		t.Fatalf("InitSentry returned error: %v", err)
	}

	if hooks := logger.Hooks[logrus.ErrorLevel]; len(hooks) != 0 {
		t.Fatalf("expected no hooks when DSN is empty, got %d", len(hooks))
	}

	flush()
}

func TestInitSentryInstallsSingleErrorHook(t *testing.T) {
	t.Parallel()

	logger := logrus.New()

	flush, err := InitSentry(logger, SentrySettings{DSN: "https://public@o0.ingest.sentry.io/1", Environment: "test"})
	if err != nil {
		t.Fatalf("InitSentry returned error: %v", err)
	}
	defer flush()

	if hooks := logger.Hooks[logrus.ErrorLevel]; len(hooks) != 1 {
		t.Fatalf("expected exactly one error-level hook, got %d", len(hooks))
	}

	if hooks := logger.Hooks[logrus.WarnLevel]; len(hooks) != 0 {
		t.Fatalf("expected warn entries to stay out of sentry, got %d hooks", len(hooks))
	}
}
