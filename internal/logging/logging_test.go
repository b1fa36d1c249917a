package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitDefaultsToInfo(t *testing.T) {
	if err := Init(Config{}); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if L().GetLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info level, got %s", L().GetLevel())
	}
}

func TestInitParsesLevel(t *testing.T) {
	if err := Init(Config{Level: "warn"}); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if L().GetLevel() != zerolog.WarnLevel {
		t.Fatalf("expected warn level, got %s", L().GetLevel())
	}
}

func TestInitDebugOverridesLevel(t *testing.T) {
	if err := Init(Config{Level: "error", Debug: true}); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if L().GetLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %s", L().GetLevel())
	}
}

func TestInitRejectsBadLevel(t *testing.T) {
	if err := Init(Config{Level: "shout"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestInitRejectsBadFormat(t *testing.T) {
	if err := Init(Config{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWithRunTagsEveryEvent(t *testing.T) {
	if err := Init(Config{Format: "json"}); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	log := WithRun("run-42")
	log.Info().Str("package", "com.ibm.websphere.liberty.v85").Msg("installing")

	line := buf.String()
	if !strings.Contains(line, `"run_id":"run-42"`) {
		t.Fatalf("expected run id field, got %q", line)
	}
	if !strings.Contains(line, `"message":"installing"`) {
		t.Fatalf("expected message field, got %q", line)
	}
	if !strings.Contains(line, `"package":"com.ibm.websphere.liberty.v85"`) {
		t.Fatalf("expected package field, got %q", line)
	}
}

func TestSetOutputKeepsLevel(t *testing.T) {
	if err := Init(Config{Level: "error", Format: "json"}); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	log := L()
	log.Info().Msg("quiet")
	if buf.Len() != 0 {
		t.Fatalf("info must be suppressed at error level, got %q", buf.String())
	}
	log.Error().Msg("loud")
	if !strings.Contains(buf.String(), `"loud"`) {
		t.Fatalf("expected error event, got %q", buf.String())
	}
}
