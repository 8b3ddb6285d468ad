package logx

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"
)

func TestRedactionInStdlogWriter(t *testing.T) {
	var buf bytes.Buffer
	w := StdlogWriter(LevelDebug, &buf)
	SetMinLevel(LevelDebug)
	SetVerbose(false)
	RegisterSecret("secret123")

	_, err := w.Write([]byte("this contains secret123 and should be redacted\n"))
	if err != nil {
		t.Fatalf("write error: %v", err)
	}
	got := buf.String()
	if strings.Contains(got, "secret123") {
		t.Fatalf("expected secret to be redacted, got: %s", got)
	}
	if !strings.Contains(got, "[REDACTED]") {
		t.Fatalf("expected [REDACTED] marker, got: %s", got)
	}
}

func TestTruncationWhenNotVerbose(t *testing.T) {
	var buf bytes.Buffer
	w := StdlogWriter(LevelDebug, &buf)
	SetMinLevel(LevelDebug)
	SetVerbose(false)

	long := strings.Repeat("a", 6000)
	_, err := w.Write([]byte(long + "\n"))
	if err != nil {
		t.Fatalf("write error: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "truncated") {
		t.Fatalf("expected truncation indicator, got: %s", got)
	}
}

func TestNoTruncationWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	w := StdlogWriter(LevelDebug, &buf)
	SetMinLevel(LevelDebug)
	SetVerbose(true)

	long := strings.Repeat("b", 4000)
	_, err := w.Write([]byte(long + "\n"))
	if err != nil {
		t.Fatalf("write error: %v", err)
	}
	got := buf.String()
	if strings.Contains(got, "truncated") {
		t.Fatalf("did not expect truncation, got: %s", got)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(io.Discard)
	SetMinLevel(LevelWarn)

	Infof("quiet %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got: %s", buf.String())
	}
	Errorf("loud %d", 2)
	if !strings.Contains(buf.String(), `"level":"error"`) || !strings.Contains(buf.String(), "loud 2") {
		t.Fatalf("expected error line, got: %s", buf.String())
	}
}

func TestLogEncodesFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(io.Discard)
	SetMinLevel(LevelDebug)
	RegisterSecret("hunter2")

	Log(LevelInfo, "orders fetched", map[string]any{"request_id": "abc", "count": 3, "url": "https://x/?k=hunter2"})

	var line struct {
		TS     string         `json:"ts"`
		Level  string         `json:"level"`
		Msg    string         `json:"msg"`
		Fields map[string]any `json:"fields"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}
	if line.Level != "info" || line.Msg != "orders fetched" || line.TS == "" {
		t.Fatalf("unexpected entry: %+v", line)
	}
	if line.Fields["request_id"] != "abc" || line.Fields["count"] != float64(3) {
		t.Fatalf("unexpected fields: %+v", line.Fields)
	}
	if strings.Contains(buf.String(), "hunter2") {
		t.Fatalf("secret leaked into fields: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"debug": LevelDebug, "WARN": LevelWarn, "warning": LevelWarn, "error": LevelError, "": LevelInfo}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetOutputReusesCore(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(io.Discard)
	SetMinLevel(LevelInfo)

	core := output()
	Infof("first")
	Infof("second")
	if output() != core {
		t.Fatal("logging should not rebuild the output core")
	}
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Fatalf("expected 2 lines, got %d: %s", got, buf.String())
	}

	var other bytes.Buffer
	SetOutput(&other)
	if output() == core {
		t.Fatal("SetOutput should install a core for the new writer")
	}
	Infof("third")
	if !strings.Contains(other.String(), "third") || strings.Contains(buf.String(), "third") {
		t.Fatalf("log went to the wrong writer: old=%q new=%q", buf.String(), other.String())
	}
}
