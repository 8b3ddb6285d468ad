package logx

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "debug"
	}
}

func (l Level) zap() zapcore.Level {
	switch l {
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.DebugLevel
	}
}

// ParseLevel maps a level name to a Level, defaulting to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

var (
	mu       sync.RWMutex
	wmu      sync.Mutex // serialises writes to shared outputs
	minLevel = LevelWarn
	out      = newCore(io.Discard)
	secrets  = make([]string, 0)
	verbose  bool
)

// SetOutput sets the destination for logs.
func SetOutput(w io.Writer) {
	c := newCore(w)
	mu.Lock()
	out = c
	mu.Unlock()
}

// SetMinLevel sets the minimum level to emit.
func SetMinLevel(l Level) { mu.Lock(); minLevel = l; mu.Unlock() }

// SetVerbose toggles verbose output (no truncation of large fields/messages).
func SetVerbose(v bool) { mu.Lock(); verbose = v; mu.Unlock() }

// Verbose returns whether verbose output is enabled.
func Verbose() bool { mu.RLock(); defer mu.RUnlock(); return verbose }

// RegisterSecret adds a string to be redacted in outputs.
func RegisterSecret(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	mu.Lock()
	secrets = append(secrets, s)
	mu.Unlock()
}

// RegisterSecrets adds multiple secrets for redaction.
func RegisterSecrets(list []string) {
	for _, s := range list {
		RegisterSecret(s)
	}
}

// StdlogWriter wraps writes as structured JSON lines at a fixed level.
// It applies redaction and optional truncation when verbose is disabled.
func StdlogWriter(level Level, w io.Writer) io.Writer {
	if w == nil {
		w = os.Stderr
	}
	return &stdlogWriter{level: level, core: newCore(w)}
}

type stdlogWriter struct {
	level Level
	core  zapcore.Core
}

func (sw *stdlogWriter) Write(p []byte) (int, error) {
	lines := bytes.Split(p, []byte("\n"))
	written := 0
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		if err := emit(sw.core, sw.level, string(line), nil); err != nil {
			return written, err
		}
		written += len(line) + 1 // account for newline
	}
	return written, nil
}

// Debugf logs a debug message.
func Debugf(format string, args ...any) { _ = emit(output(), LevelDebug, fmt.Sprintf(format, args...), nil) }

// Infof logs an info message.
func Infof(format string, args ...any) { _ = emit(output(), LevelInfo, fmt.Sprintf(format, args...), nil) }

// Warnf logs a warning message.
func Warnf(format string, args ...any) { _ = emit(output(), LevelWarn, fmt.Sprintf(format, args...), nil) }

// Errorf logs an error message.
func Errorf(format string, args ...any) { _ = emit(output(), LevelError, fmt.Sprintf(format, args...), nil) }

// Log emits msg with structured fields.
func Log(l Level, msg string, fields map[string]any) { _ = emit(output(), l, msg, fields) }

func output() zapcore.Core {
	mu.RLock()
	defer mu.RUnlock()
	return out
}

var encoderConfig = zapcore.EncoderConfig{
	TimeKey:        "ts",
	LevelKey:       "level",
	MessageKey:     "msg",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.LowercaseLevelEncoder,
	EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
	EncodeDuration: zapcore.StringDurationEncoder,
}

// newCore builds the JSON core for w. Cores are created once per
// destination and shared by every emit.
func newCore(w io.Writer) zapcore.Core {
	return zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(w), zapcore.DebugLevel)
}

func emit(core zapcore.Core, lvl Level, msg string, fields map[string]any) error {
	mu.RLock()
	ml := minLevel
	v := verbose
	mu.RUnlock()
	if lvl < ml {
		return nil
	}
	msg = redact(msg)
	if !v {
		msg = truncate(msg, 2*1024) // 2KB default limit for non-verbose messages
	}

	zf := make([]zapcore.Field, 0, len(fields)+1)
	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		zf = append(zf, zap.Namespace("fields"))
		for _, k := range keys {
			val := fields[k]
			if s, ok := val.(string); ok {
				s = redact(s)
				if !v {
					s = truncate(s, 2*1024)
				}
				val = s
			}
			zf = append(zf, zap.Any(k, val))
		}
	}

	wmu.Lock()
	defer wmu.Unlock()
	return core.Write(zapcore.Entry{Level: lvl.zap(), Time: time.Now(), Message: msg}, zf)
}

func redact(s string) string {
	mu.RLock()
	defer mu.RUnlock()
	if len(secrets) == 0 {
		return s
	}
	out := s
	for _, sec := range secrets {
		if sec == "" {
			continue
		}
		out = strings.ReplaceAll(out, sec, "[REDACTED]")
	}
	return out
}

func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	// keep last 10 chars to aid context
	suffix := "… [truncated]"
	if limit > len(suffix)+10 {
		head := s[:limit-len(suffix)-10]
		tail := s[len(s)-10:]
		return head + suffix + tail
	}
	return s[:limit]
}
