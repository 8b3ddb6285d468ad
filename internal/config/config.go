package config

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://auto-order-backend.onrender.com"
	DefaultTimeout = 10 * time.Second
	rcName         = ".orderdashrc"
)

// rc / env keys
const (
	KeyBaseURL   = "ORDERS_BASE_URL"
	KeyFile      = "ORDERS_FILE"
	KeyNamesFile = "NAMES_FILE"
	KeyExportDir = "EXPORT_DIR"
	KeyTimeoutMS = "ORDERS_TIMEOUT_MS"
	KeyRetryMax  = "ORDERS_RETRY_MAX"
	KeyLogLevel  = "LOG_LEVEL"
)

type Config struct {
	BaseURL    string
	OrdersFile string // offline source; when set no HTTP request is made
	NamesFile  string
	ExportDir  string
	Timeout    time.Duration
	RetryMax   int
	LogLevel   string // debug, info, warn or error; empty keeps logs off
}

// Default returns the configuration used when neither rc file nor
// environment say otherwise.
func Default() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		ExportDir: ".",
		Timeout:   DefaultTimeout,
	}
}

// DefaultPath returns ~/.orderdashrc, or ./.orderdashrc when the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return rcName
	}
	return filepath.Join(home, rcName)
}

// Load reads KEY=VALUE lines from path and applies environment overrides on
// top. A missing file is not an error; the returned error is only non-nil
// for unreadable files or malformed values.
func Load(path string) (Config, error) {
	cfg := Default()
	values := map[string]string{}

	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			sc := bufio.NewScanner(f)
			for sc.Scan() {
				line := strings.TrimSpace(sc.Text())
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}
				k, v, ok := strings.Cut(line, "=")
				if !ok {
					continue
				}
				values[strings.TrimSpace(k)] = strings.TrimSpace(v)
			}
			if err := sc.Err(); err != nil {
				return cfg, fmt.Errorf("read %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// env only
		default:
			return cfg, err
		}
	}

	for _, k := range []string{KeyBaseURL, KeyFile, KeyNamesFile, KeyExportDir, KeyTimeoutMS, KeyRetryMax, KeyLogLevel} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			values[k] = v
		}
	}

	if err := cfg.apply(values); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) apply(values map[string]string) error {
	if v := values[KeyBaseURL]; v != "" {
		c.BaseURL = strings.TrimRight(v, "/")
	}
	if v := values[KeyFile]; v != "" {
		c.OrdersFile = v
	}
	if v := values[KeyNamesFile]; v != "" {
		c.NamesFile = v
	}
	if v := values[KeyExportDir]; v != "" {
		c.ExportDir = v
	}
	if v := values[KeyTimeoutMS]; v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return fmt.Errorf("%s: invalid value %q", KeyTimeoutMS, v)
		}
		c.Timeout = time.Duration(ms) * time.Millisecond
	}
	if v := values[KeyRetryMax]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("%s: invalid value %q", KeyRetryMax, v)
		}
		c.RetryMax = n
	}
	if v := values[KeyLogLevel]; v != "" {
		switch lv := strings.ToLower(v); lv {
		case "debug", "info", "warn", "warning", "error":
			c.LogLevel = lv
		default:
			return fmt.Errorf("%s: invalid value %q", KeyLogLevel, v)
		}
	}
	return nil
}

// Validate checks that the configuration can be used to fetch orders.
func (c Config) Validate() error {
	if c.OrdersFile != "" {
		return nil
	}
	if c.BaseURL == "" {
		return errors.New("base url empty")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base url %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base url %q: host missing", c.BaseURL)
	}
	return nil
}

// Save writes cfg as KEY=VALUE lines. Empty values are omitted.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString(KeyBaseURL + "=" + cfg.BaseURL + "\n")
	if cfg.OrdersFile != "" {
		b.WriteString(KeyFile + "=" + cfg.OrdersFile + "\n")
	}
	if cfg.NamesFile != "" {
		b.WriteString(KeyNamesFile + "=" + cfg.NamesFile + "\n")
	}
	if cfg.ExportDir != "" {
		b.WriteString(KeyExportDir + "=" + cfg.ExportDir + "\n")
	}
	if cfg.Timeout > 0 {
		b.WriteString(KeyTimeoutMS + "=" + strconv.FormatInt(cfg.Timeout.Milliseconds(), 10) + "\n")
	}
	if cfg.RetryMax > 0 {
		b.WriteString(KeyRetryMax + "=" + strconv.Itoa(cfg.RetryMax) + "\n")
	}
	if cfg.LogLevel != "" {
		b.WriteString(KeyLogLevel + "=" + cfg.LogLevel + "\n")
	}
	return os.WriteFile(path, []byte(b.String()), 0o600)
}
