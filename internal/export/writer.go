// Package export hands finished export blobs to the outside world: files on
// disk or the system clipboard.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"golang.org/x/sync/errgroup"

	"auto-order-dashboard/internal/core/browser"
	"auto-order-dashboard/internal/infra/logx"
)

// ErrEmptyFilename is returned when a blob has no usable filename.
var ErrEmptyFilename = errors.New("export: empty filename")

// ErrNotText is returned when a binary blob is sent to the clipboard.
var ErrNotText = errors.New("export: blob is not text")

// Writer saves blobs into Dir. An empty Dir means the working directory.
type Writer struct {
	Dir string
}

// Save writes e to Dir under the base name of e.Filename and returns the
// final path. The file is written to a temp file first and renamed into
// place.
func (w Writer) Save(e browser.Export) (string, error) {
	name := filepath.Base(strings.TrimSpace(e.Filename))
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "", ErrEmptyFilename
	}
	dir := w.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export %s: %w", name, err)
	}
	final := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("export %s: %w", name, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(e.Data); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", fmt.Errorf("export %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", fmt.Errorf("export %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return "", fmt.Errorf("export %s: %w", name, err)
	}
	if err := os.Rename(tmpName, final); err != nil {
		cleanup()
		return "", fmt.Errorf("export %s: %w", name, err)
	}
	logx.Log(logx.LevelInfo, "export saved", map[string]any{
		"path":         final,
		"bytes":        len(e.Data),
		"content_type": e.ContentType,
	})
	return final, nil
}

// SaveAll writes every blob concurrently. Paths are returned in input order;
// the first failure cancels the remaining writes.
func (w Writer) SaveAll(ctx context.Context, exports []browser.Export) ([]string, error) {
	paths := make([]string, len(exports))
	var mu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(4)
	for i, e := range exports {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			p, err := w.Save(e)
			if err != nil {
				return err
			}
			mu.Lock()
			paths[i] = p
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// writeClipboard is swapped in tests; headless CI has no clipboard.
var writeClipboard = clipboard.WriteAll

// Clipboard copies a textual blob to the system clipboard.
func Clipboard(e browser.Export) error {
	if !isText(e.ContentType) {
		return fmt.Errorf("%w: %s", ErrNotText, e.ContentType)
	}
	if err := writeClipboard(string(e.Data)); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

func isText(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.HasPrefix(ct, "text/") || strings.HasPrefix(ct, "application/json")
}
