package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/andybalholm/brotli"
)

// DumpHTML writes a brotli-compressed copy of markup under dir for
// debugging pages that rendered unexpectedly (for example a listing page
// with no course links). Returns the written path.
func DumpHTML(dir, label, markup string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("artifacts: %w", err)
	}

	name := fmt.Sprintf("debug_%s_%s.html.br", label, time.Now().Format("150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("artifacts: %w", err)
	}

	w := brotli.NewWriter(f)
	if _, err := w.Write([]byte(markup)); err != nil {
		f.Close()
		return "", fmt.Errorf("artifacts: write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return "", fmt.Errorf("artifacts: flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("artifacts: close %s: %w", path, err)
	}
	return path, nil
}
