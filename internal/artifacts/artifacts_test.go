package artifacts

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
)

func TestDumpHTMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	markup := "<html><body><p>empty listing page</p></body></html>"

	path, err := DumpHTML(dir, "listing_p3", markup)
	if err != nil {
		t.Fatalf("DumpHTML returned error: %v", err)
	}
	if !strings.HasSuffix(path, ".html.br") {
		t.Errorf("path = %q, want .html.br suffix", path)
	}
	if !strings.Contains(path, "listing_p3") {
		t.Errorf("path = %q, want label in name", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open artifact: %v", err)
	}
	defer f.Close()

	decoded, err := io.ReadAll(brotli.NewReader(f))
	if err != nil {
		t.Fatalf("decompress artifact: %v", err)
	}
	if string(decoded) != markup {
		t.Errorf("decompressed content = %q, want original markup", decoded)
	}
}
