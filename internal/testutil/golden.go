package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// goldenUpdateEnv rewrites golden files from the current output when set.
const goldenUpdateEnv = "GOLDEN_UPDATE"

// GoldenString compares rendered output with testdata/<name>.golden and
// reports the first differing line. Line endings in the golden file are
// normalized so checkouts with CRLF still match.
func GoldenString(t *testing.T, name, got string) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")
	if os.Getenv(goldenUpdateEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating testdata: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("updating %s: %v", path, err)
		}
		return
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v (run with %s=1 to create it)\ngot:\n%s", path, err, goldenUpdateEnv, got)
	}
	want := strings.ReplaceAll(string(raw), "\r\n", "\n")
	if got == want {
		return
	}

	gotLines := strings.Split(got, "\n")
	wantLines := strings.Split(want, "\n")
	for i := 0; i < len(gotLines) || i < len(wantLines); i++ {
		var g, w string
		if i < len(gotLines) {
			g = gotLines[i]
		}
		if i < len(wantLines) {
			w = wantLines[i]
		}
		if g != w {
			t.Errorf("%s: line %d differs\nwant: %q\n got: %q\nfull output:\n%s", name, i+1, w, g, got)
			return
		}
	}
	t.Errorf("%s: output differs in trailing newlines\nwant %q\n got %q", name, want, got)
}
