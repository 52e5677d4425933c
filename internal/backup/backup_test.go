package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"top-active.xpm":       "top contents\n",
		"sub/close-active.xpm": "close contents\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(src, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	backups := t.TempDir()
	archive, err := Snapshot(src, backups)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(archive, ".tar.xz") {
		t.Errorf("archive name = %q, want .tar.xz suffix", archive)
	}

	dest := filepath.Join(t.TempDir(), "restored")
	if err := Restore(archive, dest); err != nil {
		t.Fatal(err)
	}
	for name, want := range files {
		data, err := os.ReadFile(filepath.Join(dest, name))
		if err != nil {
			t.Fatalf("restored file %s: %v", name, err)
		}
		if string(data) != want {
			t.Errorf("restored %s = %q, want %q", name, data, want)
		}
	}
}

func TestRestoreReplacesDest(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "keep.xpm"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	archive, err := Snapshot(src, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	dest := t.TempDir()
	if err := os.WriteFile(filepath.Join(dest, "stale.xpm"), []byte("y"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Restore(archive, dest); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dest, "stale.xpm")); !os.IsNotExist(err) {
		t.Error("restore must fully replace the destination")
	}
	if _, err := os.Stat(filepath.Join(dest, "keep.xpm")); err != nil {
		t.Error("restored file missing")
	}
}

func TestLatest(t *testing.T) {
	backups := t.TempDir()

	got, err := Latest(backups)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("Latest on empty dir = %q, want empty", got)
	}

	old := filepath.Join(backups, "xfwm4_2026-01-02_10-00-00.tar.xz")
	newer := filepath.Join(backups, "xfwm4_2026-03-04_09-30-00.tar.xz")
	for _, p := range []string{old, newer} {
		if err := os.WriteFile(p, []byte("stub"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err = Latest(backups)
	if err != nil {
		t.Fatal(err)
	}
	if got != newer {
		t.Errorf("Latest = %q, want %q", got, newer)
	}
}
