// Package backup snapshots the generated decoration directory into
// timestamped tar.xz archives and restores them.
package backup

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
)

const archivePrefix = "xfwm4_"

// Snapshot archives srcDir into backupsDir as xfwm4_<stamp>.tar.xz and
// returns the archive path. Paths inside the archive are relative to
// srcDir.
func Snapshot(srcDir, backupsDir string) (string, error) {
	if err := os.MkdirAll(backupsDir, 0o755); err != nil {
		return "", fmt.Errorf("creating backups dir: %w", err)
	}

	stamp := time.Now().Format("2006-01-02_15-04-05")
	path := filepath.Join(backupsDir, archivePrefix+stamp+".tar.xz")

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating archive: %w", err)
	}
	defer out.Close()

	xzw, err := xz.NewWriter(out)
	if err != nil {
		return "", fmt.Errorf("creating xz writer: %w", err)
	}
	tw := tar.NewWriter(xzw)

	err = filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("archiving %s: %w", srcDir, err)
	}

	if err := tw.Close(); err != nil {
		return "", fmt.Errorf("finalizing tar: %w", err)
	}
	if err := xzw.Close(); err != nil {
		return "", fmt.Errorf("finalizing xz: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing archive: %w", err)
	}
	return path, nil
}

// Restore replaces destDir with the contents of the given archive.
func Restore(archive, destDir string) error {
	in, err := os.Open(archive)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer in.Close()

	xzr, err := xz.NewReader(in)
	if err != nil {
		return fmt.Errorf("creating xz reader: %w", err)
	}
	tr := tar.NewReader(xzr)

	if err := os.RemoveAll(destDir); err != nil {
		return fmt.Errorf("removing %s: %w", destDir, err)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", destDir, err)
	}

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading archive: %w", err)
		}

		name := filepath.FromSlash(hdr.Name)
		// Refuse entries that would escape the destination.
		if strings.Contains(name, "..") || filepath.IsAbs(name) {
			return fmt.Errorf("archive entry escapes destination: %s", hdr.Name)
		}
		target := filepath.Join(destDir, name)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, hdr.FileInfo().Mode().Perm()); err != nil {
				return fmt.Errorf("creating dir %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("creating dir for %s: %w", target, err)
			}
			f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, hdr.FileInfo().Mode().Perm())
			if err != nil {
				return fmt.Errorf("creating %s: %w", target, err)
			}
			if _, err := io.Copy(f, tr); err != nil {
				f.Close()
				return fmt.Errorf("extracting %s: %w", target, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", target, err)
			}
		}
	}
}

// Latest returns the newest snapshot in backupsDir, or "" when none exist.
// Archive names embed a sortable timestamp, so lexical order is age order.
func Latest(backupsDir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(backupsDir, archivePrefix+"*.tar.xz"))
	if err != nil {
		return "", fmt.Errorf("listing backups: %w", err)
	}
	if len(matches) == 0 {
		return "", nil
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}
