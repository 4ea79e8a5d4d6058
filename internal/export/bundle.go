package export

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/klauspost/compress/flate"
)

// newWorkDir allocates a uniquely-named private working directory for one
// export attempt, with the meshes/ and textures/ subtrees already present.
// The caller owns the directory and must remove it on every exit path.
func newWorkDir() (string, error) {
	dir := filepath.Join(os.TempDir(), "scenepack-"+uuid.NewString())
	for _, sub := range []string{"meshes", "textures"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return "", fmt.Errorf("creating working directory: %w", err)
		}
	}
	return dir, nil
}

// archiveDir zips the working directory tree into dest, overwriting any
// pre-existing file there. Entries use forward-slash paths relative to
// srcDir so the archive is portable.
func archiveDir(srcDir, dest string) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestSpeed)
	})

	walkErr := filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}

		entry, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}

		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(entry, f)
		return err
	})

	if walkErr != nil {
		zw.Close()
		out.Close()
		return fmt.Errorf("archiving package: %w", walkErr)
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return fmt.Errorf("finalizing archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return nil
}
