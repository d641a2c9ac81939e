package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Entry struct {
	Name string
	Size int64
}

// PathFor возвращает путь архива частей: {dir}/{base}_parts.tar.gz.
func PathFor(source, outDir string) string {
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(source)
	}

	name := filepath.Base(source)
	if ext := filepath.Ext(name); ext != "" && ext != name {
		name = strings.TrimSuffix(name, ext)
	}

	return filepath.Join(dir, name+"_parts.tar.gz")
}

// TarGzFiles упаковывает файлы в dstPath плоско, по базовым именам.
// Архив пишется во временный файл и переименовывается только целиком.
func TarGzFiles(paths []string, dstPath string) (err error) {
	dir := filepath.Dir(dstPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".archive-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	gz := gzip.NewWriter(tmp)
	tw := tar.NewWriter(gz)

	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		name := filepath.Base(p)
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate entry name %q", name)
		}
		seen[name] = struct{}{}

		if err = addFile(tw, p, name); err != nil {
			return fmt.Errorf("add %s: %w", p, err)
		}
	}

	if err = tw.Close(); err != nil {
		return fmt.Errorf("tar close: %w", err)
	}
	if err = gz.Close(); err != nil {
		return fmt.Errorf("gzip close: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return err
	}

	return os.Rename(tmpName, dstPath)
}

func addFile(tw *tar.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file")
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = name

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}

	_, err = io.Copy(tw, f)

	return err
}

// Entries читает оглавление tar.gz.
func Entries(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gzr.Close()

	var out []Entry

	tr := tar.NewReader(gzr)
	for {
		hdr, err := tr.Next()

		if err == io.EOF {
			return out, nil
		}

		if err != nil {
			return nil, fmt.Errorf("tar read: %w", err)
		}

		if hdr.FileInfo().IsDir() {
			continue
		}

		out = append(out, Entry{Name: hdr.Name, Size: hdr.Size})
	}
}
