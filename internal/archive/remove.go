package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SafeRemove удаляет файл только внутри baseDir:
// - symlink-и разрешаются до проверки
// - путь вне baseDir отклоняется
// - каталоги и системные пути не удаляются
// Отсутствующий файл не ошибка.
func SafeRemove(filePath, baseDir string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base directory: %w", err)
	}

	cleanPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to evaluate symlinks: %w", err)
	}

	cleanBaseDir, err := filepath.EvalSymlinks(absBaseDir)
	if err != nil {
		return fmt.Errorf("failed to evaluate base dir symlinks: %w", err)
	}

	relPath, err := filepath.Rel(cleanBaseDir, cleanPath)
	if err != nil {
		return fmt.Errorf("failed to get relative path: %w", err)
	}

	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path %s is outside base directory %s", cleanPath, cleanBaseDir)
	}

	if isDangerousPath(cleanPath) {
		return fmt.Errorf("refusing to remove dangerous path: %s", cleanPath)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("refusing to remove directory: %s", cleanPath)
	}

	if err := os.Remove(cleanPath); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}

	return nil
}

// RemoveParts удаляет части после упаковки. Ошибки по всем файлам собираются вместе.
func RemoveParts(paths []string, baseDir string) error {
	var errs []error
	for _, p := range paths {
		if err := SafeRemove(p, baseDir); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func isDangerousPath(path string) bool {
	dangerousPaths := []string{
		"/",
		"/bin",
		"/boot",
		"/dev",
		"/etc",
		"/home",
		"/lib",
		"/lib64",
		"/opt",
		"/proc",
		"/root",
		"/sbin",
		"/sys",
		"/usr",
		"/var",
		"/tmp",
	}

	cleanPath := filepath.Clean(path)

	for _, dangerous := range dangerousPaths {
		if cleanPath == dangerous {
			return true
		}
	}

	// /a слишком близко к корню
	parts := strings.Split(strings.Trim(cleanPath, string(filepath.Separator)), string(filepath.Separator))

	return len(parts) < 2
}
