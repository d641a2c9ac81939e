package partition

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"pdf-splitter/internal/ranger"
)

const (
	DefaultBatchSize = 10

	// minIndexWidth: минимальная ширина номера страницы в имени файла.
	minIndexWidth = 4
	defaultExt    = ".pdf"
)

// Config: входные параметры одной нарезки.
type Config struct {
	// BatchSize: максимум страниц в одной части, > 0.
	BatchSize int
	// TestPage ограничивает количество нарезаемых страниц; nil: без ограничения.
	TestPage *int
	// OutDir: каталог для частей; пусто: рядом с исходным файлом.
	OutDir string
}

func (c Config) Validate() error {
	if c.BatchSize < 1 {
		return fmt.Errorf("%w: batch size must be at least 1, got %d", ErrInvalidConfiguration, c.BatchSize)
	}

	if c.TestPage != nil && *c.TestPage < 0 {
		return fmt.Errorf("%w: test page must not be negative, got %d", ErrInvalidConfiguration, *c.TestPage)
	}

	return nil
}

// IndexWidth возвращает ширину поля номера страницы для документа с effective страницами.
// Не меньше 4 знаков; расширяется, если номера не помещаются, чтобы имена
// оставались однозначными и сортировались так же, как страницы.
func IndexWidth(effective int) int {
	return max(len(strconv.Itoa(max(effective-1, 0))), minIndexWidth)
}

// OutputPath строит имя части: {dir}/{base}_{from}_{to}{ext}.
func OutputPath(source, outDir string, r ranger.Range, width int) string {
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(source)
	}

	name := filepath.Base(source)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	// ".hidden": точка в начале: часть имени, а не расширение
	if base == "" {
		base, ext = name, ""
	}
	if ext == "" {
		ext = defaultExt
	}

	return filepath.Join(dir, fmt.Sprintf("%s_%0*d_%0*d%s", base, width, r.From, width, r.To, ext))
}

var partNameRe = regexp.MustCompile(`_(\d{4,})_(\d{4,})(\.[^.]*)?$`)

// ParseOutputPath восстанавливает диапазон из имени, построенного OutputPath.
func ParseOutputPath(path string) (ranger.Range, error) {
	m := partNameRe.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return ranger.Range{}, fmt.Errorf("%s: not a part name", path)
	}

	from, err := strconv.Atoi(m[1])
	if err != nil {
		return ranger.Range{}, fmt.Errorf("%s: %w", path, err)
	}
	to, err := strconv.Atoi(m[2])
	if err != nil {
		return ranger.Range{}, fmt.Errorf("%s: %w", path, err)
	}

	if to < from {
		return ranger.Range{}, fmt.Errorf("%s: range %d..%d is reversed", path, from, to)
	}

	return ranger.Range{From: from, To: to}, nil
}
