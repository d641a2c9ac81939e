package verify

import (
	"errors"
	"fmt"
	"os"

	rpdf "rsc.io/pdf"

	"pdf-splitter/internal/partition"
)

var ErrPageMismatch = errors.New("page count mismatch")

// PageCount считает страницы независимым от pdfcpu ридером.
func PageCount(path string) (n int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	// rsc.io/pdf паникует на некоторых битых файлах
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("read %s: %v", path, r)
		}
	}()

	doc, err := rpdf.NewReader(f, info.Size())
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	return doc.NumPage(), nil
}

// Parts проверяет, что в каждой части ровно столько страниц, сколько в её диапазоне.
// Возвращает все найденные расхождения одной ошибкой.
func Parts(parts []partition.Part) error {
	var errs []error

	for _, p := range parts {
		n, err := PageCount(p.Path)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if n != p.Range.Len() {
			errs = append(errs, fmt.Errorf("%w: %s has %d pages, range %v expects %d",
				ErrPageMismatch, p.Path, n, p.Range, p.Range.Len()))
		}
	}

	return errors.Join(errs...)
}
