package partition

import (
	"errors"
	"fmt"

	"pdf-splitter/internal/ranger"
)

var (
	// ErrInvalidConfiguration: неположительный размер пачки или отрицательный test-page.
	// Возвращается до любого обращения к документу.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrSourceUnreadable: исходный документ не открылся или не отдал количество страниц.
	ErrSourceUnreadable = errors.New("source unreadable")
	// ErrArtifactWriteFailed: не удалось извлечь или сохранить конкретный диапазон.
	ErrArtifactWriteFailed = errors.New("artifact write failed")
)

// ArtifactWriteError описывает упавший диапазон. errors.Is срабатывает
// и на ErrArtifactWriteFailed, и на исходную причину.
type ArtifactWriteError struct {
	Range ranger.Range
	Path  string
	Err   error
}

func (e *ArtifactWriteError) Error() string {
	return fmt.Sprintf("%s: pages %v -> %s: %v", ErrArtifactWriteFailed, e.Range, e.Path, e.Err)
}

func (e *ArtifactWriteError) Unwrap() []error {
	return []error{ErrArtifactWriteFailed, e.Err}
}

func sourceUnreadable(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, path, err)
}
