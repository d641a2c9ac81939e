package ranger

import (
	"errors"
	"fmt"
)

// ErrBadSize возвращается, когда размер диапазона меньше 1.
var ErrBadSize = errors.New("range size must be at least 1")

// Range: диапазон страниц, 0-based, включительно с обеих сторон.
type Range struct{ From, To int }

// Len возвращает количество страниц в диапазоне.
func (r Range) Len() int {
	return r.To - r.From + 1
}

func (r Range) String() string {
	return fmt.Sprintf("[%d..%d]", r.From, r.To)
}

// Effective возвращает количество страниц, которое реально будет нарезано.
// limit == nil означает «без ограничения»; ограничение действует, только если оно меньше total.
func Effective(total int, limit *int) int {
	if limit != nil && *limit < total {
		return *limit
	}

	return total
}

// Split режет [0, count) на последовательные диапазоны по size страниц.
// Последний диапазон может быть короче. count <= 0 даёт пустой срез.
func Split(count, size int) ([]Range, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrBadSize, size)
	}

	if count <= 0 {
		return []Range{}, nil
	}

	out := make([]Range, 0, (count+size-1)/size)

	for cur := 0; cur < count; cur += size {
		end := min(cur+size, count) - 1
		out = append(out, Range{From: cur, To: end})
	}

	return out, nil
}
