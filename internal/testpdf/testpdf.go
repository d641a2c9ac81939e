// Package testpdf пишет минимальные корректные PDF для тестов.
// Страница i (0-based) имеет MediaBox шириной BaseWidth+i, по ширине страницы
// в результате можно понять, какая исходная страница туда попала.
package testpdf

import (
	"bytes"
	"fmt"
	"os"
)

const (
	BaseWidth = 200
	Height    = 300
)

// Bytes возвращает PDF 1.4 с pages страницами и классической xref-таблицей.
func Bytes(pages int) []byte {
	var buf bytes.Buffer
	offsets := []int{0}

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets)-1, body)
	}

	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	// объект 1 каталог, 2 дерево страниц, далее пары (страница, содержимое)
	obj("<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]byte, 0, pages*8)
	for i := 0; i < pages; i++ {
		kids = fmt.Appendf(kids, "%d 0 R ", 3+2*i)
	}
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", bytes.TrimSpace(kids), pages))

	for i := 0; i < pages; i++ {
		obj(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << >> /Contents %d 0 R >>",
			BaseWidth+i, Height, 4+2*i,
		))
		content := fmt.Sprintf("0 0 %d %d re S", BaseWidth+i, Height)
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets[1:] {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets), xref)

	return buf.Bytes()
}

// Write пишет PDF с pages страницами в path.
func Write(path string, pages int) error {
	return os.WriteFile(path, Bytes(pages), 0o644)
}
