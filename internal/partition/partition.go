package partition

import (
	"context"
	"fmt"

	"pdf-splitter/internal/ranger"
)

// Opener открывает исходный документ. Каждый вызов Open возвращает независимый дескриптор.
type Opener interface {
	Open(path string) (Document, error)
}

// Document: открытый исходный документ. Нарезка только читает его.
type Document interface {
	PageCount() (int, error)
	// ExtractRange возвращает новый документ со страницами [from, to] (0-based, включительно).
	ExtractRange(from, to int) (Artifact, error)
	Close() error
}

// Artifact: извлечённый диапазон, ещё не записанный на диск.
type Artifact interface {
	Save(path string) error
}

// Part: одна часть: диапазон страниц и путь файла.
type Part struct {
	Range ranger.Range
	Path  string
}

type Result struct {
	Source         string
	TotalPages     int
	EffectivePages int
	// Planned: все части по плану, по возрастанию страниц.
	Planned []Part
	// Parts: реально записанные части, в том же порядке.
	// При ошибке записи содержит части, успевшие записаться до неё.
	Parts []Part
}

// Paths возвращает пути записанных частей по порядку страниц.
func (r Result) Paths() []string {
	out := make([]string, 0, len(r.Parts))
	for _, p := range r.Parts {
		out = append(out, p.Path)
	}
	return out
}

// PagesWritten возвращает сумму страниц во всех записанных частях.
func (r Result) PagesWritten() int {
	n := 0
	for _, p := range r.Parts {
		n += p.Range.Len()
	}
	return n
}

// Plan открывает документ, считает диапазоны и имена частей и закрывает документ.
// Ничего не пишет.
func Plan(opener Opener, path string, cfg Config) (res Result, err error) {
	res = Result{Source: path}

	if err := cfg.Validate(); err != nil {
		return res, err
	}

	doc, err := opener.Open(path)
	if err != nil {
		return res, sourceUnreadable(path, err)
	}
	defer closeDocument(doc, path, &err)

	return plan(doc, path, cfg)
}

// Run нарезает документ последовательно: части пишутся строго по возрастанию страниц,
// каждая до конца перед следующей. Документ закрывается ровно один раз при любом исходе.
func Run(ctx context.Context, opener Opener, path string, cfg Config, obs Observer) (res Result, err error) {
	res = Result{Source: path}

	if err := cfg.Validate(); err != nil {
		return res, err
	}

	if obs == nil {
		obs = NopObserver{}
	}

	doc, err := opener.Open(path)
	if err != nil {
		return res, sourceUnreadable(path, err)
	}
	defer closeDocument(doc, path, &err)

	res, err = plan(doc, path, cfg)
	if err != nil {
		return res, err
	}

	obs.SourceOpened(path, res.TotalPages, res.EffectivePages)

	res.Parts = make([]Part, 0, len(res.Planned))

	for _, p := range res.Planned {
		if err := writePart(ctx, doc, p); err != nil {
			return res, err
		}

		res.Parts = append(res.Parts, p)
		obs.PartWritten(p)
	}

	return res, nil
}

func plan(doc Document, path string, cfg Config) (Result, error) {
	res := Result{Source: path}

	total, err := doc.PageCount()
	if err != nil {
		return res, sourceUnreadable(path, err)
	}
	if total < 0 {
		return res, sourceUnreadable(path, fmt.Errorf("negative page count %d", total))
	}

	res.TotalPages = total
	res.EffectivePages = ranger.Effective(total, cfg.TestPage)

	ranges, err := ranger.Split(res.EffectivePages, cfg.BatchSize)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	width := IndexWidth(res.EffectivePages)
	res.Planned = make([]Part, 0, len(ranges))

	for _, r := range ranges {
		res.Planned = append(res.Planned, Part{
			Range: r,
			Path:  OutputPath(path, cfg.OutDir, r, width),
		})
	}

	return res, nil
}

func writePart(ctx context.Context, doc Document, p Part) error {
	// отмену проверяем между диапазонами; начатый диапазон доводится до конца
	if err := ctx.Err(); err != nil {
		return &ArtifactWriteError{Range: p.Range, Path: p.Path, Err: err}
	}

	art, err := doc.ExtractRange(p.Range.From, p.Range.To)
	if err != nil {
		return &ArtifactWriteError{Range: p.Range, Path: p.Path, Err: fmt.Errorf("extract: %w", err)}
	}

	if err := art.Save(p.Path); err != nil {
		return &ArtifactWriteError{Range: p.Range, Path: p.Path, Err: fmt.Errorf("save: %w", err)}
	}

	return nil
}

// closeDocument закрывает документ; ошибку закрытия возвращает, только если других ошибок не было.
func closeDocument(doc Document, path string, errp *error) {
	if cerr := doc.Close(); cerr != nil && *errp == nil {
		*errp = fmt.Errorf("close %s: %w", path, cerr)
	}
}
