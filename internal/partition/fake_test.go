package partition

import (
	"errors"
	"sync"

	"pdf-splitter/internal/ranger"
)

// fakeOpener: документ-заглушка: ничего не пишет на диск, только запоминает вызовы.
type fakeOpener struct {
	pages    int
	openErr  error
	countErr error
	closeErr error
	// failOpenAt: номер вызова Open (с 1), который вернёт openErr; 0: все вызовы
	failOpenAt int
	// extractErr/saveErr по From диапазона
	extractErr map[int]error
	saveErr    map[int]error

	mu     sync.Mutex
	calls  int
	opened int
	closed int
	saved  map[string]ranger.Range
	order  []string
}

func (f *fakeOpener) Open(string) (Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.openErr != nil && (f.failOpenAt == 0 || f.failOpenAt == f.calls) {
		return nil, f.openErr
	}
	f.opened++

	return &fakeDocument{f: f}, nil
}

func (f *fakeOpener) counts() (opened, closed int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opened, f.closed
}

func (f *fakeOpener) savedPaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.order...)
}

type fakeDocument struct {
	f      *fakeOpener
	closed bool
}

func (d *fakeDocument) PageCount() (int, error) {
	if d.f.countErr != nil {
		return 0, d.f.countErr
	}
	return d.f.pages, nil
}

func (d *fakeDocument) ExtractRange(from, to int) (Artifact, error) {
	if d.closed {
		return nil, errors.New("document closed")
	}
	if err := d.f.extractErr[from]; err != nil {
		return nil, err
	}
	return &fakeArtifact{f: d.f, r: ranger.Range{From: from, To: to}}, nil
}

func (d *fakeDocument) Close() error {
	d.f.mu.Lock()
	defer d.f.mu.Unlock()

	if d.closed {
		panic("document closed twice")
	}
	d.closed = true
	d.f.closed++

	return d.f.closeErr
}

type fakeArtifact struct {
	f *fakeOpener
	r ranger.Range
}

func (a *fakeArtifact) Save(path string) error {
	if err := a.f.saveErr[a.r.From]; err != nil {
		return err
	}

	a.f.mu.Lock()
	defer a.f.mu.Unlock()

	if a.f.saved == nil {
		a.f.saved = make(map[string]ranger.Range)
	}
	a.f.saved[path] = a.r
	a.f.order = append(a.f.order, path)

	return nil
}

// recordingObserver собирает уведомления для проверок.
type recordingObserver struct {
	mu        sync.Mutex
	total     int
	effective int
	opened    int
	parts     []Part
}

func (o *recordingObserver) SourceOpened(_ string, total, effective int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened++
	o.total, o.effective = total, effective
}

func (o *recordingObserver) PartWritten(p Part) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.parts = append(o.parts, p)
}

func intPtr(v int) *int { return &v }
