package pdfdoc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"pdf-splitter/internal/partition"
)

var ErrClosed = errors.New("document is closed")

type Options struct {
	// Password: пароль пользователя/владельца для зашифрованных файлов.
	Password string
	// Optimize: оптимизировать xref-таблицу после чтения (pdfcpu по умолчанию делает это).
	Optimize bool
	// PermFile/PermDir, 0 означает 0644/0755.
	PermFile os.FileMode
	PermDir  os.FileMode
}

// Service открывает PDF через pdfcpu.
type Service struct {
	password string
	optimize bool
	permF    os.FileMode
	permD    os.FileMode
}

var _ partition.Opener = (*Service)(nil)

func New(opts Options) *Service {
	// не даём pdfcpu создавать config.yml в домашнем каталоге
	model.ConfigPath = "disable"

	pf := opts.PermFile
	if pf == 0 {
		pf = 0o644
	}
	pd := opts.PermDir
	if pd == 0 {
		pd = 0o755
	}

	return &Service{password: opts.Password, optimize: opts.Optimize, permF: pf, permD: pd}
}

func (s *Service) configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.Cmd = model.SPLIT
	conf.Optimize = s.optimize
	if s.password != "" {
		conf.UserPW = s.password
		conf.OwnerPW = s.password
	}
	return conf
}

// Open читает и валидирует PDF. Файл закрывается сразу после чтения:
// pdfcpu держит весь документ в памяти.
func (s *Service) Open(path string) (partition.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, s.configuration())
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	return &Document{ctx: ctx, svc: s}, nil
}

// Document: прочитанный PDF. Не безопасен для параллельного использования:
// для параллельной нарезки каждому воркеру нужен свой Open.
type Document struct {
	ctx *model.Context
	svc *Service
}

func (d *Document) PageCount() (int, error) {
	if d.ctx == nil {
		return 0, ErrClosed
	}

	if err := d.ctx.EnsurePageCount(); err != nil {
		return 0, err
	}

	return d.ctx.PageCount, nil
}

// ExtractRange копирует страницы [from, to] (0-based) в новый документ.
func (d *Document) ExtractRange(from, to int) (partition.Artifact, error) {
	if d.ctx == nil {
		return nil, ErrClosed
	}

	if from < 0 || to < from || to >= d.ctx.PageCount {
		return nil, fmt.Errorf("page range [%d..%d] out of bounds (pages: %d)", from, to, d.ctx.PageCount)
	}

	// pdfcpu нумерует страницы с 1
	pageNrs := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		pageNrs = append(pageNrs, i+1)
	}

	out, err := pdfcpu.ExtractPages(d.ctx, pageNrs, false)
	if err != nil {
		return nil, err
	}

	return &Artifact{ctx: out, permF: d.svc.permF, permD: d.svc.permD}, nil
}

func (d *Document) Close() error {
	d.ctx = nil
	return nil
}

// Artifact: новый PDF из диапазона страниц.
type Artifact struct {
	ctx   *model.Context
	permF os.FileMode
	permD os.FileMode
}

// Save пишет PDF атомарно: во временный файл в том же каталоге, затем rename.
// При ошибке по целевому пути не остаётся недописанного файла.
func (a *Artifact) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, a.permD); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".part-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := api.WriteContext(a.ctx, tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write pdf: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Chmod(tmpPath, a.permF); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	return nil
}
