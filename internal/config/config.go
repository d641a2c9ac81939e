package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"pdf-splitter/internal/partition"
)

// ErrNoInputs: не передано ни одного входного файла.
var ErrNoInputs = errors.New("no input files")

const maxWorkers = 100

// Common: флаги нарезки, общие для split и plan.
type Common struct {
	BatchSize int
	TestPage  int // -1 без ограничения
	OutDir    string
	Password  string
	Inputs    []string
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func (c *Common) register(fs *flag.FlagSet) {
	fs.IntVar(&c.BatchSize, "batch", partition.DefaultBatchSize, "Max pages per output part")
	fs.IntVar(&c.TestPage, "test-page", -1, "Partition only the first N pages (-1 = all pages)")
	fs.StringVar(&c.OutDir, "out", "", "Output directory (default: next to the source)")
	fs.StringVar(&c.Password, "password", "", "Password for encrypted sources")
}

// Partition переводит флаги в конфиг ядра.
func (c Common) Partition() partition.Config {
	pc := partition.Config{BatchSize: c.BatchSize, OutDir: c.OutDir}
	if c.TestPage != -1 {
		n := c.TestPage
		pc.TestPage = &n
	}
	return pc
}

func (c Common) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInputs
	}

	return c.Partition().Validate()
}

// IsUsage сообщает, что ошибка вызвана неверными аргументами, а не работой.
func IsUsage(err error) bool {
	return errors.Is(err, ErrNoInputs) ||
		errors.Is(err, partition.ErrInvalidConfiguration) ||
		errors.Is(err, errUsage) ||
		errors.Is(err, flag.ErrHelp)
}

var errUsage = errors.New("usage")

func usageErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// parseErr сохраняет ошибку flag в цепочке, чтобы flag.ErrHelp распознавался снаружи.
func parseErr(err error) error {
	return fmt.Errorf("%w: %w", errUsage, err)
}
