package config

import (
	"path/filepath"
	"time"

	"pdf-splitter/internal/archive"
	"pdf-splitter/internal/ledger"
)

type SplitConfig struct {
	Common

	// Производительность
	Workers int

	// Пост-обработка
	Verify      bool
	Archive     bool
	RemoveParts bool

	// Журнал частей в MySQL
	LedgerDSN   string
	LedgerTable string

	ProgressEvery  time.Duration
	ProgressInline bool
}

func ParseSplitConfig(args []string) (SplitConfig, error) {
	fs := newFlagSet("split")
	var c SplitConfig

	c.Common.register(fs)

	fs.IntVar(&c.Workers, "workers", 1, "Parallel workers per source, each with its own document handle")

	fs.BoolVar(&c.Verify, "verify", false, "Re-read every part and check its page count")
	fs.BoolVar(&c.Archive, "archive", false, "Bundle the parts of each source into {base}_parts.tar.gz")
	fs.BoolVar(&c.RemoveParts, "remove-parts", false, "Remove parts after they are archived (requires -archive)")

	fs.StringVar(&c.LedgerDSN, "ledger-dsn", "", "MySQL DSN to record produced parts (empty = off)")
	fs.StringVar(&c.LedgerTable, "ledger-table", ledger.DefaultTable, "Ledger table name")

	fs.DurationVar(&c.ProgressEvery, "progress-every", 0, "Progress report interval (0 = off)")
	fs.BoolVar(&c.ProgressInline, "progress-inline", true, "Render progress on one updating line")

	if err := fs.Parse(args); err != nil {
		return c, parseErr(err)
	}
	c.Inputs = fs.Args()

	return c, c.Validate()
}

func (c SplitConfig) Validate() error {
	if err := c.Common.Validate(); err != nil {
		return err
	}

	// Валидируем воркеры
	if c.Workers < 1 || c.Workers > maxWorkers {
		return usageErr("workers must be between 1 and %d, got %d", maxWorkers, c.Workers)
	}

	if err := c.checkOutputNames(); err != nil {
		return err
	}

	if c.RemoveParts && !c.Archive {
		return usageErr("-remove-parts requires -archive")
	}

	if c.ProgressEvery < 0 {
		return usageErr("progress interval must not be negative")
	}

	if c.LedgerDSN != "" {
		if err := ledger.ValidateDSN(c.LedgerDSN); err != nil {
			return usageErr("%v", err)
		}
		if err := ledger.ValidateTable(c.LedgerTable); err != nil {
			return usageErr("%v", err)
		}
	}

	return nil
}

// checkOutputNames отклоняет входы, части которых легли бы под одинаковыми именами:
// одинаковое базовое имя в общем -out или один файл дважды.
func (c SplitConfig) checkOutputNames() error {
	seen := make(map[string]string, len(c.Inputs))

	for _, in := range c.Inputs {
		key := archive.PathFor(in, c.OutDir)
		if prev, dup := seen[key]; dup {
			return usageErr("%s and %s would write parts under the same names in %s", prev, in, filepath.Dir(key))
		}
		seen[key] = in
	}

	return nil
}
