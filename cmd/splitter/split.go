package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math"
	"path/filepath"
	"time"

	"pdf-splitter/internal/archive"
	"pdf-splitter/internal/config"
	"pdf-splitter/internal/ledger"
	"pdf-splitter/internal/partition"
	"pdf-splitter/internal/pdfdoc"
	"pdf-splitter/internal/progress"
	"pdf-splitter/internal/verify"
)

func runSplit(args []string) error {
	cfg, err := config.ParseSplitConfig(args) // флаги → конфиг
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	return split(ctx, cfg)
}

type splitStats struct {
	sources int
	parts   int
	pages   int
}

func (s *splitStats) add(res partition.Result) {
	s.sources++
	s.parts += len(res.Parts)
	s.pages += res.PagesWritten()
}

func split(ctx context.Context, cfg config.SplitConfig) error {
	start := time.Now()

	// журнал частей
	var db *sql.DB
	var runID string
	if cfg.LedgerDSN != "" {
		var err error
		if db, err = ledger.Open(ctx, cfg.LedgerDSN); err != nil {
			return fmt.Errorf("ledger: %w", err)
		}
		defer db.Close()

		if err := ledger.EnsureTable(ctx, db, cfg.LedgerTable); err != nil {
			return fmt.Errorf("ledger: %w", err)
		}

		if runID, err = ledger.NewRunID(); err != nil {
			return fmt.Errorf("ledger: %w", err)
		}
		log.Printf("[INFO] ledger run id: %s", runID)
	}

	svc := pdfdoc.New(pdfdoc.Options{Password: cfg.Password})
	obs := partition.MultiObserver{partition.LogObserver{}}

	// прогресс
	progCtx, stopProgress := context.WithCancel(ctx)
	defer stopProgress()

	var prog *progress.Reporter
	if cfg.ProgressEvery > 0 {
		prog = progress.New(cfg.ProgressEvery, cfg.ProgressInline)
		prog.Start(progCtx)
		obs = append(obs, prog)
	}

	var stats splitStats
	err := splitAll(ctx, cfg, svc, obs, db, runID, &stats)

	// корректно завершим прогресс
	stopProgress()
	if prog != nil {
		prog.WaitAndFinish()
	}

	printFinalStat(start, stats)

	return err
}

func splitAll(
	ctx context.Context,
	cfg config.SplitConfig,
	opener partition.Opener,
	obs partition.Observer,
	db *sql.DB,
	runID string,
	stats *splitStats,
) error {
	for _, in := range cfg.Inputs {
		res, err := partition.RunParallel(ctx, opener, in, cfg.Partition(), cfg.Workers, obs)
		stats.add(res)

		// записанные части журналируем и при ошибке: они уже лежат на диске
		if db != nil {
			if lerr := ledger.Record(ctx, db, cfg.LedgerTable, runID, res); lerr != nil {
				if err == nil {
					return fmt.Errorf("ledger %s: %w", in, lerr)
				}
				log.Printf("[WARN] ledger %s: %v", in, lerr)
			}
		}

		if err != nil {
			return err
		}

		if len(res.Parts) == 0 {
			log.Printf("[INFO] %s: nothing to write", in)
			continue
		}

		if cfg.Verify {
			if err := verify.Parts(res.Parts); err != nil {
				return fmt.Errorf("verify %s: %w", in, err)
			}
			log.Printf("[INFO] %s: %d parts verified", in, len(res.Parts))
		}

		if cfg.Archive {
			archiveAndSafeRemove(in, cfg.OutDir, res.Paths(), cfg.RemoveParts)
		}
	}

	return nil
}

func archiveAndSafeRemove(source, outDir string, paths []string, remove bool) {
	archivePath := archive.PathFor(source, outDir)
	startZip := time.Now()

	if err := archive.TarGzFiles(paths, archivePath); err != nil {
		log.Printf("[WARN] cannot archive parts of %s: %v", source, err)
		return
	}

	dur := time.Since(startZip).Truncate(time.Millisecond)
	log.Printf("[INFO] archive created: %s (%d parts in %s)", archivePath, len(paths), dur)

	if !remove {
		return
	}

	baseDir := outDir
	if baseDir == "" {
		baseDir = filepath.Dir(source)
	}

	if err := archive.RemoveParts(paths, baseDir); err != nil {
		log.Printf("[WARN] parts not removed: %v", err)
	} else {
		log.Printf("[INFO] removed %d archived parts", len(paths))
	}
}

func printFinalStat(start time.Time, s splitStats) {
	elapsed := time.Since(start)
	pps := float64(s.pages) / math.Max(elapsed.Seconds(), 0.0001)
	avg := 0
	if s.parts > 0 {
		avg = s.pages / s.parts
	}

	p := progress.Printer

	log.Println("------------------------------------------------------------")
	log.Print(p.Sprintf("[STATS] sources: %d", s.sources))
	log.Print(p.Sprintf("[STATS] parts(files): %d", s.parts))
	log.Print(p.Sprintf("[STATS] pages: %d", s.pages))
	log.Print(p.Sprintf("[STATS] avg pages/part: %d", avg))
	log.Printf("[STATS] elapsed: %s", elapsed.Truncate(time.Millisecond))
	log.Print(p.Sprintf("[STATS] speed: %.0f pages/s", pps))
	log.Println("------------------------------------------------------------")
}
