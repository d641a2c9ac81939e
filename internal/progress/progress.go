package progress

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"pdf-splitter/internal/partition"
)

// Printer форматирует числа с разделителями разрядов: 12,345.
var Printer = message.NewPrinter(language.English)

// Reporter считает страницы и части и периодически печатает прогресс.
// Реализует partition.Observer, безопасен для параллельной нарезки.
type Reporter struct {
	every   time.Duration
	inline  bool
	out     io.Writer
	start   time.Time
	planned atomic.Int64
	pages   atomic.Int64
	parts   atomic.Int64
	doneCh  chan struct{}
}

var _ partition.Observer = (*Reporter)(nil)

func New(every time.Duration, inline bool) *Reporter {
	return &Reporter{
		every:  every,
		inline: inline && isTerminal(),
		out:    os.Stdout,
		start:  time.Now(),
		doneCh: make(chan struct{}),
	}
}

func (r *Reporter) SourceOpened(_ string, _, effectivePages int) {
	r.planned.Add(int64(effectivePages))
}

func (r *Reporter) PartWritten(p partition.Part) {
	r.pages.Add(int64(p.Range.Len()))
	r.parts.Add(1)
}

func (r *Reporter) Pages() int64 { return r.pages.Load() }
func (r *Reporter) Parts() int64 { return r.parts.Load() }

// Start печатает прогресс раз в every до отмены ctx.
func (r *Reporter) Start(ctx context.Context) {
	tkr := time.NewTicker(r.every)

	go func() {
		defer close(r.doneCh)
		defer tkr.Stop()

		for {
			select {
			case <-tkr.C:
				line := r.Line()
				if r.inline {
					fmt.Fprintf(r.out, "\r\033[2K%s", line)
				} else {
					log.Print(line)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Line возвращает текущую строку прогресса.
func (r *Reporter) Line() string {
	pages := r.pages.Load()
	parts := r.parts.Load()
	planned := float64(r.planned.Load())

	elapsed := time.Since(r.start).Seconds()
	pps := float64(pages) / math.Max(elapsed, 0.001)

	pct := 100.0 * float64(pages) / math.Max(planned, 1)
	if pct > 100 {
		pct = 100
	}

	eta := ""
	if pps > 0 && planned > 0 {
		remain := math.Max(planned-float64(pages), 0)
		eta = (time.Duration(remain/pps) * time.Second).Truncate(time.Second).String()
	}

	return Printer.Sprintf("[PROGRESS] pages=%d (%.0f/s) parts=%d %.1f%% ETA=%s", pages, pps, parts, pct, eta)
}

// WaitAndFinish ждёт остановки после отмены контекста, переданного в Start.
func (r *Reporter) WaitAndFinish() {
	<-r.doneCh
	if r.inline {
		fmt.Fprintln(r.out)
	}
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
