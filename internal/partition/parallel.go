package partition

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

var errNotProcessed = errors.New("range was not processed")

// RunParallel нарезает документ в workers горутин. У каждой горутины собственный
// дескриптор документа, все они открываются до первой записи. Горутина пишет только свои части. Порядок Parts в
// результате тот же, что у Run. Первая ошибка останавливает остальных.
// workers <= 1: обычный Run.
func RunParallel(ctx context.Context, opener Opener, path string, cfg Config, workers int, obs Observer) (Result, error) {
	if workers <= 1 {
		return Run(ctx, opener, path, cfg, obs)
	}

	if obs == nil {
		obs = NopObserver{}
	}

	res, err := Plan(opener, path, cfg)
	if err != nil {
		return res, err
	}

	if len(res.Planned) == 0 {
		obs.SourceOpened(path, res.TotalPages, res.EffectivePages)
		res.Parts = []Part{}
		return res, nil
	}

	docs, err := openAll(opener, path, min(workers, len(res.Planned)))
	if err != nil {
		return res, err
	}

	obs.SourceOpened(path, res.TotalPages, res.EffectivePages)

	done := make([]bool, len(res.Planned))
	jobs := make(chan int)

	g, gctx := errgroup.WithContext(ctx)

	// продюсер
	g.Go(func() error {
		defer close(jobs)
		for i := range res.Planned {
			select {
			case <-gctx.Done():
				return nil
			case jobs <- i:
			}
		}
		return nil
	})

	for _, doc := range docs {
		doc := doc
		g.Go(func() error {
			return runWorker(gctx, doc, path, res.Planned, jobs, done, obs)
		})
	}

	err = g.Wait()

	res.Parts = make([]Part, 0, len(res.Planned))
	for i, p := range res.Planned {
		if done[i] {
			res.Parts = append(res.Parts, p)
			continue
		}

		// отмена снаружи: продюсер остановился, а воркеры вышли без ошибки
		if err == nil {
			cause := ctx.Err()
			if cause == nil {
				cause = errNotProcessed
			}
			err = &ArtifactWriteError{Range: p.Range, Path: p.Path, Err: cause}
		}
	}

	return res, err
}

// openAll открывает n независимых дескрипторов. При ошибке уже открытые закрываются.
func openAll(opener Opener, path string, n int) ([]Document, error) {
	docs := make([]Document, 0, n)

	for i := 0; i < n; i++ {
		doc, err := opener.Open(path)
		if err != nil {
			for _, d := range docs {
				_ = d.Close()
			}
			return nil, sourceUnreadable(path, err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

func runWorker(
	ctx context.Context,
	doc Document,
	path string,
	planned []Part,
	jobs <-chan int,
	done []bool,
	obs Observer,
) (err error) {
	defer closeDocument(doc, path, &err)

	for i := range jobs {
		p := planned[i]

		if err := writePart(ctx, doc, p); err != nil {
			return err
		}

		done[i] = true
		obs.PartWritten(p)
	}

	return nil
}
