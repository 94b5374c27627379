package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"texconv/internal/source"
	"texconv/internal/trace"
)

// BatchOptions configures ConvertBatch.
type BatchOptions struct {
	// Jobs bounds parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// Cache is consulted before and filled after every conversion; may be nil.
	Cache *DiskCache
	// Progress receives item events; may be nil.
	Progress ProgressSink
}

// BatchItem is the outcome of one request of a batch.
type BatchItem struct {
	Result *Result
	Err    error
}

// ConvertBatch converts independent requests in parallel. Per-item failures
// are reported in the matching BatchItem and do not stop the batch; the
// returned error is non-nil only when ctx is cancelled.
func ConvertBatch(ctx context.Context, reqs []Request, opts BatchOptions) ([]BatchItem, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "batch")
	span.Set("items", strconv.Itoa(len(reqs))).Set("run", uuid.NewString())
	defer span.End("")

	items := make([]BatchItem, len(reqs))
	if len(reqs) == 0 {
		return items, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	for i, req := range reqs {
		emit(opts.Progress, Event{Item: i, Label: req.Name, Status: StatusQueued})
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(reqs)))
	for i, req := range reqs {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i] = convertItem(gctx, i, req, opts)
			if errors.Is(items[i].Err, context.Canceled) || errors.Is(items[i].Err, context.DeadlineExceeded) {
				return items[i].Err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return items, err
	}
	return items, nil
}

func convertItem(ctx context.Context, i int, req Request, opts BatchOptions) BatchItem {
	ctx, span := trace.Start(ctx, trace.ScopeItem, "item:"+strconv.Itoa(i))
	started := time.Now()
	ev := Event{Item: i, Label: req.Name}

	key := KeyFor(req)
	if opts.Cache != nil {
		emit(opts.Progress, withStage(ev, StageCache, StatusWorking))
		var cached CachedResult
		if ok, err := opts.Cache.Get(key, &cached); err == nil && ok {
			ev.Elapsed = time.Since(started)
			emit(opts.Progress, withStage(ev, StageCache, StatusCached))
			span.End("cached")
			return BatchItem{Result: fromCached(req, &cached)}
		}
	}

	emit(opts.Progress, withStage(ev, StageConvert, StatusWorking))
	res, err := Convert(ctx, req)
	ev.Elapsed = time.Since(started)
	if err != nil {
		ev.Err = err
		emit(opts.Progress, withStage(ev, StageConvert, StatusError))
		span.End(err.Error())
		return BatchItem{Result: res, Err: err}
	}

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, toCached(res)); err != nil {
			trace.Point(ctx, trace.ScopeItem, "cache-put", err.Error())
		}
	}
	emit(opts.Progress, withStage(ev, StageConvert, StatusDone))
	span.End("")
	return BatchItem{Result: res}
}

func withStage(ev Event, stage Stage, status Status) Event {
	ev.Stage = stage
	ev.Status = status
	return ev
}

// LoadBatch reads a file with one expression per line and returns one
// request per non-blank line, named "path:line". BOM and CRLF are removed.
func LoadBatch(path string, dir Direction, cfg Config) ([]Request, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load batch: %w", err)
	}
	content := fs.Get(id).Content

	var reqs []Request
	for n, line := range bytes.Split(content, []byte{'\n'}) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		reqs = append(reqs, Request{
			Name:      path + ":" + strconv.Itoa(n+1),
			Input:     string(line),
			Direction: dir,
			Config:    cfg,
		})
	}
	return reqs, nil
}
