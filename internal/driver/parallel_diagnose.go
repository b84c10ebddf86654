package driver

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"asmodeus/internal/cache"
	"asmodeus/internal/diag"
	"asmodeus/internal/observ"
	"asmodeus/internal/source"
)

// DiagnoseOptions controls batch diagnosis.
type DiagnoseOptions struct {
	MaxDiagnostics int
	// Jobs bounds the worker count; 0 means GOMAXPROCS.
	Jobs    int
	Cache   *cache.DiskCache
	Sink    ProgressSink
	Timings bool
	// CacheSalt distinguishes cached results produced under other settings.
	CacheSalt string
}

// FileResult is the diagnosis outcome of one file.
type FileResult struct {
	File        *source.File
	Diagnostics []diag.Diagnostic
	Cached      bool
	Timer       *observ.Timer
}

// Stats summarises a batch run.
type Stats struct {
	Files      int64
	Errors     int64
	CacheHits  int64
	CacheMiss  int64
	Elapsed    time.Duration
	WorkerPeak int32
}

func (s Stats) String() string {
	return fmt.Sprintf("files=%d errors=%d cache=%d/%d workers=%d elapsed=%s",
		s.Files, s.Errors, s.CacheHits, s.CacheHits+s.CacheMiss, s.WorkerPeak, s.Elapsed.Round(time.Millisecond))
}

type batchMetrics struct {
	active    atomic.Int32
	peak      atomic.Int32
	completed atomic.Int64
	errors    atomic.Int64
	diskHits  atomic.Int64
	diskMiss  atomic.Int64
}

func (m *batchMetrics) enter() {
	n := m.active.Add(1)
	for {
		cur := m.peak.Load()
		if n <= cur || m.peak.CompareAndSwap(cur, n) {
			return
		}
	}
}

// DiagnoseFiles loads and diagnoses paths concurrently. Results keep the
// order of paths. The first I/O error cancels the remaining work.
func DiagnoseFiles(ctx context.Context, p *Pipeline, paths []string, opts DiagnoseOptions) ([]FileResult, Stats, error) {
	start := time.Now()
	fs := source.NewFileSet()
	files := make([]*source.File, len(paths))
	for i, path := range paths {
		id, err := fs.Load(path)
		if err != nil {
			return nil, Stats{}, fmt.Errorf("load %s: %w", path, err)
		}
		files[i] = fs.Get(id)
		emit(opts.Sink, Event{File: files[i].Path, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	salt := opts.CacheSalt + "|max=" + strconv.Itoa(opts.MaxDiagnostics)

	results := make([]FileResult, len(files))
	var m batchMetrics
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m.enter()
			defer m.active.Add(-1)
			began := time.Now()
			emit(opts.Sink, Event{File: file.Path, Status: StatusWorking})

			res, err := diagnoseOne(p, file, opts, salt, &m)
			if err != nil {
				m.errors.Add(1)
				emit(opts.Sink, Event{File: file.Path, Status: StatusError, Err: err, Elapsed: time.Since(began)})
				return err
			}
			results[i] = res
			m.completed.Add(1)
			emit(opts.Sink, Event{
				File:    file.Path,
				Status:  StatusDone,
				Cached:  res.Cached,
				Errors:  len(res.Diagnostics),
				Elapsed: time.Since(began),
			})
			return nil
		})
	}

	err := g.Wait()
	stats := Stats{
		Files:      m.completed.Load(),
		Errors:     m.errors.Load(),
		CacheHits:  m.diskHits.Load(),
		CacheMiss:  m.diskMiss.Load(),
		Elapsed:    time.Since(start),
		WorkerPeak: m.peak.Load(),
	}
	if err != nil {
		return nil, stats, err
	}
	return results, stats, nil
}

func diagnoseOne(p *Pipeline, file *source.File, opts DiagnoseOptions, salt string, m *batchMetrics) (FileResult, error) {
	res := FileResult{File: file}
	var key cache.Digest
	if opts.Cache != nil {
		key = cache.CacheKey(file.Hash, salt)
		var payload cache.DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			return res, fmt.Errorf("cache read %s: %w", file.Path, err)
		}
		if hit {
			m.diskHits.Add(1)
			res.Diagnostics = cache.FromCached(payload.Diagnostics)
			res.Cached = true
			return res, nil
		}
		m.diskMiss.Add(1)
	}

	if opts.Timings {
		res.Timer = observ.NewTimer()
	}
	local := *p
	if opts.MaxDiagnostics > 0 {
		local.maxDiagnostics = opts.MaxDiagnostics
	}
	res.Diagnostics = local.Run(file.Text(), res.Timer).Diagnostics

	if opts.Cache != nil {
		payload := &cache.DiskPayload{Path: file.Path, Diagnostics: cache.ToCached(res.Diagnostics)}
		if err := opts.Cache.Put(key, payload); err != nil {
			return res, fmt.Errorf("cache write %s: %w", file.Path, err)
		}
	}
	return res, nil
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
