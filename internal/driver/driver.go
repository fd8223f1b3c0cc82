// Package driver loads tree files and runs the semantic passes over them,
// one fresh context per file.
package driver

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/observ"
	"cminus/internal/sema"
	"cminus/internal/source"
	"cminus/internal/trace"
	"cminus/internal/treeio"
)

// Options configure a driver run.
type Options struct {
	MaxDiagnostics int
	Prelude        bool
	// TraceSymbols captures the symbol table listing into FileResult.SymbolTrace.
	TraceSymbols bool
	Sort         bool
	Jobs         int // 0 means GOMAXPROCS
	Progress     ProgressSink
	// Cache, when set, skips files whose tree and options were checked before.
	// Cached results carry diagnostics and counters but no Tree or Sema.
	Cache *DiskCache
	// BaseDir is what display paths are relative to; empty means the
	// working directory.
	BaseDir string
}

// FileResult is the outcome of analysing one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Files  *source.FileSet
	Tree   *ast.File
	Sema   *sema.Result
	Bag    *diag.Bag
	Timer  *observ.Timer
	Cached bool

	Errors    int
	MainCount int
	Locations int

	SymbolTrace []byte
}

// OK reports whether the file passed without errors.
func (r *FileResult) OK() bool {
	return r != nil && r.Errors == 0 && !r.Bag.HasErrors()
}

// AnalyzeFile loads and analyses a single tree file.
func AnalyzeFile(ctx context.Context, path string, opts Options) (*FileResult, error) {
	results, err := AnalyzeFiles(ctx, []string{path}, opts)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// AnalyzeFiles analyses paths in parallel; results follow the input order.
// Load and decode failures are diagnostics of their file, not errors; the
// returned error is reserved for cancellation and trace output failures.
func AnalyzeFiles(ctx context.Context, paths []string, opts Options) ([]*FileResult, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "analyze", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	// FileSet is not goroutine-safe: load everything up front.
	fileSet := source.NewFileSet()
	if opts.BaseDir != "" {
		fileSet.SetBaseDir(opts.BaseDir)
	}
	fileIDs := make([]source.FileID, len(paths))
	loadErrs := make([]error, len(paths))
	loadTimes := make([]time.Duration, len(paths))
	for i, path := range paths {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		start := time.Now()
		fileIDs[i], loadErrs[i] = fileSet.Load(path)
		loadTimes[i] = time.Since(start)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]*FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(paths))))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := &FileResult{
				Path:   path,
				FileID: fileIDs[i],
				Files:  fileSet,
				Bag:    diag.NewBag(opts.MaxDiagnostics),
				Timer:  observ.NewTimer(),
			}
			results[i] = res
			return analyzeOne(gctx, res, loadErrs[i], loadTimes[i], opts)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	span.WithExtra("files", strconv.Itoa(len(paths)))
	return results, nil
}

func analyzeOne(ctx context.Context, res *FileResult, loadErr error, loadTime time.Duration, opts Options) error {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "file:"+res.Path, trace.CurrentSpan(ctx).SpanID)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	idx := res.Timer.Begin("load")
	if loadErr != nil {
		res.Timer.End(idx, "failed")
		res.fail(diag.IOLoadFileError, "failed to load file: "+loadErr.Error())
		emit(opts.Progress, Event{File: res.Path, Stage: StageLoad, Status: StatusError, Err: loadErr, Elapsed: loadTime})
		return nil
	}
	file := res.Files.Get(res.FileID)

	if opts.Cache != nil && !opts.TraceSymbols {
		hit, err := res.fromCache(file, opts)
		if err != nil {
			// битый кэш не должен ломать проверку
			trace.Point(tracer, trace.ScopeFile, "cache", span.ID(), err.Error())
		}
		if hit {
			res.Timer.End(idx, "cached")
			trace.Point(tracer, trace.ScopeFile, "cache", span.ID(), "hit")
			emit(opts.Progress, Event{File: res.Path, Stage: StageCheck, Status: StatusCached, Elapsed: loadTime})
			return nil
		}
	}

	format, err := treeio.FormatForPath(res.Path)
	if err == nil {
		res.Tree, err = treeio.Unmarshal(file.Content, format)
	}
	loadDur := res.Timer.End(idx, "") + loadTime
	if err != nil {
		res.fail(diag.IODecodeTreeError, err.Error())
		emit(opts.Progress, Event{File: res.Path, Stage: StageLoad, Status: StatusError, Err: err, Elapsed: loadDur})
		return nil
	}
	emit(opts.Progress, Event{File: res.Path, Stage: StageLoad, Status: StatusDone, Elapsed: loadDur})

	var symTrace bytes.Buffer
	semaOpts := sema.Options{
		Reporter: diag.BagReporter{Bag: res.Bag},
		File:     res.FileID,
		Strings:  source.NewInterner(),
		Prelude:  opts.Prelude,
	}
	if opts.TraceSymbols {
		semaOpts.TraceSymbols = &symTrace
	}
	c := sema.NewContext(semaOpts)

	emit(opts.Progress, Event{File: res.Path, Stage: StageSymbols, Status: StatusWorking})
	idx = res.Timer.Begin("symbols")
	if err := sema.BuildSymbols(ctx, c, res.Tree); err != nil {
		res.Timer.End(idx, "failed")
		emit(opts.Progress, Event{File: res.Path, Stage: StageSymbols, Status: StatusError, Err: err})
		return fmt.Errorf("%s: %w", res.Path, err)
	}
	dur := res.Timer.End(idx, strconv.Itoa(c.Table().Symbols.Len())+" symbols")
	emit(opts.Progress, Event{File: res.Path, Stage: StageSymbols, Status: StatusDone, Elapsed: dur})
	if err := ctx.Err(); err != nil {
		return err
	}

	emit(opts.Progress, Event{File: res.Path, Stage: StageCheck, Status: StatusWorking})
	idx = res.Timer.Begin("check")
	if err := sema.TypeCheck(ctx, c, res.Tree); err != nil {
		return err
	}
	dur = res.Timer.End(idx, "")

	res.Sema = c.Result()
	res.Errors += res.Sema.Errors
	res.MainCount = res.Sema.MainCount
	res.Locations = res.Sema.Table.Locations()
	res.SymbolTrace = symTrace.Bytes()
	if opts.Sort {
		res.Bag.Sort()
	}
	status := StatusDone
	if !res.OK() {
		status = StatusError
	}
	emit(opts.Progress, Event{File: res.Path, Stage: StageCheck, Status: status, Elapsed: dur})
	span.WithExtra("errors", strconv.Itoa(res.Errors))

	if opts.Cache != nil && !opts.TraceSymbols {
		if err := opts.Cache.Put(cacheKey(file, opts), toCached(res)); err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache", span.ID(), "put: "+err.Error())
		}
	}
	return nil
}

// fail records a file-level problem that stops analysis of the file.
func (r *FileResult) fail(code diag.Code, msg string) {
	r.Errors++
	r.Bag.Add(diag.NewError(code, source.LinePos(r.FileID, 0), msg))
}

func (r *FileResult) fromCache(file *source.File, opts Options) (bool, error) {
	cached, ok, err := opts.Cache.Get(cacheKey(file, opts))
	if err != nil || !ok {
		return false, err
	}
	fromCached(cached, r.FileID, r.Bag)
	r.Cached = true
	r.Errors = cached.Errors
	r.MainCount = cached.MainCount
	r.Locations = cached.Locations
	return true, nil
}

// Merge collects every file's diagnostics into one bag, in input order.
func Merge(results []*FileResult) *diag.Bag {
	out := diag.NewBag(0)
	for _, r := range results {
		if r != nil {
			out.Merge(r.Bag)
		}
	}
	return out
}

// Timings merges per-file timers, prefixing phases with the file path.
func Timings(results []*FileResult) *observ.Timer {
	t := observ.NewTimer()
	for _, r := range results {
		if r != nil {
			t.Merge(r.Path, r.Timer)
		}
	}
	return t
}
