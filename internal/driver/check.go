package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"cqasm/internal/diag"
	"cqasm/internal/source"
)

// FileReport is the outcome of checking one file.
type FileReport struct {
	Path        string
	FileSet     *source.FileSet
	Diagnostics []diag.Diagnostic
	JSON        string
	Cached      bool
}

// OK reports whether the file analyzed without errors.
func (r *FileReport) OK() bool { return !hasErrors(r.Diagnostics) }

// CheckOptions configure CheckFiles.
type CheckOptions struct {
	Options
	Jobs  int        // <= 0 — GOMAXPROCS
	Cache *DiskCache // nil — без кеша
	// OnFile is called after each file, from worker goroutines.
	OnFile func(FileReport)
}

// CheckFiles analyzes paths in parallel. Reports keep the order of paths.
// A file that cannot be read yields an IOLoadFileError diagnostic, not an error;
// the returned error is only the context's.
func CheckFiles(ctx context.Context, paths []string, opts CheckOptions) ([]FileReport, error) {
	reports := make([]FileReport, len(paths))
	if len(paths) == 0 {
		return reports, nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// индексы уникальны для каждой горутины, мьютекс не нужен
			reports[i] = checkFile(gctx, path, opts)
			if opts.OnFile != nil {
				opts.OnFile(reports[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func checkFile(ctx context.Context, path string, opts CheckOptions) FileReport {
	src, err := ReadSource(path)
	if err != nil {
		fs := source.NewFileSet()
		id := fs.AddVirtual(path, nil)
		return FileReport{
			Path:        path,
			FileSet:     fs,
			Diagnostics: []diag.Diagnostic{diag.NewError(diag.IOLoadFileError, source.Span{File: id}, err.Error())},
		}
	}

	key := CacheKey(path, src)
	if cached, ok, err := opts.Cache.Get(key); err == nil && ok {
		fs, diags := cached.restore(src)
		return FileReport{Path: path, FileSet: fs, Diagnostics: diags, JSON: cached.JSON, Cached: true}
	}

	res := AnalyzeContext(ctx, src, path, opts.Options)
	report := FileReport{Path: path, FileSet: res.FileSet, Diagnostics: res.Diagnostics, JSON: res.JSON()}
	if opts.Cache != nil {
		// кеш не влияет на результат проверки
		_ = opts.Cache.Put(key, toCached(&res, report.JSON))
	}
	return report
}
