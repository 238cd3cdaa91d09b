package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/draftcheck/internal/model"
)

// Validator runs the full pipeline for one bundle file.
type Validator interface {
	ValidateBundle(ctx context.Context, bundlePath string) (*model.PipelineReport, error)
}

// BundleJob validates one bundle.
type BundleJob struct {
	Index     int
	Path      string
	Validator Validator
}

// Execute runs the pipeline for the job's bundle.
func (j *BundleJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &BundleResult{Index: j.Index, Path: j.Path, Error: err}
	}
	report, err := j.Validator.ValidateBundle(ctx, j.Path)
	return &BundleResult{Index: j.Index, Path: j.Path, Report: report, Error: err}
}

// BundleResult is the outcome of a BundleJob.
type BundleResult struct {
	Index  int
	Path   string
	Report *model.PipelineReport
	Error  error
}

// GetError returns the error that prevented a report, if any.
func (r *BundleResult) GetError() error {
	return r.Error
}

// Severity is the report's overall severity. Failed bundles count as Critical.
func (r *BundleResult) Severity() model.Severity {
	if r.Error != nil || r.Report == nil {
		return model.SeverityCritical
	}
	return r.Report.Overall
}

// BatchProcessor validates many bundles concurrently.
type BatchProcessor struct {
	validator   Validator
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(validator Validator, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		validator:   validator,
		concurrency: concurrency,
	}
}

// ProcessBundles validates every bundle and returns results in input order.
func (b *BatchProcessor) ProcessBundles(ctx context.Context, paths []string) []*BundleResult {
	if len(paths) == 0 {
		return []*BundleResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()
	defer pool.Shutdown()

	// Submit from a separate goroutine so results are drained while the
	// queue is still being filled.
	go func() {
		for i, path := range paths {
			if !pool.Submit(&BundleJob{Index: i, Path: path, Validator: b.validator}) {
				break
			}
		}
		pool.Close()
	}()

	out := make([]*BundleResult, 0, len(paths))
	for r := range pool.Results() {
		out = append(out, r.(*BundleResult))
	}

	// Bundles skipped by cancellation still get a result.
	done := make(map[int]bool, len(out))
	for _, r := range out {
		done[r.Index] = true
	}
	for i, path := range paths {
		if done[i] {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = fmt.Errorf("bundle %s not processed", path)
		}
		out = append(out, &BundleResult{Index: i, Path: path, Error: err})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// ProcessFile reads a bundle list and validates every entry.
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*BundleResult, error) {
	paths, err := ReadBundleList(listPath)
	if err != nil {
		return nil, fmt.Errorf("read bundle list: %w", err)
	}

	return b.ProcessBundles(ctx, paths), nil
}

// WorstSeverity folds the results into one severity.
func WorstSeverity(results []*BundleResult) model.Severity {
	worst := model.SeverityPass
	for _, r := range results {
		worst = model.MaxSeverity(worst, r.Severity())
	}
	return worst
}

// ReadBundleList reads bundle paths, one per line. Blank lines and
// comments are skipped, duplicates removed, and relative paths resolved
// against the list's directory.
func ReadBundleList(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	base := filepath.Dir(listPath)
	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}
		line = filepath.Clean(line)

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
