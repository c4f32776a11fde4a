package worker

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/opinionsplit/internal/model"
)

// Splitter splits every document stored in a file
type Splitter interface {
	SplitFile(ctx context.Context, path string) ([]model.Decision, error)
}

// SplitJob splits one input file
type SplitJob struct {
	Index    int
	Path     string
	Splitter Splitter
}

// Execute executes the split job
func (j *SplitJob) Execute(ctx context.Context) Result {
	decisions, err := j.Splitter.SplitFile(ctx, j.Path)
	return &FileResult{
		Index:     j.Index,
		Path:      j.Path,
		Decisions: decisions,
		Error:     err,
	}
}

// FileResult is the outcome of splitting one file
type FileResult struct {
	Index     int
	Path      string
	Decisions []model.Decision
	Error     error
}

// GetError returns the error from the file result
func (r *FileResult) GetError() error {
	return r.Error
}

// BatchProcessor splits many files concurrently. Documents share nothing,
// so each file is an independent job.
type BatchProcessor struct {
	splitter    Splitter
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(splitter Splitter, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		splitter:    splitter,
		concurrency: concurrency,
	}
}

// ProcessPaths splits paths concurrently and returns one result per path, in
// input order. Paths never started because ctx ended carry ctx's error.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*FileResult {
	if len(paths) == 0 {
		return []*FileResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for i, path := range paths {
		if !pool.Submit(&SplitJob{Index: i, Path: path, Splitter: b.splitter}) {
			break
		}
	}

	ordered := make([]*FileResult, len(paths))
	for _, result := range pool.Wait() {
		fr := result.(*FileResult)
		ordered[fr.Index] = fr
	}

	for i, fr := range ordered {
		if fr == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			ordered[i] = &FileResult{Index: i, Path: paths[i], Error: err}
		}
	}

	return ordered
}

// ProcessList reads paths from a list file and splits them
func (b *BatchProcessor) ProcessList(ctx context.Context, listPath string) ([]*FileResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads paths from a file (one per line). Blank lines and
// "#" comments are skipped and duplicates dropped.
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

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

// ExpandInputs resolves CLI inputs into file paths. "@file" reads a path
// list, directories are walked for files accept allows (sorted), and plain
// files are kept as given. Duplicates are dropped.
func ExpandInputs(inputs []string, accept func(path string) bool) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}

	for _, input := range inputs {
		if list, ok := strings.CutPrefix(input, "@"); ok {
			listed, err := ReadPathsFromFile(list)
			if err != nil {
				return nil, fmt.Errorf("read list %s: %w", list, err)
			}
			for _, path := range listed {
				add(path)
			}
			continue
		}

		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}
		if !info.IsDir() {
			add(input)
			continue
		}

		var found []string
		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && accept(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", input, err)
		}
		sort.Strings(found)
		for _, path := range found {
			add(path)
		}
	}

	return paths, nil
}
