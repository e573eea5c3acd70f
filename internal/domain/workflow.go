package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"oaslint.dev/pkg/oaslint/internal/adapter"
	"oaslint.dev/pkg/oaslint/internal/controller"
	m "oaslint.dev/pkg/oaslint/internal/model"
)

const recursiveSuffix = "/..."

// RunArgs contains the arguments for a lint run.
type RunArgs struct {
	Paths   []m.Path
	Exclude []string
	Workers int
	Reports m.Path
	Config  m.ProcessingConfig
}

// ViewArgs contains the arguments for showing a saved run report.
type ViewArgs struct {
	Reports m.Path
}

// Workflow drives the CLI host: discovery, the worker pool, output and the
// run report.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) (m.RunReport, error)
	Watch(ctx context.Context, args RunArgs) error
	View(ctx context.Context, args ViewArgs) (m.RunReport, error)
	Discover(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Path, error)
}

// WorkflowOption customizes a Workflow.
type WorkflowOption func(*workflow)

// WithIgnoredNames skips files with these base names when scanning
// directories. The lint config manifest and rc files are always skipped.
func WithIgnoredNames(names ...string) WorkflowOption {
	return func(w *workflow) {
		for _, name := range names {
			if name != "" {
				w.ignored[name] = struct{}{}
			}
		}
	}
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	adapter.Watcher
	controller.UI
	Runner

	ignored map[string]struct{}
	now     func() time.Time
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	watcher adapter.Watcher,
	ui controller.UI,
	runner Runner,
	opts ...WorkflowOption,
) Workflow {
	w := &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		Watcher:         watcher,
		UI:              ui,
		Runner:          runner,
		ignored:         map[string]struct{}{},
		now:             time.Now,
	}

	WithIgnoredNames(append([]string{DefaultManifest}, DefaultRCFiles...)...)(w)

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Run checks every schema file under args.Paths once.
func (w *workflow) Run(ctx context.Context, args RunArgs) (m.RunReport, error) {
	files, err := w.discoverForRun(ctx, args)
	if err != nil {
		slog.Error("Failed to discover schema files", "error", err)
		return m.RunReport{}, fmt.Errorf("discover: %w", err)
	}

	if err := w.Start(ctx, controller.WithRunMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return m.RunReport{}, err
	}

	report := w.runFiles(ctx, files, args)

	w.Wait(ctx)
	w.Close(ctx)

	if err := w.saveReport(ctx, args.Reports, report); err != nil {
		return report, err
	}

	return report, nil
}

// Watch runs once and then re-checks changed schema files until ctx is
// cancelled or the user quits the UI.
func (w *workflow) Watch(ctx context.Context, args RunArgs) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	files, err := w.discoverForRun(ctx, args)
	if err != nil {
		slog.Error("Failed to discover schema files", "error", err)
		return fmt.Errorf("discover: %w", err)
	}

	fingerprints := map[m.Path]string{}
	for _, file := range files {
		w.fingerprintChanged(ctx, fingerprints, file)
	}

	if err := w.Start(ctx, controller.WithWatchMode(), controller.WithOnQuit(cancel)); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	report := w.runFiles(ctx, files, args)
	if err := w.saveReport(ctx, args.Reports, report); err != nil {
		slog.Error("Failed to save report", "error", err)
	}

	exclude, err := compileExcludes(args.Exclude)
	if err != nil {
		return err
	}

	err = w.Watcher.Watch(ctx, args.Paths, func(ctx context.Context, changed []m.Path) {
		targets := w.changedTargets(ctx, changed, exclude, args.Reports, fingerprints)
		if len(targets) == 0 {
			return
		}

		slog.Info("Re-running changed schema files", "count", len(targets))

		report := w.runFiles(ctx, targets, args)
		if err := w.saveReport(ctx, args.Reports, report); err != nil {
			slog.Error("Failed to save report", "error", err)
		}
	})
	if err != nil {
		slog.Error("Failed to watch schema files", "error", err)
		return fmt.Errorf("watch: %w", err)
	}

	return nil
}

// View shows the report saved by the last run in args.Reports.
func (w *workflow) View(ctx context.Context, args ViewArgs) (m.RunReport, error) {
	report, err := w.LoadReport(ctx, args.Reports)
	if err != nil {
		slog.Error("Failed to load report", "dir", args.Reports, "error", err)
		return m.RunReport{}, fmt.Errorf("load report: %w", err)
	}

	if err := w.Start(ctx, controller.WithRunMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return m.RunReport{}, err
	}

	for _, outcome := range report.Outcomes {
		w.DisplayOutcome(ctx, outcome)
	}

	w.DisplaySummary(ctx, report)
	w.Wait(ctx)
	w.Close(ctx)

	return report, nil
}

// runFiles runs every file on a bounded pool. A file whose run fails with an
// engine fault is reported and recorded as failed; other files continue.
func (w *workflow) runFiles(ctx context.Context, files []m.Path, args RunArgs) m.RunReport {
	workers := args.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	report := m.RunReport{
		RunID:     uuid.NewString(),
		StartedAt: w.now(),
		Outcomes:  []m.TestOutcome{},
	}

	w.DisplayRunInfo(ctx, len(files), workers)

	var (
		outcomes   []m.TestOutcome
		outcomesMu sync.Mutex
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for _, file := range files {
		currentFile := file

		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}

			w.DisplayStartingFile(groupCtx, currentFile)

			outcome, err := w.Runner.Run(groupCtx, m.Invocation{
				TestPath:     currentFile,
				Config:       args.Config,
				GlobalConfig: args,
			})
			if err != nil {
				w.DisplayFault(groupCtx, currentFile, err)

				at := w.now()
				outcome = LoadFailure(err, Timing{Start: at, End: at}, currentFile)
			} else {
				w.DisplayOutcome(groupCtx, outcome)
			}

			outcomesMu.Lock()
			outcomes = append(outcomes, outcome)
			outcomesMu.Unlock()

			return nil
		})
	}

	_ = group.Wait()

	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].TestPath < outcomes[j].TestPath
	})

	for _, outcome := range outcomes {
		report.Add(outcome)
	}

	report.FinishedAt = w.now()

	w.DisplaySummary(ctx, report)

	return report
}

func (w *workflow) saveReport(ctx context.Context, dir m.Path, report m.RunReport) error {
	if dir == "" {
		return nil
	}

	path, err := w.SaveReport(ctx, dir, report)
	if err != nil {
		slog.Error("Failed to save report", "dir", dir, "error", err)
		return fmt.Errorf("save report: %w", err)
	}

	slog.Info("Saved run report", "path", path, "run", report.RunID)

	return nil
}

// Discover expands files, directories and "dir/..." patterns into the sorted
// list of schema files to check. Directory scans skip hidden directories and
// the ignored tool files; explicitly named files are always kept.
func (w *workflow) Discover(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Path, error) {
	excludes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		paths = []m.Path{"."}
	}

	seen := map[m.Path]struct{}{}

	var files []m.Path

	add := func(path m.Path) {
		if isExcluded(path, excludes) {
			return
		}

		if _, dup := seen[path]; dup {
			return
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, raw := range paths {
		root := string(raw)
		recursive := strings.HasSuffix(root, recursiveSuffix)

		if recursive {
			root = strings.TrimSuffix(root, recursiveSuffix)
			if root == "" {
				root = "."
			}
		}

		info, err := w.FileInfo(ctx, m.Path(root))
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			add(m.Path(root))
			continue
		}

		err = w.Walk(ctx, m.Path(root), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if path != root && isHidden(info.Name()) {
					return filepath.SkipDir
				}

				return nil
			}

			if IsSchemaFile(m.Path(path)) && !w.isIgnored(m.Path(path)) {
				add(m.Path(path))
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files, nil
}

// discoverForRun is Discover without anything under the reports directory.
func (w *workflow) discoverForRun(ctx context.Context, args RunArgs) ([]m.Path, error) {
	files, err := w.Discover(ctx, args.Paths, args.Exclude...)
	if err != nil {
		return nil, err
	}

	kept := files[:0]
	for _, file := range files {
		if !within(file, args.Reports) {
			kept = append(kept, file)
		}
	}

	return kept, nil
}

// changedTargets keeps the schema files whose content differs from the last
// run. Report writes and tool files never count as changes.
func (w *workflow) changedTargets(
	ctx context.Context,
	changed []m.Path,
	exclude []*regexp.Regexp,
	reports m.Path,
	fingerprints map[m.Path]string,
) []m.Path {
	var targets []m.Path

	for _, path := range changed {
		if !IsSchemaFile(path) || isExcluded(path, exclude) || w.isIgnored(path) || within(path, reports) {
			continue
		}

		if !w.Exists(ctx, path) {
			continue
		}

		if !w.fingerprintChanged(ctx, fingerprints, path) {
			slog.Debug("Skipping unchanged schema file", "path", path)
			continue
		}

		targets = append(targets, path)
	}

	return targets
}

// fingerprintChanged records the content hash of path and reports whether it
// differs from the previous one. Unreadable files count as changed.
func (w *workflow) fingerprintChanged(ctx context.Context, fingerprints map[m.Path]string, path m.Path) bool {
	key := m.Path(filepath.Clean(string(path)))

	hash, err := w.HashFile(ctx, path)
	if err != nil {
		delete(fingerprints, key)
		return true
	}

	previous, seen := fingerprints[key]
	fingerprints[key] = hash

	return !seen || previous != hash
}

func (w *workflow) isIgnored(path m.Path) bool {
	_, ok := w.ignored[filepath.Base(string(path))]
	return ok
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".") && name != ".."
}

// within reports whether path is dir or lies below it.
func within(path, dir m.Path) bool {
	if dir == "" {
		return false
	}

	absPath, err := filepath.Abs(string(path))
	if err != nil {
		return false
	}

	absDir, err := filepath.Abs(string(dir))
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}

	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// IsSchemaFile reports whether path has a JSON or YAML extension.
func IsSchemaFile(path m.Path) bool {
	switch strings.ToLower(filepath.Ext(string(path))) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}

func isExcluded(path m.Path, excludes []*regexp.Regexp) bool {
	for _, re := range excludes {
		if re.MatchString(string(path)) {
			return true
		}
	}

	return false
}
