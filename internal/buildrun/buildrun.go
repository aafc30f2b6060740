// Package buildrun executes the configured build executable (§6
// "build.executable"/"build.args") for the custom textDocument/build
// command and turns its output into BuildError diagnostics.
//
// Per §5's scheduling model, a build is a suspension point a read
// handler blocks on from a worker-pool goroutine, and it exposes a
// token-mapped abort handle so an incoming $/cancelRequest can kill the
// spawned process. Concurrent builds are capped the way gopls caps CPU-
// bound fan-out in its snapshot package, with golang.org/x/sync/errgroup's
// SetLimit acting as a counting semaphore around the external process.
package buildrun

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"texlab.dev/core/internal/buildlog"
	"texlab.dev/core/internal/config"
)

// Status is the textDocument/build response's status field (§6: "{
// status: 0|1|2|3 }").
type Status int

const (
	StatusSuccess Status = iota
	StatusError
	StatusFailure
	StatusCancelled
)

// Job is the outcome of one build run.
type Job struct {
	ID     string
	Status Status
	Errors []buildlog.BuildError
	Err    error
}

// Manager runs opts.Executable against a root document's tex file,
// tracking every in-flight process by a uuid so Cancel can abort it.
type Manager struct {
	log *zap.Logger

	mu     sync.Mutex
	cancel map[string]context.CancelFunc

	sem *errgroup.Group
}

// NewManager returns a Manager that runs at most maxConcurrent builds
// at once; maxConcurrent <= 0 means "one at a time".
func NewManager(log *zap.Logger, maxConcurrent int) *Manager {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	g := &errgroup.Group{}
	g.SetLimit(maxConcurrent)
	return &Manager{log: log, cancel: map[string]context.CancelFunc{}, sem: g}
}

// Close waits for every build started through m to finish. Callers
// shut the workspace down only after this returns.
func (m *Manager) Close() {
	m.sem.Wait()
}

// Start runs the build and blocks until it completes, is cancelled via
// Cancel, or ctx is done. It acquires a slot in m's concurrency limit
// first, so callers already run it from a worker-pool goroutine rather
// than the dispatcher thread.
func (m *Manager) Start(ctx context.Context, opts config.BuildOptions, texPath string) *Job {
	id := uuid.New().String()
	result := make(chan *Job, 1)
	m.sem.Go(func() error {
		result <- m.run(ctx, id, opts, texPath)
		return nil
	})
	return <-result
}

// Cancel aborts the build identified by id, if it's still running.
// Returns false if id is unknown or already finished.
func (m *Manager) Cancel(id string) bool {
	m.mu.Lock()
	cancelFn, ok := m.cancel[id]
	m.mu.Unlock()
	if !ok {
		return false
	}
	cancelFn()
	return true
}

func (m *Manager) run(ctx context.Context, id string, opts config.BuildOptions, texPath string) *Job {
	runCtx, cancelFn := context.WithCancel(ctx)
	m.mu.Lock()
	m.cancel[id] = cancelFn
	m.mu.Unlock()
	defer func() {
		cancelFn()
		m.mu.Lock()
		delete(m.cancel, id)
		m.mu.Unlock()
	}()

	args := make([]string, len(opts.Args))
	for i, a := range opts.Args {
		args[i] = substitute(a, texPath)
	}

	cmd := exec.CommandContext(runCtx, opts.Executable, args...)
	if opts.OutputDir != "" {
		cmd.Dir = opts.OutputDir
	}
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	m.log.Info("build started",
		zap.String("id", id),
		zap.String("executable", opts.Executable),
		zap.Strings("args", args))

	runErr := cmd.Run()
	errs := buildlog.Parse(buildlog.Decode(out.Bytes()))

	job := &Job{ID: id, Errors: errs}
	switch {
	case runCtx.Err() == context.Canceled:
		job.Status = StatusCancelled
	case runErr != nil && !hasErrorSeverity(errs):
		job.Status = StatusFailure
		job.Err = runErr
	case hasErrorSeverity(errs):
		job.Status = StatusError
	default:
		job.Status = StatusSuccess
	}

	m.log.Info("build finished", zap.String("id", id), zap.Int("status", int(job.Status)))
	return job
}

// substitute replaces the %f placeholder in a build.args entry with
// texFile, the same placeholder texlab.forwardSearch uses (see
// internal/feature/forwardsearch), since build.args' default
// ["-pdf", "-interaction=nonstopmode", "-synctex=1", "%f"] only ever
// needs %f.
func substitute(arg, texFile string) string {
	return strings.ReplaceAll(arg, "%f", texFile)
}

func hasErrorSeverity(errs []buildlog.BuildError) bool {
	for _, e := range errs {
		if e.Severity == buildlog.SeverityError {
			return true
		}
	}
	return false
}
