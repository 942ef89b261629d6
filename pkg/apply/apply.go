package apply

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/neosetup/pkg/errors"
	"github.com/arthur-debert/neosetup/pkg/logging"
	"github.com/arthur-debert/neosetup/pkg/paths"
	"github.com/arthur-debert/neosetup/pkg/render"
)

// Options contains configuration for an Applier.
type Options struct {
	// Target is the directory artifacts are written into. Required.
	Target string

	// DryRun reports the plan without writing anything.
	DryRun bool

	// Force replaces existing files that neosetup did not generate.
	Force bool

	// Backups copies a file aside before replacing it.
	Backups bool

	// BackupDir receives those copies. Defaults to the backups directory
	// under the data dir.
	BackupDir string

	// Paths defines the directories the applier may write into. Defaults
	// to the standard neosetup paths.
	Paths paths.Paths

	Logger zerolog.Logger
}

// Applier writes rendered artifacts through a staged filesystem pipeline.
type Applier struct {
	target     string
	dryRun     bool
	force      bool
	backups    bool
	backupDir  string
	paths      paths.Paths
	filesystem synthfs.FileSystem
	logger     zerolog.Logger
}

// New creates a new applier instance
func New(opts Options) *Applier {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("apply")
	}

	p := opts.Paths
	if p == nil {
		p, _ = paths.New("")
	}

	backupDir := opts.BackupDir
	if backupDir == "" && p != nil {
		backupDir = p.BackupsDir()
	}

	return &Applier{
		target:     opts.Target,
		dryRun:     opts.DryRun,
		force:      opts.Force,
		backups:    opts.Backups,
		backupDir:  backupDir,
		paths:      p,
		filesystem: filesystem.NewOSFileSystem("/"),
		logger:     logger,
	}
}

// Result reports what an Apply run did, or would do in dry-run mode.
type Result struct {
	DryRun bool

	// Written lists the destination paths, in artifact order.
	Written []string

	// BackedUp maps each replaced destination to its backup copy.
	BackedUp map[string]string
}

// Apply writes every artifact under the target directory. Existing files
// are backed up first when backups are enabled; a file without the
// neosetup generation marker is only replaced under force.
func (a *Applier) Apply(artifacts []render.Artifact) (*Result, error) {
	result := &Result{DryRun: a.dryRun, BackedUp: map[string]string{}}
	if len(artifacts) == 0 {
		return result, nil
	}

	target, err := filepath.Abs(a.target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to normalize target directory: %s", a.target)
	}
	if err := a.validateSafePath(target); err != nil {
		return nil, err
	}

	// Plan first so every failure mode surfaces before anything is
	// staged.
	for _, artifact := range artifacts {
		path := filepath.Join(target, artifact.File)
		if !paths.ContainsPath(target, path) {
			return nil, errors.Newf(errors.ErrInvalidInput,
				"artifact file name escapes the target directory: %s", artifact.File)
		}

		exists, managed, err := inspect(path)
		if err != nil {
			return nil, err
		}
		if exists && !managed && !a.force {
			return nil, errors.Newf(errors.ErrAlreadyExists,
				"refusing to replace %s: not generated by neosetup (use force to override)", path)
		}
		if exists && a.backups {
			result.BackedUp[path] = filepath.Join(a.backupDir, artifact.File)
		}
		result.Written = append(result.Written, path)
	}

	if len(result.BackedUp) > 0 {
		if err := a.validateSafePath(a.backupDir); err != nil {
			return nil, err
		}
	}

	if a.dryRun {
		a.logPlan(artifacts, result)
		return result, nil
	}

	ops, err := a.buildOperations(target, artifacts, result)
	if err != nil {
		return nil, err
	}

	pipeline := synthfs.NewMemPipeline()
	for _, op := range ops {
		if err := pipeline.Add(op); err != nil {
			return nil, errors.Wrap(err, errors.ErrFileWrite,
				"failed to stage filesystem operation")
		}
	}

	a.logger.Info().
		Int("artifacts", len(artifacts)).
		Int("backups", len(result.BackedUp)).
		Str("target", target).
		Msg("Applying artifacts")

	run := synthfs.NewExecutor().Run(context.Background(), pipeline, a.filesystem)
	if run.GetError() != nil {
		return nil, errors.Wrap(run.GetError(), errors.ErrFileWrite,
			"failed to apply artifacts")
	}

	a.logger.Info().Msg("All artifacts applied")
	return result, nil
}

// buildOperations assembles the pipeline: directories, then backups, then
// artifact writes.
func (a *Applier) buildOperations(target string, artifacts []render.Artifact, result *Result) ([]synthfs.Operation, error) {
	var ops []synthfs.Operation

	appendDir := func(dir string) error {
		if _, err := os.Stat(dir); err == nil {
			return nil
		}
		op, err := dirOp(dir)
		if err != nil {
			return err
		}
		ops = append(ops, op)
		return nil
	}

	if err := appendDir(target); err != nil {
		return nil, err
	}
	if len(result.BackedUp) > 0 {
		if err := appendDir(a.backupDir); err != nil {
			return nil, err
		}
	}

	for _, artifact := range artifacts {
		path := filepath.Join(target, artifact.File)
		if backupPath, ok := result.BackedUp[path]; ok {
			op, err := copyOp(path, backupPath)
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
		}

		op, err := fileOp(path, artifact)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	return ops, nil
}

// validateSafePath confines writes to the home directory and the neosetup
// data directories.
func (a *Applier) validateSafePath(path string) error {
	var safe []string
	if home, err := paths.GetHomeDirectory(); err == nil {
		safe = append(safe, home)
	}
	if a.paths != nil {
		safe = append(safe, a.paths.DataDir(), a.paths.StateDir(),
			a.paths.RenderDir(), a.paths.BackupsDir())
	}

	for _, dir := range safe {
		if paths.ContainsPath(dir, path) {
			return nil
		}
	}
	return errors.Newf(errors.ErrPermission,
		"apply target is outside the home and neosetup directories: %s", path)
}

// inspect reports whether path exists and whether neosetup generated it.
func inspect(path string) (exists, managed bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, false, nil
		}
		return false, false, errors.Wrapf(err, errors.ErrFileAccess,
			"failed to inspect %s", path)
	}
	return true, strings.Contains(string(data), render.GeneratedMarker), nil
}

func (a *Applier) logPlan(artifacts []render.Artifact, result *Result) {
	a.logger.Info().Msg("Dry run mode - artifacts would be written:")
	for i, artifact := range artifacts {
		path := result.Written[i]
		if backupPath, ok := result.BackedUp[path]; ok {
			a.logger.Info().
				Str("path", path).
				Str("backup", backupPath).
				Msg("Would back up existing file")
		}
		a.logger.Info().
			Str("path", path).
			Str("section", artifact.Section).
			Int("contentLen", len(artifact.Content)).
			Msg("Would write file")
	}
}

func dirOp(dir string) (synthfs.Operation, error) {
	rel, err := filepath.Rel("/", dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert path: %s", dir)
	}

	op := operations.NewCreateDirectoryOperation(core.OperationID("create-dir-"+dir), rel)
	op.SetItem(&directoryItem{path: rel, mode: 0o755})
	return synthfs.NewOperationsPackageAdapter(op), nil
}

func fileOp(path string, artifact render.Artifact) (synthfs.Operation, error) {
	rel, err := filepath.Rel("/", path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert path: %s", path)
	}

	op := operations.NewCreateFileOperation(core.OperationID("write-file-"+path), rel)
	op.SetItem(&fileItem{path: rel, content: []byte(artifact.Content), mode: artifact.Mode})
	return synthfs.NewOperationsPackageAdapter(op), nil
}

func copyOp(source, dest string) (synthfs.Operation, error) {
	relSource, err := filepath.Rel("/", source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert source path: %s", source)
	}
	relDest, err := filepath.Rel("/", dest)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert target path: %s", dest)
	}

	op := operations.NewCopyOperation(core.OperationID("backup-"+dest), relDest)
	op.SetPaths(relSource, relDest)
	return synthfs.NewOperationsPackageAdapter(op), nil
}
