// Package paths provides centralized path handling for neosetup.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/neosetup/pkg/errors"
)

// Environment variable names
const (
	// EnvOperatorsRoot is the primary environment variable for the
	// operators directory location
	EnvOperatorsRoot = "NEOSETUP_ROOT"

	// EnvDataDir overrides the XDG data directory for neosetup
	EnvDataDir = "NEOSETUP_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for neosetup
	EnvConfigDir = "NEOSETUP_CONFIG_DIR"

	// EnvCacheDir overrides the XDG cache directory for neosetup
	EnvCacheDir = "NEOSETUP_CACHE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
// IMPORTANT: These constants define neosetup's directory structure and are
// NOT user-configurable. User-configurable paths belong in pkg/config.
const (
	// NeosetupDirName is the directory name for neosetup-specific files
	NeosetupDirName = "neosetup"

	// OperatorsDirName is the directory under ConfigDir holding operators
	OperatorsDirName = "operators"

	// VarsFileName is the definition document inside each operator directory
	VarsFileName = "vars.yml"

	// RenderDirName is the subdirectory for generated configuration files
	RenderDirName = "rendered"

	// BackupsDirName is the subdirectory for pre-apply backups
	BackupsDirName = "backups"

	// AppConfigFile is the optional application config at the operators root
	AppConfigFile = ".neosetup.toml"

	// LogFileName is the name of the log file
	LogFileName = "neosetup.log"
)

// Paths provides centralized path management for neosetup
type Paths interface {
	OperatorsRoot() string
	OperatorPath(name string) string
	VarsFilePath(name string) string
	AppConfigPath() string
	DataDir() string
	ConfigDir() string
	CacheDir() string
	StateDir() string
	RenderDir() string
	BackupsDir() string
	LogFilePath() string
	NormalizePath(path string) (string, error)
}

type paths struct {
	// operatorsRoot is the directory holding one subdirectory per operator
	operatorsRoot string

	// xdgData is the XDG data directory
	xdgData string

	// xdgConfig is the XDG config directory
	xdgConfig string

	// xdgCache is the XDG cache directory
	xdgCache string

	// xdgState is the XDG state directory
	xdgState string
}

// New creates a new Paths instance with the given operators root.
// If operatorsRoot is empty, it is determined from environment variables
// or falls back to <XDG_CONFIG_HOME>/neosetup/operators.
func New(operatorsRoot string) (Paths, error) {
	p := &paths{}

	p.setupXDGDirs()

	if operatorsRoot == "" {
		p.operatorsRoot = findOperatorsRoot(p.xdgConfig)
	} else {
		p.operatorsRoot = expandHome(operatorsRoot)
	}

	absRoot, err := filepath.Abs(p.operatorsRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for operators root")
	}
	p.operatorsRoot = absRoot

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	// Data directory
	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.xdgData = expandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, NeosetupDirName)
	}

	// Config directory
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, NeosetupDirName)
	}

	// Cache directory
	if cacheDir := os.Getenv(EnvCacheDir); cacheDir != "" {
		p.xdgCache = expandHome(cacheDir)
	} else {
		p.xdgCache = filepath.Join(xdg.CacheHome, NeosetupDirName)
	}

	// State directory - XDG doesn't provide StateHome, so we check manually
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, NeosetupDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.xdgState = filepath.Join(homeDir, ".local", "state", NeosetupDirName)
	}
}

// findOperatorsRoot determines the operators root using the following priority:
// 1. NEOSETUP_ROOT environment variable (if set)
// 2. <config dir>/operators
func findOperatorsRoot(configDir string) string {
	if root := os.Getenv(EnvOperatorsRoot); root != "" {
		return expandHome(root)
	}
	return filepath.Join(configDir, OperatorsDirName)
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// OperatorsRoot returns the directory holding operator definitions
func (p *paths) OperatorsRoot() string {
	return p.operatorsRoot
}

// OperatorPath returns the path to a specific operator directory
func (p *paths) OperatorPath(name string) string {
	return filepath.Join(p.operatorsRoot, name)
}

// VarsFilePath returns the path to an operator's definition document
func (p *paths) VarsFilePath(name string) string {
	return filepath.Join(p.OperatorPath(name), VarsFileName)
}

// AppConfigPath returns the path to the optional application config file
func (p *paths) AppConfigPath() string {
	return filepath.Join(p.operatorsRoot, AppConfigFile)
}

// DataDir returns the XDG data directory for neosetup
func (p *paths) DataDir() string {
	return p.xdgData
}

// ConfigDir returns the XDG config directory for neosetup
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// CacheDir returns the XDG cache directory for neosetup
func (p *paths) CacheDir() string {
	return p.xdgCache
}

// StateDir returns the XDG state directory for neosetup
func (p *paths) StateDir() string {
	return p.xdgState
}

// RenderDir returns the directory where generated configuration files land
func (p *paths) RenderDir() string {
	return filepath.Join(p.xdgData, RenderDirName)
}

// BackupsDir returns the directory holding pre-apply backups
func (p *paths) BackupsDir() string {
	return filepath.Join(p.xdgData, BackupsDirName)
}

// LogFilePath returns the path to the neosetup log file
// Respects XDG_STATE_HOME if set
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", err
	}

	expanded := expandHome(path)

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Try the HOME environment variable as a fallback
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}
