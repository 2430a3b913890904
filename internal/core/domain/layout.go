package domain

import "path/filepath"

const (
	// RmkDirName is the name of the internal metadata directory.
	RmkDirName = ".rmk"

	// StateDirName is the name of the update state directory.
	StateDirName = "state"

	// RulesFileName is the default name of the rules file.
	RulesFileName = "mkfile"

	// DefaultTargetName is the target made when none is given.
	DefaultTargetName = "all"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultRmkPath returns the default root directory for rmk metadata.
func DefaultRmkPath() string {
	return RmkDirName
}

// DefaultStateDir returns the default directory for persisted update states.
func DefaultStateDir() string {
	return filepath.Join(RmkDirName, StateDirName)
}
