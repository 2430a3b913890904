// Package state implements persistence of the update state between
// invocations.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/rmk/internal/core/domain"
	"go.trai.ch/rmk/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// stateFile is the on-disk form of the update state.
type stateFile struct {
	Targets []targetRecord `yaml:"targets"`
}

// targetRecord is one (concrete target, modification time) entry.
type targetRecord struct {
	Path    string    `yaml:"path"`
	Deep    bool      `yaml:"deep,omitempty"`
	ModTime time.Time `yaml:"mtime"`
}

// Store implements ports.StateStore using a YAML file.
type Store struct {
	logger ports.Logger
}

// NewStore creates a new Store with the given logger.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Load reads the persisted state from path. An absent or unparsable file
// loads as an empty state; prior records are simply forgotten, never fatal.
func (s *Store) Load(path string) (*domain.UpdateState, error) {
	st := domain.NewUpdateState()

	data, err := os.ReadFile(path) //nolint:gosec // path is the configured state file
	if err != nil {
		return st, nil
	}

	var file stateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		s.logger.Warn("discarding unreadable state file " + path)
		return domain.NewUpdateState(), nil
	}

	for _, rec := range file.Targets {
		depth := domain.DepthShallow
		if rec.Deep {
			depth = domain.DepthDeep
		}
		st.Set(domain.NewConcreteTarget(depth, rec.Path), rec.ModTime)
	}
	return st, nil
}

// Save writes the state to path, creating parent directories as needed.
// Records are sorted by path so identical states serialize identically.
func (s *Store) Save(path string, st *domain.UpdateState) error {
	file := stateFile{Targets: make([]targetRecord, 0, st.Len())}
	for target, modTime := range st.All() {
		file.Targets = append(file.Targets, targetRecord{
			Path:    target.Path.String(),
			Deep:    target.Depth == domain.DepthDeep,
			ModTime: modTime,
		})
	}
	sort.Slice(file.Targets, func(i, j int) bool {
		if file.Targets[i].Path != file.Targets[j].Path {
			return file.Targets[i].Path < file.Targets[j].Path
		}
		return !file.Targets[i].Deep && file.Targets[j].Deep
	})

	data, err := yaml.Marshal(file)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStateMarshalFailed.Error())
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStateWriteFailed.Error())
	}

	//nolint:gosec // path is the configured state file
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStateWriteFailed.Error())
	}
	return nil
}

// DefaultStatePath derives the state file location for a rules file: one
// state per rules file, named by the hash of its absolute path.
func DefaultStatePath(rulesPath string) string {
	abs, err := filepath.Abs(rulesPath)
	if err != nil {
		abs = rulesPath
	}
	sum := xxhash.Sum64String(abs)
	return filepath.Join(domain.DefaultStateDir(), fmt.Sprintf("%016x.yaml", sum))
}
