package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"cqasm/internal/version"
)

var (
	// ErrProjectSectionMissing indicates that [project] is missing in cqasm.toml.
	ErrProjectSectionMissing = errors.New("missing [project]")
	// ErrVersionUnsatisfied indicates that the tool does not match [project].requires.
	ErrVersionUnsatisfied = errors.New("tool version does not satisfy [project].requires")
)

// DefaultInclude matches every cQASM file below the project root.
var DefaultInclude = []string{"*.cq"}

// Manifest is the decoded cqasm.toml.
type Manifest struct {
	Path    string `toml:"-"`
	Root    string `toml:"-"`
	Project struct {
		Name     string   `toml:"name"`
		Requires string   `toml:"requires"`
		Include  []string `toml:"include"`
	} `toml:"project"`
	Check CheckConfig `toml:"check"`
}

// CheckConfig is the [check] section.
type CheckConfig struct {
	MaxSyntaxErrors int  `toml:"max_syntax_errors"`
	Jobs            int  `toml:"jobs"`
	Cache           bool `toml:"cache"`
}

// LoadManifest parses and validates a cqasm.toml.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return nil, fmt.Errorf("%s: %w", path, ErrProjectSectionMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	m.Path = path
	m.Root = filepath.Dir(path)
	m.Project.Name = strings.TrimSpace(m.Project.Name)
	if m.Project.Name == "" {
		m.Project.Name = filepath.Base(m.Root)
	}
	if len(m.Project.Include) == 0 {
		m.Project.Include = DefaultInclude
	}
	for _, pattern := range m.Project.Include {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("%s: invalid include pattern %q: %w", path, pattern, err)
		}
	}
	if m.Check.MaxSyntaxErrors < 0 || m.Check.Jobs < 0 {
		return nil, fmt.Errorf("%s: [check] limits must not be negative", path)
	}
	return &m, nil
}

// CheckRequires validates [project].requires against the running tool version.
func (m *Manifest) CheckRequires() error {
	req := strings.TrimSpace(m.Project.Requires)
	if req == "" {
		return nil
	}
	ok, err := version.Satisfies(req)
	if err != nil {
		return fmt.Errorf("%s: %w", m.Path, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w: have %s, need %s", m.Path, ErrVersionUnsatisfied, version.GetVersion(), req)
	}
	return nil
}

// Load finds the manifest above startDir and loads it; ok is false when there is none.
func Load(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = LoadManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}
