package testkit

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// wantPrefix opens an expectation line in the comment header of a fixture.
const wantPrefix = "// want:"

// Fixture is one .cq sample with the expectations from its header.
// An empty Want means the sample must analyze cleanly.
type Fixture struct {
	Name   string
	Path   string
	Source string
	Want   []string
}

// RepoRoot walks up from the working directory until it finds go.mod.
func RepoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found")
		}
		dir = parent
	}
}

// LoadFixtures reads every *.cq file under dir (relative paths are taken from the repo root),
// sorted by name.
func LoadFixtures(dir string) ([]Fixture, error) {
	if !filepath.IsAbs(dir) {
		root, err := RepoRoot()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(root, dir)
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.cq"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	out := make([]Fixture, 0, len(paths))
	for _, path := range paths {
		// #nosec G304 -- fixture paths come from a glob over testdata
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		fx := Fixture{
			Name:   strings.TrimSuffix(filepath.Base(path), ".cq"),
			Path:   path,
			Source: string(raw),
			Want:   parseWants(string(raw)),
		}
		out = append(out, fx)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no fixtures in %s", dir)
	}
	return out, nil
}

// parseWants collects "// want: msg" lines from the leading comment block.
func parseWants(src string) []string {
	var wants []string
	sc := bufio.NewScanner(strings.NewReader(src))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "//") {
			break
		}
		if msg, ok := strings.CutPrefix(line, wantPrefix); ok {
			wants = append(wants, strings.TrimSpace(msg))
		}
	}
	return wants
}
