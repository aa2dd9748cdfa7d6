// Package manifest reads and writes the project file that names a Remy
// package and the sources that belong to it. It is written as YAML by
// default; a remy.toml is accepted as well.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"

	"github.com/pontaoski/remygo/lexer"
	"github.com/pontaoski/remygo/types"
)

const DefaultExtension = ".remy"

// Names are the file names Discover looks for, in order.
var Names = []string{"remy.yaml", "remy.yml", "remy.toml"}

type Manifest struct {
	Package   string   `yaml:"Package" toml:"package"`
	Sources   []string `yaml:"Sources,omitempty" toml:"sources,omitempty"`
	Extension string   `yaml:"Extension,omitempty" toml:"extension,omitempty"`
}

// New returns a manifest for pkg with the defaults filled in.
func New(pkg string) Manifest {
	m := Manifest{Package: pkg}
	m.applyDefaults()
	return m
}

func (m *Manifest) applyDefaults() {
	if m.Extension == "" {
		m.Extension = DefaultExtension
	}
	if !strings.HasPrefix(m.Extension, ".") {
		m.Extension = "." + m.Extension
	}
	if len(m.Sources) == 0 {
		m.Sources = []string{"*" + m.Extension}
	}
}

// Validate checks that the package name is exactly one identifier, with no
// surrounding whitespace or comments.
func (m Manifest) Validate() error {
	tokens, err := lexer.Lex("", m.Package)
	if err != nil || len(tokens) != 2 || tokens[0].Kind != types.IDENT || tokens[0].Value != m.Package {
		return fmt.Errorf("package name %q is not an identifier", m.Package)
	}
	return nil
}

// Decode parses data as YAML or TOML depending on the extension of name.
func Decode(name string, data []byte) (Manifest, error) {
	var m Manifest

	switch filepath.Ext(name) {
	case ".toml":
		if _, err := toml.Decode(string(data), &m); err != nil {
			return Manifest{}, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.UnmarshalStrict(data, &m); err != nil {
			return Manifest{}, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	default:
		return Manifest{}, fmt.Errorf("unknown manifest format %q", name)
	}

	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

func Encode(name string, m Manifest) ([]byte, error) {
	switch filepath.Ext(name) {
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(m); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case ".yaml", ".yml":
		return yaml.Marshal(m)
	}
	return nil, fmt.Errorf("unknown manifest format %q", name)
}

func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, tracerr.Wrap(err)
	}
	m, err := Decode(path, data)
	if err != nil {
		return Manifest{}, tracerr.Wrap(err)
	}
	return m, nil
}

// Write validates m and writes it to path, refusing to overwrite an existing
// file.
func Write(path string, m Manifest) error {
	if err := m.Validate(); err != nil {
		return tracerr.Wrap(err)
	}
	data, err := Encode(path, m)
	if err != nil {
		return tracerr.Wrap(err)
	}

	fi, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return tracerr.Wrap(err)
	}
	defer fi.Close()

	if _, err := fi.Write(data); err != nil {
		return tracerr.Wrap(err)
	}
	return nil
}

// Discover loads the first manifest found in dir and returns it along with
// its path.
func Discover(dir string) (Manifest, string, error) {
	for _, name := range Names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		m, err := Load(path)
		return m, path, err
	}
	return Manifest{}, "", tracerr.Errorf("no manifest in %s, expected one of %s", dir, strings.Join(Names, ", "))
}

// Files expands the source patterns relative to dir. The result is sorted
// and free of duplicates.
func (m Manifest) Files(dir string) ([]string, error) {
	seen := map[string]bool{}
	var files []string

	for _, pattern := range m.Sources {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			if fi, err := os.Stat(match); err != nil || fi.IsDir() {
				continue
			}
			seen[match] = true
			files = append(files, match)
		}
	}

	sort.Strings(files)
	return files, nil
}
