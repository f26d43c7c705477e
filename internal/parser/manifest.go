// Package parser reads page manifests from YAML or JSON.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/raphaelgruber/rendercheck/internal/models"
	"gopkg.in/yaml.v3"
)

// Sentinel errors for manifest decoding.
var (
	// ErrEmptyManifest indicates a manifest document with no content.
	ErrEmptyManifest = errors.New("empty manifest")

	// ErrMultipleDocuments indicates a file holding more than one YAML document.
	// Each page gets its own manifest file.
	ErrMultipleDocuments = errors.New("manifest holds more than one document")
)

// manifestExts are the file extensions FindManifests picks up. JSON is parsed by the
// YAML decoder, since YAML is a superset of JSON.
var manifestExts = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
}

// ParseManifest decodes a single manifest. Unknown keys are rejected so that
// typos such as "privcy" surface instead of silently becoming missing fields.
func ParseManifest(data []byte) (models.Manifest, error) {
	var m models.Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return models.Manifest{}, ErrEmptyManifest
		}
		return models.Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}

	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return m, nil
	case err != nil:
		return models.Manifest{}, fmt.Errorf("decode manifest: %w", err)
	default:
		return models.Manifest{}, ErrMultipleDocuments
	}
}

// LoadManifest reads and decodes the manifest at path. A path of "-" reads
// stdin, or os.Stdin when stdin is nil.
func LoadManifest(path string, stdin io.Reader) (models.Manifest, error) {
	var data []byte
	var err error
	if path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return models.Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return models.Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	if m.Page == "" && path != "-" {
		m.Page = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

// FindManifests returns every manifest file under dir, sorted by path.
func FindManifests(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if manifestExts[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}
