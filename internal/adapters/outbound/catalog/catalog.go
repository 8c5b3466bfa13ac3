// Package catalog loads the game version catalog from YAML or JSON files.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/modcheck/modcheck/internal/domain"
)

//go:embed versions.yaml
var defaultCatalog []byte

// entry accepts both the plain {version, date} form and the launcher
// manifest's {id, releaseTime} form.
type entry struct {
	Version     string `yaml:"version"`
	ID          string `yaml:"id"`
	Date        string `yaml:"date"`
	ReleaseTime string `yaml:"releaseTime"`
}

type launcherManifest struct {
	Versions []entry `yaml:"versions"`
}

// FileLoader implements domain.CatalogLoader for local files.
type FileLoader struct{}

// New creates a FileLoader.
func New() *FileLoader { return &FileLoader{} }

// Load reads a catalog from path.
func (l *FileLoader) Load(path string) ([]domain.GameVersion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	versions, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return versions, nil
}

// Default returns the catalog bundled with the binary.
func Default() []domain.GameVersion {
	versions, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return versions
}

// Parse decodes a catalog document. Entry order is preserved.
func Parse(data []byte) ([]domain.GameVersion, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	var entries []entry
	switch root := doc.Content[0]; root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&entries); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		var m launcherManifest
		if err := root.Decode(&m); err != nil {
			return nil, err
		}
		entries = m.Versions
	default:
		return nil, fmt.Errorf("expected a list of versions or a versions manifest")
	}

	out := make([]domain.GameVersion, 0, len(entries))
	for i, e := range entries {
		gv, err := e.gameVersion()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, gv)
	}
	return out, nil
}

func (e entry) gameVersion() (domain.GameVersion, error) {
	version := e.Version
	if version == "" {
		version = e.ID
	}
	if version == "" {
		return domain.GameVersion{}, fmt.Errorf("missing version")
	}

	raw := e.Date
	if raw == "" {
		raw = e.ReleaseTime
	}
	if raw == "" {
		return domain.GameVersion{}, fmt.Errorf("version %s: missing date", version)
	}
	date, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return domain.GameVersion{}, fmt.Errorf("version %s: %w", version, err)
	}
	return domain.GameVersion{Version: version, Date: date}, nil
}
