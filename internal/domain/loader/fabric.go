package loader

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/modcheck/modcheck/internal/domain"
)

const fabricManifest = "fabric.mod.json"

var fabricModID = regexp.MustCompile(`^[a-z][a-z0-9-_]{1,63}$`)

type fabricModJSON struct {
	SchemaVersion int    `json:"schemaVersion"`
	ID            string `json:"id"`
	Version       string `json:"version"`
	Name          string `json:"name"`
	Environment   string `json:"environment"`
}

// FabricValidator checks Fabric mod jars.
type FabricValidator struct{}

func (FabricValidator) Name() string               { return "fabric" }
func (FabricValidator) FileExtensions() []string   { return []string{"jar"} }
func (FabricValidator) ProjectTypes() []string     { return []string{"mod"} }
func (FabricValidator) SupportedLoaders() []string { return []string{"fabric"} }

func (FabricValidator) SupportedGameVersions() domain.GameVersionSupport {
	return domain.PastDate(fabricFirstRelease)
}

// Validate requires a decodable fabric.mod.json. Jars without compiled
// classes or mixin refmaps are source bundles and only get a warning.
func (FabricValidator) Validate(archive domain.Archive) (domain.ValidationResult, error) {
	data, found, err := readManifest(archive, fabricManifest)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	if !found {
		return domain.ValidationResult{}, domain.InvalidInputError("No %s present for Fabric file.", fabricManifest)
	}

	var m fabricModJSON
	if err := json.Unmarshal(trimBOM(data), &m); err != nil {
		return domain.ValidationResult{}, domain.ManifestError(fabricManifest, err)
	}
	if err := m.validate(); err != nil {
		return domain.ValidationResult{}, err
	}

	isBuilt := slices.ContainsFunc(archive.Names(), func(name string) bool {
		return strings.HasSuffix(name, ".class") || strings.HasSuffix(name, "refmap.json")
	})
	if !isBuilt {
		return domain.Warning("Fabric mod file is a source file!"), nil
	}
	return domain.Pass(), nil
}

func (m fabricModJSON) validate() error {
	if m.SchemaVersion != 0 && m.SchemaVersion != 1 {
		return domain.ManifestError(fabricManifest, fmt.Errorf("unsupported schemaVersion %d", m.SchemaVersion))
	}
	if m.ID == "" {
		return missingField(fabricManifest, "id")
	}
	if m.Version == "" {
		return missingField(fabricManifest, "version")
	}
	if !fabricModID.MatchString(m.ID) {
		return domain.ManifestError(fabricManifest, fmt.Errorf("invalid mod id %q", m.ID))
	}
	return nil
}
