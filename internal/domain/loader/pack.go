package loader

import (
	"encoding/json"
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/modcheck/modcheck/internal/domain"
)

const packManifest = "modrinth.index.json"

var (
	requiredPackHashes = []string{"sha1", "sha512"}
	packEnvValues      = []string{"required", "optional", "unsupported"}
)

type packIndex struct {
	FormatVersion int               `json:"formatVersion"`
	Game          string            `json:"game"`
	VersionID     string            `json:"versionId"`
	Name          string            `json:"name"`
	Summary       string            `json:"summary"`
	Files         []packFile        `json:"files"`
	Dependencies  map[string]string `json:"dependencies"`
}

type packFile struct {
	Path      string            `json:"path"`
	Hashes    map[string]string `json:"hashes"`
	Env       map[string]string `json:"env"`
	Downloads []string          `json:"downloads"`
	FileSize  int64             `json:"fileSize"`
}

// PackValidator checks modpack archives described by modrinth.index.json.
type PackValidator struct{}

func (PackValidator) Name() string             { return "pack" }
func (PackValidator) FileExtensions() []string { return []string{"zip", "mrpack"} }
func (PackValidator) ProjectTypes() []string   { return []string{"modpack"} }

func (PackValidator) SupportedLoaders() []string {
	return []string{"forge", "fabric", "quilt"}
}

func (PackValidator) SupportedGameVersions() domain.GameVersionSupport {
	return domain.AllGameVersions()
}

func (PackValidator) Validate(archive domain.Archive) (domain.ValidationResult, error) {
	data, found, err := readManifest(archive, packManifest)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	if !found {
		return domain.ValidationResult{}, domain.InvalidInputError("Pack manifest is missing.")
	}

	var index packIndex
	if err := json.Unmarshal(trimBOM(data), &index); err != nil {
		return domain.ValidationResult{}, domain.ManifestError(packManifest, err)
	}

	if index.FormatVersion != 1 {
		return domain.ValidationResult{}, domain.InvalidInputError("Pack format version %d is not supported.", index.FormatVersion)
	}
	if index.Game != "minecraft" {
		return domain.ValidationResult{}, domain.InvalidInputError("Game %s does not exist!", index.Game)
	}
	if index.VersionID == "" {
		return domain.ValidationResult{}, missingField(packManifest, "versionId")
	}
	if index.Name == "" {
		return domain.ValidationResult{}, missingField(packManifest, "name")
	}
	if _, ok := index.Dependencies["minecraft"]; !ok {
		return domain.ValidationResult{}, missingField(packManifest, "dependencies.minecraft")
	}

	for _, f := range index.Files {
		if err := f.validate(); err != nil {
			return domain.ValidationResult{}, err
		}
	}
	return domain.Pass(), nil
}

func (f packFile) validate() error {
	if !isPackRelative(f.Path) {
		return domain.InvalidInputError("File path %q is not inside the pack.", f.Path)
	}
	for _, algo := range requiredPackHashes {
		if f.Hashes[algo] == "" {
			return domain.InvalidInputError("File %s is missing a %s hash.", f.Path, algo)
		}
	}
	for _, side := range slices.Sorted(maps.Keys(f.Env)) {
		if support := f.Env[side]; !slices.Contains(packEnvValues, support) {
			return domain.InvalidInputError("File %s has invalid %s environment %q.", f.Path, side, support)
		}
	}
	if len(f.Downloads) == 0 {
		return domain.InvalidInputError("File %s has no download URLs.", f.Path)
	}
	return nil
}

// isPackRelative rejects empty, absolute, drive-qualified and escaping paths.
func isPackRelative(p string) bool {
	if p == "" || strings.ContainsAny(p, `\:`) || path.IsAbs(p) {
		return false
	}
	return !slices.Contains(strings.Split(p, "/"), "..")
}
