package loader

import (
	"encoding/json"
	"fmt"

	"github.com/modcheck/modcheck/internal/domain"
)

const packMcmeta = "pack.mcmeta"

type packMcmetaJSON struct {
	Pack *struct {
		PackFormat  *int            `json:"pack_format"`
		Description json.RawMessage `json:"description"`
	} `json:"pack"`
}

// ResourcePackValidator checks resource packs and data packs.
type ResourcePackValidator struct{}

func (ResourcePackValidator) Name() string               { return "resourcepack" }
func (ResourcePackValidator) FileExtensions() []string   { return []string{"zip"} }
func (ResourcePackValidator) ProjectTypes() []string     { return []string{"resourcepack", "datapack"} }
func (ResourcePackValidator) SupportedLoaders() []string { return []string{"minecraft"} }

func (ResourcePackValidator) SupportedGameVersions() domain.GameVersionSupport {
	return domain.AllGameVersions()
}

func (ResourcePackValidator) Validate(archive domain.Archive) (domain.ValidationResult, error) {
	data, found, err := readManifest(archive, packMcmeta)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	if !found {
		return domain.ValidationResult{}, domain.InvalidInputError(
			"No pack.mcmeta present for pack file. Tip: Make sure pack.mcmeta is in the root directory of your pack!")
	}

	var meta packMcmetaJSON
	if err := json.Unmarshal(trimBOM(data), &meta); err != nil {
		return domain.ValidationResult{}, domain.ManifestError(packMcmeta, err)
	}
	if meta.Pack == nil {
		return domain.ValidationResult{}, missingField(packMcmeta, "pack")
	}
	if meta.Pack.PackFormat == nil {
		return domain.ValidationResult{}, missingField(packMcmeta, "pack.pack_format")
	}
	if *meta.Pack.PackFormat <= 0 {
		return domain.ValidationResult{}, domain.ManifestError(packMcmeta, fmt.Errorf("invalid pack_format %d", *meta.Pack.PackFormat))
	}
	return domain.Pass(), nil
}
