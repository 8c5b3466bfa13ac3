package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/pelletier/go-toml/v2"

	"github.com/modcheck/modcheck/internal/domain"
)

const (
	neoForgeManifest = "META-INF/neoforge.mods.toml"
	forgeManifest    = "META-INF/mods.toml"
	legacyManifest   = "mcmod.info"
)

var forgeModID = regexp.MustCompile(`^[a-z][a-z0-9_]{1,63}$`)

type modsTOML struct {
	ModLoader     string `toml:"modLoader"`
	LoaderVersion string `toml:"loaderVersion"`
	License       string `toml:"license"`
	Mods          []struct {
		ModID       string `toml:"modId"`
		Version     string `toml:"version"`
		DisplayName string `toml:"displayName"`
	} `toml:"mods"`
}

// ForgeValidator checks Forge and NeoForge jars built for 1.13.2 and later.
type ForgeValidator struct{}

func (ForgeValidator) Name() string               { return "forge" }
func (ForgeValidator) FileExtensions() []string   { return []string{"jar"} }
func (ForgeValidator) ProjectTypes() []string     { return []string{"mod"} }
func (ForgeValidator) SupportedLoaders() []string { return []string{"forge", "neoforge"} }

func (ForgeValidator) SupportedGameVersions() domain.GameVersionSupport {
	return domain.PastDate(forgeTOMLRelease)
}

// Validate requires META-INF/neoforge.mods.toml or META-INF/mods.toml,
// checked in that order.
func (ForgeValidator) Validate(archive domain.Archive) (domain.ValidationResult, error) {
	var (
		entry string
		data  []byte
	)
	for _, name := range []string{neoForgeManifest, forgeManifest} {
		d, found, err := readManifest(archive, name)
		if err != nil {
			return domain.ValidationResult{}, err
		}
		if found {
			entry, data = name, d
			break
		}
	}
	if entry == "" {
		return domain.ValidationResult{}, domain.InvalidInputError("No mods.toml present for Forge file.")
	}

	var m modsTOML
	if err := toml.Unmarshal(trimBOM(data), &m); err != nil {
		return domain.ValidationResult{}, domain.ManifestError(entry, err)
	}
	if err := m.validate(entry); err != nil {
		return domain.ValidationResult{}, err
	}

	if !hasCompiledClasses(archive) {
		return domain.Warning("Forge mod file is a source file!"), nil
	}
	return domain.Pass(), nil
}

func (m modsTOML) validate(entry string) error {
	if m.ModLoader == "" {
		return missingField(entry, "modLoader")
	}
	if m.LoaderVersion == "" {
		return missingField(entry, "loaderVersion")
	}
	if len(m.Mods) == 0 {
		return missingField(entry, "mods")
	}
	for _, mod := range m.Mods {
		if mod.ModID == "" {
			return missingField(entry, "mods.modId")
		}
		if !forgeModID.MatchString(mod.ModID) {
			return domain.ManifestError(entry, fmt.Errorf("invalid mod id %q", mod.ModID))
		}
	}
	return nil
}

type mcmodEntry struct {
	ModID   string `json:"modid"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

type mcmodList struct {
	ModListVersion int          `json:"modListVersion"`
	ModList        []mcmodEntry `json:"modList"`
}

// LegacyForgeValidator checks Forge jars for releases between 1.5.2 and 1.13.2.
type LegacyForgeValidator struct{}

func (LegacyForgeValidator) Name() string               { return "legacy-forge" }
func (LegacyForgeValidator) FileExtensions() []string   { return []string{"jar", "zip"} }
func (LegacyForgeValidator) ProjectTypes() []string     { return []string{"mod"} }
func (LegacyForgeValidator) SupportedLoaders() []string { return []string{"forge"} }

func (LegacyForgeValidator) SupportedGameVersions() domain.GameVersionSupport {
	return domain.Range(legacyForgeFirstRelease, forgeTOMLRelease)
}

// Validate reads mcmod.info when present. Legacy Forge never required the
// file (coremods and annotation-only mods ship without it), so its absence
// only keeps the file from being primary.
func (LegacyForgeValidator) Validate(archive domain.Archive) (domain.ValidationResult, error) {
	data, found, err := readManifest(archive, legacyManifest)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	if !found {
		return domain.Warning("Forge mod file does not contain mcmod.info!"), nil
	}

	mods, err := decodeMcmodInfo(trimBOM(data))
	if err != nil {
		return domain.ValidationResult{}, domain.ManifestError(legacyManifest, err)
	}
	if len(mods) == 0 {
		return domain.ValidationResult{}, missingField(legacyManifest, "modid")
	}
	for _, mod := range mods {
		if mod.ModID == "" {
			return domain.ValidationResult{}, missingField(legacyManifest, "modid")
		}
	}

	if !hasCompiledClasses(archive) {
		return domain.Warning("Forge mod file is a source file!"), nil
	}
	return domain.Pass(), nil
}

// decodeMcmodInfo accepts both the bare array layout and the
// {"modListVersion": 2, "modList": [...]} layout.
func decodeMcmodInfo(data []byte) ([]mcmodEntry, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var mods []mcmodEntry
		if err := json.Unmarshal(data, &mods); err != nil {
			return nil, err
		}
		return mods, nil
	}

	var list mcmodList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list.ModList, nil
}
