package loader

import (
	"gopkg.in/yaml.v3"

	"github.com/modcheck/modcheck/internal/domain"
)

const (
	pluginManifest      = "plugin.yml"
	paperPluginManifest = "paper-plugin.yml"
)

type pluginYML struct {
	Name       string `yaml:"name"`
	Version    string `yaml:"version"`
	Main       string `yaml:"main"`
	APIVersion string `yaml:"api-version"`
}

// PluginValidator checks Bukkit-family server plugins.
type PluginValidator struct{}

func (PluginValidator) Name() string             { return "plugin" }
func (PluginValidator) FileExtensions() []string { return []string{"jar"} }
func (PluginValidator) ProjectTypes() []string   { return []string{"plugin", "mod"} }

func (PluginValidator) SupportedLoaders() []string {
	return []string{"bukkit", "spigot", "paper", "purpur"}
}

func (PluginValidator) SupportedGameVersions() domain.GameVersionSupport {
	return domain.AllGameVersions()
}

// Validate reads plugin.yml, falling back to paper-plugin.yml.
func (PluginValidator) Validate(archive domain.Archive) (domain.ValidationResult, error) {
	var (
		entry string
		data  []byte
	)
	for _, name := range []string{pluginManifest, paperPluginManifest} {
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
		return domain.ValidationResult{}, domain.InvalidInputError("No plugin.yml or paper-plugin.yml present for plugin file.")
	}

	var p pluginYML
	if err := yaml.Unmarshal(trimBOM(data), &p); err != nil {
		return domain.ValidationResult{}, domain.ManifestError(entry, err)
	}
	switch {
	case p.Name == "":
		return domain.ValidationResult{}, missingField(entry, "name")
	case p.Version == "":
		return domain.ValidationResult{}, missingField(entry, "version")
	case p.Main == "":
		return domain.ValidationResult{}, missingField(entry, "main")
	}
	return domain.Pass(), nil
}
