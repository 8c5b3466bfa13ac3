package domain

// Archive is a read-only view over an opened zip-format container.
type Archive interface {
	// Names returns every entry name in central-directory order.
	Names() []string
	// ReadFile returns the decompressed content of the named entry, or
	// ErrEntryNotFound when the archive has no such entry.
	ReadFile(name string) ([]byte, error)
}

// ArchiveOpener opens an in-memory buffer as an Archive.
type ArchiveOpener interface {
	Open(data []byte) (Archive, error)
}

// Validator checks archives for one loader family.
type Validator interface {
	Name() string
	FileExtensions() []string
	ProjectTypes() []string
	SupportedLoaders() []string
	SupportedGameVersions() GameVersionSupport
	Validate(archive Archive) (ValidationResult, error)
}

// CatalogLoader supplies the game version catalog.
type CatalogLoader interface {
	Load(path string) ([]GameVersion, error)
}

// ConfigLoader reads the modcheck configuration for a working directory.
type ConfigLoader interface {
	Load(dir string) (ProjectConfig, error)
}
