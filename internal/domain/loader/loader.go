// Package loader holds the manifest validators for each supported mod
// loader family and the fixed registry that orders them.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/modcheck/modcheck/internal/domain"
)

// ErrMissingField is wrapped by manifest errors for absent required fields.
var ErrMissingField = errors.New("missing required field")

// Release dates that bound the loader families.
var (
	// 18w49a, the first snapshot Fabric supported.
	fabricFirstRelease = time.Unix(1543969469, 0).UTC()
	// 1.13.2, the first release whose Forge reads META-INF/mods.toml.
	forgeTOMLRelease = time.Unix(1540122067, 0).UTC()
	// 1.5.2, the oldest release legacy Forge files are accepted for.
	legacyForgeFirstRelease = time.Unix(1366818300, 0).UTC()
)

// validators is the dispatch order. Append new loader families at the end.
var validators = [...]domain.Validator{
	PackValidator{},
	FabricValidator{},
	ForgeValidator{},
	LegacyForgeValidator{},
	ResourcePackValidator{},
	PluginValidator{},
}

// Registry returns the validators in dispatch order.
func Registry() []domain.Validator {
	return slices.Clone(validators[:])
}

// Lookup returns the registered validator with the given name.
func Lookup(name string) (domain.Validator, bool) {
	for _, v := range validators {
		if v.Name() == name {
			return v, true
		}
	}
	return nil, false
}

// readManifest reads the named entry. found is false when the entry is absent.
func readManifest(archive domain.Archive, name string) (data []byte, found bool, err error) {
	data, err = archive.ReadFile(name)
	if errors.Is(err, domain.ErrEntryNotFound) {
		return nil, false, nil
	}
	if err != nil {
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			err = domain.ArchiveError(name, err)
		}
		return nil, false, err
	}
	return data, true, nil
}

// hasCompiledClasses reports whether the archive ships any compiled class file.
func hasCompiledClasses(archive domain.Archive) bool {
	return slices.ContainsFunc(archive.Names(), func(name string) bool {
		return strings.HasSuffix(name, ".class")
	})
}

func missingField(entry, field string) error {
	return domain.ManifestError(entry, fmt.Errorf("%w %q", ErrMissingField, field))
}

// trimBOM strips a UTF-8 byte order mark, which some build tools emit.
func trimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte("\ufeff"))
}
