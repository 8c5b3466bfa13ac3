package domain

import (
	"slices"
	"time"
)

// GameVersion is one entry of the game version catalog.
type GameVersion struct {
	Version string    `json:"version" yaml:"version"`
	Date    time.Time `json:"date"    yaml:"date"`
}

// SupportKind selects how a GameVersionSupport policy is evaluated.
type SupportKind int

const (
	SupportAll SupportKind = iota
	SupportPastDate
	SupportRange
	SupportCustom
)

func (k SupportKind) String() string {
	switch k {
	case SupportAll:
		return "all"
	case SupportPastDate:
		return "past_date"
	case SupportRange:
		return "range"
	case SupportCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// GameVersionSupport is the set of game versions a validator applies to.
// Only the fields relevant to Kind are set.
type GameVersionSupport struct {
	Kind     SupportKind `json:"kind"`
	After    time.Time   `json:"after,omitzero"`
	Before   time.Time   `json:"before,omitzero"`
	Versions []string    `json:"versions,omitempty"`
}

// AllGameVersions places no restriction on game versions.
func AllGameVersions() GameVersionSupport {
	return GameVersionSupport{Kind: SupportAll}
}

// PastDate accepts versions released strictly after threshold.
func PastDate(threshold time.Time) GameVersionSupport {
	return GameVersionSupport{Kind: SupportPastDate, After: threshold}
}

// Range accepts versions released strictly between start and end.
func Range(start, end time.Time) GameVersionSupport {
	return GameVersionSupport{Kind: SupportRange, After: start, Before: end}
}

// Custom accepts exactly the listed versions.
func Custom(versions ...string) GameVersionSupport {
	return GameVersionSupport{Kind: SupportCustom, Versions: slices.Clone(versions)}
}

// GameVersionSupported reports whether at least one declared version
// satisfies the policy. Date-based policies look declared versions up in
// catalog; versions missing from the catalog never match.
func GameVersionSupported(declared []string, catalog []GameVersion, support GameVersionSupport) bool {
	switch support.Kind {
	case SupportAll:
		return true
	case SupportPastDate:
		return slices.ContainsFunc(declared, func(v string) bool {
			date, ok := releaseDate(catalog, v)
			return ok && date.After(support.After)
		})
	case SupportRange:
		return slices.ContainsFunc(declared, func(v string) bool {
			date, ok := releaseDate(catalog, v)
			return ok && date.After(support.After) && date.Before(support.Before)
		})
	case SupportCustom:
		return slices.ContainsFunc(support.Versions, func(v string) bool {
			return slices.Contains(declared, v)
		})
	default:
		return false
	}
}

// releaseDate finds the first catalog entry for version.
func releaseDate(catalog []GameVersion, version string) (time.Time, bool) {
	i := slices.IndexFunc(catalog, func(gv GameVersion) bool { return gv.Version == version })
	if i < 0 {
		return time.Time{}, false
	}
	return catalog[i].Date, true
}
