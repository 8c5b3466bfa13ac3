package loader_test

import (
	"errors"

	"github.com/modcheck/modcheck/internal/domain"
)

// fakeArchive is an in-memory domain.Archive keyed by entry name.
type fakeArchive struct {
	names []string
	files map[string][]byte
	err   error
}

// newArchive builds an archive from alternating name/content pairs.
func newArchive(pairs ...string) *fakeArchive {
	a := &fakeArchive{files: make(map[string][]byte)}
	for i := 0; i+1 < len(pairs); i += 2 {
		a.names = append(a.names, pairs[i])
		a.files[pairs[i]] = []byte(pairs[i+1])
	}
	return a
}

func (a *fakeArchive) Names() []string { return a.names }

func (a *fakeArchive) ReadFile(name string) ([]byte, error) {
	if a.err != nil {
		return nil, a.err
	}
	data, ok := a.files[name]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	return data, nil
}

var errCorruptEntry = errors.New("flate: corrupt input before offset 12")
