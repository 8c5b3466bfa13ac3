// Package archive reads uploaded zip-format containers entirely in memory.
package archive

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"

	"github.com/modcheck/modcheck/internal/domain"
)

// MaxEntrySize caps the decompressed size of a single entry read.
const MaxEntrySize = 16 << 20

// Opener implements domain.ArchiveOpener over zip containers.
type Opener struct{}

// New creates an Opener.
func New() *Opener { return &Opener{} }

// Open parses the central directory of data. The returned archive reads
// from data directly and must not outlive it.
func (o *Opener) Open(data []byte) (domain.Archive, error) {
	return Open(data)
}

// ZipArchive is a random-access view over an in-memory zip container.
type ZipArchive struct {
	reader *zip.Reader
	names  []string
	index  map[string]*zip.File
}

// Open parses data as a zip container.
func Open(data []byte) (*ZipArchive, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, domain.ArchiveError("", err)
	}
	reader.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())

	za := &ZipArchive{
		reader: reader,
		names:  make([]string, 0, len(reader.File)),
		index:  make(map[string]*zip.File, len(reader.File)),
	}
	for _, f := range reader.File {
		za.names = append(za.names, f.Name)
		if _, dup := za.index[f.Name]; !dup {
			za.index[f.Name] = f
		}
	}
	return za, nil
}

// Names returns every entry name in central-directory order.
func (za *ZipArchive) Names() []string {
	return za.names
}

// ReadFile decompresses the named entry.
func (za *ZipArchive) ReadFile(name string) ([]byte, error) {
	f, ok := za.index[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, domain.ErrEntryNotFound)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, domain.ArchiveError(name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxEntrySize+1))
	if err != nil {
		return nil, domain.ArchiveError(name, err)
	}
	if len(data) > MaxEntrySize {
		return nil, domain.ArchiveError(name, fmt.Errorf("entry exceeds %d bytes", MaxEntrySize))
	}
	return data, nil
}
