// Package ziptest builds zip containers in memory for tests.
package ziptest

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// Entry is one file to place in a test archive.
type Entry struct {
	Name    string
	Content string
	Method  uint16
}

// File is a deflate-compressed entry.
func File(name, content string) Entry {
	return Entry{Name: name, Content: content, Method: zip.Deflate}
}

// Build writes entries into a zip container and returns its bytes.
func Build(t testing.TB, entries ...Entry) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	w.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())
	for _, e := range entries {
		fw, err := w.CreateHeader(&zip.FileHeader{Name: e.Name, Method: e.Method})
		if err != nil {
			t.Fatalf("creating %s: %v", e.Name, err)
		}
		if _, err := fw.Write([]byte(e.Content)); err != nil {
			t.Fatalf("writing %s: %v", e.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}
	return buf.Bytes()
}

// FabricMod returns a minimal built Fabric mod jar.
func FabricMod(t testing.TB) []byte {
	t.Helper()
	return Build(t,
		File("fabric.mod.json", `{"schemaVersion": 1, "id": "examplemod", "version": "1.0.0"}`),
		File("com/example/ExampleMod.class", "\xca\xfe\xba\xbe"),
	)
}

// SetMethod rewrites the compression method of the first entry in both
// its local header and its central directory record.
func SetMethod(t testing.TB, data []byte, method uint16) []byte {
	t.Helper()

	out := bytes.Clone(data)
	if !bytes.HasPrefix(out, []byte("PK\x03\x04")) {
		t.Fatalf("archive does not start with a local file header")
	}
	binary.LittleEndian.PutUint16(out[8:], method)

	central := bytes.Index(out, []byte("PK\x01\x02"))
	if central < 0 {
		t.Fatalf("archive has no central directory")
	}
	binary.LittleEndian.PutUint16(out[central+10:], method)
	return out
}
