package application

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modcheck/modcheck/internal/adapters/outbound/archive"
	"github.com/modcheck/modcheck/internal/domain"
	"github.com/modcheck/modcheck/internal/domain/loader"
	"github.com/modcheck/modcheck/internal/testutil/ziptest"
)

func date(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

var testCatalog = []domain.GameVersion{
	{Version: "1.7.10", Date: date("2014-06-26T10:48:00Z")},
	{Version: "1.12.2", Date: date("2017-09-18T08:39:46Z")},
	{Version: "1.16.5", Date: date("2021-01-14T16:05:32Z")},
	{Version: "1.20.1", Date: date("2023-06-12T13:25:51Z")},
}

// stubValidator records how often it ran and returns a fixed verdict.
type stubValidator struct {
	name     string
	exts     []string
	types    []string
	loaders  []string
	versions domain.GameVersionSupport
	result   domain.ValidationResult
	err      error
	calls    int
}

func (v *stubValidator) Name() string                                     { return v.name }
func (v *stubValidator) FileExtensions() []string                         { return v.exts }
func (v *stubValidator) ProjectTypes() []string                           { return v.types }
func (v *stubValidator) SupportedLoaders() []string                       { return v.loaders }
func (v *stubValidator) SupportedGameVersions() domain.GameVersionSupport { return v.versions }

func (v *stubValidator) Validate(domain.Archive) (domain.ValidationResult, error) {
	v.calls++
	return v.result, v.err
}

func newStub(name string, exts ...string) *stubValidator {
	return &stubValidator{
		name:     name,
		exts:     exts,
		types:    []string{"mod"},
		loaders:  []string{"fabric"},
		versions: domain.AllGameVersions(),
		result:   domain.Pass(),
	}
}

func newRegistryService() *ValidateService {
	return NewValidateService(archive.New(), loader.Registry(), nil)
}

func fabricInput(data []byte, ext string) domain.FileInput {
	return domain.FileInput{
		Data:         data,
		Extension:    ext,
		ProjectType:  "mod",
		Loaders:      []string{"fabric"},
		GameVersions: []string{"1.20.1"},
	}
}

func TestValidateFile_FabricJarPasses(t *testing.T) {
	svc := newRegistryService()

	result, err := svc.ValidateFile(fabricInput(ziptest.FabricMod(t), "jar"), testCatalog)
	require.NoError(t, err)
	assert.Equal(t, domain.Pass(), result)
	assert.True(t, result.Primary())
}

func TestValidateFile_RejectsUnacceptedExtension(t *testing.T) {
	svc := newRegistryService()

	_, err := svc.ValidateFile(fabricInput(ziptest.FabricMod(t), "zip"), testCatalog)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "zip")
}

func TestValidateFile_NormalizesExtension(t *testing.T) {
	svc := newRegistryService()

	result, err := svc.ValidateFile(fabricInput(ziptest.FabricMod(t), ".JAR"), testCatalog)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPass, result.Status)
}

func TestValidateFile_CorruptArchiveConsultsNoValidator(t *testing.T) {
	stub := newStub("stub", "jar")
	svc := NewValidateService(archive.New(), []domain.Validator{stub}, nil)

	_, err := svc.ValidateFile(fabricInput([]byte("definitely not a zip"), "jar"), testCatalog)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArchive)
	assert.Zero(t, stub.calls)
}

func TestValidateFile_WrapsForeignOpenerErrors(t *testing.T) {
	opener := openerFunc(func([]byte) (domain.Archive, error) { return nil, errors.New("boom") })
	svc := NewValidateService(opener, nil, nil)

	_, err := svc.ValidateFile(domain.FileInput{}, nil)
	assert.ErrorIs(t, err, domain.ErrArchive)
	assert.Equal(t, "archive", domain.ErrorKind(err))
}

func TestValidateFile_NoValidatorAppliesPasses(t *testing.T) {
	svc := newRegistryService()

	in := fabricInput(ziptest.Build(t, ziptest.File("readme.txt", "hi")), "jar")
	in.Loaders = []string{"rift"}

	result, err := svc.ValidateFile(in, testCatalog)
	require.NoError(t, err)
	assert.Equal(t, domain.Pass(), result)
}

func TestValidateFile_FirstFullMatchWins(t *testing.T) {
	first := newStub("first", "jar")
	first.result = domain.Warning("first")
	second := newStub("second", "jar")
	svc := NewValidateService(archive.New(), []domain.Validator{first, second}, nil)

	result, err := svc.ValidateFile(fabricInput(ziptest.FabricMod(t), "jar"), testCatalog)
	require.NoError(t, err)
	assert.Equal(t, domain.Warning("first"), result)
	assert.Equal(t, 1, first.calls)
	assert.Zero(t, second.calls)
}

func TestValidateFile_LaterExtensionMatchBeatsEarlierMismatch(t *testing.T) {
	zipOnly := newStub("zip-only", "zip")
	jar := newStub("jar", "jar")
	jar.result = domain.Warning("jar")
	svc := NewValidateService(archive.New(), []domain.Validator{zipOnly, jar}, nil)

	result, err := svc.ValidateFile(fabricInput(ziptest.FabricMod(t), "jar"), testCatalog)
	require.NoError(t, err)
	assert.Equal(t, domain.Warning("jar"), result)
	assert.Zero(t, zipOnly.calls)
}

func TestValidateFile_PropagatesValidatorError(t *testing.T) {
	stub := newStub("stub", "jar")
	stub.err = domain.ManifestError("fabric.mod.json", errors.New("unexpected EOF"))
	svc := NewValidateService(archive.New(), []domain.Validator{stub}, nil)

	_, err := svc.ValidateFile(fabricInput(ziptest.FabricMod(t), "jar"), testCatalog)
	assert.ErrorIs(t, err, domain.ErrManifest)
}

func TestValidateFile_MatchesTypeAndLoaderCaseInsensitively(t *testing.T) {
	stub := newStub("stub", "jar")
	svc := NewValidateService(archive.New(), []domain.Validator{stub}, nil)

	in := fabricInput(ziptest.FabricMod(t), "jar")
	in.ProjectType = "Mod"
	in.Loaders = []string{"FABRIC"}

	_, err := svc.ValidateFile(in, testCatalog)
	require.NoError(t, err)
	assert.Equal(t, 1, stub.calls)
}

func TestValidateFile_VersionMissingFromCatalogNeverReachesExtensionCheck(t *testing.T) {
	stub := newStub("stub", "jar")
	stub.versions = domain.PastDate(date("2020-01-01T00:00:00Z"))
	svc := NewValidateService(archive.New(), []domain.Validator{stub}, nil)

	in := fabricInput(ziptest.FabricMod(t), "zip")
	in.GameVersions = []string{"1.16.5"}
	catalog := []domain.GameVersion{{Version: "1.20.1", Date: date("2023-06-12T13:25:51Z")}}

	result, err := svc.ValidateFile(in, catalog)
	require.NoError(t, err, "unresolved version must not raise the extension flag")
	assert.Equal(t, domain.Pass(), result)
	assert.Zero(t, stub.calls)
}

func TestValidateFile_Idempotent(t *testing.T) {
	svc := newRegistryService()
	in := fabricInput(ziptest.FabricMod(t), "jar")

	first, err1 := svc.ValidateFile(in, testCatalog)
	second, err2 := svc.ValidateFile(in, testCatalog)
	assert.Equal(t, first, second)
	assert.Equal(t, err1, err2)
}

func TestValidateFile_LegacyForgeWithoutMcmodInfoWarns(t *testing.T) {
	svc := newRegistryService()

	in := domain.FileInput{
		Data:         ziptest.Build(t, ziptest.File("net/example/Mod.class", "\xca\xfe\xba\xbe")),
		Extension:    "jar",
		ProjectType:  "mod",
		Loaders:      []string{"forge"},
		GameVersions: []string{"1.7.10"},
	}

	result, err := svc.ValidateFile(in, testCatalog)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWarning, result.Status)
	assert.False(t, result.Primary())
}

func TestCandidates_ReportsExtensionMatch(t *testing.T) {
	svc := newRegistryService()

	got := svc.Candidates(fabricInput(nil, "zip"), testCatalog)
	require.Len(t, got, 1)
	assert.Equal(t, domain.Candidate{Validator: "fabric", ExtensionMatch: false}, got[0])
}

func TestCandidates_EmptyWhenNothingApplies(t *testing.T) {
	svc := newRegistryService()

	in := fabricInput(nil, "jar")
	in.GameVersions = []string{"1.12.2"}
	assert.Empty(t, svc.Candidates(in, testCatalog))
}

func TestReport_Pass(t *testing.T) {
	svc := newRegistryService()

	report, err := svc.Report("example.jar", fabricInput(ziptest.FabricMod(t), ".jar"), testCatalog, true)
	require.NoError(t, err)
	assert.Equal(t, "example.jar", report.File)
	assert.Equal(t, "jar", report.Extension)
	assert.Equal(t, domain.StatusPass, report.Status)
	assert.True(t, report.Primary)
	assert.Empty(t, report.ErrorKind)
	assert.NotEmpty(t, report.Candidates)
}

func TestReport_Error(t *testing.T) {
	svc := newRegistryService()

	report, err := svc.Report("broken.jar", fabricInput([]byte("nope"), "jar"), testCatalog, false)
	require.Error(t, err)
	assert.Equal(t, domain.StatusError, report.Status)
	assert.Equal(t, "archive", report.ErrorKind)
	assert.False(t, report.Primary)
	assert.Nil(t, report.Candidates)
}

func TestReport_NilSlicesBecomeEmpty(t *testing.T) {
	svc := NewValidateService(archive.New(), nil, nil)

	report, err := svc.Report("", domain.FileInput{Data: ziptest.FabricMod(t), Extension: "jar"}, nil, false)
	require.NoError(t, err)
	assert.NotNil(t, report.Loaders)
	assert.NotNil(t, report.GameVersions)
}

func TestValidators_ReturnsCopy(t *testing.T) {
	svc := newRegistryService()

	got := svc.Validators()
	got[0] = nil
	assert.NotNil(t, svc.Validators()[0])
}

type openerFunc func([]byte) (domain.Archive, error)

func (f openerFunc) Open(data []byte) (domain.Archive, error) { return f(data) }
