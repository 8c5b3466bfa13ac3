package application

import (
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/modcheck/modcheck/internal/domain"
)

// ValidateService picks the validator that applies to an upload and runs it
// against the opened archive.
type ValidateService struct {
	opener     domain.ArchiveOpener
	validators []domain.Validator
	logger     *log.Logger
}

// NewValidateService creates a ValidateService. Validators are consulted in
// the given order. A nil logger discards output.
func NewValidateService(opener domain.ArchiveOpener, validators []domain.Validator, logger *log.Logger) *ValidateService {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ValidateService{
		opener:     opener,
		validators: slices.Clone(validators),
		logger:     logger,
	}
}

// Validators returns the registered validators in dispatch order.
func (s *ValidateService) Validators() []domain.Validator {
	return slices.Clone(s.validators)
}

// ValidateFile opens the upload and runs the first validator whose project
// type, loader, game version and extension all match. No match is a pass.
// A validator that matched everything but the extension turns that pass into
// an invalid-input error naming the extension.
func (s *ValidateService) ValidateFile(in domain.FileInput, catalog []domain.GameVersion) (domain.ValidationResult, error) {
	archive, err := s.opener.Open(in.Data)
	if err != nil {
		s.logger.Debug("archive rejected", "error", err)
		if !errors.Is(err, domain.ErrArchive) {
			err = domain.ArchiveError("", err)
		}
		return domain.ValidationResult{}, err
	}

	ext := domain.NormalizeExtension(in.Extension)
	visited := false
	for _, v := range s.validators {
		if !s.applies(v, in, catalog) {
			continue
		}
		if !containsFold(v.FileExtensions(), ext) {
			s.logger.Debug("extension not accepted", "validator", v.Name(), "extension", ext)
			visited = true
			continue
		}

		s.logger.Debug("validator selected", "validator", v.Name(), "extension", ext)
		result, err := v.Validate(archive)
		if err != nil {
			s.logger.Debug("validation failed", "validator", v.Name(), "error", err)
			return domain.ValidationResult{}, err
		}
		s.logger.Debug("validation finished", "validator", v.Name(), "status", result.Status)
		return result, nil
	}

	if visited {
		return domain.ValidationResult{}, domain.InvalidInputError("File extension %s is invalid for input file", ext)
	}
	s.logger.Debug("no validator applies", "project_type", in.ProjectType, "loaders", in.Loaders)
	return domain.Pass(), nil
}

// Candidates lists the validators whose project type, loader and game
// version preconditions hold for in, without opening the archive.
func (s *ValidateService) Candidates(in domain.FileInput, catalog []domain.GameVersion) []domain.Candidate {
	ext := domain.NormalizeExtension(in.Extension)
	var out []domain.Candidate
	for _, v := range s.validators {
		if !s.applies(v, in, catalog) {
			continue
		}
		out = append(out, domain.Candidate{
			Validator:      v.Name(),
			ExtensionMatch: containsFold(v.FileExtensions(), ext),
		})
	}
	return out
}

// Report runs ValidateFile and folds the outcome into a domain.Report.
// Validation errors become a report with StatusError; the error is still
// returned so callers can pick an exit code.
func (s *ValidateService) Report(file string, in domain.FileInput, catalog []domain.GameVersion, explain bool) (*domain.Report, error) {
	report := &domain.Report{
		File:         file,
		Extension:    domain.NormalizeExtension(in.Extension),
		ProjectType:  in.ProjectType,
		Loaders:      nonNil(in.Loaders),
		GameVersions: nonNil(in.GameVersions),
	}
	if explain {
		report.Candidates = s.Candidates(in, catalog)
	}

	result, err := s.ValidateFile(in, catalog)
	if err != nil {
		report.Status = domain.StatusError
		report.Reason = err.Error()
		report.ErrorKind = domain.ErrorKind(err)
		return report, err
	}
	report.Status = result.Status
	report.Reason = result.Reason
	report.Primary = result.Primary()
	return report, nil
}

func (s *ValidateService) applies(v domain.Validator, in domain.FileInput, catalog []domain.GameVersion) bool {
	if !containsFold(v.ProjectTypes(), in.ProjectType) {
		s.logger.Debug("project type not accepted", "validator", v.Name(), "project_type", in.ProjectType)
		return false
	}
	if !slices.ContainsFunc(in.Loaders, func(l string) bool { return containsFold(v.SupportedLoaders(), l) }) {
		s.logger.Debug("no supported loader", "validator", v.Name(), "loaders", in.Loaders)
		return false
	}
	if !domain.GameVersionSupported(in.GameVersions, catalog, v.SupportedGameVersions()) {
		s.logger.Debug("no supported game version", "validator", v.Name(), "game_versions", in.GameVersions)
		return false
	}
	return true
}

func containsFold(set []string, s string) bool {
	return slices.ContainsFunc(set, func(e string) bool { return strings.EqualFold(e, s) })
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
