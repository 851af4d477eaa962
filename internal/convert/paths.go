package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"apertiumsrt/internal/services"
)

// Plan holds the resolved file locations for one run.
type Plan struct {
	InputPath  string
	WorkingDir string
	BaseName   string
}

// NewPlan resolves input to an absolute path and checks it is an existing
// regular file. workDir overrides the input's directory when non-empty.
func NewPlan(input, workDir string) (Plan, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Plan{}, services.Wrap(services.ErrInvalidInput, "resolve", "", "input path is required", nil)
	}
	abs, err := filepath.Abs(input)
	if err != nil {
		return Plan{}, services.Wrap(services.ErrInvalidInput, "resolve", "abs", input, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Plan{}, services.Wrap(services.ErrInvalidInput, "resolve", "", fmt.Sprintf("path does not exist: %s", abs), nil)
		}
		return Plan{}, services.Wrap(services.ErrInvalidInput, "resolve", "stat", abs, err)
	}
	if info.IsDir() {
		return Plan{}, services.Wrap(services.ErrInvalidInput, "resolve", "", fmt.Sprintf("path is a directory: %s", abs), nil)
	}

	dir := filepath.Dir(abs)
	if workDir = strings.TrimSpace(workDir); workDir != "" {
		dir = workDir
	}
	return Plan{
		InputPath:  abs,
		WorkingDir: dir,
		BaseName:   BaseName(abs),
	}, nil
}

// BaseName returns the file name up to its first dot, so "film.en.srt"
// becomes "film".
func BaseName(path string) string {
	name := filepath.Base(path)
	if idx := strings.Index(name, "."); idx != -1 {
		return name[:idx]
	}
	return name
}

// ProtectOnlyPath is the default output when no pair is given.
func (p Plan) ProtectOnlyPath() string {
	return filepath.Join(p.WorkingDir, p.BaseName+"_lang1_srt.apy")
}

// CanonicalPath is the default output when re-rendering to canonical SubRip.
func (p Plan) CanonicalPath() string {
	return filepath.Join(p.WorkingDir, p.BaseName+"-canonical.srt")
}

// ProtectedPath is the engine input for a translation run.
func (p Plan) ProtectedPath(target string) string {
	return filepath.Join(p.WorkingDir, fmt.Sprintf("%s-%s_srt.apy", p.BaseName, target))
}

// TranslatedPath is the engine output for a translation run.
func (p Plan) TranslatedPath() string {
	return filepath.Join(p.WorkingDir, p.BaseName+"_lang2_srt.apy")
}

// TranslatedSubtitlePath is the default final output for a translation run.
func (p Plan) TranslatedSubtitlePath(target string) string {
	return filepath.Join(p.WorkingDir, fmt.Sprintf("%s-%s.srt", p.BaseName, target))
}

// LockPath guards the run's intermediate files.
func (p Plan) LockPath() string {
	return filepath.Join(p.WorkingDir, "."+p.BaseName+".apertiumsrt.lock")
}

// DeblankOutputPath derives the default output of a standalone deblank.
func DeblankOutputPath(input string) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)
	if strings.EqualFold(ext, ".srt") {
		return stem + "-deblanked.srt"
	}
	return stem + ".srt"
}
