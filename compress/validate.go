package compress

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var (
	imageExtensions = []string{".jpg", ".jpeg", ".png"}
	audioExtensions = []string{".mp3"}
)

// validateInput checks that the input file exists and is readable and, when
// allowed is non-nil, that its extension is one of the allowed set. A
// non-empty extMessage overrides the generic rejection wording.
func validateInput(inputPath string, allowed []string, extMessage string) error {
	if allowed != nil {
		ext := strings.ToLower(filepath.Ext(inputPath))
		if !slices.Contains(allowed, ext) {
			if extMessage != "" {
				return &ValidationError{Reason: extMessage}
			}
			return validationErrorf("unsupported format %q: allowed formats are %s",
				ext, strings.Join(allowed, ", "))
		}
	}

	file, err := os.Open(inputPath)
	if err != nil {
		return validationErrorf("input not accessible: %v", err)
	}
	file.Close()
	return nil
}

// validateOutputDir checks that the directory holding outputPath exists and
// is writable. The temporary write-check file is removed before returning,
// so the visible file set is unchanged whether validation passes or fails.
func validateOutputDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	info, err := os.Stat(dir)
	if err != nil {
		return validationErrorf("output directory not accessible: %v", err)
	}
	if !info.IsDir() {
		return validationErrorf("output directory is not a directory: %s", dir)
	}

	check, err := os.CreateTemp(dir, ".shrink-write-check-*")
	if err != nil {
		return validationErrorf("output directory not writable: %v", err)
	}
	check.Close()
	os.Remove(check.Name())
	return nil
}
