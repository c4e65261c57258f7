package compress

import "path/filepath"

// resolvePaths normalises the input and output paths to absolute form.
func resolvePaths(inputPath, outputPath string) (string, string) {
	return absolute(inputPath), absolute(outputPath)
}

// absolute returns the cleaned absolute form of path. When the working
// directory cannot be determined the cleaned path is returned unchanged, so
// resolution itself never fails.
func absolute(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
