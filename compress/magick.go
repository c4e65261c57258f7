package compress

import (
	"fmt"
	"strconv"
)

// magickBin is the ImageMagick binary expected on the search path.
const magickBin = "magick"

// lossyImageArgs builds a metadata-stripping re-encode at the given quality.
func lossyImageArgs(inputPath, outputPath string, quality int) ([]string, error) {
	if quality < 0 || quality > 100 {
		return nil, validationErrorf("quality must be between 0 and 100, got %d", quality)
	}
	return []string{
		inputPath,
		"-strip",
		"-quality", strconv.Itoa(quality),
		outputPath,
	}, nil
}

// losslessImageArgs builds a metadata-stripping PNG recompression at the
// given compression level.
func losslessImageArgs(inputPath, outputPath string, compressionLevel int) ([]string, error) {
	if compressionLevel < 0 || compressionLevel > 100 {
		return nil, validationErrorf("compression level must be between 0 and 100, got %d", compressionLevel)
	}
	return []string{
		inputPath,
		"-strip",
		"-define", fmt.Sprintf("png:compression-level=%d", compressionLevel),
		outputPath,
	}, nil
}
