// Package metadata reports on embedded media metadata around compression,
// so callers can see how much the -strip pass removed.
package metadata

import (
	"fmt"

	"github.com/barasher/go-exiftool"
)

// Reporter defines the interface for inspecting embedded metadata
type Reporter interface {
	// TagCount returns the number of metadata tags embedded in the file.
	TagCount(path string) (int, error)
	// Close releases the underlying exiftool process.
	Close() error
}

// exifReporter implements the Reporter interface
type exifReporter struct {
	et *exiftool.Exiftool
}

// NewReporter creates a new Reporter instance. It fails when the exiftool
// binary is not available; callers treat that as a degraded mode, not an
// error.
func NewReporter() (Reporter, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("failed to initialise exiftool: %w", err)
	}
	return &exifReporter{et: et}, nil
}

// TagCount returns the number of metadata tags embedded in the file
func (r *exifReporter) TagCount(path string) (int, error) {
	fileInfos := r.et.ExtractMetadata(path)
	if len(fileInfos) == 0 {
		return 0, fmt.Errorf("no metadata found for %s", path)
	}
	fileInfo := fileInfos[0]
	if fileInfo.Err != nil {
		return 0, fileInfo.Err
	}
	return len(fileInfo.Fields), nil
}

// Close releases the underlying exiftool process
func (r *exifReporter) Close() error {
	return r.et.Close()
}

// Stripped describes the metadata difference between an input file and its
// compressed output.
type Stripped struct {
	InputTags  int
	OutputTags int
}

// Savings reports the tag counts of the input and output files, before and
// after compression.
func Savings(r Reporter, inputPath, outputPath string) (*Stripped, error) {
	inputTags, err := r.TagCount(inputPath)
	if err != nil {
		return nil, err
	}
	outputTags, err := r.TagCount(outputPath)
	if err != nil {
		return nil, err
	}
	return &Stripped{InputTags: inputTags, OutputTags: outputTags}, nil
}
