// Package compress shrinks PDF, image, video and audio files by driving the
// Ghostscript, ImageMagick and FFmpeg command line tools. It validates the
// request, synthesises an argument list for the right tool, runs it as a
// child process and reports the resulting file size. The binaries themselves
// are expected on the search path; a missing binary surfaces as a ToolError
// at execution time.
package compress

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Result describes a completed compression.
type Result struct {
	// OutputPath is the absolute path of the produced file.
	OutputPath string
	// CompressedSizeKB is the size of the produced file in kilobytes
	// (bytes divided by 1024).
	CompressedSizeKB float64
}

// Compressor defines the compression operations.
type Compressor interface {
	// CompressPDF compresses a PDF with Ghostscript at a fixed /screen
	// quality tier.
	CompressPDF(ctx context.Context, inputPath, outputPath string) (*Result, error)
	// CompressImageLossy re-encodes a JPEG or PNG with ImageMagick at the
	// given quality (0-100), stripping metadata.
	CompressImageLossy(ctx context.Context, inputPath, outputPath string, quality int) (*Result, error)
	// CompressImageLossless recompresses a PNG with ImageMagick at the given
	// compression level (0-100), stripping metadata.
	CompressImageLossless(ctx context.Context, inputPath, outputPath string, compressionLevel int) (*Result, error)
	// CompressVideo transcodes a video with FFmpeg. A nil options pointer
	// selects the defaults.
	CompressVideo(ctx context.Context, inputPath, outputPath string, opts *VideoOptions) (*Result, error)
	// CompressMP3 re-encodes an MP3 with FFmpeg. A nil options pointer
	// selects variable-bitrate mode at the default quality.
	CompressMP3(ctx context.Context, inputPath, outputPath string, opts *AudioOptions) (*Result, error)
}

// compressor implements the Compressor interface.
type compressor struct {
	runner Runner
	logger *slog.Logger
}

// Option configures a Compressor.
type Option func(*compressor)

// WithRunner replaces the external process runner.
func WithRunner(r Runner) Option {
	return func(c *compressor) { c.runner = r }
}

// WithLogger enables progress logging. The default is silent.
func WithLogger(l *slog.Logger) Option {
	return func(c *compressor) { c.logger = l }
}

// NewCompressor creates a new Compressor instance.
func NewCompressor(opts ...Option) Compressor {
	c := &compressor{runner: execRunner{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// format describes one specialisation of the compression pipeline.
type format struct {
	kind        string
	tool        string
	allowedExts []string // nil allows any extension
	extMessage  string   // overrides the generic rejection wording
	buildArgs   func(inputPath, outputPath string) ([]string, error)
}

// run executes the shared pipeline: resolve paths, validate, synthesise the
// argument list, execute the tool, measure the output. Every stage fails
// fast; no partial result is ever returned.
func (c *compressor) run(ctx context.Context, inputPath, outputPath string, f format) (*Result, error) {
	inputPath, outputPath = resolvePaths(inputPath, outputPath)

	if err := validateInput(inputPath, f.allowedExts, f.extMessage); err != nil {
		return nil, err
	}
	if err := validateOutputDir(outputPath); err != nil {
		return nil, err
	}

	args, err := f.buildArgs(inputPath, outputPath)
	if err != nil {
		return nil, err
	}

	c.log("Running external tool", "kind", f.kind, "tool", f.tool, "input", inputPath)
	output, err := c.runner.Run(ctx, f.tool, args)
	if err != nil {
		return nil, &ToolError{Tool: f.tool, Output: strings.TrimSpace(string(output)), Err: err}
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return nil, &MeasurementError{Path: outputPath, Err: err}
	}

	result := &Result{
		OutputPath:       outputPath,
		CompressedSizeKB: float64(info.Size()) / 1024,
	}
	c.log("Compression finished", "kind", f.kind, "output", result.OutputPath, "size_kb", result.CompressedSizeKB)
	return result, nil
}

func (c *compressor) log(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Info(msg, args...)
	}
}

// CompressPDF compresses a PDF with Ghostscript.
func (c *compressor) CompressPDF(ctx context.Context, inputPath, outputPath string) (*Result, error) {
	return c.run(ctx, inputPath, outputPath, format{
		kind: "pdf",
		tool: ghostscriptBin,
		buildArgs: func(in, out string) ([]string, error) {
			return ghostscriptArgs(in, out), nil
		},
	})
}

// CompressImageLossy re-encodes a JPEG or PNG with ImageMagick.
func (c *compressor) CompressImageLossy(ctx context.Context, inputPath, outputPath string, quality int) (*Result, error) {
	return c.run(ctx, inputPath, outputPath, format{
		kind:        "image",
		tool:        magickBin,
		allowedExts: imageExtensions,
		buildArgs: func(in, out string) ([]string, error) {
			return lossyImageArgs(in, out, quality)
		},
	})
}

// CompressImageLossless recompresses a PNG with ImageMagick.
func (c *compressor) CompressImageLossless(ctx context.Context, inputPath, outputPath string, compressionLevel int) (*Result, error) {
	return c.run(ctx, inputPath, outputPath, format{
		kind:        "image",
		tool:        magickBin,
		allowedExts: imageExtensions,
		buildArgs: func(in, out string) ([]string, error) {
			return losslessImageArgs(in, out, compressionLevel)
		},
	})
}

// CompressVideo transcodes a video with FFmpeg.
func (c *compressor) CompressVideo(ctx context.Context, inputPath, outputPath string, opts *VideoOptions) (*Result, error) {
	return c.run(ctx, inputPath, outputPath, format{
		kind: "video",
		tool: ffmpegBin,
		buildArgs: func(in, out string) ([]string, error) {
			return videoArgs(in, out, opts)
		},
	})
}

// CompressMP3 re-encodes an MP3 with FFmpeg.
func (c *compressor) CompressMP3(ctx context.Context, inputPath, outputPath string, opts *AudioOptions) (*Result, error) {
	return c.run(ctx, inputPath, outputPath, format{
		kind:        "audio",
		tool:        ffmpegBin,
		allowedExts: audioExtensions,
		extMessage:  "input must be MP3",
		buildArgs: func(in, out string) ([]string, error) {
			return audioArgs(in, out, opts)
		},
	})
}

var defaultCompressor = NewCompressor()

// CompressPDF compresses a PDF using the default Compressor.
func CompressPDF(ctx context.Context, inputPath, outputPath string) (*Result, error) {
	return defaultCompressor.CompressPDF(ctx, inputPath, outputPath)
}

// CompressImageLossy compresses an image using the default Compressor.
func CompressImageLossy(ctx context.Context, inputPath, outputPath string, quality int) (*Result, error) {
	return defaultCompressor.CompressImageLossy(ctx, inputPath, outputPath, quality)
}

// CompressImageLossless compresses an image using the default Compressor.
func CompressImageLossless(ctx context.Context, inputPath, outputPath string, compressionLevel int) (*Result, error) {
	return defaultCompressor.CompressImageLossless(ctx, inputPath, outputPath, compressionLevel)
}

// CompressVideo transcodes a video using the default Compressor.
func CompressVideo(ctx context.Context, inputPath, outputPath string, opts *VideoOptions) (*Result, error) {
	return defaultCompressor.CompressVideo(ctx, inputPath, outputPath, opts)
}

// CompressMP3 re-encodes an MP3 using the default Compressor.
func CompressMP3(ctx context.Context, inputPath, outputPath string, opts *AudioOptions) (*Result, error) {
	return defaultCompressor.CompressMP3(ctx, inputPath, outputPath, opts)
}
