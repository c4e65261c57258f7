package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shrinkgo/shrink/apps/cli/completion"
	"github.com/shrinkgo/shrink/compress"
	"github.com/shrinkgo/shrink/internal/backup"
	"github.com/shrinkgo/shrink/internal/history"
	"github.com/shrinkgo/shrink/internal/logger"
	"github.com/shrinkgo/shrink/internal/metadata"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "shrink",
	Short:   "Compress PDF, image, video and audio files with external tools",
	Long:    `Shrink drives Ghostscript, ImageMagick and FFmpeg to reduce the size of PDF, image, video and audio files.`,
	Version: version,
}

var pdfCmd = &cobra.Command{
	Use:   "pdf INPUT OUTPUT",
	Short: "Compress a PDF with Ghostscript",
	Args:  cobra.ExactArgs(2),
	Run:   runPDF,
}

var imageCmd = &cobra.Command{
	Use:   "image INPUT OUTPUT",
	Short: "Compress a JPEG or PNG with ImageMagick",
	Long:  `Re-encodes a JPEG or PNG with ImageMagick, stripping embedded metadata. Use --lossless for PNG recompression without quality loss.`,
	Args:  cobra.ExactArgs(2),
	Run:   runImage,
}

var videoCmd = &cobra.Command{
	Use:   "video INPUT OUTPUT",
	Short: "Transcode a video with FFmpeg",
	Args:  cobra.ExactArgs(2),
	Run:   runVideo,
}

var audioCmd = &cobra.Command{
	Use:   "audio INPUT OUTPUT",
	Short: "Re-encode an MP3 with FFmpeg",
	Args:  cobra.ExactArgs(2),
	Run:   runAudio,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent compression runs",
	Args:  cobra.NoArgs,
	Run:   runHistory,
}

var uploadCmd = &cobra.Command{
	Use:   "upload FILE... BUCKET",
	Short: "Upload compressed files to S3",
	Long:  `Uploads files to an S3 bucket, skipping files that already exist remotely with a matching MD5 hash.`,
	Args:  cobra.MinimumNArgs(2),
	Run:   runUpload,
}

var (
	noHistory     bool
	lossless      bool
	imageQuality  int
	videoCodec    string
	videoCRF      int
	videoPreset   string
	videoFPS      int
	videoWidth    int
	videoHeight   int
	audioBitrate  string
	audioQuality  int
	audioMono     bool
	historyLimit  int
	maxConcurrent int
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "Do not record this run in the history database")

	imageCmd.Flags().BoolVarP(&lossless, "lossless", "l", false, "Lossless PNG recompression instead of lossy re-encoding")
	imageCmd.Flags().IntVarP(&imageQuality, "quality", "q", compress.DefaultImageQuality, "Quality (lossy) or compression level (lossless), 0-100")

	videoCmd.Flags().StringVarP(&videoCodec, "codec", "c", "h264", "Target codec (h264, h265, vp9, gif)")
	videoCmd.Flags().IntVar(&videoCRF, "crf", -1, "Constant rate factor 0-51 (default 28, 30 for vp9)")
	videoCmd.Flags().StringVarP(&videoPreset, "preset", "p", "medium", "Encoder preset (ultrafast..veryslow)")
	videoCmd.Flags().IntVar(&videoFPS, "fps", 0, "Cap the output frame rate")
	videoCmd.Flags().IntVar(&videoWidth, "width", 0, "Scale to this width (height follows aspect ratio if unset)")
	videoCmd.Flags().IntVar(&videoHeight, "height", 0, "Scale to this height (width follows aspect ratio if unset)")

	audioCmd.Flags().StringVarP(&audioBitrate, "bitrate", "b", "", "Constant bitrate (64k, 128k, 192k, 320k); overrides --quality")
	audioCmd.Flags().IntVarP(&audioQuality, "quality", "q", -1, "VBR quality 0-9, 0 is best (default 4)")
	audioCmd.Flags().BoolVarP(&audioMono, "mono", "m", false, "Downmix to mono")

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to list")

	uploadCmd.Flags().IntVarP(&maxConcurrent, "max-concurrent", "c", 5, "Maximum concurrent uploads")

	rootCmd.AddCommand(pdfCmd, imageCmd, videoCmd, audioCmd, historyCmd, uploadCmd)

	rootCmd.AddCommand(completion.NewInstallCmd(rootCmd))
	rootCmd.AddCommand(completion.NewUninstallCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runPDF(cmd *cobra.Command, args []string) {
	c := newCompressor()
	finish("pdf", "gs", args[0], run(func(ctx context.Context) (*compress.Result, error) {
		return c.CompressPDF(ctx, args[0], args[1])
	}))
}

func runImage(cmd *cobra.Command, args []string) {
	c := newCompressor()
	result := run(func(ctx context.Context) (*compress.Result, error) {
		if lossless {
			return c.CompressImageLossless(ctx, args[0], args[1], imageQuality)
		}
		return c.CompressImageLossy(ctx, args[0], args[1], imageQuality)
	})
	reportStrippedMetadata(args[0], result.OutputPath)
	finish("image", "magick", args[0], result)
}

func runVideo(cmd *cobra.Command, args []string) {
	opts := &compress.VideoOptions{
		Codec:  compress.Codec(videoCodec),
		Preset: compress.Preset(videoPreset),
		FPS:    videoFPS,
		Width:  videoWidth,
		Height: videoHeight,
	}
	if videoCRF >= 0 {
		opts.CRF = &videoCRF
	}

	c := newCompressor()
	finish("video", "ffmpeg", args[0], run(func(ctx context.Context) (*compress.Result, error) {
		return c.CompressVideo(ctx, args[0], args[1], opts)
	}))
}

func runAudio(cmd *cobra.Command, args []string) {
	opts := &compress.AudioOptions{
		Bitrate: compress.Bitrate(audioBitrate),
		Mono:    audioMono,
	}
	if audioQuality >= 0 {
		opts.Quality = &audioQuality
	}

	c := newCompressor()
	finish("audio", "ffmpeg", args[0], run(func(ctx context.Context) (*compress.Result, error) {
		return c.CompressMP3(ctx, args[0], args[1], opts)
	}))
}

func runHistory(cmd *cobra.Command, args []string) {
	store, err := openHistory()
	if err != nil {
		logger.Error("Failed to open history database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	records, err := store.Recent(historyLimit)
	if err != nil {
		logger.Error("Failed to read history", "error", err)
		os.Exit(1)
	}

	if len(records) == 0 {
		fmt.Println("No compression runs recorded yet")
		return
	}
	for _, r := range records {
		fmt.Printf("%s  %-5s %-6s %8.1f KB -> %8.1f KB  (%.1f%% saved)  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Kind, r.Tool,
			r.OriginalKB, r.CompressedKB, r.SavedPct, r.OutputPath)
	}
}

func runUpload(cmd *cobra.Command, args []string) {
	files := args[:len(args)-1]
	bucket := args[len(args)-1]

	ctx := context.Background()
	uploader, err := backup.NewUploader(ctx)
	if err != nil {
		logger.Error("Failed to initialise S3 uploader", "error", err)
		os.Exit(1)
	}

	if err := uploader.UploadFiles(ctx, files, bucket, maxConcurrent); err != nil {
		logger.Error("Upload failed", "error", err)
		os.Exit(1)
	}
}

func newCompressor() compress.Compressor {
	return compress.NewCompressor(compress.WithLogger(logger.Slog()))
}

// run executes one compression call, exiting on failure.
func run(op func(ctx context.Context) (*compress.Result, error)) *compress.Result {
	result, err := op(context.Background())
	if err != nil {
		logger.Error("Compression failed", "error", err)
		os.Exit(1)
	}
	return result
}

// finish logs the savings and records the run in the history database.
func finish(kind, tool, inputPath string, result *compress.Result) {
	originalKB := 0.0
	if info, err := os.Stat(inputPath); err == nil {
		originalKB = float64(info.Size()) / 1024
	}

	logger.Info("Compression finished",
		"kind", kind,
		"output", result.OutputPath,
		"original_kb", originalKB,
		"compressed_kb", result.CompressedSizeKB)

	if noHistory {
		return
	}
	store, err := openHistory()
	if err != nil {
		logger.Warn("Could not open history database", "error", err)
		return
	}
	defer store.Close()

	record := &history.Record{
		Kind:         kind,
		Tool:         tool,
		InputPath:    inputPath,
		OutputPath:   result.OutputPath,
		OriginalKB:   originalKB,
		CompressedKB: result.CompressedSizeKB,
	}
	if err := store.Add(record); err != nil {
		logger.Warn("Could not record history entry", "error", err)
		return
	}
	logger.Debug("Recorded history entry", "saved_pct", record.SavedPct)
}

// reportStrippedMetadata logs how many metadata tags the compression removed.
// Missing exiftool degrades to a debug message, never a failure.
func reportStrippedMetadata(inputPath, outputPath string) {
	reporter, err := metadata.NewReporter()
	if err != nil {
		logger.Debug("Metadata report unavailable", "error", err)
		return
	}
	defer reporter.Close()

	stripped, err := metadata.Savings(reporter, inputPath, outputPath)
	if err != nil {
		logger.Debug("Metadata report failed", "error", err)
		return
	}
	logger.Info("Metadata stripped", "input_tags", stripped.InputTags, "output_tags", stripped.OutputTags)
}

func openHistory() (*history.Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".shrink")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return history.Open(filepath.Join(dir, "history.db"))
}
