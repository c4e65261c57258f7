package compress

import (
	"fmt"
	"strconv"
)

// ffmpegBin is the FFmpeg binary expected on the search path.
const ffmpegBin = "ffmpeg"

// gifFilter is the fixed filter graph for GIF output: 15 fps, scaled to 640
// width preserving aspect ratio with lanczos resampling, palette generation
// and application for acceptable quality at GIF's 256 colours.
const gifFilter = "fps=15,scale=640:-1:flags=lanczos,split[s0][s1];[s0]palettegen[p];[s1][p]paletteuse"

// videoArgs maps video options onto an ffmpeg invocation. Defaults are
// applied here: codec h264, crf 28 (30 for vp9), preset medium. The gif
// branch uses a fixed filter graph and ignores all tuning options.
func videoArgs(inputPath, outputPath string, opts *VideoOptions) ([]string, error) {
	if opts == nil {
		opts = DefaultVideoOptions()
	}

	codec := opts.Codec
	if codec == "" {
		codec = CodecH264
	}
	if !validCodec(codec) {
		return nil, validationErrorf("unsupported codec %q: allowed codecs are h264, h265, vp9, gif", codec)
	}

	if codec == CodecGIF {
		return []string{
			"-i", inputPath,
			"-vf", gifFilter,
			"-loop", "0",
			"-y", outputPath,
		}, nil
	}

	crf := DefaultCRF
	if codec == CodecVP9 {
		crf = DefaultCRFVP9
	}
	if opts.CRF != nil {
		crf = *opts.CRF
	}
	if crf < 0 || crf > 51 {
		return nil, validationErrorf("crf must be between 0 and 51, got %d", crf)
	}
	if opts.FPS < 0 {
		return nil, validationErrorf("fps must be positive, got %d", opts.FPS)
	}
	if opts.Width < 0 || opts.Height < 0 {
		return nil, validationErrorf("scale dimensions must be positive, got %dx%d", opts.Width, opts.Height)
	}

	args := []string{"-i", inputPath}

	if codec == CodecVP9 {
		args = append(args, "-c:v", "libvpx-vp9", "-crf", strconv.Itoa(crf), "-b:v", "0")
	} else {
		preset := opts.Preset
		if preset == "" {
			preset = PresetMedium
		}
		if !validPreset(preset) {
			return nil, validationErrorf("unsupported preset %q", preset)
		}
		lib := "libx264"
		if codec == CodecH265 {
			lib = "libx265"
		}
		args = append(args, "-c:v", lib, "-crf", strconv.Itoa(crf), "-preset", string(preset))
	}

	if opts.FPS > 0 {
		args = append(args, "-r", strconv.Itoa(opts.FPS))
	}
	if opts.Width > 0 || opts.Height > 0 {
		// A missing dimension becomes -1 so ffmpeg preserves aspect ratio.
		width, height := opts.Width, opts.Height
		if width == 0 {
			width = -1
		}
		if height == 0 {
			height = -1
		}
		args = append(args, "-vf", fmt.Sprintf("scale=%d:%d", width, height))
	}

	if codec == CodecVP9 {
		args = append(args, "-c:a", "libopus", "-b:a", "128k")
	} else {
		args = append(args, "-c:a", "aac", "-b:a", "128k", "-movflags", "+faststart")
	}

	return append(args, "-y", outputPath), nil
}

// audioArgs maps audio options onto an ffmpeg MP3 invocation. An explicit
// bitrate selects constant-bitrate mode and the quality setting is ignored.
func audioArgs(inputPath, outputPath string, opts *AudioOptions) ([]string, error) {
	if opts == nil {
		opts = DefaultAudioOptions()
	}

	args := []string{"-i", inputPath, "-c:a", "libmp3lame"}

	if opts.Bitrate != "" {
		if !validBitrate(opts.Bitrate) {
			return nil, validationErrorf("unsupported bitrate %q: allowed bitrates are 64k, 128k, 192k, 320k", opts.Bitrate)
		}
		args = append(args, "-b:a", string(opts.Bitrate))
	} else {
		quality := DefaultAudioQuality
		if opts.Quality != nil {
			quality = *opts.Quality
		}
		if quality < 0 || quality > 9 {
			return nil, validationErrorf("quality must be between 0 and 9, got %d", quality)
		}
		args = append(args, "-q:a", strconv.Itoa(quality))
	}

	if opts.Mono {
		args = append(args, "-ac", "1")
	}

	return append(args, "-y", outputPath), nil
}
