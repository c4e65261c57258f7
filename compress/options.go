package compress

// Codec identifies the target video codec.
type Codec string

const (
	CodecH264 Codec = "h264"
	CodecH265 Codec = "h265"
	CodecVP9  Codec = "vp9"
	CodecGIF  Codec = "gif"
)

// Preset selects the encoder speed versus compression efficiency tradeoff.
type Preset string

const (
	PresetUltrafast Preset = "ultrafast"
	PresetSuperfast Preset = "superfast"
	PresetVeryfast  Preset = "veryfast"
	PresetFaster    Preset = "faster"
	PresetFast      Preset = "fast"
	PresetMedium    Preset = "medium"
	PresetSlow      Preset = "slow"
	PresetSlower    Preset = "slower"
	PresetVeryslow  Preset = "veryslow"
)

// Bitrate is a constant-bitrate setting for MP3 encoding.
type Bitrate string

const (
	Bitrate64k  Bitrate = "64k"
	Bitrate128k Bitrate = "128k"
	Bitrate192k Bitrate = "192k"
	Bitrate320k Bitrate = "320k"
)

// Defaults applied when the caller does not override a setting.
const (
	DefaultImageQuality     = 75
	DefaultCompressionLevel = 75
	DefaultCRF              = 28
	DefaultCRFVP9           = 30
	DefaultAudioQuality     = 4
)

// VideoOptions holds tuning options for video compression. A nil options
// pointer and zero fields select the defaults: h264, crf 28 (30 for vp9),
// preset medium, source frame rate and resolution.
type VideoOptions struct {
	// Codec is the target codec (h264, h265, vp9 or gif).
	Codec Codec
	// CRF is the constant rate factor (0-51); lower means higher quality.
	// Nil selects the codec default.
	CRF *int
	// Preset is the encoder preset; ignored for vp9 and gif.
	Preset Preset
	// FPS caps the output frame rate when positive.
	FPS int
	// Width and Height scale the output. A single set dimension preserves
	// the aspect ratio.
	Width  int
	Height int
}

// DefaultVideoOptions returns the default video options.
func DefaultVideoOptions() *VideoOptions {
	return &VideoOptions{
		Codec:  CodecH264,
		Preset: PresetMedium,
	}
}

// AudioOptions holds tuning options for MP3 compression. An explicit Bitrate
// selects constant-bitrate mode and Quality is ignored; otherwise the encoder
// runs in variable-bitrate mode driven by Quality (0 best, 9 worst).
type AudioOptions struct {
	// Bitrate selects constant-bitrate encoding (64k, 128k, 192k or 320k).
	Bitrate Bitrate
	// Quality is the VBR quality (0-9). Nil selects the default of 4.
	Quality *int
	// Mono downmixes the output to a single channel.
	Mono bool
}

// DefaultAudioOptions returns the default audio options.
func DefaultAudioOptions() *AudioOptions {
	return &AudioOptions{}
}

func validCodec(c Codec) bool {
	switch c {
	case CodecH264, CodecH265, CodecVP9, CodecGIF:
		return true
	}
	return false
}

func validPreset(p Preset) bool {
	switch p {
	case PresetUltrafast, PresetSuperfast, PresetVeryfast, PresetFaster,
		PresetFast, PresetMedium, PresetSlow, PresetSlower, PresetVeryslow:
		return true
	}
	return false
}

func validBitrate(b Bitrate) bool {
	switch b {
	case Bitrate64k, Bitrate128k, Bitrate192k, Bitrate320k:
		return true
	}
	return false
}
