package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth16    = 16
	wavFormatPCM  = 1
	wavHeaderSize = 12
)

// ErrNoFrames is returned when a WAV header declares an empty data chunk.
var ErrNoFrames = errors.New("wav has no audio frames")

// Info is what a WAV header reports about its audio.
type Info struct {
	Channels   int
	SampleRate int
	BitDepth   int
	Format     int
	Frames     int
}

// IsWAV reports whether head starts with a RIFF/WAVE signature.
func IsWAV(head []byte) bool {
	return len(head) >= wavHeaderSize &&
		string(head[0:4]) == "RIFF" &&
		string(head[8:12]) == "WAVE"
}

// Inspect reads the WAV header and locates the data chunk without decoding samples.
func Inspect(r io.ReadSeeker) (Info, error) {
	d := wav.NewDecoder(r)
	d.ReadInfo()
	if err := d.Err(); err != nil {
		return Info{}, fmt.Errorf("read wav header: %w", err)
	}
	if d.NumChans == 0 || d.BitDepth == 0 || d.SampleRate == 0 {
		return Info{}, fmt.Errorf("invalid wav format: channels=%d bits=%d rate=%d",
			d.NumChans, d.BitDepth, d.SampleRate)
	}
	if err := d.FwdToPCM(); err != nil {
		return Info{}, fmt.Errorf("locate wav data chunk: %w", err)
	}

	frameSize := int(d.NumChans) * int(d.BitDepth) / 8
	if frameSize == 0 {
		return Info{}, fmt.Errorf("invalid wav frame size")
	}

	return Info{
		Channels:   int(d.NumChans),
		SampleRate: int(d.SampleRate),
		BitDepth:   int(d.BitDepth),
		Format:     int(d.WavAudioFormat),
		Frames:     d.PCMSize / frameSize,
	}, nil
}

// DecodeWAV decodes integer PCM WAV of any common bit depth into a 16-bit clip.
func DecodeWAV(r io.ReadSeeker) (*Clip, error) {
	d := wav.NewDecoder(r)
	d.ReadInfo()
	if err := d.Err(); err != nil {
		return nil, fmt.Errorf("read wav header: %w", err)
	}
	if d.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("unsupported wav encoding %d (only integer PCM)", d.WavAudioFormat)
	}
	if d.NumChans == 0 || d.SampleRate == 0 {
		return nil, fmt.Errorf("invalid wav format: channels=%d rate=%d", d.NumChans, d.SampleRate)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav pcm: %w", err)
	}
	if len(buf.Data) == 0 {
		return nil, ErrNoFrames
	}

	return &Clip{
		Data:       to16(buf.Data, int(d.BitDepth)),
		Channels:   int(d.NumChans),
		SampleRate: int(d.SampleRate),
	}, nil
}

// EncodeWAV writes c as 16-bit PCM WAV.
func EncodeWAV(w io.WriteSeeker, c *Clip) error {
	if c.Channels <= 0 || c.SampleRate <= 0 {
		return fmt.Errorf("invalid clip format: channels=%d rate=%d", c.Channels, c.SampleRate)
	}

	enc := wav.NewEncoder(w, c.SampleRate, bitDepth16, c.Channels, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: c.Channels,
			SampleRate:  c.SampleRate,
		},
		Data:           c.Data,
		SourceBitDepth: bitDepth16,
	}
	if err := enc.Write(buf); err != nil {
		enc.Close()
		return fmt.Errorf("write wav samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}

// ReadWAVFile decodes the WAV file at path.
func ReadWAVFile(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeWAV(f)
}

// WriteWAVFile encodes c into a new file at path, replacing any existing file.
func WriteWAVFile(path string, c *Clip) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := EncodeWAV(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// to16 rescales samples decoded at bitDepth to the signed 16-bit range.
func to16(data []int, bitDepth int) []int {
	out := make([]int, len(data))
	switch bitDepth {
	case 8:
		// 8-bit WAV is unsigned
		for i, v := range data {
			out[i] = (v - 128) << 8
		}
	case 16:
		copy(out, data)
	default:
		shift := uint(bitDepth - 16)
		for i, v := range data {
			out[i] = v >> shift
		}
	}
	return out
}
