package audio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// IsMP3 reports whether head looks like an MPEG audio stream (ID3 tag or frame sync).
func IsMP3(head []byte) bool {
	if len(head) >= 3 && string(head[0:3]) == "ID3" {
		return true
	}
	return len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0
}

// DecodeMP3 decodes an MP3 stream. go-mp3 always yields 16-bit stereo.
func DecodeMP3(r io.Reader) (*Clip, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("open mp3: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}
	raw = raw[:len(raw)-len(raw)%4]
	if len(raw) == 0 {
		return nil, fmt.Errorf("decode mp3: no audio frames")
	}

	data := make([]int, len(raw)/2)
	for i := range data {
		data[i] = int(int16(binary.LittleEndian.Uint16(raw[i*2 : i*2+2])))
	}

	return &Clip{Data: data, Channels: 2, SampleRate: dec.SampleRate()}, nil
}
