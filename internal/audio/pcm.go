package audio

import "encoding/binary"

// PCM16LE serializes samples as raw little-endian 16-bit PCM.
func PCM16LE(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

// PCM16BE serializes samples as raw big-endian 16-bit PCM (audio/l16).
func PCM16BE(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.BigEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}
