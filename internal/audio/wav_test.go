package audio

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestWAVFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	in := &Clip{Data: []int{100, -200, 300, -400, 500, -600}, Channels: 2, SampleRate: 22050}

	if err := WriteWAVFile(path, in); err != nil {
		t.Fatalf("WriteWAVFile failed: %v", err)
	}

	out, err := ReadWAVFile(path)
	if err != nil {
		t.Fatalf("ReadWAVFile failed: %v", err)
	}
	if out.Channels != 2 || out.SampleRate != 22050 {
		t.Errorf("unexpected format: channels=%d rate=%d", out.Channels, out.SampleRate)
	}
	if len(out.Data) != len(in.Data) {
		t.Fatalf("expected %d samples, got %d", len(in.Data), len(out.Data))
	}
	for i := range in.Data {
		if out.Data[i] != in.Data[i] {
			t.Errorf("sample %d: expected %d, got %d", i, in.Data[i], out.Data[i])
		}
	}
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := WriteWAVFile(path, &Clip{Data: make([]int, 1600), Channels: 1, SampleRate: 16000}); err != nil {
		t.Fatalf("WriteWAVFile failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	info, err := Inspect(f)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if info.Frames != 1600 || info.Channels != 1 || info.SampleRate != 16000 || info.BitDepth != 16 {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestInspectZeroFrames(t *testing.T) {
	info, err := Inspect(bytes.NewReader(emptyWAV(16000, 1)))
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if info.Frames != 0 {
		t.Errorf("expected 0 frames, got %d", info.Frames)
	}
}

func TestInspectGarbage(t *testing.T) {
	if _, err := Inspect(bytes.NewReader([]byte("definitely not a wav file at all"))); err == nil {
		t.Error("expected error for non-WAV data")
	}
}

func TestSniffers(t *testing.T) {
	if !IsWAV(emptyWAV(8000, 1)) {
		t.Error("expected RIFF/WAVE header to be detected")
	}
	if IsWAV([]byte("RIFF")) {
		t.Error("short header must not be detected as WAV")
	}
	if !IsMP3([]byte("ID3\x03\x00")) || !IsMP3([]byte{0xFF, 0xFB, 0x90}) {
		t.Error("expected MP3 signatures to be detected")
	}
	if IsMP3([]byte("OggS")) {
		t.Error("Ogg must not be detected as MP3")
	}
}

func TestTo16(t *testing.T) {
	if got := to16([]int{0, 128, 255}, 8); got[0] != -32768 || got[1] != 0 || got[2] != 127<<8 {
		t.Errorf("unexpected 8-bit conversion: %v", got)
	}
	if got := to16([]int{8388607, -8388608}, 24); got[0] != 32767 || got[1] != -32768 {
		t.Errorf("unexpected 24-bit conversion: %v", got)
	}
}

func TestPCMByteOrder(t *testing.T) {
	le := PCM16LE([]int16{0x0102})
	be := PCM16BE([]int16{0x0102})
	if le[0] != 0x02 || le[1] != 0x01 {
		t.Errorf("unexpected little-endian bytes: %v", le)
	}
	if be[0] != 0x01 || be[1] != 0x02 {
		t.Errorf("unexpected big-endian bytes: %v", be)
	}
}

// emptyWAV returns a canonical 44-byte PCM header with an empty data chunk.
func emptyWAV(rate, channels int) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(36))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(buf, binary.LittleEndian, uint32(rate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(rate*channels*2))
	_ = binary.Write(buf, binary.LittleEndian, uint16(channels*2))
	_ = binary.Write(buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(0))
	return buf.Bytes()
}
