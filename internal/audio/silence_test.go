package audio

import (
	"math"
	"testing"
)

// tone builds a mono 16 kHz clip of totalMs with 440 Hz bursts inside the given ranges.
func tone(totalMs int, bursts ...Range) *Clip {
	const rate = 16000
	frames := totalMs * rate / 1000
	data := make([]int, frames)
	for _, b := range bursts {
		for i := b.StartMs * rate / 1000; i < b.EndMs*rate/1000 && i < frames; i++ {
			data[i] = int(8000 * math.Sin(2*math.Pi*440*float64(i)/rate))
		}
	}
	return &Clip{Data: data, Channels: 1, SampleRate: rate}
}

func defaultOpts(c *Clip) SilenceOptions {
	return SilenceOptions{
		MinSilenceMs:  500,
		ThresholdDB:   c.DBFS() - 14,
		KeepSilenceMs: 200,
		SeekStepMs:    1,
	}
}

func within(v, want, tol int) bool {
	return v >= want-tol && v <= want+tol
}

func TestDBFS(t *testing.T) {
	silent := tone(1000)
	if !math.IsInf(silent.DBFS(), -1) {
		t.Errorf("expected -Inf dBFS for digital silence, got %f", silent.DBFS())
	}

	full := &Clip{Data: []int{32767, -32767, 32767, -32767}, Channels: 1, SampleRate: 8000}
	if math.Abs(full.DBFS()) > 0.01 {
		t.Errorf("expected ~0 dBFS for full scale square, got %f", full.DBFS())
	}
}

func TestSplitRangesAllSilent(t *testing.T) {
	c := tone(2000)
	if got := SplitRanges(c, defaultOpts(c)); len(got) != 0 {
		t.Fatalf("expected no chunks for silent clip, got %v", got)
	}
}

func TestSplitRangesSingleBurst(t *testing.T) {
	c := tone(3000, Range{StartMs: 1000, EndMs: 1600})

	got := SplitRanges(c, defaultOpts(c))
	if len(got) != 1 {
		t.Fatalf("expected 1 chunk, got %d: %v", len(got), got)
	}
	if !within(got[0].StartMs, 800, 10) {
		t.Errorf("chunk start: expected ~800ms, got %d", got[0].StartMs)
	}
	if !within(got[0].EndMs, 1800, 10) {
		t.Errorf("chunk end: expected ~1800ms, got %d", got[0].EndMs)
	}
}

func TestSplitRangesOrderedBursts(t *testing.T) {
	c := tone(3000, Range{StartMs: 500, EndMs: 1000}, Range{StartMs: 2000, EndMs: 2500})

	got := SplitRanges(c, defaultOpts(c))
	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(got), got)
	}
	if got[0].EndMs > got[1].StartMs {
		t.Errorf("chunks overlap or are out of order: %v", got)
	}
	if !within(got[0].StartMs, 300, 10) || !within(got[1].EndMs, 2700, 10) {
		t.Errorf("unexpected outer bounds: %v", got)
	}
}

func TestSplitRangesClampsToClip(t *testing.T) {
	c := tone(1500, Range{StartMs: 0, EndMs: 400})

	got := SplitRanges(c, defaultOpts(c))
	if len(got) != 1 {
		t.Fatalf("expected 1 chunk, got %v", got)
	}
	if got[0].StartMs != 0 {
		t.Errorf("expected start clamped to 0, got %d", got[0].StartMs)
	}
}

func TestSplitRangesOverlappingPaddingMeetsAtMidpoint(t *testing.T) {
	c := tone(3400, Range{StartMs: 1000, EndMs: 1400}, Range{StartMs: 2000, EndMs: 2400})
	opts := defaultOpts(c)
	opts.KeepSilenceMs = 400

	got := SplitRanges(c, opts)
	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %v", got)
	}
	if got[0].EndMs != got[1].StartMs {
		t.Errorf("expected padded chunks to meet, got %v", got)
	}
	if !within(got[0].EndMs, 1700, 10) {
		t.Errorf("expected midpoint ~1700ms, got %d", got[0].EndMs)
	}
}

func TestSplitRangesDeterministic(t *testing.T) {
	c := tone(4000, Range{StartMs: 300, EndMs: 900}, Range{StartMs: 1700, EndMs: 2100}, Range{StartMs: 3000, EndMs: 3600})

	first := SplitRanges(c, defaultOpts(c))
	second := SplitRanges(c, defaultOpts(c))
	if len(first) != len(second) {
		t.Fatalf("chunk count differs between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestDetectSilenceShortClip(t *testing.T) {
	c := tone(300)
	if got := DetectSilence(c, 500, -40, 1); got != nil {
		t.Errorf("expected nil for clip shorter than min silence, got %v", got)
	}
	if got := DetectNonsilent(c, 500, -40, 1); len(got) != 1 || got[0] != (Range{StartMs: 0, EndMs: 300}) {
		t.Errorf("expected whole clip as nonsilent, got %v", got)
	}
}

func TestSplitOnSilenceSlices(t *testing.T) {
	c := tone(3000, Range{StartMs: 1000, EndMs: 1600})

	chunks := SplitOnSilence(c, defaultOpts(c))
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	r := SplitRanges(c, defaultOpts(c))[0]
	wantFrames := (r.EndMs - r.StartMs) * 16
	if chunks[0].Frames() != wantFrames {
		t.Errorf("expected %d frames, got %d", wantFrames, chunks[0].Frames())
	}
}

// step is a clip of constant amplitude 1000 inside each burst, so window RMS
// values are exact and chunk boundaries can be pinned to the millisecond.
func step(frames int, bursts ...Range) *Clip {
	const rate = 16000
	data := make([]int, frames)
	for _, b := range bursts {
		for i := b.StartMs * rate / 1000; i < b.EndMs*rate/1000 && i < frames; i++ {
			data[i] = 1000
		}
	}
	return &Clip{Data: data, Channels: 1, SampleRate: rate}
}

func TestDurationMsRoundsHalfToEven(t *testing.T) {
	tests := []struct {
		frames int
		want   int
	}{
		{16000, 1000},
		{16008, 1000}, // 1000.5 ms
		{16024, 1002}, // 1001.5 ms
		{16009, 1001},
		{8, 0}, // 0.5 ms
		{24, 2}, // 1.5 ms
	}
	for _, tt := range tests {
		c := &Clip{Data: make([]int, tt.frames), Channels: 1, SampleRate: 16000}
		if got := c.DurationMs(); got != tt.want {
			t.Errorf("%d frames: expected %d ms, got %d", tt.frames, tt.want, got)
		}
	}
}

func TestSplitRangesExactBoundaries(t *testing.T) {
	// dBFS threshold lands near RMS 115: a 500 ms window tolerates at most 6 ms of signal,
	// so silence is [0,1006] and [1994,3000] and the padded chunk is [806,2194].
	c := step(48000, Range{StartMs: 1000, EndMs: 2000})

	silent := DetectSilence(c, 500, c.DBFS()-14, 1)
	wantSilent := []Range{{0, 1006}, {1994, 3000}}
	if len(silent) != len(wantSilent) || silent[0] != wantSilent[0] || silent[1] != wantSilent[1] {
		t.Fatalf("silence: expected %v, got %v", wantSilent, silent)
	}

	got := SplitRanges(c, defaultOpts(c))
	if len(got) != 1 || got[0] != (Range{StartMs: 806, EndMs: 2194}) {
		t.Errorf("expected [{806 2194}], got %v", got)
	}
}

func TestSplitRangesFractionalLength(t *testing.T) {
	c := step(16008, Range{StartMs: 0, EndMs: 1001})

	got := SplitRanges(c, defaultOpts(c))
	if len(got) != 1 || got[0] != (Range{StartMs: 0, EndMs: 1000}) {
		t.Errorf("expected [{0 1000}] for a 1000.5 ms clip, got %v", got)
	}
}
