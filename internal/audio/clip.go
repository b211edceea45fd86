package audio

import "math"

// Clip is decoded 16-bit PCM audio. Data holds interleaved samples.
type Clip struct {
	Data       []int
	Channels   int
	SampleRate int
}

// Frames returns the number of sample frames (one sample per channel).
func (c *Clip) Frames() int {
	if c.Channels <= 0 {
		return 0
	}
	return len(c.Data) / c.Channels
}

// DurationMs is the clip length in milliseconds, rounded half to even.
func (c *Clip) DurationMs() int {
	if c.SampleRate <= 0 {
		return 0
	}
	return int(math.RoundToEven(1000 * (float64(c.Frames()) / float64(c.SampleRate))))
}

// frameAt converts a millisecond position to a frame index, truncating.
func (c *Clip) frameAt(ms int) int {
	return int(float64(ms) * (float64(c.SampleRate) / 1000.0))
}

// Slice returns a copy of the frames in [startMs, endMs), clamped to the clip.
func (c *Clip) Slice(startMs, endMs int) *Clip {
	length := c.DurationMs()
	startMs = clamp(startMs, 0, length)
	endMs = clamp(endMs, startMs, length)

	from := c.frameAt(startMs) * c.Channels
	to := c.frameAt(endMs) * c.Channels
	if to > len(c.Data) {
		to = len(c.Data)
	}
	if from > to {
		from = to
	}

	data := make([]int, to-from)
	copy(data, c.Data[from:to])
	return &Clip{Data: data, Channels: c.Channels, SampleRate: c.SampleRate}
}

// Int16 returns the samples as int16, saturating out-of-range values.
func (c *Clip) Int16() []int16 {
	out := make([]int16, len(c.Data))
	for i, v := range c.Data {
		out[i] = int16(clamp(v, math.MinInt16, math.MaxInt16))
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
