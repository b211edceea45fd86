package audio

import (
	"fmt"
	"math"
)

// Downmix averages all channels into a single channel.
func Downmix(c *Clip) *Clip {
	if c.Channels <= 1 {
		return c.copy()
	}

	frames := c.Frames()
	out := make([]int, frames)
	for i := 0; i < frames; i++ {
		sum := 0
		for ch := 0; ch < c.Channels; ch++ {
			sum += c.Data[i*c.Channels+ch]
		}
		out[i] = sum / c.Channels
	}
	return &Clip{Data: out, Channels: 1, SampleRate: c.SampleRate}
}

// Resample converts c to rate using per-channel linear interpolation.
func Resample(c *Clip, rate int) (*Clip, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("target sample rate must be positive, got %d", rate)
	}
	if c.SampleRate <= 0 || c.Channels <= 0 {
		return nil, fmt.Errorf("invalid source format: channels=%d rate=%d", c.Channels, c.SampleRate)
	}
	if c.SampleRate == rate {
		return c.copy(), nil
	}

	frames := c.Frames()
	if frames == 0 {
		return nil, ErrNoFrames
	}

	outFrames := int(int64(frames) * int64(rate) / int64(c.SampleRate))
	ratio := float64(c.SampleRate) / float64(rate)
	out := make([]int, outFrames*c.Channels)

	for i := 0; i < outFrames; i++ {
		pos := float64(i) * ratio
		i0 := int(pos)
		if i0 >= frames {
			i0 = frames - 1
		}
		i1 := i0 + 1
		if i1 >= frames {
			i1 = frames - 1
		}
		frac := pos - float64(i0)

		for ch := 0; ch < c.Channels; ch++ {
			a := float64(c.Data[i0*c.Channels+ch])
			b := float64(c.Data[i1*c.Channels+ch])
			out[i*c.Channels+ch] = int(math.Round(a + (b-a)*frac))
		}
	}

	return &Clip{Data: out, Channels: c.Channels, SampleRate: rate}, nil
}

func (c *Clip) copy() *Clip {
	data := make([]int, len(c.Data))
	copy(data, c.Data)
	return &Clip{Data: data, Channels: c.Channels, SampleRate: c.SampleRate}
}
