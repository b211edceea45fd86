package audio

import "math"

// DBToRatio converts a decibel value to a linear amplitude ratio.
func DBToRatio(db float64) float64 {
	return math.Pow(10, db/20)
}

// ApplyGain scales every sample by db decibels, saturating at the 16-bit range.
func ApplyGain(c *Clip, db float64) *Clip {
	ratio := DBToRatio(db)
	out := make([]int, len(c.Data))
	for i, v := range c.Data {
		scaled := math.Round(float64(v) * ratio)
		out[i] = int(math.Max(math.MinInt16, math.Min(math.MaxInt16, scaled)))
	}
	return &Clip{Data: out, Channels: c.Channels, SampleRate: c.SampleRate}
}
