package audio

import "math"

const maxAmplitude16 = 1 << 15

// Range is a [StartMs, EndMs) span of a clip.
type Range struct {
	StartMs int
	EndMs   int
}

// SilenceOptions configures silence-based splitting. Values are in milliseconds
// except ThresholdDB, which is in dBFS.
type SilenceOptions struct {
	MinSilenceMs  int
	ThresholdDB   float64
	KeepSilenceMs int
	SeekStepMs    int
}

// RMS is the root mean square of the samples, truncated to an integer.
func RMS(data []int) int {
	if len(data) == 0 {
		return 0
	}
	var sum float64
	for _, v := range data {
		sum += float64(v) * float64(v)
	}
	return int(math.Sqrt(sum / float64(len(data))))
}

// DBFS is the clip loudness relative to 16-bit full scale; -Inf for digital silence.
func (c *Clip) DBFS() float64 {
	rms := RMS(c.Data)
	if rms == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(float64(rms)/maxAmplitude16)
}

// energy answers windowed RMS queries in constant time using prefix sums of squares.
type energy struct {
	clip   *Clip
	prefix []int64
}

func newEnergy(c *Clip) *energy {
	prefix := make([]int64, len(c.Data)+1)
	for i, v := range c.Data {
		prefix[i+1] = prefix[i] + int64(v)*int64(v)
	}
	return &energy{clip: c, prefix: prefix}
}

func (e *energy) rms(startMs, endMs int) int {
	from := e.clip.frameAt(startMs) * e.clip.Channels
	to := e.clip.frameAt(endMs) * e.clip.Channels
	if to > len(e.clip.Data) {
		to = len(e.clip.Data)
	}
	if to <= from {
		return 0
	}
	sum := e.prefix[to] - e.prefix[from]
	return int(math.Sqrt(float64(sum) / float64(to-from)))
}

// DetectSilence returns the silent ranges of c: windows of at least minSilenceMs
// whose RMS does not exceed threshDB.
func DetectSilence(c *Clip, minSilenceMs int, threshDB float64, seekStepMs int) []Range {
	if seekStepMs <= 0 {
		seekStepMs = 1
	}
	length := c.DurationMs()
	if length < minSilenceMs {
		return nil
	}

	thresh := DBToRatio(threshDB) * maxAmplitude16
	e := newEnergy(c)

	lastStart := length - minSilenceMs
	starts := make([]int, 0, lastStart/seekStepMs+2)
	for i := 0; i <= lastStart; i += seekStepMs {
		starts = append(starts, i)
	}
	if lastStart%seekStepMs != 0 {
		starts = append(starts, lastStart)
	}

	var silent []int
	for _, i := range starts {
		if float64(e.rms(i, i+minSilenceMs)) <= thresh {
			silent = append(silent, i)
		}
	}
	if len(silent) == 0 {
		return nil
	}

	var ranges []Range
	prev := silent[0]
	rangeStart := prev
	for _, i := range silent[1:] {
		continuous := i == prev+seekStepMs
		hasGap := i > prev+minSilenceMs
		if !continuous && hasGap {
			ranges = append(ranges, Range{StartMs: rangeStart, EndMs: prev + minSilenceMs})
			rangeStart = i
		}
		prev = i
	}
	return append(ranges, Range{StartMs: rangeStart, EndMs: prev + minSilenceMs})
}

// DetectNonsilent is the complement of DetectSilence over the clip.
func DetectNonsilent(c *Clip, minSilenceMs int, threshDB float64, seekStepMs int) []Range {
	length := c.DurationMs()
	silent := DetectSilence(c, minSilenceMs, threshDB, seekStepMs)
	if len(silent) == 0 {
		return []Range{{StartMs: 0, EndMs: length}}
	}
	if silent[0].StartMs == 0 && silent[0].EndMs == length {
		return nil
	}

	var out []Range
	prevEnd := 0
	for _, s := range silent {
		out = append(out, Range{StartMs: prevEnd, EndMs: s.StartMs})
		prevEnd = s.EndMs
	}
	if silent[len(silent)-1].EndMs != length {
		out = append(out, Range{StartMs: prevEnd, EndMs: length})
	}
	if out[0].StartMs == 0 && out[0].EndMs == 0 {
		out = out[1:]
	}
	return out
}

// SplitRanges computes the chunk boundaries produced by splitting on silence.
// Each nonsilent range is padded by KeepSilenceMs; padded neighbours that overlap
// meet at their midpoint. Ranges are clamped to the clip and ordered.
func SplitRanges(c *Clip, opts SilenceOptions) []Range {
	length := c.DurationMs()
	nonsilent := DetectNonsilent(c, opts.MinSilenceMs, opts.ThresholdDB, opts.SeekStepMs)

	out := make([]Range, len(nonsilent))
	for i, r := range nonsilent {
		out[i] = Range{StartMs: r.StartMs - opts.KeepSilenceMs, EndMs: r.EndMs + opts.KeepSilenceMs}
	}
	for i := 0; i+1 < len(out); i++ {
		if out[i+1].StartMs < out[i].EndMs {
			mid := floorDiv(out[i].EndMs+out[i+1].StartMs, 2)
			out[i].EndMs = mid
			out[i+1].StartMs = mid
		}
	}
	for i := range out {
		out[i].StartMs = max(out[i].StartMs, 0)
		out[i].EndMs = min(out[i].EndMs, length)
	}
	return out
}

// SplitOnSilence slices c at the ranges returned by SplitRanges.
func SplitOnSilence(c *Clip, opts SilenceOptions) []*Clip {
	ranges := SplitRanges(c, opts)
	out := make([]*Clip, len(ranges))
	for i, r := range ranges {
		out[i] = c.Slice(r.StartMs, r.EndMs)
	}
	return out
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
