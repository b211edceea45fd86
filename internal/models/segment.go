package models

// Segment is one silence-delimited chunk handed to a recognizer.
type Segment struct {
	Index      int
	Path       string // chunk WAV on disk
	Samples    []int16
	SampleRate int
	StartMs    int
	EndMs      int
}

type ChunkStatus string

const (
	ChunkRecognized     ChunkStatus = "recognized"
	ChunkUnintelligible ChunkStatus = "unintelligible"
)

// ChunkResult is the recognition outcome of a single segment.
type ChunkResult struct {
	Index  int
	Text   string
	Status ChunkStatus
}
