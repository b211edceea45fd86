package models

import "fmt"

// Artifact names one of the fixed files kept in a session's storage area.
type Artifact string

const (
	Recording         Artifact = "recording.wav"
	EnhancedRecording Artifact = "enhanced_recording.wav"
	WorkingCopy       Artifact = "temp_recording.wav"
)

// DefaultSession is used when a request does not name a session.
const DefaultSession = "default"

// ChunkArtifact is the transient file of the i-th transcription chunk.
func ChunkArtifact(i int) Artifact {
	return Artifact(fmt.Sprintf("chunk_%d.wav", i))
}
