package model

// Submission is everything one pipeline run consumes.
type Submission struct {
	Profile    string
	Subject    string
	Confidence float64
	Transcript *SourceTranscript
	Document   *CandidateDocument

	// Raw file contents, used for the report cache key.
	TranscriptBytes []byte
	DocumentBytes   []byte
}
