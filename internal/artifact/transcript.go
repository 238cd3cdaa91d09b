package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/draftcheck/internal/model"
)

const loadCheckpoint = "load"

// LoadTranscript reads a transcript. ".txt" files are plain text with one
// segment per non-empty line; anything else is the JSON shape produced by
// the fetch step.
func LoadTranscript(path string) (*model.SourceTranscript, []byte, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if hasExt(path, ".txt") {
		return ParseTranscriptText(data), data, nil
	}
	t, err := ParseTranscriptJSON(data)
	if err != nil {
		return nil, nil, fmt.Errorf("transcript %s: %w", path, err)
	}
	return t, data, nil
}

// ParseTranscriptJSON decodes {"text", "segments", "duration"}. The text
// key must be present; an empty string is valid.
func ParseTranscriptJSON(data []byte) (*model.SourceTranscript, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	if _, ok := keys["text"]; !ok {
		return nil, model.NewContractViolation(loadCheckpoint, "transcript has no text field")
	}

	var t model.SourceTranscript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	if strings.TrimSpace(t.Text) == "" && len(t.Segments) > 0 {
		joined := model.NewTranscript("", t.Segments)
		joined.DurationSeconds = t.DurationSeconds
		return joined, nil
	}
	return &t, nil
}

// ParseTranscriptText treats each non-empty line as an untimed segment.
func ParseTranscriptText(data []byte) *model.SourceTranscript {
	var segs []model.Segment
	for _, line := range bytes.Split(data, []byte("\n")) {
		if text := strings.TrimSpace(string(line)); text != "" {
			segs = append(segs, model.Segment{Text: text})
		}
	}
	return &model.SourceTranscript{Text: string(data), Segments: segs}
}
