package cache

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ppiankov/draftcheck/internal/model"
)

// ReportCache stores finished pipeline reports.
type ReportCache struct {
	store Cache
	ttl   time.Duration
}

// NewReportCache wraps store. ttl zero defers to the store default.
func NewReportCache(store Cache, ttl time.Duration) *ReportCache {
	return &ReportCache{store: store, ttl: ttl}
}

// SubmissionKey identifies a run by everything that can change its
// verdicts: the resolved profile contents, the subject, the confidence and
// the raw artifact bytes.
func SubmissionKey(p *model.ContentProfile, subject string, confidence float64, transcript, document []byte) string {
	return Key(
		profileDigest(p),
		[]byte(subject),
		[]byte(strconv.FormatFloat(confidence, 'g', -1, 64)),
		transcript,
		document,
	)
}

// profileDigest serializes every threshold of p. Map keys marshal in sorted
// order, so equal profiles give equal bytes.
func profileDigest(p *model.ContentProfile) []byte {
	if p == nil {
		return nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return []byte(p.ID)
	}
	return data
}

// Get returns a cached report. Undecodable entries are dropped.
func (c *ReportCache) Get(key string) (*model.PipelineReport, bool) {
	data, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	var report model.PipelineReport
	if err := json.Unmarshal(data, &report); err != nil {
		_ = c.store.Delete(key)
		return nil, false
	}
	return &report, true
}

// Put stores report under key.
func (c *ReportCache) Put(key string, report *model.PipelineReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := c.store.Set(key, data, c.ttl); err != nil {
		return fmt.Errorf("store report: %w", err)
	}
	return nil
}
