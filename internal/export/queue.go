package export

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/medguard-ai/verify-cli/internal/model"
)

// QueueItem is one entry in the prioritized review queue.
type QueueItem struct {
	RecordID     string          `json:"provider_id"`
	ProviderName string          `json:"provider_name"`
	Priority     int             `json:"priority"`
	RiskLevel    model.RiskLevel `json:"risk_level"`
	Flags        []string        `json:"flags"`
	Confidence   float64         `json:"confidence"`
	IssueType    string          `json:"issue_type"`
	CreatedAt    time.Time       `json:"created_date"`
}

// BuildQueue selects the entries that require review and orders them by
// priority, highest first. Equal priorities are ordered by record ID so the
// queue is stable across runs.
func (e *Exporter) BuildQueue(entries []DirectoryEntry) []QueueItem {
	now := e.now()

	var queue []QueueItem
	for _, entry := range entries {
		a := entry.Assessment
		if !a.RequiresReview {
			continue
		}
		queue = append(queue, QueueItem{
			RecordID:     a.RecordID,
			ProviderName: entry.Provider.FullName(),
			Priority:     a.Priority,
			RiskLevel:    a.RiskLevel,
			Flags:        a.Flags,
			Confidence:   a.OverallConfidence,
			IssueType:    categorizeIssue(a.Flags),
			CreatedAt:    now,
		})
	}

	sort.Slice(queue, func(i, j int) bool {
		if queue[i].Priority != queue[j].Priority {
			return queue[i].Priority > queue[j].Priority
		}
		return queue[i].RecordID < queue[j].RecordID
	})
	return queue
}

// ReviewQueueJSON writes the queue with a metadata envelope.
func (e *Exporter) ReviewQueueJSON(queue []QueueItem) (string, error) {
	path := e.stampedPath("review_queue", "json")

	doc := struct {
		Metadata struct {
			CreatedDate time.Time `json:"created_date"`
			TotalItems  int       `json:"total_items"`
		} `json:"metadata"`
		ReviewItems []QueueItem `json:"review_items"`
	}{ReviewItems: queue}
	doc.Metadata.CreatedDate = e.now()
	doc.Metadata.TotalItems = len(queue)

	if err := writeJSON(path, doc); err != nil {
		return "", err
	}
	zap.L().Info("export: wrote review queue",
		zap.String("path", path), zap.Int("items", len(queue)))
	return path, nil
}

// categorizeIssue picks the dominant issue category for a flag set. Fraud
// signals outrank everything; the rest follow the order reviewers triage in.
func categorizeIssue(flags []string) string {
	if len(flags) == 0 {
		return "general"
	}
	joined := strings.ToLower(strings.Join(flags, " "))

	switch {
	case strings.Contains(joined, "fraud") || strings.Contains(joined, "suspicious"):
		return "fraud"
	case strings.Contains(joined, "phone"):
		return "phone"
	case strings.Contains(joined, "address"):
		return "address"
	case strings.Contains(joined, "license") || strings.Contains(joined, "expired"):
		return "license"
	case strings.Contains(joined, "education") || strings.Contains(joined, "credential"):
		return "credentials"
	default:
		return "general"
	}
}
