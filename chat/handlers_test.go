package chat

import (
	"encoding/json"
	"testing"
	"time"

	"agora/models"
)

func TestMergeBufferedSkipsFlushedDuplicates(t *testing.T) {
	now := time.Now()
	stored := []models.Message{
		{MessageID: "m1", ChatID: "c1", UserID: "u1", Content: "first", SentAt: now},
		{MessageID: "m2", ChatID: "c1", UserID: "u2", Content: "second", SentAt: now},
	}

	// m2 was just flushed to Mongo but its buffer key is not deleted yet;
	// m3 only exists in the buffer
	buf2, _ := json.Marshal(stored[1])
	buf3, _ := json.Marshal(models.Message{MessageID: "m3", ChatID: "c1", UserID: "u1", Content: "third", SentAt: now})

	got := mergeBuffered(stored, []string{string(buf2), string(buf3)})
	if len(got) != 3 {
		t.Fatalf("expected 3 messages after merge, got %d", len(got))
	}
	if got[0].MessageID != "m1" || got[1].MessageID != "m2" || got[2].MessageID != "m3" {
		t.Fatalf("unexpected order or ids: %+v", got)
	}
}

func TestMergeBufferedIgnoresMalformedFrames(t *testing.T) {
	stored := []models.Message{{MessageID: "m1", ChatID: "c1"}}
	got := mergeBuffered(stored, []string{"{not json"})
	if len(got) != 1 {
		t.Fatalf("malformed buffer entries must be skipped, got %d messages", len(got))
	}
}
