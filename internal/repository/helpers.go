package repository

import (
	"fmt"
	"strings"
	"time"
)

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// formatTime renders a timestamp for SQLite storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTime parses a stored RFC3339 timestamp.
func parseTime(field, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}

// maxInParams caps how many ids ride one IN (...) clause; SQLite limits the
// host parameters a single statement may carry, and a large cascade can
// exceed it.
const maxInParams = 500

// chunkIDs splits ids into runs of at most maxInParams for batched
// IN-clause statements.
func chunkIDs(ids []string) [][]string {
	var chunks [][]string
	for len(ids) > maxInParams {
		chunks = append(chunks, ids[:maxInParams])
		ids = ids[maxInParams:]
	}
	if len(ids) > 0 {
		chunks = append(chunks, ids)
	}
	return chunks
}

// inArgs expands ids into a placeholder string and an args slice for an
// IN (...) clause.
func inArgs(ids []string) (string, []any) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return placeholders, args
}
