package journal

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"stakeScope/internal/model"
)

func TestJsonlSinkAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outcomes.jsonl")
	sink := NewJsonlSink(path)

	outcomes := []model.Outcome{
		{Operation: "stake", Amount: 25.5, Signature: "sig1", Status: model.OutcomeConfirmed, ResolvedAt: "2024-01-01T00:00:00Z"},
		{Operation: "unstake", Amount: 10, Status: model.OutcomeFailed, Reason: "rejected by ledger (code -32002): simulation failed", ResolvedAt: "2024-01-01T00:01:00Z"},
	}
	for _, outcome := range outcomes {
		if err := sink.Append(context.Background(), outcome); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer file.Close()

	var got []model.Outcome
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var outcome model.Outcome
		if err := json.Unmarshal(scanner.Bytes(), &outcome); err != nil {
			t.Fatalf("parse line: %v", err)
		}
		got = append(got, outcome)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan journal: %v", err)
	}

	if len(got) != len(outcomes) {
		t.Fatalf("line count mismatch: %d != %d", len(got), len(outcomes))
	}
	for i := range outcomes {
		if got[i] != outcomes[i] {
			t.Fatalf("outcome %d mismatch: %+v != %+v", i, got[i], outcomes[i])
		}
	}
}

func TestJsonlSinkCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "outcomes.jsonl")
	sink := NewJsonlSink(path)

	outcome := model.Outcome{Operation: "stake", Amount: 1, Status: model.OutcomeUnknown, ResolvedAt: "2024-01-01T00:00:00Z"}
	if err := sink.Append(context.Background(), outcome); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("journal file missing: %v", err)
	}
}
