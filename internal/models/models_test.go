package models

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	table := NewTable()

	if table.Len() != 0 {
		t.Fatalf("Expected empty table, got %d entries", table.Len())
	}

	table.Set("желание", []Candidate{{Translation: "desire", Frequency: 120, PartOfSpeech: "n."}})
	table.Set("жажда", []Candidate{{Translation: "thirst", Frequency: 40}})

	got, ok := table.Get("желание")
	if !ok {
		t.Fatal("Expected to find 'желание'")
	}
	if got[0].Translation != "desire" {
		t.Errorf("Expected 'desire', got '%s'", got[0].Translation)
	}

	// Overwrite
	table.Set("желание", []Candidate{{Translation: "wish"}})
	got, _ = table.Get("желание")
	if got[0].Translation != "wish" {
		t.Errorf("Expected overwrite to 'wish', got '%s'", got[0].Translation)
	}
	if table.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", table.Len())
	}

	want := []string{"жажда", "желание"}
	if words := table.Words(); !reflect.DeepEqual(words, want) {
		t.Errorf("Words() = %v, want %v", words, want)
	}
}

func TestTable_SnapshotIsolation(t *testing.T) {
	table := NewTable()
	input := []Candidate{{Translation: "desire"}}
	table.Set("желание", input)

	// Mutating the caller's slice must not leak into the table
	input[0].Translation = "changed"

	snap := table.Snapshot()
	snap["желание"][0].Translation = "modified"
	snap["новое"] = nil

	got, _ := table.Get("желание")
	if got[0].Translation != "desire" {
		t.Errorf("Table was modified through input or snapshot: %q", got[0].Translation)
	}
	if table.Has("новое") {
		t.Error("Snapshot map shares storage with table")
	}
}

func TestLedger(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(Record{Word: "желание", Frequency: 95, Translation: "desire"})
	ledger.Append(Record{Word: "дом", Frequency: 300, Translation: "house"})

	records := ledger.Records()
	if len(records) != 2 || ledger.Len() != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Word != "желание" || records[1].Word != "дом" {
		t.Errorf("Records out of order: %v", records)
	}

	records[0].Word = "modified"
	if ledger.Records()[0].Word != "желание" {
		t.Error("Ledger was modified through returned slice")
	}
	if !ledger.Contains("дом") || ledger.Contains("house") {
		t.Error("Contains must match on the source word only")
	}
}

func TestCandidateJSON(t *testing.T) {
	tests := []struct {
		name      string
		candidate Candidate
		contains  string
	}{
		{
			name:      "tagged",
			candidate: Candidate{SourceWord: "желание", Translation: "desire", Frequency: 120, PartOfSpeech: "n."},
			contains:  `"part_of_speech":"n."`,
		},
		{
			name:      "untagged is null",
			candidate: Candidate{SourceWord: "желание", Translation: "desire", Frequency: 120},
			contains:  `"part_of_speech":null`,
		},
		{
			name:      "no inflections is empty list",
			candidate: Candidate{Translation: "desire"},
			contains:  `"inflected_forms":[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.candidate)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if !strings.Contains(string(data), tt.contains) {
				t.Errorf("Expected %s to contain %s", data, tt.contains)
			}

			var back Candidate
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if back.PartOfSpeech != tt.candidate.PartOfSpeech {
				t.Errorf("PartOfSpeech = %q, want %q", back.PartOfSpeech, tt.candidate.PartOfSpeech)
			}
		})
	}
}

func TestSliceStream(t *testing.T) {
	stream := NewSliceStream([]Sentence{{Text: "one"}, {Text: "two"}})
	ctx := context.Background()

	for _, want := range []string{"one", "two"} {
		s, err := stream.Next(ctx)
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if s.Text != want {
			t.Errorf("Expected %q, got %q", want, s.Text)
		}
	}

	if _, err := stream.Next(ctx); !errors.Is(err, io.EOF) {
		t.Errorf("Expected io.EOF, got %v", err)
	}
	if stream.Consumed() != 2 {
		t.Errorf("Expected 2 consumed, got %d", stream.Consumed())
	}
}

func TestSliceStream_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stream := NewSliceStream([]Sentence{{Text: "one"}})
	if _, err := stream.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
