package main

import (
	"strings"
	"testing"
)

func TestSequenceResetStatement(t *testing.T) {
	got := sequenceResetStatement("users", "id", 42)
	want := "SELECT setval('\"users_id_seq\"', 42, true);\n"
	if got != want {
		t.Fatalf("sequenceResetStatement() = %q, want %q", got, want)
	}
}

func TestPendingSequence_CaptureAndTakeOnce(t *testing.T) {
	s := newTableSchema("users")
	s.PrimaryKey = []string{"id", "other"}

	var p pendingSequence
	if w := p.capture(s, Attrs{"Name": "users", "Auto_increment": "7"}); w != "" {
		t.Fatalf("unexpected warning: %s", w)
	}

	stmt, ok := p.take()
	if !ok || !strings.Contains(stmt, `'"users_id_seq"', 7, true`) {
		t.Fatalf("take() = %q, %t", stmt, ok)
	}
	if _, ok := p.take(); ok {
		t.Fatal("pending sequence must be cleared after take()")
	}
}

func TestPendingSequence_NoAutoIncrement(t *testing.T) {
	s := newTableSchema("users")
	s.PrimaryKey = []string{"id"}

	var p pendingSequence
	if w := p.capture(s, Attrs{"Name": "users"}); w != "" {
		t.Fatalf("unexpected warning: %s", w)
	}
	if _, ok := p.take(); ok {
		t.Fatal("options without Auto_increment must not set a reset")
	}
}

func TestPendingSequence_SkippedCases(t *testing.T) {
	tests := []struct {
		name string
		pk   []string
		val  string
	}{
		{"no primary key", nil, "5"},
		{"non-integer value", []string{"id"}, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTableSchema("t")
			s.PrimaryKey = tt.pk
			var p pendingSequence
			if w := p.capture(s, Attrs{"Auto_increment": tt.val}); w == "" {
				t.Fatal("expected a warning")
			}
			if _, ok := p.take(); ok {
				t.Fatal("skipped reset must not be pending")
			}
		})
	}
}
