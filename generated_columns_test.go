package main

import "testing"

func TestIsGeneratedColumn(t *testing.T) {
	tests := []struct {
		name  string
		extra string
		want  bool
	}{
		{"virtual generated", "VIRTUAL GENERATED", true},
		{"stored generated", "STORED GENERATED", true},
		{"default generated not flagged", "DEFAULT_GENERATED", false},
		{"regular column", "auto_increment", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isGeneratedColumn(tt.extra)
			if got != tt.want {
				t.Fatalf("isGeneratedColumn(%q) = %t, want %t", tt.extra, got, tt.want)
			}
		})
	}
}

func TestIsOnUpdateCurrentTimestamp(t *testing.T) {
	if !isOnUpdateCurrentTimestamp("on update CURRENT_TIMESTAMP") {
		t.Error("MySQL spelling not detected")
	}
	if !isOnUpdateCurrentTimestamp("on update current_timestamp()") {
		t.Error("MariaDB spelling not detected")
	}
	if isOnUpdateCurrentTimestamp("DEFAULT_GENERATED") {
		t.Error("DEFAULT_GENERATED flagged as on update")
	}
}

func TestFieldCaveats(t *testing.T) {
	gen := Attrs{"Field": "total", "Extra": "STORED GENERATED"}
	if w := fieldCaveats("orders", gen, false); len(w) != 1 {
		t.Fatalf("generated column warnings = %v, want 1", w)
	}

	onUpdate := Attrs{"Field": "updated_at", "Extra": "DEFAULT_GENERATED on update CURRENT_TIMESTAMP"}
	if w := fieldCaveats("orders", onUpdate, false); len(w) != 1 {
		t.Fatalf("on update warnings = %v, want 1", w)
	}
	if w := fieldCaveats("orders", onUpdate, true); len(w) != 0 {
		t.Fatalf("replicated on update should not warn, got %v", w)
	}
}
