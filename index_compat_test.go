package main

import (
	"strings"
	"testing"
)

func TestParseKeyPart(t *testing.T) {
	kp, ok := parseKeyPart(Attrs{
		"Key_name": "idx", "Column_name": "email", "Non_unique": "0",
		"Sub_part": "10", "Index_type": "btree", "Collation": "D",
	})
	if !ok {
		t.Fatal("parseKeyPart() rejected a valid key element")
	}
	if kp.Index != "idx" || kp.Column != "email" || kp.NonUnique || kp.SubPart != "10" || kp.Type != "BTREE" || !kp.Desc {
		t.Fatalf("parseKeyPart() = %+v", kp)
	}

	if _, ok := parseKeyPart(Attrs{"Column_name": "x"}); ok {
		t.Fatal("key element without Key_name should be skipped")
	}
}

func TestKeyPartUnsupportedReason(t *testing.T) {
	tests := []struct {
		name string
		kp   keyPart
		want bool
	}{
		{"plain btree", keyPart{Column: "a", Type: "BTREE"}, false},
		{"no type", keyPart{Column: "a"}, false},
		{"hash", keyPart{Column: "a", Type: "HASH"}, false},
		{"fulltext", keyPart{Column: "a", Type: "FULLTEXT"}, true},
		{"spatial", keyPart{Column: "a", Type: "SPATIAL"}, true},
		{"expression", keyPart{Type: "BTREE"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := keyPartUnsupportedReason(tt.kp); got != tt.want {
				t.Fatalf("keyPartUnsupportedReason(%+v) = %t, want %t", tt.kp, got, tt.want)
			}
		})
	}
}

func TestAddKeyPart(t *testing.T) {
	s := newTableSchema("users")

	if w := s.addKeyPart(keyPart{Index: "PRIMARY", Column: "id"}); len(w) != 0 {
		t.Fatalf("primary key-part warned: %v", w)
	}
	if len(s.Indexes) != 0 {
		t.Fatal("PRIMARY must not become a secondary index")
	}

	w := s.addKeyPart(keyPart{Index: "email_prefix", Column: "email", NonUnique: true, SubPart: "8"})
	if len(w) != 1 || !strings.Contains(w[0], "prefix") {
		t.Fatalf("prefix key-part warnings = %v", w)
	}

	s.addKeyPart(keyPart{Index: "ft", Column: "bio", Type: "FULLTEXT", NonUnique: true})
	w = s.addKeyPart(keyPart{Index: "ft", Column: "name", Type: "FULLTEXT", NonUnique: true})
	if len(w) != 0 {
		t.Fatalf("skipped index should warn once, got %v", w)
	}

	if len(s.Indexes) != 2 {
		t.Fatalf("indexes = %d, want 2", len(s.Indexes))
	}
	if s.Indexes[0].Name != "email_prefix" || s.Indexes[1].Name != "ft" {
		t.Fatalf("index order not preserved: %s, %s", s.Indexes[0].Name, s.Indexes[1].Name)
	}
	if s.Indexes[1].SkipReason == "" {
		t.Fatal("FULLTEXT index should carry a skip reason")
	}
}
