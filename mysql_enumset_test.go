package main

import (
	"reflect"
	"testing"
)

func TestParseMySQLEnumSetValues(t *testing.T) {
	tests := []struct {
		in   string
		want []string
		err  bool
	}{
		{"enum('new','used')", []string{"new", "used"}, false},
		{"set('a','b','c')", []string{"a", "b", "c"}, false},
		{"enum('it''s','ok')", []string{"it's", "ok"}, false},
		{"enum('a\\'b','c')", []string{"a'b", "c"}, false},
		{"enum(bad)", nil, true},
	}

	for _, tt := range tests {
		got, err := parseMySQLEnumSetValues(tt.in)
		if tt.err {
			if err == nil {
				t.Fatalf("parseMySQLEnumSetValues(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseMySQLEnumSetValues(%q) error: %v", tt.in, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("parseMySQLEnumSetValues(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestEnumTypeDefinition(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"enum('new','paid')", `"t_enum_c" AS ENUM ('new', 'paid')`},
		{"enum('a\\'b')", `"t_enum_c" AS ENUM ('a''b')`},
		{"enum(bad)", `"t_enum_c" AS enum(bad)`},
	}
	for _, tt := range tests {
		if got := enumTypeDefinition("t_enum_c", tt.in); got != tt.want {
			t.Errorf("enumTypeDefinition(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
