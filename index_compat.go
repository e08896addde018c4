package main

import (
	"fmt"
	"strings"
)

// keyPart is one row of a key element: a single column of a (possibly
// composite) index.
type keyPart struct {
	Index     string
	Column    string
	NonUnique bool
	SubPart   string
	Type      string // BTREE, FULLTEXT, SPATIAL, HASH
	Desc      bool
}

// parseKeyPart reads a key element. ok is false when the element carries no
// Key_name.
func parseKeyPart(attrs Attrs) (keyPart, bool) {
	name := attrs["Key_name"]
	if name == "" {
		return keyPart{}, false
	}
	return keyPart{
		Index:     name,
		Column:    attrs["Column_name"],
		NonUnique: attrs["Non_unique"] != "0",
		SubPart:   attrs["Sub_part"],
		Type:      strings.ToUpper(attrs["Index_type"]),
		Desc:      attrs["Collation"] == "D",
	}, true
}

// keyPartUnsupportedReason reports why an index containing kp cannot be
// recreated as a plain PostgreSQL index.
func keyPartUnsupportedReason(kp keyPart) (string, bool) {
	if kp.Column == "" {
		return "expression index key-parts are not currently supported", true
	}
	if kp.Type != "" && kp.Type != "BTREE" && kp.Type != "HASH" {
		return fmt.Sprintf("index type %q is not supported", kp.Type), true
	}
	return "", false
}

// isPrimaryIndex reports whether a key element belongs to the primary key,
// which is rendered inside CREATE TABLE instead.
func isPrimaryIndex(name string) bool {
	return name == "PRIMARY"
}

// addKeyPart accumulates kp into its index and returns any compatibility
// warning.
func (s *TableSchema) addKeyPart(kp keyPart) []string {
	if isPrimaryIndex(kp.Index) {
		return nil
	}
	idx := s.index(kp.Index)
	if !kp.NonUnique {
		idx.Unique = true
	}

	var warnings []string
	if reason, unsupported := keyPartUnsupportedReason(kp); unsupported {
		if idx.SkipReason == "" {
			idx.SkipReason = reason
			warnings = append(warnings, fmt.Sprintf("%s.%s: %s; index skipped", s.Name, kp.Index, reason))
		}
		return warnings
	}
	if kp.SubPart != "" {
		warnings = append(warnings, fmt.Sprintf(
			"%s.%s: prefix key-part %s(%s) indexes the full column",
			s.Name, kp.Index, kp.Column, kp.SubPart,
		))
	}

	part := quoteIdent(kp.Column)
	if kp.Desc {
		part += " DESC"
	}
	idx.Columns = append(idx.Columns, part)
	return warnings
}
