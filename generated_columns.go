package main

import (
	"fmt"
	"strings"
)

// isGeneratedColumn detects generated columns from the Extra attribute.
func isGeneratedColumn(extra string) bool {
	upper := strings.ToUpper(extra)
	return strings.Contains(upper, "VIRTUAL GENERATED") || strings.Contains(upper, "STORED GENERATED")
}

// isOnUpdateCurrentTimestamp detects ON UPDATE CURRENT_TIMESTAMP columns,
// including MariaDB's current_timestamp() spelling.
func isOnUpdateCurrentTimestamp(extra string) bool {
	return strings.Contains(strings.ToLower(extra), "on update current_timestamp")
}

// fieldCaveats lists the MySQL column behaviors the generated script drops.
func fieldCaveats(table string, attrs Attrs, replicateOnUpdate bool) []string {
	var warnings []string
	extra := attrs["Extra"]
	if isGeneratedColumn(extra) {
		warnings = append(warnings, fmt.Sprintf(
			"generated column %s.%s (%s) will be materialized as plain data; generation expression is not recreated",
			table, attrs["Field"], extra,
		))
	}
	if isOnUpdateCurrentTimestamp(extra) && !replicateOnUpdate {
		warnings = append(warnings, fmt.Sprintf(
			"column %s.%s has ON UPDATE CURRENT_TIMESTAMP which is not replicated (set replicate_on_update_current_timestamp)",
			table, attrs["Field"],
		))
	}
	return warnings
}
