package main

import "fmt"

// onUpdateTriggerStatements returns the trigger function and trigger that
// replicate MySQL's ON UPDATE CURRENT_TIMESTAMP for one column. The function
// is shared by every table with a column of the same name.
func onUpdateTriggerStatements(table, column string) []string {
	funcName := fmt.Sprintf("set_%s", column)
	trigName := fmt.Sprintf("trg_%s_%s", table, column)
	return []string{
		fmt.Sprintf(
			`CREATE OR REPLACE FUNCTION %s() RETURNS TRIGGER AS $fn$ BEGIN NEW.%s = CURRENT_TIMESTAMP; RETURN NEW; END; $fn$ LANGUAGE plpgsql`,
			quoteIdent(funcName), quoteIdent(column)),
		fmt.Sprintf(
			"CREATE TRIGGER %s BEFORE UPDATE ON %s FOR EACH ROW EXECUTE FUNCTION %s()",
			quoteIdent(trigName), quoteIdent(table), quoteIdent(funcName)),
	}
}
