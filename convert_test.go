package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fileConfig(t *testing.T, input string) *ConvertConfig {
	t.Helper()
	dir := t.TempDir()
	cfg := defaultConfig()
	cfg.configDir = dir
	cfg.Input = filepath.Join(dir, "dump.xml")
	cfg.Output = filepath.Join(dir, "dump.sql")
	cfg.setExportStructure(true)
	if err := os.WriteFile(cfg.Input, []byte(input), 0644); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestConvertFile(t *testing.T) {
	cfg := fileConfig(t, `<mysqldump><database name="d">
<table_structure name="t"><field Field="a" Type="int(11)" Null="YES" /></table_structure>
<table_data name="t"><row><field name="a">1</field></row><row><field name="a"></field></row></table_data>
</database></mysqldump>`)
	if err := os.WriteFile(filepath.Join(cfg.configDir, "post.sql"), []byte("ANALYZE {{schema}}t;"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg.Hooks.Epilogue = []string{"post.sql"}

	var last float64
	res, err := convertFile(context.Background(), cfg, func(p float64, _, _ int64) { last = p })
	if err != nil {
		t.Fatalf("convertFile() error: %v", err)
	}
	if res.Tables != 1 || res.Rows != 2 {
		t.Errorf("result = %+v", res)
	}
	if last != 100 {
		t.Errorf("final progress = %v, want 100", last)
	}

	out, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatal(err)
	}
	got := string(out)
	if !strings.Contains(got, "INSERT INTO \"t\" (\"a\") VALUES \n('1'),\n(NULL);\n") {
		t.Errorf("data block missing:\n%s", got)
	}
	if !strings.HasSuffix(got, "ANALYZE t;\n") {
		t.Errorf("epilogue should close the script:\n%s", got)
	}
}

func TestConvertFile_EmptyInput(t *testing.T) {
	cfg := fileConfig(t, "")
	res, err := convertFile(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("convertFile() error: %v", err)
	}
	if res.Tables != 0 || res.Rows != 0 {
		t.Errorf("result = %+v, want zero", res)
	}
	out, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != scriptHeader {
		t.Errorf("output = %q, want header only", out)
	}
}

func TestConvertFile_MissingInput(t *testing.T) {
	cfg := fileConfig(t, "")
	cfg.Input = filepath.Join(cfg.configDir, "absent.xml")
	if _, err := convertFile(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for missing input")
	}
	if _, err := os.Stat(cfg.Output); !os.IsNotExist(err) {
		t.Errorf("output should not be created, stat err = %v", err)
	}
}

func TestConvertFile_HookFailureLeavesOutputUntouched(t *testing.T) {
	cfg := fileConfig(t, "<mysqldump/>")
	if err := os.WriteFile(cfg.Output, []byte("previous"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg.Hooks.Preamble = []string{"missing.sql"}

	if _, err := convertFile(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected hook load error")
	}
	out, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "previous" {
		t.Errorf("output was truncated: %q", out)
	}
}

func TestConvertFile_ParseError(t *testing.T) {
	cfg := fileConfig(t, "<mysqldump><table_data name=\"t\"><row>")
	_, err := convertFile(context.Background(), cfg, nil)
	if err == nil || !strings.Contains(err.Error(), "xml parse error") {
		t.Fatalf("convertFile() = %v, want parse error", err)
	}
}

func TestConvertStream_QuoteAndBackslashLiteral(t *testing.T) {
	doc := `<mysqldump><table_data name="t"><row><field name="v">it's a\b</field></row></table_data></mysqldump>`
	var out strings.Builder
	if _, err := convertStream(context.Background(), strings.NewReader(doc), &out, testConfig(false, 10), scriptHooks{}); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "SET standard_conforming_strings = on;\n") {
		t.Fatalf("backslashes are only literal with standard_conforming_strings on:\n%s", got)
	}
	if !strings.Contains(got, `('it''s a\b')`) {
		t.Fatalf("literal not rendered standard-conforming:\n%s", got)
	}
}
