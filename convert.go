package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
)

// scriptHeader makes every emitted literal parse the same way whatever the
// target session defaults are.
const scriptHeader = "SET standard_conforming_strings = on;\n"

// convertResult summarizes a finished conversion run.
type convertResult struct {
	Tables   int
	Rows     int64
	Warnings []string
}

// scriptHooks are statements spliced around the converted dump.
type scriptHooks struct {
	Preamble []string
	Epilogue []string
}

// convertStream converts the dump read from r into a PostgreSQL script
// written to w in a single forward pass.
func convertStream(ctx context.Context, r io.Reader, w io.Writer, cfg *ConvertConfig, hooks scriptHooks) (*convertResult, error) {
	bw := bufio.NewWriterSize(w, 64<<10)

	if _, err := io.WriteString(bw, scriptHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if cfg.Schema != "" {
		schema := quoteQualifiedIdent(cfg.Schema)
		if _, err := fmt.Fprintf(bw, "CREATE SCHEMA IF NOT EXISTS %s;\nSET search_path TO %s;\n", schema, schema); err != nil {
			return nil, fmt.Errorf("write schema header: %w", err)
		}
	}
	if err := writeStatements(bw, hooks.Preamble); err != nil {
		return nil, fmt.Errorf("write preamble: %w", err)
	}

	conv := newConverter(cfg, bw)
	if err := streamXML(ctx, r, conv); err != nil {
		return nil, err
	}

	if err := writeStatements(bw, hooks.Epilogue); err != nil {
		return nil, fmt.Errorf("write epilogue: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("flush output: %w", err)
	}

	return &convertResult{
		Tables:   conv.tables,
		Rows:     conv.rows,
		Warnings: conv.warnings,
	}, nil
}

// convertFile runs one conversion from cfg.Input to cfg.Output. Hooks are
// loaded before the output is created so setup failures never truncate it.
// Both files are closed on every exit path.
func convertFile(ctx context.Context, cfg *ConvertConfig, progress ProgressFunc) (res *convertResult, err error) {
	var hooks scriptHooks
	if hooks.Preamble, err = loadHookStatements(cfg, cfg.Hooks.Preamble, "preamble"); err != nil {
		return nil, err
	}
	if hooks.Epilogue, err = loadHookStatements(cfg, cfg.Hooks.Epilogue, "epilogue"); err != nil {
		return nil, err
	}

	in, err := os.Open(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	out, err := os.Create(cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	log.Printf("converting %s (%d bytes) → %s", cfg.Input, info.Size(), cfg.Output)
	pr := newProgressReader(in, info.Size(), progress)
	res, err = convertStream(ctx, pr, out, cfg, hooks)
	if err != nil {
		return nil, err
	}
	pr.finish()
	return res, nil
}
