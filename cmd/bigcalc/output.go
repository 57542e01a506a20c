package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"bigcalc/bignum"
)

var (
	nameColor  = color.New(color.FgCyan)
	errorColor = color.New(color.FgRed, color.Bold)
	faintColor = color.New(color.Faint)
)

// resultRecord is one evaluated expression in JSON output.
type resultRecord struct {
	Line   int            `json:"line,omitempty"`
	Expr   string         `json:"expr"`
	Value  *bignum.BigInt `json:"value,omitempty"`
	Digits int            `json:"digits,omitempty"`
	Cached bool           `json:"cached,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func newRecord(line int, src string, v bignum.BigInt, err error) resultRecord {
	rec := resultRecord{Line: line, Expr: src}
	if err != nil {
		rec.Error = err.Error()
		return rec
	}
	rec.Value = &v
	rec.Digits = v.NumDigits()
	return rec
}

func checkFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be text or json)", format)
	}
}

// writeRecords renders records as text lines or as one JSON array.
// withExpr prefixes text output with the source expression.
func writeRecords(out io.Writer, format string, records []resultRecord, withExpr bool) error {
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	for _, rec := range records {
		if err := writeTextRecord(out, rec, withExpr); err != nil {
			return err
		}
	}
	return nil
}

func writeTextRecord(out io.Writer, rec resultRecord, withExpr bool) error {
	prefix := ""
	if withExpr {
		if rec.Line > 0 {
			prefix = faintColor.Sprintf("%d: ", rec.Line)
		}
		prefix += nameColor.Sprint(rec.Expr) + " = "
	}
	var err error
	if rec.Error != "" {
		_, err = fmt.Fprintf(out, "%s%s %s\n", prefix, errorColor.Sprint("error:"), rec.Error)
	} else {
		_, err = fmt.Fprintf(out, "%s%s\n", prefix, rec.Value)
	}
	return err
}
