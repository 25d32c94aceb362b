package store

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
)

// DemoScript creates and fills the tables used by the bundled example request.
//
//go:embed demo.sql
var DemoScript string

// SplitScript splits a SQL script on semicolons that sit outside quoted
// literals, dropping "--" comment lines and empty statements.
func SplitScript(script string) []string {
	var (
		stmts   []string
		cur     strings.Builder
		inQuote bool
	)
	for _, line := range strings.Split(script, "\n") {
		if !inQuote && strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		for _, r := range line {
			switch {
			case r == '\'':
				inQuote = !inQuote
				cur.WriteRune(r)
			case r == ';' && !inQuote:
				if s := strings.TrimSpace(cur.String()); s != "" {
					stmts = append(stmts, s)
				}
				cur.Reset()
			default:
				cur.WriteRune(r)
			}
		}
		cur.WriteByte('\n')
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		stmts = append(stmts, s)
	}
	return stmts
}

func seed(ctx context.Context, script string, exec func(context.Context, string) error) (int, error) {
	stmts := SplitScript(script)
	for i, stmt := range stmts {
		if err := exec(ctx, stmt); err != nil {
			return i, fmt.Errorf("statement %d: %w", i+1, err)
		}
	}
	return len(stmts), nil
}
