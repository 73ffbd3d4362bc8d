package main

import "github.com/fwojciec/colorhl"

// literal identifies a record independently of where its line moved to.
type literal struct {
	path  string
	text  string
	color colorhl.Color
}

func literalOf(r colorhl.Record) literal {
	return literal{path: r.Path, text: r.Text, color: r.Color}
}

// newSince returns the records not present in baseline. Each baseline
// record accounts for one occurrence, so a literal added next to an
// identical one is still reported.
func newSince(records, baseline []colorhl.Record) []colorhl.Record {
	seen := make(map[literal]int, len(baseline))
	for _, r := range baseline {
		seen[literalOf(r)]++
	}
	var out []colorhl.Record
	for _, r := range records {
		k := literalOf(r)
		if seen[k] > 0 {
			seen[k]--
			continue
		}
		out = append(out, r)
	}
	return out
}
