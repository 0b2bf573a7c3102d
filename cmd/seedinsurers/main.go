// Command seedinsurers converts the insurer coverage Excel file into a SQL
// seed file. Reads the first sheet; one insurer per row.
// Usage: go run ./cmd/seedinsurers [path/to/insurers.xlsx]
// Output: db/seeds/insurers.sql
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

type insurerEntry struct {
	nom           string
	email         string
	zones         []string
	pays          []string
	international bool
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	xlsxPath := "Couverture_Assureurs.xlsx"
	if len(os.Args) > 1 {
		xlsxPath = os.Args[1]
	}
	outPath := "db/seeds/insurers.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := parseSheet(f)
	if err != nil {
		return fmt.Errorf("parse sheet: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no insurers found in %s", xlsxPath)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	var b strings.Builder
	b.WriteString("-- Insurer coverage seed data generated from Excel.\n")
	fmt.Fprintf(&b, "-- %d insurers.\n", len(entries))
	b.WriteString("BEGIN;\n\n")
	b.WriteString("INSERT INTO insurers (id, nom, email, zones, pays, international, created_at) VALUES\n")

	for i := range entries {
		e := &entries[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  (gen_random_uuid(), '%s', '%s', '%s', '%s', %t, NOW())",
			escapeSQL(e.nom), escapeSQL(e.email),
			escapeSQL(jsonList(e.zones)), escapeSQL(jsonList(e.pays)),
			e.international)
	}

	b.WriteString("\nON CONFLICT (nom) DO UPDATE SET\n")
	b.WriteString("  email = EXCLUDED.email,\n")
	b.WriteString("  zones = EXCLUDED.zones,\n")
	b.WriteString("  pays = EXCLUDED.pays,\n")
	b.WriteString("  international = EXCLUDED.international;\n")
	b.WriteString("\nCOMMIT;\n")

	if _, err := out.WriteString(b.String()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	log.Printf("Generated %d insurers in %s", len(entries), outPath)
	return nil
}

// parseSheet reads the first sheet.
// Columns: A(0)=Nom, B(1)=Email, C(2)=Zones (comma-separated),
// D(3)=Pays (comma-separated), E(4)=International (oui/non).
// Data starts at row index 1 (row 0 is the header).
func parseSheet(f *excelize.File) ([]insurerEntry, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []insurerEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		nom := strings.TrimSpace(cellVal(row, 0))
		if nom == "" || seen[nom] {
			continue
		}
		seen[nom] = true

		entries = append(entries, insurerEntry{
			nom:           nom,
			email:         strings.TrimSpace(cellVal(row, 1)),
			zones:         splitList(cellVal(row, 2)),
			pays:          splitList(cellVal(row, 3)),
			international: parseBool(cellVal(row, 4)),
		})
	}
	return entries, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "oui", "yes", "true", "1":
		return true
	}
	return false
}

func jsonList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return string(b)
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
