package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// metricColumns drives the rendered metric section: raw vector key, the
// human-readable column name, and the word each single-letter value expands
// to. Order here is the column order in the report.
var metricColumns = []struct {
	key    string
	label  string
	values map[string]string
}{
	{"av", "Attack Vector (AV)", map[string]string{"n": "Network", "a": "Adjacent", "l": "Local", "p": "Physical"}},
	{"ac", "Attack Complexity (AC)", map[string]string{"l": "Low", "h": "High"}},
	{"pr", "Privileges Required (PR)", map[string]string{"n": "None", "l": "Low", "h": "High"}},
	{"ui", "User Interaction (UI)", map[string]string{"n": "None", "r": "Required"}},
	{"s", "Scope (S)", map[string]string{"u": "Unchanged", "c": "Changed"}},
	{"c", "Confidentiality Impact (C)", impactWords},
	{"i", "Integrity Impact (I)", impactWords},
	{"a", "Availability Impact (A)", impactWords},
}

var impactWords = map[string]string{"n": "None", "l": "Low", "h": "High"}

var resultColumns = []string{
	"CVSS Base Score",
	"CVSS Severity",
	"SSVC Exploitation",
	"SSVC Automatable",
	"SSVC Technical Impact",
	"SSVC Mission Impact",
	"SSVC Action",
}

const errorMarker = "Error"

// WriteCSV renders the report: the original columns, the decoded CVSS
// metrics, and the decision columns, one result row per input row in input
// order. Error rows carry the marker in every decision column and the cause
// in the action column. Output is semicolon-separated UTF-8 with a BOM so
// spreadsheet tools open it directly.
func WriteCSV(w io.Writer, t *Table, results []RowResult) error {
	if _, err := io.WriteString(w, "\uFEFF"); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	header := append([]string{}, t.Header...)
	for _, mc := range metricColumns {
		header = append(header, mc.label)
	}
	header = append(header, resultColumns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	for i, row := range t.Rows {
		out := append([]string{}, row...)
		out = append(out, renderResult(results[i])...)
		if err := cw.Write(out); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteFile renders the report to path, creating or truncating the file.
// The close error is checked: a failed final flush to disk must not pass
// silently.
func WriteFile(path string, t *Table, results []RowResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := WriteCSV(f, t, results); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	return nil
}

func renderResult(res RowResult) []string {
	if res.Err != nil {
		cols := make([]string, 0, len(metricColumns)+len(resultColumns))
		for range metricColumns {
			cols = append(cols, "")
		}
		cols = append(cols, "", "",
			errorMarker, errorMarker, errorMarker, errorMarker,
			fmt.Sprintf("processing error: %v", res.Err))
		return cols
	}
	cols := make([]string, 0, len(metricColumns)+len(resultColumns))
	for _, mc := range metricColumns {
		cols = append(cols, translateMetric(res.Metrics[mc.key], mc.values))
	}
	cols = append(cols,
		fmt.Sprintf("%.1f", res.BaseScore),
		res.Rating,
		string(res.Path.Exploitation),
		string(res.Path.Automatable),
		string(res.Path.TechnicalImpact),
		string(res.Path.MissionImpact),
		string(res.Path.Action),
	)
	return cols
}

func translateMetric(val string, words map[string]string) string {
	if word, ok := words[val]; ok {
		return word
	}
	return val
}
