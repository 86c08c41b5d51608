// Package report turns a tabular vulnerability export into a prioritization
// report: it maps site labels through the vocabulary, runs each record
// through the decision engine, and renders the result with human-readable
// column names. A malformed record becomes an explicit error marker in its
// original position; it never aborts the batch.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"ssvc-prioritizer/internal/cvss"
	"ssvc-prioritizer/internal/epss"
	"ssvc-prioritizer/internal/mapping"
	"ssvc-prioritizer/ssvc"
)

// Table is an ordered CSV table: one header and the data rows beneath it.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// ReadCSV parses a comma-separated table, trimming header whitespace.
// Short rows are padded so every row can be addressed by column name.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: empty input")
	}
	t := &Table{Header: records[0], index: make(map[string]int)}
	for i, h := range t.Header {
		t.Header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
		t.index[strings.ToLower(t.Header[i])] = i
	}
	for _, row := range records[1:] {
		for len(row) < len(t.Header) {
			row = append(row, "")
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Cell returns the value of the named column in a row, matched
// case-insensitively against the header. Unknown columns read as empty.
func (t *Table) Cell(row []string, column string) string {
	i, ok := t.index[strings.ToLower(column)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Options selects the source columns and carries the enrichment data the
// fetch phases gathered.
type Options struct {
	VectorColumn      string
	ExploitColumn     string
	CriticalityColumn string
	CVEColumn         string

	// NVDVectors backs rows with an empty vector column, keyed by CVE ID.
	NVDVectors map[string]string
	// EPSSData backs rows with an empty exploit column, keyed by CVE ID.
	EPSSData map[string]epss.Data
	UseEPSS  bool
}

// RowResult is the outcome for one input row: either a decision path with
// its score enrichment, or the error that kept the row out of evaluation.
type RowResult struct {
	Path      ssvc.DecisionPath
	Metrics   map[string]string
	BaseScore float64
	Rating    string
	Err       error
}

// Process evaluates every row of the table, in order. Each row is handled
// independently; a failure is recorded in that row's result and processing
// continues.
func Process(t *Table, vocab mapping.Vocabulary, opts Options) []RowResult {
	results := make([]RowResult, len(t.Rows))
	for i, row := range t.Rows {
		results[i] = processRow(t, row, vocab, opts)
	}
	return results
}

func processRow(t *Table, row []string, vocab mapping.Vocabulary, opts Options) RowResult {
	cveID := t.Cell(row, opts.CVEColumn)

	vector := t.Cell(row, opts.VectorColumn)
	if vector == "" && cveID != "" {
		vector = opts.NVDVectors[cveID]
	}
	if vector == "" {
		return RowResult{Err: fmt.Errorf("missing CVSS vector")}
	}
	metrics, err := cvss.ParseVector(vector)
	if err != nil {
		return RowResult{Err: err}
	}

	exploitToken, err := resolveExploit(t.Cell(row, opts.ExploitColumn), cveID, vocab, opts)
	if err != nil {
		return RowResult{Err: err}
	}
	missionToken, err := vocab.MapCriticality(t.Cell(row, opts.CriticalityColumn))
	if err != nil {
		return RowResult{Err: err}
	}

	path, err := ssvc.Evaluate(ssvc.Input{
		AttackComplexity:   metrics["ac"],
		PrivilegesRequired: metrics["pr"],
		UserInteraction:    metrics["ui"],
		Confidentiality:    metrics["c"],
		Integrity:          metrics["i"],
		Availability:       metrics["a"],
		ExploitMaturity:    exploitToken,
		MissionImpact:      missionToken,
	})
	if err != nil {
		return RowResult{Err: err}
	}

	score, err := cvss.BaseScore(vector)
	if err != nil {
		return RowResult{Err: err}
	}
	return RowResult{
		Path:      path,
		Metrics:   metrics,
		BaseScore: score,
		Rating:    cvss.SeverityRating(score),
	}
}

func resolveExploit(label, cveID string, vocab mapping.Vocabulary, opts Options) (string, error) {
	if label != "" {
		return vocab.MapExploit(label)
	}
	if opts.UseEPSS && cveID != "" {
		if data, ok := opts.EPSSData[cveID]; ok {
			return epss.ScoreToExploitMaturity(data.Score), nil
		}
	}
	return "", fmt.Errorf("missing exploit maturity")
}
