package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"ssvc-prioritizer/internal/epss"
	"ssvc-prioritizer/internal/flags"
	"ssvc-prioritizer/internal/mapping"
	"ssvc-prioritizer/internal/nvd"
	"ssvc-prioritizer/internal/report"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(logger); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ro, err := flags.Parse()
	if err != nil {
		return err
	}

	vocab := mapping.Default()
	if ro.Mapping != "" {
		vocab, err = mapping.Load(ro.Mapping)
		if err != nil {
			return err
		}
	}

	in, err := os.Open(ro.InputFile)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()
	table, err := report.ReadCSV(in)
	if err != nil {
		return err
	}
	logger.Info("loaded vulnerabilities", "file", ro.InputFile, "rows", len(table.Rows))

	opts := report.Options{
		VectorColumn:      ro.VectorColumn,
		ExploitColumn:     ro.ExploitColumn,
		CriticalityColumn: ro.CriticalityColumn,
		CVEColumn:         ro.CVEColumn,
		UseEPSS:           ro.UseEPSS,
	}
	if ro.FetchCVSS {
		opts.NVDVectors = fetchNVDVectors(logger, collectCVEsWithoutVector(table, ro), ro.NvdAPIKey)
	}
	if ro.UseEPSS {
		opts.EPSSData = fetchEPSSData(logger, collectCVEs(table, ro.CVEColumn))
	}

	results := report.Process(table, vocab, opts)
	failed := 0
	for i, res := range results {
		if res.Err != nil {
			failed++
			logger.Warn("row not evaluated", "row", i+1, "error", res.Err)
		}
	}

	if err := report.WriteFile(ro.OutputFile, table, results); err != nil {
		return err
	}
	logger.Info("report written", "file", ro.OutputFile, "evaluated", len(results)-failed, "errors", failed)
	return nil
}

func collectCVEs(t *report.Table, cveColumn string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, row := range t.Rows {
		id := t.Cell(row, cveColumn)
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func collectCVEsWithoutVector(t *report.Table, ro flags.RunOptions) []string {
	var out []string
	seen := make(map[string]bool)
	for _, row := range t.Rows {
		if t.Cell(row, ro.VectorColumn) != "" {
			continue
		}
		id := t.Cell(row, ro.CVEColumn)
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func fetchNVDVectors(logger *slog.Logger, cveIDs []string, apiKey string) map[string]string {
	out := make(map[string]string)
	client := nvd.NewClient(apiKey)
	throttle := 6 * time.Second
	if apiKey != "" {
		throttle = time.Second
	}
	for i, cveID := range cveIDs {
		if i > 0 {
			time.Sleep(throttle)
		}
		vec, err := client.FetchCVSSV3Vector(cveID)
		if err != nil {
			logger.Warn("nvd fetch failed", "cve", cveID, "error", err)
			continue
		}
		if vec != "" {
			out[cveID] = vec
		}
	}
	return out
}

func fetchEPSSData(logger *slog.Logger, cveIDs []string) map[string]epss.Data {
	data, err := epss.NewClient().FetchScores(cveIDs)
	if err != nil {
		logger.Warn("epss fetch failed", "error", err)
		return map[string]epss.Data{}
	}
	return data
}
