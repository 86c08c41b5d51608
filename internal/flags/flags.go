package flags

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// RunOptions holds the input/output paths, column selection, and feature
// flags for a run.
type RunOptions struct {
	InputFile  string
	OutputFile string
	Mapping    string

	VectorColumn      string
	ExploitColumn     string
	CriticalityColumn string
	CVEColumn         string

	UseEPSS   bool
	FetchCVSS bool
	NvdAPIKey string
}

// Parse parses CLI flags and the input-file argument into run options.
func Parse() (RunOptions, error) {
	output := flag.String("o", "", "Output file (default: input file with _ssvc_report.csv suffix)")
	mappingFile := flag.String("mapping", "", "YAML file mapping site exploit/criticality labels onto the engine vocabulary")
	vectorCol := flag.String("vector-col", "CVSS Vector", "Column holding the CVSS v3 vector string")
	exploitCol := flag.String("exploit-col", "Exploit Maturity", "Column holding the exploit maturity label")
	criticalityCol := flag.String("criticality-col", "Criticality", "Column holding the system criticality label")
	cveCol := flag.String("cve-col", "CVE", "Column holding the CVE ID (used by -epss and -fetch-cvss)")
	useEPSS := flag.Bool("epss", false, "Fetch EPSS per CVE and derive exploit maturity for rows missing a label")
	fetchCVSS := flag.Bool("fetch-cvss", false, "For rows with no CVSS vector, fetch one from NVD by CVE ID (rate limited without API key)")
	nvdAPIKey := flag.String("nvd-api-key", "", "NVD API key for higher rate limits; or set NVD_API_KEY env")
	flag.Parse()

	if flag.NArg() != 1 {
		return RunOptions{}, fmt.Errorf("usage: %s [flags] <vulnerabilities.csv>", os.Args[0])
	}
	input := flag.Arg(0)
	if !strings.HasSuffix(strings.ToLower(input), ".csv") {
		return RunOptions{}, fmt.Errorf("input must be a .csv file, got %q", input)
	}
	out := *output
	if out == "" {
		out = input[:len(input)-len(".csv")] + "_ssvc_report.csv"
	}
	apiKey := *nvdAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("NVD_API_KEY")
	}
	return RunOptions{
		InputFile:         input,
		OutputFile:        out,
		Mapping:           *mappingFile,
		VectorColumn:      *vectorCol,
		ExploitColumn:     *exploitCol,
		CriticalityColumn: *criticalityCol,
		CVEColumn:         *cveCol,
		UseEPSS:           *useEPSS,
		FetchCVSS:         *fetchCVSS,
		NvdAPIKey:         apiKey,
	}, nil
}
