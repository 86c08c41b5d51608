// Package cvss validates CVSS vector strings and extracts the base metrics
// and scores the report needs. Validation is delegated to pandatix/go-cvss;
// only v3.0/v3.1 vectors carry the six metrics the decision engine consumes,
// but version detection covers 2.0 through 4.0 so malformed input is named
// precisely.
package cvss

import (
	"fmt"
	"strings"

	gocvss20 "github.com/pandatix/go-cvss/20"
	gocvss30 "github.com/pandatix/go-cvss/30"
	gocvss31 "github.com/pandatix/go-cvss/31"
	gocvss40 "github.com/pandatix/go-cvss/40"
)

// Version detects and validates the CVSS version of a vector string.
// It returns one of "CVSS 2.0", "CVSS 3.0", "CVSS 3.1", or "CVSS 4.0".
func Version(vector string) (string, error) {
	switch {
	case strings.HasPrefix(vector, "CVSS:4.0"):
		if _, err := gocvss40.ParseVector(vector); err != nil {
			return "", fmt.Errorf("invalid CVSS 4.0 vector: %w", err)
		}
		return "CVSS 4.0", nil

	case strings.HasPrefix(vector, "CVSS:3.1"):
		if _, err := gocvss31.ParseVector(vector); err != nil {
			return "", fmt.Errorf("invalid CVSS 3.1 vector: %w", err)
		}
		return "CVSS 3.1", nil

	case strings.HasPrefix(vector, "CVSS:3.0"):
		if _, err := gocvss30.ParseVector(vector); err != nil {
			return "", fmt.Errorf("invalid CVSS 3.0 vector: %w", err)
		}
		return "CVSS 3.0", nil

	default:
		if _, err := gocvss20.ParseVector(vector); err != nil {
			return "", fmt.Errorf("unknown or invalid vector format: %w", err)
		}
		return "CVSS 2.0", nil
	}
}

// BaseScore validates the vector and returns its CVSS base score.
func BaseScore(vector string) (float64, error) {
	version, err := Version(vector)
	if err != nil {
		return 0, err
	}
	switch version {
	case "CVSS 4.0":
		v, _ := gocvss40.ParseVector(vector)
		return v.Score(), nil
	case "CVSS 3.1":
		v, _ := gocvss31.ParseVector(vector)
		return v.BaseScore(), nil
	case "CVSS 3.0":
		v, _ := gocvss30.ParseVector(vector)
		return v.BaseScore(), nil
	case "CVSS 2.0":
		v, _ := gocvss20.ParseVector(vector)
		return v.BaseScore(), nil
	default:
		return 0, fmt.Errorf("unsupported CVSS version: %s", version)
	}
}

// ParseVector validates a v3.0/v3.1 vector and splits it into a map of
// lower-cased metric keys to lower-cased values, e.g. {"ac": "l", "pr": "n"}.
func ParseVector(vector string) (map[string]string, error) {
	version, err := Version(vector)
	if err != nil {
		return nil, err
	}
	if version != "CVSS 3.0" && version != "CVSS 3.1" {
		return nil, fmt.Errorf("unsupported vector %q: need CVSS 3.0 or 3.1, got %s", vector, version)
	}
	trimmed := strings.TrimPrefix(strings.TrimPrefix(vector, "CVSS:3.1/"), "CVSS:3.0/")
	m := make(map[string]string)
	for _, part := range strings.Split(trimmed, "/") {
		kv := strings.Split(part, ":")
		if len(kv) == 2 {
			m[strings.ToLower(kv[0])] = strings.ToLower(kv[1])
		}
	}
	return m, nil
}

// SeverityRating maps a CVSS score to its qualitative rating band.
func SeverityRating(score float64) string {
	switch {
	case score == 0.0:
		return "NONE"
	case score >= 0.1 && score <= 3.9:
		return "LOW"
	case score >= 4.0 && score <= 6.9:
		return "MEDIUM"
	case score >= 7.0 && score <= 8.9:
		return "HIGH"
	case score >= 9.0 && score <= 10.0:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}
