// Package mapping translates site-specific vulnerability labels into the
// vocabulary the decision engine recognizes. Every environment names exploit
// maturity and system criticality its own way; the vocabulary file is where
// operators pin their labels down. An unmapped label is a per-record error,
// never a silent default.
package mapping

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vocabulary maps site labels (case-insensitive) to engine tokens: exploit
// labels to an exploit-maturity token, criticality labels to a mission tier.
type Vocabulary struct {
	Exploit     map[string]string `yaml:"exploit"`
	Criticality map[string]string `yaml:"criticality"`
}

// Default returns a vocabulary that passes the engine's own tokens through,
// so a source that already speaks the standard vocabulary needs no file.
func Default() Vocabulary {
	passthrough := func(tokens ...string) map[string]string {
		m := make(map[string]string, len(tokens))
		for _, t := range tokens {
			m[t] = t
		}
		return m
	}
	v := Vocabulary{
		Exploit: passthrough(
			"active", "attacked", "high", "critical", "functional",
			"poc", "proof-of-concept", "available",
			"none",
		),
		Criticality: passthrough("high", "medium", "low"),
	}
	v.Exploit["unproven"] = "none"
	v.Exploit["unreported"] = "none"
	return v
}

// Load reads a vocabulary file and merges it over the defaults. Entries in
// the file win; labels and tokens are lower-cased on the way in.
func Load(path string) (Vocabulary, error) {
	v := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("read vocabulary: %w", err)
	}
	var file Vocabulary
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Vocabulary{}, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}
	for label, token := range file.Exploit {
		v.Exploit[strings.ToLower(label)] = strings.ToLower(token)
	}
	for label, token := range file.Criticality {
		v.Criticality[strings.ToLower(label)] = strings.ToLower(token)
	}
	return v, nil
}

// MapExploit resolves a site exploit label to an engine token.
func (v Vocabulary) MapExploit(label string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	if token, ok := v.Exploit[key]; ok {
		return token, nil
	}
	return "", fmt.Errorf("unrecognized exploit maturity label: %q", label)
}

// MapCriticality resolves a site criticality label to a mission tier token.
func (v Vocabulary) MapCriticality(label string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	if token, ok := v.Criticality[key]; ok {
		return token, nil
	}
	return "", fmt.Errorf("unrecognized criticality label: %q", label)
}
