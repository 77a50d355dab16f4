package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wrp-ops/opsconsole/internal/app/access"
)

// accessFile is the YAML shape of ACCESS_CONFIG:
//
//	fallback: /ops
//	ops: [dispatcher, billing, admin]
//	sections:
//	  billing: [billing, admin]
type accessFile struct {
	Fallback string              `yaml:"fallback"`
	Ops      []string            `yaml:"ops"`
	Sections map[string][]string `yaml:"sections"`
}

// LoadAccessRules returns access.DefaultRules when path is empty, otherwise the
// defaults overlaid with the file's values.
func LoadAccessRules(path string) (access.Rules, error) {
	if path == "" {
		return access.DefaultRules(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return access.Rules{}, fmt.Errorf("open access config: %w", err)
	}
	defer f.Close()
	rules, err := ParseAccessRules(f)
	if err != nil {
		return access.Rules{}, fmt.Errorf("access config %s: %w", path, err)
	}
	return rules, nil
}

// ParseAccessRules decodes YAML access rules. Unknown keys are rejected.
func ParseAccessRules(r io.Reader) (access.Rules, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return access.Rules{}, err
	}
	rules := access.DefaultRules()
	if len(bytes.TrimSpace(raw)) == 0 {
		return rules, nil
	}

	var file accessFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return access.Rules{}, fmt.Errorf("decode: %w", err)
	}

	if file.Fallback != "" {
		rules.Fallback = file.Fallback
	}
	if file.Ops != nil {
		rules.Ops = file.Ops
	}
	if len(file.Sections) > 0 {
		rules.Sections = make(map[access.Section][]string, len(file.Sections))
		for name, roles := range file.Sections {
			rules.Sections[access.Section(name)] = roles
		}
	}
	return rules, nil
}
