package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/schema"
)

// readFormFile loads a form definition from a YAML or JSON file. YAML input
// goes through a JSON round trip so both formats share the same field names.
func readFormFile(path string) (schema.Form, error) {
	if path == "" {
		return schema.Form{}, fmt.Errorf("missing -form")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return schema.Form{}, fmt.Errorf("read form: %w", err)
	}

	if isYAML(path) {
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return schema.Form{}, fmt.Errorf("parse form: %w", err)
		}
		raw, err = json.Marshal(doc)
		if err != nil {
			return schema.Form{}, fmt.Errorf("parse form: %w", err)
		}
	}

	form, err := schema.DecodeForm(raw)
	if err != nil {
		return schema.Form{}, fmt.Errorf("parse form: %w", err)
	}
	return form, nil
}

func writeFormFile(path string, form schema.Form) error {
	raw, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return fmt.Errorf("encode form: %w", err)
	}

	if isYAML(path) {
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("encode form: %w", err)
		}
		raw, err = yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode form: %w", err)
		}
	}

	if path == "" {
		_, err := os.Stdout.Write(append(raw, '\n'))
		return err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write form: %w", err)
	}
	fmt.Printf("written to %s\n", path)
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
