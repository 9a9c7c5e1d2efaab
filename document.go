package naval

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DecodeJSON decodes a JSON object into a Document. Numbers decode as
// float64; pair fields with ToInt when an integer is wanted.
func DecodeJSON(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("naval: decoding JSON document: %w", err)
	}
	return doc, nil
}

// DecodeYAML decodes a YAML mapping into a Document.
func DecodeYAML(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("naval: decoding YAML document: %w", err)
	}
	return doc, nil
}

// ValidateJSON decodes a JSON object and validates it in one step.
func (s *Schema) ValidateJSON(data []byte) (Document, error) {
	doc, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return s.Validate(doc)
}

// ValidateYAML decodes a YAML mapping and validates it in one step.
func (s *Schema) ValidateYAML(data []byte) (Document, error) {
	doc, err := DecodeYAML(data)
	if err != nil {
		return nil, err
	}
	return s.Validate(doc)
}
