package openapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Format selects the textual rendering of a document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned by Marshal for a format other than yaml or json.
var ErrUnknownFormat = errors.New("openapi: unknown document format")

// Marshal renders the document as YAML (the default when format is empty)
// or indented JSON. Output is stable: paths and component names are sorted,
// properties and responses follow declaration order.
func Marshal(doc *Document, format Format) ([]byte, error) {
	switch format {
	case "", FormatYAML:
		return MarshalYAML(doc)
	case FormatJSON:
		return marshalJSON(doc, "  ")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// MarshalYAML renders v as block-style YAML. The value is first encoded as
// JSON so that json struct tags and custom JSON marshalers decide key names
// and order, then re-emitted through a yaml.Node tree.
func MarshalYAML(v any) ([]byte, error) {
	data, err := marshalJSON(v, "")
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to decode intermediate JSON: %w", err)
	}
	plainStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func marshalJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// plainStyle drops the flow and quoting styles inherited from the JSON
// source. The encoder still quotes strings whose plain form would resolve
// to another type (e.g. the response key "200").
func plainStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		plainStyle(c)
	}
}
