// Package ingest turns taxonomy and vendor payloads into the canonical forms
// the scoring engine works on. Documents are decoded into yaml.Node trees so
// that mapping order survives for both JSON and YAML input.
package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidDocument means the payload is not well-formed structured data.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrUnsupportedShape means the payload decoded but has a layout that
	// cannot be interpreted.
	ErrUnsupportedShape = errors.New("unsupported document shape")
	// ErrUnsupportedFormat means the file extension is not recognised.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatFromPath picks the decoder from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// decode parses data and returns its root node, or nil for an empty document.
// JSON goes through encoding/json, since YAML rejects some valid JSON (escapes
// such as \/ and keys over 1024 characters); the result is built as the same
// yaml.Node tree the YAML path produces.
func decode(data []byte, format Format) (*yaml.Node, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	var root *yaml.Node
	if format == JSON {
		if !json.Valid(data) {
			return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidDocument)
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		n, err := jsonNode(dec)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		root = n
	} else {
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
			return nil, nil
		}
		root = deref(doc.Content[0])
	}
	if isNull(root) {
		return nil, nil
	}
	return root, nil
}

// jsonNode reads the next JSON value from dec, keeping object key order.
func jsonNode(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if t == '{' {
			n.Kind, n.Tag = yaml.MappingNode, "!!map"
		}
		for dec.More() {
			if n.Kind == yaml.MappingNode {
				key, err := dec.Token()
				if err != nil {
					return nil, err
				}
				k, ok := key.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v is not a string", key)
				}
				n.Content = append(n.Content, scalarNode("!!str", k))
			}
			v, err := jsonNode(dec)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return n, nil
	case string:
		return scalarNode("!!str", t), nil
	case json.Number:
		if strings.ContainsAny(t.String(), ".eE") {
			return scalarNode("!!float", t.String()), nil
		}
		return scalarNode("!!int", t.String()), nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(t)), nil
	case nil:
		return scalarNode("!!null", "null"), nil
	default:
		return nil, fmt.Errorf("unexpected JSON token %v", tok)
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

// field looks up key in a mapping node.
func field(m *yaml.Node, key string) (*yaml.Node, bool) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return deref(m.Content[i+1]), true
		}
	}
	return nil, false
}

// scalarText returns the text of a non-null scalar.
func scalarText(n *yaml.Node) (string, bool) {
	if n == nil || n.Kind != yaml.ScalarNode || isNull(n) {
		return "", false
	}
	return n.Value, true
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "empty"
	}
}

// compact renders a node on one line for diagnostics.
func compact(n *yaml.Node) string {
	if n == nil {
		return "null"
	}
	cp := *n
	cp.Style |= yaml.FlowStyle
	out, err := yaml.Marshal(&cp)
	if err != nil {
		return "<" + kindName(n.Kind) + ">"
	}
	s := strings.TrimSpace(string(out))
	if len(s) > 200 {
		s = s[:197] + "..."
	}
	return s
}
