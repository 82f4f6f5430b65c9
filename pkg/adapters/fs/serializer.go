package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/bindery/pkg/core"
)

// Serializer defines how to read and write a specific file format.
type Serializer interface {
	// Parse reads from r and returns a Binding (ID left empty).
	Parse(r io.Reader) (*core.Binding, error)
	// Serialize converts the Binding to bytes.
	Serialize(b core.Binding) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers.
// Markdown is the corpus format; YAML and JSON cover registry/index files.
func DefaultSerializers(strict bool) map[string]Serializer {
	return map[string]Serializer{
		".md":   NewMarkdownSerializer(strict),
		".yaml": NewYAMLSerializer(strict),
		".yml":  NewYAMLSerializer(strict),
		".json": NewJSONSerializer(strict),
	}
}

// --- Markdown Serializer ---

// MarkdownSerializer handles binding documents: YAML front matter between
// "---" fences followed by the markdown body.
type MarkdownSerializer struct {
	// Strict enables strict number parsing (as json.Number) to avoid precision loss.
	Strict bool
}

// NewMarkdownSerializer creates a new Markdown serializer.
func NewMarkdownSerializer(strict bool) *MarkdownSerializer {
	return &MarkdownSerializer{Strict: strict}
}

func (s *MarkdownSerializer) Parse(r io.Reader) (*core.Binding, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	b := &core.Binding{Metadata: make(core.Metadata)}

	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		b.Content = string(data)
		return b, nil
	}

	rest := data[3:]
	parts := bytes.SplitN(rest, []byte("---"), 2)
	if len(parts) == 1 {
		return nil, errors.New("frontmatter started but no closing delimiter found")
	}

	if err := yaml.Unmarshal(parts[0], &b.Metadata); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	b.Content = strings.TrimPrefix(string(parts[1]), "\n")
	b.Content = strings.TrimPrefix(b.Content, "\r\n")

	if s.Strict {
		b.Metadata = recursiveNormalize(b.Metadata).(core.Metadata)
	}

	return b, nil
}

func (s *MarkdownSerializer) Serialize(b core.Binding) ([]byte, error) {
	var buf bytes.Buffer
	if len(b.Metadata) > 0 {
		buf.WriteString("---\n")
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(b.Metadata); err != nil {
			return nil, err
		}
		encoder.Close()
		buf.WriteString("---\n")
	}
	buf.WriteString(b.Content)
	return buf.Bytes(), nil
}

// --- YAML Serializer ---

type YAMLSerializer struct {
	Strict bool
}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer(strict bool) *YAMLSerializer {
	return &YAMLSerializer{Strict: strict}
}

func (s *YAMLSerializer) Parse(r io.Reader) (*core.Binding, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var payload map[string]interface{}
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	b := &core.Binding{Metadata: payload}
	if b.Metadata == nil {
		b.Metadata = make(core.Metadata)
	}

	if c, ok := payload["content"].(string); ok {
		b.Content = c
		delete(b.Metadata, "content")
	}

	if s.Strict {
		b.Metadata = recursiveNormalize(b.Metadata).(core.Metadata)
	}

	return b, nil
}

func (s *YAMLSerializer) Serialize(b core.Binding) ([]byte, error) {
	payload := make(map[string]interface{}, len(b.Metadata)+1)
	for k, v := range b.Metadata {
		payload[k] = v
	}
	payload["content"] = b.Content
	return yaml.Marshal(payload)
}

// --- JSON Serializer ---

type JSONSerializer struct {
	Strict bool
}

// NewJSONSerializer creates a new JSON serializer.
// Strict mode parses numbers as json.Number to avoid float64 precision loss.
func NewJSONSerializer(strict bool) *JSONSerializer {
	return &JSONSerializer{Strict: strict}
}

func (s *JSONSerializer) Parse(r io.Reader) (*core.Binding, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var payload map[string]interface{}
	decoder := json.NewDecoder(bytes.NewReader(data))
	if s.Strict {
		decoder.UseNumber()
	}
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	b := &core.Binding{Metadata: payload}
	if b.Metadata == nil {
		b.Metadata = make(core.Metadata)
	}

	if c, ok := payload["content"].(string); ok {
		b.Content = c
		delete(b.Metadata, "content")
	}

	return b, nil
}

func (s *JSONSerializer) Serialize(b core.Binding) ([]byte, error) {
	payload := make(map[string]interface{}, len(b.Metadata)+1)
	for k, v := range b.Metadata {
		payload[k] = v
	}
	payload["content"] = b.Content
	return json.MarshalIndent(payload, "", "  ")
}

// recursiveNormalize traverses the map/slice and converts numeric types to json.Number.
// This keeps YAML and Markdown front matter consistent with JSON strict mode.
func recursiveNormalize(val interface{}) interface{} {
	switch v := val.(type) {
	case core.Metadata:
		m := make(core.Metadata)
		for k, val := range v {
			m[k] = recursiveNormalize(val)
		}
		return m
	case map[string]interface{}:
		m := make(map[string]interface{})
		for k, val := range v {
			m[k] = recursiveNormalize(val)
		}
		return m
	case []interface{}:
		l := make([]interface{}, len(v))
		for i, val := range v {
			l[i] = recursiveNormalize(val)
		}
		return l
	case int:
		return json.Number(fmt.Sprintf("%d", v))
	case int32:
		return json.Number(fmt.Sprintf("%d", v))
	case int64:
		return json.Number(fmt.Sprintf("%d", v))
	case float64:
		return json.Number(fmt.Sprintf("%v", v))
	default:
		return v
	}
}
