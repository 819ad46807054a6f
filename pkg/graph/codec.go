package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/forcechart/pkg/errors"
	"github.com/matzehuels/forcechart/pkg/flow"
)

// =============================================================================
// Serialization API
// =============================================================================

// Marshal encodes g as compact JSON, the form kept in storage.
func Marshal(g *flow.Graph) ([]byte, error) {
	data, err := json.Marshal(Serialize(g))
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// MarshalIndent encodes g as two-space indented JSON, the export form.
func MarshalIndent(g *flow.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal decodes and validates data and returns a fresh graph.
func Unmarshal(data []byte) (*flow.Graph, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Deserialize(doc)
}

// Write encodes g as indented JSON to w.
func Write(g *flow.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Serialize(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes and validates a document from r.
func Read(r io.Reader) (*flow.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Unmarshal(data)
}

// WriteFile writes g as an indented JSON file.
// The file is created with 0644 permissions.
func WriteFile(g *flow.Graph, path string) error {
	if err := errors.ValidateFilePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads and validates a JSON document from path.
func ReadFile(path string) (*flow.Graph, error) {
	if err := errors.ValidateFilePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "no such file: %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
