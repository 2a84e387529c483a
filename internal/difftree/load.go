package difftree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrorPayload is the body a comparator returns instead of a tree.
type ErrorPayload struct {
	Error string `json:"error"`
}

// Decode reads a fully materialized diff tree. A top-level {"error": "..."}
// object is reported as an error rather than an empty tree.
func Decode(r io.Reader) ([]Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data)
}

func DecodeBytes(data []byte) ([]Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty diff tree document")
	}

	if trimmed[0] == '{' {
		var payload ErrorPayload
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return nil, fmt.Errorf("parse diff tree: %w", err)
		}
		if payload.Error == "" {
			return nil, errors.New("parse diff tree: expected a JSON array of nodes")
		}
		return nil, fmt.Errorf("comparator error: %s", payload.Error)
	}

	var nodes []Node
	if err := json.Unmarshal(trimmed, &nodes); err != nil {
		return nil, fmt.Errorf("parse diff tree: %w", err)
	}
	if nodes == nil {
		nodes = []Node{}
	}
	return nodes, nil
}

func LoadFile(path string) ([]Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	nodes, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nodes, nil
}
