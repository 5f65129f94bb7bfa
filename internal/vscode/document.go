// Package vscode reads and patches the .vscode/tasks.json and
// .vscode/settings.json files of a workspace.
//
// The documents are decoded into typed records. Members the records do not
// model are kept verbatim and written back untouched.
package vscode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// members is a JSON object whose values are kept as raw JSON.
type members map[string]json.RawMessage

// take decodes and removes key from m. It reports whether key was present.
func (m members) take(key string, v any) (bool, error) {
	raw, ok := m[key]
	if !ok {
		return false, nil
	}
	delete(m, key)
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("member %q: %w", key, err)
	}
	return true, nil
}

// put encodes v under key.
func (m members) put(key string, v any) error {
	raw, err := marshal(v)
	if err != nil {
		return err
	}
	m[key] = raw
	return nil
}

func (m members) clone() members {
	out := make(members, len(m)+4)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// marshal is json.Marshal without HTML escaping, so "<", ">" and "&" in
// task commands survive a round trip.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// writeDocument writes v as indented JSON with a trailing newline. The file
// is replaced through a rename so a failed write never leaves half a
// document behind.
func writeDocument(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
