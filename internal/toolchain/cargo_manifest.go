package toolchain

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"

	"vscodeconfigurator/internal/clierror"
)

type bytePatch struct {
	start int
	end   int
	repl  []byte
}

func applyBytePatches(src []byte, patches []bytePatch) []byte {
	if len(patches) == 0 {
		return src
	}
	// Apply from the end so earlier offsets stay valid.
	sort.Slice(patches, func(i, j int) bool {
		return patches[i].start > patches[j].start
	})

	out := append([]byte(nil), src...)
	for _, p := range patches {
		out = append(out[:p.start], append(p.repl, out[p.end:]...)...)
	}
	return out
}

// tomlString encodes s as a basic string. Values that need escaping are
// left to go-toml.
func tomlString(s string) ([]byte, error) {
	plain := strings.IndexFunc(s, func(r rune) bool {
		return r < 0x20 || r == 0x7f || r == '"' || r == '\\'
	}) < 0
	if plain {
		return []byte(`"` + s + `"`), nil
	}

	encoded, err := toml.Marshal(map[string]string{"_": s})
	if err != nil {
		return nil, err
	}
	eq := bytes.IndexByte(encoded, '=')
	if eq < 0 {
		return nil, fmt.Errorf("unexpected toml encoding of %q", s)
	}
	return bytes.TrimSpace(encoded[eq+1:]), nil
}

func detectNewline(data []byte) string {
	if bytes.Contains(data, []byte("\r\n")) {
		return "\r\n"
	}
	return "\n"
}

func keyParts(it unstable.Iterator) (parts []string, end int) {
	for it.Next() {
		n := it.Node()
		if n == nil || !n.Valid() {
			continue
		}
		parts = append(parts, string(n.Data))
		end = int(n.Raw.Offset + n.Raw.Length)
	}
	return parts, end
}

func findLineStart(data []byte, offset int) int {
	for offset > 0 && data[offset-1] != '\n' {
		offset--
	}
	return offset
}

// skipBlank advances past whitespace, newlines, commas and comments and
// reports whether a newline or a comma was crossed.
func skipBlank(data []byte, i int) (next int, newline, comma bool) {
	for i < len(data) {
		switch data[i] {
		case ' ', '\t', '\r':
			i++
		case '\n':
			newline = true
			i++
		case ',':
			comma = true
			i++
		case '#':
			for i < len(data) && data[i] != '\n' {
				i++
			}
		default:
			return i, newline, comma
		}
	}
	return i, newline, comma
}

// membersArray locates the `members` array of the [workspace] table.
type membersArray struct {
	found bool

	open       int // offset of '['
	close      int // offset of ']'
	lastStart  int // first byte of the last element, -1 when empty
	lastEnd    int // byte after the last element
	trailing   bool
	multiline  bool
	tableStart int // start of the [workspace] header line, -1 when absent
	tableEnd   int
}

func locateMembers(data []byte) (membersArray, error) {
	loc := membersArray{lastStart: -1, tableStart: -1}

	var parser unstable.Parser
	parser.KeepComments = true
	parser.Reset(data)

	var table []string
	for parser.NextExpression() {
		expr := parser.Expression()
		if expr == nil || !expr.Valid() {
			continue
		}

		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			var keyEnd int
			table, keyEnd = keyParts(expr.Key())
			header := findLineStart(data, keyEnd)
			if loc.tableStart >= 0 && loc.tableEnd < 0 {
				loc.tableEnd = header
			}
			if expr.Kind == unstable.Table && strings.Join(table, ".") == "workspace" {
				loc.tableStart = header
				loc.tableEnd = -1
			}
		case unstable.KeyValue:
			parts, keyEnd := keyParts(expr.Key())
			full := strings.Join(append(append([]string(nil), table...), parts...), ".")
			if full != "workspace.members" {
				continue
			}
			value := expr.Value()
			if value == nil || value.Kind != unstable.Array {
				return loc, fmt.Errorf("workspace.members is not an array")
			}

			eq := bytes.IndexByte(data[keyEnd:], '=')
			if eq < 0 {
				return loc, fmt.Errorf("workspace.members has no value")
			}
			loc.open = bytes.IndexByte(data[keyEnd+eq:], '[') + keyEnd + eq
			loc.lastEnd = loc.open + 1

			children := value.Children()
			for children.Next() {
				n := children.Node()
				if n.Kind != unstable.String {
					continue
				}
				loc.lastStart = int(n.Raw.Offset)
				loc.lastEnd = int(n.Raw.Offset + n.Raw.Length)
			}

			var newline, comma bool
			loc.close, newline, comma = skipBlank(data, loc.lastEnd)
			if loc.close >= len(data) || data[loc.close] != ']' {
				return loc, fmt.Errorf("workspace.members is not closed")
			}
			loc.multiline = newline
			loc.trailing = comma && loc.lastStart >= 0
			loc.found = true
		}
	}
	if err := parser.Error(); err != nil {
		return loc, err
	}
	if loc.tableStart >= 0 && loc.tableEnd < 0 {
		loc.tableEnd = len(data)
	}
	return loc, nil
}

// indentOf returns the whitespace before offset when it starts its line.
func indentOf(data []byte, offset int) (string, bool) {
	start := findLineStart(data, offset)
	prefix := data[start:offset]
	if len(bytes.TrimLeft(prefix, " \t")) != 0 {
		return "", false
	}
	return string(prefix), true
}

// appendWorkspaceMember inserts member into workspace.members and leaves
// the rest of the manifest byte for byte as it was.
func appendWorkspaceMember(data []byte, manifest, member string) ([]byte, error) {
	loc, err := locateMembers(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", manifest, err)
	}
	value, err := tomlString(member)
	if err != nil {
		return nil, err
	}
	newline := detectNewline(data)

	var patches []bytePatch
	switch {
	case !loc.found:
		if loc.tableStart < 0 {
			return nil, clierror.Newf(clierror.InvalidDocument,
				"'%s' declares the workspace without a [workspace] table header.", manifest)
		}
		at := tableInsertOffset(data, loc.tableStart, loc.tableEnd)
		repl := "members = [" + string(value) + "]" + newline
		if at > 0 && data[at-1] != '\n' {
			repl = newline + repl
		}
		patches = append(patches, bytePatch{start: at, end: at, repl: []byte(repl)})

	case loc.multiline:
		indent := "    "
		if loc.lastStart >= 0 {
			if in, ok := indentOf(data, loc.lastStart); ok {
				indent = in
			}
		}
		if loc.lastStart >= 0 && !loc.trailing {
			patches = append(patches, bytePatch{start: loc.lastEnd, end: loc.lastEnd, repl: []byte(",")})
		}
		at := findLineStart(data, loc.close)
		patches = append(patches, bytePatch{start: at, end: at, repl: []byte(indent + string(value) + "," + newline)})

	case loc.lastStart >= 0:
		patches = append(patches, bytePatch{start: loc.lastEnd, end: loc.lastEnd, repl: append([]byte(", "), value...)})

	default:
		patches = append(patches, bytePatch{start: loc.open + 1, end: loc.close, repl: value})
	}
	return applyBytePatches(data, patches), nil
}

// tableInsertOffset returns the offset just after the last non-blank line
// of the table spanning [start, end).
func tableInsertOffset(data []byte, start, end int) int {
	trim := end
	for trim > start {
		b := data[trim-1]
		if b != ' ' && b != '\t' && b != '\r' && b != '\n' {
			break
		}
		trim--
	}
	nl := bytes.IndexByte(data[trim:end], '\n')
	if nl < 0 {
		return end
	}
	return trim + nl + 1
}
