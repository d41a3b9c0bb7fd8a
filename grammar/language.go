package grammar

import (
	_ "embed"
	"encoding/json"
	"sort"
)

// LanguageVersion is the ABI version of the generated parser this scanner is built for.
const LanguageVersion = 14

//go:embed node-types.json
var nodeTypes []byte

// Language is an opaque handle describing the compiled Veld grammar as seen by host bindings.
type Language struct {
	name    string
	version int
}

var veld = &Language{name: "veld", version: LanguageVersion}

// Veld returns the language handle. The handle is immutable and shared.
func Veld() *Language {
	return veld
}

func (l *Language) Name() string {
	return l.name
}

func (l *Language) Version() int {
	return l.version
}

// TokenCount returns the number of token kinds the external scanner knows.
func (l *Language) TokenCount() int {
	return int(KindCount)
}

// NodeTypes returns a copy of the static node type metadata blob (node-types.json).
func (l *Language) NodeTypes() []byte {
	result := make([]byte, len(nodeTypes))
	copy(result, nodeTypes)
	return result
}

// FieldType is a node type reference inside node type metadata.
type FieldType struct {
	Type  string `json:"type"`
	Named bool   `json:"named"`
}

// Field describes a named child slot of a node type.
type Field struct {
	Multiple bool        `json:"multiple"`
	Required bool        `json:"required"`
	Types    []FieldType `json:"types"`
}

// NodeType is a decoded node-types.json entry.
type NodeType struct {
	Type     string           `json:"type"`
	Named    bool             `json:"named"`
	Fields   map[string]Field `json:"fields,omitempty"`
	Subtypes []FieldType      `json:"subtypes,omitempty"`
}

// NodeTypeInfo decodes node type metadata.
func (l *Language) NodeTypeInfo() ([]NodeType, error) {
	var result []NodeType
	e := json.Unmarshal(nodeTypes, &result)
	return result, e
}

// FieldNames returns field names of the named node type or nil if the type is unknown.
func (l *Language) FieldNames(nodeType string) ([]string, error) {
	nts, e := l.NodeTypeInfo()
	if e != nil {
		return nil, e
	}

	for _, nt := range nts {
		if nt.Type == nodeType && nt.Named {
			result := make([]string, 0, len(nt.Fields))
			for name := range nt.Fields {
				result = append(result, name)
			}
			sort.Strings(result)
			return result, nil
		}
	}
	return nil, nil
}
