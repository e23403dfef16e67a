package compiler

import (
	"fmt"
	"strings"
)

// LabelTable is the case-insensitive name-to-address mapping populated
// during pass 1 and read (never mutated) during pass 2. It satisfies
// operand.Labels.
type LabelTable struct {
	values map[string]int32
}

// NewLabelTable returns an empty table.
func NewLabelTable() *LabelTable {
	return &LabelTable{values: make(map[string]int32)}
}

// Lookup resolves a label name case-insensitively.
func (t *LabelTable) Lookup(name string) (int32, bool) {
	v, ok := t.values[strings.ToLower(name)]
	return v, ok
}

// Define binds name to value. A second definition of the same
// case-insensitive name is an error, not a redefinition.
func (t *LabelTable) Define(name string, value int32) error {
	key := strings.ToLower(name)
	if _, exists := t.values[key]; exists {
		return fmt.Errorf("duplicate label %q", name)
	}
	t.values[key] = value
	return nil
}
