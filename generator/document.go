package generator

import (
	"fmt"
	"strings"

	"github.com/lucasefe/typescriptify/schema"
	"github.com/lucasefe/typescriptify/typemap"
)

const indent = "    "

// Field is one property of an interface.
type Field struct {
	// Name is the property name as rendered (after case styling).
	Name string
	// Type is the TypeScript type, or the related interface name.
	Type typemap.Type
	// Relation is the related model for relation fields, empty otherwise.
	Relation schema.ModelID
}

// InterfaceBlock is one generated `interface Name { ... }` unit.
type InterfaceBlock struct {
	// Model is the model the block was generated from.
	Model schema.ModelID
	// Name is the interface name.
	Name string
	// Fields are the properties in column order.
	Fields []Field
}

// Lines renders the block as text lines without trailing newlines.
func (b InterfaceBlock) Lines() []string {
	lines := make([]string, 0, len(b.Fields)+2)
	lines = append(lines, fmt.Sprintf("interface %s {", b.Name))
	for _, field := range b.Fields {
		lines = append(lines, fmt.Sprintf("%s%s: %s;", indent, propertyKey(field.Name), field.Type))
	}
	lines = append(lines, "}")
	return lines
}

// String renders the block.
func (b InterfaceBlock) String() string {
	return strings.Join(b.Lines(), "\n")
}

// Document is the result of one generation run. Blocks are in post-order:
// every related interface precedes the first interface that uses it, in
// discovery order, and the requested model comes last.
type Document struct {
	Blocks []InterfaceBlock
}

// Root returns the block of the requested model.
func (d *Document) Root() InterfaceBlock {
	if len(d.Blocks) == 0 {
		return InterfaceBlock{}
	}
	return d.Blocks[len(d.Blocks)-1]
}

// Block returns the block generated for the given model.
func (d *Document) Block(id schema.ModelID) (InterfaceBlock, bool) {
	for _, block := range d.Blocks {
		if block.Model == id {
			return block, true
		}
	}
	return InterfaceBlock{}, false
}

// String renders all blocks separated by one blank line, without a
// trailing newline.
func (d *Document) String() string {
	var builder strings.Builder
	for i, block := range d.Blocks {
		if i > 0 {
			builder.WriteString("\n\n")
		}
		builder.WriteString(block.String())
	}
	return builder.String()
}

// Merge combines documents into one, keeping the first block generated for
// each model. Dependencies still precede their dependents.
func Merge(docs ...*Document) *Document {
	merged := &Document{}
	seen := make(map[schema.ModelID]bool)
	for _, doc := range docs {
		for _, block := range doc.Blocks {
			if seen[block.Model] {
				continue
			}
			seen[block.Model] = true
			merged.Blocks = append(merged.Blocks, block)
		}
	}
	return merged
}

// propertyKey quotes names that are not valid identifiers, such as
// kebab-cased ones.
func propertyKey(name string) string {
	if isIdentifier(name) {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", `\'`) + "'"
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
