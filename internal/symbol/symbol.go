// Package symbol names the code that encloses a line, such as the function
// or method it belongs to, using tree-sitter grammars.
package symbol

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/footsteps/internal/logger"
)

// Resolver parses documents and answers scope queries. It is not safe for
// concurrent use.
type Resolver struct {
	parser *sitter.Parser
}

// NewResolver creates a resolver.
func NewResolver() *Resolver {
	return &Resolver{parser: sitter.NewParser()}
}

// Supported reports whether path has a known language.
func Supported(path string) bool {
	return ForFile(path) != nil
}

// Scopes returns, for each requested line, the dotted name of the scopes
// enclosing it, e.g. "Tracker.ReportEdit". Lines outside any named scope are
// left out. Files in unknown languages give an empty map.
func (r *Resolver) Scopes(ctx context.Context, path string, src []byte, lines []int) (map[int]string, error) {
	out := make(map[int]string)
	lang := ForFile(path)
	if lang == nil || len(lines) == 0 {
		return out, nil
	}

	r.parser.SetLanguage(lang.TreeSitterLang)
	tree, err := r.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	srcLines := strings.Split(string(src), "\n")
	for _, line := range lines {
		if line < 0 || line >= len(srcLines) {
			continue
		}
		col := len(srcLines[line]) - len(strings.TrimLeft(srcLines[line], " \t"))
		p := sitter.Point{Row: uint32(line), Column: uint32(col)}
		node := root.NamedDescendantForPointRange(p, p)
		if name := scopeName(lang, node, src); name != "" {
			out[line] = name
		}
	}
	logger.DebugTagf("symbol", "Resolved %d/%d scopes in %s", len(out), len(lines), path)
	return out, nil
}

// scopeName walks from node to the root collecting the names of scopes.
func scopeName(lang *Language, node *sitter.Node, src []byte) string {
	var parts []string
	for n := node; n != nil; n = n.Parent() {
		field, ok := lang.Scopes[n.Type()]
		if !ok {
			continue
		}
		nameNode := n.ChildByFieldName(field)
		if nameNode == nil {
			continue
		}
		name := nameNode.Content(src)
		if n.Type() == "method_declaration" {
			if recv := receiverType(n, src); recv != "" {
				name = recv + "." + name
			}
		}
		parts = append(parts, name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// receiverType returns the type name of a Go method receiver.
func receiverType(method *sitter.Node, src []byte) string {
	recv := method.ChildByFieldName("receiver")
	if recv == nil {
		return ""
	}
	var find func(n *sitter.Node) string
	find = func(n *sitter.Node) string {
		if n.Type() == "type_identifier" {
			return n.Content(src)
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if name := find(n.NamedChild(i)); name != "" {
				return name
			}
		}
		return ""
	}
	return find(recv)
}
