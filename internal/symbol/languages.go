package symbol

import (
	"sync"

	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
)

var builtinOnce sync.Once

func registerBuiltins() {
	builtinOnce.Do(func() {
		Register(&Language{
			Name:           "Go",
			TreeSitterLang: golang.GetLanguage(),
			Extensions:     []string{".go"},
			Scopes: map[string]string{
				"function_declaration": "name",
				"method_declaration":   "name",
				"type_spec":            "name",
			},
		})
		Register(&Language{
			Name:           "Python",
			TreeSitterLang: python.GetLanguage(),
			Extensions:     []string{".py", ".pyw"},
			Scopes: map[string]string{
				"function_definition": "name",
				"class_definition":    "name",
			},
		})
		Register(&Language{
			Name:           "JavaScript",
			TreeSitterLang: javascript.GetLanguage(),
			Extensions:     []string{".js", ".mjs", ".cjs", ".jsx"},
			Scopes: map[string]string{
				"function_declaration": "name",
				"class_declaration":    "name",
				"method_definition":    "name",
			},
		})
		Register(&Language{
			Name:           "Rust",
			TreeSitterLang: rust.GetLanguage(),
			Extensions:     []string{".rs"},
			Scopes: map[string]string{
				"function_item": "name",
				"impl_item":     "type",
				"struct_item":   "name",
				"enum_item":     "name",
				"trait_item":    "name",
				"mod_item":      "name",
			},
		})
	})
}
