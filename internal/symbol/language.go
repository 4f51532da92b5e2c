package symbol

import (
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/footsteps/internal/logger"
)

// Language describes how to find named scopes in one tree-sitter grammar.
type Language struct {
	// Name is the display name of the language.
	Name string

	// TreeSitterLang is the tree-sitter grammar.
	TreeSitterLang *sitter.Language

	// Extensions are the file extensions, with dot, mapped to this language.
	Extensions []string

	// Scopes maps node types that open a named scope to the field holding
	// the name, usually "name".
	Scopes map[string]string
}

var registry struct {
	sync.RWMutex
	languages     []*Language
	extToLanguage map[string]*Language
}

// Register adds a language to the registry. Later registrations win for a
// shared extension.
func Register(lang *Language) {
	registry.Lock()
	defer registry.Unlock()

	if registry.extToLanguage == nil {
		registry.extToLanguage = make(map[string]*Language)
	}
	registry.languages = append(registry.languages, lang)
	for _, ext := range lang.Extensions {
		lowerExt := strings.ToLower(ext)
		if existing, ok := registry.extToLanguage[lowerExt]; ok {
			logger.Warnf("Extension %s already registered to %s, overriding with %s", lowerExt, existing.Name, lang.Name)
		}
		registry.extToLanguage[lowerExt] = lang
	}
	logger.DebugTagf("symbol", "Registered language %s for %v", lang.Name, lang.Extensions)
}

// ForFile returns the language for filePath, or nil.
func ForFile(filePath string) *Language {
	registerBuiltins()

	registry.RLock()
	defer registry.RUnlock()
	return registry.extToLanguage[strings.ToLower(filepath.Ext(filePath))]
}

// All returns every registered language.
func All() []*Language {
	registerBuiltins()

	registry.RLock()
	defer registry.RUnlock()
	return append([]*Language(nil), registry.languages...)
}
