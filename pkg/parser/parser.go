// Package parser manages pooled tree-sitter parsers for the grammars the
// extractor needs: HTML for markup templates, TypeScript and JavaScript
// for component logic.
package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// defaultPoolSize bounds parsers per language. Extraction is sequential so
// a small pool suffices; the pool exists so watch mode and the MCP server
// can share a manager safely.
const defaultPoolSize = 4

// Manager owns per-language parser pools, created lazily on first use.
// Safe for concurrent use. Callers own returned trees and must call
// tree.Close().
type Manager struct {
	pools  map[Language]*parserPool
	mutex  sync.RWMutex
	logger *slog.Logger
}

// NewManager creates a parser manager. The manager must be closed via
// Close() to free parser resources.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		pools:  make(map[Language]*parserPool),
		logger: logger,
	}
}

// Parse parses source with the grammar for lang. The returned tree MUST be
// closed by the caller. A tree containing syntax errors is still returned;
// partial trees are useful for heuristic extraction.
func (m *Manager) Parse(source []byte, lang Language) (*ts.Tree, error) {
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("cannot parse unknown language")
	}

	pool, err := m.getOrCreatePool(lang)
	if err != nil {
		return nil, err
	}

	parser, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}
	tree := parser.Parse(source, nil)
	pool.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("parser returned nil tree")
	}
	if tree.RootNode().HasError() {
		m.logger.Debug("parse tree contains errors", "language", lang.String())
	}
	return tree, nil
}

// ParseFile parses source using the grammar detected from filePath.
func (m *Manager) ParseFile(filePath string, source []byte) (*ts.Tree, error) {
	lang := DetectLanguage(filePath)
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("unsupported file type: %s", filePath)
	}
	return m.Parse(source, lang)
}

// Close releases all pooled parsers.
func (m *Manager) Close() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, pool := range m.pools {
		pool.close()
	}
	m.pools = make(map[Language]*parserPool)
}

func (m *Manager) getOrCreatePool(lang Language) (*parserPool, error) {
	m.mutex.RLock()
	pool, ok := m.pools[lang]
	m.mutex.RUnlock()
	if ok {
		return pool, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if pool, ok = m.pools[lang]; ok {
		return pool, nil
	}

	langPtr, err := languagePointer(lang)
	if err != nil {
		return nil, err
	}
	pool = newParserPool(lang, langPtr, defaultPoolSize, m.logger)
	m.pools[lang] = pool
	return pool, nil
}

func languagePointer(lang Language) (unsafe.Pointer, error) {
	switch lang {
	case LanguageHTML:
		return ts_html.Language(), nil
	case LanguageTypeScript:
		return ts_typescript.LanguageTypescript(), nil
	case LanguageJavaScript:
		return ts_javascript.Language(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang.String())
	}
}
