package parser

import (
	"path/filepath"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"pymover/internal/core/errors"
)

type Parser struct {
	loader     *GrammarLoader
	extractors map[string]Extractor // language -> extractor
}

type Extractor interface {
	Extract(node *sitter.Node, source []byte, filePath string) (*File, error)
}

func NewParser(loader *GrammarLoader) *Parser {
	return &Parser{
		loader:     loader,
		extractors: make(map[string]Extractor),
	}
}

func (p *Parser) RegisterExtractor(lang string, e Extractor) {
	p.extractors[lang] = e
}

func (p *Parser) ParseFile(path string, content []byte) (*File, error) {
	lang := p.detectLanguage(path)
	if lang == "" {
		return nil, errors.Newf(errors.CodeParse, "unsupported language for %s", path)
	}

	grammar := p.loader.languages[lang]
	if grammar == nil {
		return nil, errors.Newf(errors.CodeParse, "grammar not loaded: %s", lang)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.Newf(errors.CodeParse, "parse failed for %s", path)
	}
	defer tree.Close()

	root := tree.RootNode()
	// tree-sitter is error tolerant; a tree with error nodes means the file
	// is malformed and must be skipped rather than rewritten from a bad tree.
	if root.HasError() {
		return nil, errors.Newf(errors.CodeParse, "syntax error in %s", path)
	}

	extractor := p.extractors[lang]
	if extractor == nil {
		return nil, errors.Newf(errors.CodeParse, "no extractor for: %s", lang)
	}

	return extractor.Extract(root, content, path)
}

func (p *Parser) detectLanguage(path string) string {
	ext := filepath.Ext(path)
	switch ext {
	case ".py", ".pyw":
		return "python"
	default:
		return ""
	}
}
