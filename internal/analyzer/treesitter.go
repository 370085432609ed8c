//go:build cgo

package analyzer

import (
	"context"
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"codeatlas/internal/errors"
	"codeatlas/internal/model"
)

// ASTAvailable reports whether the tree-sitter analyzer path was compiled in.
func ASTAvailable() bool {
	return true
}

// treeSitterAnalyzer walks a tree-sitter AST to extract symbols, imports, and
// calls. Each AnalyzeSource call creates its own parser, so a single analyzer
// is safe for concurrent use across worker goroutines.
type treeSitterAnalyzer struct {
	lang Language
}

func newTreeSitterAnalyzer(lang Language) Analyzer {
	return &treeSitterAnalyzer{lang: lang}
}

func grammarFor(lang Language) *sitter.Language {
	switch lang {
	case LangGo:
		return golang.GetLanguage()
	case LangJavaScript:
		return javascript.GetLanguage()
	case LangTypeScript:
		return typescript.GetLanguage()
	case LangTSX:
		return tsx.GetLanguage()
	case LangPython:
		return python.GetLanguage()
	case LangRust:
		return rust.GetLanguage()
	case LangJava:
		return java.GetLanguage()
	case LangKotlin:
		return kotlin.GetLanguage()
	default:
		return nil
	}
}

// AnalyzeSource parses the file and extracts its structure. A parse failure
// yields an empty-but-valid result together with a ParseFailed error; the
// caller logs it and continues the batch.
func (a *treeSitterAnalyzer) AnalyzeSource(ctx context.Context, path string, source []byte) (*model.AnalysisResult, error) {
	tsLang := grammarFor(a.lang)
	if tsLang == nil {
		return emptyResult(path, a.lang), errors.New(errors.UnsupportedLanguage, "no grammar for "+string(a.lang), nil)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(tsLang)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return emptyResult(path, a.lang), errors.New(errors.ParseFailed, "parse failed for "+path, err)
	}

	w := &astWalker{
		lang:   a.lang,
		path:   path,
		source: source,
		result: emptyResult(path, a.lang),
	}
	w.walk(tree.RootNode())

	return w.result, nil
}

// astWalker traverses the syntax tree once, tracking the enclosing function
// and class stacks so calls can be attributed to their declaring scope.
type astWalker struct {
	lang   Language
	path   string
	source []byte

	funcStack  []string
	classStack []string

	result *model.AnalysisResult
}

func (w *astWalker) walk(n *sitter.Node) {
	if n == nil {
		return
	}
	t := n.Type()

	switch {
	case isClassNode(w.lang, t):
		name := w.className(n)
		if name != "" {
			w.result.Symbols = append(w.result.Symbols, w.classSymbol(n, name))
			w.classStack = append(w.classStack, name)
			w.walkChildren(n)
			w.classStack = w.classStack[:len(w.classStack)-1]
			return
		}

	case isFunctionNode(w.lang, t):
		name := w.functionName(n)
		if name != "" {
			w.result.Symbols = append(w.result.Symbols, w.functionSymbol(n, name))
			w.funcStack = append(w.funcStack, name)
			w.walkChildren(n)
			w.funcStack = w.funcStack[:len(w.funcStack)-1]
			return
		}

	case isImportNode(w.lang, t):
		w.extractImport(n)

	case isCallNode(w.lang, t):
		w.extractCall(n)
	}

	w.walkChildren(n)
}

func (w *astWalker) walkChildren(n *sitter.Node) {
	for i := uint32(0); i < n.ChildCount(); i++ {
		w.walk(n.Child(int(i)))
	}
}

func (w *astWalker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(w.source[n.StartByte():n.EndByte()])
}

func (w *astWalker) location(n *sitter.Node) model.SourceLocation {
	return model.SourceLocation{
		FilePath:    w.path,
		StartLine:   int(n.StartPoint().Row) + 1,
		EndLine:     int(n.EndPoint().Row) + 1,
		StartColumn: int(n.StartPoint().Column),
		EndColumn:   int(n.EndPoint().Column),
	}
}

// Node type tables, per language.

func isClassNode(lang Language, t string) bool {
	switch lang {
	case LangGo:
		return t == "type_declaration"
	case LangJavaScript:
		return t == "class_declaration"
	case LangTypeScript, LangTSX:
		return t == "class_declaration" || t == "interface_declaration" || t == "type_alias_declaration"
	case LangPython:
		return t == "class_definition"
	case LangRust:
		return t == "struct_item" || t == "enum_item" || t == "trait_item"
	case LangJava:
		return t == "class_declaration" || t == "interface_declaration" || t == "enum_declaration"
	case LangKotlin:
		return t == "class_declaration" || t == "object_declaration"
	default:
		return false
	}
}

func isFunctionNode(lang Language, t string) bool {
	switch lang {
	case LangGo:
		return t == "function_declaration" || t == "method_declaration"
	case LangJavaScript, LangTypeScript, LangTSX:
		return t == "function_declaration" || t == "generator_function_declaration" ||
			t == "method_definition" || t == "arrow_function"
	case LangPython:
		return t == "function_definition"
	case LangRust:
		return t == "function_item"
	case LangJava:
		return t == "method_declaration" || t == "constructor_declaration"
	case LangKotlin:
		return t == "function_declaration"
	default:
		return false
	}
}

func isImportNode(lang Language, t string) bool {
	switch lang {
	case LangGo:
		return t == "import_spec"
	case LangJavaScript, LangTypeScript, LangTSX:
		return t == "import_statement"
	case LangPython:
		return t == "import_statement" || t == "import_from_statement"
	case LangRust:
		return t == "use_declaration"
	case LangJava:
		return t == "import_declaration"
	case LangKotlin:
		return t == "import_header"
	default:
		return false
	}
}

func isCallNode(lang Language, t string) bool {
	switch lang {
	case LangGo, LangJavaScript, LangTypeScript, LangTSX, LangRust, LangKotlin:
		return t == "call_expression"
	case LangPython:
		return t == "call"
	case LangJava:
		return t == "method_invocation"
	default:
		return false
	}
}

// Symbol extraction.

func (w *astWalker) classSymbol(n *sitter.Node, name string) model.Symbol {
	return model.Symbol{
		Name:       name,
		Kind:       w.classKind(n),
		Location:   w.location(n),
		Docstring:  w.docstring(n),
		Decorators: w.decorators(n),
		Bases:      w.baseTypes(n),
		Exported:   w.isExported(n, name),
	}
}

func (w *astWalker) functionSymbol(n *sitter.Node, name string) model.Symbol {
	kind := model.NodeFunction
	if len(w.classStack) > 0 || n.Type() == "method_declaration" || n.Type() == "method_definition" {
		kind = model.NodeMethod
	}
	return model.Symbol{
		Name:       name,
		Kind:       kind,
		Location:   w.location(n),
		Docstring:  w.docstring(n),
		Decorators: w.decorators(n),
		Parameters: w.parameters(n),
		ReturnType: w.returnType(n),
		Async:      w.isAsync(n),
		Exported:   w.isExported(n, name),
	}
}

func (w *astWalker) classKind(n *sitter.Node) model.NodeKind {
	switch n.Type() {
	case "interface_declaration", "trait_item":
		return model.NodeInterface
	case "type_alias_declaration", "enum_item", "enum_declaration":
		return model.NodeType
	case "type_declaration":
		// Go: interface vs struct vs alias, decided by the type_spec body.
		for i := uint32(0); i < n.ChildCount(); i++ {
			child := n.Child(int(i))
			if child != nil && child.Type() == "type_spec" {
				if body := child.ChildByFieldName("type"); body != nil {
					if body.Type() == "interface_type" {
						return model.NodeInterface
					}
				}
			}
		}
		return model.NodeType
	default:
		return model.NodeClass
	}
}

func (w *astWalker) className(n *sitter.Node) string {
	switch w.lang {
	case LangGo:
		for i := uint32(0); i < n.ChildCount(); i++ {
			child := n.Child(int(i))
			if child != nil && child.Type() == "type_spec" {
				return w.text(child.ChildByFieldName("name"))
			}
		}
		return ""
	case LangKotlin:
		return w.firstChildOfType(n, "type_identifier", "simple_identifier")
	default:
		if name := n.ChildByFieldName("name"); name != nil {
			return w.text(name)
		}
		return w.firstChildOfType(n, "identifier", "type_identifier")
	}
}

func (w *astWalker) functionName(n *sitter.Node) string {
	if n.Type() == "arrow_function" {
		// const name = () => ...
		if p := n.Parent(); p != nil && p.Type() == "variable_declarator" {
			return w.text(p.ChildByFieldName("name"))
		}
		return ""
	}
	if name := n.ChildByFieldName("name"); name != nil {
		return w.text(name)
	}
	return w.firstChildOfType(n, "identifier", "simple_identifier", "field_identifier")
}

func (w *astWalker) firstChildOfType(n *sitter.Node, types ...string) string {
	for i := uint32(0); i < n.ChildCount(); i++ {
		child := n.Child(int(i))
		if child == nil {
			continue
		}
		for _, t := range types {
			if child.Type() == t {
				return w.text(child)
			}
		}
	}
	return ""
}

func (w *astWalker) parameters(n *sitter.Node) []string {
	params := n.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var names []string
	for i := uint32(0); i < params.NamedChildCount(); i++ {
		p := params.NamedChild(int(i))
		if p == nil {
			continue
		}
		switch p.Type() {
		case "identifier", "simple_identifier":
			names = append(names, w.text(p))
		default:
			// typed/defaulted parameters carry the identifier as a descendant
			if name := p.ChildByFieldName("name"); name != nil {
				names = append(names, w.text(name))
			} else if id := firstDescendantOfType(p, "identifier"); id != nil {
				names = append(names, string(w.source[id.StartByte():id.EndByte()]))
			}
		}
	}
	return names
}

func firstDescendantOfType(n *sitter.Node, t string) *sitter.Node {
	if n.Type() == t {
		return n
	}
	for i := uint32(0); i < n.NamedChildCount(); i++ {
		if found := firstDescendantOfType(n.NamedChild(int(i)), t); found != nil {
			return found
		}
	}
	return nil
}

func (w *astWalker) returnType(n *sitter.Node) string {
	var field string
	switch w.lang {
	case LangGo:
		field = "result"
	case LangJava:
		field = "type"
	default:
		field = "return_type"
	}
	rt := n.ChildByFieldName(field)
	if rt == nil {
		return ""
	}
	return strings.TrimPrefix(strings.TrimSpace(w.text(rt)), "-> ")
}

func (w *astWalker) isAsync(n *sitter.Node) bool {
	for i := uint32(0); i < n.ChildCount(); i++ {
		child := n.Child(int(i))
		if child == nil {
			continue
		}
		switch child.Type() {
		case "async", "suspend":
			return true
		case "modifiers":
			if strings.Contains(w.text(child), "async") || strings.Contains(w.text(child), "suspend") {
				return true
			}
		}
	}
	return false
}

// docstring extracts documentation where the grammar exposes it: the leading
// string expression of a Python body, or the comment block preceding a Go,
// Rust, or Java declaration.
func (w *astWalker) docstring(n *sitter.Node) string {
	if w.lang == LangPython {
		body := n.ChildByFieldName("body")
		if body == nil || body.NamedChildCount() == 0 {
			return ""
		}
		first := body.NamedChild(0)
		if first == nil || first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
			return ""
		}
		str := first.NamedChild(0)
		if str == nil || str.Type() != "string" {
			return ""
		}
		return strings.Trim(w.text(str), "\"'")
	}

	var lines []string
	for prev := n.PrevNamedSibling(); prev != nil; prev = prev.PrevNamedSibling() {
		t := prev.Type()
		if t != "comment" && t != "line_comment" && t != "block_comment" {
			break
		}
		text := strings.TrimSpace(strings.TrimPrefix(w.text(prev), "//"))
		lines = append([]string{text}, lines...)
	}
	return strings.Join(lines, "\n")
}

func (w *astWalker) decorators(n *sitter.Node) []string {
	var decs []string

	// Python wraps decorated declarations in decorated_definition; TS hangs
	// decorators off the surrounding export_statement.
	if p := n.Parent(); p != nil && (p.Type() == "decorated_definition" || p.Type() == "export_statement") {
		for i := uint32(0); i < p.NamedChildCount(); i++ {
			child := p.NamedChild(int(i))
			if child != nil && child.Type() == "decorator" {
				decs = append(decs, strings.TrimPrefix(w.text(child), "@"))
			}
		}
		if len(decs) > 0 {
			return decs
		}
	}

	// TS decorators and Java annotations sit among the declaration's children.
	for i := uint32(0); i < n.ChildCount(); i++ {
		child := n.Child(int(i))
		if child == nil {
			continue
		}
		switch child.Type() {
		case "decorator":
			decs = append(decs, strings.TrimPrefix(w.text(child), "@"))
		case "modifiers":
			for j := uint32(0); j < child.NamedChildCount(); j++ {
				mod := child.NamedChild(int(j))
				if mod != nil && (mod.Type() == "marker_annotation" || mod.Type() == "annotation") {
					decs = append(decs, strings.TrimPrefix(w.text(mod), "@"))
				}
			}
		}
	}
	return decs
}

// baseTypes collects inherited/implemented type names from whatever heritage
// construct the grammar uses.
func (w *astWalker) baseTypes(n *sitter.Node) []string {
	var bases []string

	if w.lang == LangPython {
		if sup := n.ChildByFieldName("superclasses"); sup != nil {
			for i := uint32(0); i < sup.NamedChildCount(); i++ {
				arg := sup.NamedChild(int(i))
				if arg != nil && arg.Type() != "keyword_argument" {
					bases = append(bases, w.text(arg))
				}
			}
		}
		return bases
	}

	if w.lang == LangJava {
		if sup := n.ChildByFieldName("superclass"); sup != nil {
			if id := firstDescendantOfType(sup, "type_identifier"); id != nil {
				bases = append(bases, string(w.source[id.StartByte():id.EndByte()]))
			}
		}
		if ifaces := n.ChildByFieldName("interfaces"); ifaces != nil {
			bases = append(bases, collectTypeIdentifiers(ifaces, w.source)...)
		}
		return bases
	}

	for i := uint32(0); i < n.ChildCount(); i++ {
		child := n.Child(int(i))
		if child == nil {
			continue
		}
		switch child.Type() {
		case "class_heritage", "extends_clause", "extends_type_clause",
			"implements_clause", "delegation_specifier":
			bases = append(bases, collectTypeIdentifiers(child, w.source)...)
		}
	}
	return bases
}

func collectTypeIdentifiers(n *sitter.Node, source []byte) []string {
	var out []string
	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		switch node.Type() {
		case "identifier", "type_identifier", "user_type":
			out = append(out, string(source[node.StartByte():node.EndByte()]))
			return
		}
		for i := uint32(0); i < node.NamedChildCount(); i++ {
			walk(node.NamedChild(int(i)))
		}
	}
	walk(n)
	return out
}

func (w *astWalker) isExported(n *sitter.Node, name string) bool {
	switch w.lang {
	case LangGo:
		r := []rune(name)
		return len(r) > 0 && unicode.IsUpper(r[0])
	case LangPython:
		return !strings.HasPrefix(name, "_")
	case LangJavaScript, LangTypeScript, LangTSX:
		for p := n.Parent(); p != nil; p = p.Parent() {
			if p.Type() == "export_statement" {
				return true
			}
		}
		return false
	case LangRust:
		return w.firstChildOfType(n, "visibility_modifier") != ""
	case LangJava:
		for i := uint32(0); i < n.ChildCount(); i++ {
			child := n.Child(int(i))
			if child != nil && child.Type() == "modifiers" && strings.Contains(w.text(child), "public") {
				return true
			}
		}
		return false
	case LangKotlin:
		for i := uint32(0); i < n.ChildCount(); i++ {
			child := n.Child(int(i))
			if child != nil && child.Type() == "modifiers" {
				text := w.text(child)
				if strings.Contains(text, "private") || strings.Contains(text, "internal") {
					return false
				}
			}
		}
		return true
	default:
		return false
	}
}

// Import extraction.

func (w *astWalker) extractImport(n *sitter.Node) {
	loc := w.location(n)

	switch w.lang {
	case LangGo:
		path := strings.Trim(w.text(n.ChildByFieldName("path")), `"`)
		if path == "" {
			return
		}
		w.addImport(model.Import{
			Module:   path,
			Alias:    w.text(n.ChildByFieldName("name")),
			Location: &loc,
		})

	case LangJavaScript, LangTypeScript, LangTSX:
		module := strings.Trim(w.text(n.ChildByFieldName("source")), "\"'`")
		if module == "" {
			return
		}
		imp := model.Import{
			Module:   module,
			Location: &loc,
			Relative: strings.HasPrefix(module, "."),
			Level:    relativeHops(module),
		}
		for i := uint32(0); i < n.NamedChildCount(); i++ {
			child := n.NamedChild(int(i))
			if child != nil && child.Type() == "import_clause" {
				imp.Names = collectImportNames(child, w.source)
			}
		}
		w.addImport(imp)

	case LangPython:
		w.extractPythonImport(n, loc)

	case LangRust:
		arg := n.ChildByFieldName("argument")
		if arg == nil && n.NamedChildCount() > 0 {
			arg = n.NamedChild(0)
		}
		module := w.text(arg)
		if module == "" {
			return
		}
		w.addImport(model.Import{Module: module, Location: &loc})

	case LangJava, LangKotlin:
		module := w.firstChildOfType(n, "scoped_identifier", "identifier")
		if module == "" {
			if n.NamedChildCount() > 0 {
				module = w.text(n.NamedChild(0))
			}
		}
		if module == "" {
			return
		}
		w.addImport(model.Import{Module: module, Location: &loc})
	}
}

func (w *astWalker) extractPythonImport(n *sitter.Node, loc model.SourceLocation) {
	if n.Type() == "import_statement" {
		for i := uint32(0); i < n.NamedChildCount(); i++ {
			child := n.NamedChild(int(i))
			if child == nil {
				continue
			}
			switch child.Type() {
			case "dotted_name":
				w.addImport(model.Import{Module: w.text(child), Location: &loc})
			case "aliased_import":
				w.addImport(model.Import{
					Module:   w.text(child.ChildByFieldName("name")),
					Alias:    w.text(child.ChildByFieldName("alias")),
					Location: &loc,
				})
			}
		}
		return
	}

	// from X import a, b / from ..pkg import c
	module := ""
	level := 0
	if mod := n.ChildByFieldName("module_name"); mod != nil {
		text := w.text(mod)
		level = len(text) - len(strings.TrimLeft(text, "."))
		module = strings.TrimLeft(text, ".")
	}

	var names []string
	sawFrom := false
	for i := uint32(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(int(i))
		if child == nil {
			continue
		}
		if !sawFrom {
			// first named child is the module itself
			sawFrom = true
			continue
		}
		switch child.Type() {
		case "dotted_name", "wildcard_import":
			names = append(names, w.text(child))
		case "aliased_import":
			names = append(names, w.text(child.ChildByFieldName("name")))
		}
	}

	w.addImport(model.Import{
		Module:   module,
		Names:    names,
		Location: &loc,
		Relative: level > 0,
		Level:    level,
	})
}

func collectImportNames(clause *sitter.Node, source []byte) []string {
	var names []string
	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if n.Type() == "identifier" {
			names = append(names, string(source[n.StartByte():n.EndByte()]))
			return
		}
		for i := uint32(0); i < n.NamedChildCount(); i++ {
			walk(n.NamedChild(int(i)))
		}
	}
	walk(clause)
	return names
}

// Call extraction.

func (w *astWalker) extractCall(n *sitter.Node) {
	var callee string
	if w.lang == LangJava {
		name := w.text(n.ChildByFieldName("name"))
		if obj := n.ChildByFieldName("object"); obj != nil {
			callee = w.text(obj) + "." + name
		} else {
			callee = name
		}
	} else {
		callee = w.text(n.ChildByFieldName("function"))
	}

	callee = strings.TrimSpace(callee)
	if callee == "" || strings.ContainsAny(callee, "({\n") {
		return
	}

	caller := model.ModuleScope
	if len(w.funcStack) > 0 {
		caller = w.funcStack[len(w.funcStack)-1]
	}

	loc := w.location(n)
	w.result.Calls = append(w.result.Calls, model.Call{
		Caller:     caller,
		Callee:     callee,
		Location:   &loc,
		MethodCall: strings.Contains(callee, "."),
	})
}

func (w *astWalker) addImport(imp model.Import) {
	w.result.Imports = append(w.result.Imports, imp)
}
