package analyzer

import (
	"context"
	"testing"

	"codeatlas/internal/model"
)

const csharpSample = `using System;
using System.Collections.Generic;

public class OrderService : IOrderService, BaseService
{
    public void Submit(Order order)
    {
        Validate(order);
        repo.Save(order);
    }
}

public interface IOrderService
{
}
`

func TestLexicalCSharp(t *testing.T) {
	a := NewLexicalAnalyzer(LangCSharp)
	res, err := a.AnalyzeSource(context.Background(), "Services/OrderService.cs", []byte(csharpSample))
	if err != nil {
		t.Fatalf("AnalyzeSource: %v", err)
	}

	var class, iface *model.Symbol
	for i := range res.Symbols {
		switch res.Symbols[i].Name {
		case "OrderService":
			class = &res.Symbols[i]
		case "IOrderService":
			if res.Symbols[i].Kind == model.NodeInterface {
				iface = &res.Symbols[i]
			}
		}
	}
	if class == nil {
		t.Fatal("class OrderService not found")
	}
	if class.Kind != model.NodeClass {
		t.Errorf("OrderService kind = %q", class.Kind)
	}
	if len(class.Bases) != 2 || class.Bases[0] != "IOrderService" || class.Bases[1] != "BaseService" {
		t.Errorf("OrderService bases = %v", class.Bases)
	}
	if !class.Exported {
		t.Error("public class not marked exported")
	}
	if class.Location.StartLine != 4 {
		t.Errorf("OrderService line = %d, want 4", class.Location.StartLine)
	}
	if iface == nil {
		t.Error("interface IOrderService not found")
	}

	if len(res.Imports) != 2 {
		t.Fatalf("imports = %d, want 2", len(res.Imports))
	}
	if res.Imports[0].Module != "System" {
		t.Errorf("first import = %q", res.Imports[0].Module)
	}

	wantCalls := map[string]bool{"Validate": false, "repo.Save": true}
	for _, c := range res.Calls {
		method, ok := wantCalls[c.Callee]
		if !ok {
			continue
		}
		if c.MethodCall != method {
			t.Errorf("call %q methodCall = %v, want %v", c.Callee, c.MethodCall, method)
		}
		if c.Caller != model.ModuleScope {
			t.Errorf("call %q caller = %q, want module scope", c.Callee, c.Caller)
		}
		delete(wantCalls, c.Callee)
	}
	if len(wantCalls) > 0 {
		t.Errorf("calls not found: %v", wantCalls)
	}
}

func TestLexicalSkipsCommentedCalls(t *testing.T) {
	src := `// legacy(path)
/* also old(1) */
void run() {
    actual();
}
`
	a := NewLexicalAnalyzer(LangC)
	res, err := a.AnalyzeSource(context.Background(), "run.c", []byte(src))
	if err != nil {
		t.Fatalf("AnalyzeSource: %v", err)
	}
	for _, c := range res.Calls {
		if c.Callee == "legacy" || c.Callee == "old" {
			t.Errorf("commented-out call %q extracted", c.Callee)
		}
	}
	found := false
	for _, c := range res.Calls {
		if c.Callee == "actual" {
			found = true
		}
	}
	if !found {
		t.Error("call actual() not extracted")
	}
}

func TestLexicalArrowFunction(t *testing.T) {
	src := "export const handler = async (req) => {\n  respond(req);\n};\n"
	a := NewLexicalAnalyzer(LangJavaScript)
	res, err := a.AnalyzeSource(context.Background(), "src/handler.js", []byte(src))
	if err != nil {
		t.Fatalf("AnalyzeSource: %v", err)
	}
	if len(res.Symbols) != 1 {
		t.Fatalf("symbols = %d, want 1", len(res.Symbols))
	}
	sym := res.Symbols[0]
	if sym.Name != "handler" || sym.Kind != model.NodeFunction || !sym.Async {
		t.Errorf("symbol = %+v", sym)
	}
}

func TestLexicalRelativeImport(t *testing.T) {
	src := "import { helper } from '../util/helper';\n"
	a := NewLexicalAnalyzer(LangTypeScript)
	res, err := a.AnalyzeSource(context.Background(), "src/pages/home.ts", []byte(src))
	if err != nil {
		t.Fatalf("AnalyzeSource: %v", err)
	}
	if len(res.Imports) != 1 {
		t.Fatalf("imports = %d, want 1", len(res.Imports))
	}
	imp := res.Imports[0]
	if imp.Module != "../util/helper" || !imp.Relative || imp.Level != 1 {
		t.Errorf("import = %+v", imp)
	}
}
