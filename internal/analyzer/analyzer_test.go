package analyzer

import "testing"

func TestShouldSkip(t *testing.T) {
	excludedDirs := []string{"node_modules", ".git", "vendor"}
	excludedFiles := []string{"_test.go", ".min.js"}

	tests := []struct {
		path string
		want bool
	}{
		{"src/app.ts", false},
		{"node_modules/lodash/index.js", true},
		{"vendor/github.com/pkg/errors/errors.go", true},
		{"internal/graph/nodes_test.go", true},
		{"dist/bundle.min.js", true},
		{"internal/graph/nodes.go", false},
	}
	for _, tt := range tests {
		got := ShouldSkip(tt.path, excludedDirs, excludedFiles, nil, nil)
		if got != tt.want {
			t.Errorf("ShouldSkip(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestShouldSkipIncludeWins(t *testing.T) {
	// with include patterns set, anything not matching them is skipped
	includedDirs := []string{"src/core"}
	if ShouldSkip("src/core/engine.py", nil, nil, includedDirs, nil) {
		t.Error("path inside included dir was skipped")
	}
	if !ShouldSkip("src/ui/view.py", nil, nil, includedDirs, nil) {
		t.Error("path outside included dir was not skipped")
	}
	if ShouldSkip("docs/overview.py", nil, nil, nil, []string{"overview.py"}) {
		t.Error("path matching included file was skipped")
	}
}

func TestForLanguageFallbacks(t *testing.T) {
	if _, ok := ForLanguage(LangC).(*LexicalAnalyzer); !ok {
		t.Errorf("ForLanguage(c) = %T, want *LexicalAnalyzer", ForLanguage(LangC))
	}
	if _, ok := ForLanguage(LangRuby).(*GenericAnalyzer); !ok {
		t.Errorf("ForLanguage(ruby) = %T, want *GenericAnalyzer", ForLanguage(LangRuby))
	}
	if _, ok := ForLanguage(LangUnknown).(*GenericAnalyzer); !ok {
		t.Errorf("ForLanguage(unknown) = %T, want *GenericAnalyzer", ForLanguage(LangUnknown))
	}
}
