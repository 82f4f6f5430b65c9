package structure_test

import (
	"testing"

	"github.com/aretw0/bindery/pkg/core"
	"github.com/aretw0/bindery/pkg/lint"
	_ "github.com/aretw0/bindery/pkg/lint/rules/structure"
)

func check(t *testing.T, ruleID string, doc core.Binding) []lint.Finding {
	t.Helper()
	rule, ok := lint.Lookup(ruleID)
	if !ok {
		t.Fatalf("rule %s not registered", ruleID)
	}
	return rule.Check(lint.NewContext([]core.Binding{doc}), doc)
}

func TestST01_MissingTitle(t *testing.T) {
	cases := []struct {
		name    string
		doc     core.Binding
		flagged bool
	}{
		{"binding with title", core.Binding{ID: "go/a", Content: "# Binding: A\n\nBody."}, false},
		{"tenet with title", core.Binding{ID: "tenets/t", Content: "# Tenet: T\n\nBody."}, false},
		{"plain heading", core.Binding{ID: "go/a", Content: "# A\n\nBody."}, true},
		{"tenet with binding title", core.Binding{ID: "tenets/t", Content: "# Binding: T"}, true},
		{"no heading", core.Binding{ID: "go/a", Content: "Body first."}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fs := check(t, "ST01", tc.doc)
			if got := len(fs) > 0; got != tc.flagged {
				t.Errorf("flagged = %v, want %v (%+v)", got, tc.flagged, fs)
			}
		})
	}
}

func TestST02_MalformedRelated(t *testing.T) {
	doc := core.Binding{ID: "go/a", Content: "# Binding: A\n\n## Related Bindings\n\n" +
		"- [Good](b.md): fine\n" +
		"- bare bullet without a link\n"}

	fs := check(t, "ST02", doc)
	if len(fs) != 1 {
		t.Fatalf("expected 1 finding, got %+v", fs)
	}
	if fs[0].Line != 6 {
		t.Errorf("expected finding on line 6, got %d", fs[0].Line)
	}
}

func TestST03_EmptyBody(t *testing.T) {
	empty := core.Binding{ID: "go/a", Content: "# Binding: A\n\n## Related Bindings\n"}
	if fs := check(t, "ST03", empty); len(fs) != 1 {
		t.Errorf("expected 1 finding for empty body, got %+v", fs)
	}

	full := core.Binding{ID: "go/a", Content: "# Binding: A\n\nSome prose."}
	if fs := check(t, "ST03", full); len(fs) != 0 {
		t.Errorf("expected no findings for prose body, got %+v", fs)
	}
}
