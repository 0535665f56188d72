package knobs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultGlossary(t *testing.T) {
	g := Default()
	if g.Len() == 0 {
		t.Fatal("embedded glossary is empty")
	}

	k, ok := g.Lookup("fusion_strategy")
	if !ok {
		t.Fatal("fusion_strategy missing from embedded glossary")
	}
	if k.Stage != "fusion" {
		t.Errorf("unexpected stage: %q", k.Stage)
	}
	if k.Default != "rrf" {
		t.Errorf("unexpected default: %q", k.Default)
	}
}

func TestByStageOrder(t *testing.T) {
	g := Default()
	groups := g.ByStage()
	if len(groups) != 3 {
		t.Fatalf("expected 3 stage groups, got %d", len(groups))
	}
	want := []string{"retrieval", "fusion", "generation"}
	for i, group := range groups {
		if group.Stage != want[i] {
			t.Errorf("group %d: got stage %q, want %q", i, group.Stage, want[i])
		}
		if len(group.Knobs) == 0 {
			t.Errorf("group %q has no knobs", group.Stage)
		}
		for j := 1; j < len(group.Knobs); j++ {
			if group.Knobs[j-1].Name > group.Knobs[j].Name {
				t.Errorf("group %q not sorted by name", group.Stage)
			}
		}
	}
}

func TestParseRejectsBadGlossaries(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want string
	}{
		{
			"unknown stage",
			"[[knob]]\nname = \"x\"\nstage = \"reranking\"\nsummary = \"s\"\n",
			"unknown stage",
		},
		{
			"missing name",
			"[[knob]]\nstage = \"fusion\"\nsummary = \"s\"\n",
			"without a name",
		},
		{
			"missing summary",
			"[[knob]]\nname = \"x\"\nstage = \"fusion\"\n",
			"no summary",
		},
		{
			"duplicate",
			"[[knob]]\nname = \"x\"\nstage = \"fusion\"\nsummary = \"s\"\n\n[[knob]]\nname = \"x\"\nstage = \"fusion\"\nsummary = \"s\"\n",
			"duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glossary.toml")
	content := `
[[knob]]
name = "custom_knob"
stage = "generation"
type = "bool"
default = "false"
summary = "A deployment-specific knob."
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write glossary: %v", err)
	}

	g, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := g.Lookup("custom_knob"); !ok {
		t.Error("custom_knob not loaded")
	}
}
