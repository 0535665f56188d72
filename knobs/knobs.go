// Package knobs loads the TriBridRAG configuration-knob glossary.
//
// A knob is one tunable parameter of the retrieval pipeline. The glossary
// groups knobs by pipeline stage and is rendered by the demo UI's knobs tab.
// Deployments can ship their own glossary file; Default returns the one
// embedded in this package.
package knobs

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
)

//go:embed glossary.toml
var defaultGlossary []byte

// Stages in pipeline order. Knobs in other stages are rejected at load time.
var stageOrder = []string{"retrieval", "fusion", "generation"}

// Knob describes one tunable pipeline parameter.
type Knob struct {
	Name    string `toml:"name"`
	Stage   string `toml:"stage"`
	Type    string `toml:"type"` // "int", "float", "bool", "enum"
	Default string `toml:"default"`
	Range   string `toml:"range,omitempty"` // Human-readable bounds or enum values
	Summary string `toml:"summary"`
}

// Glossary is an ordered set of knobs, indexed by name.
type Glossary struct {
	knobs  []Knob
	byName map[string]int
}

type glossaryFile struct {
	Knobs []Knob `toml:"knob"`
}

// Parse decodes a TOML glossary.
func Parse(data []byte) (*Glossary, error) {
	var file glossaryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse knob glossary: %w", err)
	}
	return build(file.Knobs)
}

// Load reads a TOML glossary from a file.
func Load(path string) (*Glossary, error) {
	var file glossaryFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("load knob glossary %s: %w", path, err)
	}
	return build(file.Knobs)
}

// Default returns the glossary embedded in this package.
func Default() *Glossary {
	g, err := Parse(defaultGlossary)
	if err != nil {
		panic("knobs: embedded glossary is invalid: " + err.Error())
	}
	return g
}

func build(knobs []Knob) (*Glossary, error) {
	g := &Glossary{byName: make(map[string]int, len(knobs))}
	for _, k := range knobs {
		if k.Name == "" {
			return nil, fmt.Errorf("knob glossary: knob without a name")
		}
		if !validStage(k.Stage) {
			return nil, fmt.Errorf("knob glossary: knob %q has unknown stage %q", k.Name, k.Stage)
		}
		if k.Summary == "" {
			return nil, fmt.Errorf("knob glossary: knob %q has no summary", k.Name)
		}
		if _, exists := g.byName[k.Name]; exists {
			return nil, fmt.Errorf("knob glossary: duplicate knob %q", k.Name)
		}
		g.byName[k.Name] = len(g.knobs)
		g.knobs = append(g.knobs, k)
	}
	return g, nil
}

func validStage(stage string) bool {
	for _, s := range stageOrder {
		if s == stage {
			return true
		}
	}
	return false
}

// Len returns the number of knobs.
func (g *Glossary) Len() int {
	return len(g.knobs)
}

// Lookup returns the knob with the given name.
func (g *Glossary) Lookup(name string) (Knob, bool) {
	i, ok := g.byName[name]
	if !ok {
		return Knob{}, false
	}
	return g.knobs[i], true
}

// All returns every knob in glossary order.
func (g *Glossary) All() []Knob {
	out := make([]Knob, len(g.knobs))
	copy(out, g.knobs)
	return out
}

// StageGroup is the knobs of one pipeline stage.
type StageGroup struct {
	Stage string
	Knobs []Knob
}

// ByStage returns knobs grouped by stage, stages in pipeline order.
// Stages with no knobs are omitted.
func (g *Glossary) ByStage() []StageGroup {
	grouped := make(map[string][]Knob)
	for _, k := range g.knobs {
		grouped[k.Stage] = append(grouped[k.Stage], k)
	}

	var out []StageGroup
	for _, stage := range stageOrder {
		ks := grouped[stage]
		if len(ks) == 0 {
			continue
		}
		sort.SliceStable(ks, func(i, j int) bool { return ks[i].Name < ks[j].Name })
		out = append(out, StageGroup{Stage: stage, Knobs: ks})
	}
	return out
}
