package service

import (
	"github.com/tribridrag/tribridrag/knobs"
)

// KnobGroups returns the knob glossary grouped by pipeline stage.
func (s *Service) KnobGroups() []knobs.StageGroup {
	return s.glossary.ByStage()
}

// LookupKnob returns one knob by name.
func (s *Service) LookupKnob(name string) (knobs.Knob, bool) {
	return s.glossary.Lookup(name)
}
