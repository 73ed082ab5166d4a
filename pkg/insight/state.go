package insight

import (
	"errors"
	"fmt"
)

// ErrUnknownSelection is returned when a selection names no subsection.
var ErrUnknownSelection = errors.New("insight: unknown subsection")

// SectionState holds the dropdown selection of one rendered section. The
// zero selection of a section without a dropdown is never consulted.
type SectionState struct {
	section   Section
	selection string
}

// NewSectionState initialises the selection from the dropdown default.
func NewSectionState(section Section) *SectionState {
	state := &SectionState{section: section}
	if section.Dropdown != nil {
		state.selection = section.Dropdown.DefaultSelection
	}
	return state
}

// Selection returns the active subsection id.
func (s *SectionState) Selection() string {
	return s.selection
}

// Select activates the subsection with the supplied id.
func (s *SectionState) Select(id string) error {
	if !s.section.UsesDropdown() {
		return fmt.Errorf("insight: section %q has no dropdown: %w", s.section.ID, ErrUnknownSelection)
	}
	if _, ok := s.section.Subsections[id]; !ok {
		return fmt.Errorf("insight: section %q option %q: %w", s.section.ID, id, ErrUnknownSelection)
	}
	s.selection = id
	return nil
}

// Items returns the nodes and grid density for the active selection.
func (s *SectionState) Items() ([]Node, int) {
	return s.section.Content(s.selection)
}

// ActiveOption returns the dropdown option matching the selection.
func (s *SectionState) ActiveOption() (DropdownOption, bool) {
	return s.section.Dropdown.Option(s.selection)
}
