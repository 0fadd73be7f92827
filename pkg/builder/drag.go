package builder

import "github.com/goliatone/go-formbuilder/pkg/schema"

// Drag reorder protocol: three phases matching pointer-drag semantics.
// Containers are looked up by scanning current state on every call, so
// structural edits mid-drag can never leave a dangling reference. Sections
// reorder only among themselves at the top level; fields move within one
// section or across sections.
//
// Cross-container relocation happens speculatively during DragOver so the
// document tracks the pointer; DragEnd then only clears state. A drag that
// ends with no valid drop target leaves the document exactly as the last
// DragOver left it. There is no revert path: visual state during the drag is
// the committed state.

// Placement tells DragOver which side of the hovered field to insert on. The
// UI derives it from the pointer's position relative to the hovered item's
// midpoint.
type Placement int

const (
	PlaceBefore Placement = iota
	PlaceAfter
)

type dragState struct {
	itemID          string
	sourceContainer string
}

// container id used when the dragged item is a section
const sectionListContainer = "sections"

// Dragging reports the item currently being dragged, if any.
func (e *Editor) Dragging() (string, bool) {
	return e.drag.itemID, e.drag.itemID != ""
}

// DragStart records which item is lifted and from which container. Unknown
// ids are ignored.
func (e *Editor) DragStart(itemID string) {
	container := e.containerOf(itemID)
	if container == "" {
		e.drag = dragState{}
		return
	}
	e.drag = dragState{itemID: itemID, sourceContainer: container}
}

// DragOver relocates the dragged field into the hovered container when that
// container differs from the one currently holding it. Hovering a field
// inserts at that field's position (before or after per placement); hovering
// a section container inserts at the end of its field list. Same-container
// hovers are no-ops: their ordering is resolved at DragEnd.
func (e *Editor) DragOver(overID string, placement Placement) {
	if e.drag.itemID == "" || overID == "" || overID == e.drag.itemID {
		return
	}
	if e.sectionIndexByID(e.drag.itemID) >= 0 {
		// section ordering is resolved entirely at DragEnd
		return
	}

	si, fi := e.fieldLocation(e.drag.itemID)
	if si < 0 {
		return
	}

	targetSection, insertAt := e.dropTarget(overID, placement)
	if targetSection < 0 || targetSection == si {
		return
	}

	field := e.sections[si].Fields[fi]
	src := &e.sections[si]
	src.Fields = append(src.Fields[:fi], src.Fields[fi+1:]...)

	dst := &e.sections[targetSection]
	if insertAt < 0 || insertAt > len(dst.Fields) {
		insertAt = len(dst.Fields)
	}
	dst.Fields = append(dst.Fields[:insertAt], append([]schema.Field{field}, dst.Fields[insertAt:]...)...)

	e.touch()
}

// DragEnd commits a same-container reorder and clears drag state. For drops
// whose speculative relocation already happened during DragOver there is
// nothing left to move. Unknown or absent drop targets leave the document
// as-is.
func (e *Editor) DragEnd(overID string) {
	state := e.drag
	e.drag = dragState{}
	if state.itemID == "" || overID == "" || overID == state.itemID {
		return
	}

	// section reorder in the top-level list
	if si := e.sectionIndexByID(state.itemID); si >= 0 {
		ti := e.sectionIndexByID(overID)
		if ti < 0 || ti == si {
			return
		}
		section := e.sections[si]
		e.sections = append(e.sections[:si], e.sections[si+1:]...)
		e.sections = append(e.sections[:ti], append([]schema.Section{section}, e.sections[ti:]...)...)
		e.touch()
		return
	}

	si, fi := e.fieldLocation(state.itemID)
	if si < 0 {
		return
	}

	if osi, ofi := e.fieldLocation(overID); osi >= 0 {
		if osi != si {
			// relocated during DragOver; nothing left to do
			return
		}
		section := &e.sections[si]
		field := section.Fields[fi]
		section.Fields = append(section.Fields[:fi], section.Fields[fi+1:]...)
		section.Fields = append(section.Fields[:ofi], append([]schema.Field{field}, section.Fields[ofi:]...)...)
		e.touch()
		return
	}

	if ti := e.sectionIndexByID(overID); ti == si {
		// dropped over the body of its own section: move to the end
		section := &e.sections[si]
		field := section.Fields[fi]
		section.Fields = append(section.Fields[:fi], section.Fields[fi+1:]...)
		section.Fields = append(section.Fields, field)
		e.touch()
	}
}

// dropTarget resolves the hovered id into a section index and insert
// position. Hovering a section body targets the end of its list.
func (e *Editor) dropTarget(overID string, placement Placement) (int, int) {
	if si := e.sectionIndexByID(overID); si >= 0 {
		return si, len(e.sections[si].Fields)
	}
	if si, fi := e.fieldLocation(overID); si >= 0 {
		if placement == PlaceAfter {
			fi++
		}
		return si, fi
	}
	return -1, -1
}

func (e *Editor) containerOf(itemID string) string {
	if e.sectionIndexByID(itemID) >= 0 {
		return sectionListContainer
	}
	if si, _ := e.fieldLocation(itemID); si >= 0 {
		return e.sections[si].ID
	}
	return ""
}

func (e *Editor) sectionIndexByID(id string) int {
	for i, section := range e.sections {
		if section.ID == id {
			return i
		}
	}
	return -1
}

func (e *Editor) fieldLocation(id string) (int, int) {
	for si, section := range e.sections {
		for fi, field := range section.Fields {
			if field.ID == id {
				return si, fi
			}
		}
	}
	return -1, -1
}
