package formatting

import (
	"fmt"
	"strings"

	"github.com/assessment-report-engine/internal/domain"
)

// EnvironmentalHelper renders home-environment findings
type EnvironmentalHelper struct {
	Base
}

// FormatBrief renders the dwelling and its hazards
func (h EnvironmentalHelper) FormatBrief(e *domain.Environmental) string {
	if e == nil {
		return ""
	}
	return h.Paragraphs(h.dwelling(e), h.Block("Hazards", h.FormatList(e.Hazards)))
}

// FormatStandard adds the entrance and the rooms with barriers
func (h EnvironmentalHelper) FormatStandard(e *domain.Environmental) string {
	if e == nil {
		return ""
	}
	rooms := make([]string, 0, len(e.Rooms))
	for _, room := range e.Rooms {
		line := h.roomName(room)
		if len(room.Barriers) > 0 {
			line += fmt.Sprintf(" - %d barrier(s) identified", len(room.Barriers))
		}
		rooms = append(rooms, line)
	}
	return h.Paragraphs(
		h.dwelling(e),
		h.entrance(e.Entrance),
		h.Block("Rooms", h.FormatList(rooms)),
		h.Block("Hazards", h.FormatList(e.Hazards)),
		h.Block("Recommendations", h.FormatList(e.Recommendations)),
	)
}

// FormatDetailed cross-references barriers and adaptations per room
func (h EnvironmentalHelper) FormatDetailed(e *domain.Environmental) string {
	if e == nil {
		return ""
	}
	rooms := make([]string, 0, len(e.Rooms))
	for _, room := range e.Rooms {
		parts := []string{h.roomName(room)}
		if len(room.Barriers) > 0 {
			parts = append(parts, "Barriers: "+strings.Join(room.Barriers, "; ")+".")
		}
		if len(room.Adaptations) > 0 {
			parts = append(parts, "Adaptations: "+strings.Join(room.Adaptations, "; ")+".")
		}
		if room.Notes != "" {
			parts = append(parts, Sentence(room.Notes))
		}
		rooms = append(rooms, strings.Join(parts, " "))
	}
	return h.Paragraphs(
		h.dwelling(e),
		h.entrance(e.Entrance),
		h.Block("Rooms", h.FormatList(rooms)),
		h.Block("Hazards", h.FormatList(e.Hazards)),
		h.Block("Recommendations", h.FormatList(e.Recommendations)),
		h.FormatParagraph(e.Notes),
	)
}

func (h EnvironmentalHelper) dwelling(e *domain.Environmental) string {
	var levels string
	if e.Levels > 0 {
		levels = fmt.Sprintf("%d", e.Levels)
	}
	return h.Lines(
		h.FormatField("Dwelling Type", e.DwellingType),
		h.FormatField("Levels", levels),
		h.FormatField("Ownership", e.Ownership),
	)
}

func (h EnvironmentalHelper) entrance(en *domain.Entrance) string {
	if en == nil {
		return ""
	}
	var desc string
	switch {
	case en.Steps == 0:
		desc = "Level entry"
	case en.Railings:
		desc = fmt.Sprintf("%d step(s) with railings", en.Steps)
	default:
		desc = fmt.Sprintf("%d step(s) without railings", en.Steps)
	}
	if en.Notes != "" {
		desc += ". " + Sentence(en.Notes)
	}
	return h.FormatField("Entrance", desc)
}

func (h EnvironmentalHelper) roomName(room domain.RoomFinding) string {
	if room.Floor == "" {
		return room.Name
	}
	return fmt.Sprintf("%s (%s)", room.Name, room.Floor)
}
