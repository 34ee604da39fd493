package domain

import "time"

// NoteType captures how a note-history entry came to be. The string values
// are part of the wire contract shared with the UI.
type NoteType string

const (
	NoteTypeManual      NoteType = "Manual"
	NoteTypeStageChange NoteType = "Stage Change"
	NoteTypeOwnerChange NoteType = "Owner Change"
	NoteTypeSystem      NoteType = "System"
	NoteTypeAIAnalysis  NoteType = "AI Analysis"
)

// NoteEntry is an append-only audit entry attached to a lead. Entries are
// created with a server timestamp and never mutated by core logic.
type NoteEntry struct {
	ID      string
	LeadID  string
	Content string
	Author  string
	Type    NoteType
	Date    time.Time
}
