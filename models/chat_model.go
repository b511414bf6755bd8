package models

import "fmt"

// ChatMode selects what a query searches.
type ChatMode string

const (
	ModeFullBook  ChatMode = "full_book"
	ModeSelection ChatMode = "selection"
)

func (m ChatMode) Valid() bool {
	return m == ModeFullBook || m == ModeSelection
}

type ChatQueryRequest struct {
	Query        string   `json:"query"`
	Mode         ChatMode `json:"mode"`
	SelectedText string   `json:"selected_text,omitempty"`
	SessionID    string   `json:"session_id,omitempty"`
}

// SourceChunk is a scored snippet cited by an answer.
type SourceChunk struct {
	ChunkID        string  `json:"chunk_id"`
	Module         int     `json:"module"`
	Chapter        int     `json:"chapter"`
	SectionTitle   string  `json:"section_title"`
	URL            string  `json:"url"`
	RelevanceScore float64 `json:"relevance_score"`
}

func (c SourceChunk) Citation() string {
	return fmt.Sprintf("Module %d, Chapter %d: %s", c.Module, c.Chapter, c.SectionTitle)
}

// ChatResponse keeps SourceChunks in the order the backend sent them.
type ChatResponse struct {
	ResponseID     string        `json:"response_id"`
	ResponseText   string        `json:"response_text"`
	SourceChunks   []SourceChunk `json:"source_chunks"`
	ResponseTimeMs int64         `json:"response_time_ms"`
	SessionID      string        `json:"session_id"`
}
