package handlers

import (
	"errors"
	"fmt"
	"strings"

	"go_chat_client/models"
)

// stubChunks are returned for every full-book query, most relevant first.
var stubChunks = []models.SourceChunk{
	{ChunkID: "m1-c1-001", Module: 1, Chapter: 1, SectionTitle: "What is Physical AI", URL: "/docs/module-1/chapter-1#what-is-physical-ai", RelevanceScore: 0.92},
	{ChunkID: "m1-c2-004", Module: 1, Chapter: 2, SectionTitle: "ROS 2 Nodes and Topics", URL: "/docs/module-1/chapter-2#nodes-and-topics", RelevanceScore: 0.81},
	{ChunkID: "m2-c1-002", Module: 2, Chapter: 1, SectionTitle: "Simulating Robots in Gazebo", URL: "/docs/module-2/chapter-1#gazebo", RelevanceScore: 0.67},
}

func validateQuery(req models.ChatQueryRequest) error {
	if strings.TrimSpace(req.Query) == "" {
		return errors.New("query must not be empty")
	}
	if !req.Mode.Valid() {
		return fmt.Errorf("invalid mode %q: must be 'full_book' or 'selection'", req.Mode)
	}
	if req.Mode == models.ModeSelection && strings.TrimSpace(req.SelectedText) == "" {
		return errors.New("selected_text is required in selection mode")
	}
	return nil
}

func cannedAnswer(req models.ChatQueryRequest) string {
	if req.Mode == models.ModeSelection {
		return fmt.Sprintf("[stub] Based on the selected passage %q: %s", req.SelectedText, req.Query)
	}
	return "[stub] From the book: " + req.Query
}

func cannedChunks(mode models.ChatMode) []models.SourceChunk {
	if mode == models.ModeSelection {
		return []models.SourceChunk{}
	}
	out := make([]models.SourceChunk, len(stubChunks))
	copy(out, stubChunks)
	return out
}
