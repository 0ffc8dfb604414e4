package api

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/mentionkit/pkg/directory"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// MentionItem is a resolved or suggested directory entity.
type MentionItem struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ResolveResponse is the body of a successful /resolve call.
// PromptSafeSummary is null when there is nothing safe to summarize.
type ResolveResponse struct {
	TenantID          string        `json:"tenant_id"`
	Resolved          []MentionItem `json:"resolved"`
	PromptSafeSummary *string       `json:"prompt_safe_summary"`
}

func mentionItems(entities []directory.Entity) []MentionItem {
	items := make([]MentionItem, len(entities))
	for i, e := range entities {
		items[i] = MentionItem{Type: e.Type, ID: e.ID.String(), Label: e.Label}
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}
