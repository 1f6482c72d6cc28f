package models

// Requests for the HTTP endpoints. Defined in domain for consistency and reuse.

type StockInfoRequest struct {
	Query string `query:"query" json:"query" validate:"required,min=2,max=500"`
}

type AskRequest struct {
	Query     string `json:"query" validate:"required,min=2,max=500"`
	SessionID string `json:"session_id" default:"default" validate:"max=128"`
	Mode      string `json:"mode" default:"tool" validate:"oneof=tool schema"`
}

// AskResponse carries the agent's final answer plus which path produced it.
type AskResponse struct {
	Mode      string `json:"mode"`
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
}
