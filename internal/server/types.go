package server

import "github.com/ccbj/ccbj-forms/internal/model"

// ValueRequest carries a single field value
type ValueRequest struct {
	Value  string `json:"value"`
	Locale string `json:"locale,omitempty"`
}

// ValueResponse carries a formatted or parsed value
type ValueResponse struct {
	Value string `json:"value"`
}

// DateRangeRequest is the body of the date range check
type DateRangeRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ValidResponse is the answer of the single-field validators
type ValidResponse struct {
	Valid bool `json:"valid"`
}

// MaskRequest is one keystroke applied to a masked field
type MaskRequest struct {
	Current   string `json:"current"`
	Keystroke string `json:"keystroke"`
}

// MaskResponse is the field after the keystroke
type MaskResponse struct {
	Value    string `json:"value"`
	Accepted bool   `json:"accepted"`
	Complete bool   `json:"complete"`
}

// FormResponse is the result of validating a whole form
type FormResponse struct {
	Valid  bool              `json:"valid"`
	Errors model.FieldErrors `json:"errors,omitempty"`
	Query  string            `json:"query,omitempty"`

	// Warnings never make a form invalid
	Warnings []string `json:"warnings,omitempty"`
}

// StatusChangeRequest asks whether a contract may move to another status
type StatusChangeRequest struct {
	Current model.StatusContrato `json:"status_atual"`
	model.StatusChange
	// Contrato, when sent, adds the unpaid and past-end warnings
	Contrato *model.Contrato `json:"contrato,omitempty"`
}

// PlaceholdersRequest holds a template body
type PlaceholdersRequest struct {
	Conteudo string `json:"conteudo"`
}

// PlaceholdersResponse lists the placeholders a template uses
type PlaceholdersResponse struct {
	Used    []string `json:"used"`
	Unknown []string `json:"unknown,omitempty"`
}

// InfoResponse describes an uploaded document
type InfoResponse struct {
	MimeType string `json:"mime_type"`
	Size     int    `json:"size"`
	Pages    int    `json:"pages"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
