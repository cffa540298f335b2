package meta

// Graph API lead-gen payloads. field_data is a list of (name, values)
// pairs; values is almost always a single-element list.

type leadListResponse struct {
	Data []GraphLead `json:"data"`
}

type GraphLead struct {
	ID          string      `json:"id"`
	CreatedTime string      `json:"created_time"`
	FieldData   []FieldData `json:"field_data"`
}

type FieldData struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type ValidateTokenOutput struct {
	Valid bool   `json:"valid"`
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
}

type meResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WebhookEvent is the POST body Meta sends for page subscriptions.
type WebhookEvent struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Field string       `json:"field"`
	Value LeadgenValue `json:"value"`
}

type LeadgenValue struct {
	LeadgenID    string      `json:"leadgen_id"`
	CampaignName string      `json:"campaign_name"`
	FieldData    []FieldData `json:"field_data"`
}
