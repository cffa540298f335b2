package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/urbancruise/cruise-lms/internal/entity"
)

const placeholderToken = "your_meta_access_token"

// Client polls the Graph API for lead-gen form submissions. It implements
// usecase.LeadPoller.
type Client struct {
	accessToken        string
	adAccountID        string
	webhookVerifyToken string
	baseURL            string
	http               *http.Client
}

func NewClient(accessToken, adAccountID, webhookVerifyToken string) *Client {
	return &Client{
		accessToken:        accessToken,
		adAccountID:        adAccountID,
		webhookVerifyToken: webhookVerifyToken,
		baseURL:            "https://graph.facebook.com/v18.0",
		http:               &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL points the client at a test server.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
	return c
}

func (c *Client) Source() string {
	return entity.SourceMeta
}

func (c *Client) IsConfigured() bool {
	return c.accessToken != "" && c.accessToken != placeholderToken
}

// FetchRaw is a full-scan poll: every currently available lead-gen
// submission comes back on every call. The resolver downstream makes
// repeated polls idempotent.
func (c *Client) FetchRaw(ctx context.Context) ([]map[string]any, error) {
	endpoint := fmt.Sprintf("%s/%s/leads?%s", c.baseURL, c.adAccountID, url.Values{
		"access_token": {c.accessToken},
		"fields":       {"id,created_time,field_data"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("meta request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("meta api rejected (status %d): %s", resp.StatusCode, string(body))
	}

	var response leadListResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode meta response: %w", err)
	}

	rows := make([]map[string]any, 0, len(response.Data))
	for _, lead := range response.Data {
		rows = append(rows, rowFromFieldData(lead.FieldData, ""))
	}
	return rows, nil
}

// ValidateToken checks the access token against /me.
func (c *Client) ValidateToken(ctx context.Context) (*ValidateTokenOutput, error) {
	endpoint := fmt.Sprintf("%s/me?%s", c.baseURL, url.Values{
		"access_token": {c.accessToken},
		"fields":       {"id,name"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("meta request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ValidateTokenOutput{Valid: false}, nil
	}

	var me meResponse
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return nil, fmt.Errorf("failed to decode meta response: %w", err)
	}

	return &ValidateTokenOutput{Valid: me.ID != "", ID: me.ID, Name: me.Name}, nil
}

// VerifyWebhookToken handles the GET subscription handshake.
func (c *Client) VerifyWebhookToken(token string) bool {
	return c.webhookVerifyToken != "" && token == c.webhookVerifyToken
}

// RowsFromWebhook extracts raw lead rows from a page webhook event.
// Only leadgen changes on page objects are considered.
func RowsFromWebhook(event WebhookEvent) []map[string]any {
	if event.Object != "page" {
		return nil
	}
	var rows []map[string]any
	for _, entry := range event.Entry {
		for _, change := range entry.Changes {
			if change.Field != "leadgen" {
				continue
			}
			rows = append(rows, rowFromFieldData(change.Value.FieldData, change.Value.CampaignName))
		}
	}
	return rows
}

// rowFromFieldData translates Graph field names into the canonical alias
// space the normalizer probes.
func rowFromFieldData(fields []FieldData, campaign string) map[string]any {
	row := map[string]any{"source": entity.SourceMeta}
	if campaign != "" {
		row["campaign"] = campaign
	}
	for _, f := range fields {
		if len(f.Values) == 0 {
			continue
		}
		switch f.Name {
		case "full_name":
			row["name"] = f.Values[0]
		case "email":
			row["email"] = f.Values[0]
		case "phone_number":
			row["phone"] = f.Values[0]
		case "campaign_name":
			row["campaign"] = f.Values[0]
		case "city":
			row["city"] = f.Values[0]
		}
	}
	return row
}
