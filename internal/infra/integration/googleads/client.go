package googleads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/urbancruise/cruise-lms/internal/entity"
)

const placeholderClientID = "your_google_ads_client_id"

// Only leads the user actually submitted; drafts and partials stay out.
const leadQuery = `
	SELECT
		lead.lead_id,
		lead.campaign_name,
		lead.keyword_text,
		lead.email_address,
		lead.phone_number,
		lead.first_name,
		lead.last_name
	FROM lead
	WHERE lead.lead_status = 'SUBMITTED'`

type Config struct {
	ClientID       string
	ClientSecret   string
	DeveloperToken string
	CustomerID     string
	RefreshToken   string
}

// Client polls the Google Ads API for submitted lead-form entries. It
// implements usecase.LeadPoller. Each poll exchanges the refresh token
// for a fresh access token; no token caching, polls are infrequent.
type Client struct {
	cfg      Config
	baseURL  string
	tokenURL string
	http     *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:      cfg,
		baseURL:  "https://googleads.googleapis.com/v16",
		tokenURL: "https://oauth2.googleapis.com/token",
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURLs points the client at test servers.
func (c *Client) WithBaseURLs(base, token string) *Client {
	c.baseURL = base
	c.tokenURL = token
	return c
}

func (c *Client) Source() string {
	return entity.SourceGoogle
}

func (c *Client) IsConfigured() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientID != placeholderClientID
}

func (c *Client) FetchRaw(ctx context.Context) ([]map[string]any, error) {
	accessToken, err := c.exchangeRefreshToken(ctx)
	if err != nil {
		return nil, err
	}

	leads, err := c.searchLeads(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]any, 0, len(leads))
	for _, lead := range leads {
		rows = append(rows, map[string]any{
			"name":     strings.TrimSpace(lead.FirstName + " " + lead.LastName),
			"email":    lead.EmailAddress,
			"phone":    lead.PhoneNumber,
			"campaign": lead.CampaignName,
			"keyword":  lead.KeywordText,
			"source":   entity.SourceGoogle,
		})
	}
	return rows, nil
}

func (c *Client) exchangeRefreshToken(ctx context.Context) (string, error) {
	form := url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"refresh_token": {c.cfg.RefreshToken},
		"grant_type":    {"refresh_token"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("google token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("google token exchange rejected (status %d): %s", resp.StatusCode, string(body))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	return token.AccessToken, nil
}

func (c *Client) searchLeads(ctx context.Context, accessToken string) ([]AdLead, error) {
	endpoint := fmt.Sprintf("%s/customers/%s/googleAds:search", c.baseURL, c.cfg.CustomerID)

	body, err := json.Marshal(searchRequest{Query: leadQuery})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("developer-token", c.cfg.DeveloperToken)
	req.Header.Set("login-customer-id", c.cfg.CustomerID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google ads request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("google ads api rejected (status %d): %s", resp.StatusCode, string(respBody))
	}

	var response searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode google ads response: %w", err)
	}

	leads := make([]AdLead, 0, len(response.Results))
	for _, result := range response.Results {
		leads = append(leads, result.Lead)
	}
	return leads, nil
}
