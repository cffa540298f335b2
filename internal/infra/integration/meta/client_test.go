package meta

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsConfigured(t *testing.T) {
	assert.False(t, NewClient("", "act_123", "").IsConfigured())
	assert.False(t, NewClient("your_meta_access_token", "act_123", "").IsConfigured())
	assert.True(t, NewClient("EAAG-real-token", "act_123", "").IsConfigured())
}

func TestFetchRawMapsFieldData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/act_123/leads", r.URL.Path)
		assert.Equal(t, "EAAG-token", r.URL.Query().Get("access_token"))
		assert.Equal(t, "id,created_time,field_data", r.URL.Query().Get("fields"))
		w.Write([]byte(`{"data":[
			{"id":"lg_1","created_time":"2026-08-30T10:00:00+0000","field_data":[
				{"name":"full_name","values":["Ravi Kumar"]},
				{"name":"email","values":["ravi@example.com"]},
				{"name":"phone_number","values":["9876543210"]},
				{"name":"city","values":["Bangalore"]}
			]}
		]}`))
	}))
	defer server.Close()

	client := NewClient("EAAG-token", "act_123", "").WithBaseURL(server.URL)
	rows, err := client.FetchRaw(context.Background())

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Ravi Kumar", rows[0]["name"])
	assert.Equal(t, "ravi@example.com", rows[0]["email"])
	assert.Equal(t, "9876543210", rows[0]["phone"])
	assert.Equal(t, "Bangalore", rows[0]["city"])
	assert.Equal(t, "meta", rows[0]["source"])
}

func TestFetchRawUpstreamRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token"}}`))
	}))
	defer server.Close()

	client := NewClient("expired", "act_123", "").WithBaseURL(server.URL)
	_, err := client.FetchRaw(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestValidateToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me", r.URL.Path)
		w.Write([]byte(`{"id":"10123","name":"UrbanCruise Page"}`))
	}))
	defer server.Close()

	client := NewClient("EAAG-token", "act_123", "").WithBaseURL(server.URL)
	out, err := client.ValidateToken(context.Background())

	assert.NoError(t, err)
	assert.True(t, out.Valid)
	assert.Equal(t, "UrbanCruise Page", out.Name)
}

func TestValidateTokenInvalid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("bad", "act_123", "").WithBaseURL(server.URL)
	out, err := client.ValidateToken(context.Background())

	assert.NoError(t, err)
	assert.False(t, out.Valid)
}

func TestVerifyWebhookToken(t *testing.T) {
	client := NewClient("tok", "act_123", "verify-secret")
	assert.True(t, client.VerifyWebhookToken("verify-secret"))
	assert.False(t, client.VerifyWebhookToken("wrong"))

	unset := NewClient("tok", "act_123", "")
	assert.False(t, unset.VerifyWebhookToken(""))
}

func TestRowsFromWebhook(t *testing.T) {
	event := WebhookEvent{
		Object: "page",
		Entry: []WebhookEntry{{
			ID: "page-1",
			Changes: []WebhookChange{
				{Field: "leadgen", Value: LeadgenValue{
					LeadgenID:    "lg_9",
					CampaignName: "Monsoon Offer",
					FieldData: []FieldData{
						{Name: "full_name", Values: []string{"Priya Sharma"}},
						{Name: "email", Values: []string{"priya@example.com"}},
					},
				}},
				{Field: "feed", Value: LeadgenValue{}},
			},
		}},
	}

	rows := RowsFromWebhook(event)

	assert.Len(t, rows, 1)
	assert.Equal(t, "Priya Sharma", rows[0]["name"])
	assert.Equal(t, "Monsoon Offer", rows[0]["campaign"])
}

func TestRowsFromWebhookIgnoresNonPageObjects(t *testing.T) {
	assert.Nil(t, RowsFromWebhook(WebhookEvent{Object: "user"}))
}
