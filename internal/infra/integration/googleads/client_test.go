package googleads

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testConfig() Config {
	return Config{
		ClientID:       "real-client-id.apps.googleusercontent.com",
		ClientSecret:   "secret",
		DeveloperToken: "dev-token",
		CustomerID:     "1234567890",
		RefreshToken:   "refresh-token",
	}
}

func TestIsConfigured(t *testing.T) {
	assert.True(t, NewClient(testConfig()).IsConfigured())
	assert.False(t, NewClient(Config{}).IsConfigured())
	assert.False(t, NewClient(Config{ClientID: "your_google_ads_client_id"}).IsConfigured())
}

func TestFetchRawExchangesTokenAndSearches(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "refresh-token", r.PostForm.Get("refresh_token"))
		w.Write([]byte(`{"access_token":"ya29.fresh","token_type":"Bearer","expires_in":3599}`))
	}))
	defer tokenServer.Close()

	adsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers/1234567890/googleAds:search", r.URL.Path)
		assert.Equal(t, "Bearer ya29.fresh", r.Header.Get("Authorization"))
		assert.Equal(t, "dev-token", r.Header.Get("developer-token"))

		var req searchRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "FROM lead")
		assert.Contains(t, req.Query, "lead.lead_status = 'SUBMITTED'")

		w.Write([]byte(`{"results":[
			{"lead":{"leadId":"1","campaignName":"Self Drive","keywordText":"car rental bangalore",
				"emailAddress":"lead@example.com","phoneNumber":"9876543210",
				"firstName":"Ravi","lastName":"Kumar"}},
			{"lead":{"leadId":"2","emailAddress":"solo@example.com","firstName":"Solo"}}
		]}`))
	}))
	defer adsServer.Close()

	client := NewClient(testConfig()).WithBaseURLs(adsServer.URL, tokenServer.URL)
	rows, err := client.FetchRaw(context.Background())

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "Ravi Kumar", rows[0]["name"])
	assert.Equal(t, "lead@example.com", rows[0]["email"])
	assert.Equal(t, "Self Drive", rows[0]["campaign"])
	assert.Equal(t, "car rental bangalore", rows[0]["keyword"])
	assert.Equal(t, "google", rows[0]["source"])
	// Missing last name must not leave a trailing space.
	assert.Equal(t, "Solo", rows[1]["name"])
}

func TestFetchRawTokenExchangeRejected(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer tokenServer.Close()

	client := NewClient(testConfig()).WithBaseURLs("http://unused.invalid", tokenServer.URL)
	_, err := client.FetchRaw(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "token exchange rejected")
}

func TestFetchRawSearchRejected(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"ya29.fresh"}`))
	}))
	defer tokenServer.Close()

	adsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"Developer token not approved"}}`))
	}))
	defer adsServer.Close()

	client := NewClient(testConfig()).WithBaseURLs(adsServer.URL, tokenServer.URL)
	_, err := client.FetchRaw(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}
