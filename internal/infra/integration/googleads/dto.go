package googleads

// Search payloads for the googleAds:search endpoint.

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Lead AdLead `json:"lead"`
}

// AdLead mirrors the lead resource fields selected by the GAQL query.
type AdLead struct {
	LeadID       string `json:"leadId"`
	CampaignName string `json:"campaignName"`
	KeywordText  string `json:"keywordText"`
	EmailAddress string `json:"emailAddress"`
	PhoneNumber  string `json:"phoneNumber"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
