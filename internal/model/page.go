package model

// Page is a fetched web page.
type Page struct {
	URL         string `json:"url"`
	FinalURL    string `json:"final_url,omitempty"`
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type,omitempty"`
	HTML        string `json:"html"`
}
