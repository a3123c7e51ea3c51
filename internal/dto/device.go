package dto

type CreateDeviceRequest struct {
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Group      string         `json:"group"`
	Traits     []string       `json:"traits"`
	Attributes map[string]any `json:"attributes"`
}

type ClaimDeviceRequest struct {
	Name     string `json:"name"`
	APIKey   string `json:"apikey"`
	DeviceID string `json:"deviceid"`
	Group    string `json:"group"`
}

// UpdateDeviceRequest uses pointers so absent fields can be told apart from empty ones.
type UpdateDeviceRequest struct {
	Name  *string `json:"name"`
	Group *string `json:"group"`
}
