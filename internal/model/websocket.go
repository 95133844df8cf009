package model

// WebSocket message types
const (
	WSMessageTypeHired = "hired"
	WSMessageTypePing  = "ping"
	WSMessageTypePong  = "pong"
)

// WSMessage represents a generic WebSocket message
type WSMessage struct {
	Type string `json:"type"`
}

// WSHiredMessage is pushed to a freelancer when one of their bids is
// hired. Delivery is best-effort; the hire itself never depends on it.
type WSHiredMessage struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	GigID    string `json:"gigId"`
	GigTitle string `json:"gigTitle"`
	BidID    string `json:"bidId"`
}
