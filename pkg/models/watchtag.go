package models

// WatchTag annotates an alert with a matched watch rule.
type WatchTag struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Watchlist string `json:"watchlist,omitempty"`
	Priority  string `json:"priority,omitempty"`
}
