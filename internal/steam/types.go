package steam

// SearchResponse is the Steam storesearch API response.
type SearchResponse struct {
	Items []SearchItem `json:"items"`
	Total int          `json:"total"`
}

// SearchItem is a single match from the storesearch endpoint. Only the app id
// is consumed; full details come from the appdetails endpoint.
type SearchItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GameDetails holds the raw per-app data returned by the appdetails endpoint.
// AppID and StoreURL are not part of the upstream payload; the client fills
// them in from the request.
type GameDetails struct {
	AppID         int            `json:"-"`
	StoreURL      string         `json:"-"`
	Name          string         `json:"name"`
	HeaderImage   string         `json:"header_image"`
	PriceOverview *PriceOverview `json:"price_overview,omitempty"`
}

// PriceOverview carries Steam pricing in integer minor units. Free and
// unpriced apps have no price overview at all.
type PriceOverview struct {
	Initial         int `json:"initial"`
	Final           int `json:"final"`
	DiscountPercent int `json:"discount_percent"`
}

// appDetailsEnvelope wraps the appdetails response, which is keyed by the
// stringified app id: {"<id>": {"success": bool, "data": {...}}}.
type appDetailsEnvelope struct {
	Success bool         `json:"success"`
	Data    *GameDetails `json:"data"`
}
