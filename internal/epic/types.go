package epic

// StoreGame is a raw catalog element from the Epic Games Store GraphQL search.
type StoreGame struct {
	Title       string           `json:"title"`
	ProductSlug string           `json:"productSlug"`
	URLSlug     string           `json:"urlSlug"`
	KeyImages   []KeyImage       `json:"keyImages"`
	Categories  []Category       `json:"categories"`
	Tags        []Tag            `json:"tags"`
	Price       *Price           `json:"price"`
	CatalogNs   CatalogNamespace `json:"catalogNs"`
}

// KeyImage is one promotional image attached to a catalog element.
type KeyImage struct {
	URL string `json:"url"`
}

// Category is a catalog category tag, e.g. "games", "addons", "testing".
type Category struct {
	Path string `json:"path"`
}

// Tag is a free-form catalog tag.
type Tag struct {
	Name string `json:"name"`
}

// Price wraps the catalog price block.
type Price struct {
	TotalPrice TotalPrice `json:"totalPrice"`
}

// TotalPrice carries Epic pricing in integer minor units.
type TotalPrice struct {
	DiscountPrice int `json:"discountPrice"`
	OriginalPrice int `json:"originalPrice"`
}

// CatalogNamespace holds the page mappings for a catalog element.
type CatalogNamespace struct {
	Mappings []CatalogMapping `json:"mappings"`
}

// CatalogMapping links a catalog element to a store page.
type CatalogMapping struct {
	PageSlug string `json:"pageSlug"`
	PageType string `json:"pageType"`
}

// searchResponse mirrors the GraphQL searchStoreQuery response envelope.
type searchResponse struct {
	Data struct {
		Catalog struct {
			SearchStore struct {
				Elements []StoreGame `json:"elements"`
			} `json:"searchStore"`
		} `json:"Catalog"`
	} `json:"data"`
}

// graphqlRequest is the POST body sent to the GraphQL endpoint.
type graphqlRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}
