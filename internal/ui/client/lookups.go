package client

import (
	"context"
	"net/http"
)

// LookupItem is a minimal reference record used to populate selection inputs
type LookupItem struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Гостиные"`
}

// HealthResponse is returned by the backend health endpoint
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// FetchProductTypes returns the product types, ordered by name
func (c *Client) FetchProductTypes(ctx context.Context) ([]LookupItem, error) {
	return requestJSON[[]LookupItem](ctx, c, resourceProductTypes, http.MethodGet, CollectionPath(resourceProductTypes), nil)
}

// FetchMaterialTypes returns the material types, ordered by name
func (c *Client) FetchMaterialTypes(ctx context.Context) ([]LookupItem, error) {
	return requestJSON[[]LookupItem](ctx, c, resourceMaterialTypes, http.MethodGet, CollectionPath(resourceMaterialTypes), nil)
}

// Health calls the backend health endpoint
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	res, err := requestJSON[HealthResponse](ctx, c, resourceHealth, http.MethodGet, CollectionPath(resourceHealth), nil)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// LookupName returns the name of the item with the given id, or "" if not present
func LookupName(items []LookupItem, id int64) string {
	for _, item := range items {
		if item.ID == id {
			return item.Name
		}
	}
	return ""
}

// LookupID returns the id of the item with the given name
func LookupID(items []LookupItem, name string) (int64, bool) {
	for _, item := range items {
		if item.Name == name {
			return item.ID, true
		}
	}
	return 0, false
}
