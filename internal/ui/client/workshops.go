package client

import (
	"context"
	"net/http"
)

// WorkshopWritePayload is the body for creating or updating a workshop
type WorkshopWritePayload struct {
	Name         string  `json:"name" example:"Сборочный"`
	WorkshopType *string `json:"workshop_type" example:"Сборка"`
	WorkersCount *int    `json:"workers_count" example:"5"`
}

// Workshop is a production workshop
type Workshop struct {
	ID int64 `json:"id" example:"1"`
	WorkshopWritePayload
}

// FetchWorkshops returns all workshops
func (c *Client) FetchWorkshops(ctx context.Context) ([]Workshop, error) {
	return requestJSON[[]Workshop](ctx, c, resourceWorkshops, http.MethodGet, CollectionPath(resourceWorkshops), nil)
}

// FetchWorkshop returns one workshop
func (c *Client) FetchWorkshop(ctx context.Context, id int64) (*Workshop, error) {
	res, err := requestJSON[Workshop](ctx, c, resourceWorkshops, http.MethodGet, ItemPath(resourceWorkshops, id), nil)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateWorkshop creates a workshop
func (c *Client) CreateWorkshop(ctx context.Context, payload WorkshopWritePayload) (*Workshop, error) {
	res, err := requestJSON[Workshop](ctx, c, resourceWorkshops, http.MethodPost, CollectionPath(resourceWorkshops), payload)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateWorkshop replaces the writable fields of a workshop
func (c *Client) UpdateWorkshop(ctx context.Context, id int64, payload WorkshopWritePayload) (*Workshop, error) {
	res, err := requestJSON[Workshop](ctx, c, resourceWorkshops, http.MethodPut, ItemPath(resourceWorkshops, id), payload)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteWorkshop deletes a workshop (the backend also removes its product links)
func (c *Client) DeleteWorkshop(ctx context.Context, id int64) error {
	return requestVoid(ctx, c, resourceWorkshops, http.MethodDelete, ItemPath(resourceWorkshops, id), nil)
}
