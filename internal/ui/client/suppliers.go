package client

import (
	"context"
	"net/http"
)

// SupplierWritePayload is the body for creating or updating a supplier
type SupplierWritePayload struct {
	SupplierType string `json:"supplier_type" example:"ООО"`
	Name         string `json:"name" example:"Лесопилка"`
	INN          string `json:"inn" example:"7701234567"`
	Phone        string `json:"phone" example:"+7 495 000 00 00"`
	Email        string `json:"email" example:"sales@example.ru"`
}

// Supplier is a material supplier
type Supplier struct {
	ID int64 `json:"id" example:"1"`
	SupplierWritePayload
}

// FetchSuppliers returns all suppliers
func (c *Client) FetchSuppliers(ctx context.Context) ([]Supplier, error) {
	return requestJSON[[]Supplier](ctx, c, resourceSuppliers, http.MethodGet, CollectionPath(resourceSuppliers), nil)
}

// FetchSupplier returns one supplier
func (c *Client) FetchSupplier(ctx context.Context, id int64) (*Supplier, error) {
	res, err := requestJSON[Supplier](ctx, c, resourceSuppliers, http.MethodGet, ItemPath(resourceSuppliers, id), nil)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateSupplier creates a supplier
func (c *Client) CreateSupplier(ctx context.Context, payload SupplierWritePayload) (*Supplier, error) {
	res, err := requestJSON[Supplier](ctx, c, resourceSuppliers, http.MethodPost, CollectionPath(resourceSuppliers), payload)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateSupplier replaces the writable fields of a supplier
func (c *Client) UpdateSupplier(ctx context.Context, id int64, payload SupplierWritePayload) (*Supplier, error) {
	res, err := requestJSON[Supplier](ctx, c, resourceSuppliers, http.MethodPut, ItemPath(resourceSuppliers, id), payload)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteSupplier deletes a supplier. The backend refuses while materials still reference it.
func (c *Client) DeleteSupplier(ctx context.Context, id int64) error {
	return requestVoid(ctx, c, resourceSuppliers, http.MethodDelete, ItemPath(resourceSuppliers, id), nil)
}
