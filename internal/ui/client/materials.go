package client

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// MaterialWritePayload is the body for creating or updating a material
type MaterialWritePayload struct {
	Name              string          `json:"name" example:"Доска сосновая"`
	MaterialTypeID    int64           `json:"material_type_id" example:"1"`
	Supplier          int64           `json:"supplier" example:"2"`
	Unit              string          `json:"unit" example:"шт"`
	QuantityInPackage *int            `json:"quantity_in_package" example:"10"`
	Description       string          `json:"description" example:""`
	ImageURL          string          `json:"image_url" example:""`
	Cost              decimal.Decimal `json:"cost" swaggertype:"string" example:"350.00"`
	StockQuantity     int             `json:"stock_quantity" example:"120"`
	MinQuantity       int             `json:"min_quantity" example:"20"`
}

// Material is a stocked raw material.
// MaterialType and SupplierName are computed by the backend and are not part of the write payload.
type Material struct {
	ID int64 `json:"id" example:"1"`
	MaterialWritePayload
	MaterialType string `json:"material_type" example:"Мебельный щит из массива дерева"`
	SupplierName string `json:"supplier_name" example:"Лесопилка"`
}

// BelowMinimum reports whether the stock has fallen under the minimum allowed quantity
func (m Material) BelowMinimum() bool {
	return m.StockQuantity < m.MinQuantity
}

// FetchMaterials returns all materials
func (c *Client) FetchMaterials(ctx context.Context) ([]Material, error) {
	return requestJSON[[]Material](ctx, c, resourceMaterials, http.MethodGet, CollectionPath(resourceMaterials), nil)
}

// FetchMaterial returns one material
func (c *Client) FetchMaterial(ctx context.Context, id int64) (*Material, error) {
	res, err := requestJSON[Material](ctx, c, resourceMaterials, http.MethodGet, ItemPath(resourceMaterials, id), nil)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateMaterial creates a material
func (c *Client) CreateMaterial(ctx context.Context, payload MaterialWritePayload) (*Material, error) {
	res, err := requestJSON[Material](ctx, c, resourceMaterials, http.MethodPost, CollectionPath(resourceMaterials), payload)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateMaterial replaces the writable fields of a material
func (c *Client) UpdateMaterial(ctx context.Context, id int64, payload MaterialWritePayload) (*Material, error) {
	res, err := requestJSON[Material](ctx, c, resourceMaterials, http.MethodPut, ItemPath(resourceMaterials, id), payload)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteMaterial deletes a material
func (c *Client) DeleteMaterial(ctx context.Context, id int64) error {
	return requestVoid(ctx, c, resourceMaterials, http.MethodDelete, ItemPath(resourceMaterials, id), nil)
}
