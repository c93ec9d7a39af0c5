package client

import (
	"context"
	"net/http"
)

// PartnerWritePayload is the body for creating or updating a partner
type PartnerWritePayload struct {
	PartnerType  string `json:"partner_type" example:"ООО"`
	CompanyName  string `json:"company_name" example:"База Строитель"`
	LegalAddress string `json:"legal_address" example:"652050, Кемеровская область, город Юрга, ул. Лесная, 15"`
	INN          string `json:"inn" example:"2222455179"`
	DirectorName string `json:"director_name" example:"Иванова Александра Ивановна"`
	Phone        string `json:"phone" example:"493 123 45 67"`
	Email        string `json:"email" example:"aleksandraivanova@ml.ru"`
	LogoURL      string `json:"logo_url" example:""`
	Rating       int    `json:"rating" example:"7" minimum:"0" maximum:"10"`
	SalesPlaces  string `json:"sales_places" example:""`
}

// Partner is a partner company
type Partner struct {
	ID int64 `json:"id" example:"1"`
	PartnerWritePayload
}

// FetchPartners returns all partners
func (c *Client) FetchPartners(ctx context.Context) ([]Partner, error) {
	return requestJSON[[]Partner](ctx, c, resourcePartners, http.MethodGet, CollectionPath(resourcePartners), nil)
}

// FetchPartner returns one partner
func (c *Client) FetchPartner(ctx context.Context, id int64) (*Partner, error) {
	res, err := requestJSON[Partner](ctx, c, resourcePartners, http.MethodGet, ItemPath(resourcePartners, id), nil)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CreatePartner creates a partner
func (c *Client) CreatePartner(ctx context.Context, payload PartnerWritePayload) (*Partner, error) {
	res, err := requestJSON[Partner](ctx, c, resourcePartners, http.MethodPost, CollectionPath(resourcePartners), payload)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdatePartner replaces the writable fields of a partner
func (c *Client) UpdatePartner(ctx context.Context, id int64, payload PartnerWritePayload) (*Partner, error) {
	res, err := requestJSON[Partner](ctx, c, resourcePartners, http.MethodPut, ItemPath(resourcePartners, id), payload)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// DeletePartner deletes a partner
func (c *Client) DeletePartner(ctx context.Context, id int64) error {
	return requestVoid(ctx, c, resourcePartners, http.MethodDelete, ItemPath(resourcePartners, id), nil)
}
