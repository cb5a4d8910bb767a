package contract

type StoreResponse struct {
	ID             int64                 `json:"id"`
	BrandID        int64                 `json:"brand_id"`
	PartnerID      int64                 `json:"partner_id"`
	Name           string                `json:"name"`
	NormalizedName string                `json:"normalized_name"`
	Address        string                `json:"address,omitempty"`
	Street         string                `json:"street,omitempty"`
	Number         string                `json:"number,omitempty"`
	Complement     string                `json:"complement,omitempty"`
	District       string                `json:"district,omitempty"`
	City           string                `json:"city,omitempty"`
	State          string                `json:"state,omitempty"`
	PostalCode     string                `json:"postal_code,omitempty"`
	ExternalCode   string                `json:"external_code,omitempty"`
	CNPJ           string                `json:"cnpj,omitempty"`
	Mall           *string               `json:"mall,omitempty"`
	Status         string                `json:"status"`
	Prices         []*StorePriceResponse `json:"prices,omitempty"`
	CreatedAt      string                `json:"created_at"`
	UpdatedAt      string                `json:"updated_at"`
}

type StorePriceResponse struct {
	Product   string `json:"product"`
	Label     string `json:"label"`
	UnitCents int64  `json:"unit_cents"`
	Display   string `json:"display"`
}

type CreateStoreRequest struct {
	BrandID      int64   `json:"brand_id" validate:"required"`
	Name         string  `json:"name" validate:"required,min=2,max=120"`
	Address      string  `json:"address" validate:"required,max=300"`
	City         string  `json:"city" validate:"omitempty,max=100"`
	State        string  `json:"state" validate:"omitempty,uf"`
	ExternalCode string  `json:"external_code" validate:"omitempty,max=40"`
	CNPJ         string  `json:"cnpj" validate:"omitempty,cnpj"`
	Mall         *string `json:"mall" validate:"omitempty,min=2,max=120"`
}

type UpdateStoreRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=120"`
	Address      *string `json:"address" validate:"omitempty,max=300"`
	City         *string `json:"city" validate:"omitempty,max=100"`
	State        *string `json:"state" validate:"omitempty,uf"`
	ExternalCode *string `json:"external_code" validate:"omitempty,max=40"`
	CNPJ         *string `json:"cnpj" validate:"omitempty,cnpj"`
	Mall         *string `json:"mall" validate:"omitempty,min=2,max=120"`
	Status       *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type PriceEntryRequest struct {
	Product   string `json:"product" validate:"required,oneof=GALAO_20L GALAO_10L PET_1500ML CAIXA_COPO VASILHAME"`
	UnitCents int64  `json:"unit_cents" validate:"required,min=1"`
}

// ReplacePricesRequest overwrites the full price set of a store; products
// left out of the list lose their price.
type ReplacePricesRequest struct {
	Prices []*PriceEntryRequest `json:"prices" validate:"required,max=5,dive"`
}
