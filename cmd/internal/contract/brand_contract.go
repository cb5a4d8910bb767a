package contract

type BrandResponse struct {
	ID        int64  `json:"id"`
	PartnerID int64  `json:"partner_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CreateBrandRequest struct {
	PartnerID int64  `json:"partner_id" validate:"required"`
	Name      string `json:"name" validate:"required,min=2,max=80"`
}

type UpdateBrandRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=80"`
}
