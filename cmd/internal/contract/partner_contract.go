package contract

type PartnerResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CNPJ      string `json:"cnpj,omitempty"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CreatePartnerRequest struct {
	Name string `json:"name" validate:"required,min=2,max=120"`
	CNPJ string `json:"cnpj" validate:"omitempty,cnpj"`
}

type UpdatePartnerRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=2,max=120"`
	CNPJ   *string `json:"cnpj" validate:"omitempty,cnpj"`
	Active *bool   `json:"active" validate:"omitempty"`
}
