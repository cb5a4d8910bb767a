package contract

const MaxVoucherFileSizeBytes = 15 * 1024 * 1024

var ValidVoucherFileTypes = []string{"pdf", "png", "jpg", "jpeg", "webp"}

type VoucherResponse struct {
	ID          int64  `json:"id"`
	StoreID     int64  `json:"store_id"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	FileKey     string `json:"file_key,omitempty"`
	Status      string `json:"status"`
	ExpiresAt   string `json:"expires_at,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type CreateVoucherRequest struct {
	StoreID     int64  `json:"store_id" validate:"required"`
	Code        string `json:"code" validate:"required,min=2,max=60"`
	Description string `json:"description" validate:"omitempty,max=300"`
	ExpiresAt   int64  `json:"expires_at" validate:"omitempty,min=0"`
}

type UpdateVoucherRequest struct {
	Description *string `json:"description" validate:"omitempty,max=300"`
	Status      *string `json:"status" validate:"omitempty,oneof=ACTIVE REDEEMED EXPIRED"`
	ExpiresAt   *int64  `json:"expires_at" validate:"omitempty,min=0"`
}
