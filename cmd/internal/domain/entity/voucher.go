package entity

type VoucherStatus string

const (
	VoucherActive   VoucherStatus = "ACTIVE"
	VoucherRedeemed VoucherStatus = "REDEEMED"
	VoucherExpired  VoucherStatus = "EXPIRED"
)

// Voucher is a discount/report document attached to a store. The actual file
// (scanned report, PDF) lives in S3 under FileKey; only metadata is kept here.
type Voucher struct {
	ID          int64  `gorm:"primaryKey"`
	StoreID     int64  `gorm:"not null;index"`
	Code        string `gorm:"not null"`
	Description string
	FileKey     string
	Status      VoucherStatus `gorm:"not null;default:ACTIVE"`
	ExpiresAt   int64         // 0 = never expires
	CreatedAt   int64         `gorm:"not null"`
	UpdatedAt   int64         `gorm:"not null;autoUpdateTime:false"`

	// Relations
	Store Store `gorm:"foreignKey:StoreID;references:ID"`
}
