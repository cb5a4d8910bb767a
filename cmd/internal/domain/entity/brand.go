package entity

// Brand is a named product line owned by exactly one Partner.
// The (partner, name) pair is the natural key used by the import upsert.
type Brand struct {
	ID        int64  `gorm:"primaryKey"`
	PartnerID int64  `gorm:"not null;uniqueIndex:idx_brand_partner_name"`
	Name      string `gorm:"not null;uniqueIndex:idx_brand_partner_name"`
	CreatedAt int64  `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:false"`

	// Relations
	Partner Partner `gorm:"foreignKey:PartnerID;references:ID"`
}
