package entity

// Partner is the top-level tenant: the distribution customer whose brands,
// stores and prices are managed through this application.
type Partner struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	CNPJ      string `gorm:"column:cnpj"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt int64  `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:false"`
}
