package entity

// ProductType is the closed set of priced product lines.
type ProductType string

const (
	ProductGalao20L  ProductType = "GALAO_20L"
	ProductGalao10L  ProductType = "GALAO_10L"
	ProductPet1500ML ProductType = "PET_1500ML"
	ProductCaixaCopo ProductType = "CAIXA_COPO"
	ProductVasilhame ProductType = "VASILHAME"
)

// AllProducts lists every product type in display order.
var AllProducts = []ProductType{
	ProductGalao20L,
	ProductGalao10L,
	ProductPet1500ML,
	ProductCaixaCopo,
	ProductVasilhame,
}

// Label returns the fixed human-readable name shown in the admin UI.
func (p ProductType) Label() string {
	switch p {
	case ProductGalao20L:
		return "Galão 20L"
	case ProductGalao10L:
		return "Galão 10L"
	case ProductPet1500ML:
		return "PET 1,5L"
	case ProductCaixaCopo:
		return "Caixa de Copo"
	case ProductVasilhame:
		return "Vasilhame"
	default:
		return string(p)
	}
}

// StorePrice is one priced product line for a store. Monetary values are
// integer cents, never floating point. At most one row exists per
// (store, product); imports replace the whole set for a store at once.
type StorePrice struct {
	ID        int64       `gorm:"primaryKey"`
	StoreID   int64       `gorm:"not null;uniqueIndex:idx_price_store_product"`
	Product   ProductType `gorm:"not null;uniqueIndex:idx_price_store_product"`
	UnitCents int64       `gorm:"not null"`
	CreatedAt int64       `gorm:"not null"`
	UpdatedAt int64       `gorm:"not null;autoUpdateTime:false"`
}
