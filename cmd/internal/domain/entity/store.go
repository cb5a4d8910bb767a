package entity

type StoreStatus string

const (
	StoreActive   StoreStatus = "ACTIVE"
	StoreInactive StoreStatus = "INACTIVE"
)

// Store is a physical retail location that sells the partner's products.
//
// NormalizedName is always derived from Name (diacritics stripped, symbol runs
// collapsed to single spaces, lower-cased, trimmed) and is the lookup key the
// import path uses together with brand, city and mall absence. There is
// deliberately no unique index on that tuple: legacy rows and concurrent
// imports can produce duplicates, which the merge flow exists to clean up.
type Store struct {
	ID             int64   `gorm:"primaryKey"`
	BrandID        int64   `gorm:"not null;index:idx_store_lookup"`
	PartnerID      int64   `gorm:"not null;index"`
	Name           string  `gorm:"not null"`
	NormalizedName string  `gorm:"not null;index:idx_store_lookup"`
	Address        string  // raw free-text delivery address as imported
	Street         string
	Number         string
	Complement     string
	District       string
	City           string `gorm:"index:idx_store_lookup"`
	State          string
	PostalCode     string
	ExternalCode   string
	CNPJ           string      `gorm:"column:cnpj;index"`
	Mall           *string     // nil = street store, the only kind the importer creates
	Status         StoreStatus `gorm:"not null;default:ACTIVE"`
	CreatedAt      int64       `gorm:"not null"`
	UpdatedAt      int64       `gorm:"not null;autoUpdateTime:false"`

	// Relations
	Brand Brand `gorm:"foreignKey:BrandID;references:ID"`
}
