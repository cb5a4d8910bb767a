package entity

type RegStatus string

const (
	StatusActive    RegStatus = "ACTIVE"
	StatusClosed    RegStatus = "CLOSED"
	StatusSuspended RegStatus = "SUSPENDED"
	StatusUnfit     RegStatus = "UNFIT"
	StatusUnknown   RegStatus = "UNKNOWN"
)

// Company caches the public registry data behind a CNPJ. The admin UI uses it
// to prefill store address fields and to sanity-check the tax id typed on a
// store before it becomes a dedup key.
type Company struct {
	CNPJ              string `gorm:"primaryKey;column:cnpj"`
	LegalName         string
	TradeName         string
	CompanySize       string
	BusinessStartDate string
	RegStatus         RegStatus

	AddressStreet       string
	AddressNumber       string
	AddressNeighborhood string
	AddressZipCode      string
	AddressCity         string
	AddressRegion       string

	// Found controls the negative caching strategy for external API lookups:
	//
	// - true: The CNPJ is valid and the company data is cached.
	//
	// - false: The CNPJ was queried, returned a 404, and is safely cached as invalid.
	//
	// This prevents repeated API calls for CNPJs that we already know do not exist.
	Found    bool  `gorm:"default:true"`
	CachedAt int64 `gorm:"autoUpdateTime:false"`
}
