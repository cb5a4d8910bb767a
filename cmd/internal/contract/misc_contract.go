package contract

type CompanyResponse struct {
	CNPJ              string          `json:"cnpj"`
	LegalName         string          `json:"legal_name"`
	TradeName         string          `json:"trade_name"`
	CompanySize       string          `json:"company_size"`
	BusinessStartDate string          `json:"business_start_date"`
	RegStatus         string          `json:"registration_status"`
	Address           *CompanyAddress `json:"address"`
	Cached            bool            `json:"cached"`
}

type CompanyAddress struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	ZipCode      string `json:"zip_code"`
	City         string `json:"city"`
	Region       string `json:"region"`
}

type ProductTypeResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
