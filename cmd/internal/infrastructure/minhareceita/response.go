package minhareceita

import (
	"strings"

	"aguagestor/cmd/internal/domain/entity"
)

type companyResponse struct {
	CNPJ               string `json:"cnpj"`
	LegalName          string `json:"razao_social"`
	TradeName          string `json:"nome_fantasia"`
	CompanySize        string `json:"porte"`
	BusinessStartDate  string `json:"data_inicio_atividade"`
	RegistrationStatus string `json:"descricao_situacao_cadastral"`

	AddressStreetName   string `json:"logradouro"`
	AddressNumber       string `json:"numero"`
	AddressNeighborhood string `json:"bairro"`
	AddressZipCode      string `json:"cep"`
	AddressCity         string `json:"municipio"`
	AddressRegion       string `json:"uf"`
}

func (c *companyResponse) ToDomain() *entity.Company {
	return &entity.Company{
		CNPJ:              c.CNPJ,
		LegalName:         c.LegalName,
		TradeName:         c.TradeName,
		CompanySize:       c.CompanySize,
		BusinessStartDate: c.BusinessStartDate,
		RegStatus:         translateStatus(c.RegistrationStatus),

		AddressStreet:       c.AddressStreetName,
		AddressNumber:       c.AddressNumber,
		AddressNeighborhood: c.AddressNeighborhood,
		AddressZipCode:      c.AddressZipCode,
		AddressCity:         c.AddressCity,
		AddressRegion:       c.AddressRegion,
	}
}

func translateStatus(status string) entity.RegStatus {
	switch strings.ToUpper(status) {
	case "ATIVA":
		return entity.StatusActive
	case "BAIXADA":
		return entity.StatusClosed
	case "SUSPENSA":
		return entity.StatusSuspended
	case "INAPTA":
		return entity.StatusUnfit
	default:
		return entity.StatusUnknown
	}
}
