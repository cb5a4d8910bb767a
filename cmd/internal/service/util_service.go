package service

import (
	"context"
	"errors"

	"aguagestor/cmd/internal/contract"
	"aguagestor/cmd/internal/domain/entity"
	"aguagestor/cmd/internal/infrastructure/minhareceita"
	"aguagestor/cmd/internal/utils"
	"aguagestor/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

type CompanyRepository interface {
	FindByCNPJ(cnpj string) (*entity.Company, error)
	Save(company *entity.Company) error
	DeleteExpired(before int64) error
}

type CompanyFetcher interface {
	GetByCNPJ(ctx context.Context, cnpj string) (*entity.Company, error)
}

type DefaultUtilService struct {
	CompanyRepo CompanyRepository
	Receita     CompanyFetcher
}

func NewUtilService(companyRepo CompanyRepository, receita CompanyFetcher) *DefaultUtilService {
	return &DefaultUtilService{
		CompanyRepo: companyRepo,
		Receita:     receita,
	}
}

// GetCompanyByCNPJ looks up the public registry record of a CNPJ, consulting
// the local cache first. A 404 from the registry is cached too, so repeated
// lookups of a dead CNPJ do not keep hammering the API.
func (u *DefaultUtilService) GetCompanyByCNPJ(ctx context.Context, actor *entity.User, cnpj string) (*contract.CompanyResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionPerformLookup) {
		return nil, apierror.UserMissingPermsError
	}

	cnpj = utils.DigitsOnly(cnpj)
	if !utils.IsCNPJValid(cnpj) {
		return nil, apierror.InvalidCNPJError
	}

	cached, err := u.CompanyRepo.FindByCNPJ(cnpj)
	if err != nil {
		log.Errorf("failed to fetch cached company: %v", err)
		return nil, apierror.InternalServerError
	}

	if cached != nil {
		if !cached.Found {
			return nil, apierror.NotFoundError
		}
		return toCompanyResponse(cached, true), nil
	}

	company, err := u.Receita.GetByCNPJ(ctx, cnpj)
	if errors.Is(err, minhareceita.ErrNotFound) {
		u.cacheNegativeResult(cnpj)
		return nil, apierror.NotFoundError
	}

	if err != nil {
		log.Errorf("failed to fetch company from registry: %v", err)
		return nil, apierror.InternalServerError
	}

	company.CachedAt = utils.NowUTC()
	if err := u.CompanyRepo.Save(company); err != nil {
		// Caching is best-effort, the lookup itself succeeded.
		log.Warnf("failed to cache company %s: %v", cnpj, err)
	}
	return toCompanyResponse(company, false), nil
}

// GetProductTypes lists the product catalog for pickers in the admin UI.
func (u *DefaultUtilService) GetProductTypes() []*contract.ProductTypeResponse {
	products := entity.AllProducts
	resp := make([]*contract.ProductTypeResponse, len(products))
	for i, product := range products {
		resp[i] = &contract.ProductTypeResponse{
			Value: string(product),
			Label: product.Label(),
		}
	}
	return resp
}

func (u *DefaultUtilService) cacheNegativeResult(cnpj string) {
	err := u.CompanyRepo.Save(&entity.Company{
		CNPJ:      cnpj,
		RegStatus: entity.StatusUnknown,
		Found:     false,
		CachedAt:  utils.NowUTC(),
	})
	if err != nil {
		log.Warnf("failed to cache negative lookup of %s: %v", cnpj, err)
	}
}

func toCompanyResponse(company *entity.Company, cached bool) *contract.CompanyResponse {
	return &contract.CompanyResponse{
		CNPJ:              company.CNPJ,
		LegalName:         company.LegalName,
		TradeName:         company.TradeName,
		CompanySize:       company.CompanySize,
		BusinessStartDate: company.BusinessStartDate,
		RegStatus:         string(company.RegStatus),
		Address: &contract.CompanyAddress{
			Street:       company.AddressStreet,
			Number:       company.AddressNumber,
			Neighborhood: company.AddressNeighborhood,
			ZipCode:      company.AddressZipCode,
			City:         company.AddressCity,
			Region:       company.AddressRegion,
		},
		Cached: cached,
	}
}
