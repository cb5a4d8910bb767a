package service

import (
	"aguagestor/cmd/internal/contract"
	"aguagestor/cmd/internal/domain/entity"
	"aguagestor/cmd/internal/utils"
	"aguagestor/cmd/internal/utils/apierror"
	"aguagestor/cmd/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type BrandRepository interface {
	FindAllByPartner(partnerID int64) ([]*entity.Brand, error)
	FindByID(id int64) (*entity.Brand, error)
	FindByPartnerAndName(partnerID int64, name string) (*entity.Brand, error)
	Save(brand *entity.Brand) error
}

type DefaultBrandService struct {
	BrandRepo   BrandRepository
	PartnerRepo PartnerRepository
	Validate    *validator.Validate
}

func NewBrandService(brandRepo BrandRepository, partnerRepo PartnerRepository, validate *validator.Validate) *DefaultBrandService {
	return &DefaultBrandService{
		BrandRepo:   brandRepo,
		PartnerRepo: partnerRepo,
		Validate:    validate,
	}
}

func (b *DefaultBrandService) GetBrands(partnerID int64) ([]*contract.BrandResponse, apierror.ErrorResponse) {
	brands, err := b.BrandRepo.FindAllByPartner(partnerID)
	if err != nil {
		log.Errorf("failed to fetch brands: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.BrandResponse, len(brands))
	for i, brand := range brands {
		resp[i] = toBrandResponse(brand)
	}
	return resp, nil
}

func (b *DefaultBrandService) CreateBrand(actor *entity.User, req *contract.CreateBrandRequest) (*contract.BrandResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionManageCatalog) {
		return nil, apierror.UserMissingPermsError
	}

	utils.Sanitize(req)
	if valerr := b.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	partner, err := b.PartnerRepo.FindByID(req.PartnerID)
	if err != nil {
		log.Errorf("failed to fetch partner: %v", err)
		return nil, apierror.InternalServerError
	}

	if partner == nil {
		return nil, apierror.NotFoundError
	}

	// Creation doubles as an upsert on (partner, name): posting the same
	// brand twice returns the existing row instead of erroring.
	existing, err := b.BrandRepo.FindByPartnerAndName(req.PartnerID, req.Name)
	if err != nil {
		log.Errorf("failed to fetch brand: %v", err)
		return nil, apierror.InternalServerError
	}

	if existing != nil {
		return toBrandResponse(existing), nil
	}

	now := utils.NowUTC()
	brand := &entity.Brand{
		ID:        uid.Generate(),
		PartnerID: req.PartnerID,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := b.BrandRepo.Save(brand); err != nil {
		log.Errorf("failed to save brand: %v", err)
		return nil, apierror.InternalServerError
	}
	return toBrandResponse(brand), nil
}

func (b *DefaultBrandService) UpdateBrand(actor *entity.User, brandID int64, req *contract.UpdateBrandRequest) (*contract.BrandResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionManageCatalog) {
		return nil, apierror.UserMissingPermsError
	}

	utils.Sanitize(req)
	if valerr := b.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	brand, err := b.BrandRepo.FindByID(brandID)
	if err != nil {
		log.Errorf("failed to fetch brand: %v", err)
		return nil, apierror.InternalServerError
	}

	if brand == nil {
		return nil, apierror.NotFoundError
	}

	if req.Name != nil {
		brand.Name = *req.Name
	}

	brand.UpdatedAt = utils.NowUTC()
	if err := b.BrandRepo.Save(brand); err != nil {
		log.Errorf("failed to update brand: %v", err)
		return nil, apierror.InternalServerError
	}
	return toBrandResponse(brand), nil
}

func toBrandResponse(brand *entity.Brand) *contract.BrandResponse {
	return &contract.BrandResponse{
		ID:        brand.ID,
		PartnerID: brand.PartnerID,
		Name:      brand.Name,
		CreatedAt: utils.FormatEpoch(brand.CreatedAt),
		UpdatedAt: utils.FormatEpoch(brand.UpdatedAt),
	}
}
