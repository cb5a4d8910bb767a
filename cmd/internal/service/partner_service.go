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

type PartnerRepository interface {
	FindAll() ([]*entity.Partner, error)
	FindByID(id int64) (*entity.Partner, error)
	Save(partner *entity.Partner) error
}

type DefaultPartnerService struct {
	PartnerRepo PartnerRepository
	Validate    *validator.Validate
}

func NewPartnerService(partnerRepo PartnerRepository, validate *validator.Validate) *DefaultPartnerService {
	return &DefaultPartnerService{
		PartnerRepo: partnerRepo,
		Validate:    validate,
	}
}

func (p *DefaultPartnerService) GetPartners() ([]*contract.PartnerResponse, apierror.ErrorResponse) {
	partners, err := p.PartnerRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch partners: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.PartnerResponse, len(partners))
	for i, partner := range partners {
		resp[i] = toPartnerResponse(partner)
	}
	return resp, nil
}

func (p *DefaultPartnerService) GetPartnerByID(id int64) (*contract.PartnerResponse, apierror.ErrorResponse) {
	partner, err := p.PartnerRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch partner: %v", err)
		return nil, apierror.InternalServerError
	}

	if partner == nil {
		return nil, apierror.NotFoundError
	}
	return toPartnerResponse(partner), nil
}

func (p *DefaultPartnerService) CreatePartner(actor *entity.User, req *contract.CreatePartnerRequest) (*contract.PartnerResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionManageCatalog) {
		return nil, apierror.UserMissingPermsError
	}

	utils.Sanitize(req)
	if valerr := p.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	now := utils.NowUTC()
	partner := &entity.Partner{
		ID:        uid.Generate(),
		Name:      req.Name,
		CNPJ:      utils.DigitsOnly(req.CNPJ),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := p.PartnerRepo.Save(partner); err != nil {
		log.Errorf("failed to save partner: %v", err)
		return nil, apierror.InternalServerError
	}
	return toPartnerResponse(partner), nil
}

func (p *DefaultPartnerService) UpdatePartner(actor *entity.User, id int64, req *contract.UpdatePartnerRequest) (*contract.PartnerResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionManageCatalog) {
		return nil, apierror.UserMissingPermsError
	}

	utils.Sanitize(req)
	if valerr := p.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	partner, err := p.PartnerRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch partner: %v", err)
		return nil, apierror.InternalServerError
	}

	if partner == nil {
		return nil, apierror.NotFoundError
	}

	if req.Name != nil {
		partner.Name = *req.Name
	}
	if req.CNPJ != nil {
		partner.CNPJ = utils.DigitsOnly(*req.CNPJ)
	}
	if req.Active != nil {
		partner.Active = *req.Active
	}

	partner.UpdatedAt = utils.NowUTC()
	if err := p.PartnerRepo.Save(partner); err != nil {
		log.Errorf("failed to update partner: %v", err)
		return nil, apierror.InternalServerError
	}
	return toPartnerResponse(partner), nil
}

func toPartnerResponse(partner *entity.Partner) *contract.PartnerResponse {
	return &contract.PartnerResponse{
		ID:        partner.ID,
		Name:      partner.Name,
		CNPJ:      partner.CNPJ,
		Active:    partner.Active,
		CreatedAt: utils.FormatEpoch(partner.CreatedAt),
		UpdatedAt: utils.FormatEpoch(partner.UpdatedAt),
	}
}
