package handler

import (
	"net/http"
	"strconv"

	"aguagestor/cmd/internal/contract"
	"aguagestor/cmd/internal/domain/entity"
	"aguagestor/cmd/internal/utils"
	"aguagestor/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type PartnerService interface {
	GetPartners() ([]*contract.PartnerResponse, apierror.ErrorResponse)
	GetPartnerByID(id int64) (*contract.PartnerResponse, apierror.ErrorResponse)
	CreatePartner(actor *entity.User, req *contract.CreatePartnerRequest) (*contract.PartnerResponse, apierror.ErrorResponse)
	UpdatePartner(actor *entity.User, id int64, req *contract.UpdatePartnerRequest) (*contract.PartnerResponse, apierror.ErrorResponse)
}

type DefaultPartnerRoute struct {
	PartnerService PartnerService
}

func NewPartnerRoute(partnerService PartnerService) *DefaultPartnerRoute {
	return &DefaultPartnerRoute{PartnerService: partnerService}
}

func (p *DefaultPartnerRoute) GetPartners(c echo.Context) error {
	partners, apierr := p.PartnerService.GetPartners()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"partners": partners}
	return c.JSON(http.StatusOK, &resp)
}

func (p *DefaultPartnerRoute) GetPartner(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	partner, apierr := p.PartnerService.GetPartnerByID(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, partner)
}

func (p *DefaultPartnerRoute) CreatePartner(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreatePartnerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	partner, apierr := p.PartnerService.CreatePartner(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, partner)
}

func (p *DefaultPartnerRoute) UpdatePartner(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	var req contract.UpdatePartnerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	partner, apierr := p.PartnerService.UpdatePartner(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, partner)
}
