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

type BrandService interface {
	GetBrands(partnerID int64) ([]*contract.BrandResponse, apierror.ErrorResponse)
	CreateBrand(actor *entity.User, req *contract.CreateBrandRequest) (*contract.BrandResponse, apierror.ErrorResponse)
	UpdateBrand(actor *entity.User, brandID int64, req *contract.UpdateBrandRequest) (*contract.BrandResponse, apierror.ErrorResponse)
}

type DefaultBrandRoute struct {
	BrandService BrandService
}

func NewBrandRoute(brandService BrandService) *DefaultBrandRoute {
	return &DefaultBrandRoute{BrandService: brandService}
}

func (b *DefaultBrandRoute) GetBrands(c echo.Context) error {
	partnerID, err := strconv.ParseInt(c.QueryParam("partner_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("partner_id", "int"))
	}

	brands, apierr := b.BrandService.GetBrands(partnerID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"brands": brands}
	return c.JSON(http.StatusOK, &resp)
}

func (b *DefaultBrandRoute) CreateBrand(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreateBrandRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	brand, apierr := b.BrandService.CreateBrand(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, brand)
}

func (b *DefaultBrandRoute) UpdateBrand(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	var req contract.UpdateBrandRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	brand, apierr := b.BrandService.UpdateBrand(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, brand)
}
