package handler

import (
	"context"
	"net/http"
	"strings"

	"aguagestor/cmd/internal/contract"
	"aguagestor/cmd/internal/domain/entity"
	"aguagestor/cmd/internal/utils"
	"aguagestor/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type UtilService interface {
	GetCompanyByCNPJ(ctx context.Context, actor *entity.User, cnpj string) (*contract.CompanyResponse, apierror.ErrorResponse)
	GetProductTypes() []*contract.ProductTypeResponse
}

type DefaultUtilRoute struct {
	UtilService UtilService
}

func NewUtilRoute(utilService UtilService) *DefaultUtilRoute {
	return &DefaultUtilRoute{UtilService: utilService}
}

func (u *DefaultUtilRoute) GetCompany(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	cnpj := strings.TrimSpace(c.Param("cnpj"))
	company, apierr := u.UtilService.GetCompanyByCNPJ(c.Request().Context(), user, cnpj)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, company)
}

func (u *DefaultUtilRoute) GetProductTypes(c echo.Context) error {
	resp := echo.Map{"products": u.UtilService.GetProductTypes()}
	return c.JSON(http.StatusOK, &resp)
}

func (u *DefaultUtilRoute) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
