package handler

import (
	"net/http"
	"strconv"

	"aguagestor/cmd/internal/contract"
	"aguagestor/cmd/internal/domain/entity"
	"aguagestor/cmd/internal/domain/sqlite/repository"
	"aguagestor/cmd/internal/utils"
	"aguagestor/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type StoreService interface {
	GetStores(filter repository.StoreFilter) ([]*contract.StoreResponse, apierror.ErrorResponse)
	GetStoreByID(storeID int64) (*contract.StoreResponse, apierror.ErrorResponse)
	CreateStore(actor *entity.User, req *contract.CreateStoreRequest) (*contract.StoreResponse, apierror.ErrorResponse)
	UpdateStore(actor *entity.User, storeID int64, req *contract.UpdateStoreRequest) (*contract.StoreResponse, apierror.ErrorResponse)
	DeactivateStore(actor *entity.User, storeID int64) apierror.ErrorResponse
	ReplacePrices(actor *entity.User, storeID int64, req *contract.ReplacePricesRequest) ([]*contract.StorePriceResponse, apierror.ErrorResponse)
}

type MergeService interface {
	FindDuplicates(actor *entity.User, partnerID int64) ([]*contract.DuplicateGroupResponse, apierror.ErrorResponse)
	Merge(actor *entity.User, req *contract.MergeRequest) (*contract.MergeResponse, apierror.ErrorResponse)
}

type DefaultStoreRoute struct {
	StoreService StoreService
	MergeService MergeService
}

func NewStoreRoute(storeService StoreService, mergeService MergeService) *DefaultStoreRoute {
	return &DefaultStoreRoute{
		StoreService: storeService,
		MergeService: mergeService,
	}
}

func (s *DefaultStoreRoute) GetStores(c echo.Context) error {
	filter := repository.StoreFilter{
		City:   c.QueryParam("city"),
		Status: entity.StoreStatus(c.QueryParam("status")),
		Search: c.QueryParam("search"),
	}

	if raw := c.QueryParam("partner_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("partner_id", "int"))
		}
		filter.PartnerID = id
	}

	if raw := c.QueryParam("brand_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("brand_id", "int"))
		}
		filter.BrandID = id
	}

	stores, apierr := s.StoreService.GetStores(filter)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"stores": stores}
	return c.JSON(http.StatusOK, &resp)
}

func (s *DefaultStoreRoute) GetStore(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	store, apierr := s.StoreService.GetStoreByID(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, store)
}

func (s *DefaultStoreRoute) CreateStore(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreateStoreRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	store, apierr := s.StoreService.CreateStore(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, store)
}

func (s *DefaultStoreRoute) UpdateStore(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	var req contract.UpdateStoreRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	store, apierr := s.StoreService.UpdateStore(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, store)
}

func (s *DefaultStoreRoute) DeactivateStore(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	if apierr := s.StoreService.DeactivateStore(user, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (s *DefaultStoreRoute) ReplacePrices(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	var req contract.ReplacePricesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	prices, apierr := s.StoreService.ReplacePrices(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"prices": prices}
	return c.JSON(http.StatusOK, &resp)
}

// GetDuplicates computes duplicate candidate groups for one partner on demand.
func (s *DefaultStoreRoute) GetDuplicates(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	partnerID, err := strconv.ParseInt(c.QueryParam("partner_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("partner_id", "int"))
	}

	groups, apierr := s.MergeService.FindDuplicates(user, partnerID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"groups": groups}
	return c.JSON(http.StatusOK, &resp)
}

func (s *DefaultStoreRoute) MergeStores(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.MergeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	result, apierr := s.MergeService.Merge(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, result)
}
