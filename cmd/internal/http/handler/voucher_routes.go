package handler

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"aguagestor/cmd/internal/contract"
	"aguagestor/cmd/internal/domain/entity"
	"aguagestor/cmd/internal/utils"
	"aguagestor/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type VoucherService interface {
	GetVouchersByStore(storeID int64) ([]*contract.VoucherResponse, apierror.ErrorResponse)
	CreateVoucher(actor *entity.User, req *contract.CreateVoucherRequest, fileHeader *multipart.FileHeader) (*contract.VoucherResponse, apierror.ErrorResponse)
	UpdateVoucher(actor *entity.User, voucherID int64, req *contract.UpdateVoucherRequest) (*contract.VoucherResponse, apierror.ErrorResponse)
}

type DefaultVoucherRoute struct {
	VoucherService VoucherService
}

func NewVoucherRoute(voucherService VoucherService) *DefaultVoucherRoute {
	return &DefaultVoucherRoute{VoucherService: voucherService}
}

func (v *DefaultVoucherRoute) GetStoreVouchers(c echo.Context) error {
	storeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	vouchers, apierr := v.VoucherService.GetVouchersByStore(storeID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"vouchers": vouchers}
	return c.JSON(http.StatusOK, &resp)
}

// CreateVoucher accepts either plain JSON (no document) or multipart with a
// 'json_payload' field and an optional 'file'.
func (v *DefaultVoucherRoute) CreateVoucher(c echo.Context) error {
	contentType := c.Request().Header.Get(echo.HeaderContentType)

	if strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		return v.createFromJSON(c)
	}

	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		return v.createFromForm(c)
	}

	mediaTypeError := apierror.InvalidMediaTypeError
	return c.JSON(http.StatusUnsupportedMediaType, &mediaTypeError)
}

func (v *DefaultVoucherRoute) UpdateVoucher(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	var req contract.UpdateVoucherRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	voucher, apierr := v.VoucherService.UpdateVoucher(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, voucher)
}

func (v *DefaultVoucherRoute) createFromJSON(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreateVoucherRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	voucher, apierr := v.VoucherService.CreateVoucher(user, &req, nil)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, voucher)
}

func (v *DefaultVoucherRoute) createFromForm(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	jsonPayload := strings.TrimSpace(c.FormValue("json_payload"))
	if jsonPayload == "" {
		return c.JSON(http.StatusBadRequest, apierror.FormJSONRequiredError)
	}

	var req contract.CreateVoucherRequest
	if err := json.Unmarshal([]byte(jsonPayload), &req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MissingFileError)
	}

	voucher, apierr := v.VoucherService.CreateVoucher(user, &req, fileHeader)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, voucher)
}
