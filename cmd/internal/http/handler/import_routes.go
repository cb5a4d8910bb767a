package handler

import (
	"net/http"
	"strconv"
	"strings"

	"aguagestor/cmd/internal/contract"
	"aguagestor/cmd/internal/domain/entity"
	"aguagestor/cmd/internal/spreadsheet"
	"aguagestor/cmd/internal/utils"
	"aguagestor/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

var validImportFileTypes = []string{"xlsx"}

type ImportService interface {
	RunFromSheet(actor *entity.User, partnerID int64, rows []spreadsheet.Row) (*contract.ImportReport, apierror.ErrorResponse)
}

type DefaultImportRoute struct {
	ImportService ImportService
}

func NewImportRoute(importService ImportService) *DefaultImportRoute {
	return &DefaultImportRoute{ImportService: importService}
}

// RunImport receives a partner spreadsheet as multipart form data: a
// 'partner_id' field and the workbook under 'file'. The whole file is
// processed synchronously and the reconciliation report is the response.
func (i *DefaultImportRoute) RunImport(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		mediaTypeError := apierror.InvalidMediaTypeError
		return c.JSON(http.StatusUnsupportedMediaType, &mediaTypeError)
	}

	partnerID, err := strconv.ParseInt(c.FormValue("partner_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("partner_id", "int"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MissingFileError)
	}

	if _, ok := utils.CheckFileExt(fileHeader.Filename, validImportFileTypes); !ok {
		return c.JSON(http.StatusUnsupportedMediaType, apierror.InvalidMediaTypeError)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
	}
	defer file.Close()

	rows, err := spreadsheet.Read(file)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewSimple(400, "Could not read the spreadsheet: %v", err))
	}

	report, apierr := i.ImportService.RunFromSheet(user, partnerID, rows)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, report)
}
