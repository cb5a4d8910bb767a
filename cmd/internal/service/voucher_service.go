package service

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"aguagestor/cmd/internal/contract"
	"aguagestor/cmd/internal/domain/entity"
	"aguagestor/cmd/internal/infrastructure/aws/storage"
	"aguagestor/cmd/internal/utils"
	"aguagestor/cmd/internal/utils/apierror"
	"aguagestor/cmd/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type VoucherRepository interface {
	FindAllByStore(storeID int64) ([]*entity.Voucher, error)
	FindByID(id int64) (*entity.Voucher, error)
	Save(voucher *entity.Voucher) error
	ExpireDue(now int64) (int64, error)
}

type DefaultVoucherService struct {
	VoucherRepo VoucherRepository
	StoreRepo   StoreRepository
	S3          storage.S3Client
	Validate    *validator.Validate
}

func NewVoucherService(voucherRepo VoucherRepository, storeRepo StoreRepository, s3 storage.S3Client, validate *validator.Validate) *DefaultVoucherService {
	return &DefaultVoucherService{
		VoucherRepo: voucherRepo,
		StoreRepo:   storeRepo,
		S3:          s3,
		Validate:    validate,
	}
}

func (v *DefaultVoucherService) GetVouchersByStore(storeID int64) ([]*contract.VoucherResponse, apierror.ErrorResponse) {
	vouchers, err := v.VoucherRepo.FindAllByStore(storeID)
	if err != nil {
		log.Errorf("failed to fetch vouchers: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.VoucherResponse, len(vouchers))
	for i, voucher := range vouchers {
		resp[i] = toVoucherResponse(voucher)
	}
	return resp, nil
}

// CreateVoucher registers a voucher/report for a store. The scanned document
// is optional; when present it is uploaded to S3 under a generated key.
func (v *DefaultVoucherService) CreateVoucher(actor *entity.User, req *contract.CreateVoucherRequest, fileHeader *multipart.FileHeader) (*contract.VoucherResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionManageVouchers) {
		return nil, apierror.UserMissingPermsError
	}

	utils.Sanitize(req)
	if valerr := v.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	store, err := v.StoreRepo.FindByID(req.StoreID)
	if err != nil {
		log.Errorf("failed to fetch store: %v", err)
		return nil, apierror.InternalServerError
	}

	if store == nil {
		return nil, apierror.NotFoundError
	}

	var fileKey string
	if fileHeader != nil {
		if apierr := checkVoucherFile(fileHeader); apierr != nil {
			return nil, apierr
		}

		fileKey, err = v.uploadVoucherFile(fileHeader)
		if err != nil {
			log.Errorf("failed to upload voucher file: %v", err)
			return nil, apierror.InternalServerError
		}
	}

	now := utils.NowUTC()
	voucher := &entity.Voucher{
		ID:          uid.Generate(),
		StoreID:     req.StoreID,
		Code:        req.Code,
		Description: req.Description,
		FileKey:     fileKey,
		Status:      entity.VoucherActive,
		ExpiresAt:   req.ExpiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := v.VoucherRepo.Save(voucher); err != nil {
		log.Errorf("failed to save voucher: %v", err)
		return nil, apierror.InternalServerError
	}
	return toVoucherResponse(voucher), nil
}

func (v *DefaultVoucherService) UpdateVoucher(actor *entity.User, voucherID int64, req *contract.UpdateVoucherRequest) (*contract.VoucherResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionManageVouchers) {
		return nil, apierror.UserMissingPermsError
	}

	utils.Sanitize(req)
	if valerr := v.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	voucher, err := v.VoucherRepo.FindByID(voucherID)
	if err != nil {
		log.Errorf("failed to fetch voucher: %v", err)
		return nil, apierror.InternalServerError
	}

	if voucher == nil {
		return nil, apierror.NotFoundError
	}

	if req.Description != nil {
		voucher.Description = *req.Description
	}
	if req.Status != nil {
		voucher.Status = entity.VoucherStatus(*req.Status)
	}
	if req.ExpiresAt != nil {
		voucher.ExpiresAt = *req.ExpiresAt
	}

	voucher.UpdatedAt = utils.NowUTC()
	if err := v.VoucherRepo.Save(voucher); err != nil {
		log.Errorf("failed to update voucher: %v", err)
		return nil, apierror.InternalServerError
	}
	return toVoucherResponse(voucher), nil
}

func checkVoucherFile(fileHeader *multipart.FileHeader) apierror.ErrorResponse {
	if strings.TrimSpace(fileHeader.Filename) == "" {
		return apierror.MissingFileError
	}

	if fileHeader.Size > contract.MaxVoucherFileSizeBytes {
		return apierror.NewSimple(413, "Voucher file exceeds %d bytes", contract.MaxVoucherFileSizeBytes)
	}

	if _, ok := utils.CheckFileExt(fileHeader.Filename, contract.ValidVoucherFileTypes); !ok {
		return apierror.InvalidMediaTypeError
	}
	return nil
}

func (v *DefaultVoucherService) uploadVoucherFile(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	key := storage.PathVouchers + uuid.NewString() + filepath.Ext(fileHeader.Filename)
	if err := v.S3.UploadFile(data, key); err != nil {
		return "", err
	}
	return key, nil
}

func toVoucherResponse(voucher *entity.Voucher) *contract.VoucherResponse {
	expires := ""
	if voucher.ExpiresAt > 0 {
		expires = utils.FormatEpoch(voucher.ExpiresAt)
	}

	return &contract.VoucherResponse{
		ID:          voucher.ID,
		StoreID:     voucher.StoreID,
		Code:        voucher.Code,
		Description: voucher.Description,
		FileKey:     voucher.FileKey,
		Status:      string(voucher.Status),
		ExpiresAt:   expires,
		CreatedAt:   utils.FormatEpoch(voucher.CreatedAt),
		UpdatedAt:   utils.FormatEpoch(voucher.UpdatedAt),
	}
}
