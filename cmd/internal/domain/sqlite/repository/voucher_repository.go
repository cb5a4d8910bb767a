package repository

import (
	"errors"

	"aguagestor/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultVoucherRepository struct {
	db *gorm.DB
}

func NewVoucherRepository(db *gorm.DB) *DefaultVoucherRepository {
	return &DefaultVoucherRepository{db: db}
}

func (v *DefaultVoucherRepository) FindAllByStore(storeID int64) ([]*entity.Voucher, error) {
	var vouchers []*entity.Voucher
	err := v.db.Where("store_id = ?", storeID).Find(&vouchers).Error
	if err != nil {
		return nil, err
	}
	return vouchers, nil
}

func (v *DefaultVoucherRepository) FindByID(id int64) (*entity.Voucher, error) {
	var voucher entity.Voucher
	err := v.db.First(&voucher, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &voucher, nil
}

func (v *DefaultVoucherRepository) Save(voucher *entity.Voucher) error {
	return v.db.Save(voucher).Error
}

// ExpireDue flips every active voucher whose expiry has passed. Used by the
// background expirer job.
func (v *DefaultVoucherRepository) ExpireDue(now int64) (int64, error) {
	res := v.db.Model(&entity.Voucher{}).
		Where("status = ? AND expires_at > 0 AND expires_at < ?", entity.VoucherActive, now).
		Update("status", entity.VoucherExpired)
	return res.RowsAffected, res.Error
}
