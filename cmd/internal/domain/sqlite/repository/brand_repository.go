package repository

import (
	"errors"

	"aguagestor/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultBrandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) *DefaultBrandRepository {
	return &DefaultBrandRepository{db: db}
}

func (b *DefaultBrandRepository) FindAllByPartner(partnerID int64) ([]*entity.Brand, error) {
	var brands []*entity.Brand
	err := b.db.Where("partner_id = ?", partnerID).Find(&brands).Error
	if err != nil {
		return nil, err
	}
	return brands, nil
}

func (b *DefaultBrandRepository) FindByID(id int64) (*entity.Brand, error) {
	var brand entity.Brand
	err := b.db.First(&brand, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &brand, nil
}

// FindByPartnerAndName matches on the (partnerId, name) natural key that also
// backs the import upsert.
func (b *DefaultBrandRepository) FindByPartnerAndName(partnerID int64, name string) (*entity.Brand, error) {
	var brand entity.Brand
	err := b.db.
		Where("partner_id = ? AND name = ?", partnerID, name).
		First(&brand).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (b *DefaultBrandRepository) Save(brand *entity.Brand) error {
	return b.db.Save(brand).Error
}
