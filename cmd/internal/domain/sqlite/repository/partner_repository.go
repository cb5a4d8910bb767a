package repository

import (
	"errors"

	"aguagestor/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultPartnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) *DefaultPartnerRepository {
	return &DefaultPartnerRepository{db: db}
}

func (p *DefaultPartnerRepository) FindAll() ([]*entity.Partner, error) {
	var partners []*entity.Partner
	err := p.db.Find(&partners).Error
	if err != nil {
		return nil, err
	}
	return partners, nil
}

func (p *DefaultPartnerRepository) FindByID(id int64) (*entity.Partner, error) {
	var partner entity.Partner
	err := p.db.First(&partner, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &partner, nil
}

func (p *DefaultPartnerRepository) Save(partner *entity.Partner) error {
	return p.db.Save(partner).Error
}
