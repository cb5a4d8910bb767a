package repository

import (
	"errors"

	"aguagestor/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultStoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *DefaultStoreRepository {
	return &DefaultStoreRepository{db: db}
}

// StoreFilter narrows store listings; zero values mean "no filter".
type StoreFilter struct {
	PartnerID int64
	BrandID   int64
	City      string
	Status    entity.StoreStatus
	Search    string // matched against the normalized name
}

func (s *DefaultStoreRepository) FindAll(filter StoreFilter) ([]*entity.Store, error) {
	q := s.db.Model(&entity.Store{})
	if filter.PartnerID != 0 {
		q = q.Where("partner_id = ?", filter.PartnerID)
	}
	if filter.BrandID != 0 {
		q = q.Where("brand_id = ?", filter.BrandID)
	}
	if filter.City != "" {
		q = q.Where("city = ?", filter.City)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		q = q.Where("normalized_name LIKE ?", "%"+filter.Search+"%")
	}

	var stores []*entity.Store
	err := q.Order("normalized_name").Find(&stores).Error
	if err != nil {
		return nil, err
	}
	return stores, nil
}

func (s *DefaultStoreRepository) FindByID(id int64) (*entity.Store, error) {
	var store entity.Store
	err := s.db.First(&store, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (s *DefaultStoreRepository) FindAllInIDs(ids []int64) ([]*entity.Store, error) {
	if len(ids) == 0 {
		return []*entity.Store{}, nil
	}

	var stores []*entity.Store
	err := s.db.Where("id IN ?", ids).Find(&stores).Error
	if err != nil {
		return nil, err
	}
	return stores, nil
}

// FindByImportKey looks up the record the importer would update: same brand,
// same normalized name, same city and no mall. The import path never fills the
// mall, so matching on its absence keeps reruns of a file from duplicating rows.
func (s *DefaultStoreRepository) FindByImportKey(brandID int64, normalizedName, city string) (*entity.Store, error) {
	var store entity.Store
	err := s.db.
		Where("brand_id = ? AND normalized_name = ? AND city = ? AND mall IS NULL",
			brandID, normalizedName, city).
		First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (s *DefaultStoreRepository) FindAllActiveByPartner(partnerID int64) ([]*entity.Store, error) {
	var stores []*entity.Store
	err := s.db.
		Where("partner_id = ? AND status = ?", partnerID, entity.StoreActive).
		Find(&stores).Error
	if err != nil {
		return nil, err
	}
	return stores, nil
}

func (s *DefaultStoreRepository) Save(store *entity.Store) error {
	return s.db.Save(store).Error
}

func (s *DefaultStoreRepository) FindPrices(storeID int64) ([]*entity.StorePrice, error) {
	var prices []*entity.StorePrice
	err := s.db.Where("store_id = ?", storeID).Order("product").Find(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}

// ReplacePrices swaps the full price set of a store in one transaction.
// Imports are a wholesale overwrite, never a partial merge, so a product
// missing from the new set simply loses its price.
func (s *DefaultStoreRepository) ReplacePrices(storeID int64, prices []*entity.StorePrice) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("store_id = ?", storeID).Delete(&entity.StorePrice{}).Error
		if err != nil {
			return err
		}

		if len(prices) == 0 {
			return nil
		}
		return tx.Create(prices).Error
	})
}

// Merge persists the surviving record and absorbs the sources in a single
// transaction: vouchers are re-pointed to the target, source prices fill only
// the products the target does not price yet, and the sources are deleted.
func (s *DefaultStoreRepository) Merge(target *entity.Store, sourceIDs []int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(target).Error; err != nil {
			return err
		}

		err := tx.Model(&entity.Voucher{}).
			Where("store_id IN ?", sourceIDs).
			Update("store_id", target.ID).Error
		if err != nil {
			return err
		}

		var priced []entity.ProductType
		err = tx.Model(&entity.StorePrice{}).
			Where("store_id = ?", target.ID).
			Pluck("product", &priced).Error
		if err != nil {
			return err
		}

		taken := make(map[entity.ProductType]bool, len(priced))
		for _, p := range priced {
			taken[p] = true
		}

		var orphaned []*entity.StorePrice
		err = tx.Where("store_id IN ?", sourceIDs).
			Order("updated_at DESC").
			Find(&orphaned).Error
		if err != nil {
			return err
		}

		for _, price := range orphaned {
			if taken[price.Product] {
				continue
			}
			taken[price.Product] = true
			err = tx.Model(price).Update("store_id", target.ID).Error
			if err != nil {
				return err
			}
		}

		err = tx.Where("store_id IN ?", sourceIDs).Delete(&entity.StorePrice{}).Error
		if err != nil {
			return err
		}

		return tx.Where("id IN ?", sourceIDs).Delete(&entity.Store{}).Error
	})
}
