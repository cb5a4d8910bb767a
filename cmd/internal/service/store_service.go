package service

import (
	"aguagestor/cmd/internal/contract"
	"aguagestor/cmd/internal/domain/entity"
	"aguagestor/cmd/internal/domain/sqlite/repository"
	"aguagestor/cmd/internal/normalize"
	"aguagestor/cmd/internal/utils"
	"aguagestor/cmd/internal/utils/apierror"
	"aguagestor/cmd/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type StoreRepository interface {
	FindAll(filter repository.StoreFilter) ([]*entity.Store, error)
	FindByID(id int64) (*entity.Store, error)
	FindAllInIDs(ids []int64) ([]*entity.Store, error)
	FindByImportKey(brandID int64, normalizedName, city string) (*entity.Store, error)
	FindAllActiveByPartner(partnerID int64) ([]*entity.Store, error)
	Save(store *entity.Store) error
	FindPrices(storeID int64) ([]*entity.StorePrice, error)
	ReplacePrices(storeID int64, prices []*entity.StorePrice) error
	Merge(target *entity.Store, sourceIDs []int64) error
}

type DefaultStoreService struct {
	StoreRepo StoreRepository
	BrandRepo BrandRepository
	Validate  *validator.Validate
}

func NewStoreService(storeRepo StoreRepository, brandRepo BrandRepository, validate *validator.Validate) *DefaultStoreService {
	return &DefaultStoreService{
		StoreRepo: storeRepo,
		BrandRepo: brandRepo,
		Validate:  validate,
	}
}

func (s *DefaultStoreService) GetStores(filter repository.StoreFilter) ([]*contract.StoreResponse, apierror.ErrorResponse) {
	// Search terms go through the same normalization as stored names,
	// so "São João" finds "sao joao".
	if filter.Search != "" {
		filter.Search = normalize.Name(filter.Search)
	}

	stores, err := s.StoreRepo.FindAll(filter)
	if err != nil {
		log.Errorf("failed to fetch stores: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.StoreResponse, len(stores))
	for i, store := range stores {
		resp[i] = toStoreResponse(store, nil)
	}
	return resp, nil
}

func (s *DefaultStoreService) GetStoreByID(storeID int64) (*contract.StoreResponse, apierror.ErrorResponse) {
	store, err := s.StoreRepo.FindByID(storeID)
	if err != nil {
		log.Errorf("failed to fetch store: %v", err)
		return nil, apierror.InternalServerError
	}

	if store == nil {
		return nil, apierror.NotFoundError
	}

	prices, err := s.StoreRepo.FindPrices(storeID)
	if err != nil {
		log.Errorf("failed to fetch store prices: %v", err)
		return nil, apierror.InternalServerError
	}
	return toStoreResponse(store, prices), nil
}

func (s *DefaultStoreService) CreateStore(actor *entity.User, req *contract.CreateStoreRequest) (*contract.StoreResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionManageCatalog) {
		return nil, apierror.UserMissingPermsError
	}

	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	brand, err := s.BrandRepo.FindByID(req.BrandID)
	if err != nil {
		log.Errorf("failed to fetch brand: %v", err)
		return nil, apierror.InternalServerError
	}

	if brand == nil {
		return nil, apierror.NotFoundError
	}

	parsed := normalize.ParseAddress(req.Address)
	now := utils.NowUTC()

	store := &entity.Store{
		ID:             uid.Generate(),
		BrandID:        brand.ID,
		PartnerID:      brand.PartnerID,
		Name:           req.Name,
		NormalizedName: normalize.Name(req.Name),
		Address:        req.Address,
		Street:         parsed.Street,
		Number:         parsed.Number,
		Complement:     parsed.Complement,
		District:       parsed.District,
		City:           fallback(req.City, parsed.City),
		State:          fallback(req.State, parsed.State),
		PostalCode:     parsed.PostalCode,
		ExternalCode:   req.ExternalCode,
		CNPJ:           utils.DigitsOnly(req.CNPJ),
		Mall:           req.Mall,
		Status:         entity.StoreActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.StoreRepo.Save(store); err != nil {
		log.Errorf("failed to save store: %v", err)
		return nil, apierror.InternalServerError
	}
	return toStoreResponse(store, nil), nil
}

func (s *DefaultStoreService) UpdateStore(actor *entity.User, storeID int64, req *contract.UpdateStoreRequest) (*contract.StoreResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionManageCatalog) {
		return nil, apierror.UserMissingPermsError
	}

	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	store, err := s.StoreRepo.FindByID(storeID)
	if err != nil {
		log.Errorf("failed to fetch store: %v", err)
		return nil, apierror.InternalServerError
	}

	if store == nil {
		return nil, apierror.NotFoundError
	}

	if req.Name != nil {
		store.Name = *req.Name
		// The normalized name is always derived, never set directly.
		store.NormalizedName = normalize.Name(*req.Name)
	}
	if req.Address != nil {
		store.Address = *req.Address
		parsed := normalize.ParseAddress(*req.Address)
		store.Street = parsed.Street
		store.Number = parsed.Number
		store.Complement = parsed.Complement
		store.District = parsed.District
		store.PostalCode = parsed.PostalCode
	}
	if req.City != nil {
		store.City = *req.City
	}
	if req.State != nil {
		store.State = *req.State
	}
	if req.ExternalCode != nil {
		store.ExternalCode = *req.ExternalCode
	}
	if req.CNPJ != nil {
		store.CNPJ = utils.DigitsOnly(*req.CNPJ)
	}
	if req.Mall != nil {
		store.Mall = req.Mall
	}
	if req.Status != nil {
		store.Status = entity.StoreStatus(*req.Status)
	}

	store.UpdatedAt = utils.NowUTC()
	if err := s.StoreRepo.Save(store); err != nil {
		log.Errorf("failed to update store: %v", err)
		return nil, apierror.InternalServerError
	}
	return toStoreResponse(store, nil), nil
}

// DeactivateStore flips the store to INACTIVE. Stores are never hard-deleted
// outside a merge, so the history under them stays intact.
func (s *DefaultStoreService) DeactivateStore(actor *entity.User, storeID int64) apierror.ErrorResponse {
	if !actor.Permissions.HasEffective(entity.PermissionManageCatalog) {
		return apierror.UserMissingPermsError
	}

	store, err := s.StoreRepo.FindByID(storeID)
	if err != nil {
		log.Errorf("failed to fetch store: %v", err)
		return apierror.InternalServerError
	}

	if store == nil {
		return apierror.NotFoundError
	}

	store.Status = entity.StoreInactive
	store.UpdatedAt = utils.NowUTC()

	if err := s.StoreRepo.Save(store); err != nil {
		log.Errorf("failed to deactivate store: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

// ReplacePrices overwrites the complete price set of a store, mirroring the
// import semantics: products missing from the request lose their price.
func (s *DefaultStoreService) ReplacePrices(actor *entity.User, storeID int64, req *contract.ReplacePricesRequest) ([]*contract.StorePriceResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionManageCatalog) {
		return nil, apierror.UserMissingPermsError
	}

	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	store, err := s.StoreRepo.FindByID(storeID)
	if err != nil {
		log.Errorf("failed to fetch store: %v", err)
		return nil, apierror.InternalServerError
	}

	if store == nil {
		return nil, apierror.NotFoundError
	}

	now := utils.NowUTC()
	seen := make(map[string]bool, len(req.Prices))
	prices := make([]*entity.StorePrice, 0, len(req.Prices))
	for _, p := range req.Prices {
		if seen[p.Product] {
			badReq := apierror.NewStructured(400)
			badReq.Add("prices", "Duplicate product: "+p.Product)
			return nil, badReq
		}
		seen[p.Product] = true

		prices = append(prices, &entity.StorePrice{
			StoreID:   storeID,
			Product:   entity.ProductType(p.Product),
			UnitCents: p.UnitCents,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if err := s.StoreRepo.ReplacePrices(storeID, prices); err != nil {
		log.Errorf("failed to replace store prices: %v", err)
		return nil, apierror.InternalServerError
	}
	return toPriceResponses(prices), nil
}

func toStoreResponse(store *entity.Store, prices []*entity.StorePrice) *contract.StoreResponse {
	return &contract.StoreResponse{
		ID:             store.ID,
		BrandID:        store.BrandID,
		PartnerID:      store.PartnerID,
		Name:           store.Name,
		NormalizedName: store.NormalizedName,
		Address:        store.Address,
		Street:         store.Street,
		Number:         store.Number,
		Complement:     store.Complement,
		District:       store.District,
		City:           store.City,
		State:          store.State,
		PostalCode:     store.PostalCode,
		ExternalCode:   store.ExternalCode,
		CNPJ:           store.CNPJ,
		Mall:           store.Mall,
		Status:         string(store.Status),
		Prices:         toPriceResponses(prices),
		CreatedAt:      utils.FormatEpoch(store.CreatedAt),
		UpdatedAt:      utils.FormatEpoch(store.UpdatedAt),
	}
}

func toPriceResponses(prices []*entity.StorePrice) []*contract.StorePriceResponse {
	if prices == nil {
		return nil
	}

	resp := make([]*contract.StorePriceResponse, len(prices))
	for i, price := range prices {
		resp[i] = &contract.StorePriceResponse{
			Product:   string(price.Product),
			Label:     price.Product.Label(),
			UnitCents: price.UnitCents,
			Display:   normalize.CentsToBRL(price.UnitCents),
		}
	}
	return resp
}

func fallback(explicit, parsed string) string {
	if explicit != "" {
		return explicit
	}
	return parsed
}
