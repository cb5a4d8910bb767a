package service

import (
	"testing"

	"aguagestor/cmd/internal/contract"
	"aguagestor/cmd/internal/domain/entity"
	"aguagestor/cmd/internal/domain/sqlite/repository"
	"aguagestor/cmd/internal/utils/apierror"
	"aguagestor/cmd/internal/utils/uid"
)

func catalogActor() *entity.User {
	return &entity.User{ID: 1, Permissions: entity.PermissionManageCatalog, Active: true}
}

func TestGetStoresNormalizesSearch(t *testing.T) {
	storeRepo := newFakeStoreRepo()
	storeRepo.stores[1] = &entity.Store{
		ID: 1, Name: "Loja São João", NormalizedName: "loja sao joao", Status: entity.StoreActive,
	}
	svc := NewStoreService(storeRepo, &fakeBrandRepo{brands: map[int64]*entity.Brand{}}, newTestValidator())

	// An accented search term must match the diacritic-free stored form.
	stores, apierr := svc.GetStores(repository.StoreFilter{Search: "São João"})
	if apierr != nil {
		t.Fatalf("GetStores failed: %v", apierr)
	}
	if len(stores) != 1 || stores[0].ID != 1 {
		t.Fatalf("search returned %d stores, want the one match", len(stores))
	}
}

func TestCreateStoreParsesAddress(t *testing.T) {
	uid.Init(1)
	storeRepo := newFakeStoreRepo()
	brandRepo := &fakeBrandRepo{brands: map[int64]*entity.Brand{
		5: {ID: 5, PartnerID: 1, Name: "Aquarius"},
	}}
	svc := NewStoreService(storeRepo, brandRepo, newTestValidator())

	store, apierr := svc.CreateStore(catalogActor(), &contract.CreateStoreRequest{
		BrandID: 5,
		Name:    "Loja São João",
		Address: "Av. Paulista, 1000 - Bela Vista, São Paulo - SP, 01310-000",
	})
	if apierr != nil {
		t.Fatalf("CreateStore failed: %v", apierr)
	}

	if store.NormalizedName != "loja sao joao" {
		t.Errorf("NormalizedName = %q, want %q", store.NormalizedName, "loja sao joao")
	}
	if store.Street != "Av. Paulista" || store.Number != "1000" {
		t.Errorf("parsed street/number = %q/%q", store.Street, store.Number)
	}
	// No explicit city column here, so the parsed one is used.
	if store.City != "São Paulo" || store.State != "SP" {
		t.Errorf("City/State = %q/%q, want parsed fallback", store.City, store.State)
	}
	if store.PartnerID != 1 {
		t.Errorf("PartnerID = %d, want inherited from the brand", store.PartnerID)
	}
}

func TestReplacePricesRejectsDuplicateProduct(t *testing.T) {
	storeRepo := newFakeStoreRepo()
	storeRepo.stores[1] = &entity.Store{ID: 1, Status: entity.StoreActive}
	svc := NewStoreService(storeRepo, &fakeBrandRepo{brands: map[int64]*entity.Brand{}}, newTestValidator())

	_, apierr := svc.ReplacePrices(catalogActor(), 1, &contract.ReplacePricesRequest{
		Prices: []*contract.PriceEntryRequest{
			{Product: "GALAO_20L", UnitCents: 1250},
			{Product: "GALAO_20L", UnitCents: 1300},
		},
	})

	if apierr == nil || apierr.Code() != 400 {
		t.Fatalf("duplicate product returned %v, want a 400", apierr)
	}
	if len(storeRepo.prices[1]) != 0 {
		t.Error("invalid request still replaced prices")
	}
}

func TestDeactivateStore(t *testing.T) {
	storeRepo := newFakeStoreRepo()
	storeRepo.stores[1] = &entity.Store{ID: 1, Status: entity.StoreActive}
	svc := NewStoreService(storeRepo, &fakeBrandRepo{brands: map[int64]*entity.Brand{}}, newTestValidator())

	if apierr := svc.DeactivateStore(catalogActor(), 1); apierr != nil {
		t.Fatalf("DeactivateStore failed: %v", apierr)
	}
	if storeRepo.stores[1].Status != entity.StoreInactive {
		t.Errorf("Status = %s, want INACTIVE", storeRepo.stores[1].Status)
	}

	if apierr := svc.DeactivateStore(catalogActor(), 99); apierr != apierror.NotFoundError {
		t.Errorf("unknown store returned %v, want NotFoundError", apierr)
	}
}
