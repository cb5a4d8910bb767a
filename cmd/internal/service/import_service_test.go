package service

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"aguagestor/cmd/internal/domain/entity"
	"aguagestor/cmd/internal/domain/sqlite/repository"
	"aguagestor/cmd/internal/spreadsheet"
	"aguagestor/cmd/internal/utils/uid"
)

// In-memory fakes shared by the service tests in this package. They are
// mutex-guarded like the real sqlite-backed repositories, so concurrency bugs
// a test surfaces belong to the service under test, not the fake.

type fakePartnerRepo struct {
	mu       sync.Mutex
	partners map[int64]*entity.Partner
}

func (f *fakePartnerRepo) FindAll() ([]*entity.Partner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Partner
	for _, p := range f.partners {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePartnerRepo) FindByID(id int64) (*entity.Partner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.partners[id], nil
}

func (f *fakePartnerRepo) Save(p *entity.Partner) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.partners[p.ID] = p
	return nil
}

type fakeBrandRepo struct {
	mu     sync.Mutex
	brands map[int64]*entity.Brand
}

func (f *fakeBrandRepo) FindAllByPartner(partnerID int64) ([]*entity.Brand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Brand
	for _, b := range f.brands {
		if b.PartnerID == partnerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBrandRepo) FindByID(id int64) (*entity.Brand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.brands[id], nil
}

func (f *fakeBrandRepo) FindByPartnerAndName(partnerID int64, name string) (*entity.Brand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.brands {
		if b.PartnerID == partnerID && b.Name == name {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBrandRepo) Save(b *entity.Brand) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.brands[b.ID] = b
	return nil
}

type fakeStoreRepo struct {
	mu     sync.Mutex
	stores map[int64]*entity.Store
	prices map[int64][]*entity.StorePrice

	mergedTarget  *entity.Store
	mergedSources []int64
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{
		stores: make(map[int64]*entity.Store),
		prices: make(map[int64][]*entity.StorePrice),
	}
}

func (f *fakeStoreRepo) FindAll(filter repository.StoreFilter) ([]*entity.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Store
	for _, s := range f.stores {
		if filter.PartnerID != 0 && s.PartnerID != filter.PartnerID {
			continue
		}
		if filter.BrandID != 0 && s.BrandID != filter.BrandID {
			continue
		}
		if filter.City != "" && s.City != filter.City {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(s.NormalizedName, filter.Search) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStoreRepo) FindByID(id int64) (*entity.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stores[id], nil
}

func (f *fakeStoreRepo) FindAllInIDs(ids []int64) ([]*entity.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Store
	for _, id := range ids {
		if s, ok := f.stores[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStoreRepo) FindByImportKey(brandID int64, normalizedName, city string) (*entity.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.stores {
		if s.BrandID == brandID && s.NormalizedName == normalizedName && s.City == city && s.Mall == nil {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStoreRepo) FindAllActiveByPartner(partnerID int64) ([]*entity.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Store
	for _, s := range f.stores {
		if s.PartnerID == partnerID && s.Status == entity.StoreActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStoreRepo) Save(s *entity.Store) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stores[s.ID] = s
	return nil
}

func (f *fakeStoreRepo) FindPrices(storeID int64) ([]*entity.StorePrice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prices[storeID], nil
}

func (f *fakeStoreRepo) ReplacePrices(storeID int64, prices []*entity.StorePrice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices[storeID] = prices
	return nil
}

func (f *fakeStoreRepo) Merge(target *entity.Store, sourceIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mergedTarget = target
	f.mergedSources = sourceIDs
	f.stores[target.ID] = target
	for _, id := range sourceIDs {
		delete(f.stores, id)
	}
	return nil
}

func newImportFixture() (*ImportService, *fakeStoreRepo, *fakeBrandRepo) {
	uid.Init(1)

	partnerRepo := &fakePartnerRepo{partners: map[int64]*entity.Partner{
		1: {ID: 1, Name: "Distribuidora Azul", Active: true},
	}}
	brandRepo := &fakeBrandRepo{brands: make(map[int64]*entity.Brand)}
	storeRepo := newFakeStoreRepo()

	return NewImportService(partnerRepo, brandRepo, storeRepo), storeRepo, brandRepo
}

func importRowFixture() spreadsheet.Row {
	return spreadsheet.Row{
		"MARCA":            "Aquarius",
		"LOJA":             "Loja Centro",
		"LOCAL DA ENTREGA": "Rua das Flores, 100 - Centro, Curitiba - PR, 80010-010",
		"MUNICIPIO":        "Curitiba",
		"UF":               "PR",
		"VALOR UN.":        "12,50",
	}
}

func TestImportUnknownPartner(t *testing.T) {
	svc, _, _ := newImportFixture()

	_, err := svc.Run(999, []spreadsheet.Row{importRowFixture()})
	if !errors.Is(err, ErrPartnerNotFound) {
		t.Fatalf("Run with unknown partner returned %v, want ErrPartnerNotFound", err)
	}
}

func TestImportCreatesStore(t *testing.T) {
	svc, storeRepo, brandRepo := newImportFixture()

	report, err := svc.Run(1, []spreadsheet.Row{importRowFixture()})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Created != 1 || report.Updated != 0 || report.Skipped != 0 {
		t.Fatalf("report = %+v, want 1 created", report)
	}

	if len(brandRepo.brands) != 1 {
		t.Fatalf("expected 1 brand, got %d", len(brandRepo.brands))
	}

	if len(storeRepo.stores) != 1 {
		t.Fatalf("expected 1 store, got %d", len(storeRepo.stores))
	}

	var store *entity.Store
	for _, s := range storeRepo.stores {
		store = s
	}

	if store.NormalizedName != "loja centro" {
		t.Errorf("NormalizedName = %q, want %q", store.NormalizedName, "loja centro")
	}
	if store.City != "Curitiba" || store.State != "PR" {
		t.Errorf("City/State = %q/%q, want Curitiba/PR", store.City, store.State)
	}
	if store.PostalCode != "80010010" {
		t.Errorf("PostalCode = %q, want 80010010", store.PostalCode)
	}

	prices := storeRepo.prices[store.ID]
	if len(prices) != 1 {
		t.Fatalf("expected 1 price, got %d", len(prices))
	}
	if prices[0].Product != entity.ProductGalao20L || prices[0].UnitCents != 1250 {
		t.Errorf("price = %s/%d, want GALAO_20L/1250", prices[0].Product, prices[0].UnitCents)
	}
}

func TestImportIdempotent(t *testing.T) {
	svc, storeRepo, _ := newImportFixture()

	if _, err := svc.Run(1, []spreadsheet.Row{importRowFixture()}); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// Second run of the same logical row, now with a new price.
	row := importRowFixture()
	row["VALOR UN."] = "13,00"

	report, err := svc.Run(1, []spreadsheet.Row{row})
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if report.Created != 0 || report.Updated != 1 {
		t.Fatalf("report = %+v, want 1 updated", report)
	}

	if len(storeRepo.stores) != 1 {
		t.Fatalf("rerun duplicated the store: %d records", len(storeRepo.stores))
	}

	for id := range storeRepo.stores {
		prices := storeRepo.prices[id]
		if len(prices) != 1 || prices[0].UnitCents != 1300 {
			t.Errorf("prices after rerun = %+v, want single GALAO_20L at 1300", prices)
		}
	}
}

func TestImportSkipsIncompleteRows(t *testing.T) {
	svc, storeRepo, _ := newImportFixture()

	row := importRowFixture()
	delete(row, "LOJA")

	report, err := svc.Run(1, []spreadsheet.Row{row})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Skipped != 1 || report.Created != 0 {
		t.Fatalf("report = %+v, want 1 skipped", report)
	}
	if len(report.Issues) != 1 || report.Issues[0].Row != 1 {
		t.Fatalf("issues = %+v, want one issue for row 1", report.Issues)
	}
	if len(storeRepo.stores) != 0 {
		t.Error("skipped row still created a store")
	}
}

func TestImportPriceBranchExclusivity(t *testing.T) {
	svc, storeRepo, _ := newImportFixture()

	// Any per-product column silences VALOR UN. completely.
	row := importRowFixture()
	row["VALOR 20L"] = "14,00"
	row["VALOR 10L"] = "8,00"
	row["VALOR UN."] = "99,99"

	if _, err := svc.Run(1, []spreadsheet.Row{row}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for id := range storeRepo.stores {
		prices := storeRepo.prices[id]
		if len(prices) != 2 {
			t.Fatalf("expected 2 prices, got %d", len(prices))
		}
		for _, p := range prices {
			if p.UnitCents == 9999 {
				t.Error("VALOR UN. leaked into a per-product import")
			}
		}
	}
}

func TestImportColumnAlternatives(t *testing.T) {
	svc, storeRepo, _ := newImportFixture()

	row := importRowFixture()
	delete(row, "VALOR UN.")
	row["20L"] = "14,00" // alternative header for VALOR 20L

	if _, err := svc.Run(1, []spreadsheet.Row{row}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for id := range storeRepo.stores {
		prices := storeRepo.prices[id]
		if len(prices) != 1 || prices[0].Product != entity.ProductGalao20L || prices[0].UnitCents != 1400 {
			t.Errorf("prices = %+v, want single GALAO_20L at 1400", prices)
		}
	}
}

func TestImportUnparsablePriceCell(t *testing.T) {
	svc, storeRepo, _ := newImportFixture()

	row := importRowFixture()
	row["VALOR UN."] = "a combinar"

	report, err := svc.Run(1, []spreadsheet.Row{row})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// The store is still imported; it just ends up with no price rows.
	if report.Created != 1 {
		t.Fatalf("report = %+v, want 1 created", report)
	}
	for id := range storeRepo.stores {
		if len(storeRepo.prices[id]) != 0 {
			t.Errorf("unparsable price produced rows: %+v", storeRepo.prices[id])
		}
	}
}

// One ImportService instance serves every HTTP import, so two requests can run
// at the same time. The service must not keep per-run state on the struct;
// the race detector catches it if a run's brand cache leaks onto the instance.
func TestImportConcurrentRuns(t *testing.T) {
	svc, storeRepo, _ := newImportFixture()

	rows := []spreadsheet.Row{importRowFixture()}
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Run(1, rows); err != nil {
				t.Errorf("concurrent Run failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if len(storeRepo.stores) == 0 {
		t.Error("no store imported")
	}
}

func TestImportTruncatesUFByRunes(t *testing.T) {
	svc, storeRepo, _ := newImportFixture()

	// An accented cell must not be cut mid-rune into invalid UTF-8.
	row := importRowFixture()
	row["UF"] = "São Paulo"

	if _, err := svc.Run(1, []spreadsheet.Row{row}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, store := range storeRepo.stores {
		if !utf8.ValidString(store.State) {
			t.Fatalf("State = %q is not valid UTF-8", store.State)
		}
		if store.State != "SÃ" {
			t.Errorf("State = %q, want the first two runes upper-cased (SÃ)", store.State)
		}
	}
}
