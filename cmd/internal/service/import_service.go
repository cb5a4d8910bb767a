package service

import (
	"errors"
	"fmt"
	"strings"

	"aguagestor/cmd/internal/contract"
	"aguagestor/cmd/internal/domain/entity"
	"aguagestor/cmd/internal/normalize"
	"aguagestor/cmd/internal/spreadsheet"
	"aguagestor/cmd/internal/utils"
	"aguagestor/cmd/internal/utils/apierror"
	"aguagestor/cmd/internal/utils/uid"

	"github.com/labstack/gommon/log"
)

// ErrPartnerNotFound aborts an import before any row is touched.
var ErrPartnerNotFound = errors.New("import partner does not exist")

// Spreadsheet columns, matched exactly and case-sensitively. The files come
// from the partners themselves; header variants that actually occur are
// listed as alternatives, nothing is fuzzy-matched.
const (
	colBrand   = "MARCA"
	colStore   = "LOJA"
	colAddress = "LOCAL DA ENTREGA"
	colCity    = "MUNICIPIO"
	colState   = "UF"

	// Generic unit price, used only when no per-product column is filled.
	colUnitPrice = "VALOR UN."
)

var priceColumns = []struct {
	product entity.ProductType
	keys    []string
}{
	{entity.ProductGalao20L, []string{"VALOR 20L", "20L"}},
	{entity.ProductGalao10L, []string{"VALOR 10L", "10L"}},
	{entity.ProductPet1500ML, []string{"VALOR 1500ML", "1,5L", "1.5L"}},
	{entity.ProductCaixaCopo, []string{"VALOR COPO", "CAIXA DE COPO"}},
	{entity.ProductVasilhame, []string{"VALOR VASILHAME"}},
}

// ImportService reconciles spreadsheet rows against the store table for one
// partner. Rows are processed strictly in order, one at a time: each row's
// brand upsert and store write complete before the next row starts, which is
// what keeps re-imports of the same file race-free. The service itself holds
// no per-run state, so one instance can serve concurrent HTTP imports.
type ImportService struct {
	PartnerRepo PartnerRepository
	BrandRepo   BrandRepository
	StoreRepo   StoreRepository
}

func NewImportService(partnerRepo PartnerRepository, brandRepo BrandRepository, storeRepo StoreRepository) *ImportService {
	return &ImportService{
		PartnerRepo: partnerRepo,
		BrandRepo:   brandRepo,
		StoreRepo:   storeRepo,
	}
}

// Run imports every row for the given partner. A malformed row is skipped and
// reported, never aborting the batch; an unknown partner or a failed brand
// upsert is fatal and returns an error with no report.
func (s *ImportService) Run(partnerID int64, rows []spreadsheet.Row) (*contract.ImportReport, error) {
	partner, err := s.PartnerRepo.FindByID(partnerID)
	if err != nil {
		return nil, fmt.Errorf("looking up partner %d: %w", partnerID, err)
	}

	if partner == nil {
		return nil, ErrPartnerNotFound
	}

	// Brand cache for this run only, keyed by name. Kept local so that
	// concurrent runs never share it.
	brands := make(map[string]*entity.Brand)
	report := &contract.ImportReport{Total: len(rows)}

	for i, row := range rows {
		outcome, err := s.importRow(partner, row, brands)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		switch {
		case outcome.skipReason != "":
			report.Skipped++
			report.Issues = append(report.Issues, &contract.RowIssue{
				Row:    i + 1,
				Store:  row.Get(colStore),
				Reason: outcome.skipReason,
			})
			log.Warnf("import: skipping row %d: %s", i+1, outcome.skipReason)
		case outcome.created:
			report.Created++
		default:
			report.Updated++
		}
	}
	return report, nil
}

type rowOutcome struct {
	created    bool
	skipReason string
}

func (s *ImportService) importRow(partner *entity.Partner, row spreadsheet.Row, brands map[string]*entity.Brand) (rowOutcome, error) {
	brandName := row.Get(colBrand)
	storeName := row.Get(colStore)
	address := row.Get(colAddress)
	city := row.Get(colCity)
	state := upperUF(row.Get(colState))

	switch {
	case storeName == "":
		return rowOutcome{skipReason: "missing store name (LOJA)"}, nil
	case address == "":
		return rowOutcome{skipReason: "missing delivery address (LOCAL DA ENTREGA)"}, nil
	case brandName == "":
		return rowOutcome{skipReason: "missing brand (MARCA)"}, nil
	}

	brand, err := s.findOrCreateBrand(partner.ID, brandName, brands)
	if err != nil {
		// A broken brand upsert poisons every following row of the same
		// brand, so this one is fatal for the run.
		return rowOutcome{}, fmt.Errorf("resolving brand %q: %w", brandName, err)
	}

	normalized := normalize.Name(storeName)
	parsed := normalize.ParseAddress(address)

	// Explicit spreadsheet columns win; parsed address fields are the fallback.
	city = fallback(city, parsed.City)
	state = fallback(state, upperUF(parsed.State))

	store, err := s.StoreRepo.FindByImportKey(brand.ID, normalized, city)
	if err != nil {
		return rowOutcome{}, fmt.Errorf("looking up store %q: %w", storeName, err)
	}

	now := utils.NowUTC()
	created := store == nil
	if created {
		store = &entity.Store{
			ID:        uid.Generate(),
			BrandID:   brand.ID,
			PartnerID: partner.ID,
			Status:    entity.StoreActive,
			CreatedAt: now,
		}
	}

	store.Name = storeName
	store.NormalizedName = normalized
	store.Address = address
	store.Street = parsed.Street
	store.Number = parsed.Number
	store.Complement = parsed.Complement
	store.District = parsed.District
	store.City = city
	store.State = state
	store.PostalCode = parsed.PostalCode
	store.UpdatedAt = now

	if err := s.StoreRepo.Save(store); err != nil {
		return rowOutcome{}, fmt.Errorf("saving store %q: %w", storeName, err)
	}

	prices := computePrices(row)
	for _, price := range prices {
		price.StoreID = store.ID
		price.CreatedAt = now
		price.UpdatedAt = now
	}

	if err := s.StoreRepo.ReplacePrices(store.ID, prices); err != nil {
		return rowOutcome{}, fmt.Errorf("replacing prices of store %q: %w", storeName, err)
	}
	return rowOutcome{created: created}, nil
}

func (s *ImportService) findOrCreateBrand(partnerID int64, name string, brands map[string]*entity.Brand) (*entity.Brand, error) {
	if brand, ok := brands[name]; ok {
		return brand, nil
	}

	brand, err := s.BrandRepo.FindByPartnerAndName(partnerID, name)
	if err != nil {
		return nil, err
	}

	if brand == nil {
		now := utils.NowUTC()
		brand = &entity.Brand{
			ID:        uid.Generate(),
			PartnerID: partnerID,
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.BrandRepo.Save(brand); err != nil {
			return nil, err
		}
	}

	brands[name] = brand
	return brand, nil
}

// computePrices builds the price set of one row. When any per-product column
// is filled, exactly the parsable ones are used and the generic unit price is
// ignored; only a row with no per-product column at all falls back to
// VALOR UN. as the 20L price. A cell that does not parse contributes nothing.
func computePrices(row spreadsheet.Row) []*entity.StorePrice {
	var prices []*entity.StorePrice
	anyProductCell := false

	for _, col := range priceColumns {
		cell := row.First(col.keys...)
		if cell == "" {
			continue
		}
		anyProductCell = true

		if cents, ok := normalize.BRLToCents(cell); ok {
			prices = append(prices, &entity.StorePrice{
				Product:   col.product,
				UnitCents: cents,
			})
		}
	}

	if anyProductCell {
		return prices
	}

	if cents, ok := normalize.BRLToCents(row.Get(colUnitPrice)); ok {
		prices = append(prices, &entity.StorePrice{
			Product:   entity.ProductGalao20L,
			UnitCents: cents,
		})
	}
	return prices
}

// upperUF truncates by runes, not bytes, so accented cells like "São Paulo"
// do not end up as invalid UTF-8.
func upperUF(s string) string {
	s = strings.ToUpper(s)
	if r := []rune(s); len(r) > 2 {
		return string(r[:2])
	}
	return s
}

// RunFromSheet is the HTTP entry point: same semantics as Run, mapped to API
// error responses.
func (s *ImportService) RunFromSheet(actor *entity.User, partnerID int64, rows []spreadsheet.Row) (*contract.ImportReport, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionImportStores) {
		return nil, apierror.UserMissingPermsError
	}

	report, err := s.Run(partnerID, rows)
	if errors.Is(err, ErrPartnerNotFound) {
		return nil, apierror.NotFoundError
	}

	if err != nil {
		log.Errorf("import failed: %v", err)
		return nil, apierror.InternalServerError
	}
	return report, nil
}
