package service

import (
	"sort"

	"aguagestor/cmd/internal/contract"
	"aguagestor/cmd/internal/domain/entity"
	"aguagestor/cmd/internal/normalize"
	"aguagestor/cmd/internal/utils"
	"aguagestor/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

// Duplicate group confidence values. A shared CNPJ is conclusive; a
// name+city collision is strong, stronger still when the postal codes agree.
const (
	confidenceCNPJ        = 1.0
	confidenceNameCity    = 0.8
	confidenceNameCityCEP = 0.95
)

type DefaultMergeService struct {
	StoreRepo StoreRepository
	Validate  *validator.Validate
}

func NewMergeService(storeRepo StoreRepository, validate *validator.Validate) *DefaultMergeService {
	return &DefaultMergeService{
		StoreRepo: storeRepo,
		Validate:  validate,
	}
}

// FindDuplicates computes candidate duplicate groups for one partner's active
// stores. Groups are ephemeral: they exist only in this response and are
// consumed by a merge request. Stores claimed by a CNPJ group do not join a
// name+city group, keeping the two reasons mutually exclusive.
func (m *DefaultMergeService) FindDuplicates(actor *entity.User, partnerID int64) ([]*contract.DuplicateGroupResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionMergeStores) {
		return nil, apierror.UserMissingPermsError
	}

	stores, err := m.StoreRepo.FindAllActiveByPartner(partnerID)
	if err != nil {
		log.Errorf("failed to fetch stores for dedup: %v", err)
		return nil, apierror.InternalServerError
	}

	var groups []*contract.DuplicateGroupResponse
	claimed := make(map[int64]bool)

	byCNPJ := make(map[string][]*entity.Store)
	for _, store := range stores {
		if store.CNPJ != "" {
			byCNPJ[store.CNPJ] = append(byCNPJ[store.CNPJ], store)
		}
	}
	for _, members := range byCNPJ {
		if len(members) < 2 {
			continue
		}
		for _, store := range members {
			claimed[store.ID] = true
		}
		groups = append(groups, toGroupResponse(contract.DuplicateReasonCNPJ, confidenceCNPJ, members))
	}

	byNameCity := make(map[string][]*entity.Store)
	for _, store := range stores {
		if claimed[store.ID] {
			continue
		}
		key := store.NormalizedName + "\x00" + normalize.Name(store.City)
		byNameCity[key] = append(byNameCity[key], store)
	}
	for _, members := range byNameCity {
		if len(members) < 2 {
			continue
		}
		groups = append(groups, toGroupResponse(contract.DuplicateReasonNameCity, nameCityConfidence(members), members))
	}

	// Deterministic output: newest groups first, then by suggested target id.
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Confidence != groups[j].Confidence {
			return groups[i].Confidence > groups[j].Confidence
		}
		return groups[i].SuggestedTargetID < groups[j].SuggestedTargetID
	})
	return groups, nil
}

// Merge absorbs the source stores into the target under the requested fill
// strategy. Precondition violations (no target, no sources, target listed as
// a source) are rejected here, before anything reaches the database.
func (m *DefaultMergeService) Merge(actor *entity.User, req *contract.MergeRequest) (*contract.MergeResponse, apierror.ErrorResponse) {
	if !actor.Permissions.HasEffective(entity.PermissionMergeStores) {
		return nil, apierror.UserMissingPermsError
	}

	if req.TargetID == 0 {
		return nil, apierror.MergeTargetRequiredError
	}
	if len(req.SourceIDs) == 0 {
		return nil, apierror.MergeSourcesRequiredError
	}
	for _, id := range req.SourceIDs {
		if id == req.TargetID {
			return nil, apierror.MergeTargetInSourcesError
		}
	}

	if valerr := m.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	target, err := m.StoreRepo.FindByID(req.TargetID)
	if err != nil {
		log.Errorf("failed to fetch merge target: %v", err)
		return nil, apierror.InternalServerError
	}
	if target == nil {
		return nil, apierror.NotFoundError
	}

	found, err := m.StoreRepo.FindAllInIDs(req.SourceIDs)
	if err != nil {
		log.Errorf("failed to fetch merge sources: %v", err)
		return nil, apierror.InternalServerError
	}
	if len(found) != len(req.SourceIDs) {
		return nil, apierror.NotFoundError
	}

	// The "source" strategy honors the order the caller listed them in.
	sources := orderByIDs(found, req.SourceIDs)

	resolveStoreFields(target, sources, req.Strategy)
	target.UpdatedAt = utils.NowUTC()

	if err := m.StoreRepo.Merge(target, req.SourceIDs); err != nil {
		log.Errorf("failed to merge stores into %d: %v", target.ID, err)
		return nil, apierror.InternalServerError
	}

	return &contract.MergeResponse{
		Target:   toStoreResponse(target, nil),
		Absorbed: req.SourceIDs,
	}, nil
}

// resolveStoreFields rewrites the target's fields according to the strategy.
// Every field is resolved independently; the normalized name is re-derived
// from whatever name survives.
func resolveStoreFields(target *entity.Store, sources []*entity.Store, strategy string) {
	pick := func(get func(*entity.Store) string) string {
		return pickValue(strategy, target, sources, get)
	}

	target.Name = pick(func(s *entity.Store) string { return s.Name })
	target.Address = pick(func(s *entity.Store) string { return s.Address })
	target.Street = pick(func(s *entity.Store) string { return s.Street })
	target.Number = pick(func(s *entity.Store) string { return s.Number })
	target.Complement = pick(func(s *entity.Store) string { return s.Complement })
	target.District = pick(func(s *entity.Store) string { return s.District })
	target.City = pick(func(s *entity.Store) string { return s.City })
	target.State = pick(func(s *entity.Store) string { return s.State })
	target.PostalCode = pick(func(s *entity.Store) string { return s.PostalCode })
	target.ExternalCode = pick(func(s *entity.Store) string { return s.ExternalCode })
	target.CNPJ = pick(func(s *entity.Store) string { return s.CNPJ })

	mall := pickValue(strategy, target, sources, func(s *entity.Store) string {
		if s.Mall == nil {
			return ""
		}
		return *s.Mall
	})
	if mall == "" {
		target.Mall = nil
	} else {
		target.Mall = &mall
	}

	target.NormalizedName = normalize.Name(target.Name)
}

// pickValue resolves one field across target and sources:
//
//   - target: the target's value wherever it is non-empty, sources fill gaps.
//   - source: the first source providing a value wins, target is the fallback.
//   - mostRecent: among records providing a value, the most recently updated wins.
func pickValue(strategy string, target *entity.Store, sources []*entity.Store, get func(*entity.Store) string) string {
	switch strategy {
	case contract.MergeStrategySource:
		for _, src := range sources {
			if v := get(src); v != "" {
				return v
			}
		}
		return get(target)

	case contract.MergeStrategyMostRecent:
		best := ""
		bestAt := int64(-1)
		for _, rec := range append([]*entity.Store{target}, sources...) {
			if v := get(rec); v != "" && rec.UpdatedAt > bestAt {
				best = v
				bestAt = rec.UpdatedAt
			}
		}
		return best

	default: // contract.MergeStrategyTarget
		if v := get(target); v != "" {
			return v
		}
		for _, src := range sources {
			if v := get(src); v != "" {
				return v
			}
		}
		return ""
	}
}

func nameCityConfidence(members []*entity.Store) float64 {
	cep := members[0].PostalCode
	if cep == "" {
		return confidenceNameCity
	}
	for _, store := range members[1:] {
		if store.PostalCode != cep {
			return confidenceNameCity
		}
	}
	return confidenceNameCityCEP
}

// toGroupResponse sorts members by recency and suggests the most recently
// updated one as the merge target.
func toGroupResponse(reason string, confidence float64, members []*entity.Store) *contract.DuplicateGroupResponse {
	sort.Slice(members, func(i, j int) bool {
		return members[i].UpdatedAt > members[j].UpdatedAt
	})

	stores := make([]*contract.StoreResponse, len(members))
	for i, store := range members {
		stores[i] = toStoreResponse(store, nil)
	}

	return &contract.DuplicateGroupResponse{
		ID:                uuid.NewString(),
		Reason:            reason,
		Confidence:        confidence,
		SuggestedTargetID: members[0].ID,
		Stores:            stores,
	}
}

func orderByIDs(stores []*entity.Store, ids []int64) []*entity.Store {
	byID := make(map[int64]*entity.Store, len(stores))
	for _, store := range stores {
		byID[store.ID] = store
	}

	ordered := make([]*entity.Store, 0, len(ids))
	for _, id := range ids {
		if store, ok := byID[id]; ok {
			ordered = append(ordered, store)
		}
	}
	return ordered
}
