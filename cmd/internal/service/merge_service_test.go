package service

import (
	"testing"

	"aguagestor/cmd/internal/contract"
	"aguagestor/cmd/internal/domain/entity"
	"aguagestor/cmd/internal/utils/apierror"
	"aguagestor/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
)

func newTestValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("cnpj", validators.CNPJ)
	_ = validate.RegisterValidation("uf", validators.UF)
	_ = validate.RegisterValidation("nodupes", validators.NoDupes)
	return validate
}

func mergeActor() *entity.User {
	return &entity.User{ID: 1, Permissions: entity.PermissionMergeStores, Active: true}
}

func TestMergeRejectsTargetInSources(t *testing.T) {
	storeRepo := newFakeStoreRepo()
	svc := NewMergeService(storeRepo, newTestValidator())

	_, apierr := svc.Merge(mergeActor(), &contract.MergeRequest{
		TargetID:  10,
		SourceIDs: []int64{11, 10},
		Strategy:  contract.MergeStrategyTarget,
	})

	if apierr != apierror.MergeTargetInSourcesError {
		t.Fatalf("Merge returned %v, want MergeTargetInSourcesError", apierr)
	}
	if storeRepo.mergedTarget != nil {
		t.Error("precondition violation still reached the repository")
	}
}

func TestMergeRejectsEmptySources(t *testing.T) {
	storeRepo := newFakeStoreRepo()
	svc := NewMergeService(storeRepo, newTestValidator())

	_, apierr := svc.Merge(mergeActor(), &contract.MergeRequest{
		TargetID:  10,
		SourceIDs: []int64{},
		Strategy:  contract.MergeStrategyTarget,
	})

	if apierr != apierror.MergeSourcesRequiredError {
		t.Fatalf("Merge with empty sources returned %v, want MergeSourcesRequiredError", apierr)
	}
	if storeRepo.mergedTarget != nil {
		t.Error("precondition violation still reached the repository")
	}
}

func TestMergeRejectsMissingTarget(t *testing.T) {
	storeRepo := newFakeStoreRepo()
	svc := NewMergeService(storeRepo, newTestValidator())

	_, apierr := svc.Merge(mergeActor(), &contract.MergeRequest{
		SourceIDs: []int64{11},
		Strategy:  contract.MergeStrategyTarget,
	})

	if apierr != apierror.MergeTargetRequiredError {
		t.Fatalf("Merge without target returned %v, want MergeTargetRequiredError", apierr)
	}
}

func TestMergeRejectsMissingPermission(t *testing.T) {
	storeRepo := newFakeStoreRepo()
	svc := NewMergeService(storeRepo, newTestValidator())

	actor := &entity.User{ID: 2, Permissions: entity.PermissionManageCatalog, Active: true}
	_, apierr := svc.Merge(actor, &contract.MergeRequest{
		TargetID:  10,
		SourceIDs: []int64{11},
		Strategy:  contract.MergeStrategyTarget,
	})

	if apierr != apierror.UserMissingPermsError {
		t.Fatalf("Merge returned %v, want UserMissingPermsError", apierr)
	}
}

func TestMergeUnknownSource(t *testing.T) {
	storeRepo := newFakeStoreRepo()
	storeRepo.stores[10] = &entity.Store{ID: 10, Name: "Loja Centro"}
	svc := NewMergeService(storeRepo, newTestValidator())

	_, apierr := svc.Merge(mergeActor(), &contract.MergeRequest{
		TargetID:  10,
		SourceIDs: []int64{999},
		Strategy:  contract.MergeStrategyTarget,
	})

	if apierr != apierror.NotFoundError {
		t.Fatalf("Merge returned %v, want NotFoundError", apierr)
	}
}

func TestMergeTargetStrategyFillsGaps(t *testing.T) {
	storeRepo := newFakeStoreRepo()
	storeRepo.stores[10] = &entity.Store{
		ID: 10, Name: "Loja Centro", City: "Curitiba", UpdatedAt: 100,
	}
	storeRepo.stores[11] = &entity.Store{
		ID: 11, Name: "Loja Centro Antiga", City: "Curitiba",
		CNPJ: "11222333000181", PostalCode: "80010010", UpdatedAt: 200,
	}
	svc := NewMergeService(storeRepo, newTestValidator())

	resp, apierr := svc.Merge(mergeActor(), &contract.MergeRequest{
		TargetID:  10,
		SourceIDs: []int64{11},
		Strategy:  contract.MergeStrategyTarget,
	})
	if apierr != nil {
		t.Fatalf("Merge failed: %v", apierr)
	}

	merged := storeRepo.mergedTarget
	if merged == nil {
		t.Fatal("repository merge was never called")
	}

	// Target keeps its own values and only absorbs what it was missing.
	if merged.Name != "Loja Centro" {
		t.Errorf("Name = %q, want target's own name", merged.Name)
	}
	if merged.CNPJ != "11222333000181" {
		t.Errorf("CNPJ = %q, want the source's value filling the gap", merged.CNPJ)
	}
	if merged.PostalCode != "80010010" {
		t.Errorf("PostalCode = %q, want the source's value filling the gap", merged.PostalCode)
	}

	if len(resp.Absorbed) != 1 || resp.Absorbed[0] != 11 {
		t.Errorf("Absorbed = %v, want [11]", resp.Absorbed)
	}
	if _, ok := storeRepo.stores[11]; ok {
		t.Error("source store survived the merge")
	}
}

func TestMergeSourceStrategy(t *testing.T) {
	storeRepo := newFakeStoreRepo()
	storeRepo.stores[10] = &entity.Store{
		ID: 10, Name: "Loja Centro", City: "Curitiba", CNPJ: "55444333000122", UpdatedAt: 100,
	}
	// First listed source has no name but a CNPJ; it was updated long ago.
	storeRepo.stores[11] = &entity.Store{
		ID: 11, CNPJ: "11222333000181", UpdatedAt: 50,
	}
	storeRepo.stores[12] = &entity.Store{
		ID: 12, Name: "Loja Nova", CNPJ: "99888777000166", UpdatedAt: 300,
	}
	svc := NewMergeService(storeRepo, newTestValidator())

	_, apierr := svc.Merge(mergeActor(), &contract.MergeRequest{
		TargetID:  10,
		SourceIDs: []int64{11, 12},
		Strategy:  contract.MergeStrategySource,
	})
	if apierr != nil {
		t.Fatalf("Merge failed: %v", apierr)
	}

	merged := storeRepo.mergedTarget
	if merged == nil {
		t.Fatal("repository merge was never called")
	}

	// The first source providing a value wins, in the order the request
	// listed them, regardless of which record is newer.
	if merged.CNPJ != "11222333000181" {
		t.Errorf("CNPJ = %q, want the first listed source's value", merged.CNPJ)
	}
	if merged.Name != "Loja Nova" {
		t.Errorf("Name = %q, want the next source filling the first one's gap", merged.Name)
	}
	// No source has a city, so the target's own value is the fallback.
	if merged.City != "Curitiba" {
		t.Errorf("City = %q, want the target's value as fallback", merged.City)
	}
	if merged.NormalizedName != "loja nova" {
		t.Errorf("NormalizedName = %q, not re-derived from the surviving name", merged.NormalizedName)
	}
}

func TestMergeMostRecentStrategy(t *testing.T) {
	storeRepo := newFakeStoreRepo()
	storeRepo.stores[10] = &entity.Store{
		ID: 10, Name: "Loja São João", City: "Curitiba", UpdatedAt: 100,
	}
	storeRepo.stores[11] = &entity.Store{
		ID: 11, Name: "Loja São João Matriz", City: "Curitiba", UpdatedAt: 300,
	}
	svc := NewMergeService(storeRepo, newTestValidator())

	_, apierr := svc.Merge(mergeActor(), &contract.MergeRequest{
		TargetID:  10,
		SourceIDs: []int64{11},
		Strategy:  contract.MergeStrategyMostRecent,
	})
	if apierr != nil {
		t.Fatalf("Merge failed: %v", apierr)
	}

	merged := storeRepo.mergedTarget
	if merged.Name != "Loja São João Matriz" {
		t.Errorf("Name = %q, want the most recently updated value", merged.Name)
	}
	if merged.NormalizedName != "loja sao joao matriz" {
		t.Errorf("NormalizedName = %q, not re-derived from the surviving name", merged.NormalizedName)
	}
}

func TestFindDuplicates(t *testing.T) {
	storeRepo := newFakeStoreRepo()
	cnpj := "11222333000181"
	storeRepo.stores[1] = &entity.Store{
		ID: 1, PartnerID: 1, Status: entity.StoreActive,
		NormalizedName: "loja centro", City: "Curitiba", CNPJ: cnpj, UpdatedAt: 100,
	}
	storeRepo.stores[2] = &entity.Store{
		ID: 2, PartnerID: 1, Status: entity.StoreActive,
		NormalizedName: "loja centro 2", City: "Curitiba", CNPJ: cnpj, UpdatedAt: 200,
	}
	storeRepo.stores[3] = &entity.Store{
		ID: 3, PartnerID: 1, Status: entity.StoreActive,
		NormalizedName: "agua boa", City: "Curitiba", PostalCode: "80010010", UpdatedAt: 50,
	}
	storeRepo.stores[4] = &entity.Store{
		ID: 4, PartnerID: 1, Status: entity.StoreActive,
		NormalizedName: "agua boa", City: "Curitiba", PostalCode: "80010010", UpdatedAt: 60,
	}
	// Inactive stores never join a group.
	storeRepo.stores[5] = &entity.Store{
		ID: 5, PartnerID: 1, Status: entity.StoreInactive,
		NormalizedName: "agua boa", City: "Curitiba",
	}
	svc := NewMergeService(storeRepo, newTestValidator())

	groups, apierr := svc.FindDuplicates(mergeActor(), 1)
	if apierr != nil {
		t.Fatalf("FindDuplicates failed: %v", apierr)
	}

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	// Groups come sorted by confidence, so CNPJ (1.0) leads.
	first := groups[0]
	if first.Reason != contract.DuplicateReasonCNPJ || first.Confidence != 1.0 {
		t.Errorf("first group = %s/%.2f, want CNPJ/1.00", first.Reason, first.Confidence)
	}
	if first.SuggestedTargetID != 2 {
		t.Errorf("suggested target = %d, want the most recently updated (2)", first.SuggestedTargetID)
	}

	second := groups[1]
	if second.Reason != contract.DuplicateReasonNameCity {
		t.Errorf("second group reason = %s, want NAME_CITY", second.Reason)
	}
	if second.Confidence != 0.95 {
		t.Errorf("confidence = %.2f, want 0.95 for matching postal codes", second.Confidence)
	}
	if second.SuggestedTargetID != 4 {
		t.Errorf("suggested target = %d, want 4", second.SuggestedTargetID)
	}
}

func TestFindDuplicatesCNPJClaimsFirst(t *testing.T) {
	storeRepo := newFakeStoreRepo()
	cnpj := "11222333000181"

	// Same name+city AND same CNPJ: the CNPJ group claims both stores and
	// no NAME_CITY group is emitted for them.
	storeRepo.stores[1] = &entity.Store{
		ID: 1, PartnerID: 1, Status: entity.StoreActive,
		NormalizedName: "loja centro", City: "Curitiba", CNPJ: cnpj, UpdatedAt: 100,
	}
	storeRepo.stores[2] = &entity.Store{
		ID: 2, PartnerID: 1, Status: entity.StoreActive,
		NormalizedName: "loja centro", City: "Curitiba", CNPJ: cnpj, UpdatedAt: 200,
	}
	svc := NewMergeService(storeRepo, newTestValidator())

	groups, apierr := svc.FindDuplicates(mergeActor(), 1)
	if apierr != nil {
		t.Fatalf("FindDuplicates failed: %v", apierr)
	}

	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0].Reason != contract.DuplicateReasonCNPJ {
		t.Errorf("reason = %s, want CNPJ", groups[0].Reason)
	}
}
