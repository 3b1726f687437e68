package business

import (
	"context"
	"testing"

	"agora/models"
)

// fakeStore appends inserts and reads back the first match, like the
// userId-filtered Mongo queries do.
type fakeStore struct {
	profiles []models.BusinessProfile
	products map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: map[string]int{}}
}

func (f *fakeStore) ProfileByUser(ctx context.Context, userID string) (*models.BusinessProfile, error) {
	for i := range f.profiles {
		if f.profiles[i].UserID == userID {
			p := f.profiles[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) Insert(ctx context.Context, p models.BusinessProfile) error {
	f.profiles = append(f.profiles, p)
	return nil
}

func (f *fakeStore) UpdateByUser(ctx context.Context, userID string, info models.BusinessInfo, categories []string, status string) error {
	for i := range f.profiles {
		if f.profiles[i].UserID == userID {
			f.profiles[i].Profile = info
			if categories != nil {
				f.profiles[i].Categories = categories
			}
			if status != "" {
				f.profiles[i].Status = status
			}
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeStore) DeleteByUser(ctx context.Context, userID string) error {
	for i := range f.profiles {
		if f.profiles[i].UserID == userID {
			f.profiles = append(f.profiles[:i], f.profiles[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeStore) CountProductsByOwner(ctx context.Context, userID string) (int, error) {
	return f.products[userID], nil
}

func TestGetBusinessAccountMissingProfileIsZeroValued(t *testing.T) {
	svc := NewService(newFakeStore())

	account, err := svc.GetBusinessAccount(context.Background(), "u1")
	if err != nil {
		t.Fatalf("missing profile must not error: %v", err)
	}
	if account.UserID != "u1" {
		t.Fatalf("userid not echoed, got %q", account.UserID)
	}
	if account.Reviews == nil || account.Categories == nil {
		t.Fatal("reviews and categories must be empty slices, never nil")
	}
	if account.Metrics.TotalProducts != 0 || account.Rating.Count != 0 {
		t.Fatalf("expected zero metrics, got %#v", account.Metrics)
	}

	exists, err := svc.Exists(context.Background(), "u1")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatal("exists must report false for absent profiles")
	}
}

func TestGetBusinessAccountRecomputesProductCount(t *testing.T) {
	store := newFakeStore()
	store.products["u1"] = 7
	svc := NewService(store)

	if _, err := svc.CreateBusinessAccount(context.Background(), CreateInput{
		UserID:  "u1",
		Profile: models.BusinessInfo{Name: "Corner Shop"},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	account, err := svc.GetBusinessAccount(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if account.Metrics.TotalProducts != 7 {
		t.Fatalf("totalProducts must come from the ownership count, got %d", account.Metrics.TotalProducts)
	}
	if account.Profile.Name != "Corner Shop" {
		t.Fatalf("profile not carried into the composite, got %#v", account.Profile)
	}
}

// Creating twice for one user really does produce two documents. Reads only
// ever see the first one. Kept as a regression check on the current behavior.
func TestCreateBusinessAccountTwiceDuplicates(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	first, err := svc.CreateBusinessAccount(context.Background(), CreateInput{
		UserID:  "u1",
		Profile: models.BusinessInfo{Name: "First"},
	})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := svc.CreateBusinessAccount(context.Background(), CreateInput{
		UserID:  "u1",
		Profile: models.BusinessInfo{Name: "Second"},
	})
	if err != nil {
		t.Fatalf("second create must not be rejected: %v", err)
	}
	if first.BusinessID == second.BusinessID {
		t.Fatal("each insert must mint its own business id")
	}
	if len(store.profiles) != 2 {
		t.Fatalf("expected 2 documents for the same user, got %d", len(store.profiles))
	}

	account, err := svc.GetBusinessAccount(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if account.Profile.Name != "First" {
		t.Fatalf("reads must return the first match, got %q", account.Profile.Name)
	}
}

func TestCreateBusinessAccountAcceptsAnyContact(t *testing.T) {
	svc := NewService(newFakeStore())

	// contact is not validated; any string goes through
	p, err := svc.CreateBusinessAccount(context.Background(), CreateInput{
		UserID:  "u1",
		Profile: models.BusinessInfo{Name: "Shop", Contact: "not-an-email"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Status != models.BusinessPending {
		t.Fatalf("new profiles must start pending, got %q", p.Status)
	}
}

func TestUpdateBusinessAccountKeepsOmittedFields(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	if _, err := svc.CreateBusinessAccount(context.Background(), CreateInput{
		UserID:     "u1",
		Profile:    models.BusinessInfo{Name: "Original", Contact: "owner@example.com"},
		Categories: []string{"bakery"},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := svc.UpdateBusinessAccount(context.Background(), "u1", UpdateInput{
		Profile: models.BusinessInfo{Name: "Renamed", Contact: "owner@example.com"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := store.ProfileByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got.Profile.Name != "Renamed" {
		t.Fatalf("profile not updated, got %q", got.Profile.Name)
	}
	if len(got.Categories) != 1 || got.Categories[0] != "bakery" {
		t.Fatalf("nil categories must keep the stored value, got %v", got.Categories)
	}
	if got.Status != "pending" {
		t.Fatalf("empty status must keep the stored value, got %q", got.Status)
	}
}

func TestUpdateBusinessAccountMissingProfile(t *testing.T) {
	svc := NewService(newFakeStore())
	err := svc.UpdateBusinessAccount(context.Background(), "ghost", UpdateInput{
		Profile: models.BusinessInfo{Name: "X"},
	})
	if err == nil {
		t.Fatal("expected error updating an absent profile")
	}
}
