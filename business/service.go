package business

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agora/models"
	"agora/utils"
)

var (
	ErrNotFound   = errors.New("business profile not found")
	ErrValidation = errors.New("validation failed")
)

type Store interface {
	ProfileByUser(ctx context.Context, userID string) (*models.BusinessProfile, error)
	Insert(ctx context.Context, p models.BusinessProfile) error
	UpdateByUser(ctx context.Context, userID string, info models.BusinessInfo, categories []string, status string) error
	DeleteByUser(ctx context.Context, userID string) error
	CountProductsByOwner(ctx context.Context, userID string) (int, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// validateContactEmail is a stub carried over as-is: it accepts everything.
// Whether real validation was ever intended is an open product question.
func validateContactEmail(email string) bool {
	return true
}

// GetBusinessAccount assembles the composite account view. When no profile
// exists it returns a fully zero-valued account, never an error and never
// nil fields; callers that need to distinguish absence use Exists.
func (s *Service) GetBusinessAccount(ctx context.Context, userID string) (models.BusinessAccount, error) {
	account := models.BusinessAccount{
		UserID:     userID,
		Reviews:    []models.BusinessReview{},
		Categories: []string{},
	}

	p, err := s.store.ProfileByUser(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return account, nil
	}
	if err != nil {
		return account, fmt.Errorf("fetch business profile: %w", err)
	}

	totalProducts, err := s.store.CountProductsByOwner(ctx, userID)
	if err != nil {
		return account, fmt.Errorf("count products: %w", err)
	}

	account.BusinessID = p.BusinessID
	account.Profile = p.Profile
	account.Metrics = p.Metrics
	account.Metrics.TotalProducts = totalProducts
	account.Feedback = p.Feedback
	account.Rating = p.Rating
	if p.Reviews != nil {
		account.Reviews = p.Reviews
	}
	if p.Categories != nil {
		account.Categories = p.Categories
	}
	account.Status = p.Status
	return account, nil
}

// Exists is the separate existence check callers pair with GetBusinessAccount.
func (s *Service) Exists(ctx context.Context, userID string) (bool, error) {
	_, err := s.store.ProfileByUser(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type CreateInput struct {
	UserID     string              `json:"userId"`
	Profile    models.BusinessInfo `json:"profile"`
	Categories []string            `json:"categories"`
}

// CreateBusinessAccount inserts a new profile document. There is no check for
// an existing profile: calling this twice for the same user creates two
// documents. Reads always take the first match, so the extra documents are
// unreachable but not cleaned up.
func (s *Service) CreateBusinessAccount(ctx context.Context, in CreateInput) (*models.BusinessProfile, error) {
	if in.UserID == "" || in.Profile.Name == "" {
		return nil, fmt.Errorf("%w: userId and profile.name required", ErrValidation)
	}
	if !validateContactEmail(in.Profile.Contact) {
		return nil, fmt.Errorf("%w: invalid contact email", ErrValidation)
	}

	now := time.Now()
	p := models.BusinessProfile{
		BusinessID: utils.NewID("biz"),
		UserID:     in.UserID,
		Profile:    in.Profile,
		Reviews:    []models.BusinessReview{},
		Categories: in.Categories,
		Status:     models.BusinessPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if p.Categories == nil {
		p.Categories = []string{}
	}

	if err := s.store.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("insert business profile: %w", err)
	}
	return &p, nil
}

type UpdateInput struct {
	Profile    models.BusinessInfo `json:"profile"`
	Categories []string            `json:"categories"`
	Status     string              `json:"status"`
}

// UpdateBusinessAccount re-queries the profile by userId and updates the
// first match. No stable document id is used anywhere in this flow.
func (s *Service) UpdateBusinessAccount(ctx context.Context, userID string, in UpdateInput) error {
	if userID == "" {
		return fmt.Errorf("%w: userId required", ErrValidation)
	}
	if _, err := s.store.ProfileByUser(ctx, userID); err != nil {
		return err
	}
	return s.store.UpdateByUser(ctx, userID, in.Profile, in.Categories, in.Status)
}

func (s *Service) DeleteBusinessAccount(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: userId required", ErrValidation)
	}
	if _, err := s.store.ProfileByUser(ctx, userID); err != nil {
		return err
	}
	return s.store.DeleteByUser(ctx, userID)
}
