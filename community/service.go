package community

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agora/models"
	"agora/profile"
	"agora/utils"

	"golang.org/x/sync/errgroup"
)

var (
	ErrNotFound   = errors.New("community not found")
	ErrValidation = errors.New("validation failed")
)

type Store interface {
	Community(ctx context.Context, communityID string) (*models.Community, error)
	InsertCommunity(ctx context.Context, c models.Community) error
	InsertMember(ctx context.Context, m models.CommunityMember) error
	RemoveMember(ctx context.Context, communityID, userID string) error
	InsertPost(ctx context.Context, p models.CommunityPost, media []models.CommunityPostMedia) error

	MembersByCommunity(ctx context.Context, communityID string) ([]models.CommunityMember, error)
	PostsByCommunity(ctx context.Context, communityID string) ([]models.CommunityPost, error)
	MediaByPosts(ctx context.Context, postIDs []string) (map[string][]models.CommunityPostMedia, error)

	UsersByID(ctx context.Context, userIDs []string) (map[string]models.User, error)
	ImageRolesByUser(ctx context.Context, userIDs []string) (map[string]map[models.RoleTag]string, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// FetchCommunityMembers returns membership rows with each member's display
// identity. One batched query per child collection, never one per row.
func (s *Service) FetchCommunityMembers(ctx context.Context, communityID string) ([]models.CommunityMemberView, error) {
	if communityID == "" {
		return nil, fmt.Errorf("%w: communityId required", ErrValidation)
	}

	members, err := s.store.MembersByCommunity(ctx, communityID)
	if err != nil {
		return nil, fmt.Errorf("fetch members: %w", err)
	}
	if len(members) == 0 {
		return []models.CommunityMemberView{}, nil
	}

	userIDs := make([]string, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	userIDs = dedupe(userIDs)

	users, images, err := s.resolveDisplays(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.CommunityMemberView, 0, len(members))
	for _, m := range members {
		views = append(views, models.CommunityMemberView{
			CommunityMember: m,
			Member:          displayFor(m.UserID, users, images, profile.CommunityPriority),
		})
	}
	return views, nil
}

// FetchCommunityPosts returns posts newest first, each with its media rows
// and the author's display identity.
func (s *Service) FetchCommunityPosts(ctx context.Context, communityID string) ([]models.CommunityPostView, error) {
	if communityID == "" {
		return nil, fmt.Errorf("%w: communityId required", ErrValidation)
	}

	posts, err := s.store.PostsByCommunity(ctx, communityID)
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}
	if len(posts) == 0 {
		return []models.CommunityPostView{}, nil
	}

	postIDs := make([]string, 0, len(posts))
	authorIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.PostID)
		authorIDs = append(authorIDs, p.UserID)
	}
	authorIDs = dedupe(authorIDs)

	var (
		media  map[string][]models.CommunityPostMedia
		users  map[string]models.User
		images map[string]map[models.RoleTag]string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(3)
	g.Go(func() (err error) {
		media, err = s.store.MediaByPosts(gctx, postIDs)
		return err
	})
	g.Go(func() (err error) {
		users, err = s.store.UsersByID(gctx, authorIDs)
		return err
	})
	g.Go(func() (err error) {
		images, err = s.store.ImageRolesByUser(gctx, authorIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregate posts: %w", err)
	}

	views := make([]models.CommunityPostView, 0, len(posts))
	for _, p := range posts {
		rows := media[p.PostID]
		if rows == nil {
			rows = []models.CommunityPostMedia{}
		}
		views = append(views, models.CommunityPostView{
			CommunityPost: p,
			Author:        displayFor(p.UserID, users, images, profile.PostPriority),
			Media:         rows,
		})
	}
	return views, nil
}

func (s *Service) CreateCommunity(ctx context.Context, name, description, createdBy string) (*models.Community, error) {
	if name == "" || createdBy == "" {
		return nil, fmt.Errorf("%w: name and creator required", ErrValidation)
	}

	c := models.Community{
		CommunityID: utils.NewID("com"),
		Name:        name,
		Description: description,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
	}
	if err := s.store.InsertCommunity(ctx, c); err != nil {
		return nil, fmt.Errorf("insert community: %w", err)
	}

	// the creator joins their own community
	member := models.CommunityMember{
		CommunityID: c.CommunityID,
		UserID:      createdBy,
		Role:        "admin",
		JoinedAt:    c.CreatedAt,
	}
	if err := s.store.InsertMember(ctx, member); err != nil {
		return nil, fmt.Errorf("insert creator membership: %w", err)
	}
	return &c, nil
}

func (s *Service) Join(ctx context.Context, communityID, userID string) error {
	if communityID == "" || userID == "" {
		return fmt.Errorf("%w: communityId and userId required", ErrValidation)
	}
	if _, err := s.store.Community(ctx, communityID); err != nil {
		return err
	}
	return s.store.InsertMember(ctx, models.CommunityMember{
		CommunityID: communityID,
		UserID:      userID,
		Role:        "member",
		JoinedAt:    time.Now(),
	})
}

func (s *Service) Leave(ctx context.Context, communityID, userID string) error {
	if communityID == "" || userID == "" {
		return fmt.Errorf("%w: communityId and userId required", ErrValidation)
	}
	return s.store.RemoveMember(ctx, communityID, userID)
}

type CreatePostInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Media   []string `json:"media"`
}

// CreatePost stores a post and one media row per attachment. Deleting the
// post later does not cascade onto media rows.
func (s *Service) CreatePost(ctx context.Context, communityID, userID string, in CreatePostInput) (*models.CommunityPost, error) {
	if communityID == "" || userID == "" || in.Content == "" {
		return nil, fmt.Errorf("%w: communityId, userId and content required", ErrValidation)
	}
	if _, err := s.store.Community(ctx, communityID); err != nil {
		return nil, err
	}

	now := time.Now()
	post := models.CommunityPost{
		PostID:      utils.NewID("post"),
		CommunityID: communityID,
		UserID:      userID,
		Title:       in.Title,
		Content:     in.Content,
		CreatedAt:   now,
	}

	media := make([]models.CommunityPostMedia, 0, len(in.Media))
	for _, url := range in.Media {
		media = append(media, models.CommunityPostMedia{
			MediaID:   utils.NewID("cm"),
			PostID:    post.PostID,
			URL:       url,
			MediaType: "image",
			CreatedAt: now,
		})
	}

	if err := s.store.InsertPost(ctx, post, media); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return &post, nil
}

func (s *Service) resolveDisplays(ctx context.Context, userIDs []string) (map[string]models.User, map[string]map[models.RoleTag]string, error) {
	var (
		users  map[string]models.User
		images map[string]map[models.RoleTag]string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.store.UsersByID(gctx, userIDs)
		return err
	})
	g.Go(func() (err error) {
		images, err = s.store.ImageRolesByUser(gctx, userIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("resolve member displays: %w", err)
	}
	return users, images, nil
}

func displayFor(userID string, users map[string]models.User, images map[string]map[models.RoleTag]string, priority []models.RoleTag) models.UserDisplay {
	u := users[userID]
	return models.UserDisplay{
		UserID:       userID,
		Username:     u.Username,
		Name:         u.Name,
		ProfileImage: profile.ResolveProfileImage(images[userID], priority),
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
