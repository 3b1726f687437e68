package profile

import (
	"context"

	"agora/db"
	"agora/globals"
	"agora/models"
	"agora/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// Role priority per call site. The orders differ on purpose: job listings and
// application listings resolved their avatars through different chains in the
// product, and callers pass the order that matches their context.
var (
	CreatorPriority   = []models.RoleTag{models.RoleJobProfile, models.RoleProfile}
	ApplicantPriority = []models.RoleTag{models.RoleJobApplyProfile, models.RoleJobProfile, models.RoleProfile}
	CommunityPriority = []models.RoleTag{models.RoleProfile}
	PostPriority      = []models.RoleTag{models.RolePostProfile, models.RoleProfile}

	// ProfilePriority is the plain profile-page chain. Same order as the
	// community member list, named for its own call site.
	ProfilePriority = CommunityPriority
)

// ResolveProfileImage picks the URL assigned to the first role in priority
// that has an assignment. Falls back to the default avatar.
func ResolveProfileImage(byRole map[models.RoleTag]string, priority []models.RoleTag) string {
	for _, role := range priority {
		if url, ok := byRole[role]; ok && url != "" {
			return url
		}
	}
	return globals.DefaultAvatar
}

// ImageRolesByUser joins profileImageSetAs with profileImages for a batch of
// users and returns role → URL per user. One query per collection regardless
// of the batch size.
func ImageRolesByUser(ctx context.Context, userIDs []string) (map[string]map[models.RoleTag]string, error) {
	out := make(map[string]map[models.RoleTag]string, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	assignments, err := utils.FindAndDecode[models.ImageAssignment](ctx, db.ProfileImageSetAsCollection,
		bson.M{"userid": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return out, nil
	}

	imageIDs := make([]string, 0, len(assignments))
	for _, a := range assignments {
		imageIDs = append(imageIDs, a.ImageID)
	}

	images, err := utils.FindAndDecode[models.ProfileImage](ctx, db.ProfileImagesCollection,
		bson.M{"imageid": bson.M{"$in": imageIDs}})
	if err != nil {
		return nil, err
	}

	urlByImage := make(map[string]string, len(images))
	for _, img := range images {
		urlByImage[img.ImageID] = img.URL
	}

	for _, a := range assignments {
		url, ok := urlByImage[a.ImageID]
		if !ok {
			continue // dangling assignment, image row gone
		}
		if out[a.UserID] == nil {
			out[a.UserID] = make(map[models.RoleTag]string)
		}
		out[a.UserID][a.Role] = url
	}
	return out, nil
}
