package profile

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"agora/db"
	"agora/models"
	"agora/rdx"
	"agora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const profileCacheTTL = 5 * time.Minute

// ProfileView bundles the identity row, extended attributes, and the resolved
// avatar for one user.
type ProfileView struct {
	UserID       string         `json:"userid"`
	Username     string         `json:"username"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	ProfileImage string         `json:"profile_image"`
	Profile      models.Profile `json:"profile"`
}

// GetProfile serves a user's profile, through the Redis cache when warm.
func GetProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userid")
	ctx := r.Context()

	if cached, err := rdx.RdxGet("profile:" + userID); err == nil && cached != "" {
		var view ProfileView
		if json.Unmarshal([]byte(cached), &view) == nil {
			utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "profile": view})
			return
		}
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("profile: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	var ext models.Profile
	// extended attributes are optional; a missing row is not an error
	_ = db.ProfilesCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&ext)

	images, err := ImageRolesByUser(ctx, []string{userID})
	if err != nil {
		log.Printf("profile: image roles: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	view := ProfileView{
		UserID:       user.UserID,
		Username:     user.Username,
		Name:         user.Name,
		Email:        user.Email,
		ProfileImage: ResolveProfileImage(images[userID], ProfilePriority),
		Profile:      ext,
	}

	if data, err := json.Marshal(view); err == nil {
		rdx.RdxSet("profile:"+userID, string(data), profileCacheTTL)
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "profile": view})
}

// UpdateProfile upserts the extended attribute row for the caller.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var in models.Profile
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	_, err := db.ProfilesCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID},
		bson.M{
			"$set": bson.M{
				"bio":          in.Bio,
				"phone_number": in.PhoneNumber,
				"address":      in.Address,
				"social_links": in.SocialLinks,
				"skills":       in.Skills,
				"updated_at":   time.Now(),
			},
			"$setOnInsert": bson.M{"userid": userID, "created_at": time.Now()},
		},
		options.Update().SetUpsert(true))
	if err != nil {
		log.Printf("profile: update: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	InvalidateCachedProfile(userID)
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Profile updated"})
}

func InvalidateCachedProfile(userID string) {
	if err := rdx.RdxDel("profile:" + userID); err != nil {
		log.Printf("profile: cache invalidate: %v", err)
	}
}
