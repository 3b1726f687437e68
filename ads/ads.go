package ads

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"agora/db"
	"agora/forms"
	"agora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Ad represents the structure of an advertisement.
type Ad struct {
	AdID        string    `json:"adid" bson:"adid"`
	OwnerID     string    `json:"ownerId" bson:"ownerId"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	Link        string    `json:"link,omitempty" bson:"link,omitempty"`
	Category    string    `json:"category" bson:"category"`
	Active      bool      `json:"active" bson:"active"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// GetAds serves active ads, optionally filtered by category.
func GetAds(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	filter := bson.M{"active": true}
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category != "" && category != "default" {
		filter["category"] = category
	}

	opts := utils.OptionsFindLatest(20).SetSort(bson.M{"createdAt": -1})
	ads, err := utils.FindAndDecode[Ad](ctx, db.AdsCollection, filter, opts)
	if err != nil {
		log.Printf("ads: list: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if ads == nil {
		ads = []Ad{}
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "ads": ads})
}

// CreateAd validates the ad wizard payload and stores the ad.
func CreateAd(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var in Ad
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	fieldErrs, ok := forms.ValidateAll(forms.AdSchema(), map[string]string{
		"title":       in.Title,
		"description": in.Description,
		"category":    in.Category,
		"link":        in.Link,
	})
	if !ok {
		utils.RespondWithJSON(w, http.StatusBadRequest, map[string]any{
			"status":  "error",
			"message": "Validation failed",
			"fields":  fieldErrs,
		})
		return
	}

	in.AdID = utils.NewID("ad")
	in.OwnerID = userID
	in.Active = true
	in.CreatedAt = time.Now()

	if _, err := db.AdsCollection.InsertOne(r.Context(), in); err != nil {
		log.Printf("ads: insert: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create ad")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"status": "success", "ad": in})
}

// DeactivateAd switches an ad off without deleting it.
func DeactivateAd(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	adID := ps.ByName("adid")

	res, err := db.AdsCollection.UpdateOne(r.Context(),
		bson.M{"adid": adID, "ownerId": userID},
		bson.M{"$set": bson.M{"active": false}})
	if err != nil {
		log.Printf("ads: deactivate: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Ad not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Ad deactivated"})
}

// DeleteAd removes an ad owned by the caller.
func DeleteAd(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	adID := ps.ByName("adid")

	var ad Ad
	err := db.AdsCollection.FindOne(r.Context(), bson.M{"adid": adID}).Decode(&ad)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusNotFound, "Ad not found")
		return
	}
	if err != nil {
		log.Printf("ads: delete lookup: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if ad.OwnerID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Not the ad owner")
		return
	}

	if _, err := db.AdsCollection.DeleteOne(r.Context(), bson.M{"adid": adID}); err != nil {
		log.Printf("ads: delete: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete ad")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Ad deleted"})
}
