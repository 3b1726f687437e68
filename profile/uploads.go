package profile

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"agora/db"
	"agora/filemgr"
	"agora/models"
	"agora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var validRoles = map[models.RoleTag]bool{
	models.RoleProfile:         true,
	models.RoleCoverProfile:    true,
	models.RolePostProfile:     true,
	models.RoleJobProfile:      true,
	models.RoleJobApplyProfile: true,
}

// UploadImage stores a new picture in the caller's image pool. Assigning it a
// role is a separate call; a picture with no role is simply unused.
func UploadImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(filemgr.MaxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "image file required")
		return
	}

	path, err := filemgr.SaveImage(files[0], filemgr.DomainUser, userID)
	if errors.Is(err, filemgr.ErrTooLarge) || errors.Is(err, filemgr.ErrBadType) {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("profile: upload: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}

	img := models.ProfileImage{
		ImageID:   utils.NewID("img"),
		UserID:    userID,
		URL:       path,
		CreatedAt: time.Now(),
	}
	if _, err := db.ProfileImagesCollection.InsertOne(r.Context(), img); err != nil {
		log.Printf("profile: insert image: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"status": "success", "image": img})
}

// UploadResume stores a resume document and returns its public URL. Callers
// reference the URL in an application's details.resumeUrl.
func UploadResume(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(filemgr.MaxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["resume"]
	if len(files) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "resume file required")
		return
	}

	path, err := filemgr.SaveDocument(files[0], filemgr.DomainResume, userID)
	if errors.Is(err, filemgr.ErrTooLarge) || errors.Is(err, filemgr.ErrBadType) {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("profile: resume upload: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save resume")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"status": "success", "url": path})
}

// AssignImageRole points a role tag at one of the caller's stored images.
// One assignment per role: re-assigning replaces the previous mapping.
func AssignImageRole(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Role    models.RoleTag `json:"role"`
		ImageID string         `json:"imageId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if !validRoles[body.Role] || body.ImageID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "role and imageId required")
		return
	}

	// image must belong to the caller
	n, err := db.ProfileImagesCollection.CountDocuments(r.Context(),
		bson.M{"imageid": body.ImageID, "userid": userID})
	if err != nil {
		log.Printf("profile: assign lookup: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Image not found")
		return
	}

	assignment := models.ImageAssignment{
		UserID:  userID,
		Role:    body.Role,
		ImageID: body.ImageID,
		SetAt:   time.Now(),
	}
	_, err = db.ProfileImageSetAsCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID, "role": body.Role},
		bson.M{"$set": assignment},
		options.Update().SetUpsert(true))
	if err != nil {
		log.Printf("profile: assign: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to assign image")
		return
	}

	InvalidateCachedProfile(userID)
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "assignment": assignment})
}

// ListImages returns the caller's image pool with current role assignments.
func ListImages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	images, err := utils.FindAndDecode[models.ProfileImage](r.Context(), db.ProfileImagesCollection,
		bson.M{"userid": userID})
	if err != nil {
		log.Printf("profile: list images: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	assignments, err := utils.FindAndDecode[models.ImageAssignment](r.Context(), db.ProfileImageSetAsCollection,
		bson.M{"userid": userID})
	if err != nil {
		log.Printf("profile: list assignments: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if images == nil {
		images = []models.ProfileImage{}
	}
	if assignments == nil {
		assignments = []models.ImageAssignment{}
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"images":      images,
		"assignments": assignments,
	})
}
