package community

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"agora/models"
	"agora/mq"
	"agora/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("community: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
	}
}

func (h *Handler) CreateCommunity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	c, err := h.svc.CreateCommunity(r.Context(), body.Name, body.Description, utils.UserIDFromContext(r.Context()))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"status": "success", "community": c})
}

func (h *Handler) GetMembers(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	views, err := h.svc.FetchCommunityMembers(r.Context(), ps.ByName("communityid"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "members": views})
}

func (h *Handler) GetPosts(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	views, err := h.svc.FetchCommunityPosts(r.Context(), ps.ByName("communityid"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "posts": views})
}

func (h *Handler) Join(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	communityID := ps.ByName("communityid")
	userID := utils.UserIDFromContext(r.Context())

	if err := h.svc.Join(r.Context(), communityID, userID); err != nil {
		h.respondServiceError(w, err)
		return
	}

	mq.Emit(r.Context(), "community-joined", models.Event{
		EntityType: "community", Method: "POST", EntityID: communityID, ActorID: userID,
	})
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Joined community"})
}

func (h *Handler) Leave(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.svc.Leave(r.Context(), ps.ByName("communityid"), utils.UserIDFromContext(r.Context())); err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Left community"})
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in CreatePostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	post, err := h.svc.CreatePost(r.Context(), ps.ByName("communityid"), utils.UserIDFromContext(r.Context()), in)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"status": "success", "post": post})
}
