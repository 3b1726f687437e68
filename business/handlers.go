package business

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
		log.Printf("business: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
	}
}

// GetAccount always answers 200 with a composite account. A zero-valued body
// means the user has no business profile; the exists flag tells them apart.
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userid")

	account, err := h.svc.GetBusinessAccount(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	exists, err := h.svc.Exists(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"exists":  exists,
		"account": account,
	})
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if in.UserID == "" {
		in.UserID = utils.UserIDFromContext(r.Context())
	}

	p, err := h.svc.CreateBusinessAccount(r.Context(), in)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	mq.Emit(r.Context(), "business-created", models.Event{
		EntityType: "business", Method: "POST", EntityID: p.BusinessID, ActorID: p.UserID,
	})
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"status": "success", "business": p})
}

func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.svc.UpdateBusinessAccount(r.Context(), ps.ByName("userid"), in); err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Business updated"})
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.svc.DeleteBusinessAccount(r.Context(), ps.ByName("userid")); err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Business deleted"})
}
