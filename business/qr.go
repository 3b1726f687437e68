package business

import (
	"net/http"
	"os"

	"agora/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// StorefrontQR serves a PNG QR code linking to the business storefront page.
func (h *Handler) StorefrontQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userid")

	exists, err := h.svc.Exists(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	if !exists {
		utils.RespondWithError(w, http.StatusNotFound, "No business account for user")
		return
	}

	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}

	png, err := qrcode.Encode(appURL+"/business/"+userID, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
