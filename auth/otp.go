package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/smtp"
	"os"
	"time"

	"agora/db"
	"agora/rdx"
	"agora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const otpTTL = 10 * time.Minute

func sendEmailOTP(toEmail, otp string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM_EMAIL")
	if from == "" {
		from = user
	}

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Email Verification\r\n\r\nYour verification code is: %s\r\n", from, toEmail, otp))

	a := smtp.PlainAuth("", user, pass, host)
	return smtp.SendMail(host+":"+port, a, from, []string{toEmail}, msg)
}

// RequestOTP mails a short-lived numeric code to the given address.
func RequestOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "email required")
		return
	}

	otp := utils.GenerateRandomDigitString(6)
	if err := rdx.RdxSet("otp:"+input.Email, otp, otpTTL); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store OTP")
		return
	}
	if err := sendEmailOTP(input.Email, otp); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send OTP email")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "OTP sent"})
}

// VerifyOTP checks the stored code and marks the account's email verified.
func VerifyOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	stored, err := rdx.RdxGet("otp:" + input.Email)
	if err != nil || stored != input.OTP {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired OTP")
		return
	}

	_, err = db.UserCollection.UpdateOne(r.Context(),
		bson.M{"email": input.Email},
		bson.M{"$set": bson.M{"email_verified": true}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify user")
		return
	}

	_ = rdx.RdxDel("otp:" + input.Email)
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Email verified"})
}
