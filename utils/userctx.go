package utils

import (
	"context"
	"net/http"

	"agora/globals"
)

func GetUserIDFromRequest(r *http.Request) string {
	return UserIDFromContext(r.Context())
}

func UserIDFromContext(ctx context.Context) string {
	userID, ok := ctx.Value(globals.UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

func UsernameFromContext(ctx context.Context) string {
	username, ok := ctx.Value(globals.UsernameKey).(string)
	if !ok {
		return ""
	}
	return username
}
