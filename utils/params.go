package utils

import (
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParsePagination reads page/limit query params and returns mongo skip/limit
// values, clamping limit to max.
func ParsePagination(r *http.Request, def, max int64) (skip, limit int64) {
	q := r.URL.Query()

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 {
		limit = def
	}
	if limit > max {
		limit = max
	}

	return (page - 1) * limit, limit
}

// RegexFilter builds a case-insensitive substring match on field.
func RegexFilter(field, value string) bson.M {
	return bson.M{field: bson.M{"$regex": primitive.Regex{Pattern: value, Options: "i"}}}
}
