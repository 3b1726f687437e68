package products

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"agora/db"
	"agora/forms"
	"agora/models"
	"agora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetProducts lists products with optional search, newest first.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	filter := bson.M{}
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		filter["$or"] = bson.A{
			utils.RegexFilter("title", search),
			utils.RegexFilter("short_description", search),
		}
	}
	if category := strings.TrimSpace(r.URL.Query().Get("category")); category != "" {
		filter["category"] = category
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.M{"created_at": -1})

	products, err := utils.FindAndDecode[models.Product](ctx, db.ProductsCollection, filter, opts)
	if err != nil {
		log.Printf("products: list: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	total, _ := db.ProductsCollection.CountDocuments(ctx, filter)
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   products,
		"total":  total,
	})
}

// GetProduct returns one product with its variant tree and sub-images.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	productID := ps.ByName("productid")

	var product models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		log.Printf("products: get: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	colorVariants, err := utils.FindAndDecode[models.ColorVariant](ctx, db.ColorVariantsCollection,
		bson.M{"productid": productID})
	if err != nil {
		log.Printf("products: color variants: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	sizeVariants, err := utils.FindAndDecode[models.SizeVariant](ctx, db.SizeVariantsCollection,
		bson.M{"productid": productID})
	if err != nil {
		log.Printf("products: size variants: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	variants, err := utils.FindAndDecode[models.Variant](ctx, db.VariantsCollection,
		bson.M{"productid": productID})
	if err != nil {
		log.Printf("products: variants: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	subImages, err := utils.FindAndDecode[models.SubImage](ctx, db.SubImagesCollection,
		bson.M{"productid": productID})
	if err != nil {
		log.Printf("products: sub-images: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	var ownership models.Ownership
	_ = db.OwnershipCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&ownership)

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"status":        "success",
		"product":       product,
		"colorVariants": orEmpty(colorVariants),
		"sizeVariants":  orEmpty(sizeVariants),
		"variants":      orEmpty(variants),
		"subImages":     orEmpty(subImages),
		"ownership":     ownership,
	})
}

type createProductRequest struct {
	Title            string   `json:"title"`
	Category         string   `json:"category"`
	ShortDescription string   `json:"short_description"`
	LongDescription  string   `json:"long_description"`
	Thumbnail        string   `json:"thumbnail"`
	Price            float64  `json:"price"`
	Quantity         int      `json:"quantity"`
	SellerType       string   `json:"sellerType"`
	SubImages        []string `json:"subImages"`
}

// CreateProduct validates the wizard payload against the product schema and
// writes the product, a default variant, sub-images, and the ownership row.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var in createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	fieldErrs, ok := forms.ValidateAll(forms.ProductSchema(), map[string]string{
		"title":      in.Title,
		"category":   in.Category,
		"price":      fmt.Sprintf("%g", in.Price),
		"quantity":   fmt.Sprintf("%d", in.Quantity),
		"sellerType": in.SellerType,
	})
	if !ok {
		utils.RespondWithJSON(w, http.StatusBadRequest, map[string]any{
			"status":  "error",
			"message": "Validation failed",
			"fields":  fieldErrs,
		})
		return
	}

	now := time.Now()
	product := models.Product{
		ProductID:        utils.NewID("prd"),
		Title:            in.Title,
		Category:         in.Category,
		ShortDescription: in.ShortDescription,
		LongDescription:  in.LongDescription,
		Thumbnail:        in.Thumbnail,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := db.ProductsCollection.InsertOne(ctx, product); err != nil {
		log.Printf("products: insert: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	variant := models.Variant{
		VariantID: utils.NewID("var"),
		ProductID: product.ProductID,
		Price:     in.Price,
		Quantity:  in.Quantity,
		Status:    "active",
	}
	if _, err := db.VariantsCollection.InsertOne(ctx, variant); err != nil {
		log.Printf("products: insert variant: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	for _, url := range in.SubImages {
		sub := models.SubImage{
			SubImageID: utils.NewID("sub"),
			ProductID:  product.ProductID,
			URL:        url,
		}
		if _, err := db.SubImagesCollection.InsertOne(ctx, sub); err != nil {
			log.Printf("products: insert sub-image: %v", err)
		}
	}

	ownership := models.Ownership{
		ProductID:  product.ProductID,
		UserID:     userID,
		SellerType: in.SellerType,
		CreatedAt:  now,
	}
	switch in.SellerType {
	case models.SellerBusiness:
		var biz models.BusinessProfile
		if err := db.BusinessProfilesCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&biz); err == nil {
			ownership.Business = &models.BusinessSellerRef{
				BusinessID: biz.BusinessID,
				Name:       biz.Profile.Name,
				Contact:    biz.Profile.Contact,
			}
		}
	default:
		var user models.User
		if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err == nil {
			ownership.Personal = &models.PersonalSeller{
				DisplayName: user.Name,
				Phone:       "",
				Location:    "",
			}
		}
	}
	if _, err := db.OwnershipCollection.InsertOne(ctx, ownership); err != nil {
		log.Printf("products: insert ownership: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record ownership")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"status": "success", "product": product})
}

// AddVariant attaches another sellable variant, optionally tied to color and
// size variant rows.
func AddVariant(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	productID := ps.ByName("productid")

	var in models.Variant
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	n, err := db.ProductsCollection.CountDocuments(ctx, bson.M{"productid": productID})
	if err != nil {
		log.Printf("products: variant lookup: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	in.VariantID = utils.NewID("var")
	in.ProductID = productID
	if in.Status == "" {
		in.Status = "active"
	}

	if _, err := db.VariantsCollection.InsertOne(ctx, in); err != nil {
		log.Printf("products: insert variant: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add variant")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"status": "success", "variant": in})
}

// DeleteProduct removes the product and its variant tree. The ownership and
// sub-image rows go too; nothing else references the product.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	productID := ps.ByName("productid")
	userID := utils.GetUserIDFromRequest(r)

	var ownership models.Ownership
	err := db.OwnershipCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&ownership)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		log.Printf("products: delete lookup: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if ownership.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Not the product owner")
		return
	}

	if _, err := db.ProductsCollection.DeleteOne(ctx, bson.M{"productid": productID}); err != nil {
		log.Printf("products: delete: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	db.VariantsCollection.DeleteMany(ctx, bson.M{"productid": productID})
	db.ColorVariantsCollection.DeleteMany(ctx, bson.M{"productid": productID})
	db.SizeVariantsCollection.DeleteMany(ctx, bson.M{"productid": productID})
	db.SubImagesCollection.DeleteMany(ctx, bson.M{"productid": productID})
	db.OwnershipCollection.DeleteMany(ctx, bson.M{"productid": productID})

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Product deleted"})
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
