package models

import "time"

const (
	SellerPersonal = "personal"
	SellerBusiness = "business"
)

type Product struct {
	ProductID        string    `json:"productid" bson:"productid"`
	Title            string    `json:"title" bson:"title"`
	Category         string    `json:"category" bson:"category"`
	ShortDescription string    `json:"short_description,omitempty" bson:"short_description,omitempty"`
	LongDescription  string    `json:"long_description,omitempty" bson:"long_description,omitempty"`
	Thumbnail        string    `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// Color and Size are the shared lookup tables variants point into.
type Color struct {
	ColorID string `json:"colorid" bson:"colorid"`
	Name    string `json:"name" bson:"name"`
	Hex     string `json:"hex,omitempty" bson:"hex,omitempty"`
}

type Size struct {
	SizeID string `json:"sizeid" bson:"sizeid"`
	Label  string `json:"label" bson:"label"`
}

type ColorVariant struct {
	ColorVariantID string `json:"colorvariantid" bson:"colorvariantid"`
	ProductID      string `json:"productid" bson:"productid"`
	ColorID        string `json:"colorid" bson:"colorid"`
	Image          string `json:"image,omitempty" bson:"image,omitempty"`
}

type SizeVariant struct {
	SizeVariantID string `json:"sizevariantid" bson:"sizevariantid"`
	ProductID     string `json:"productid" bson:"productid"`
	SizeID        string `json:"sizeid" bson:"sizeid"`
}

// Variant is the sellable unit: one color variant by one size variant.
type Variant struct {
	VariantID      string  `json:"variantid" bson:"variantid"`
	ProductID      string  `json:"productid" bson:"productid"`
	ColorVariantID string  `json:"colorvariantid" bson:"colorvariantid"`
	SizeVariantID  string  `json:"sizevariantid" bson:"sizevariantid"`
	Price          float64 `json:"price" bson:"price"`
	Quantity       int     `json:"quantity" bson:"quantity"`
	Status         string  `json:"status" bson:"status"`
	Sold           int     `json:"sold,omitempty" bson:"sold,omitempty"`
}

type SubImage struct {
	SubImageID string `json:"subimageid" bson:"subimageid"`
	ProductID  string `json:"productid" bson:"productid"`
	URL        string `json:"url" bson:"url"`
}

// Ownership links a product to its seller. The embedded sub-shape differs by
// seller type: personal carries the poster's contact, business the storefront.
type Ownership struct {
	ProductID  string             `json:"productid" bson:"productid"`
	UserID     string             `json:"userid" bson:"userid"`
	SellerType string             `json:"sellerType" bson:"sellerType"`
	Personal   *PersonalSeller    `json:"personal,omitempty" bson:"personal,omitempty"`
	Business   *BusinessSellerRef `json:"business,omitempty" bson:"business,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

type PersonalSeller struct {
	DisplayName string `json:"display_name" bson:"display_name"`
	Phone       string `json:"phone,omitempty" bson:"phone,omitempty"`
	Location    string `json:"location,omitempty" bson:"location,omitempty"`
}

type BusinessSellerRef struct {
	BusinessID string `json:"businessid" bson:"businessid"`
	Name       string `json:"name" bson:"name"`
	Contact    string `json:"contact,omitempty" bson:"contact,omitempty"`
}
