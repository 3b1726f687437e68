package forms

import "regexp"

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

// RegistrationSchema backs the signup wizard.
func RegistrationSchema() Schema {
	return Schema{
		Name: "registration",
		Steps: []Step{
			{
				Name: "account",
				Fields: []Field{
					{Name: "username", Label: "Username", Required: true,
						Validators: []Validator{Matches(usernameRe, "username may only contain letters, digits and underscores")}},
					{Name: "email", Label: "Email", Required: true, Validators: []Validator{Email()}},
					{Name: "password", Label: "Password", Required: true, Validators: []Validator{MinLen(8)}},
				},
			},
			{
				Name: "identity",
				Fields: []Field{
					{Name: "name", Label: "Display name", Required: false, Validators: []Validator{MaxLen(80)}},
				},
			},
		},
	}
}

// AdSchema backs the advertisement creation wizard.
func AdSchema() Schema {
	return Schema{
		Name: "ad",
		Steps: []Step{
			{
				Name: "content",
				Fields: []Field{
					{Name: "title", Label: "Title", Required: true, Validators: []Validator{MinLen(6), MaxLen(120)}},
					{Name: "description", Label: "Description", Required: true, Validators: []Validator{MaxLen(2000)}},
				},
			},
			{
				Name: "targeting",
				Fields: []Field{
					{Name: "category", Label: "Category", Required: true},
					{Name: "link", Label: "Link", Required: false, Validators: []Validator{MaxLen(500)}},
				},
			},
		},
	}
}

// ProductSchema backs the product listing wizard.
func ProductSchema() Schema {
	return Schema{
		Name: "product",
		Steps: []Step{
			{
				Name: "basics",
				Fields: []Field{
					{Name: "title", Label: "Title", Required: true, Validators: []Validator{MinLen(6), MaxLen(140)}},
					{Name: "category", Label: "Category", Required: true},
				},
			},
			{
				Name: "pricing",
				Fields: []Field{
					{Name: "price", Label: "Price", Required: true, Validators: []Validator{NumberBetween(0.01, 1_000_000)}},
					{Name: "quantity", Label: "Quantity", Required: true, Validators: []Validator{NumberBetween(0, 1_000_000)}},
				},
			},
			{
				Name: "seller",
				Fields: []Field{
					{Name: "sellerType", Label: "Seller type", Required: true, Validators: []Validator{OneOf("personal", "business")}},
				},
			},
		},
	}
}
