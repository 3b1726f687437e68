package forms

import "testing"

func TestNextGatesOnInvalidStep(t *testing.T) {
	e := NewEngine(AdSchema())

	e.SetValue("title", "short")
	e.SetValue("description", "a perfectly fine description")

	if e.Next() {
		t.Fatal("Next must not advance past an invalid step")
	}
	if e.CurrentStep() != 0 {
		t.Fatalf("step advanced to %d despite errors", e.CurrentStep())
	}
	if e.FieldError("title") == "" {
		t.Fatal("expected a title error to be recorded")
	}

	e.SetValue("title", "long enough now")
	if !e.Next() {
		t.Fatalf("Next should advance a clean step, errors: %v", e.Errors())
	}
	if e.CurrentStep() != 1 {
		t.Fatalf("expected step 1, got %d", e.CurrentStep())
	}
}

func TestSetValueClearsFieldError(t *testing.T) {
	e := NewEngine(AdSchema())
	e.SetValue("title", "bad")
	e.ValidateStep(0)
	if e.FieldError("title") == "" {
		t.Fatal("expected title error after validation")
	}

	e.SetValue("title", "a much better title")
	if e.FieldError("title") != "" {
		t.Fatalf("editing a field must clear its error, still have %q", e.FieldError("title"))
	}
}

func TestRequiredFieldSkipsValidatorsWhenEmpty(t *testing.T) {
	e := NewEngine(RegistrationSchema())
	e.ValidateStep(0)
	if e.FieldError("username") != "Username is required" {
		t.Fatalf("expected required message, got %q", e.FieldError("username"))
	}

	// optional empty field passes untouched validators
	if !e.ValidateStep(1) {
		t.Fatalf("optional empty field must validate, errors: %v", e.Errors())
	}
}

func TestValidateAllCollectsEveryStep(t *testing.T) {
	errs, ok := ValidateAll(RegistrationSchema(), map[string]string{
		"username": "a b",
		"email":    "nope",
		"password": "short",
	})
	if ok {
		t.Fatal("invalid payload must not validate")
	}
	for _, field := range []string{"username", "email", "password"} {
		if errs[field] == "" {
			t.Fatalf("expected an error for %s, got %v", field, errs)
		}
	}

	errs, ok = ValidateAll(RegistrationSchema(), map[string]string{
		"username": "alice_01",
		"email":    "alice@example.com",
		"password": "correcthorse",
	})
	if !ok {
		t.Fatalf("valid payload rejected: %v", errs)
	}
}

func TestAdTitleBoundary(t *testing.T) {
	base := map[string]string{
		"description": "desc",
		"category":    "general",
	}

	base["title"] = "12345"
	if _, ok := ValidateAll(AdSchema(), base); ok {
		t.Fatal("five-character title must be rejected")
	}

	base["title"] = "123456"
	if errs, ok := ValidateAll(AdSchema(), base); !ok {
		t.Fatalf("six-character title must pass, errors: %v", errs)
	}
}

func TestProductSellerTypeEnum(t *testing.T) {
	payload := map[string]string{
		"title":      "Hand-thrown mug",
		"category":   "ceramics",
		"price":      "24.50",
		"quantity":   "3",
		"sellerType": "corporate",
	}
	if _, ok := ValidateAll(ProductSchema(), payload); ok {
		t.Fatal("unknown seller type must be rejected")
	}

	payload["sellerType"] = "business"
	if errs, ok := ValidateAll(ProductSchema(), payload); !ok {
		t.Fatalf("business seller must pass, errors: %v", errs)
	}
}

func TestPrevNeverUnderflows(t *testing.T) {
	e := NewEngine(ProductSchema())
	e.Prev()
	if e.CurrentStep() != 0 {
		t.Fatalf("Prev on the first step must stay put, got %d", e.CurrentStep())
	}
}
