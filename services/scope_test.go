package services

import (
	"testing"

	"hotel-booking/models"
)

func TestHotelScopeContains(t *testing.T) {
	all := HotelScope{All: true}
	if !all.Contains(1) || !all.Contains(9999) {
		t.Error("unrestricted scope must contain every hotel")
	}
	if all.Empty() {
		t.Error("unrestricted scope is not empty")
	}

	owned := HotelScope{HotelIDs: []uint{3, 7}}
	if !owned.Contains(3) || !owned.Contains(7) {
		t.Error("scope must contain its own hotel ids")
	}
	if owned.Contains(5) {
		t.Error("scope must not contain foreign hotel ids")
	}

	none := HotelScope{}
	if !none.Empty() {
		t.Error("owner with no hotels must resolve to an empty scope")
	}
	if none.Contains(1) {
		t.Error("empty scope must contain nothing")
	}
}

func TestCallerIsAdmin(t *testing.T) {
	if !(Caller{Role: models.RoleAdmin}).IsAdmin() {
		t.Error("admin role not recognized")
	}
	if (Caller{Role: models.RoleHotelOwner}).IsAdmin() {
		t.Error("hotel owner treated as admin")
	}
	if (Caller{Role: models.RoleCustomer}).IsAdmin() {
		t.Error("customer treated as admin")
	}
}

func TestValidationErrorKind(t *testing.T) {
	err := Invalid("bad input")
	if !IsValidation(err) {
		t.Error("Invalid() must produce a validation error")
	}
	if err.Error() != "bad input" {
		t.Errorf("message = %q", err.Error())
	}
	if IsValidation(ErrNotFound) {
		t.Error("sentinel mistaken for validation error")
	}
}
