package checkout

import (
	"testing"

	"digital-city/internal/model"

	"github.com/stretchr/testify/assert"
)

var testRegions = []model.Region{
	{ID: 16, Code: "16", ArabicName: "الجزائر"},
	{ID: 31, Code: "31", ArabicName: "وهران"},
}

func validAddress() model.ShippingAddress {
	return model.ShippingAddress{
		FirstName: "أحمد",
		LastName:  "بن علي",
		Email:     "ahmed@example.com",
		Phone:     "0551234567",
		Address:   "حي النصر، شارع 12",
		City:      "الجزائر",
		Wilaya:    "الجزائر",
	}
}

func TestValidateShipping_Valid(t *testing.T) {
	errs := ValidateShipping(validAddress(), testRegions)
	assert.Empty(t, errs)
}

func TestValidateShipping_PostalCodeOptional(t *testing.T) {
	addr := validAddress()
	addr.PostalCode = ""
	assert.Empty(t, ValidateShipping(addr, testRegions))

	addr.PostalCode = "16000"
	assert.Empty(t, ValidateShipping(addr, testRegions))
}

func TestValidateShipping_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.ShippingAddress)
		field  string
	}{
		{
			name:   "empty first name",
			mutate: func(a *model.ShippingAddress) { a.FirstName = "" },
			field:  "firstName",
		},
		{
			name:   "whitespace first name",
			mutate: func(a *model.ShippingAddress) { a.FirstName = "   " },
			field:  "firstName",
		},
		{
			name:   "empty last name",
			mutate: func(a *model.ShippingAddress) { a.LastName = "" },
			field:  "lastName",
		},
		{
			name:   "empty email",
			mutate: func(a *model.ShippingAddress) { a.Email = "" },
			field:  "email",
		},
		{
			name:   "empty phone",
			mutate: func(a *model.ShippingAddress) { a.Phone = "" },
			field:  "phone",
		},
		{
			name:   "whitespace address",
			mutate: func(a *model.ShippingAddress) { a.Address = "  \t " },
			field:  "address",
		},
		{
			name:   "empty city",
			mutate: func(a *model.ShippingAddress) { a.City = "" },
			field:  "city",
		},
		{
			name:   "empty wilaya",
			mutate: func(a *model.ShippingAddress) { a.Wilaya = "" },
			field:  "wilaya",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := validAddress()
			tt.mutate(&addr)

			errs := ValidateShipping(addr, testRegions)
			assert.Contains(t, errs, tt.field)
			assert.Len(t, errs, 1)
		})
	}
}

func TestValidateShipping_EmailShape(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"ahmed@example.com", true},
		{"a@b.co", true},
		{"no-at-sign.com", false},
		{"missing@tld", false},
		{"spaces in@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			addr := validAddress()
			addr.Email = tt.email
			errs := ValidateShipping(addr, testRegions)
			if tt.valid {
				assert.NotContains(t, errs, "email")
			} else {
				assert.Equal(t, msgEmailInvalid, errs["email"])
			}
		})
	}
}

func TestValidateShipping_PhonePattern(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"0551234567", true},   // 10 digits, starts 05
		{"0661234567", true},   // starts 06
		{"0771234567", true},   // starts 07
		{"055512345", false},   // 9 digits
		{"05512345678", false}, // 11 digits
		{"0851234567", false},  // second digit not in {5,6,7}
		{"5551234567", false},  // no leading 0
		{"05512345a7", false},  // non-digit
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			addr := validAddress()
			addr.Phone = tt.phone
			errs := ValidateShipping(addr, testRegions)
			if tt.valid {
				assert.NotContains(t, errs, "phone")
			} else {
				assert.Equal(t, msgPhoneInvalid, errs["phone"])
			}
		})
	}
}

func TestValidateShipping_WilayaMustBeKnown(t *testing.T) {
	addr := validAddress()
	addr.Wilaya = "ولاية وهمية"

	errs := ValidateShipping(addr, testRegions)
	assert.Equal(t, msgWilayaUnknown, errs["wilaya"])
}

func TestValidateShipping_ReportsAllViolationsTogether(t *testing.T) {
	errs := ValidateShipping(model.ShippingAddress{}, testRegions)

	// Every required field is reported in one pass, not just the first
	assert.Len(t, errs, 7)
	for _, field := range []string{"firstName", "lastName", "email", "phone", "address", "city", "wilaya"} {
		assert.Contains(t, errs, field)
	}
}
