package checkout

import (
	"regexp"
	"strings"

	"digital-city/internal/model"
)

// Validation messages are surfaced to an Arabic-language UI.
const (
	msgFirstNameRequired = "الاسم الأول مطلوب"
	msgLastNameRequired  = "اسم العائلة مطلوب"
	msgEmailRequired     = "البريد الإلكتروني مطلوب"
	msgEmailInvalid      = "البريد الإلكتروني غير صحيح"
	msgPhoneRequired     = "رقم الهاتف مطلوب"
	msgPhoneInvalid      = "رقم الهاتف غير صحيح"
	msgAddressRequired   = "العنوان مطلوب"
	msgCityRequired      = "المدينة مطلوبة"
	msgWilayaRequired    = "الولاية مطلوبة"
	msgWilayaUnknown     = "الولاية غير صحيحة"
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	// Local mobile numbers: leading 0, then 5, 6 or 7, then 8 digits.
	phonePattern = regexp.MustCompile(`^0[567][0-9]{8}$`)
)

// FieldErrors maps field names to validation messages. Validation failures
// are data, never errors: an empty map means the input is valid.
type FieldErrors map[string]string

// ValidateShipping checks every field and reports all violations together;
// nothing short-circuits on the first failure. PostalCode is optional and
// never validated. The wilaya must be one of the supplied regions.
func ValidateShipping(addr model.ShippingAddress, regions []model.Region) FieldErrors {
	errs := make(FieldErrors)

	if strings.TrimSpace(addr.FirstName) == "" {
		errs["firstName"] = msgFirstNameRequired
	}
	if strings.TrimSpace(addr.LastName) == "" {
		errs["lastName"] = msgLastNameRequired
	}

	if strings.TrimSpace(addr.Email) == "" {
		errs["email"] = msgEmailRequired
	} else if !emailPattern.MatchString(addr.Email) {
		errs["email"] = msgEmailInvalid
	}

	if strings.TrimSpace(addr.Phone) == "" {
		errs["phone"] = msgPhoneRequired
	} else if !phonePattern.MatchString(addr.Phone) {
		errs["phone"] = msgPhoneInvalid
	}

	if strings.TrimSpace(addr.Address) == "" {
		errs["address"] = msgAddressRequired
	}
	if strings.TrimSpace(addr.City) == "" {
		errs["city"] = msgCityRequired
	}

	if addr.Wilaya == "" {
		errs["wilaya"] = msgWilayaRequired
	} else if !regionExists(regions, addr.Wilaya) {
		errs["wilaya"] = msgWilayaUnknown
	}

	return errs
}

func regionExists(regions []model.Region, name string) bool {
	for _, r := range regions {
		if r.ArabicName == name {
			return true
		}
	}
	return false
}
