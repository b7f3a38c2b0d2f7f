package model

// Region represents a wilaya (administrative region) used as the shipping
// state/province field.
type Region struct {
	ID         int    `json:"id"`
	Code       string `json:"code"`
	ArabicName string `json:"arabic_name"`
}

// RegionDocument is the parsed region data source.
type RegionDocument struct {
	Wilayas []Region `json:"wilayas"`
}
