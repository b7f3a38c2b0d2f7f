package model

// CategoryAll is the synthetic category id that matches every product.
// It is prepended by the catalog loader and never appears in source data.
const CategoryAll = "الكل"

// Product represents a single catalogue product. Products are immutable
// once loaded; higher IDs are newer.
type Product struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Stock         int      `json:"stock"`
	InStock       bool     `json:"inStock"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	Views         int      `json:"views"`
	Image         string   `json:"image"`
	Tags          []string `json:"tags,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Sizes         []string `json:"sizes,omitempty"`
}

// Category represents a product category. The id doubles as the filter key.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// CategoryCount pairs a category with the number of products it matches,
// used for the category badge counters.
type CategoryCount struct {
	Category
	Count int `json:"count"`
}

// SliderData represents a promotional slide. Array order is display order.
type SliderData struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Image    string `json:"image"`
	Link     string `json:"link"`
}

// Catalog is the parsed catalogue document: products, categories and
// promotional slides, read-only for the lifetime of the process.
type Catalog struct {
	Products   []Product    `json:"products"`
	Categories []Category   `json:"categories"`
	Sliders    []SliderData `json:"sliders"`
}
