package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"digital-city/internal/model"
)

// Regenerates data/catalog.json and data/regions.json with a small sample
// storefront. Run from the repository root: go run scripts/generate_sample_catalog.go
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	catalog := sampleCatalog()
	if err := writeJSON(filepath.Join(dataDir, "catalog.json"), catalog); err != nil {
		log.Fatalf("Failed to write catalog: %v", err)
	}
	fmt.Printf("Created %s with %d products, %d categories, %d sliders\n",
		filepath.Join(dataDir, "catalog.json"),
		len(catalog.Products), len(catalog.Categories), len(catalog.Sliders))

	regions := sampleRegions()
	if err := writeJSON(filepath.Join(dataDir, "regions.json"), regions); err != nil {
		log.Fatalf("Failed to write regions: %v", err)
	}
	fmt.Printf("Created %s with %d wilayas\n", filepath.Join(dataDir, "regions.json"), len(regions.Wilayas))
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func price(v float64) *float64 { return &v }

func sampleCatalog() *model.Catalog {
	return &model.Catalog{
		Products: []model.Product{
			{
				ID: 1, Name: "هاتف ذكي سامسونج جالاكسي A54",
				Description: "شاشة سوبر أموليد 6.4 بوصة، كاميرا 50 ميجابكسل، بطارية 5000 مللي أمبير",
				Category:    "phones", Price: 68000, OriginalPrice: price(75000),
				Stock: 15, InStock: true, Rating: 4.6, Reviews: 128, Views: 2150,
				Image: "/images/products/galaxy-a54.jpg",
				Tags:  []string{"جديد", "تخفيض"}, Colors: []string{"أسود", "أبيض", "أخضر"},
			},
			{
				ID: 2, Name: "حاسوب محمول لينوفو ايديا باد 3",
				Description: "معالج Core i5 الجيل الثاني عشر، ذاكرة 8 جيجابايت، قرص SSD سعة 512 جيجابايت",
				Category:    "computers", Price: 135000,
				Stock: 8, InStock: true, Rating: 4.4, Reviews: 64, Views: 1820,
				Image: "/images/products/ideapad-3.jpg", Tags: []string{"الأكثر مبيعا"},
			},
			{
				ID: 3, Name: "سماعات لاسلكية JBL Tune 510BT",
				Description: "بلوتوث 5.0، بطارية تدوم 40 ساعة، صوت JBL Pure Bass",
				Category:    "accessories", Price: 9500, OriginalPrice: price(12000),
				Stock: 30, InStock: true, Rating: 4.7, Reviews: 215, Views: 3400,
				Image: "/images/products/jbl-510bt.jpg",
				Tags:  []string{"تخفيض"}, Colors: []string{"أسود", "أزرق", "وردي"},
			},
			{
				ID: 4, Name: "ساعة ذكية شاومي Smart Band 8",
				Description: "شاشة أموليد 1.62 بوصة، مقاومة للماء، تتبع النبض والنوم",
				Category:    "accessories", Price: 7200,
				Stock: 25, InStock: true, Rating: 4.5, Reviews: 180, Views: 2600,
				Image: "/images/products/mi-band-8.jpg", Colors: []string{"أسود"},
			},
			{
				ID: 5, Name: "شاشة ألعاب MSI مقاس 27 بوصة",
				Description: "دقة QHD، معدل تحديث 165 هرتز، زمن استجابة 1 مللي ثانية",
				Category:    "computers", Price: 58000,
				Stock: 5, InStock: true, Rating: 4.8, Reviews: 42, Views: 980,
				Image: "/images/products/msi-27.jpg", Tags: []string{"جديد"},
			},
			{
				ID: 6, Name: "قميص رجالي قطني كلاسيكي",
				Description: "قطن مصري 100٪، قصة عصرية مريحة، مناسب للعمل والمناسبات",
				Category:    "clothing", Price: 3200,
				Stock: 40, InStock: true, Rating: 4.2, Reviews: 96, Views: 1500,
				Image:  "/images/products/shirt-classic.jpg",
				Colors: []string{"أبيض", "أزرق", "رمادي"}, Sizes: []string{"M", "L", "XL", "XXL"},
			},
			{
				ID: 7, Name: "حذاء رياضي أديداس رنفالكون",
				Description: "خفيف الوزن، نعل مرن مناسب للجري اليومي",
				Category:    "clothing", Price: 11500, OriginalPrice: price(14000),
				Stock: 18, InStock: true, Rating: 4.3, Reviews: 150, Views: 2900,
				Image: "/images/products/runfalcon.jpg",
				Tags:  []string{"تخفيض"}, Colors: []string{"أسود", "أبيض"},
				Sizes: []string{"40", "41", "42", "43", "44"},
			},
			{
				ID: 8, Name: "مكنسة كهربائية لاسلكية",
				Description: "قوة شفط عالية، بطارية تدوم 45 دقيقة، خفيفة وسهلة الاستخدام",
				Category:    "home", Price: 24500,
				Stock: 0, InStock: false, Rating: 4.1, Reviews: 38, Views: 760,
				Image: "/images/products/vacuum.jpg",
			},
			{
				ID: 9, Name: "خلاط مطبخ متعدد السرعات",
				Description: "وعاء زجاجي سعة 1.5 لتر، 5 سرعات مع وظيفة النبض",
				Category:    "home", Price: 8900,
				Stock: 12, InStock: true, Rating: 4.0, Reviews: 54, Views: 620,
				Image: "/images/products/blender.jpg",
			},
			{
				ID: 10, Name: "آيفون 15 برو",
				Description: "شريحة A17 Pro، كاميرا 48 ميجابكسل، هيكل من التيتانيوم",
				Category:    "phones", Price: 245000,
				Stock: 4, InStock: true, Rating: 4.9, Reviews: 87, Views: 5200,
				Image:  "/images/products/iphone-15-pro.jpg",
				Tags:   []string{"جديد", "الأكثر مبيعا"},
				Colors: []string{"تيتانيوم طبيعي", "أسود", "أزرق"},
			},
		},
		Categories: []model.Category{
			{ID: "phones", Name: "هواتف", Icon: "smartphone"},
			{ID: "computers", Name: "حواسيب", Icon: "laptop"},
			{ID: "accessories", Name: "إكسسوارات", Icon: "headphones"},
			{ID: "clothing", Name: "ملابس", Icon: "shirt"},
			{ID: "home", Name: "منزل ومطبخ", Icon: "home"},
		},
		Sliders: []model.SliderData{
			{
				ID: 1, Title: "تخفيضات الدخول المدرسي",
				Subtitle: "خصومات تصل إلى 30٪ على الحواسيب المحمولة",
				Image:    "/images/sliders/back-to-school.jpg", Link: "/products?category=computers",
			},
			{
				ID: 2, Title: "آيفون 15 برو متوفر الآن",
				Subtitle: "احصل عليه مع توصيل مجاني لجميع الولايات",
				Image:    "/images/sliders/iphone-15.jpg", Link: "/products/10",
			},
			{
				ID: 3, Title: "توصيل مجاني",
				Subtitle: "لكل الطلبات التي تفوق 50000 دج",
				Image:    "/images/sliders/free-shipping.jpg", Link: "/products",
			},
		},
	}
}

func sampleRegions() *model.RegionDocument {
	names := []string{
		"أدرار", "الشلف", "الأغواط", "أم البواقي", "باتنة", "بجاية", "بسكرة",
		"بشار", "البليدة", "البويرة", "تمنراست", "تبسة", "تلمسان", "تيارت",
		"تيزي وزو", "الجزائر", "الجلفة", "جيجل", "سطيف", "سعيدة", "سكيكدة",
		"سيدي بلعباس", "عنابة", "قالمة", "قسنطينة", "المدية", "مستغانم",
		"المسيلة", "معسكر", "ورقلة", "وهران", "البيض", "إليزي",
		"برج بوعريريج", "بومرداس", "الطارف", "تندوف", "تيسمسيلت", "الوادي",
		"خنشلة", "سوق أهراس", "تيبازة", "ميلة", "عين الدفلى", "النعامة",
		"عين تموشنت", "غرداية", "غليزان", "تيميمون", "برج باجي مختار",
		"أولاد جلال", "بني عباس", "عين صالح", "عين قزام", "تقرت", "جانت",
		"المغير", "المنيعة",
	}

	doc := &model.RegionDocument{}
	for i, name := range names {
		doc.Wilayas = append(doc.Wilayas, model.Region{
			ID:         i + 1,
			Code:       fmt.Sprintf("%02d", i+1),
			ArabicName: name,
		})
	}
	return doc
}
