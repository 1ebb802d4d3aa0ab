package models

// CatalogCurrency is the single currency every product is priced in.
const CatalogCurrency = "INR"

var apparelSizes = []string{"S", "M", "L", "XL"}

// SeedCatalog returns the fixed storefront catalog in declaration order.
// Every call builds fresh values, so callers cannot alias each other.
func SeedCatalog() []Product {
	return []Product{
		{
			ID:          "mug-001",
			Name:        "Stoneware Coffee Mug",
			Description: "Handcrafted stoneware mug, 350ml",
			Price:       800,
			Currency:    CatalogCurrency,
			Category:    CategoryMug,
			Color:       "white",
			Image:       "https://images.unsplash.com/photo-1514228742587-6b1558fcca3d?w=400&h=400&fit=crop",
		},
		{
			ID:          "mug-002",
			Name:        "Blue Travel Mug",
			Description: "Insulated travel mug, 400ml",
			Price:       950,
			Currency:    CatalogCurrency,
			Category:    CategoryMug,
			Color:       "blue",
			Image:       "https://images.unsplash.com/photo-1534889156217-d643df14f14a?w=400&h=400&fit=crop",
		},
		{
			ID:          "mug-003",
			Name:        "Ceramic Espresso Cup",
			Description: "Small ceramic espresso cup, 100ml",
			Price:       650,
			Currency:    CatalogCurrency,
			Category:    CategoryMug,
			Color:       "black",
			Image:       "https://images.unsplash.com/photo-1517256064527-09c73fc73e38?w=400&h=400&fit=crop",
		},
		{
			ID:          "mug-004",
			Name:        "Red Ceramic Mug",
			Description: "Classic ceramic mug, 300ml",
			Price:       750,
			Currency:    CatalogCurrency,
			Category:    CategoryMug,
			Color:       "red",
			Image:       "https://images.unsplash.com/photo-1572490122747-3968b75cc699?w=400&h=400&fit=crop",
		},
		{
			ID:          "mug-005",
			Name:        "Green Tea Cup",
			Description: "Elegant tea cup with saucer, 250ml",
			Price:       900,
			Currency:    CatalogCurrency,
			Category:    CategoryMug,
			Color:       "green",
			Image:       "https://images.unsplash.com/photo-1556679343-c7306c1976bc?w=400&h=400&fit=crop",
		},
		{
			ID:          "hoodie-001",
			Name:        "Black Logo Hoodie",
			Description: "Unisex cotton hoodie with logo",
			Price:       1499,
			Currency:    CatalogCurrency,
			Category:    CategoryHoodie,
			Color:       "black",
			Sizes:       sizes(),
			Image:       "https://images.unsplash.com/photo-1556821840-3a63f95609a7?w=400&h=400&fit=crop",
		},
		{
			ID:          "hoodie-002",
			Name:        "Grey Zip Hoodie",
			Description: "Premium zip-up hoodie",
			Price:       1799,
			Currency:    CatalogCurrency,
			Category:    CategoryHoodie,
			Color:       "grey",
			Sizes:       sizes(),
			Image:       "https://images.unsplash.com/photo-1620799140408-edc6dcb6d633?w=400&h=400&fit=crop",
		},
		{
			ID:          "hoodie-003",
			Name:        "Navy Blue Pullover Hoodie",
			Description: "Warm fleece-lined hoodie",
			Price:       1599,
			Currency:    CatalogCurrency,
			Category:    CategoryHoodie,
			Color:       "blue",
			Sizes:       sizes(),
			Image:       "https://images.unsplash.com/photo-1578587018452-892bacefd3f2?w=400&h=400&fit=crop",
		},
		{
			ID:          "hoodie-004",
			Name:        "White Minimalist Hoodie",
			Description: "Clean design cotton hoodie",
			Price:       1399,
			Currency:    CatalogCurrency,
			Category:    CategoryHoodie,
			Color:       "white",
			Sizes:       sizes(),
			Image:       "https://images.unsplash.com/photo-1620799140188-3b2a02fd9a77?w=400&h=400&fit=crop",
		},
		{
			ID:          "tshirt-001",
			Name:        "White Classic T-Shirt",
			Description: "Soft cotton t-shirt",
			Price:       699,
			Currency:    CatalogCurrency,
			Category:    CategoryTShirt,
			Color:       "white",
			Sizes:       sizes(),
			Image:       "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400&h=400&fit=crop",
		},
		{
			ID:          "tshirt-002",
			Name:        "Navy Blue T-Shirt",
			Description: "Premium cotton t-shirt",
			Price:       749,
			Currency:    CatalogCurrency,
			Category:    CategoryTShirt,
			Color:       "blue",
			Sizes:       sizes(),
			Image:       "https://images.unsplash.com/photo-1583743814966-8936f5b7be1a?w=400&h=400&fit=crop",
		},
		{
			ID:          "tshirt-003",
			Name:        "Black Graphic Tee",
			Description: "Cotton t-shirt with graphic print",
			Price:       799,
			Currency:    CatalogCurrency,
			Category:    CategoryTShirt,
			Color:       "black",
			Sizes:       sizes(),
			Image:       "https://images.unsplash.com/photo-1503341504253-dff4815485f1?w=400&h=400&fit=crop",
		},
		{
			ID:          "tshirt-004",
			Name:        "Grey V-Neck T-Shirt",
			Description: "Stylish v-neck cotton tee",
			Price:       729,
			Currency:    CatalogCurrency,
			Category:    CategoryTShirt,
			Color:       "grey",
			Sizes:       sizes(),
			Image:       "https://images.unsplash.com/photo-1562157873-818bc0726f68?w=400&h=400&fit=crop",
		},
		{
			ID:          "tshirt-005",
			Name:        "Red Polo T-Shirt",
			Description: "Classic polo style t-shirt",
			Price:       899,
			Currency:    CatalogCurrency,
			Category:    CategoryTShirt,
			Color:       "red",
			Sizes:       sizes(),
			Image:       "https://images.unsplash.com/photo-1586790170083-2f9ceadc732d?w=400&h=400&fit=crop",
		},
		{
			ID:          "cap-001",
			Name:        "Black Baseball Cap",
			Description: "Classic baseball cap with adjustable strap",
			Price:       499,
			Currency:    CatalogCurrency,
			Category:    CategoryCap,
			Color:       "black",
			Image:       "https://images.unsplash.com/photo-1588850561407-ed78c282e89b?w=400&h=400&fit=crop",
		},
		{
			ID:          "cap-002",
			Name:        "White Sports Cap",
			Description: "Breathable sports cap",
			Price:       549,
			Currency:    CatalogCurrency,
			Category:    CategoryCap,
			Color:       "white",
			Image:       "https://images.unsplash.com/photo-1575428652377-a2d80e2277fc?w=400&h=400&fit=crop",
		},
		{
			ID:          "cap-003",
			Name:        "Blue Trucker Cap",
			Description: "Mesh back trucker style cap",
			Price:       599,
			Currency:    CatalogCurrency,
			Category:    CategoryCap,
			Color:       "blue",
			Image:       "https://images.unsplash.com/photo-1521369909029-2afed882baee?w=400&h=400&fit=crop",
		},
		{
			ID:          "cap-004",
			Name:        "Grey Snapback Cap",
			Description: "Urban style snapback cap",
			Price:       649,
			Currency:    CatalogCurrency,
			Category:    CategoryCap,
			Color:       "grey",
			Image:       "https://images.unsplash.com/photo-1589487391730-58f20eb2c308?w=400&h=400&fit=crop",
		},
		{
			ID:          "bag-001",
			Name:        "Black Backpack",
			Description: "Spacious laptop backpack, 25L",
			Price:       1999,
			Currency:    CatalogCurrency,
			Category:    CategoryBag,
			Color:       "black",
			Image:       "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400&h=400&fit=crop",
		},
		{
			ID:          "bag-002",
			Name:        "Grey Messenger Bag",
			Description: "Professional messenger bag",
			Price:       1799,
			Currency:    CatalogCurrency,
			Category:    CategoryBag,
			Color:       "grey",
			Image:       "https://images.unsplash.com/photo-1548036328-c9fa89d128fa?w=400&h=400&fit=crop",
		},
		{
			ID:          "bag-003",
			Name:        "Blue Gym Bag",
			Description: "Durable gym duffle bag",
			Price:       1499,
			Currency:    CatalogCurrency,
			Category:    CategoryBag,
			Color:       "blue",
			Image:       "https://images.unsplash.com/photo-1564859228273-274232fdb516?w=400&h=400&fit=crop",
		},
		{
			ID:          "bag-004",
			Name:        "Brown Leather Tote",
			Description: "Premium leather tote bag",
			Price:       2499,
			Currency:    CatalogCurrency,
			Category:    CategoryBag,
			Color:       "brown",
			Image:       "https://images.unsplash.com/photo-1590874103328-eac38a683ce7?w=400&h=400&fit=crop",
		},
		{
			ID:          "bag-005",
			Name:        "White Canvas Tote",
			Description: "Eco-friendly canvas tote",
			Price:       899,
			Currency:    CatalogCurrency,
			Category:    CategoryBag,
			Color:       "white",
			Image:       "https://images.unsplash.com/photo-1591561954557-26941169b49e?w=400&h=400&fit=crop",
		},
	}
}

func sizes() []string {
	return append([]string(nil), apparelSizes...)
}
