package model

import "slices"

// 商品固定三層分類 category -> collection -> subcategory
var Categories = []string{"GIRLS", "BOYS", "BABY", "NEW ARRIVALS", "ACCESSORIES", "FOOTWEAR"}

var CollectionsByCategory = map[string][]string{
	"GIRLS":        {"TWO-PIECE SETS", "DRESSES", "TOPS", "BOTTOMS", "FOOTWEAR", "OTHERS"},
	"BOYS":         {"TWO-PIECE SETS", "TOPS", "BOTTOMS", "FOOTWEAR", "OTHERS"},
	"BABY":         {"BABY GIRL", "BABY BOY", "FOOTWEAR"},
	"NEW ARRIVALS": {"LATEST COLLECTION", "BEST SELLERS"},
	"ACCESSORIES":  {"HAIR ACCESSORIES", "FASHION ACCESSORIES"},
	"FOOTWEAR":     {"BABY SHOES", "KIDS SHOES"},
}

var SubcategoriesByCollection = map[string][]string{
	"TWO-PIECE SETS": {"CORD SETS", "MATCHING TOP & BOTTOM"},
	"DRESSES":        {"CASUAL DRESSES", "SPECIAL OCCASION DRESSES"},
	"TOPS":           {"T-SHIRTS", "BLOUSES", "JACKETS", "SHIRTS"},
	"BOTTOMS":        {"SHORTS", "JEANS", "TROUSERS"},
	"BABY GIRL":      {"TWO-PIECE SETS", "DRESSES"},
	"BABY BOY":       {"TWO-PIECE SETS"},
}

var SizeOptions = []string{"0-6 MTH", "6-12 MTH", "1-2 YEARS", "2-4 YEARS", "4-6 YEARS", "6-8 YEARS", "8-10 YEARS", "10-12 YEARS"}

var ColorOptions = []string{"Pink", "Purple", "Blue", "Red", "Yellow", "Green", "White", "Black", "Multi-Color"}

func IsValidCategory(category string) bool {
	return slices.Contains(Categories, category)
}

func IsValidCollection(category, collection string) bool {
	return slices.Contains(CollectionsByCategory[category], collection)
}

// IsValidSubcategory subcategory 非必填，有填時必須屬於該 collection
func IsValidSubcategory(collection, subcategory string) bool {
	if subcategory == "" {
		return true
	}
	return slices.Contains(SubcategoriesByCollection[collection], subcategory)
}
