package util

import (
	"math"
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// ComputeSlug 商品名稱轉成網址用的 slug
// 非英數字元壓成一個 "-"，移除頭尾的 "-"
func ComputeSlug(name string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// ComputeDiscount 回傳折扣百分比(四捨五入)，原價不高於售價時為 0
func ComputeDiscount(price, originalPrice float64) int {
	if originalPrice <= 0 || originalPrice <= price {
		return 0
	}
	return int(math.Round((originalPrice - price) / originalPrice * 100))
}
