package util

import (
	"regexp"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestComputeSlug(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{"Floral Summer Dress", "floral-summer-dress"},
		{"  Cord Set (2-Piece)!! ", "cord-set-2-piece"},
		{"T-Shirt & Shorts", "t-shirt-shorts"},
		{"---", ""},
		{"", ""},
		{"Baby 0-6 MTH", "baby-0-6-mth"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ComputeSlug(tc.name))
		})
	}
}

func TestComputeDiscount(t *testing.T) {
	assert.Equal(t, 25, ComputeDiscount(75, 100))
	assert.Equal(t, 0, ComputeDiscount(100, 100))
	assert.Equal(t, 0, ComputeDiscount(120, 100))
	assert.Equal(t, 0, ComputeDiscount(10, 0))
	// 33.33 => 33
	assert.Equal(t, 33, ComputeDiscount(200, 300))
	// 66.67 => 67
	assert.Equal(t, 67, ComputeDiscount(100, 300))
}

var slugShape = regexp.MustCompile(`^([a-z0-9]+(-[a-z0-9]+)*)?$`)

func TestComputeSlugProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("slug only contains lowercase alphanumerics joined by single dashes", prop.ForAll(
		func(name string) bool {
			return slugShape.MatchString(ComputeSlug(name))
		},
		gen.AnyString(),
	))

	properties.Property("slug is idempotent", prop.ForAll(
		func(name string) bool {
			s := ComputeSlug(name)
			return ComputeSlug(s) == s
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestComputeDiscountProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("discount stays within 0..100", prop.ForAll(
		func(price, original float64) bool {
			d := ComputeDiscount(price, original)
			return d >= 0 && d <= 100
		},
		gen.Float64Range(0, 10000),
		gen.Float64Range(0, 10000),
	))

	properties.Property("no discount when original does not exceed price", prop.ForAll(
		func(price, delta float64) bool {
			return ComputeDiscount(price, price-delta) == 0
		},
		gen.Float64Range(0, 10000),
		gen.Float64Range(0, 10000),
	))

	properties.TestingRun(t)
}
