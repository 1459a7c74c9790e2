// Package extract turns a category column and a measure column into the
// ordered, partitioned item list consumed by the trunnel layout.
//
// The first len-leafCount items are branches, the rest are leaves. Every
// item records the running sum of all measures before it and, for leaves,
// the running sum of the leaf measures before it:
//
//	items, err := extract.Extract(
//	    extract.CategoriesOf([]any{"A", "B", "C", "D"}),
//	    []float64{10, 20, 30, 40},
//	    2,
//	)
//	// items.BranchCategories == [A B], items.BranchSum == 30
//	// items.Items[3].RunningSum == 60, items.Items[3].LeafRunningSum == 30
package extract

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/trunnel/pkg/errors"
)

// Category is an item label. Numeric labels from the source column are
// stored in their shortest decimal form.
type Category string

// CategoryOf converts a raw column value to a Category.
func CategoryOf(v any) Category {
	switch x := v.(type) {
	case Category:
		return x
	case string:
		return Category(x)
	case float64:
		return Category(formatNumber(x))
	case float32:
		return Category(formatNumber(float64(x)))
	case int:
		return Category(strconv.Itoa(x))
	case int64:
		return Category(strconv.FormatInt(x, 10))
	case uint64:
		return Category(strconv.FormatUint(x, 10))
	case nil:
		return ""
	default:
		return Category(fmt.Sprint(v))
	}
}

// CategoriesOf converts a raw column to categories, preserving order.
func CategoriesOf(values []any) []Category {
	out := make([]Category, len(values))
	for i, v := range values {
		out[i] = CategoryOf(v)
	}
	return out
}

// Item is one row of input after classification.
type Item struct {
	Category       Category `json:"category"`
	Measure        float64  `json:"measure"`
	RunningSum     float64  `json:"running_sum"`
	LeafRunningSum float64  `json:"leaf_running_sum"`
	IsLeaf         bool     `json:"is_leaf"`
}

// Items is the structured dataset for one render pass. A value is never
// modified after Extract returns it; a new pass builds a new one.
type Items struct {
	Items            []Item
	BranchCategories []Category
	LeafCategories   []Category
	ItemCount        int
	BranchCount      int
	LeafCount        int
	BranchSum        float64
	LeafSum          float64
}

// Total returns BranchSum + LeafSum, the extent of the trunk value domain.
func (it Items) Total() float64 { return it.BranchSum + it.LeafSum }

// Extract classifies categories and measures into branches and leaves.
//
// leafCount is clamped to [0, len(categories)]. Extract fails with
// SHAPE_MISMATCH if the columns differ in length and with INVALID_MEASURE
// if a measure is negative, NaN or infinite.
func Extract(categories []Category, measures []float64, leafCount int) (Items, error) {
	if len(categories) != len(measures) {
		return Items{}, errors.New(errors.ErrCodeShapeMismatch,
			"%d categories but %d measures", len(categories), len(measures))
	}
	for i, m := range measures {
		if math.IsNaN(m) || math.IsInf(m, 0) {
			return Items{}, errors.New(errors.ErrCodeInvalidMeasure,
				"measure %d (%q) is not finite", i, categories[i])
		}
		if m < 0 {
			return Items{}, errors.New(errors.ErrCodeInvalidMeasure,
				"measure %d (%q) is negative: %v", i, categories[i], m)
		}
	}

	itemCount := len(categories)
	leafCount = ClampLeafCount(leafCount, itemCount)
	branchCount := itemCount - leafCount

	out := Items{
		Items:            make([]Item, 0, itemCount),
		BranchCategories: make([]Category, 0, branchCount),
		LeafCategories:   make([]Category, 0, leafCount),
		ItemCount:        itemCount,
		BranchCount:      branchCount,
		LeafCount:        leafCount,
	}

	var runSum, leafRunSum float64
	for i, c := range categories {
		m := measures[i]
		isLeaf := i >= branchCount
		if isLeaf {
			out.LeafSum += m
			out.LeafCategories = append(out.LeafCategories, c)
		} else {
			out.BranchSum += m
			out.BranchCategories = append(out.BranchCategories, c)
		}

		out.Items = append(out.Items, Item{
			Category:       c,
			Measure:        m,
			RunningSum:     runSum,
			LeafRunningSum: leafRunSum,
			IsLeaf:         isLeaf,
		})

		runSum += m
		if isLeaf {
			leafRunSum += m
		}
	}
	return out, nil
}

// ClampLeafCount bounds n to [0, itemCount].
func ClampLeafCount(n, itemCount int) int {
	return max(0, min(n, itemCount))
}

// Validate checks the structural invariants of a hand-built Items value.
func (it Items) Validate() error {
	switch {
	case len(it.Items) != it.ItemCount:
		return errors.New(errors.ErrCodeInvalidInput, "item count %d, have %d items", it.ItemCount, len(it.Items))
	case it.BranchCount+it.LeafCount != it.ItemCount:
		return errors.New(errors.ErrCodeInvalidInput, "branches (%d) + leaves (%d) != items (%d)",
			it.BranchCount, it.LeafCount, it.ItemCount)
	case len(it.BranchCategories) != it.BranchCount || len(it.LeafCategories) != it.LeafCount:
		return errors.New(errors.ErrCodeInvalidInput, "category lists do not match partition sizes")
	}
	for i, item := range it.Items {
		if item.IsLeaf != (i >= it.BranchCount) {
			return errors.New(errors.ErrCodeInvalidInput, "item %d (%q) is on the wrong side of the split", i, item.Category)
		}
	}
	return nil
}

func formatNumber(f float64) string {
	if f == 0 {
		f = 0 // normalise -0
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
