package sidestore

import (
	"testing"

	"naira-store/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func product() domain.Product {
	return domain.Product{ID: uuid.New(), Name: "P"}
}

func TestFavoritesSetSemantics(t *testing.T) {
	favs := NewFavorites()
	p := product()

	favs.Add(p)
	favs.Add(p)

	assert.Equal(t, 1, favs.Count())
	assert.True(t, favs.Contains(p.ID))

	favs.Remove(p.ID)
	assert.False(t, favs.Contains(p.ID))
	assert.Equal(t, 0, favs.Count())

	// removing again is a no-op
	favs.Remove(p.ID)
	assert.Equal(t, 0, favs.Count())
}

func TestFavoritesReplaceAndClear(t *testing.T) {
	favs := NewFavorites()
	favs.Add(product())

	hydrated := []domain.Product{product(), product(), product()}
	favs.Replace(hydrated)
	assert.Equal(t, 3, favs.Count())

	favs.Clear()
	assert.Equal(t, 0, favs.Count())
}

func TestCompareRejectsBeyondLimit(t *testing.T) {
	cmp := NewCompare(3)

	for i := 0; i < 3; i++ {
		assert.NoError(t, cmp.Add(product()))
	}

	err := cmp.Add(product())
	assert.ErrorIs(t, err, ErrCompareLimitReached)
	assert.Equal(t, 3, cmp.Count())
}

func TestCompareDuplicateAddIsNoOp(t *testing.T) {
	cmp := NewCompare(3)
	p := product()

	assert.NoError(t, cmp.Add(p))
	assert.NoError(t, cmp.Add(p))
	assert.Equal(t, 1, cmp.Count())
}

func TestCompareRemovePreservesOrder(t *testing.T) {
	cmp := NewCompare(3)
	a, b, c := product(), product(), product()
	cmp.Add(a)
	cmp.Add(b)
	cmp.Add(c)

	cmp.Remove(b.ID)

	got := cmp.Products()
	assert.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, c.ID, got[1].ID)
}

func TestProperty_CompareNeverExceedsLimit(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("adding any number of distinct products never exceeds the limit", prop.ForAll(
		func(n int, limit int) bool {
			cmp := NewCompare(limit)
			rejected := 0
			for i := 0; i < n; i++ {
				if err := cmp.Add(product()); err != nil {
					rejected++
				}
			}
			if cmp.Count() > cmp.Limit() {
				t.Logf("FAIL: count %d exceeds limit %d", cmp.Count(), cmp.Limit())
				return false
			}
			// every add beyond capacity must have been rejected
			expectedRejections := n - cmp.Limit()
			if expectedRejections < 0 {
				expectedRejections = 0
			}
			return rejected == expectedRejections
		},
		gen.IntRange(0, 20),
		gen.IntRange(1, 5),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
