package cart

import (
	"testing"

	"naira-store/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

func testProduct(moq int) domain.Product {
	return domain.Product{
		ID:               uuid.New(),
		Name:             "Test Product",
		UnitPrice:        decimal.NewFromInt(10000),
		MinOrderQuantity: moq,
		InStock:          true,
	}
}

// cartOp is one random mutation applied during a property run.
type cartOp struct {
	kind     int // 0 add, 1 remove, 2 setQuantity
	product  int // index into the product pool
	quantity int
}

func genCartOps(poolSize int) gopter.Gen {
	opGen := gopter.CombineGens(
		gen.IntRange(0, 2),
		gen.IntRange(0, poolSize-1),
		gen.IntRange(-5, 50),
	).Map(func(vals []interface{}) cartOp {
		return cartOp{
			kind:     vals[0].(int),
			product:  vals[1].(int),
			quantity: vals[2].(int),
		}
	})
	return gen.SliceOf(opGen)
}

func TestProperty_NoDuplicateLinesAndQuantityAboveMinimum(t *testing.T) {
	properties := gopter.NewProperties(nil)

	pool := []domain.Product{
		testProduct(0), testProduct(1), testProduct(3), testProduct(5),
	}

	properties.Property("any op sequence keeps lines unique and quantities >= max(1, MOQ)", prop.ForAll(
		func(ops []cartOp) bool {
			store := NewStore()

			for _, op := range ops {
				p := pool[op.product]
				switch op.kind {
				case 0:
					store.AddItem(p, op.quantity)
				case 1:
					store.RemoveItem(p.ID)
				case 2:
					store.SetQuantity(p.ID, op.quantity)
				}

				seen := make(map[uuid.UUID]bool)
				for _, line := range store.Lines() {
					if seen[line.Product.ID] {
						t.Logf("FAIL: duplicate line for product %s", line.Product.ID)
						return false
					}
					seen[line.Product.ID] = true

					if line.Quantity < line.Product.MinQuantity() {
						t.Logf("FAIL: quantity %d below minimum %d", line.Quantity, line.Product.MinQuantity())
						return false
					}
				}
			}
			return true
		},
		genCartOps(4),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_TotalItemsEqualsSumOfQuantities(t *testing.T) {
	properties := gopter.NewProperties(nil)

	pool := []domain.Product{
		testProduct(0), testProduct(2), testProduct(4),
	}

	properties.Property("totalItems equals the sum of line quantities after every mutation", prop.ForAll(
		func(ops []cartOp) bool {
			store := NewStore()

			for _, op := range ops {
				p := pool[op.product%len(pool)]
				switch op.kind {
				case 0:
					store.AddItem(p, op.quantity)
				case 1:
					store.RemoveItem(p.ID)
				case 2:
					store.SetQuantity(p.ID, op.quantity)
				}

				sum := 0
				for _, line := range store.Lines() {
					sum += line.Quantity
				}
				if store.TotalItems() != sum {
					t.Logf("FAIL: TotalItems=%d, sum of quantities=%d", store.TotalItems(), sum)
					return false
				}
			}
			return true
		},
		genCartOps(3),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestAddItemMergesExistingLine(t *testing.T) {
	store := NewStore()
	product := testProduct(1)

	store.AddItem(product, 1)
	store.AddItem(product, 1)

	if store.Len() != 1 {
		t.Fatalf("expected one line after adding the same product twice, got %d", store.Len())
	}

	line, ok := store.Get(product.ID)
	if !ok {
		t.Fatal("expected line to exist")
	}
	if line.Quantity != 2 {
		t.Errorf("expected merged quantity 2, got %d", line.Quantity)
	}
}

func TestAddItemClampsToMinimumOrderQuantity(t *testing.T) {
	store := NewStore()
	product := testProduct(5)

	store.AddItem(product, 2)

	line, _ := store.Get(product.ID)
	if line.Quantity != 5 {
		t.Errorf("expected quantity clamped to MOQ 5, got %d", line.Quantity)
	}
}

func TestSetQuantityClampsBelowOne(t *testing.T) {
	store := NewStore()
	product := testProduct(0)

	store.AddItem(product, 3)
	store.SetQuantity(product.ID, -2)

	line, _ := store.Get(product.ID)
	if line.Quantity != 1 {
		t.Errorf("expected quantity clamped to 1, got %d", line.Quantity)
	}
}

func TestRemoveItemIsNoOpWhenAbsent(t *testing.T) {
	store := NewStore()
	product := testProduct(0)
	store.AddItem(product, 1)

	store.RemoveItem(uuid.New())

	if store.Len() != 1 {
		t.Errorf("expected removal of unknown product to be a no-op, got %d lines", store.Len())
	}
}

func TestClearEmptiesAllLines(t *testing.T) {
	store := NewStore()
	store.AddItem(testProduct(0), 2)
	store.AddItem(testProduct(1), 4)

	store.Clear()

	if !store.IsEmpty() {
		t.Error("expected store to be empty after Clear")
	}
	if store.TotalItems() != 0 {
		t.Errorf("expected TotalItems 0 after Clear, got %d", store.TotalItems())
	}
}

func TestLinesPreserveInsertionOrder(t *testing.T) {
	store := NewStore()
	first := testProduct(0)
	second := testProduct(0)
	third := testProduct(0)

	store.AddItem(first, 1)
	store.AddItem(second, 1)
	store.AddItem(third, 1)
	store.RemoveItem(second.ID)

	lines := store.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Product.ID != first.ID || lines[1].Product.ID != third.ID {
		t.Error("expected remaining lines in insertion order")
	}
}
