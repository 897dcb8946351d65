package catalog

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"precojusto-backend/models"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func counterStamp() Stamp {
	n := 0
	return Stamp{
		NewID: func(prefix string) string {
			n++
			return fmt.Sprintf("%s-%d", prefix, n)
		},
		At: testNow,
	}
}

func seeded() State {
	return Seed(testNow)
}

func TestSeedIsConsistent(t *testing.T) {
	s := seeded()
	assert.Len(t, s.Products, 11)
	assert.Len(t, s.Branches, 2)
	assert.Len(t, s.Prices, 14)

	seen := map[string]bool{}
	for _, rec := range s.Prices {
		_, ok := s.Product(rec.ProductID)
		assert.True(t, ok, "record %s points at unknown product", rec.ID)
		_, ok = s.Branch(rec.SupermarketID)
		assert.True(t, ok, "record %s points at unknown branch", rec.ID)

		key := rec.ProductID + "@" + rec.SupermarketID
		assert.False(t, seen[key], "duplicate pair %s", key)
		seen[key] = true
	}
}

func TestAddProductCreatesInitialPrice(t *testing.T) {
	s := seeded()
	next, p, err := s.AddProduct(NewProduct{
		ProductName:  "  Macarrão Espaguete Renata 500g ",
		Barcode:      "7890000000001",
		Brand:        "Renata",
		BranchID:     "s2",
		InitialPrice: 4.29,
	}, counterStamp())
	require.NoError(t, err)

	assert.Equal(t, "p-1", p.ID)
	assert.Equal(t, "Macarrão Espaguete Renata 500g", p.ProductName)
	assert.Equal(t, models.DefaultCategory, p.Category)
	assert.Equal(t, models.DefaultProductImage, p.ImageURL)

	rec, ok := next.PriceFor(p.ID, "s2")
	require.True(t, ok)
	assert.Equal(t, 4.29, rec.Price)
	assert.Equal(t, 0, rec.Stock)
	assert.Equal(t, testNow.UnixMilli(), rec.LastUpdated)

	// the receiver is untouched
	assert.Len(t, s.Products, 11)
	assert.Len(t, s.Prices, 14)
}

func TestAddProductValidation(t *testing.T) {
	s := seeded()
	cases := []struct {
		name  string
		in    NewProduct
		field string
	}{
		{"blank name", NewProduct{ProductName: "   ", Barcode: "1", BranchID: "s1"}, "productName"},
		{"blank barcode", NewProduct{ProductName: "Sal", Barcode: " ", BranchID: "s1"}, "barcode"},
		{"unknown category", NewProduct{ProductName: "Sal", Barcode: "1", Category: "Eletrônicos", BranchID: "s1"}, "category"},
		{"negative price", NewProduct{ProductName: "Sal", Barcode: "1", BranchID: "s1", InitialPrice: -1}, "price"},
		{"NaN price", NewProduct{ProductName: "Sal", Barcode: "1", BranchID: "s1", InitialPrice: math.NaN()}, "price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, _, err := s.AddProduct(tc.in, counterStamp())
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
			assert.Len(t, next.Products, len(s.Products))
		})
	}

	_, _, err := s.AddProduct(NewProduct{ProductName: "Sal", Barcode: "1", BranchID: "s9"}, counterStamp())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProduct(t *testing.T) {
	s := seeded()
	p, _ := s.Product("p4")
	p.ProductName = "Detergente Ypê Limão 500ml"
	p.ImageURL = ""

	next, updated, err := s.UpdateProduct(p)
	require.NoError(t, err)
	assert.Equal(t, "Detergente Ypê Limão 500ml", updated.ProductName)
	assert.NotEmpty(t, updated.ImageURL, "blank image keeps the stored one")

	got, _ := next.Product("p4")
	assert.Equal(t, updated, got)
	old, _ := s.Product("p4")
	assert.Equal(t, "Detergente Líquido Ypê Neutro 500ml", old.ProductName)

	_, _, err = s.UpdateProduct(models.Product{ID: "nope", ProductName: "x", Barcode: "1"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProductCascadesPrices(t *testing.T) {
	s := seeded()
	next, err := s.DeleteProduct("p1")
	require.NoError(t, err)

	_, ok := next.Product("p1")
	assert.False(t, ok)
	for _, rec := range next.Prices {
		assert.NotEqual(t, "p1", rec.ProductID)
	}
	assert.Len(t, next.Prices, 12)
	assert.Len(t, s.Prices, 14)

	_, err = s.DeleteProduct("p404")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "product", nf.Kind)
}

func TestSetProductImage(t *testing.T) {
	s := seeded()
	next, p, err := s.SetProductImage("p2", "data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", p.ImageURL)
	got, _ := next.Product("p2")
	assert.Equal(t, p.ImageURL, got.ImageURL)

	_, _, err = s.SetProductImage("p2", " ")
	assert.True(t, IsValidation(err))
}

func TestAddBranchHierarchy(t *testing.T) {
	s := seeded()

	next, child, err := s.AddBranch(models.Branch{Name: "Econômico Centro", City: "Campinas", ParentID: "s1"}, counterStamp())
	require.NoError(t, err)
	assert.Equal(t, "s-1", child.ID)
	assert.Equal(t, "https://picsum.photos/seed/market1/100/100", child.LogoURL)

	family, err := next.BranchFamily("s1")
	require.NoError(t, err)
	require.Len(t, family, 2)
	assert.Equal(t, "s1", family[0].ID)
	assert.Equal(t, child.ID, family[1].ID)

	_, _, err = next.AddBranch(models.Branch{Name: "Neto", City: "Campinas", ParentID: child.ID}, counterStamp())
	assert.True(t, IsValidation(err), "a branch cannot hang under another branch")

	_, _, err = next.AddBranch(models.Branch{Name: "Órfã", City: "Campinas", ParentID: "s9"}, counterStamp())
	assert.True(t, IsValidation(err))

	_, _, err = next.AddBranch(models.Branch{Name: "Sem cidade"}, counterStamp())
	assert.True(t, IsValidation(err))

	unchanged, _, err := next.AddBranch(models.Branch{Name: "  ", City: "SP"}, counterStamp())
	assert.True(t, IsValidation(err), "blank name is rejected")
	assert.Len(t, unchanged.Branches, len(next.Branches))

	_, err = next.BranchFamily("s9")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateBranchKeepsSingleLevel(t *testing.T) {
	s := seeded()
	s, _, err := s.AddBranch(models.Branch{Name: "Filial", City: "Santos", ParentID: "s1"}, counterStamp())
	require.NoError(t, err)

	root, _ := s.Branch("s1")
	root.City = "São Paulo"
	root.ParentID = "s2"
	_, _, err = s.UpdateBranch(root)
	assert.True(t, IsValidation(err), "a root with children cannot be nested")

	root.ParentID = "s1"
	_, _, err = s.UpdateBranch(root)
	assert.True(t, IsValidation(err), "self parent")

	other, _ := s.Branch("s2")
	other.City = "Rio de Janeiro"
	other.ParentID = "s1"
	other.LogoURL = ""
	next, updated, err := s.UpdateBranch(other)
	require.NoError(t, err)
	assert.Equal(t, "https://picsum.photos/seed/market2/100/100", updated.LogoURL)
	family, _ := next.BranchFamily("s1")
	assert.Len(t, family, 3)

	_, _, err = s.UpdateBranch(models.Branch{ID: "s9", Name: "x", City: "y"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetPriceUpsert(t *testing.T) {
	s := seeded()

	// existing record, original price untouched when omitted
	next, rec, err := s.SetPrice(PriceUpdate{ProductID: "p1", BranchID: "s1", Price: 22.00}, counterStamp())
	require.NoError(t, err)
	assert.Equal(t, "pr1", rec.ID)
	assert.Equal(t, 22.00, rec.Price)
	require.NotNil(t, rec.OriginalPrice)
	assert.Equal(t, 29.90, *rec.OriginalPrice)
	assert.Equal(t, 50, rec.Stock)
	assert.Len(t, next.Prices, 14)

	// zero clears the original price
	zero := 0.0
	_, rec, err = next.SetPrice(PriceUpdate{ProductID: "p1", BranchID: "s1", Price: 22.00, OriginalPrice: &zero}, counterStamp())
	require.NoError(t, err)
	assert.Nil(t, rec.OriginalPrice)

	// new pair
	next, rec, err = s.SetPrice(PriceUpdate{ProductID: "p4", BranchID: "s2", Price: 2.49}, counterStamp())
	require.NoError(t, err)
	assert.Equal(t, "pr-1", rec.ID)
	assert.Equal(t, 0, rec.Stock)
	assert.Len(t, next.Prices, 15)

	_, _, err = s.SetPrice(PriceUpdate{ProductID: "p404", BranchID: "s1", Price: 1}, counterStamp())
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = s.SetPrice(PriceUpdate{ProductID: "p1", BranchID: "s1", Price: math.Inf(1)}, counterStamp())
	assert.True(t, IsValidation(err))
}

func TestAdjustStock(t *testing.T) {
	s := seeded()

	next, rec, err := s.AdjustStock("p1", "s1", -10, counterStamp())
	require.NoError(t, err)
	assert.Equal(t, 40, rec.Stock)

	_, rec, err = next.AdjustStock("p1", "s1", -1000, counterStamp())
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Stock, "stock never goes negative")

	_, rec, err = s.AdjustStock("p1", "s1", math.MaxInt, counterStamp())
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, rec.Stock, "large deltas saturate instead of wrapping")

	_, rec, err = s.AdjustStock("p1", "s1", math.MinInt, counterStamp())
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Stock)

	_, _, err = s.AdjustStock("p4", "s1", 5, counterStamp())
	assert.ErrorIs(t, err, ErrNotFound, "no record for the pair")
}

func TestStoreNotifiesPriceObserver(t *testing.T) {
	st := NewStore(seeded())
	st.now = func() time.Time { return testNow }

	var events []PriceEvent
	st.OnPriceChange(func(ev PriceEvent) { events = append(events, ev) })

	_, err := st.SetPrice(PriceUpdate{ProductID: "p1", BranchID: "s2", Price: 25.00})
	require.NoError(t, err)
	_, err = st.AdjustStock("p1", "s2", 5)
	require.NoError(t, err)
	require.NoError(t, st.DeleteProduct("p1"))

	require.Len(t, events, 4)
	assert.Equal(t, models.PriceChangePrice, events[0].Reason)
	assert.Equal(t, 26.50, events[0].Before.Price)
	assert.Equal(t, 25.00, events[0].After.Price)
	assert.Equal(t, models.PriceChangeStock, events[1].Reason)
	assert.Equal(t, 25, events[1].After.Stock)
	assert.Equal(t, models.PriceChangeRemoved, events[2].Reason)
	assert.Equal(t, models.PriceChangeRemoved, events[3].Reason)
	assert.Nil(t, events[3].After)
}

func TestStoreFailedUpdateLeavesStateAlone(t *testing.T) {
	st := NewStore(seeded())
	before := st.Snapshot()

	_, err := st.AdjustStock("p4", "s1", 1)
	require.Error(t, err)
	assert.Equal(t, before, st.Snapshot())
}

func TestStoreConcurrentStockAdjustments(t *testing.T) {
	st := NewStore(seeded())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = st.AdjustStock("p10", "s1", 1)
			_ = st.Snapshot()
		}()
	}
	wg.Wait()

	rec, ok := st.Snapshot().PriceFor("p10", "s1")
	require.True(t, ok)
	assert.Equal(t, 250, rec.Stock)
}

func TestNotFoundErrorMatching(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", notFound("product", "p1"))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, IsValidation(err))
	assert.Contains(t, err.Error(), `product "p1" not found`)
}
