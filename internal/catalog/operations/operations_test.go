package operations

import (
	"context"
	"errors"
	"testing"

	"go.velora.shop/internal/catalog"
	"go.velora.shop/internal/common/apperr"
)

// fakeRepo is an in-memory catalog.Repository for tests
type fakeRepo struct {
	products map[string]*catalog.Product
	bySlug   map[string]*catalog.Product
	failWith error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products: make(map[string]*catalog.Product),
		bySlug:   make(map[string]*catalog.Product),
	}
}

func (f *fakeRepo) add(p *catalog.Product) {
	f.products[p.ID] = p
	f.bySlug[p.Slug] = p
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	p, ok := f.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return p, nil
}

func (f *fakeRepo) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	p, ok := f.bySlug[slug]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return p, nil
}

func (f *fakeRepo) FindActive(ctx context.Context, page catalog.Page) ([]*catalog.Product, error) {
	var out []*catalog.Product
	for _, p := range f.products {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindAll(ctx context.Context, page catalog.Page) ([]*catalog.Product, error) {
	var out []*catalog.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepo) Insert(ctx context.Context, p *catalog.Product) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.add(p)
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, p *catalog.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return catalog.ErrNotFound
	}
	f.add(p)
	return nil
}

func (f *fakeRepo) SetStatus(ctx context.Context, id string, status catalog.ProductStatus) error {
	p, ok := f.products[id]
	if !ok {
		return catalog.ErrNotFound
	}
	p.Status = status
	return nil
}

func (f *fakeRepo) AdjustStock(ctx context.Context, id string, delta int) error {
	p, ok := f.products[id]
	if !ok {
		return catalog.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return catalog.ErrInsufficientStock
	}
	p.Stock += delta
	return nil
}

func (f *fakeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.products)), nil
}

func (f *fakeRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	_, ok := f.bySlug[slug]
	return ok, nil
}

func validCreateCommand() CreateProductCommand {
	return CreateProductCommand{
		Slug: "wool-scarf",
		SKU:  "SCARF-001",
		Translations: map[catalog.Locale]catalog.Translation{
			catalog.LocaleEN: {Name: "Wool Scarf"},
			catalog.LocaleDE: {Name: "Wollschal"},
		},
		PriceCents: 4900,
		Currency:   "EUR",
		Stock:      10,
	}
}

// === CreateProduct ===

func TestCreateProduct(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateProductUseCase(repo)

	res := uc.Execute(context.Background(), validCreateCommand())
	if res.IsErr() {
		t.Fatalf("Expected success, got %v", res.Err())
	}

	p := res.Value()
	if p.Status != catalog.ProductStatusDraft {
		t.Errorf("New products must start as DRAFT, got %s", p.Status)
	}
	if p.ID == "" {
		t.Error("Expected generated product id")
	}
	if p.Translate(catalog.LocaleDE).Name != "Wollschal" {
		t.Errorf("Unexpected DE translation: %+v", p.Translate(catalog.LocaleDE))
	}
}

func TestCreateProductRejectsBadSlug(t *testing.T) {
	uc := NewCreateProductUseCase(newFakeRepo())

	cmd := validCreateCommand()
	cmd.Slug = "Wool Scarf!"

	res := uc.Execute(context.Background(), cmd)
	if res.IsOk() {
		t.Fatal("Expected validation failure for bad slug")
	}

	var appErr *apperr.Error
	if !errors.As(res.Err(), &appErr) || appErr.Kind != apperr.KindValidation {
		t.Errorf("Expected validation error, got %v", res.Err())
	}
}

func TestCreateProductRejectsDuplicateSlug(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateProductUseCase(repo)

	if res := uc.Execute(context.Background(), validCreateCommand()); res.IsErr() {
		t.Fatalf("First create failed: %v", res.Err())
	}

	res := uc.Execute(context.Background(), validCreateCommand())
	if res.IsOk() {
		t.Fatal("Expected duplicate slug rejection")
	}

	var appErr *apperr.Error
	if !errors.As(res.Err(), &appErr) || appErr.Code != apperr.CodeDuplicateSlug {
		t.Errorf("Expected DUPLICATE_SLUG, got %v", res.Err())
	}
}

func TestCreateProductRequiresDefaultLocale(t *testing.T) {
	uc := NewCreateProductUseCase(newFakeRepo())

	cmd := validCreateCommand()
	cmd.Translations = map[catalog.Locale]catalog.Translation{
		catalog.LocaleDE: {Name: "Wollschal"},
	}

	res := uc.Execute(context.Background(), cmd)
	if res.IsOk() {
		t.Fatal("Expected rejection without default-locale translation")
	}
}

// === UpdateProduct ===

func TestUpdateProductPartialFields(t *testing.T) {
	repo := newFakeRepo()
	create := NewCreateProductUseCase(repo)
	created := create.Execute(context.Background(), validCreateCommand()).Value()

	price := int64(5900)
	status := catalog.ProductStatusActive
	uc := NewUpdateProductUseCase(repo)

	res := uc.Execute(context.Background(), UpdateProductCommand{
		ID:         created.ID,
		PriceCents: &price,
		Status:     &status,
	})
	if res.IsErr() {
		t.Fatalf("Expected success, got %v", res.Err())
	}

	p := res.Value()
	if p.PriceCents != 5900 {
		t.Errorf("Expected updated price, got %d", p.PriceCents)
	}
	if p.Status != catalog.ProductStatusActive {
		t.Errorf("Expected ACTIVE, got %s", p.Status)
	}
	if p.SKU != "SCARF-001" {
		t.Errorf("Untouched fields must survive, got SKU %q", p.SKU)
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	uc := NewUpdateProductUseCase(newFakeRepo())

	res := uc.Execute(context.Background(), UpdateProductCommand{ID: "missing"})
	if res.IsOk() {
		t.Fatal("Expected not found")
	}

	var appErr *apperr.Error
	if !errors.As(res.Err(), &appErr) || appErr.Kind != apperr.KindNotFound {
		t.Errorf("Expected not-found error, got %v", res.Err())
	}
}

// === GetProduct ===

func TestGetProductHidesInactiveFromStorefront(t *testing.T) {
	repo := newFakeRepo()
	create := NewCreateProductUseCase(repo)
	created := create.Execute(context.Background(), validCreateCommand()).Value()

	uc := NewGetProductUseCase(repo)

	// Draft product invisible on storefront
	res := uc.Execute(context.Background(), GetProductQuery{Slug: created.Slug})
	if res.IsOk() {
		t.Fatal("Draft product must not be visible on the storefront")
	}

	// But visible to admin
	res = uc.Execute(context.Background(), GetProductQuery{Slug: created.Slug, IncludeInactive: true})
	if res.IsErr() {
		t.Fatalf("Admin view should see draft products, got %v", res.Err())
	}
}

// === AdjustStock ===

func TestAdjustStock(t *testing.T) {
	repo := newFakeRepo()
	created := NewCreateProductUseCase(repo).Execute(context.Background(), validCreateCommand()).Value()

	uc := NewAdjustStockUseCase(repo)

	res := uc.Execute(context.Background(), AdjustStockCommand{ProductID: created.ID, Delta: -4})
	if res.IsErr() {
		t.Fatalf("Expected success, got %v", res.Err())
	}
	if res.Value().Stock != 6 {
		t.Errorf("Expected stock 6, got %d", res.Value().Stock)
	}
}

func TestAdjustStockRejectsNegativeResult(t *testing.T) {
	repo := newFakeRepo()
	created := NewCreateProductUseCase(repo).Execute(context.Background(), validCreateCommand()).Value()

	uc := NewAdjustStockUseCase(repo)

	res := uc.Execute(context.Background(), AdjustStockCommand{ProductID: created.ID, Delta: -11})
	if res.IsOk() {
		t.Fatal("Expected out-of-stock rejection")
	}

	var appErr *apperr.Error
	if !errors.As(res.Err(), &appErr) || appErr.Code != apperr.CodeOutOfStock {
		t.Errorf("Expected OUT_OF_STOCK, got %v", res.Err())
	}
}

// === ListProducts ===

func TestListProductsStorefrontOnlyActive(t *testing.T) {
	repo := newFakeRepo()
	create := NewCreateProductUseCase(repo)

	first := create.Execute(context.Background(), validCreateCommand()).Value()
	first.Status = catalog.ProductStatusActive

	second := validCreateCommand()
	second.Slug = "linen-shirt"
	create.Execute(context.Background(), second)

	uc := NewListProductsUseCase(repo)

	res := uc.Execute(context.Background(), ListProductsQuery{})
	if res.IsErr() {
		t.Fatalf("Expected success, got %v", res.Err())
	}
	if len(res.Value().Products) != 1 {
		t.Errorf("Storefront must only list ACTIVE products, got %d", len(res.Value().Products))
	}

	adminRes := uc.Execute(context.Background(), ListProductsQuery{All: true})
	if len(adminRes.Value().Products) != 2 {
		t.Errorf("Admin listing should see all products, got %d", len(adminRes.Value().Products))
	}
}
