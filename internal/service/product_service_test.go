package service

import (
	"testing"

	"github.com/shopadmin-next/internal/models"
	"github.com/shopadmin-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*ProductService, *models.Category, *gorm.DB) {
	t.Helper()
	db := openServiceTestDB(t)
	category := &models.Category{Slug: "electronics", Name: "电子产品"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	svc := NewProductService(
		repository.NewProductRepository(db),
		repository.NewCategoryRepository(db),
	)
	return svc, category, db
}

func TestProductCreateValidation(t *testing.T) {
	svc, category, _ := setupProductServiceTest(t)

	valid := ProductInput{
		CategoryID: category.ID,
		Name:       "Wireless Earphones",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
		Stock:      10,
	}

	cases := []struct {
		name   string
		mutate func(*ProductInput)
		want   error
	}{
		{"空名称", func(in *ProductInput) { in.Name = "  " }, ErrProductInvalid},
		{"负价格", func(in *ProductInput) {
			in.Price = models.NewMoneyFromDecimal(decimal.NewFromInt(-1))
		}, ErrProductInvalid},
		{"负库存", func(in *ProductInput) { in.Stock = -1 }, ErrProductInvalid},
		{"缺少分类", func(in *ProductInput) { in.CategoryID = 0 }, ErrProductInvalid},
		{"分类不存在", func(in *ProductInput) { in.CategoryID = 99999 }, ErrCategoryNotFound},
	}
	for _, tc := range cases {
		input := valid
		tc.mutate(&input)
		if _, err := svc.Create(input); err != tc.want {
			t.Fatalf("%s: want %v got %v", tc.name, tc.want, err)
		}
	}

	product, err := svc.Create(valid)
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if product.Slug != "wireless-earphones" {
		t.Fatalf("slug want wireless-earphones got %s", product.Slug)
	}
	if !product.IsActive {
		t.Fatalf("is_active should default to true")
	}

	if _, err := svc.Create(valid); err != ErrSlugTaken {
		t.Fatalf("duplicate slug want ErrSlugTaken got %v", err)
	}
}

func TestProductCreateInactivePersisted(t *testing.T) {
	svc, category, db := setupProductServiceTest(t)

	inactive := false
	product, err := svc.Create(ProductInput{
		CategoryID: category.ID,
		Name:       "Hidden Product",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		IsActive:   &inactive,
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if product.IsActive {
		t.Fatalf("is_active want false on returned product")
	}

	// 下架标记必须落库，不能被列默认值覆盖
	var stored models.Product
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if stored.IsActive {
		t.Fatalf("is_active want false in database, got true")
	}
}

func TestProductUpdateAndDelete(t *testing.T) {
	svc, category, _ := setupProductServiceTest(t)

	product, err := svc.Create(ProductInput{
		CategoryID: category.ID,
		Name:       "Smart Watch",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(199.99)),
		Stock:      5,
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	inactive := false
	updated, err := svc.Update(product.ID, ProductInput{
		CategoryID: category.ID,
		Name:       "Smart Watch Pro",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(249.99)),
		Stock:      3,
		IsActive:   &inactive,
	})
	if err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	if updated.Slug != "smart-watch-pro" || updated.IsActive {
		t.Fatalf("update not applied: %+v", updated)
	}
	if !updated.Price.Decimal.Equal(decimal.NewFromFloat(249.99)) {
		t.Fatalf("price want 249.99 got %s", updated.Price.String())
	}

	if _, err := svc.Update(99999, ProductInput{
		CategoryID: category.ID,
		Name:       "Missing",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(1)),
	}); err != ErrProductNotFound {
		t.Fatalf("missing product want ErrProductNotFound got %v", err)
	}

	if err := svc.Delete(product.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if _, err := svc.Get(product.ID); err != ErrProductNotFound {
		t.Fatalf("deleted product want ErrProductNotFound got %v", err)
	}
}
