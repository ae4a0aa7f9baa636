package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/okravets/storefront/internal/models"
	"github.com/okravets/storefront/internal/repo"
)

func initTestDB(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.Discount{},
		&models.PromoCode{},
		&models.PromoCodeUsage{},
		&models.Review{},
		&models.SessionEntry{},
	))

	return &repo.GormRepo{DB: db}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedProduct(t *testing.T, r *repo.GormRepo, name, price string) *models.Product {
	t.Helper()

	p := models.Product{
		Name:        name,
		Slug:        name,
		Description: name,
		Price:       dec(price),
		IsAvailable: true,
	}
	require.NoError(t, r.DB.Create(&p).Error)
	return &p
}

func seedPromo(t *testing.T, r *repo.GormRepo, p models.PromoCode) *models.PromoCode {
	t.Helper()

	if p.StartDate.IsZero() {
		p.StartDate = time.Now().Add(-time.Hour)
	}
	if p.EndDate.IsZero() {
		p.EndDate = time.Now().Add(time.Hour)
	}
	// GORM skips zero-valued fields with a column default on insert, so an
	// intended IsActive=false would be stored as true; write it back explicitly.
	active := p.IsActive
	require.NoError(t, r.DB.Create(&p).Error)
	require.NoError(t, r.DB.Model(&models.PromoCode{}).Where("id = ?", p.ID).UpdateColumn("is_active", active).Error)
	p.IsActive = active
	return &p
}

func seedDiscount(t *testing.T, r *repo.GormRepo, d models.Discount) *models.Discount {
	t.Helper()

	if d.StartDate.IsZero() {
		d.StartDate = time.Now().Add(-time.Hour)
	}
	if d.EndDate.IsZero() {
		d.EndDate = time.Now().Add(time.Hour)
	}
	if d.MinQuantity == 0 {
		d.MinQuantity = 1
	}
	active := d.IsActive
	require.NoError(t, r.DB.Create(&d).Error)
	require.NoError(t, r.DB.Model(&models.Discount{}).Where("id = ?", d.ID).UpdateColumn("is_active", active).Error)
	d.IsActive = active
	return &d
}
