package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"store-pos/internal/model"
	"store-pos/pkg/e"
)

// Period bounds a sold_at filter. From is inclusive; To is inclusive only when ToInclusive is set.
// Bounds are bound in UTC, the zone sold_at is stored in.
type Period struct {
	From        time.Time
	To          time.Time
	ToInclusive bool
}

func (p Period) apply(db *gorm.DB, column string) *gorm.DB {
	if p.ToInclusive {
		return db.Where(column+" >= ? AND "+column+" <= ?", p.From.UTC(), p.To.UTC())
	}
	return db.Where(column+" >= ? AND "+column+" < ?", p.From.UTC(), p.To.UTC())
}

// SalesSummary is the aggregate of sales inside a period.
type SalesSummary struct {
	Total     decimal.Decimal `json:"total"`
	SaleCount int64           `json:"sale_count"`
}

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	CreateItem(tx *gorm.DB, item *model.SaleLineItem) error
	UpdateTotal(tx *gorm.DB, saleID uuid.UUID, total decimal.Decimal) error

	Summarize(period Period) (*SalesSummary, error)
	ListItems(period Period) ([]model.SaleLineItem, error)
	ListByClient(clientID uuid.UUID) ([]model.Sale, error)
	FindForClient(id, clientID uuid.UUID) (*model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	if err := tx.Omit("Items", "Client", "SoldBy").Create(sale).Error; err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

func (r *saleRepo) CreateItem(tx *gorm.DB, item *model.SaleLineItem) error {
	if err := tx.Omit("Sale", "Product").Create(item).Error; err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

func (r *saleRepo) UpdateTotal(tx *gorm.DB, saleID uuid.UUID, total decimal.Decimal) error {
	if err := tx.Model(&model.Sale{}).Where("id = ?", saleID).Update("total", total).Error; err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

func (r *saleRepo) Summarize(period Period) (*SalesSummary, error) {
	var summary SalesSummary
	q := period.apply(r.db.Model(&model.Sale{}), "sold_at").
		Select("COALESCE(SUM(total), 0) AS total, COUNT(id) AS sale_count")
	if err := q.Scan(&summary).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return &summary, nil
}

// ListItems returns line items of sales in period with product, sale, seller and client, newest sale first.
func (r *saleRepo) ListItems(period Period) ([]model.SaleLineItem, error) {
	var items []model.SaleLineItem
	q := r.db.Model(&model.SaleLineItem{}).
		Joins("JOIN sales ON sales.id = sale_line_items.sale_id AND sales.deleted_at IS NULL")
	q = period.apply(q, "sales.sold_at").
		Preload("Product", unscoped).
		Preload("Sale").
		Preload("Sale.SoldBy", unscoped).
		Preload("Sale.Client", unscoped).
		Order("sales.sold_at DESC").
		Order("sale_line_items.created_at ASC")
	if err := q.Find(&items).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return items, nil
}

func (r *saleRepo) ListByClient(clientID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Where("client_id = ?", clientID).
		Preload("Items").
		Preload("Items.Product", unscoped).
		Order("sold_at DESC").
		Find(&sales).Error
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return sales, nil
}

// FindForClient matches on both id and owner, so another client's sale is simply not found.
func (r *saleRepo) FindForClient(id, clientID uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Where("id = ? AND client_id = ?", id, clientID).
		Preload("Items").
		Preload("Items.Product", unscoped).
		Preload("SoldBy", unscoped).
		First(&sale).Error
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translate(err))
	}
	return &sale, nil
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Items").
		Preload("Items.Product", unscoped).
		Preload("SoldBy", unscoped).
		Preload("Client", unscoped).
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translate(err))
	}
	return &sale, nil
}
