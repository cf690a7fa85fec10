package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"store-pos/internal/access"
	"store-pos/internal/model"
	"store-pos/internal/repository"
	"store-pos/internal/ws"
	"store-pos/pkg/e"
	"store-pos/pkg/logger"
	"store-pos/pkg/validator"
)

type SaleItemInput struct {
	ProductID string `json:"product_id" form:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" form:"quantity" validate:"gt=0"`
}

// SaleInput is one sale submission. Total is informational; the stored total is summed from the items.
type SaleInput struct {
	ClientID string          `json:"client_id" form:"client_id" validate:"omitempty,uuid"`
	Total    json.Number     `json:"total" form:"total"`
	Items    []SaleItemInput `json:"items" form:"items" validate:"required,min=1,dive"`
}

// SaleForm is what a sale entry screen needs to render.
type SaleForm struct {
	Products []model.Product `json:"products"`
	Clients  []model.Client  `json:"clients"`
}

type SaleService interface {
	Form() (*SaleForm, error)
	Register(actor *access.Principal, in SaleInput) (*model.Sale, error)
}

type saleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	db          *gorm.DB
	events      EventPublisher
	log         logger.Logger
	now         Clock
}

func NewSaleService(
	sRepo repository.SaleRepository,
	pRepo repository.ProductRepository,
	cRepo repository.ClientRepository,
	db *gorm.DB,
	events EventPublisher,
	log logger.Logger,
	now Clock,
) SaleService {
	if events == nil {
		events = NoopPublisher
	}
	if now == nil {
		now = time.Now
	}
	return &saleService{
		saleRepo:    sRepo,
		productRepo: pRepo,
		clientRepo:  cRepo,
		db:          db,
		events:      events,
		log:         log,
		now:         now,
	}
}

func (s *saleService) Form() (*SaleForm, error) {
	products, err := s.productRepo.ListAvailable()
	if err != nil {
		return nil, err
	}
	clients, err := s.clientRepo.List("")
	if err != nil {
		return nil, err
	}
	return &SaleForm{Products: products, Clients: clients}, nil
}

// Register records the sale header and its line items in one transaction.
// Any line item without enough stock rolls back the whole sale. Conflicts are not retried.
func (s *saleService) Register(actor *access.Principal, in SaleInput) (*model.Sale, error) {
	clientID, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	sale := &model.Sale{
		SoldAt:   s.now().UTC(),
		Total:    decimal.Zero,
		ClientID: clientID,
		SoldByID: actor.UserID,
	}
	sale.CreatedBy = actorName(actor)
	sale.UpdatedBy = actorName(actor)

	var stockChanges []map[string]interface{}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.saleRepo.Create(tx, sale); err != nil {
			return err
		}

		total := decimal.Zero
		for _, row := range in.Items {
			productID := uuid.MustParse(row.ProductID)

			product, err := s.productRepo.LockByID(tx, productID)
			if err != nil {
				return err
			}

			item := model.SaleLineItem{
				SaleID:    sale.ID,
				ProductID: product.ID,
				Quantity:  row.Quantity,
				UnitPrice: product.Price,
				Subtotal:  product.Price.Mul(decimal.NewFromInt(int64(row.Quantity))),
			}
			item.CreatedBy = actorName(actor)
			item.UpdatedBy = actorName(actor)
			if err := s.saleRepo.CreateItem(tx, &item); err != nil {
				return err
			}

			if product.Stock < row.Quantity {
				return &StockError{Product: product.Name, Requested: row.Quantity, Available: product.Stock}
			}
			if err := s.productRepo.DecrementStock(tx, product.ID, row.Quantity, actorName(actor)); err != nil {
				// the locked read saw enough stock, so a miss here is a concurrent writer
				if errors.Is(err, e.ErrInsufficientStock) {
					return e.Wrap(product.Name, e.ErrConflict)
				}
				return err
			}

			total = total.Add(item.Subtotal)
			sale.Items = append(sale.Items, item)
			stockChanges = append(stockChanges, map[string]interface{}{
				"id":        product.ID,
				"name":      product.Name,
				"old_stock": product.Stock,
				"new_stock": product.Stock - row.Quantity,
			})
		}

		sale.Total = total
		return s.saleRepo.UpdateTotal(tx, sale.ID, total)
	})
	if err != nil {
		var stockErr *StockError
		if errors.As(err, &stockErr) {
			s.log.Warnf("sale rejected: %s", stockErr.Error())
		}
		return nil, err
	}

	if submitted := strings.TrimSpace(in.Total.String()); submitted != "" {
		if d, perr := decimal.NewFromString(submitted); perr != nil || !d.Equal(sale.Total) {
			s.log.Warnf("sale %s: submitted total %q differs from computed %s", sale.ID, submitted, sale.Total.StringFixed(2))
		}
	}

	s.events.Publish(ws.Event{
		Type:    "stock_update",
		Action:  "sale_registered",
		Data:    map[string]interface{}{"sale_id": sale.ID, "total": sale.Total, "products": stockChanges},
		Actor:   actorName(actor),
		Message: fmt.Sprintf("%s registered sale #%s", actorName(actor), sale.ID),
	})

	return sale, nil
}

// validate checks structure first, then that every referenced product and client exists.
func (s *saleService) validate(in SaleInput) (*uuid.UUID, error) {
	if err := validator.Check(in); err != nil {
		return nil, err
	}

	verr := validator.NewValidationError()

	ids := make([]uuid.UUID, len(in.Items))
	for i, row := range in.Items {
		ids[i] = uuid.MustParse(row.ProductID)
	}
	found, err := s.productRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	for i, id := range ids {
		if _, ok := found[id]; !ok {
			verr.Add(fmt.Sprintf("items[%d].product_id", i), "Select a valid choice.")
		}
	}

	var clientID *uuid.UUID
	if in.ClientID != "" {
		id := uuid.MustParse(in.ClientID)
		if _, err := s.clientRepo.FindByID(id); err != nil {
			if !errors.Is(err, e.ErrNotFound) {
				return nil, err
			}
			verr.Add("client_id", "Select a valid choice.")
		}
		clientID = &id
	}

	if !verr.Empty() {
		return nil, verr
	}
	return clientID, nil
}
