package service

import (
	"time"

	"github.com/shopspring/decimal"

	"store-pos/internal/model"
	"store-pos/internal/repository"
)

const recentProductsLimit = 5

type DashboardStats struct {
	TotalProducts   int64           `json:"total_productos"`
	TotalCategories int64           `json:"total_categorias"`
	TotalSuppliers  int64           `json:"total_proveedores"`
	TotalClients    int64           `json:"total_clientes"`
	SalesToday      decimal.Decimal `json:"ventas_hoy"`
	RecentProducts  []model.Product `json:"productos_recientes"`
}

type DashboardService interface {
	GetDashboardStats() (*DashboardStats, error)
}

type dashboardService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	clientRepo   repository.ClientRepository
	saleRepo     repository.SaleRepository
	loc          *time.Location
	now          Clock
}

func NewDashboardService(
	pRepo repository.ProductRepository,
	cRepo repository.CategoryRepository,
	sRepo repository.SupplierRepository,
	clRepo repository.ClientRepository,
	saleRepo repository.SaleRepository,
	loc *time.Location,
	now Clock,
) DashboardService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &dashboardService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		supplierRepo: sRepo,
		clientRepo:   clRepo,
		saleRepo:     saleRepo,
		loc:          loc,
		now:          now,
	}
}

func (s *dashboardService) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.TotalProducts, err = s.productRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalCategories, err = s.categoryRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalSuppliers, err = s.supplierRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalClients, err = s.clientRepo.Count(); err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	today, err := s.saleRepo.Summarize(repository.Period{From: dayStart, To: dayStart.AddDate(0, 0, 1)})
	if err != nil {
		return nil, err
	}
	stats.SalesToday = today.Total

	if stats.RecentProducts, err = s.productRepo.Recent(recentProductsLimit); err != nil {
		return nil, err
	}
	return &stats, nil
}
