package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/httperr"
	"github.com/codecompiler69/SmartAppointmentBooking/pkg/logging"
	"github.com/codecompiler69/SmartAppointmentBooking/services/catalog/internal/es"
	"github.com/codecompiler69/SmartAppointmentBooking/services/catalog/internal/models"
	"github.com/codecompiler69/SmartAppointmentBooking/services/catalog/internal/repo"
	"github.com/codecompiler69/SmartAppointmentBooking/services/catalog/internal/transport"
)

// CatalogService owns the offering catalog. ES, when configured, is a
// secondary index kept in sync on writes; the database stays the source
// of truth and index failures never fail the write.
type CatalogService struct {
	Repo    repo.GormRepo
	ES      *elasticsearch.Client
	ESIndex string
}

func New(r repo.GormRepo, esClient *elasticsearch.Client, index string) *CatalogService {
	if index == "" {
		index = es.DefaultIndex
	}
	return &CatalogService{Repo: r, ES: esClient, ESIndex: index}
}

func (s *CatalogService) Create(ctx context.Context, req transport.CreateServiceRequest) (*models.ServiceOffering, error) {
	if err := validate(req.Name, req.DurationMinutes, req.BasePrice); err != nil {
		return nil, err
	}

	svc := &models.ServiceOffering{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		DurationMinutes: req.DurationMinutes,
		BasePrice:       req.BasePrice,
		Active:          true,
		IconURL:         req.IconURL,
		Notes:           req.Notes,
	}
	if svc.DurationMinutes == 0 {
		svc.DurationMinutes = 30
	}

	if err := s.Repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	s.index(ctx, svc)
	return svc, nil
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.ServiceOffering, error) {
	return s.Repo.Get(ctx, id)
}

func (s *CatalogService) List(ctx context.Context, page, size int) (int64, []models.ServiceOffering, error) {
	page, size = clampPage(page, size)
	return s.Repo.List(ctx, page*size, size)
}

func (s *CatalogService) ListActive(ctx context.Context) ([]models.ServiceOffering, error) {
	return s.Repo.ListActive(ctx)
}

func (s *CatalogService) Patch(ctx context.Context, id uint, req transport.PatchServiceRequest) (*models.ServiceOffering, error) {
	svc, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.BasePrice != nil {
		svc.BasePrice = *req.BasePrice
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}
	if req.IconURL != nil {
		svc.IconURL = *req.IconURL
	}
	if req.Notes != nil {
		svc.Notes = *req.Notes
	}

	if err := validate(svc.Name, svc.DurationMinutes, svc.BasePrice); err != nil {
		return nil, err
	}
	if err := s.Repo.Save(ctx, svc); err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	s.index(ctx, svc)
	return svc, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.ES != nil {
		if err := es.DeleteService(ctx, s.ES, s.ESIndex, id); err != nil {
			logging.FromContext(ctx).Warn("index cleanup failed", "service_id", id, "error", err)
		}
	}
	return nil
}

// Search uses the ES index when available and falls back to a database
// LIKE scan otherwise.
func (s *CatalogService) Search(ctx context.Context, q string, page, size int) (*transport.SearchResponse[models.ServiceOffering], error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, httperr.Validation(map[string]string{"q": "query is required"})
	}
	page, size = clampPage(page, size)

	var (
		total int64
		items []models.ServiceOffering
		err   error
	)
	if s.ES != nil {
		total, items, err = es.Search(ctx, s.ES, s.ESIndex, q, page*size, size)
	} else {
		total, items, err = s.Repo.SearchLike(ctx, q, page*size, size)
	}
	if err != nil {
		return nil, fmt.Errorf("search services: %w", err)
	}
	if items == nil {
		items = []models.ServiceOffering{}
	}
	return &transport.SearchResponse[models.ServiceOffering]{Total: total, Items: items}, nil
}

func (s *CatalogService) index(ctx context.Context, svc *models.ServiceOffering) {
	if s.ES == nil {
		return
	}
	if err := es.IndexService(ctx, s.ES, s.ESIndex, svc); err != nil {
		logging.FromContext(ctx).Warn("indexing failed", "service_id", svc.ID, "error", err)
	}
}

func validate(name string, duration int, price float64) error {
	fields := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fields["name"] = "name is required"
	}
	if duration < 0 || duration > 8*60 {
		fields["durationMinutes"] = "duration must be between 0 and 480 minutes"
	}
	if price < 0 {
		fields["basePrice"] = "price must not be negative"
	}
	if len(fields) > 0 {
		return &httperr.ValidationError{Fields: fields}
	}
	return nil
}

func clampPage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return page, size
}
