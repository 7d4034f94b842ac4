package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nominasuite/payroll_engine/internal/apperrors"
	"github.com/nominasuite/payroll_engine/internal/core/domain"
	"github.com/nominasuite/payroll_engine/internal/core/formula"
	portsrepo "github.com/nominasuite/payroll_engine/internal/core/ports/repositories"
	portssvc "github.com/nominasuite/payroll_engine/internal/core/ports/services"
	"github.com/nominasuite/payroll_engine/internal/dto"
)

// ConceptService manages user-configured payroll concepts. The structural class
// is immutable here, at the write boundary, rather than through runtime flag
// checks scattered across the computation.
type ConceptService struct {
	BaseService
	conceptRepo     portsrepo.ConceptRepositoryFacade
	currencyService *CurrencyService
}

// NewConceptService creates a new ConceptService.
func NewConceptService(conceptRepo portsrepo.ConceptRepositoryFacade, currencyService *CurrencyService) *ConceptService {
	return &ConceptService{conceptRepo: conceptRepo, currencyService: currencyService}
}

var _ portssvc.ConceptSvcFacade = (*ConceptService)(nil)

// ListConcepts retrieves all active concepts in stable receipt order.
func (s *ConceptService) ListConcepts(ctx context.Context) ([]domain.PayrollConcept, error) {
	concepts, err := s.conceptRepo.ListActiveConcepts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list concepts in service: %w", err)
	}
	return concepts, nil
}

// CreateConcept persists a new user concept. Formula concepts must parse against
// the restricted grammar before they are accepted.
func (s *ConceptService) CreateConcept(ctx context.Context, req dto.CreateConceptRequest, creatorUserID string) (*domain.PayrollConcept, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, fmt.Errorf("%w: concept code is required", apperrors.ErrValidation)
	}

	if existing, err := s.conceptRepo.FindConceptByCode(ctx, code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: concept code '%s'", apperrors.ErrDuplicate, code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check concept code '%s': %w", code, err)
	}

	method := domain.ComputationMethod(req.Method)
	switch method {
	case domain.Formula:
		if _, err := formula.Parse(req.FormulaText); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
	case domain.FixedAmount:
		if req.CurrencyCode != "" {
			if _, err := s.currencyService.GetCurrencyByCode(ctx, req.CurrencyCode); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, req.CurrencyCode)
				}
				return nil, fmt.Errorf("failed to validate currency '%s': %w", req.CurrencyCode, err)
			}
		}
	}

	now := time.Now()
	concept := domain.PayrollConcept{
		ConceptID:        uuid.NewString(),
		Code:             code,
		Name:             req.Name,
		Kind:             domain.ConceptKind(req.Kind),
		Method:           method,
		Value:            req.Value,
		CurrencyCode:     strings.ToUpper(req.CurrencyCode),
		FormulaText:      req.FormulaText,
		VisibleOnReceipt: req.VisibleOnReceipt,
		ReceiptOrder:     req.ReceiptOrder,
		Class:            domain.UserConcept,
		Active:           true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.conceptRepo.SaveConcept(ctx, concept); err != nil {
		return nil, fmt.Errorf("failed to create concept in service: %w", err)
	}
	return &concept, nil
}

// UpdateConceptValue changes a user concept's base value. Structural concepts are
// rejected before the repository is touched.
func (s *ConceptService) UpdateConceptValue(ctx context.Context, code string, value decimal.Decimal, updaterUserID string) (*domain.PayrollConcept, error) {
	concept, err := s.conceptRepo.FindConceptByCode(ctx, strings.ToUpper(code))
	if err != nil {
		return nil, fmt.Errorf("failed to find concept '%s': %w", code, err)
	}
	if concept.IsStructural() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrSystemConcept, concept.Code)
	}

	concept.Value = value
	concept.LastUpdatedAt = time.Now()
	concept.LastUpdatedBy = updaterUserID

	if err := s.conceptRepo.UpdateConcept(ctx, *concept); err != nil {
		return nil, fmt.Errorf("failed to update concept '%s': %w", code, err)
	}
	return concept, nil
}
