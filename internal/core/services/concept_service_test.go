package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nominasuite/payroll_engine/internal/apperrors"
	"github.com/nominasuite/payroll_engine/internal/core/domain"
	"github.com/nominasuite/payroll_engine/internal/core/services"
	"github.com/nominasuite/payroll_engine/internal/dto"
)

type ConceptServiceTestSuite struct {
	suite.Suite
	mockConceptRepo  *MockConceptRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          *services.ConceptService
}

func (suite *ConceptServiceTestSuite) SetupTest() {
	suite.mockConceptRepo = new(MockConceptRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	currencyService := services.NewCurrencyService(suite.mockCurrencyRepo)
	suite.service = services.NewConceptService(suite.mockConceptRepo, currencyService)
}

func (suite *ConceptServiceTestSuite) TestCreateConcept_FormulaValidatedUpFront() {
	ctx := context.Background()
	req := dto.CreateConceptRequest{
		Code:   "he_pay",
		Name:   "Overtime Pay",
		Kind:   "EARNING",
		Method: "FORMULA",
		// Attribute access is outside the grammar: rejected before persisting.
		FormulaText: "employee.salary * 1.5",
	}

	suite.mockConceptRepo.On("FindConceptByCode", ctx, "HE_PAY").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateConcept(ctx, req, "admin")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockConceptRepo.AssertNotCalled(suite.T(), "SaveConcept", mock.Anything, mock.Anything)
}

func (suite *ConceptServiceTestSuite) TestCreateConcept_Success() {
	ctx := context.Background()
	req := dto.CreateConceptRequest{
		Code:             "he_pay",
		Name:             "Overtime Pay",
		Kind:             "EARNING",
		Method:           "FORMULA",
		FormulaText:      "DAILY_SALARY / 8 * OVERTIME_HOURS * 1.5",
		VisibleOnReceipt: true,
		ReceiptOrder:     40,
	}

	suite.mockConceptRepo.On("FindConceptByCode", ctx, "HE_PAY").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockConceptRepo.On("SaveConcept", ctx, mock.MatchedBy(func(c domain.PayrollConcept) bool {
		return c.Code == "HE_PAY" && c.Class == domain.UserConcept && c.Active && c.ConceptID != ""
	})).Return(nil).Once()

	created, err := suite.service.CreateConcept(ctx, req, "admin")

	suite.Require().NoError(err)
	suite.Equal("HE_PAY", created.Code)
	suite.Equal(domain.UserConcept, created.Class)
	suite.mockConceptRepo.AssertExpectations(suite.T())
}

func (suite *ConceptServiceTestSuite) TestCreateConcept_DuplicateCode() {
	ctx := context.Background()
	existing := &domain.PayrollConcept{Code: "BON1"}

	suite.mockConceptRepo.On("FindConceptByCode", ctx, "BON1").Return(existing, nil).Once()

	_, err := suite.service.CreateConcept(ctx, dto.CreateConceptRequest{
		Code: "bon1", Name: "Bonus", Kind: "EARNING", Method: "FIXED_AMOUNT",
	}, "admin")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ConceptServiceTestSuite) TestCreateConcept_FixedAmountUnknownCurrency() {
	ctx := context.Background()

	suite.mockConceptRepo.On("FindConceptByCode", ctx, "BON1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateConcept(ctx, dto.CreateConceptRequest{
		Code: "BON1", Name: "Bonus", Kind: "EARNING", Method: "FIXED_AMOUNT",
		Value: decimal.NewFromInt(100), CurrencyCode: "XXX",
	}, "admin")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ConceptServiceTestSuite) TestUpdateConceptValue_StructuralRejected() {
	ctx := context.Background()
	structural := &domain.PayrollConcept{Code: "1001", Class: domain.StructuralConcept}

	suite.mockConceptRepo.On("FindConceptByCode", ctx, "1001").Return(structural, nil).Once()

	_, err := suite.service.UpdateConceptValue(ctx, "1001", decimal.NewFromInt(999), "admin")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrSystemConcept)
	suite.mockConceptRepo.AssertNotCalled(suite.T(), "UpdateConcept", mock.Anything, mock.Anything)
}

func (suite *ConceptServiceTestSuite) TestUpdateConceptValue_Success() {
	ctx := context.Background()
	user := &domain.PayrollConcept{Code: "BON1", Class: domain.UserConcept, Value: decimal.NewFromInt(100)}

	suite.mockConceptRepo.On("FindConceptByCode", ctx, "BON1").Return(user, nil).Once()
	suite.mockConceptRepo.On("UpdateConcept", ctx, mock.MatchedBy(func(c domain.PayrollConcept) bool {
		return c.Code == "BON1" && c.Value.Equal(decimal.NewFromInt(250)) && c.LastUpdatedBy == "admin"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateConceptValue(ctx, "BON1", decimal.NewFromInt(250), "admin")

	suite.Require().NoError(err)
	suite.True(updated.Value.Equal(decimal.NewFromInt(250)))
	suite.mockConceptRepo.AssertExpectations(suite.T())
}

func TestConceptServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConceptServiceTestSuite))
}
