package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nominasuite/payroll_engine/internal/apperrors"
	"github.com/nominasuite/payroll_engine/internal/core/domain"
	"github.com/nominasuite/payroll_engine/internal/core/services"
	"github.com/nominasuite/payroll_engine/internal/dto"
)

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          *services.ExchangeRateService
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	currencyService := services.NewCurrencyService(suite.mockCurrencyRepo)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo, currencyService, "VES")
}

// --- ResolveRate ---

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_LocalCurrencyNoLookup() {
	ctx := context.Background()

	rate, err := suite.service.ResolveRate(ctx, "VES", time.Now(), "")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
	// No repository interaction at all for the local currency.
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindRateAsOf", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_DatedSeriesSelection() {
	ctx := context.Background()
	jan1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	jan10 := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	// Repository returns the row with the greatest valid_from at or before asOf.
	suite.mockRateRepo.On("FindRateAsOf", ctx, "USD", mock.MatchedBy(func(asOf time.Time) bool {
		return asOf.Before(jan10)
	}), "").Return(&domain.ExchangeRate{CurrencyCode: "USD", Rate: decimal.NewFromInt(100), ValidFrom: jan1}, nil)
	suite.mockRateRepo.On("FindRateAsOf", ctx, "USD", mock.MatchedBy(func(asOf time.Time) bool {
		return !asOf.Before(jan10)
	}), "").Return(&domain.ExchangeRate{CurrencyCode: "USD", Rate: decimal.NewFromInt(120), ValidFrom: jan10}, nil)

	early, err := suite.service.ResolveRate(ctx, "USD", time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC), "")
	suite.Require().NoError(err)
	suite.True(early.Equal(decimal.NewFromInt(100)), "expected 100, got %s", early)

	late, err := suite.service.ResolveRate(ctx, "USD", time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC), "")
	suite.Require().NoError(err)
	suite.True(late.Equal(decimal.NewFromInt(120)), "expected 120, got %s", late)
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_EndOfDayApplies() {
	ctx := context.Background()
	asOf := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	// A rate published later the same day still applies to that day.
	suite.mockRateRepo.On("FindRateAsOf", ctx, "USD", mock.MatchedBy(func(t time.Time) bool {
		return t.Hour() == 23 && t.Minute() == 59
	}), "").Return(&domain.ExchangeRate{CurrencyCode: "USD", Rate: decimal.NewFromInt(45)}, nil).Once()

	rate, err := suite.service.ResolveRate(ctx, "USD", asOf, "")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(45)))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_UnknownCurrency() {
	ctx := context.Background()

	suite.mockRateRepo.On("FindRateAsOf", ctx, "XXX", mock.Anything, "").Return(nil, apperrors.ErrExchangeRateNotFound).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ResolveRate(ctx, "XXX", time.Now(), "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCurrencyNotFound)
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_KnownCurrencyWithoutRate() {
	ctx := context.Background()

	suite.mockRateRepo.On("FindRateAsOf", ctx, "EUR", mock.Anything, "").Return(nil, apperrors.ErrExchangeRateNotFound).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(&domain.Currency{CurrencyCode: "EUR"}, nil).Once()

	_, err := suite.service.ResolveRate(ctx, "EUR", time.Now(), "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrExchangeRateNotFound)
}

// --- CreateExchangeRate ---

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Success() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		CurrencyCode: "USD",
		Rate:         decimal.RequireFromString("45.50"),
		ValidFrom:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Source:       "BCV",
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.CurrencyCode == "USD" && r.Rate.Equal(req.Rate) && r.Source == "BCV" && r.ExchangeRateID != ""
	})).Return(nil).Once()

	created, err := suite.service.CreateExchangeRate(ctx, req, "admin")

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("USD", created.CurrencyCode)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_RejectsNonPositive() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		CurrencyCode: "USD",
		Rate:         decimal.Zero,
		ValidFrom:    time.Now(),
	}

	_, err := suite.service.CreateExchangeRate(ctx, req, "admin")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_RejectsLocalCurrency() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		CurrencyCode: "VES",
		Rate:         decimal.NewFromInt(2),
		ValidFrom:    time.Now(),
	}

	_, err := suite.service.CreateExchangeRate(ctx, req, "admin")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- ListRates ---

func (suite *ExchangeRateServiceTestSuite) TestListRates_FullPageYieldsToken() {
	ctx := context.Background()
	rates := []domain.ExchangeRate{
		{CurrencyCode: "USD", Rate: decimal.NewFromInt(120), ValidFrom: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)},
		{CurrencyCode: "USD", Rate: decimal.NewFromInt(100), ValidFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	suite.mockRateRepo.On("ListRates", ctx, "USD", (*time.Time)(nil), 2).Return(rates, nil).Once()

	result, nextToken, err := suite.service.ListRates(ctx, "USD", "", 2)

	suite.Require().NoError(err)
	suite.Len(result, 2)
	suite.NotEmpty(nextToken)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestListRates_PartialPageNoToken() {
	ctx := context.Background()
	rates := []domain.ExchangeRate{
		{CurrencyCode: "USD", Rate: decimal.NewFromInt(100), ValidFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	suite.mockRateRepo.On("ListRates", ctx, "USD", (*time.Time)(nil), 10).Return(rates, nil).Once()

	result, nextToken, err := suite.service.ListRates(ctx, "USD", "", 10)

	suite.Require().NoError(err)
	suite.Len(result, 1)
	suite.Empty(nextToken)
}

func (suite *ExchangeRateServiceTestSuite) TestListRates_RejectsBadCode() {
	_, _, err := suite.service.ListRates(context.Background(), "TOOLONG", "", 10)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
