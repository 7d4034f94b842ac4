package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nominasuite/payroll_engine/internal/apperrors"
	"github.com/nominasuite/payroll_engine/internal/core/domain"
	portsrepo "github.com/nominasuite/payroll_engine/internal/core/ports/repositories"
)

// PgxCompanyRepository reads the single company payroll configuration row.
type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company configuration.
func newPgxCompanyRepository(pool *pgxpool.Pool) *PgxCompanyRepository {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CompanyConfigReader = (*PgxCompanyRepository)(nil)

// GetCompanyConfig retrieves the company payroll parameters.
func (r *PgxCompanyRepository) GetCompanyConfig(ctx context.Context) (*domain.CompanyConfig, error) {
	query := `
		SELECT company_id, local_currency_code, minimum_wage, frequency,
		       meal_benefit_amount, meal_benefit_currency, meal_benefit_mode, meal_benefit_payment_day,
		       show_base_salary, show_meal_benefit, show_complement,
		       social_security_rate, social_security_cap_multiple,
		       unemployment_rate, unemployment_cap_multiple, housing_fund_rate,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM company_config
		LIMIT 1;
	`

	var c domain.CompanyConfig
	err := r.Pool.QueryRow(ctx, query).Scan(
		&c.CompanyID,
		&c.LocalCurrencyCode,
		&c.MinimumWage,
		&c.Frequency,
		&c.MealBenefitAmount,
		&c.MealBenefitCurrency,
		&c.MealBenefitMode,
		&c.MealBenefitPaymentDay,
		&c.ShowBaseSalary,
		&c.ShowMealBenefit,
		&c.ShowComplement,
		&c.SocialSecurityRate,
		&c.SocialSecurityCapMultiple,
		&c.UnemploymentRate,
		&c.UnemploymentCapMultiple,
		&c.HousingFundRate,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: company config", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load company config: %w", err)
	}
	return &c, nil
}
