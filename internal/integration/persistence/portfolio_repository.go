package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/core/internal/application/adapter"
	"github.com/finance-tracker/core/internal/domain/entity"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
	"github.com/finance-tracker/core/internal/integration/persistence/model"
)

// portfolioRepository implements the adapter.PortfolioRepository interface.
type portfolioRepository struct {
	db *gorm.DB
}

// NewPortfolioRepository creates a new portfolio repository instance.
func NewPortfolioRepository(db *gorm.DB) adapter.PortfolioRepository {
	return &portfolioRepository{
		db: db,
	}
}

// Create creates a new portfolio in the database.
func (r *portfolioRepository) Create(ctx context.Context, portfolio *entity.Portfolio) error {
	if portfolio.ID == uuid.Nil {
		portfolio.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(model.PortfolioFromEntity(portfolio)).Error
}

// FindByID retrieves a portfolio by its ID.
func (r *portfolioRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Portfolio, error) {
	var portfolioModel model.PortfolioModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&portfolioModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPortfolioNotFound
		}
		return nil, result.Error
	}
	return portfolioModel.ToEntity(), nil
}

// FindByUser retrieves the portfolios of a user ordered by name.
func (r *portfolioRepository) FindByUser(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]*entity.Portfolio, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var portfolioModels []model.PortfolioModel
	if err := query.Order("name ASC").Find(&portfolioModels).Error; err != nil {
		return nil, err
	}

	portfolios := make([]*entity.Portfolio, len(portfolioModels))
	for i, m := range portfolioModels {
		portfolios[i] = m.ToEntity()
	}
	return portfolios, nil
}

// Update updates an existing portfolio.
func (r *portfolioRepository) Update(ctx context.Context, portfolio *entity.Portfolio) error {
	return updateAll(ctx, r.db, model.PortfolioFromEntity(portfolio), domainerror.ErrPortfolioNotFound)
}

// investmentRepository implements the adapter.InvestmentRepository interface.
type investmentRepository struct {
	db *gorm.DB
}

// NewInvestmentRepository creates a new investment repository instance.
func NewInvestmentRepository(db *gorm.DB) adapter.InvestmentRepository {
	return &investmentRepository{
		db: db,
	}
}

// Create creates a new investment holding.
func (r *investmentRepository) Create(ctx context.Context, investment *entity.Investment) error {
	if investment.ID == uuid.Nil {
		investment.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(model.InvestmentFromEntity(investment)).Error
}

// FindByID retrieves an investment by its ID.
func (r *investmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Investment, error) {
	var investmentModel model.InvestmentModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&investmentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInvestmentNotFound
		}
		return nil, result.Error
	}
	return investmentModel.ToEntity(), nil
}

// FindByPortfolio retrieves the holdings of a portfolio ordered by symbol.
func (r *investmentRepository) FindByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]*entity.Investment, error) {
	var investmentModels []model.InvestmentModel
	result := r.db.WithContext(ctx).
		Where("portfolio_id = ?", portfolioID).
		Order("symbol ASC").
		Find(&investmentModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return investmentsToEntities(investmentModels), nil
}

// FindByUser retrieves the holdings of every active portfolio owned by the user.
func (r *investmentRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Investment, error) {
	portfolios := r.db.Table("portfolios").Select("id").Where("user_id = ? AND is_active = ?", userID, true)

	var investmentModels []model.InvestmentModel
	result := r.db.WithContext(ctx).
		Where("portfolio_id IN (?)", portfolios).
		Order("symbol ASC").
		Find(&investmentModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return investmentsToEntities(investmentModels), nil
}

// Update updates an existing investment.
func (r *investmentRepository) Update(ctx context.Context, investment *entity.Investment) error {
	return updateAll(ctx, r.db, model.InvestmentFromEntity(investment), domainerror.ErrInvestmentNotFound)
}

// Delete removes an investment.
func (r *investmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &model.InvestmentModel{}, id, domainerror.ErrInvestmentNotFound)
}

func investmentsToEntities(models []model.InvestmentModel) []*entity.Investment {
	investments := make([]*entity.Investment, len(models))
	for i, m := range models {
		investments[i] = m.ToEntity()
	}
	return investments
}

// netWorthRepository implements the adapter.NetWorthRepository interface.
type netWorthRepository struct {
	db *gorm.DB
}

// NewNetWorthRepository creates a new net worth snapshot repository instance.
func NewNetWorthRepository(db *gorm.DB) adapter.NetWorthRepository {
	return &netWorthRepository{
		db: db,
	}
}

// Create appends a snapshot.
func (r *netWorthRepository) Create(ctx context.Context, snapshot *entity.NetWorthSnapshot) error {
	if snapshot.ID == uuid.Nil {
		snapshot.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(model.NetWorthSnapshotFromEntity(snapshot)).Error
}

// FindByUser retrieves the snapshots of a user, oldest first.
func (r *netWorthRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.NetWorthSnapshot, error) {
	var snapshotModels []model.NetWorthSnapshotModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC, created_at ASC").
		Find(&snapshotModels)
	if result.Error != nil {
		return nil, result.Error
	}

	snapshots := make([]*entity.NetWorthSnapshot, len(snapshotModels))
	for i, m := range snapshotModels {
		snapshots[i] = m.ToEntity()
	}
	return snapshots, nil
}
