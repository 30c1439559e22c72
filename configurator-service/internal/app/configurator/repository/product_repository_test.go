package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"bikeshop/configurator-service/internal/app/configurator/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GormRepositoryTestSuite общий suite для репозиториев на gorm поверх sqlmock
type GormRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	sqlDB *sql.DB
	ctx   context.Context
}

func (s *GormRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.ctx = context.Background()
}

func (s *GormRepositoryTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.sqlDB.Close()
}

type ProductRepositoryTestSuite struct {
	GormRepositoryTestSuite
	repo ProductRepository
}

func TestProductRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProductRepositoryTestSuite))
}

func (s *ProductRepositoryTestSuite) SetupTest() {
	s.GormRepositoryTestSuite.SetupTest()
	s.repo = NewProductRepository(s.db)
}

var productColumns = []string{"id", "name", "description", "base_price", "is_active", "type", "category_id", "created_at", "updated_at"}

func (s *ProductRepositoryTestSuite) TestGetByID_Success() {
	productID := uuid.New()
	categoryID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows(productColumns).
		AddRow(productID.String(), "Trail bike", "", "1000.00", true, "bicycle", categoryID.String(), now, now)
	s.mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).WillReturnRows(rows)

	product, err := s.repo.GetByID(s.ctx, productID)

	s.Require().NoError(err)
	s.Equal(productID, product.ID)
	s.Equal(categoryID, product.CategoryID)
	s.True(decimal.RequireFromString("1000").Equal(product.BasePrice))
}

func (s *ProductRepositoryTestSuite) TestGetByID_NotFound() {
	s.mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(productColumns))

	product, err := s.repo.GetByID(s.ctx, uuid.New())

	s.Nil(product)
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *ProductRepositoryTestSuite) TestGetWithOptions_LoadsGraph() {
	s.mock.MatchExpectationsInOrder(false)

	productID := uuid.New()
	categoryID := uuid.New()
	groupID := uuid.New()
	stocked := uuid.New()
	missingStock := uuid.New()
	now := time.Now()

	s.mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(productID.String(), "Trail bike", "", "1000.00", true, "bicycle", categoryID.String(), now, now))
	s.mock.ExpectQuery(`SELECT \* FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "is_active", "created_at", "updated_at"}).
			AddRow(categoryID.String(), "Mountain", "", true, now, now))
	s.mock.ExpectQuery(`SELECT \* FROM "product_option_groups" WHERE "product_option_groups"."product_id" = \$1 ORDER BY position ASC, created_at ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "display_name", "product_id", "position", "created_at", "updated_at"}).
			AddRow(groupID.String(), "wheels", "Wheels", productID.String(), 0, now, now))
	s.mock.ExpectQuery(`SELECT \* FROM "product_options" WHERE "product_options"."option_group_id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "display_name", "base_price", "is_active", "option_group_id", "created_at", "updated_at"}).
			AddRow(stocked.String(), "road", "Road wheels", "80.00", true, groupID.String(), now, now).
			AddRow(missingStock.String(), "fat", "Fat wheels", "170.00", true, groupID.String(), now, now))
	s.mock.ExpectQuery(`SELECT \* FROM "inventory_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "quantity", "out_of_stock", "product_option_id", "created_at", "updated_at"}).
			AddRow(uuid.New().String(), 3, false, stocked.String(), now, now))

	product, err := s.repo.GetWithOptions(s.ctx, productID)

	s.Require().NoError(err)
	s.Require().NotNil(product.Category)
	s.Require().Len(product.OptionGroups, 1)
	options := product.OptionGroups[0].Options
	s.Require().Len(options, 2)
	s.True(options[0].InStock)
	s.False(options[1].InStock)
}

func (s *ProductRepositoryTestSuite) TestUpdate_UnknownCategory() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`UPDATE "products" SET`).
		WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})
	s.mock.ExpectRollback()

	err := s.repo.Update(s.ctx, &entity.Product{ID: uuid.New(), Name: "Bike", CategoryID: uuid.New()})

	s.ErrorIs(err, ErrForeignKey)
}

func (s *ProductRepositoryTestSuite) TestDelete_NotFound() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := s.repo.Delete(s.ctx, uuid.New())

	s.ErrorIs(err, ErrProductNotFound)
}

type OptionRepositoryTestSuite struct {
	GormRepositoryTestSuite
	repo OptionRepository
}

func TestOptionRepositorySuite(t *testing.T) {
	suite.Run(t, new(OptionRepositoryTestSuite))
}

func (s *OptionRepositoryTestSuite) SetupTest() {
	s.GormRepositoryTestSuite.SetupTest()
	s.repo = NewOptionRepository(s.db)
}

func (s *OptionRepositoryTestSuite) TestSetInventory_OptionNotFound() {
	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "product_options" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	item, err := s.repo.SetInventory(s.ctx, uuid.New(), 5, false)

	s.Nil(item)
	s.ErrorIs(err, ErrOptionNotFound)
}

func (s *OptionRepositoryTestSuite) TestSetInventory_Upserts() {
	optionID := uuid.New()
	s.mock.ExpectQuery(`SELECT count\(\*\) FROM "product_options" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`INSERT INTO "inventory_items" .* ON CONFLICT \("product_option_id"\) DO UPDATE SET .* RETURNING \*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "quantity", "out_of_stock", "product_option_id"}).
			AddRow(uuid.New().String(), 7, false, optionID.String()))
	s.mock.ExpectCommit()

	item, err := s.repo.SetInventory(s.ctx, optionID, 7, false)

	s.Require().NoError(err)
	s.Equal(optionID, item.ProductOptionID)
	s.Equal(7, item.Quantity)
	s.True(item.IsAvailable())
}

func (s *OptionRepositoryTestSuite) TestCreate_WithInventory() {
	option := &entity.Option{
		ID:            uuid.New(),
		Name:          "road",
		DisplayName:   "Road wheels",
		BasePrice:     decimal.RequireFromString("80"),
		IsActive:      true,
		OptionGroupID: uuid.New(),
		InventoryItem: &entity.InventoryItem{ID: uuid.New(), Quantity: 2},
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(`INSERT INTO "product_options"`).WillReturnResult(sqlmock.NewResult(1, 1))
	s.mock.ExpectExec(`INSERT INTO "inventory_items"`).WillReturnResult(sqlmock.NewResult(1, 1))
	s.mock.ExpectCommit()

	err := s.repo.Create(s.ctx, option)

	s.Require().NoError(err)
	s.Equal(option.ID, option.InventoryItem.ProductOptionID)
	s.True(option.InStock)
}

type OptionRuleRepositoryTestSuite struct {
	GormRepositoryTestSuite
	repo OptionRuleRepository
}

func TestOptionRuleRepositorySuite(t *testing.T) {
	suite.Run(t, new(OptionRuleRepositoryTestSuite))
}

func (s *OptionRuleRepositoryTestSuite) SetupTest() {
	s.GormRepositoryTestSuite.SetupTest()
	s.repo = NewOptionRuleRepository(s.db)
}

func (s *OptionRuleRepositoryTestSuite) TestGetAll_IncludesInactive() {
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "rule_type", "if_option_id", "then_option_id", "is_active", "created_at", "updated_at"}).
		AddRow(uuid.New().String(), "REQUIRES", uuid.New().String(), uuid.New().String(), true, now, now).
		AddRow(uuid.New().String(), "EXCLUDES", uuid.New().String(), uuid.New().String(), false, now, now)
	s.mock.ExpectQuery(`SELECT \* FROM "option_rules" ORDER BY id ASC`).WillReturnRows(rows)

	rules, err := s.repo.GetAll(s.ctx)

	s.Require().NoError(err)
	s.Len(rules, 2)
	s.Equal(entity.RuleTypeRequires, rules[0].RuleType)
	s.False(rules[1].IsActive)
}

func (s *OptionRuleRepositoryTestSuite) TestCreate_Duplicate() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`INSERT INTO "option_rules"`).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})
	s.mock.ExpectRollback()

	err := s.repo.Create(s.ctx, &entity.OptionRule{ID: uuid.New(), RuleType: entity.RuleTypeExcludes})

	s.ErrorIs(err, ErrDuplicateKey)
}

type ConfigurationRepositoryTestSuite struct {
	GormRepositoryTestSuite
	repo ConfigurationRepository
}

func TestConfigurationRepositorySuite(t *testing.T) {
	suite.Run(t, new(ConfigurationRepositoryTestSuite))
}

func (s *ConfigurationRepositoryTestSuite) SetupTest() {
	s.GormRepositoryTestSuite.SetupTest()
	s.repo = NewConfigurationRepository(s.db)
}

func (s *ConfigurationRepositoryTestSuite) TestLoadSnapshot_SingleTransaction() {
	productID := uuid.New()
	categoryID := uuid.New()
	groupID := uuid.New()
	optionID := uuid.New()
	now := time.Now()

	s.mock.MatchExpectationsInOrder(false)
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(productID.String(), "Trail bike", "", "1000.00", true, "bicycle", categoryID.String(), now, now))
	s.mock.ExpectQuery(`SELECT \* FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "is_active", "created_at", "updated_at"}).
			AddRow(categoryID.String(), "Mountain", "", true, now, now))
	s.mock.ExpectQuery(`SELECT \* FROM "product_option_groups"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "display_name", "product_id", "position", "created_at", "updated_at"}).
			AddRow(groupID.String(), "wheels", "Wheels", productID.String(), 0, now, now))
	s.mock.ExpectQuery(`SELECT \* FROM "product_options"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "display_name", "base_price", "is_active", "option_group_id", "created_at", "updated_at"}).
			AddRow(optionID.String(), "road", "Road wheels", "80.00", true, groupID.String(), now, now))
	s.mock.ExpectQuery(`SELECT \* FROM "inventory_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "quantity", "out_of_stock", "product_option_id", "created_at", "updated_at"}).
			AddRow(uuid.New().String(), 3, false, optionID.String(), now, now))
	s.mock.ExpectQuery(`SELECT \* FROM "option_rules" ORDER BY id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "rule_type", "if_option_id", "then_option_id", "is_active", "created_at", "updated_at"}).
			AddRow(uuid.New().String(), "REQUIRES", optionID.String(), uuid.New().String(), true, now, now))
	s.mock.ExpectQuery(`SELECT \* FROM "option_price_rules" ORDER BY id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "price", "target_option_id", "dependent_option_id", "is_active", "created_at", "updated_at"}))
	s.mock.ExpectCommit()

	snapshot, err := s.repo.LoadSnapshot(s.ctx, productID)

	s.Require().NoError(err)
	s.Equal(productID, snapshot.Product.ID)
	s.Require().Len(snapshot.Product.OptionGroups, 1)
	s.True(snapshot.Product.OptionGroups[0].Options[0].InStock)
	s.Len(snapshot.Rules, 1)
	s.NotNil(snapshot.PriceRules)
	s.Empty(snapshot.PriceRules)
}

func (s *ConfigurationRepositoryTestSuite) TestLoadSnapshot_ProductNotFoundRollsBack() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(productColumns))
	s.mock.ExpectRollback()

	snapshot, err := s.repo.LoadSnapshot(s.ctx, uuid.New())

	s.Nil(snapshot)
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *ConfigurationRepositoryTestSuite) TestLoadSnapshot_QueryFailureRollsBack() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnError(sql.ErrConnDone)
	s.mock.ExpectRollback()

	snapshot, err := s.repo.LoadSnapshot(s.ctx, uuid.New())

	s.Nil(snapshot)
	s.ErrorIs(err, sql.ErrConnDone)
	s.NotErrorIs(err, ErrProductNotFound)
}
