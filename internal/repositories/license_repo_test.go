package repositories

import (
	"context"
	"testing"
	"time"

	"licentra/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type LicenseRepoTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	repo      LicenseRepository
	tenantID  uuid.UUID
	licenseID uuid.UUID
	ctx       context.Context
}

func (suite *LicenseRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewLicenseRepo(mock)
	suite.tenantID = uuid.New()
	suite.licenseID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *LicenseRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestLicenseRepoTestSuite(t *testing.T) {
	suite.Run(t, new(LicenseRepoTestSuite))
}

func (suite *LicenseRepoTestSuite) licenseRows(license *models.License) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "tenant_id", "plan_id", "key", "status", "max_seats", "expires_at", "assigned_user_id", "created_at", "updated_at"}).
		AddRow(license.ID, license.TenantID, license.PlanID, license.Key, license.Status, license.MaxSeats, license.ExpiresAt, license.AssignedUserID, license.CreatedAt, license.UpdatedAt)
}

func (suite *LicenseRepoTestSuite) TestCreate_Success() {
	maxSeats := 5
	license := &models.License{
		ID:       suite.licenseID,
		TenantID: suite.tenantID,
		PlanID:   uuid.New(),
		Key:      "AAAA-BBBB-CCCC-DDDD",
		Status:   models.LicenseStatusActive,
		MaxSeats: &maxSeats,
	}

	suite.mock.ExpectExec(`INSERT INTO licenses`).
		WithArgs(license.ID, license.TenantID, license.PlanID, license.Key, license.Status, license.MaxSeats, license.ExpiresAt, license.AssignedUserID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.ctx, license)

	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *LicenseRepoTestSuite) TestGetByKey_Success() {
	license := &models.License{
		ID:        suite.licenseID,
		TenantID:  suite.tenantID,
		PlanID:    uuid.New(),
		Key:       "AAAA-BBBB-CCCC-DDDD",
		Status:    models.LicenseStatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	suite.mock.ExpectQuery(`WHERE tenant_id = \$1 AND key = \$2`).
		WithArgs(suite.tenantID, license.Key).
		WillReturnRows(suite.licenseRows(license))

	found, err := suite.repo.GetByKey(suite.ctx, suite.tenantID, license.Key)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), license.ID, found.ID)
	assert.Equal(suite.T(), license.Key, found.Key)
}

func (suite *LicenseRepoTestSuite) TestGetByKey_WrongTenantSeesNothing() {
	otherTenant := uuid.New()

	suite.mock.ExpectQuery(`WHERE tenant_id = \$1 AND key = \$2`).
		WithArgs(otherTenant, "AAAA-BBBB-CCCC-DDDD").
		WillReturnError(pgx.ErrNoRows)

	found, err := suite.repo.GetByKey(suite.ctx, otherTenant, "AAAA-BBBB-CCCC-DDDD")

	assert.Nil(suite.T(), found)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
}

func (suite *LicenseRepoTestSuite) TestUpdateStatus_Success() {
	suite.mock.ExpectExec(`UPDATE licenses`).
		WithArgs(models.LicenseStatusSuspended, suite.tenantID, suite.licenseID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.UpdateStatus(suite.ctx, suite.tenantID, suite.licenseID, models.LicenseStatusSuspended)

	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *LicenseRepoTestSuite) TestList_Success() {
	license := &models.License{
		ID:       suite.licenseID,
		TenantID: suite.tenantID,
		PlanID:   uuid.New(),
		Key:      "AAAA-BBBB-CCCC-DDDD",
		Status:   models.LicenseStatusActive,
	}

	suite.mock.ExpectQuery(`WHERE tenant_id = \$1`).
		WithArgs(suite.tenantID, 20, 0).
		WillReturnRows(suite.licenseRows(license))

	licenses, err := suite.repo.List(suite.ctx, suite.tenantID, 20, 0)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), licenses, 1)
	assert.Equal(suite.T(), license.ID, licenses[0].ID)
}
