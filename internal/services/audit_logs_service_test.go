package services

import (
	"context"
	"testing"
	"time"

	"licentra/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuditServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAuditLogsRepository
	service  AuditService
	tenantID uuid.UUID
	ctx      context.Context
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockAuditLogsRepository{}
	suite.service = NewAuditService(suite.mockRepo)
	suite.tenantID = uuid.New()
	suite.ctx = context.Background()
}

func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}

func (suite *AuditServiceTestSuite) TestAppend_Success() {
	suite.mockRepo.On("Create", suite.ctx, mock.MatchedBy(func(entry *models.AuditLog) bool {
		return entry.TenantID == suite.tenantID &&
			entry.Action == models.ActionLicenseValidated &&
			entry.EntityType == "license"
	})).Return(nil)

	err := suite.service.Append(suite.ctx, suite.tenantID, models.ActionLicenseValidated,
		"license", uuid.NewString(), models.JSONB{"valid": true})

	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestAppend_RequiresAction() {
	err := suite.service.Append(suite.ctx, suite.tenantID, "", "license", "x", nil)
	assert.Error(suite.T(), err)
	suite.mockRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *AuditServiceTestSuite) TestQuery_FullPageReturnsCursor() {
	now := time.Now()
	entries := make([]*models.AuditLog, 2)
	for i := range entries {
		entries[i] = &models.AuditLog{
			ID:        uuid.New(),
			TenantID:  suite.tenantID,
			Action:    models.ActionLicenseCreated,
			CreatedAt: now.Add(-time.Duration(i) * time.Second),
		}
	}

	filters := &models.AuditLogFilters{Limit: 2}
	suite.mockRepo.On("List", suite.ctx, suite.tenantID, filters).Return(entries, nil)

	result, next, err := suite.service.Query(suite.ctx, suite.tenantID, filters)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 2)
	assert.NotNil(suite.T(), next)
	assert.Equal(suite.T(), entries[1].ID, *next.CursorID)
	assert.Equal(suite.T(), entries[1].CreatedAt, *next.CursorTime)
}

func (suite *AuditServiceTestSuite) TestQuery_ShortPageEndsPagination() {
	entries := []*models.AuditLog{
		{ID: uuid.New(), TenantID: suite.tenantID, Action: models.ActionLicenseCreated},
	}

	filters := &models.AuditLogFilters{Limit: 50}
	suite.mockRepo.On("List", suite.ctx, suite.tenantID, filters).Return(entries, nil)

	result, next, err := suite.service.Query(suite.ctx, suite.tenantID, filters)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 1)
	assert.Nil(suite.T(), next)
}

func (suite *AuditServiceTestSuite) TestQuery_DefaultsLimit() {
	suite.mockRepo.On("List", suite.ctx, suite.tenantID, mock.MatchedBy(func(f *models.AuditLogFilters) bool {
		return f.Limit == 50
	})).Return([]*models.AuditLog{}, nil)

	_, _, err := suite.service.Query(suite.ctx, suite.tenantID, nil)
	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}
