package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vantora/leadhub/internal/entity"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.LeadFilter, sort entity.LeadSort, page entity.LeadPage) ([]*entity.Lead, int64, error) {
	args := m.Called(ctx, filter, sort, page)
	var leads []*entity.Lead
	if args.Get(0) != nil {
		leads = args.Get(0).([]*entity.Lead)
	}
	return leads, args.Get(1).(int64), args.Error(2)
}

func (m *MockLeadRepository) CountByStage(ctx context.Context) (*entity.StageCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.StageCounts), args.Error(1)
}

func (m *MockLeadRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) CountValueAtLeast(ctx context.Context, value float64) (int64, error) {
	args := m.Called(ctx, value)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) SumValue(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockLeadRepository) GroupCountBy(ctx context.Context, field string) ([]entity.GroupCount, error) {
	args := m.Called(ctx, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.GroupCount), args.Error(1)
}

func (m *MockLeadRepository) GroupRevenueBy(ctx context.Context, field string) ([]entity.GroupRevenue, error) {
	args := m.Called(ctx, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.GroupRevenue), args.Error(1)
}

func (m *MockLeadRepository) TopByValue(ctx context.Context, limit int) ([]*entity.Lead, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestCreateLeadDefaultsStageAndSource(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := NewLeadUseCase(repo, nil)

	lead, err := uc.Create(context.Background(), CreateLeadInput{
		FirstName: "Ana",
		LastName:  "Souza",
		Email:     "ana@example.com",
		Phone:     "+5511999990000",
		Company:   "Tech Corp",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StageNew, lead.Stage)
	assert.Equal(t, entity.SourceWebsite, lead.Source)
	assert.Equal(t, 0.0, lead.Value)
	assert.NotEmpty(t, lead.ID)
	repo.AssertExpectations(t)
}

func TestCreateLeadRejectsMissingFields(t *testing.T) {
	repo := new(MockLeadRepository)
	uc := NewLeadUseCase(repo, nil)

	_, err := uc.Create(context.Background(), CreateLeadInput{
		FirstName: "Ana",
		Email:     "ana@example.com",
	})

	assert.Error(t, err)
	domainErr, ok := err.(*DomainError)
	assert.True(t, ok)
	assert.Equal(t, CodeValidation, domainErr.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateLeadRejectsUnknownStage(t *testing.T) {
	repo := new(MockLeadRepository)
	uc := NewLeadUseCase(repo, nil)

	_, err := uc.Create(context.Background(), CreateLeadInput{
		FirstName: "Ana",
		LastName:  "Souza",
		Email:     "ana@example.com",
		Phone:     "+5511999990000",
		Company:   "Tech Corp",
		Stage:     "Closed",
	})

	assert.Error(t, err)
	domainErr, ok := err.(*DomainError)
	assert.True(t, ok)
	assert.Equal(t, CodeValidation, domainErr.Code)
}

func TestCreateLeadDuplicateEmailConflicts(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(entity.ErrEmailAlreadyExists)

	uc := NewLeadUseCase(repo, nil)

	_, err := uc.Create(context.Background(), CreateLeadInput{
		FirstName: "Ana",
		LastName:  "Souza",
		Email:     "a@x.com",
		Phone:     "+5511999990000",
		Company:   "Tech Corp",
	})

	assert.Error(t, err)
	domainErr, ok := err.(*DomainError)
	assert.True(t, ok)
	assert.Equal(t, CodeConflict, domainErr.Code)
}

func TestUpdateLeadOnlyTouchesSuppliedFields(t *testing.T) {
	existing := &entity.Lead{
		ID:        "lead-1",
		FirstName: "Ana",
		LastName:  "Souza",
		Email:     "ana@example.com",
		Phone:     "+5511999990000",
		Company:   "Tech Corp",
		Stage:     entity.StageNew,
		Value:     1000,
		Source:    entity.SourceReferral,
		Notes:     "first contact",
		CreatedAt: time.Now().Add(-time.Hour),
		UpdatedAt: time.Now().Add(-time.Hour),
	}

	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, "lead-1").Return(existing, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	uc := NewLeadUseCase(repo, nil)

	before := time.Now()
	lead, err := uc.Update(context.Background(), "lead-1", UpdateLeadInput{
		Stage: strPtr(entity.StageContacted),
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StageContacted, lead.Stage)
	// Untouched fields survive the partial update.
	assert.Equal(t, "Ana", lead.FirstName)
	assert.Equal(t, "ana@example.com", lead.Email)
	assert.Equal(t, 1000.0, lead.Value)
	assert.Equal(t, entity.SourceReferral, lead.Source)
	assert.Equal(t, "first contact", lead.Notes)
	assert.True(t, lead.UpdatedAt.After(before) || lead.UpdatedAt.Equal(before))
}

func TestUpdateLeadEmailCollisionConflicts(t *testing.T) {
	existing := &entity.Lead{ID: "lead-1", Email: "ana@example.com"}
	other := &entity.Lead{ID: "lead-2", Email: "taken@example.com"}

	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, "lead-1").Return(existing, nil)
	repo.On("FindByEmail", mock.Anything, "taken@example.com").Return(other, nil)

	uc := NewLeadUseCase(repo, nil)

	_, err := uc.Update(context.Background(), "lead-1", UpdateLeadInput{
		Email: strPtr("taken@example.com"),
	})

	assert.Error(t, err)
	domainErr, ok := err.(*DomainError)
	assert.True(t, ok)
	assert.Equal(t, CodeConflict, domainErr.Code)
	repo.AssertNotCalled(t, "Update")
}

func TestUpdateLeadUnknownIDNotFound(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, "missing").Return(nil, entity.ErrLeadNotFound)

	uc := NewLeadUseCase(repo, nil)

	_, err := uc.Update(context.Background(), "missing", UpdateLeadInput{Value: floatPtr(10)})

	assert.Error(t, err)
	domainErr, ok := err.(*DomainError)
	assert.True(t, ok)
	assert.Equal(t, CodeNotFound, domainErr.Code)
}

func TestDeleteLeadReturnsSnapshot(t *testing.T) {
	existing := &entity.Lead{ID: "lead-1", FirstName: "Ana", Email: "ana@example.com"}

	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, "lead-1").Return(existing, nil)
	repo.On("Delete", mock.Anything, "lead-1").Return(nil)

	uc := NewLeadUseCase(repo, nil)

	lead, err := uc.Delete(context.Background(), "lead-1")

	assert.NoError(t, err)
	assert.Equal(t, "ana@example.com", lead.Email)
	repo.AssertExpectations(t)
}

func TestDeleteLeadUnknownIDNotFound(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, "missing").Return(nil, entity.ErrLeadNotFound)

	uc := NewLeadUseCase(repo, nil)

	_, err := uc.Delete(context.Background(), "missing")

	assert.Error(t, err)
	domainErr, ok := err.(*DomainError)
	assert.True(t, ok)
	assert.Equal(t, CodeNotFound, domainErr.Code)
	repo.AssertNotCalled(t, "Delete")
}

func TestListLeadsPaginationMath(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*entity.Lead{{ID: "a"}, {ID: "b"}}, int64(25), nil)

	uc := NewLeadUseCase(repo, nil)

	output, err := uc.List(context.Background(), ListLeadsInput{Page: 2, Limit: 10})

	assert.NoError(t, err)
	assert.Equal(t, int64(25), output.Pagination.Total)
	assert.Equal(t, int64(3), output.Pagination.Pages) // ceil(25/10)
	assert.Equal(t, 2, output.Pagination.CurrentPage)
	assert.Equal(t, 10, output.Pagination.Limit)
}

func TestListLeadsDefaultsAndEmptyPage(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything, mock.Anything,
		entity.LeadSort{Field: "createdAt", Descending: true},
		entity.LeadPage{Number: 1, Limit: 10},
	).Return(nil, int64(0), nil)

	uc := NewLeadUseCase(repo, nil)

	output, err := uc.List(context.Background(), ListLeadsInput{})

	assert.NoError(t, err)
	// A page past the data is an empty list, never an error or a nil slice.
	assert.NotNil(t, output.Leads)
	assert.Len(t, output.Leads, 0)
	assert.Equal(t, int64(0), output.Pagination.Pages)
}

func TestListLeadsRejectsUnknownSortField(t *testing.T) {
	repo := new(MockLeadRepository)
	uc := NewLeadUseCase(repo, nil)

	_, err := uc.List(context.Background(), ListLeadsInput{SortBy: "passwordHash"})

	assert.Error(t, err)
	domainErr, ok := err.(*DomainError)
	assert.True(t, ok)
	assert.Equal(t, CodeValidation, domainErr.Code)
	repo.AssertNotCalled(t, "List")
}

func TestListLeadsAllStageMeansNoFilter(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything,
		entity.LeadFilter{},
		mock.Anything, mock.Anything,
	).Return([]*entity.Lead{}, int64(0), nil)

	uc := NewLeadUseCase(repo, nil)

	_, err := uc.List(context.Background(), ListLeadsInput{Stage: "All"})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestStatsPassThrough(t *testing.T) {
	counts := &entity.StageCounts{Total: 5, New: 2, Converted: 1}

	repo := new(MockLeadRepository)
	repo.On("CountByStage", mock.Anything).Return(counts, nil)

	uc := NewLeadUseCase(repo, nil)

	stats, err := uc.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(5), stats.Total)
	assert.Equal(t, int64(1), stats.Converted)
}
