package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vantora/leadhub/internal/entity"
)

func TestSummaryWithSeededLeads(t *testing.T) {
	// Three leads worth 100/200/300, stages New/New/Converted.
	repo := new(MockLeadRepository)
	repo.On("CountByStage", mock.Anything).Return(&entity.StageCounts{Total: 3, New: 2, Converted: 1}, nil)
	repo.On("SumValue", mock.Anything).Return(600.0, nil)
	repo.On("GroupCountBy", mock.Anything, "stage").Return([]entity.GroupCount{
		{Key: entity.StageNew, Count: 2},
		{Key: entity.StageConverted, Count: 1},
	}, nil)
	repo.On("GroupCountBy", mock.Anything, "source").Return([]entity.GroupCount{
		{Key: entity.SourceWebsite, Count: 3},
	}, nil)
	repo.On("CountCreatedSince", mock.Anything, mock.Anything).Return(int64(3), nil)
	repo.On("CountValueAtLeast", mock.Anything, 100000.0).Return(int64(0), nil)

	uc := NewAnalyticsUseCase(repo)

	summary, err := uc.Summary(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(3), summary.TotalLeads)
	assert.Equal(t, int64(1), summary.ConvertedLeads)
	assert.Equal(t, "33.33", summary.ConversionRate)
	assert.Equal(t, 600.0, summary.TotalValue)
	assert.Equal(t, int64(200), summary.AvgValue)
	assert.Equal(t, int64(3), summary.LeadsLast7Days)
	assert.Equal(t, int64(0), summary.HighValueLeads)
}

func TestSummaryEmptyStoreHasNoDivisionByZero(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("CountByStage", mock.Anything).Return(&entity.StageCounts{}, nil)
	repo.On("SumValue", mock.Anything).Return(0.0, nil)
	repo.On("GroupCountBy", mock.Anything, "stage").Return(nil, nil)
	repo.On("GroupCountBy", mock.Anything, "source").Return(nil, nil)
	repo.On("CountCreatedSince", mock.Anything, mock.Anything).Return(int64(0), nil)
	repo.On("CountValueAtLeast", mock.Anything, mock.Anything).Return(int64(0), nil)

	uc := NewAnalyticsUseCase(repo)

	summary, err := uc.Summary(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(0), summary.TotalLeads)
	assert.Equal(t, "0.00", summary.ConversionRate)
	assert.Equal(t, int64(0), summary.AvgValue)
	assert.NotNil(t, summary.StageDistribution)
	assert.NotNil(t, summary.SourceDistribution)
}

func TestRevenueReport(t *testing.T) {
	topLeads := []*entity.Lead{
		{ID: "lead-1", Value: 300},
		{ID: "lead-2", Value: 200},
	}

	repo := new(MockLeadRepository)
	repo.On("GroupRevenueBy", mock.Anything, "stage").Return([]entity.GroupRevenue{
		{Key: entity.StageConverted, Total: 300, Count: 1, Avg: 300},
		{Key: entity.StageNew, Total: 300, Count: 2, Avg: 150},
	}, nil)
	repo.On("GroupRevenueBy", mock.Anything, "source").Return([]entity.GroupRevenue{
		{Key: entity.SourceWebsite, Total: 600, Count: 3, Avg: 200},
	}, nil)
	repo.On("TopByValue", mock.Anything, 10).Return(topLeads, nil)

	uc := NewAnalyticsUseCase(repo)

	report, err := uc.Revenue(context.Background())

	assert.NoError(t, err)
	assert.Len(t, report.RevenueByStage, 2)
	assert.Len(t, report.TopLeads, 2)
	assert.Equal(t, "lead-1", report.TopLeads[0].ID)
}

func TestRevenueEmptyStore(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("GroupRevenueBy", mock.Anything, "stage").Return(nil, nil)
	repo.On("GroupRevenueBy", mock.Anything, "source").Return(nil, nil)
	repo.On("TopByValue", mock.Anything, 10).Return(nil, nil)

	uc := NewAnalyticsUseCase(repo)

	report, err := uc.Revenue(context.Background())

	assert.NoError(t, err)
	assert.NotNil(t, report.RevenueByStage)
	assert.NotNil(t, report.RevenueBySource)
	assert.NotNil(t, report.TopLeads)
	assert.Len(t, report.TopLeads, 0)
}
