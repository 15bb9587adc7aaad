package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/vantora/leadhub/internal/entity"
)

const (
	highValueThreshold = 100000
	topLeadsLimit      = 10
	recentWindow       = 7 * 24 * time.Hour
)

// AnalyticsUseCase produces the dashboard rollups. Every call is a read-only
// pass over the current store contents.
type AnalyticsUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewAnalyticsUseCase(repo entity.LeadRepositoryInterface) *AnalyticsUseCase {
	return &AnalyticsUseCase{Repo: repo}
}

func (uc *AnalyticsUseCase) Summary(ctx context.Context) (*AnalyticsSummary, error) {
	counts, err := uc.Repo.CountByStage(ctx)
	if err != nil {
		return nil, NewStoreError("failed to fetch analytics", err)
	}

	totalValue, err := uc.Repo.SumValue(ctx)
	if err != nil {
		return nil, NewStoreError("failed to fetch analytics", err)
	}

	stageDist, err := uc.Repo.GroupCountBy(ctx, "stage")
	if err != nil {
		return nil, NewStoreError("failed to fetch analytics", err)
	}

	sourceDist, err := uc.Repo.GroupCountBy(ctx, "source")
	if err != nil {
		return nil, NewStoreError("failed to fetch analytics", err)
	}

	last7Days, err := uc.Repo.CountCreatedSince(ctx, time.Now().Add(-recentWindow))
	if err != nil {
		return nil, NewStoreError("failed to fetch analytics", err)
	}

	highValue, err := uc.Repo.CountValueAtLeast(ctx, highValueThreshold)
	if err != nil {
		return nil, NewStoreError("failed to fetch analytics", err)
	}

	total := counts.Total
	converted := counts.Converted

	conversionRate := "0.00"
	var avgValue int64
	if total > 0 {
		conversionRate = fmt.Sprintf("%.2f", float64(converted)/float64(total)*100)
		avgValue = int64(math.Round(totalValue / float64(total)))
	}

	if stageDist == nil {
		stageDist = []entity.GroupCount{}
	}
	if sourceDist == nil {
		sourceDist = []entity.GroupCount{}
	}

	return &AnalyticsSummary{
		TotalLeads:         total,
		ConvertedLeads:     converted,
		ConversionRate:     conversionRate,
		TotalValue:         totalValue,
		AvgValue:           avgValue,
		StageDistribution:  stageDist,
		SourceDistribution: sourceDist,
		LeadsLast7Days:     last7Days,
		HighValueLeads:     highValue,
	}, nil
}

func (uc *AnalyticsUseCase) Revenue(ctx context.Context) (*RevenueReport, error) {
	byStage, err := uc.Repo.GroupRevenueBy(ctx, "stage")
	if err != nil {
		return nil, NewStoreError("failed to fetch revenue analytics", err)
	}

	bySource, err := uc.Repo.GroupRevenueBy(ctx, "source")
	if err != nil {
		return nil, NewStoreError("failed to fetch revenue analytics", err)
	}

	topLeads, err := uc.Repo.TopByValue(ctx, topLeadsLimit)
	if err != nil {
		return nil, NewStoreError("failed to fetch revenue analytics", err)
	}

	if byStage == nil {
		byStage = []entity.GroupRevenue{}
	}
	if bySource == nil {
		bySource = []entity.GroupRevenue{}
	}
	if topLeads == nil {
		topLeads = []*entity.Lead{}
	}

	return &RevenueReport{
		RevenueByStage:  byStage,
		RevenueBySource: bySource,
		TopLeads:        topLeads,
	}, nil
}
