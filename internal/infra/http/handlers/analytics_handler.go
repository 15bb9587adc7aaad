package handlers

import (
	"net/http"

	"github.com/vantora/leadhub/internal/usecase"
)

type AnalyticsHandler struct {
	Analytics *usecase.AnalyticsUseCase
}

func NewAnalyticsHandler(analytics *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{Analytics: analytics}
}

// HandleSummary handles GET /analytics.
func (h *AnalyticsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Analytics.Summary(r.Context())
	if err != nil {
		respondUseCaseError(w, err, "error fetching analytics")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"totalLeads":         summary.TotalLeads,
		"convertedLeads":     summary.ConvertedLeads,
		"conversionRate":     summary.ConversionRate,
		"totalValue":         summary.TotalValue,
		"avgValue":           summary.AvgValue,
		"stageDistribution":  summary.StageDistribution,
		"sourceDistribution": summary.SourceDistribution,
		"leadsLast7Days":     summary.LeadsLast7Days,
		"highValueLeads":     summary.HighValueLeads,
	})
}

// HandleRevenue handles GET /analytics/revenue.
func (h *AnalyticsHandler) HandleRevenue(w http.ResponseWriter, r *http.Request) {
	report, err := h.Analytics.Revenue(r.Context())
	if err != nil {
		respondUseCaseError(w, err, "error fetching revenue analytics")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"revenueByStage":  report.RevenueByStage,
		"revenueBySource": report.RevenueBySource,
		"topLeads":        report.TopLeads,
	})
}
