package usecase

import "github.com/vantora/leadhub/internal/entity"

type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthOutput struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type CreateLeadInput struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Company   string   `json:"company"`
	Stage     string   `json:"stage"`
	Value     *float64 `json:"value"`
	Source    string   `json:"source"`
	Notes     string   `json:"notes"`
}

// UpdateLeadInput carries a partial update. Nil pointers mean "leave alone".
type UpdateLeadInput struct {
	FirstName *string  `json:"firstName"`
	LastName  *string  `json:"lastName"`
	Email     *string  `json:"email"`
	Phone     *string  `json:"phone"`
	Company   *string  `json:"company"`
	Stage     *string  `json:"stage"`
	Value     *float64 `json:"value"`
	Source    *string  `json:"source"`
	Notes     *string  `json:"notes"`
}

type ListLeadsInput struct {
	Search string
	Stage  string
	Source string
	SortBy string
	Order  string
	Page   int
	Limit  int
}

type Pagination struct {
	Total       int64 `json:"total"`
	Pages       int64 `json:"pages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
}

type ListLeadsOutput struct {
	Leads      []*entity.Lead `json:"leads"`
	Pagination Pagination     `json:"pagination"`
}

// AnalyticsSummary mirrors the dashboard payload. conversionRate keeps its
// two-decimal string form because the SPA renders it verbatim.
type AnalyticsSummary struct {
	TotalLeads         int64               `json:"totalLeads"`
	ConvertedLeads     int64               `json:"convertedLeads"`
	ConversionRate     string              `json:"conversionRate"`
	TotalValue         float64             `json:"totalValue"`
	AvgValue           int64               `json:"avgValue"`
	StageDistribution  []entity.GroupCount `json:"stageDistribution"`
	SourceDistribution []entity.GroupCount `json:"sourceDistribution"`
	LeadsLast7Days     int64               `json:"leadsLast7Days"`
	HighValueLeads     int64               `json:"highValueLeads"`
}

type RevenueReport struct {
	RevenueByStage  []entity.GroupRevenue `json:"revenueByStage"`
	RevenueBySource []entity.GroupRevenue `json:"revenueBySource"`
	TopLeads        []*entity.Lead        `json:"topLeads"`
}
