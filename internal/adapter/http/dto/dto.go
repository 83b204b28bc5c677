package dto

// RecordBalanceRequest is the request body for recording a custody balance
// snapshot. Balance is a base-10 integer string in the smallest unit so
// amounts past int64 range survive the wire untouched.
type RecordBalanceRequest struct {
	SourceKey string `json:"source_key" binding:"required,max=100,safe_id"`
	Currency  string `json:"currency" binding:"required,min=2,max=10,uppercase"`
	Balance   string `json:"balance" binding:"required,int_string"`
	Label     string `json:"label" binding:"max=200"`
}

// CustodyBalanceResponse is the response body for a custody balance snapshot.
type CustodyBalanceResponse struct {
	SourceKey string `json:"source_key"`
	Currency  string `json:"currency"`
	Balance   string `json:"balance"`
	Label     string `json:"label,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

// ExecuteSettlementRequest is the request body for running a settlement.
type ExecuteSettlementRequest struct {
	Currency string `json:"currency" binding:"required,min=2,max=10,uppercase"`
}

// DistributionResponse is one planned withdrawal in a preview.
type DistributionResponse struct {
	SourceKey        string  `json:"source_key"`
	Amount           string  `json:"amount"`
	Percentage       float64 `json:"percentage"`
	OriginalBalance  string  `json:"original_balance"`
	RemainingBalance string  `json:"remaining_balance"`
}

// PreviewResponse is the response body for a settlement preview.
type PreviewResponse struct {
	Currency         string                 `json:"currency"`
	PlatformBalance  string                 `json:"platform_balance"`
	ExchangeBalance  string                 `json:"exchange_balance"`
	TargetBalance    string                 `json:"target_balance"`
	SettlementAmount string                 `json:"settlement_amount"`
	CurrentRatio     string                 `json:"current_ratio"`
	NeedsSettlement  bool                   `json:"needs_settlement"`
	Actionable       bool                   `json:"actionable"`
	Distributions    []DistributionResponse `json:"distributions"`
}

// SettlementLineResponse is one executed withdrawal line.
type SettlementLineResponse struct {
	ID               string  `json:"id"`
	SourceKey        string  `json:"source_key"`
	Amount           string  `json:"amount"`
	Percentage       float64 `json:"percentage"`
	OriginalBalance  string  `json:"original_balance"`
	RemainingBalance string  `json:"remaining_balance"`
	WithdrawalRef    *string `json:"withdrawal_ref,omitempty"`
}

// SettlementResponse is the response body for a settlement record.
type SettlementResponse struct {
	ID               string                   `json:"id"`
	Currency         string                   `json:"currency"`
	PlatformBalance  string                   `json:"platform_balance"`
	ExchangeBalance  string                   `json:"exchange_balance"`
	TargetBalance    string                   `json:"target_balance"`
	SettlementAmount string                   `json:"settlement_amount"`
	CurrentRatio     string                   `json:"current_ratio"`
	Status           string                   `json:"status"`
	FailureReason    *string                  `json:"failure_reason,omitempty"`
	CreatedAt        string                   `json:"created_at"`
	ExecutedAt       *string                  `json:"executed_at,omitempty"`
	Lines            []SettlementLineResponse `json:"lines,omitempty"`
}

// SettlementListResponse wraps a paginated settlement history.
type SettlementListResponse struct {
	Items      []SettlementResponse `json:"items"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
}

// StatsResponse is the response for settlement statistics.
type StatsResponse struct {
	TotalSettlements int64  `json:"total_settlements"`
	Completed        int64  `json:"completed"`
	Failed           int64  `json:"failed"`
	Planned          int64  `json:"planned"`
	TotalSettled     string `json:"total_settled"`
}
