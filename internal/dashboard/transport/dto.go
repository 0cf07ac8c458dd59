package transport

// RevenueEntry is one revenue figure for a company. A company usually has
// several entries, one per upstream call.
type RevenueEntry struct {
	Company string  `json:"company" validate:"required,max=200"`
	Amount  float64 `json:"amount" validate:"min=0"`
	Source  string  `json:"source,omitempty" validate:"max=100"`
}

type RevenueRequest struct {
	Entries  []RevenueEntry `json:"entries" validate:"max=100000,dive"`
	Top      int            `json:"top" validate:"omitempty,min=1,max=50"`
	Currency string         `json:"currency" validate:"omitempty,len=3,alpha"`
	Locale   string         `json:"locale" validate:"omitempty,max=35"`
}

type CompanyRevenue struct {
	Company        string  `json:"company"`
	Entries        int     `json:"entries"`
	Total          float64 `json:"total"`
	Share          float64 `json:"share"`
	TotalFormatted string  `json:"totalFormatted"`
	ShareFormatted string  `json:"shareFormatted"`
}

// ChartSeries feeds the revenue share chart in the console.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Shares []float64 `json:"shares"`
}

type RevenueSummary struct {
	Currency       string           `json:"currency"`
	Total          float64          `json:"total"`
	TotalFormatted string           `json:"totalFormatted"`
	CompanyCount   int              `json:"companyCount"`
	Companies      []CompanyRevenue `json:"companies"`
	Chart          ChartSeries      `json:"chart"`
}
