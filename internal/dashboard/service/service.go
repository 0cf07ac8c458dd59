// Package service aggregates revenue statistics for the dashboard.
package service

import (
	"math"
	"sort"
	"strings"

	"transit_console_backend/internal/dashboard/transport"
	"transit_console_backend/platform/apperr"
	"transit_console_backend/platform/sanitize"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// OtherLabel names the bucket that collects companies outside the top N.
const OtherLabel = "Other"

type Service struct {
	defaultCurrency string
}

func New(defaultCurrency string) *Service {
	return &Service{defaultCurrency: defaultCurrency}
}

type companyTotal struct {
	name    string
	entries int
	total   float64
}

// Revenue aggregates entries per company. Companies are matched case-insensitively
// and keep the first spelling seen. Shares are percentages of the grand total
// rounded to two decimals; with a zero total every share is 0.
func (s *Service) Revenue(req transport.RevenueRequest) (transport.RevenueSummary, error) {
	cur, err := s.currency(req.Currency)
	if err != nil {
		return transport.RevenueSummary{}, err
	}
	tag := language.English
	if req.Locale != "" {
		parsed, err := language.Parse(req.Locale)
		if err != nil {
			return transport.RevenueSummary{}, apperr.Validation("validation failed").
				WithDetails(map[string]string{"locale": "is not a valid language tag"})
		}
		tag = parsed
	}
	printer := message.NewPrinter(tag)

	totals := aggregate(req.Entries)
	grand := 0.0
	for _, t := range totals {
		grand += t.total
	}

	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].total != totals[j].total {
			return totals[i].total > totals[j].total
		}
		return strings.ToLower(totals[i].name) < strings.ToLower(totals[j].name)
	})
	companyCount := len(totals)
	totals = collapseTail(totals, req.Top)

	summary := transport.RevenueSummary{
		Currency:       cur.String(),
		Total:          round2(grand),
		TotalFormatted: formatAmount(printer, cur, grand),
		CompanyCount:   companyCount,
		Companies:      make([]transport.CompanyRevenue, 0, len(totals)),
		Chart: transport.ChartSeries{
			Labels: make([]string, 0, len(totals)),
			Values: make([]float64, 0, len(totals)),
			Shares: make([]float64, 0, len(totals)),
		},
	}

	for _, t := range totals {
		share := sharePercent(t.total, grand)
		summary.Companies = append(summary.Companies, transport.CompanyRevenue{
			Company:        t.name,
			Entries:        t.entries,
			Total:          round2(t.total),
			Share:          share,
			TotalFormatted: formatAmount(printer, cur, t.total),
			ShareFormatted: printer.Sprint(number.Percent(share/100, number.MaxFractionDigits(2))),
		})
		summary.Chart.Labels = append(summary.Chart.Labels, t.name)
		summary.Chart.Values = append(summary.Chart.Values, round2(t.total))
		summary.Chart.Shares = append(summary.Chart.Shares, share)
	}

	return summary, nil
}

func (s *Service) currency(code string) (currency.Unit, error) {
	if code == "" {
		code = s.defaultCurrency
	}
	cur, err := currency.ParseISO(strings.ToUpper(code))
	if err != nil {
		return currency.Unit{}, apperr.Validation("validation failed").
			WithDetails(map[string]string{"currency": "is not a known ISO 4217 code"})
	}
	return cur, nil
}

func aggregate(entries []transport.RevenueEntry) []companyTotal {
	index := make(map[string]int, len(entries))
	totals := make([]companyTotal, 0, len(entries))

	for _, e := range entries {
		name := sanitize.Text(e.Company)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		i, ok := index[key]
		if !ok {
			i = len(totals)
			index[key] = i
			totals = append(totals, companyTotal{name: name})
		}
		totals[i].entries++
		totals[i].total += e.Amount
	}
	return totals
}

// collapseTail keeps the first top companies and sums the rest into OtherLabel.
func collapseTail(sorted []companyTotal, top int) []companyTotal {
	if top <= 0 || len(sorted) <= top {
		return sorted
	}

	other := companyTotal{name: OtherLabel}
	for _, t := range sorted[top:] {
		other.entries += t.entries
		other.total += t.total
	}

	out := make([]companyTotal, 0, top+1)
	out = append(out, sorted[:top]...)
	return append(out, other)
}

func sharePercent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return round2(part / total * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatAmount(p *message.Printer, cur currency.Unit, v float64) string {
	return cur.String() + " " + p.Sprint(number.Decimal(round2(v), number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
