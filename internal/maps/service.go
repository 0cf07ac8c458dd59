package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"transit_console_backend/platform/apperr"
	"transit_console_backend/platform/config"
	"transit_console_backend/platform/geo"
	"transit_console_backend/platform/logger"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/time/rate"
)

const (
	defaultLimit  = 5
	clientTimeout = 5 * time.Second
)

type Service struct {
	client       *http.Client
	log          *logger.Logger
	baseURL      string
	countryCodes string
	userAgent    string
	limiter      *rate.Limiter
	group        singleflight.Group
}

func NewService(cfg config.GeocoderConfig, log *logger.Logger) *Service {
	return &Service{
		client:       &http.Client{Timeout: clientTimeout},
		log:          log,
		baseURL:      cfg.GetNominatimURL(),
		countryCodes: cfg.GetNominatimCountryCodes(),
		userAgent:    cfg.GetNominatimUserAgent(),
		// Nominatim's usage policy allows roughly one request per second.
		limiter: rate.NewLimiter(rate.Limit(cfg.GetNominatimRatePerSec()), 1),
	}
}

// SearchAddress looks up places for a bus stop. Identical lookups that are
// already in flight share one upstream request. The shared request is not
// tied to any one caller; each caller stops waiting when its own ctx ends.
func (s *Service) SearchAddress(ctx context.Context, query string, limit int) ([]AddressSuggestion, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	query = normalizeQuery(query)
	key := fmt.Sprintf("%s|%d", strings.ToLower(query), limit)

	ch := s.group.DoChan(key, func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), clientTimeout)
		defer cancel()
		return s.search(callCtx, query, limit)
	})

	select {
	case <-ctx.Done():
		return nil, apperr.Upstream("address lookup cancelled", ctx.Err()).WithOp("maps.SearchAddress")
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]AddressSuggestion), nil
	}
}

func (s *Service) search(ctx context.Context, query string, limit int) ([]AddressSuggestion, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, apperr.Upstream("address lookup cancelled", err).WithOp("maps.SearchAddress")
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "json")
	params.Add("addressdetails", "1")
	params.Add("limit", strconv.Itoa(limit))
	if s.countryCodes != "" {
		params.Add("countrycodes", s.countryCodes)
	}

	reqURL := fmt.Sprintf("%s?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to build address lookup", err)
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.UpstreamError("nominatim", "search", err)
		return nil, apperr.Upstream("address lookup service unavailable", err).WithOp("maps.SearchAddress")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("upstream api error: %d", resp.StatusCode)
		s.log.UpstreamError("nominatim", "search", err)
		return nil, apperr.Upstream("address lookup service unavailable", err).WithOp("maps.SearchAddress")
	}

	var rawResults []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&rawResults); err != nil {
		s.log.UpstreamError("nominatim", "decode", err)
		return nil, apperr.Upstream("address lookup returned an invalid payload", err).WithOp("maps.SearchAddress")
	}

	suggestions := make([]AddressSuggestion, 0, len(rawResults))
	for _, raw := range rawResults {
		suggestion, ok := buildSuggestion(raw)
		if !ok {
			continue
		}

		suggestions = append(suggestions, suggestion)
	}

	return suggestions, nil
}

func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(norm.NFC.String(query)), " ")
}

func buildSuggestion(raw nominatimResponse) (AddressSuggestion, bool) {
	lat, err := strconv.ParseFloat(raw.Lat, 64)
	if err != nil || !geo.ValidLatitude(lat) {
		return AddressSuggestion{}, false
	}
	lon, err := strconv.ParseFloat(raw.Lon, 64)
	if err != nil || !geo.ValidLongitude(lon) {
		return AddressSuggestion{}, false
	}

	suggestion := AddressSuggestion{
		Street:      raw.Address.Road,
		HouseNumber: raw.Address.HouseNumber,
		ZipCode:     raw.Address.Postcode,
		City:        pickCity(raw.Address),
		Lat:         lat,
		Lon:         lon,
		LatDMS:      geo.DecimalToDMS(lat, true),
		LonDMS:      geo.DecimalToDMS(lon, false),
	}

	suggestion.Label = buildLabel(suggestion)
	if suggestion.Label == "" {
		suggestion.Label = strings.TrimSpace(raw.DisplayName)
	}
	if suggestion.Label == "" {
		return AddressSuggestion{}, false
	}

	return suggestion, true
}

func pickCity(address nominatimAddress) string {
	if address.City != "" {
		return address.City
	}
	if address.Town != "" {
		return address.Town
	}
	if address.Village != "" {
		return address.Village
	}
	if address.Municipality != "" {
		return address.Municipality
	}
	if address.Suburb != "" {
		return address.Suburb
	}
	return address.Hamlet
}

// buildLabel renders "Street 12, 11101 City". Streetless places fall back to the display name.
func buildLabel(suggestion AddressSuggestion) string {
	if suggestion.Street == "" || suggestion.City == "" {
		return ""
	}

	parts := []string{suggestion.Street}
	if suggestion.HouseNumber != "" {
		parts = append(parts, suggestion.HouseNumber)
	}
	parts = append(parts, ",")
	if suggestion.ZipCode != "" {
		parts = append(parts, suggestion.ZipCode)
	}
	parts = append(parts, suggestion.City)

	label := strings.Join(parts, " ")
	label = strings.ReplaceAll(label, " ,", ",")
	return strings.TrimSpace(label)
}
