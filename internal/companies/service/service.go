// Package service validates and normalises company forms.
package service

import (
	"strings"

	"transit_console_backend/internal/companies/transport"
	"transit_console_backend/platform/apperr"
	"transit_console_backend/platform/phone"
	"transit_console_backend/platform/sanitize"
)

type Service struct {
	defaultRegion string
}

func New(defaultRegion string) *Service {
	return &Service{defaultRegion: defaultRegion}
}

// Prepare sanitises a company payload and normalises the phone number to E.164.
// National numbers are read in the request's region, or the configured default.
func (s *Service) Prepare(req transport.CompanyRequest) (transport.CompanyDraft, error) {
	fields := map[string]string{}

	name := sanitize.Text(req.Name)
	if name == "" {
		fields["name"] = "is required"
	}

	region := req.PhoneRegion
	if region == "" {
		region = s.defaultRegion
	}
	e164, ok := phone.NormalizeE164(req.Phone, region)
	if !ok {
		fields["phone"] = "must be a valid phone number"
	}

	if len(fields) > 0 {
		return transport.CompanyDraft{}, apperr.Validation("validation failed").WithDetails(fields)
	}

	return transport.CompanyDraft{
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        e164,
		Address:      sanitize.Text(req.Address),
		City:         sanitize.Text(req.City),
		Website:      trimPtr(req.Website),
		Registration: sanitize.TextPtr(req.Registration),
	}, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
