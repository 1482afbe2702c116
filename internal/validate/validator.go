package validate

import (
	"context"

	"go.uber.org/zap"

	"github.com/medguard-ai/verify-cli/internal/model"
	"github.com/medguard-ai/verify-cli/internal/registry"
)

// Source names recorded on validation evidence.
const (
	SourceFormat     = "format_validation"
	SourceRegistry   = "npi_registry"
	SourceStateBoard = "state_board"
)

// Format-only evidence weights. Registry-backed evidence carries the higher
// weights configured on the Validator, modeling "verified by authority"
// against "syntactically plausible".
const (
	weightPhoneFormat   = 0.75
	weightAddressFormat = 0.60
	weightLicenseFormat = 0.50
)

// Validator runs the identifier, contact, location, and credential checks
// for one record. Registry collaborators are injected and optional: when
// absent or unreachable the validator degrades to format-only evidence.
type Validator struct {
	registry       registry.Client
	board          registry.BoardClient
	registryWeight float64
	boardWeight    float64
}

// Option configures a Validator.
type Option func(*Validator)

// WithRegistry attaches a national registry client with the weight its
// evidence should carry.
func WithRegistry(c registry.Client, weight float64) Option {
	return func(v *Validator) {
		v.registry = c
		v.registryWeight = model.ClampConfidence(weight)
	}
}

// WithBoard attaches a state-board client with the weight its evidence
// should carry.
func WithBoard(b registry.BoardClient, weight float64) Option {
	return func(v *Validator) {
		v.board = b
		v.boardWeight = model.ClampConfidence(weight)
	}
}

// NewValidator builds a format-only validator; options attach registries.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		registryWeight: 0.90,
		boardWeight:    0.95,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Collect runs every applicable check for the record and returns the
// evidence produced plus the validation-failure flags. Fields that are
// absent from the record are skipped entirely; fields that fail produce a
// flag and no evidence.
func (v *Validator) Collect(ctx context.Context, p model.Provider) ([]model.Evidence, []string) {
	var evidence []model.Evidence
	var flags []string

	log := zap.L().With(zap.String("record", p.RecordID()))

	if p.NPI != "" {
		ev, flag := v.checkNPI(ctx, p.NPI, log)
		evidence = append(evidence, ev...)
		if flag != "" {
			flags = append(flags, flag)
		}
	}

	if p.Phone != "" {
		if normalized, ok, reason := NormalizePhone(p.Phone); ok {
			evidence = append(evidence, model.NewEvidence(
				model.FieldPhone, SourceFormat, normalized, weightPhoneFormat, model.MethodNormalization))
		} else {
			flags = append(flags, "Phone validation failed: "+reason)
		}
	}

	if p.StreetAddress != "" || p.City != "" || p.State != "" || p.ZipCode != "" {
		if normalized, ok, reason := NormalizeAddress(p.StreetAddress, p.City, p.State, p.ZipCode); ok {
			evidence = append(evidence, model.NewEvidence(
				model.FieldAddress, SourceFormat, normalized, weightAddressFormat, model.MethodNormalization))
		} else {
			flags = append(flags, "Address validation failed: "+reason)
		}
	}

	if p.LicenseNumber != "" {
		ev, flag := v.checkLicense(ctx, p, log)
		evidence = append(evidence, ev...)
		if flag != "" {
			flags = append(flags, flag)
		}
	}

	return evidence, flags
}

// checkNPI runs format and checksum validation, then the registry
// cross-check when a client is available. Registry outages degrade to "no
// evidence from this source" without flagging the record.
func (v *Validator) checkNPI(ctx context.Context, rawNPI string, log *zap.Logger) ([]model.Evidence, string) {
	npi, ok, reason := CheckNPI(rawNPI)
	if !ok {
		return nil, "NPI validation failed: " + reason
	}

	if v.registry == nil {
		return nil, ""
	}

	rec, found, err := v.registry.Lookup(ctx, npi)
	if err != nil {
		log.Warn("validate: registry lookup degraded", zap.Error(err))
		return nil, ""
	}
	if !found {
		return nil, "NPI validation failed: NPI not found in registry"
	}

	ev := model.NewEvidence(model.FieldNPI, SourceRegistry, npi, v.registryWeight, model.MethodAPILookup).
		WithMetadata(map[string]any{
			"provider_name": rec.ProviderName,
			"taxonomy":      rec.Taxonomy,
		})
	return []model.Evidence{ev}, ""
}

// checkLicense validates the license format, then asks the issuing state's
// board when a client is available.
func (v *Validator) checkLicense(ctx context.Context, p model.Provider, log *zap.Logger) ([]model.Evidence, string) {
	normalized, ok, reason := NormalizeLicense(p.LicenseNumber, p.LicenseState)
	if !ok {
		return nil, "License validation failed: " + reason
	}

	evidence := []model.Evidence{
		model.NewEvidence(model.FieldLicense, SourceFormat, normalized, weightLicenseFormat, model.MethodNormalization),
	}

	if v.board == nil {
		return evidence, ""
	}

	board := registry.BoardFor(p.LicenseState)
	lic, found, err := v.board.VerifyLicense(ctx, normalized, p.LicenseState)
	if err != nil {
		log.Warn("validate: state board lookup degraded",
			zap.String("board", board.Name),
			zap.Error(err),
		)
		return evidence, ""
	}
	if !found {
		return evidence, "License validation failed: not found by " + board.Name
	}

	ev := model.NewEvidence(model.FieldLicense, SourceStateBoard, normalized, v.boardWeight, model.MethodAPILookup).
		WithMetadata(map[string]any{
			"board":      board.Name,
			"status":     lic.Status,
			"expiration": lic.Expiration,
		})
	return append(evidence, ev), ""
}
