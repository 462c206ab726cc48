package xref

import (
	"fmt"
	"strings"

	"crypto-fund-tracer/internal/domain/entity"
)

// Validator compares resolved wallet mappings against analyst expectations
type Validator struct {
	resolver *Resolver
}

// NewValidator creates a validator backed by the given resolver
func NewValidator(resolver *Resolver) *Validator {
	return &Validator{resolver: resolver}
}

// Validate compares the best resolved entity for a wallet against the
// analyst's expected entity, case-insensitively. Exact equality yields
// exact_match, a substring relation in either direction yields partial_match,
// anything else is a mismatch. An unmapped wallet yields no_mapping with
// confidence 0. The result is always a classification, never an error.
func (v *Validator) Validate(walletAddress, expectedEntity string) *entity.ValidationResult {
	result := &entity.ValidationResult{
		WalletAddress:  walletAddress,
		ExpectedEntity: expectedEntity,
	}

	resolution, err := v.resolver.Resolve(walletAddress)
	if err != nil {
		result.Status = entity.ValidationNoMapping
		result.Message = fmt.Sprintf("No mapping found for wallet %s", walletAddress)
		return result
	}

	result.ActualEntity = resolution.EntityName
	result.Confidence = resolution.Confidence
	result.Source = resolution.Source
	result.Quality = resolution.Quality

	actual := strings.ToLower(resolution.EntityName)
	expected := strings.ToLower(expectedEntity)

	switch {
	case actual == expected:
		result.Status = entity.ValidationExactMatch
		result.Message = fmt.Sprintf("Wallet correctly mapped to %s", resolution.EntityName)
	case strings.Contains(actual, expected) || strings.Contains(expected, actual):
		result.Status = entity.ValidationPartialMatch
		result.Message = fmt.Sprintf("Partial match: expected '%s', found '%s'", expectedEntity, resolution.EntityName)
	default:
		result.Status = entity.ValidationMismatch
		result.Message = fmt.Sprintf("Mismatch: expected '%s', but mapped to '%s'", expectedEntity, resolution.EntityName)
	}

	return result
}
