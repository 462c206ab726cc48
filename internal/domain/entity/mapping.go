package entity

// EntityMapping represents one wallet-to-entity mapping row from the
// cross-reference snapshot. Multiple rows may exist for the same wallet,
// sourced from different providers with different confidence.
type EntityMapping struct {
	WalletAddress string  `json:"wallet"`
	EntityName    string  `json:"entity"`
	EntityType    string  `json:"type"`
	Confidence    float64 `json:"confidence"`
	Source        string  `json:"source"`
}

// ConfidenceTier is a qualitative classification of a confidence score
type ConfidenceTier string

const (
	ConfidenceVeryHigh ConfidenceTier = "very_high"
	ConfidenceHigh     ConfidenceTier = "high"
	ConfidenceMedium   ConfidenceTier = "medium"
	ConfidenceLow      ConfidenceTier = "low"
	ConfidenceVeryLow  ConfidenceTier = "very_low"
)

// TierForConfidence classifies a confidence score into a qualitative tier
func TierForConfidence(confidence float64) ConfidenceTier {
	switch {
	case confidence >= 0.9:
		return ConfidenceVeryHigh
	case confidence >= 0.8:
		return ConfidenceHigh
	case confidence >= 0.6:
		return ConfidenceMedium
	case confidence >= 0.4:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// EntityResolution represents the single best mapping chosen for a wallet
type EntityResolution struct {
	WalletAddress string         `json:"wallet_address"`
	EntityName    string         `json:"entity"`
	EntityType    string         `json:"entity_type"`
	Confidence    float64        `json:"confidence_score"`
	Source        string         `json:"source"`
	Quality       ConfidenceTier `json:"resolution_quality"`
}

// EntitySearchResult represents all mapping rows whose entity name matched a
// search term, grouped by exact entity name. Rows are a raw listing and are
// not deduplicated.
type EntitySearchResult struct {
	SearchTerm    string                     `json:"search_term"`
	EntitiesFound int                        `json:"entities_found"`
	TotalWallets  int                        `json:"total_wallets"`
	Groups        map[string][]EntityMapping `json:"entity_wallet_mapping"`
}

// ConfidenceSearchResult represents mapping rows within an inclusive
// confidence range, sorted by descending confidence
type ConfidenceSearchResult struct {
	MinConfidence         float64         `json:"min_confidence"`
	MaxConfidence         float64         `json:"max_confidence"`
	TotalMappings         int             `json:"total_mappings"`
	HighConfidenceCount   int             `json:"high_confidence_count"`
	MediumConfidenceCount int             `json:"medium_confidence_count"`
	LowConfidenceCount    int             `json:"low_confidence_count"`
	AverageConfidence     float64         `json:"average_confidence"`
	Mappings              []EntityMapping `json:"mappings"`
}

// SourceStats represents aggregate confidence statistics for one mapping source
type SourceStats struct {
	Source         string  `json:"source"`
	MappingCount   int     `json:"mapping_count"`
	MeanConfidence float64 `json:"mean_confidence"`
	MinConfidence  float64 `json:"min_confidence"`
	MaxConfidence  float64 `json:"max_confidence"`
}

// SourceReliabilityReport ranks mapping sources by mean confidence, best first
type SourceReliabilityReport struct {
	TotalSources    int           `json:"total_sources"`
	Ranking         []SourceStats `json:"source_reliability_ranking"`
	Recommendations []string      `json:"recommendations"`
}

// TypeStats represents aggregate confidence statistics for one entity type
type TypeStats struct {
	EntityType     string  `json:"entity_type"`
	MappingCount   int     `json:"mapping_count"`
	MeanConfidence float64 `json:"mean_confidence"`
	MinConfidence  float64 `json:"min_confidence"`
	MaxConfidence  float64 `json:"max_confidence"`
}

// TypeSummaryReport represents the distribution of entity types across the
// cross-reference snapshot
type TypeSummaryReport struct {
	TotalMappings  int                        `json:"total_mappings"`
	UniqueEntities int                        `json:"unique_entities"`
	Types          []TypeStats                `json:"confidence_stats_by_type"`
	ExamplesByType map[string][]EntityMapping `json:"examples_by_type"`
}

// ValidationStatus classifies the comparison between a resolved entity and an
// analyst's expectation
type ValidationStatus string

const (
	ValidationNoMapping    ValidationStatus = "no_mapping"
	ValidationExactMatch   ValidationStatus = "exact_match"
	ValidationPartialMatch ValidationStatus = "partial_match"
	ValidationMismatch     ValidationStatus = "mismatch"
)

// ValidationResult represents the outcome of validating a wallet mapping
// against an expected entity. The actual resolved entity, its confidence and
// its source are always reported so a caller can judge whether a mismatch is
// a data-quality issue or a true conflict.
type ValidationResult struct {
	WalletAddress  string           `json:"wallet_address"`
	ExpectedEntity string           `json:"expected_entity"`
	ActualEntity   string           `json:"actual_entity,omitempty"`
	Status         ValidationStatus `json:"validation_status"`
	Confidence     float64          `json:"confidence"`
	Source         string           `json:"source,omitempty"`
	Message        string           `json:"message"`
	Quality        ConfidenceTier   `json:"quality_assessment,omitempty"`
}
