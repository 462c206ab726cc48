package xref

import (
	"fmt"
	"sort"
	"strings"

	"crypto-fund-tracer/internal/domain/entity"
)

// Resolver answers entity-resolution queries over an immutable snapshot of
// wallet-to-entity mapping rows. Rows are kept in source-file order; multiple
// rows for the same wallet are never merged. Confidence values are taken as
// provided and not re-validated against [0,1].
type Resolver struct {
	mappings []entity.EntityMapping
	byWallet map[string][]int
}

// NewResolver indexes an ordered sequence of mapping rows
func NewResolver(mappings []entity.EntityMapping) *Resolver {
	r := &Resolver{
		mappings: mappings,
		byWallet: make(map[string][]int),
	}
	for i, m := range mappings {
		r.byWallet[m.WalletAddress] = append(r.byWallet[m.WalletAddress], i)
	}
	return r
}

// Resolve picks the single best mapping for a wallet. When multiple rows
// exist, the row with the strictly greatest confidence wins; on a tie the
// first such row in source-file order is kept. Returns NotMappedError when
// no row exists for the address.
func (r *Resolver) Resolve(walletAddress string) (*entity.EntityResolution, error) {
	idxs := r.byWallet[walletAddress]
	if len(idxs) == 0 {
		return nil, &entity.NotMappedError{WalletAddress: walletAddress}
	}

	best := r.mappings[idxs[0]]
	for _, i := range idxs[1:] {
		if r.mappings[i].Confidence > best.Confidence {
			best = r.mappings[i]
		}
	}

	return &entity.EntityResolution{
		WalletAddress: walletAddress,
		EntityName:    best.EntityName,
		EntityType:    best.EntityType,
		Confidence:    best.Confidence,
		Source:        best.Source,
		Quality:       entity.TierForConfidence(best.Confidence),
	}, nil
}

// FindByEntity lists every mapping row whose entity name contains the search
// term, case-insensitively, grouped by exact entity name. Unlike Resolve this
// is intentionally a raw listing: rows are not deduplicated or ranked.
func (r *Resolver) FindByEntity(nameSubstring string) *entity.EntitySearchResult {
	needle := strings.ToLower(nameSubstring)

	groups := make(map[string][]entity.EntityMapping)
	total := 0
	for _, m := range r.mappings {
		if !strings.Contains(strings.ToLower(m.EntityName), needle) {
			continue
		}
		groups[m.EntityName] = append(groups[m.EntityName], m)
		total++
	}

	return &entity.EntitySearchResult{
		SearchTerm:    nameSubstring,
		EntitiesFound: len(groups),
		TotalWallets:  total,
		Groups:        groups,
	}
}

// SearchByConfidence filters the raw mapping rows to an inclusive confidence
// range, sorted by descending confidence. Rows with equal confidence keep
// their source-file order. Counts are bucketed at >=0.8 (high), [0.5,0.8)
// (medium) and <0.5 (low).
func (r *Resolver) SearchByConfidence(min, max float64) *entity.ConfidenceSearchResult {
	result := &entity.ConfidenceSearchResult{
		MinConfidence: min,
		MaxConfidence: max,
	}

	sum := 0.0
	for _, m := range r.mappings {
		if m.Confidence < min || m.Confidence > max {
			continue
		}
		result.Mappings = append(result.Mappings, m)
		sum += m.Confidence
		switch {
		case m.Confidence >= 0.8:
			result.HighConfidenceCount++
		case m.Confidence >= 0.5:
			result.MediumConfidenceCount++
		default:
			result.LowConfidenceCount++
		}
	}

	sort.SliceStable(result.Mappings, func(i, j int) bool {
		return result.Mappings[i].Confidence > result.Mappings[j].Confidence
	})

	result.TotalMappings = len(result.Mappings)
	if result.TotalMappings > 0 {
		result.AverageConfidence = sum / float64(result.TotalMappings)
	}
	return result
}

// SourceReliability groups all mapping rows by source, computes mean, min and
// max confidence per source and ranks sources by mean confidence descending.
// Mean ties are broken by source name ascending so the ranking is
// deterministic. Advisory text is emitted for the best source and for any
// source whose mean falls more than 0.3 below the best or below 0.6 absolute.
func (r *Resolver) SourceReliability() *entity.SourceReliabilityReport {
	type acc struct {
		count         int
		sum, min, max float64
	}
	accs := make(map[string]*acc)
	for _, m := range r.mappings {
		a, ok := accs[m.Source]
		if !ok {
			a = &acc{min: m.Confidence, max: m.Confidence}
			accs[m.Source] = a
		}
		a.count++
		a.sum += m.Confidence
		if m.Confidence < a.min {
			a.min = m.Confidence
		}
		if m.Confidence > a.max {
			a.max = m.Confidence
		}
	}

	report := &entity.SourceReliabilityReport{TotalSources: len(accs)}
	for source, a := range accs {
		report.Ranking = append(report.Ranking, entity.SourceStats{
			Source:         source,
			MappingCount:   a.count,
			MeanConfidence: a.sum / float64(a.count),
			MinConfidence:  a.min,
			MaxConfidence:  a.max,
		})
	}
	sort.Slice(report.Ranking, func(i, j int) bool {
		if report.Ranking[i].MeanConfidence != report.Ranking[j].MeanConfidence {
			return report.Ranking[i].MeanConfidence > report.Ranking[j].MeanConfidence
		}
		return report.Ranking[i].Source < report.Ranking[j].Source
	})

	if len(report.Ranking) == 0 {
		return report
	}

	best := report.Ranking[0]
	report.Recommendations = append(report.Recommendations,
		fmt.Sprintf("Most reliable source: '%s' (avg confidence %.3f)", best.Source, best.MeanConfidence))

	for _, stats := range report.Ranking {
		gap := best.MeanConfidence - stats.MeanConfidence
		switch {
		case gap > 0.3:
			report.Recommendations = append(report.Recommendations,
				fmt.Sprintf("Consider reviewing mappings from '%s': avg confidence %.3f is %.3f below the best source",
					stats.Source, stats.MeanConfidence, gap))
		case stats.MeanConfidence < 0.6:
			report.Recommendations = append(report.Recommendations,
				fmt.Sprintf("Source '%s' has low average confidence (%.3f), mappings may need verification",
					stats.Source, stats.MeanConfidence))
		}
	}

	return report
}

// TypeSummary reports the distribution of entity types across the snapshot,
// with per-type confidence statistics and up to three example rows per type.
func (r *Resolver) TypeSummary() *entity.TypeSummaryReport {
	type acc struct {
		count         int
		sum, min, max float64
	}
	accs := make(map[string]*acc)
	examples := make(map[string][]entity.EntityMapping)
	entities := make(map[string]struct{})

	for _, m := range r.mappings {
		entities[m.EntityName] = struct{}{}
		a, ok := accs[m.EntityType]
		if !ok {
			a = &acc{min: m.Confidence, max: m.Confidence}
			accs[m.EntityType] = a
		}
		a.count++
		a.sum += m.Confidence
		if m.Confidence < a.min {
			a.min = m.Confidence
		}
		if m.Confidence > a.max {
			a.max = m.Confidence
		}
		if len(examples[m.EntityType]) < 3 {
			examples[m.EntityType] = append(examples[m.EntityType], m)
		}
	}

	report := &entity.TypeSummaryReport{
		TotalMappings:  len(r.mappings),
		UniqueEntities: len(entities),
		ExamplesByType: examples,
	}
	for entityType, a := range accs {
		report.Types = append(report.Types, entity.TypeStats{
			EntityType:     entityType,
			MappingCount:   a.count,
			MeanConfidence: a.sum / float64(a.count),
			MinConfidence:  a.min,
			MaxConfidence:  a.max,
		})
	}
	sort.Slice(report.Types, func(i, j int) bool {
		if report.Types[i].MappingCount != report.Types[j].MappingCount {
			return report.Types[i].MappingCount > report.Types[j].MappingCount
		}
		return report.Types[i].EntityType < report.Types[j].EntityType
	})

	return report
}
