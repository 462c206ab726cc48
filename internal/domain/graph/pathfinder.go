package graph

import (
	"github.com/shopspring/decimal"

	"crypto-fund-tracer/internal/domain/entity"
)

// FindPath performs an unweighted breadth-first search from source to target
// over outgoing edges. Nodes are expanded in the order their edges were
// inserted, so among multiple shortest paths the one discovered by visiting
// outgoing edges in original record order wins. The tie-break is insertion
// order, never amount or fee.
//
// Returns WalletNotFoundError if either address is absent from the graph and
// ErrNoPathExists if both are present but unreachable. When source equals
// target the result is a zero-hop path.
func (g *Graph) FindPath(source, target string) (*entity.PathResult, error) {
	if !g.HasWallet(source) {
		return nil, &entity.WalletNotFoundError{Address: source}
	}
	if !g.HasWallet(target) {
		return nil, &entity.WalletNotFoundError{Address: target}
	}

	// parent holds the edge index used to first discover each wallet
	parent := make(map[string]int)
	visited := map[string]bool{source: true}
	queue := []string{source}
	found := source == target

	for len(queue) > 0 && !found {
		current := queue[0]
		queue = queue[1:]

		for _, ei := range g.outgoing[current] {
			edge := g.edges[ei]
			if visited[edge.ToAddress] {
				continue
			}
			visited[edge.ToAddress] = true
			parent[edge.ToAddress] = ei
			if edge.ToAddress == target {
				found = true
				break
			}
			queue = append(queue, edge.ToAddress)
		}
	}

	if !found {
		return nil, entity.ErrNoPathExists
	}

	// Walk parent edges back from the target to recover the hop sequence.
	var reversed []entity.TransferRecord
	for current := target; current != source; {
		edge := g.edges[parent[current]]
		reversed = append(reversed, edge)
		current = edge.FromAddress
	}

	result := &entity.PathResult{
		Source:      source,
		Target:      target,
		PathNodes:   []string{source},
		TotalHops:   len(reversed),
		TotalFees:   decimal.Zero,
		FinalAmount: decimal.Zero,
		Hops:        make([]entity.PathHop, 0, len(reversed)),
	}

	for i := len(reversed) - 1; i >= 0; i-- {
		edge := reversed[i]
		hop := entity.PathHop{
			Hop:         len(result.Hops) + 1,
			FromAddress: edge.FromAddress,
			ToAddress:   edge.ToAddress,
			Asset:       edge.Asset,
			Amount:      edge.Amount,
			Fee:         edge.Fee,
			TxID:        edge.TxID,
			Timestamp:   edge.Timestamp,
			Notes:       edge.Notes,
		}
		result.Hops = append(result.Hops, hop)
		result.PathNodes = append(result.PathNodes, edge.ToAddress)
		result.TotalFees = result.TotalFees.Add(edge.Fee)
		result.FinalAmount = edge.Amount
	}

	return result, nil
}
