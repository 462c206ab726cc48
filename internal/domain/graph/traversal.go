package graph

import (
	"crypto-fund-tracer/internal/domain/entity"
)

// TraceOutward performs a breadth-first expansion over outgoing edges,
// limited to maxDepth hops from the start wallet. Every edge within the
// explored radius is recorded and tagged with its traversal depth; each
// wallet is assigned the depth at which it was first reached.
func (g *Graph) TraceOutward(start string, maxDepth int) (*entity.TraceResult, error) {
	return g.traverse(start, maxDepth, entity.TraceOutward)
}

// TraceInward is the reverse traversal: it follows incoming edges to find
// the wallets that fed the start wallet, up to maxDepth hops back.
func (g *Graph) TraceInward(start string, maxDepth int) (*entity.TraceResult, error) {
	return g.traverse(start, maxDepth, entity.TraceInward)
}

func (g *Graph) traverse(start string, maxDepth int, dir entity.TraceDirection) (*entity.TraceResult, error) {
	if !g.HasWallet(start) {
		return nil, &entity.WalletNotFoundError{Address: start}
	}

	// visited maps wallet to the minimum depth at which it was reached. A
	// depth map rather than a boolean set: a wallet rediscovered at greater
	// depth keeps its first-visit depth and is never re-expanded.
	visited := map[string]int{start: 0}
	discovered := make([]string, 0)
	queue := []string{start}
	var edges []entity.TraceEdge

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		depth := visited[current]
		if depth >= maxDepth {
			continue
		}

		var idxs []int
		if dir == entity.TraceOutward {
			idxs = g.outgoing[current]
		} else {
			idxs = g.incoming[current]
		}

		for _, ei := range idxs {
			edge := g.edges[ei]
			neighbor := edge.ToAddress
			if dir == entity.TraceInward {
				neighbor = edge.FromAddress
			}

			edges = append(edges, entity.TraceEdge{
				FromAddress: edge.FromAddress,
				ToAddress:   edge.ToAddress,
				Depth:       depth + 1,
				Asset:       edge.Asset,
				Amount:      edge.Amount,
				Fee:         edge.Fee,
				TxID:        edge.TxID,
				Timestamp:   edge.Timestamp,
				Notes:       edge.Notes,
			})

			if _, seen := visited[neighbor]; !seen {
				visited[neighbor] = depth + 1
				discovered = append(discovered, neighbor)
				queue = append(queue, neighbor)
			}
		}
	}

	walletsByDepth := make(map[int][]string)
	for _, wallet := range discovered {
		d := visited[wallet]
		walletsByDepth[d] = append(walletsByDepth[d], wallet)
	}

	return &entity.TraceResult{
		StartWallet:         start,
		Direction:           dir,
		MaxDepth:            maxDepth,
		TotalEdges:          len(edges),
		TotalWalletsReached: len(discovered),
		WalletsByDepth:      walletsByDepth,
		Edges:               edges,
		ReachableWallets:    discovered,
	}, nil
}
