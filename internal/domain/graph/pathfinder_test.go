package graph

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-fund-tracer/internal/domain/entity"
)

func TestFindPathTwoHops(t *testing.T) {
	g, err := New([]entity.TransferRecord{
		transfer("tx1", "A", "B", "BTC", "0.05", "0.0001"),
		transfer("tx2", "B", "C", "BTC", "0.048", "0.0001"),
	})
	require.NoError(t, err)

	result, err := g.FindPath("A", "C")
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, result.PathNodes)
	assert.Equal(t, 2, result.TotalHops)
	require.Len(t, result.Hops, 2)
	assert.Equal(t, "tx1", result.Hops[0].TxID)
	assert.Equal(t, "tx2", result.Hops[1].TxID)
	assert.Equal(t, 1, result.Hops[0].Hop)
	assert.Equal(t, 2, result.Hops[1].Hop)
	assert.True(t, result.TotalFees.Equal(decimal.RequireFromString("0.0002")),
		"total fees = %s", result.TotalFees)
	assert.True(t, result.FinalAmount.Equal(decimal.RequireFromString("0.048")),
		"final amount = %s", result.FinalAmount)
}

func TestFindPathSourceEqualsTarget(t *testing.T) {
	g, err := New([]entity.TransferRecord{
		transfer("tx1", "A", "B", "BTC", "1", "0"),
	})
	require.NoError(t, err)

	result, err := g.FindPath("A", "A")
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalHops)
	assert.Empty(t, result.Hops)
	assert.Equal(t, []string{"A"}, result.PathNodes)
	assert.True(t, result.TotalFees.IsZero())
}

func TestFindPathUnknownSource(t *testing.T) {
	g, err := New([]entity.TransferRecord{
		transfer("tx1", "A", "B", "BTC", "1", "0"),
	})
	require.NoError(t, err)

	_, err = g.FindPath("Z", "B")

	var notFound *entity.WalletNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Z", notFound.Address)
}

func TestFindPathUnknownTarget(t *testing.T) {
	g, err := New([]entity.TransferRecord{
		transfer("tx1", "A", "B", "BTC", "1", "0"),
	})
	require.NoError(t, err)

	_, err = g.FindPath("A", "Z")

	var notFound *entity.WalletNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Z", notFound.Address)
}

func TestFindPathNoPathExists(t *testing.T) {
	// Both wallets present, but C only sends and A only receives from B.
	g, err := New([]entity.TransferRecord{
		transfer("tx1", "A", "B", "BTC", "1", "0"),
		transfer("tx2", "C", "D", "BTC", "1", "0"),
	})
	require.NoError(t, err)

	_, err = g.FindPath("A", "D")
	assert.ErrorIs(t, err, entity.ErrNoPathExists)
}

func TestFindPathPrefersEarlierInsertedEdges(t *testing.T) {
	// Two shortest paths A->X->C and A->Y->C; the edge to X was inserted
	// first, so the path through X must win regardless of amounts.
	g, err := New([]entity.TransferRecord{
		transfer("tx1", "A", "X", "BTC", "0.1", "0"),
		transfer("tx2", "A", "Y", "BTC", "99", "0"),
		transfer("tx3", "X", "C", "BTC", "0.1", "0"),
		transfer("tx4", "Y", "C", "BTC", "99", "0"),
	})
	require.NoError(t, err)

	result, err := g.FindPath("A", "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "X", "C"}, result.PathNodes)
}

func TestFindPathParallelEdgesUseFirstInserted(t *testing.T) {
	g, err := New([]entity.TransferRecord{
		transfer("tx1", "A", "B", "BTC", "1", "0.01"),
		transfer("tx2", "A", "B", "BTC", "2", "0.02"),
	})
	require.NoError(t, err)

	result, err := g.FindPath("A", "B")
	require.NoError(t, err)
	require.Len(t, result.Hops, 1)
	assert.Equal(t, "tx1", result.Hops[0].TxID)
}

func TestFindPathDoesNotChainAmounts(t *testing.T) {
	g, err := New([]entity.TransferRecord{
		transfer("tx1", "A", "B", "BTC", "10", "0.1"),
		transfer("tx2", "B", "C", "BTC", "3", "0.2"),
	})
	require.NoError(t, err)

	result, err := g.FindPath("A", "C")
	require.NoError(t, err)

	// The reported amount is the literal amount of the final hop, not a
	// compounded capital figure.
	assert.True(t, result.FinalAmount.Equal(decimal.RequireFromString("3")))
	assert.True(t, result.TotalFees.Equal(decimal.RequireFromString("0.3")))
}
