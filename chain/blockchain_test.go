package chain

import (
	"strings"
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/greenguardV2/meta"
)

func verificationData(company string, score float64) meta.VerificationData {
	return meta.VerificationData{
		Type:              meta.VerificationType,
		CompanyName:       company,
		Claim:             "100% renewable energy",
		VerificationScore: score,
		Status:            "verified",
		UserEmail:         "test@example.com",
	}
}

func TestGenesisAutoSeed(t *testing.T) {
	bc := NewBlockChain(2, 0)
	require.EqualValues(t, 1, bc.Len())

	genesis, ok := bc.GetBlockByIndex(0)
	require.True(t, ok)
	require.EqualValues(t, 0, genesis.Index)
	require.Equal(t, "0", genesis.PrevHash)
	require.Equal(t, meta.GenesisType, genesis.Data.PayloadType())
	require.Equal(t, genesis.Hash, bc.LastHash())
}

func TestAddBlockLinksAndSeals(t *testing.T) {
	bc := NewBlockChain(2, 0)
	for i := 0; i < 3; i++ {
		id, err := bc.AddBlock(verificationData("TestCorp", 85))
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(id, "BLOCK_"))
	}

	blocks := bc.Blocks()
	require.Len(t, blocks, 4)
	for i := 1; i < len(blocks); i++ {
		require.Equal(t, blocks[i-1].Hash, blocks[i].PrevHash, "link broken at %d", i)
		require.True(t, strings.HasPrefix(blocks[i].Hash, "00"), "difficulty not met at %d", i)

		recomputed, err := sealHash(blocks[i])
		require.NoError(t, err)
		require.Equal(t, blocks[i].Hash, recomputed, "seal not reproducible at %d", i)
	}

	report := bc.VerifyIntegrity()
	require.True(t, report.Valid)
	require.Equal(t, -1, report.FailedIndex)
}

func TestVerifyIntegrityIsIdempotent(t *testing.T) {
	bc := NewBlockChain(2, 0)
	_, err := bc.AddBlock(verificationData("TestCorp", 60))
	require.NoError(t, err)

	first := bc.VerifyIntegrity()
	second := bc.VerifyIntegrity()
	require.Equal(t, first, second)
	require.True(t, second.Valid)
}

func TestTamperedBlockIsDetected(t *testing.T) {
	bc := NewBlockChain(2, 0)
	for i := 0; i < 3; i++ {
		_, err := bc.AddBlock(verificationData("TamperCorp", 40))
		require.NoError(t, err)
	}
	require.True(t, bc.VerifyIntegrity().Valid)

	bc.blocks[1].Nonce++
	report := bc.VerifyIntegrity()
	require.False(t, report.Valid)
	require.Equal(t, 1, report.FailedIndex)
	spew.Dump(report)

	bc.blocks[1].Nonce--
	require.True(t, bc.VerifyIntegrity().Valid)

	bc.blocks[2].PrevHash = "00deadbeef"
	report = bc.VerifyIntegrity()
	require.False(t, report.Valid)
	require.Equal(t, 2, report.FailedIndex)
}

func TestTamperedPayloadIsDetected(t *testing.T) {
	bc := NewBlockChain(2, 0)
	_, err := bc.AddBlock(verificationData("HonestCorp", 90))
	require.NoError(t, err)

	d := bc.blocks[1].Data.(meta.VerificationData)
	d.VerificationScore = 10
	bc.blocks[1].Data = d

	report := bc.VerifyIntegrity()
	require.False(t, report.Valid)
	require.Equal(t, 1, report.FailedIndex)
}

func TestMiningTimeoutLeavesChainUntouched(t *testing.T) {
	// 64 leading zeros cannot be found in 4 attempts.
	bc := NewBlockChain(64, 4)
	before := bc.Len()

	id, err := bc.AddBlock(verificationData("SlowCorp", 50))
	require.ErrorIs(t, err, ErrMiningTimeout)
	require.Empty(t, id)
	require.Equal(t, before, bc.Len())
	require.True(t, bc.VerifyIntegrity().Valid)
}

func TestGetBlockByID(t *testing.T) {
	bc := NewBlockChain(2, 0)
	id, err := bc.AddBlock(verificationData("LookupCorp", 70))
	require.NoError(t, err)

	block, ok := bc.GetBlock(id)
	require.True(t, ok)
	require.EqualValues(t, 1, block.Index)

	_, ok = bc.GetBlock("BLOCK_99_0")
	require.False(t, ok)
}

func TestConcurrentAppends(t *testing.T) {
	bc := NewBlockChain(2, 0)
	const workers = 8
	const perWorker = 4

	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := bc.AddBlock(verificationData("RaceCorp", 55)); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent append failed: %v", err)
	}

	blocks := bc.Blocks()
	require.Len(t, blocks, workers*perWorker+1)
	for i, b := range blocks {
		require.EqualValues(t, i, b.Index, "indices must be contiguous")
	}
	require.True(t, bc.VerifyIntegrity().Valid)
}

func TestReset(t *testing.T) {
	bc := NewBlockChain(2, 0)
	_, err := bc.AddBlock(verificationData("GoneCorp", 10))
	require.NoError(t, err)
	require.EqualValues(t, 2, bc.Len())

	bc.Reset()
	require.EqualValues(t, 1, bc.Len())
	require.Equal(t, "0", bc.Blocks()[0].PrevHash)
}
