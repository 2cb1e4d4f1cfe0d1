package stats

import (
	"sort"
	"strings"

	"github.com/greenguardV2/chain"
	"github.com/greenguardV2/commoncon"
	"github.com/greenguardV2/contract"
	"github.com/greenguardV2/meta"
	"github.com/greenguardV2/util"
)

// Company names that carry no identity and are excluded from the distinct
// company count.
var placeholderCompanies = []string{"unknown", "", "none", "anonymous"}

// Aggregator computes derived views over the ledger and the registry. Every
// query recomputes from current state; nothing is cached across mutations.
type Aggregator struct {
	chain    *chain.BlockChain
	registry *contract.Registry
}

func NewAggregator(bc *chain.BlockChain, registry *contract.Registry) *Aggregator {
	return &Aggregator{chain: bc, registry: registry}
}

func (a *Aggregator) ChainStatistics() meta.ChainStatistics {
	blocks := a.chain.Blocks()

	verificationBlocks := 0
	claimBlocks := 0
	companies := make(map[string]struct{})
	for _, b := range blocks {
		switch d := b.Data.(type) {
		case meta.VerificationData:
			verificationBlocks++
			name := strings.ToLower(strings.TrimSpace(d.CompanyName))
			if !util.Contains(placeholderCompanies, name) {
				companies[name] = struct{}{}
			}
		case meta.ClaimAnalysisData:
			claimBlocks++
		}
	}

	stats := meta.ChainStatistics{
		TotalBlocks:           len(blocks),
		VerificationBlocks:    verificationBlocks,
		ClaimAnalysisBlocks:   claimBlocks,
		CompaniesOnBlockchain: len(companies),
		NetworkStatus:         "operational",
		ConsensusMechanism:    commoncon.ConsensusMechanism,
		HashAlgorithm:         commoncon.HashAlgorithm,
		Difficulty:            a.chain.Difficulty(),
		ChainIntegrity:        a.chain.VerifyIntegrity(),
		SmartContracts:        a.registry.Statistics(),
	}
	if len(blocks) > 0 {
		stats.LastBlockTime = blocks[len(blocks)-1].Timestamp
		stats.GenesisBlockHash = blocks[0].Hash
		stats.LatestBlockHash = blocks[len(blocks)-1].Hash
	}
	return stats
}

// CompanyHistory lists every verification recorded for a company, newest
// first. The name match is case-insensitive.
func (a *Aggregator) CompanyHistory(companyName string) []meta.CompanyHistoryEntry {
	want := strings.ToLower(companyName)
	entries := []meta.CompanyHistoryEntry{}
	for _, b := range a.chain.Blocks() {
		d, ok := b.Data.(meta.VerificationData)
		if !ok || strings.ToLower(d.CompanyName) != want {
			continue
		}
		entries = append(entries, meta.CompanyHistoryEntry{
			Timestamp:         d.Timestamp,
			VerificationScore: d.VerificationScore,
			Status:            d.Status,
			RiskLevel:         d.RiskLevel,
			Claim:             util.Truncate(d.Claim, 100),
			BlockIndex:        b.Index,
			BlockHash:         util.Truncate(b.Hash, 16) + "...",
			AutomatedActions:  d.AutomatedActions,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries
}

// TotalExecutions is the sum of executed_count over all contracts.
func (a *Aggregator) TotalExecutions() uint64 {
	return a.registry.Statistics().TotalExecutions
}
