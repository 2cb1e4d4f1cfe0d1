package meta

// IntegrityReport is the outcome of a full-chain verification walk.
// FailedIndex is -1 when the chain is intact.
type IntegrityReport struct {
	Valid       bool   `json:"valid"`
	FailedIndex int    `json:"failed_index"`
	Reason      string `json:"reason,omitempty"`
}

type ContractStatistics struct {
	TotalContracts         int      `json:"total_contracts"`
	TotalExecutions        uint64   `json:"total_executions"`
	TotalGasUsed           uint64   `json:"total_gas_used"`
	AverageGasPerExecution float64  `json:"average_gas_per_execution"`
	ContractTypes          []string `json:"contract_types"`
	ActiveContracts        int      `json:"active_contracts"`
}

type ChainStatistics struct {
	TotalBlocks           int                `json:"total_blocks"`
	VerificationBlocks    int                `json:"verification_blocks"`
	ClaimAnalysisBlocks   int                `json:"claim_analysis_blocks"`
	CompaniesOnBlockchain int                `json:"companies_on_blockchain"`
	NetworkStatus         string             `json:"network_status"`
	ConsensusMechanism    string             `json:"consensus_mechanism"`
	HashAlgorithm         string             `json:"hash_algorithm"`
	Difficulty            int                `json:"difficulty"`
	ChainIntegrity        IntegrityReport    `json:"chain_integrity"`
	SmartContracts        ContractStatistics `json:"smart_contracts"`
	LastBlockTime         float64            `json:"last_block_time"`
	GenesisBlockHash      string             `json:"genesis_block_hash"`
	LatestBlockHash       string             `json:"latest_block_hash"`
}

// CompanyHistoryEntry is one verification seen on chain for a company,
// trimmed for listing (claim cut to 100 chars, hash abbreviated).
type CompanyHistoryEntry struct {
	Timestamp         string   `json:"timestamp"`
	VerificationScore float64  `json:"verification_score"`
	Status            string   `json:"status"`
	RiskLevel         string   `json:"risk_level"`
	Claim             string   `json:"claim"`
	BlockIndex        uint64   `json:"block_index"`
	BlockHash         string   `json:"block_hash"`
	AutomatedActions  []string `json:"automated_actions"`
}
