package meta

// block payload type tags
const (
	GenesisType       = "genesis"
	VerificationType  = "verification"
	ClaimAnalysisType = "claim_analysis"
)

// BlockData is the payload sealed into a block. The concrete types below are
// the only variants the ledger accepts.
type BlockData interface {
	PayloadType() string
}

type Block struct {
	Index     uint64    `json:"index"`
	Timestamp float64   `json:"timestamp"`
	Data      BlockData `json:"data"`
	PrevHash  string    `json:"previous_hash"`
	Nonce     uint64    `json:"nonce"`
	Hash      string    `json:"hash"`
}

type GenesisData struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

func (GenesisData) PayloadType() string { return GenesisType }

// VerificationData is the canonical ledger record of one company verification.
// Free-text fields arrive pre-truncated (claim 1000 chars, evidence 500).
type VerificationData struct {
	Type                   string   `json:"type"`
	CompanyName            string   `json:"company_name"`
	Claim                  string   `json:"claim"`
	VerificationScore      float64  `json:"verification_score"`
	Status                 string   `json:"status"`
	RiskLevel              string   `json:"risk_level"`
	EvidenceSummary        string   `json:"evidence_summary"`
	UserEmail              string   `json:"user_email"`
	ClientIP               string   `json:"client_ip"`
	Timestamp              string   `json:"timestamp"`
	Version                string   `json:"version"`
	SmartContractsExecuted int      `json:"smart_contracts_executed"`
	AutomatedActions       []string `json:"automated_actions"`
}

func (VerificationData) PayloadType() string { return VerificationType }

// ClaimAnalysisData is the ledger record of one website/content claim scan.
type ClaimAnalysisData struct {
	Type                string   `json:"type"`
	Content             string   `json:"content"`
	ClaimsCount         int      `json:"claims_count"`
	URL                 string   `json:"url"`
	AnalysisType        string   `json:"analysis_type"`
	EnvironmentalClaims []string `json:"environmental_claims"`
	UserEmail           string   `json:"user_email"`
	ClientIP            string   `json:"client_ip"`
	Timestamp           string   `json:"timestamp"`
	ProcessingTime      float64  `json:"processing_time"`
}

func (ClaimAnalysisData) PayloadType() string { return ClaimAnalysisType }
