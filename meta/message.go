package meta

// HttpResponse is the uniform reply envelope of the client API.
type HttpResponse struct {
	Error string      `json:"error"` // non-empty means failure
	Data  interface{} `json:"data"`
	Code  int         `json:"code"`
}

// PostVerification is a collaborator-submitted verification event.
type PostVerification struct {
	CompanyName       string  `json:"company_name"`
	Claim             string  `json:"claim"`
	VerificationScore float64 `json:"verification_score"`
	Confidence        float64 `json:"confidence"`
	Status            string  `json:"status"`
	RiskLevel         string  `json:"risk_level"`
	EvidenceSummary   string  `json:"evidence_summary"`
	UserEmail         string  `json:"user_email"`
	Version           string  `json:"version"`
}

// PostClaimAnalysis is a collaborator-submitted claim-analysis result.
type PostClaimAnalysis struct {
	Content             string   `json:"content"`
	ClaimsCount         int      `json:"claims_count"`
	URL                 string   `json:"url"`
	AnalysisType        string   `json:"analysis_type"`
	EnvironmentalClaims []string `json:"environmental_claims"`
	UserEmail           string   `json:"user_email"`
	ProcessingTime      float64  `json:"processing_time"`
}

// PostContract deploys a contract of one of the built-in types.
type PostContract struct {
	ContractType string                 `json:"contract_type"`
	Creator      string                 `json:"creator"`
	Parameters   map[string]interface{} `json:"parameters"`
}

// PostExecution invokes a single contract manually.
type PostExecution struct {
	ContractType string                 `json:"contract_type"`
	ContractID   string                 `json:"contract_id"`
	Inputs       map[string]interface{} `json:"inputs"`
	Context      map[string]interface{} `json:"context"`
}
