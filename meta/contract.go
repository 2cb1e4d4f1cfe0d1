package meta

// ContractType enumerates the six built-in contract variants. The set is
// closed: dispatch is over this enum, not over user-supplied code.
type ContractType string

const (
	GreenwashingDetector  ContractType = "greenwashing_detector"
	SustainabilityRewards ContractType = "sustainability_rewards"
	AutomaticFlagging     ContractType = "automatic_flagging"
	PenaltySystem         ContractType = "penalty_system"
	VerificationBounty    ContractType = "verification_bounty"
	TransparencyTracker   ContractType = "transparency_tracker"
)

// ContractTypes lists every variant, in deployment order.
func ContractTypes() []ContractType {
	return []ContractType{
		GreenwashingDetector,
		SustainabilityRewards,
		AutomaticFlagging,
		PenaltySystem,
		VerificationBounty,
		TransparencyTracker,
	}
}

type ContractState string

const (
	StatePending  ContractState = "pending"
	StateActive   ContractState = "active"
	StateExecuted ContractState = "executed"
	StateFailed   ContractState = "failed"
)

// ExecutionRecord is one immutable entry of a contract's execution history.
type ExecutionRecord struct {
	ExecutionID   string                 `json:"execution_id"`
	Inputs        map[string]interface{} `json:"inputs"`
	Result        map[string]interface{} `json:"result"`
	GasUsed       uint64                 `json:"gas_used"`
	ExecutionTime float64                `json:"execution_time"`
	Timestamp     string                 `json:"timestamp"`
}

// ExecutionResult is the structured outcome of Contract.Execute. Exactly one
// of Result/Error is meaningful, selected by Success.
type ExecutionResult struct {
	Success       bool                   `json:"success"`
	ContractID    string                 `json:"contract_id"`
	ExecutionID   string                 `json:"execution_id,omitempty"`
	Result        map[string]interface{} `json:"result,omitempty"`
	Error         string                 `json:"error,omitempty"`
	GasUsed       uint64                 `json:"gas_used"`
	ExecutionTime float64                `json:"execution_time,omitempty"`
}

// VerificationExecution aggregates the contract fan-out for one verification.
type VerificationExecution struct {
	ContractsExecuted  int                        `json:"contracts_executed"`
	ContractResults    map[string]ExecutionResult `json:"contract_results"`
	AutomatedActions   []string                   `json:"automated_actions"`
	ExecutionTimestamp string                     `json:"execution_timestamp"`
}
