package contract

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cloudflare/cfssl/log"
	"github.com/greenguardV2/commoncon"
	"github.com/greenguardV2/meta"
	"github.com/greenguardV2/util"
)

// Contract is one deployed rule instance. It owns its execution bookkeeping;
// all mutation happens inside Execute under the contract's own mutex.
type Contract struct {
	mu sync.Mutex

	id            string
	ctype         meta.ContractType
	creator       string
	parameters    map[string]interface{}
	state         meta.ContractState
	createdAt     float64
	executedCount uint64
	totalGasUsed  uint64
	history       []meta.ExecutionRecord
}

// View is the externally visible snapshot of a contract.
type View struct {
	ID               string                 `json:"contract_id"`
	Type             meta.ContractType      `json:"contract_type"`
	Creator          string                 `json:"creator"`
	Parameters       map[string]interface{} `json:"parameters"`
	State            meta.ContractState     `json:"state"`
	CreatedAt        float64                `json:"created_at"`
	ExecutedCount    uint64                 `json:"executed_count"`
	TotalGasUsed     uint64                 `json:"total_gas_used"`
	ExecutionHistory []meta.ExecutionRecord `json:"execution_history"`
}

func newContract(id string, ctype meta.ContractType, creator string, parameters map[string]interface{}) *Contract {
	return &Contract{
		id:         id,
		ctype:      ctype,
		creator:    creator,
		parameters: parameters,
		state:      meta.StatePending,
		createdAt:  util.NowUnixFloat(),
	}
}

func (c *Contract) ID() string              { return c.id }
func (c *Contract) Type() meta.ContractType { return c.ctype }
func (c *Contract) Creator() string         { return c.creator }

func (c *Contract) State() meta.ContractState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Contract) ExecutedCount() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.executedCount
}

func (c *Contract) TotalGasUsed() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalGasUsed
}

func (c *Contract) History() []meta.ExecutionRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]meta.ExecutionRecord, len(c.history))
	copy(out, c.history)
	return out
}

func (c *Contract) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	history := make([]meta.ExecutionRecord, len(c.history))
	copy(history, c.history)
	return View{
		ID:               c.id,
		Type:             c.ctype,
		Creator:          c.creator,
		Parameters:       c.parameters,
		State:            c.state,
		CreatedAt:        c.createdAt,
		ExecutedCount:    c.executedCount,
		TotalGasUsed:     c.totalGasUsed,
		ExecutionHistory: history,
	}
}

// Execute runs the contract's evaluator over inputs and context. It never
// panics across this boundary: any failure inside the variant logic flips the
// contract to Failed and comes back as a structured failure result.
func (c *Contract) Execute(inputs, context map[string]interface{}) meta.ExecutionResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = meta.StateActive
	start := time.Now()

	eval, ok := evaluators[c.ctype]
	if !ok {
		return c.fail(fmt.Errorf("unknown contract type: %s", c.ctype))
	}
	result, err := runEvaluator(eval, inputs, context)
	if err != nil {
		return c.fail(err)
	}

	executionTime := time.Since(start).Seconds()
	gasUsed := calculateGasUsage(result, executionTime)

	c.state = meta.StateExecuted
	c.executedCount++
	c.totalGasUsed += gasUsed

	record := meta.ExecutionRecord{
		ExecutionID:   fmt.Sprintf("EXEC_%d_%d", time.Now().Unix(), c.executedCount),
		Inputs:        inputs,
		Result:        result,
		GasUsed:       gasUsed,
		ExecutionTime: executionTime,
		Timestamp:     util.NowISO(),
	}
	c.history = append(c.history, record)

	return meta.ExecutionResult{
		Success:       true,
		ContractID:    c.id,
		ExecutionID:   record.ExecutionID,
		Result:        result,
		GasUsed:       gasUsed,
		ExecutionTime: executionTime,
	}
}

func (c *Contract) fail(err error) meta.ExecutionResult {
	c.state = meta.StateFailed
	log.Errorf("contract execution failed: %v", err)
	return meta.ExecutionResult{
		Success:    false,
		ContractID: c.id,
		Error:      err.Error(),
		GasUsed:    commoncon.FailureGas,
	}
}

func runEvaluator(eval evaluator, inputs, context map[string]interface{}) (result map[string]interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("contract logic panicked: %v", r)
		}
	}()
	return eval(inputs, context)
}

// Gas charges a flat base plus the result size and the execution time.
func calculateGasUsage(result map[string]interface{}, executionTime float64) uint64 {
	resultBytes, err := json.Marshal(result)
	if err != nil {
		util.DealJsonErr("calculateGasUsage", err)
	}
	return uint64(commoncon.BaseGas) + uint64(len(resultBytes)/10) + uint64(executionTime*50)
}
