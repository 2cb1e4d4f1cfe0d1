package contract

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cloudflare/cfssl/log"
	"github.com/greenguardV2/commoncon"
	"github.com/greenguardV2/meta"
	"github.com/greenguardV2/util"
)

// Registry owns every deployed contract, indexed by id and by type (latest
// deployment of a type wins the type index).
type Registry struct {
	mu        sync.Mutex
	contracts map[string]*Contract
	latest    map[meta.ContractType]string
	seq       uint64
}

func NewRegistry() *Registry {
	return &Registry{
		contracts: make(map[string]*Contract),
		latest:    make(map[meta.ContractType]string),
	}
}

// Deploy creates a Pending contract and returns its id.
func (r *Registry) Deploy(ctype meta.ContractType, creator string, parameters map[string]interface{}) (string, error) {
	if !KnownType(ctype) {
		return "", fmt.Errorf("unknown contract type: %s", ctype)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := fmt.Sprintf("SC_%s_%d", ctype, time.Now().Unix())
	if _, taken := r.contracts[id]; taken {
		r.seq++
		id = fmt.Sprintf("%s_%d", id, r.seq)
	}
	c := newContract(id, ctype, creator, parameters)
	r.contracts[id] = c
	r.latest[ctype] = id
	log.Infof("smart contract deployed: %s (%s)", id, ctype)
	return id, nil
}

// DeployDefaults installs one contract of every variant under the system
// creator, matching the stock deployment set.
func (r *Registry) DeployDefaults() {
	defaults := []struct {
		ctype  meta.ContractType
		params map[string]interface{}
	}{
		{meta.GreenwashingDetector, map[string]interface{}{"sensitivity": 0.7}},
		{meta.SustainabilityRewards, map[string]interface{}{"max_points": 1000}},
		{meta.AutomaticFlagging, map[string]interface{}{"threshold": 50}},
		{meta.PenaltySystem, map[string]interface{}{"max_penalty": 1000}},
		{meta.VerificationBounty, map[string]interface{}{"max_bounty": 200}},
		{meta.TransparencyTracker, map[string]interface{}{"update_frequency": "weekly"}},
	}
	for _, d := range defaults {
		if _, err := r.Deploy(d.ctype, commoncon.SystemCreator, d.params); err != nil {
			log.Errorf("default deployment failed for %s: %v", d.ctype, err)
		}
	}
}

func (r *Registry) Get(id string) (*Contract, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contracts[id]
	return c, ok
}

// GetByType returns the latest deployed contract of the given type.
func (r *Registry) GetByType(ctype meta.ContractType) (*Contract, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.latest[ctype]
	if !ok {
		return nil, false
	}
	c, ok := r.contracts[id]
	return c, ok
}

func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.contracts)
}

func (r *Registry) all() []*Contract {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Contract, 0, len(r.contracts))
	for _, c := range r.contracts {
		out = append(out, c)
	}
	return out
}

// Reset drops every contract. Test use only.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contracts = make(map[string]*Contract)
	r.latest = make(map[meta.ContractType]string)
	log.Warning("contract registry reset")
}

// ExecuteVerificationContracts fans a verification event out to the detector,
// flagging and rewards contracts, collecting every triggered action.
func (r *Registry) ExecuteVerificationContracts(verificationData map[string]interface{}) meta.VerificationExecution {
	fanout := []struct {
		key   string
		ctype meta.ContractType
	}{
		{"greenwashing_detection", meta.GreenwashingDetector},
		{"automatic_flagging", meta.AutomaticFlagging},
		{"sustainability_rewards", meta.SustainabilityRewards},
	}

	results := make(map[string]meta.ExecutionResult)
	actionSet := make(map[string]struct{})
	for _, f := range fanout {
		c, ok := r.GetByType(f.ctype)
		if !ok {
			continue
		}
		res := c.Execute(verificationData, map[string]interface{}{})
		results[f.key] = res
		if !res.Success {
			continue
		}
		for _, key := range []string{"actions_triggered", "consequences", "flags_triggered", "special_rewards"} {
			for _, action := range getStrings(res.Result, key) {
				actionSet[action] = struct{}{}
			}
		}
	}

	actions := make([]string, 0, len(actionSet))
	for a := range actionSet {
		actions = append(actions, a)
	}
	sort.Strings(actions)

	return meta.VerificationExecution{
		ContractsExecuted:  len(results),
		ContractResults:    results,
		AutomatedActions:   actions,
		ExecutionTimestamp: util.NowISO(),
	}
}

// Statistics folds the registry's bookkeeping into one snapshot.
func (r *Registry) Statistics() meta.ContractStatistics {
	contracts := r.all()

	var totalExecutions, totalGas uint64
	active := 0
	for _, c := range contracts {
		totalExecutions += c.ExecutedCount()
		totalGas += c.TotalGasUsed()
		if c.State() == meta.StateActive {
			active++
		}
	}
	avg := 0.0
	if totalExecutions > 0 {
		avg = float64(totalGas) / float64(totalExecutions)
	}

	types := make([]string, 0, len(meta.ContractTypes()))
	for _, t := range meta.ContractTypes() {
		types = append(types, string(t))
	}

	return meta.ContractStatistics{
		TotalContracts:         len(contracts),
		TotalExecutions:        totalExecutions,
		TotalGasUsed:           totalGas,
		AverageGasPerExecution: avg,
		ContractTypes:          types,
		ActiveContracts:        active,
	}
}
