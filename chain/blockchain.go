package chain

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cloudflare/cfssl/log"
	"github.com/greenguardV2/commoncon"
	"github.com/greenguardV2/meta"
	"github.com/greenguardV2/util"
)

// ErrMiningTimeout reports that the nonce search hit its attempt bound.
// The chain is left untouched.
var ErrMiningTimeout = errors.New("mining attempt bound exceeded")

// BlockChain is an append-only, hash-linked, proof-of-work sealed ledger.
// Construct one per system instance and share it by reference; all mutation
// is serialized through its mutex.
type BlockChain struct {
	mu          sync.Mutex
	blocks      []meta.Block
	difficulty  int
	maxAttempts uint64
}

func NewBlockChain(difficulty int, maxAttempts uint64) *BlockChain {
	if difficulty <= 0 {
		difficulty = commoncon.Difficulty
	}
	if maxAttempts == 0 {
		maxAttempts = commoncon.DefaultMaxMineAttempts
	}
	bc := &BlockChain{
		difficulty:  difficulty,
		maxAttempts: maxAttempts,
	}
	bc.blocks = append(bc.blocks, generateGenesisBlock())
	log.Info("blockchain initialized with genesis block")
	return bc
}

// The genesis block is seeded from a fixed literal rather than mined;
// integrity verification starts from block 1.
func generateGenesisBlock() meta.Block {
	return meta.Block{
		Index:     0,
		Timestamp: util.NowUnixFloat(),
		Data: meta.GenesisData{
			Type:      meta.GenesisType,
			Message:   commoncon.GenesisMessage,
			Timestamp: util.NowISO(),
			Version:   commoncon.SystemVersion,
		},
		PrevHash: commoncon.GenesisPrevHash,
		Nonce:    0,
		Hash:     util.HashHex([]byte(commoncon.GenesisSeed)),
	}
}

// sealHash serializes the block minus its hash field (canonical, sorted
// keys) and returns the hex sha256 digest. Sealing and verification must go
// through this same path.
func sealHash(b meta.Block) (string, error) {
	header := map[string]interface{}{
		"index":         b.Index,
		"timestamp":     b.Timestamp,
		"data":          b.Data,
		"previous_hash": b.PrevHash,
		"nonce":         b.Nonce,
	}
	canon, err := util.CanonicalJSON(header)
	if err != nil {
		return "", err
	}
	return util.HashHex(canon), nil
}

// AddBlock seals data into a new block and appends it. The nonce search is
// bounded by maxAttempts; on exhaustion it returns ErrMiningTimeout without
// mutating the chain. The returned id has the form BLOCK_<index>_<unix>.
func (bc *BlockChain) AddBlock(data meta.BlockData) (string, error) {
	if data == nil {
		return "", errors.New("nil block payload")
	}
	bc.mu.Lock()
	defer bc.mu.Unlock()

	if len(bc.blocks) == 0 {
		bc.blocks = append(bc.blocks, generateGenesisBlock())
	}
	prev := bc.blocks[len(bc.blocks)-1]
	block := meta.Block{
		Index:     uint64(len(bc.blocks)),
		Timestamp: util.NowUnixFloat(),
		Data:      data,
		PrevHash:  prev.Hash,
		Nonce:     0,
	}

	target := strings.Repeat("0", bc.difficulty)
	var attempts uint64
	for {
		if attempts >= bc.maxAttempts {
			log.Errorf("mining aborted after %d attempts at index %d", attempts, block.Index)
			return "", ErrMiningTimeout
		}
		digest, err := sealHash(block)
		if err != nil {
			return "", err
		}
		if strings.HasPrefix(digest, target) {
			block.Hash = digest
			break
		}
		block.Nonce++
		attempts++
	}

	bc.blocks = append(bc.blocks, block)
	blockID := fmt.Sprintf("BLOCK_%d_%d", block.Index, int64(block.Timestamp))
	log.Infof("block mined and added: %s (nonce: %d)", blockID, block.Nonce)
	return blockID, nil
}

// VerifyIntegrity walks the whole chain: every block after genesis must link
// to its predecessor's hash and its stored hash must match the recomputed
// one. It never fails hard; a mismatch short-circuits into the report.
func (bc *BlockChain) VerifyIntegrity() meta.IntegrityReport {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	for i := 1; i < len(bc.blocks); i++ {
		cur := bc.blocks[i]
		if cur.PrevHash != bc.blocks[i-1].Hash {
			return meta.IntegrityReport{Valid: false, FailedIndex: i, Reason: "previous_hash mismatch"}
		}
		digest, err := sealHash(cur)
		if err != nil {
			return meta.IntegrityReport{Valid: false, FailedIndex: i, Reason: "serialization failed"}
		}
		if digest != cur.Hash {
			return meta.IntegrityReport{Valid: false, FailedIndex: i, Reason: "hash mismatch"}
		}
	}
	return meta.IntegrityReport{Valid: true, FailedIndex: -1}
}

// GetBlock looks a block up by its BLOCK_<index>_<unix> id.
func (bc *BlockChain) GetBlock(blockID string) (meta.Block, bool) {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	for _, b := range bc.blocks {
		if fmt.Sprintf("BLOCK_%d_%d", b.Index, int64(b.Timestamp)) == blockID {
			return b, true
		}
	}
	return meta.Block{}, false
}

func (bc *BlockChain) GetBlockByIndex(index uint64) (meta.Block, bool) {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	if index >= uint64(len(bc.blocks)) {
		return meta.Block{}, false
	}
	return bc.blocks[index], true
}

func (bc *BlockChain) Len() uint64 {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	return uint64(len(bc.blocks))
}

func (bc *BlockChain) LastHash() string {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	return bc.blocks[len(bc.blocks)-1].Hash
}

func (bc *BlockChain) Difficulty() int {
	return bc.difficulty
}

// Blocks returns a snapshot of the chain taken under the lock, so readers
// never observe a partially appended block.
func (bc *BlockChain) Blocks() []meta.Block {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	out := make([]meta.Block, len(bc.blocks))
	copy(out, bc.blocks)
	return out
}

// Reset discards the whole chain and reseeds genesis. Test use only.
func (bc *BlockChain) Reset() {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	bc.blocks = []meta.Block{generateGenesisBlock()}
	log.Warning("blockchain reset, genesis reseeded")
}
