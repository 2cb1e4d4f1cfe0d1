package commoncon

// proof-of-work sealing
const Difficulty = 2                 // required leading '0' hex chars
const DefaultMaxMineAttempts = 1 << 22

// genesis block
const GenesisPrevHash = "0"
const GenesisSeed = "greenguard_genesis_block"
const GenesisMessage = "GreenGuard Blockchain Genesis Block"

const SystemVersion = "2.0_with_smart_contracts"
const SystemCreator = "system@greenguard.com"

// ledger payload field limits
const MaxClaimLen = 1000
const MaxEvidenceLen = 500
const MaxContentLen = 1000
const MaxEnvironmentalClaims = 10

// gas accounting
const BaseGas = 100
const FailureGas = 50

const ConsensusMechanism = "Proof-of-Work (SHA-256)"
const HashAlgorithm = "SHA-256"
