package deploy

import (
	"encoding/json"
	"fmt"
	"os"
)

// LedgerFileName is the per-project deployment ledger
const LedgerFileName = "deployments.json"

// Record is the most recent deployment outcome for one network. A redeploy
// to the same network replaces the whole record.
type Record struct {
	Network         string `json:"network"`
	ContractAddress string `json:"contractAddress"`
	TransactionHash string `json:"transactionHash"`
	BlockNumber     uint64 `json:"blockNumber"`
	Timestamp       string `json:"timestamp"`
}

// Ledger maps network name to its latest deployment record
type Ledger map[string]Record

// LoadLedger reads the deployment ledger; a missing file yields an empty
// ledger so the first deploy works without setup.
func LoadLedger(path string) (Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Ledger{}, nil
		}
		return nil, fmt.Errorf("failed to read deployment ledger: %v", err)
	}

	var ledger Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("failed to parse deployment ledger: %v", err)
	}

	return ledger, nil
}

// Save writes the ledger back as indented JSON
func (l Ledger) Save(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode deployment ledger: %v", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write deployment ledger: %v", err)
	}

	return nil
}

// RecordDeployment merges one record into the on-disk ledger, preserving
// other networks' entries (read-merge-write, full overwrite per key).
func RecordDeployment(path string, record Record) error {
	ledger, err := LoadLedger(path)
	if err != nil {
		return err
	}

	ledger[record.Network] = record
	return ledger.Save(path)
}

// FindByAddress returns the record holding the given contract address
func (l Ledger) FindByAddress(address string) (Record, bool) {
	for _, record := range l {
		if record.ContractAddress == address {
			return record, true
		}
	}
	return Record{}, false
}
