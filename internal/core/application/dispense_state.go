package application

// DispenseState is the stage a dispense request has reached. A request moves
// forward only, and a failure at any stage ends it.
type DispenseState int

const (
	ValidatingAddress DispenseState = iota
	CollectingUTXOs
	SelectingInputs
	ComputingFee
	Building
	Signing
	ReadyToBroadcast
	Broadcast
)

var dispenseStates = map[DispenseState]struct {
	name      string
	component string
}{
	ValidatingAddress: {"validating-address", "address-validator"},
	CollectingUTXOs:   {"collecting-utxos", "utxo-classifier"},
	SelectingInputs:   {"selecting-inputs", "input-selector"},
	ComputingFee:      {"computing-fee", "fee-calculator"},
	Building:          {"building", "transaction-builder"},
	Signing:           {"signing", "signer"},
	ReadyToBroadcast:  {"ready-to-broadcast", "broadcaster"},
	Broadcast:         {"broadcast", "broadcaster"},
}

func (s DispenseState) String() string {
	if st, ok := dispenseStates[s]; ok {
		return st.name
	}
	return "unknown"
}

// Component returns the name of the component that fails a request in this
// state.
func (s DispenseState) Component() string {
	if st, ok := dispenseStates[s]; ok {
		return st.component
	}
	return "faucet"
}
