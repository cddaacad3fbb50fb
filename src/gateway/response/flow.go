package response

// FlowResult is returned by the mutating endpoints after the transaction
// confirmed. Warnings carry non-fatal chain/store divergence.
type FlowResult struct {
	Campaign *Campaign `json:"campaign,omitempty"`
	TxHash   string    `json:"tx_hash"`
	Warnings []string  `json:"warnings,omitempty"`
}

// Error is the machine-readable error body of every non-2xx response
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
