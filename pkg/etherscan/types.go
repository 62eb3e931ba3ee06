package etherscan

import "encoding/json"

// Transaction is the subset of a `txlist` record this tool inspects. Fields
// are parsed once at the API boundary; downstream components never touch raw
// response maps.
type Transaction struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Input   string `json:"input"`
	Hash    string `json:"hash"`
	IsError string `json:"isError"`
}

// Failed reports whether Etherscan flagged the transaction as reverted.
// Etherscan encodes the flag as "0" for success and "1" for failure.
func (t *Transaction) Failed() bool {
	return t.IsError != "" && t.IsError != "0"
}

// txlistResponse is the envelope of every Etherscan account API response.
// `result` is an array of transactions on success but a bare string on
// status "0", so it is deferred until the status has been checked.
type txlistResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}
