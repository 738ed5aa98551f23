package types

// Block is the header part of an eth_getBlockByNumber result fetched
// without full transactions.
type Block struct {
	Number        HexBigInt `json:"number"`
	Hash          string    `json:"hash"`
	ParentHash    string    `json:"parentHash"`
	Miner         string    `json:"miner"`
	Timestamp     HexBigInt `json:"timestamp"`
	GasLimit      HexBigInt `json:"gasLimit"`
	GasUsed       HexBigInt `json:"gasUsed"`
	BaseFeePerGas HexBigInt `json:"baseFeePerGas"`
	Size          HexBigInt `json:"size"`
	Transactions  []string  `json:"transactions"`
}
