package net

import (
	"context"
	"fmt"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"hexint-tracker/common"
	"hexint-tracker/config"
	"hexint-tracker/types"
)

const (
	BlockNumberMethod      = "eth_blockNumber"
	GetBalanceMethod       = "eth_getBalance"
	GasPriceMethod         = "eth_gasPrice"
	GetBlockByNumberMethod = "eth_getBlockByNumber"

	LatestBlock = "latest"
)

// Client talks JSON-RPC 2.0 to an Ethereum-compatible endpoint, which
// transports every quantity as a "0x" hex string.
type Client struct {
	endpoint string
	http     *resty.Client
	nextID   atomic.Uint64
}

func NewClient(cfg *config.NetConfig) *Client {
	http := resty.New().
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(cfg.RetryCount)
	if cfg.Timeout > 0 {
		http.SetTimeout(time.Duration(cfg.Timeout) * time.Second)
	}

	return &Client{
		endpoint: cfg.RPCEndpoint,
		http:     http,
	}
}

// Call sends one request and decodes its result into out.
func (c *Client) Call(ctx context.Context, out interface{}, method string, params ...interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	req := types.RPCRequest{
		JSONRPC: types.JSONRPCVersion,
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	}

	var rpcResp types.RPCResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(&req).
		SetResult(&rpcResp).
		Post(c.endpoint)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%s: http status %s", method, resp.Status())
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("%s: %w", method, rpcResp.Error)
	}
	if len(rpcResp.Result) == 0 || string(rpcResp.Result) == "null" {
		return fmt.Errorf("%s: empty result", method)
	}

	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}

func (c *Client) callQuantity(ctx context.Context, method string, params ...interface{}) (*big.Int, error) {
	var res types.HexBigInt
	if err := c.Call(ctx, &res, method, params...); err != nil {
		return nil, err
	}
	return res.BigInt(), nil
}

func (c *Client) BlockNumber(ctx context.Context) (*big.Int, error) {
	return c.callQuantity(ctx, BlockNumberMethod)
}

func (c *Client) GasPrice(ctx context.Context) (*big.Int, error) {
	return c.callQuantity(ctx, GasPriceMethod)
}

// GetBalance takes a "0x" hex account; see utils.ToRPCAddress.
func (c *Client) GetBalance(ctx context.Context, addr string) (*big.Int, error) {
	return c.callQuantity(ctx, GetBalanceMethod, addr, LatestBlock)
}

func (c *Client) GetBlockByNumber(ctx context.Context, number *big.Int) (*types.Block, error) {
	var block types.Block
	if err := c.Call(ctx, &block, GetBlockByNumberMethod, common.FormatHexLower(number), false); err != nil {
		return nil, err
	}
	return &block, nil
}

var client *Client

func Init(cfg *config.NetConfig) {
	client = NewClient(cfg)
}

func Default() *Client {
	return client
}

func BlockNumber(ctx context.Context) (*big.Int, error) {
	return client.BlockNumber(ctx)
}

func GetBalance(ctx context.Context, addr string) (*big.Int, error) {
	return client.GetBalance(ctx, addr)
}

func GetBlockByNumber(ctx context.Context, number *big.Int) (*types.Block, error) {
	return client.GetBlockByNumber(ctx, number)
}
