package utils

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/ethereum/go-ethereum/common"
)

// TronAddressPrefix is the version byte of mainnet base58 addresses.
const TronAddressPrefix = 0x41

var ErrInvalidAddress = errors.New("invalid tron address")

// EncodeToBase58 turns a hex account (20 bytes, or 21 with the 0x41 byte,
// "0x" optional) into the T... base58check form.
func EncodeToBase58(addrInHex string) string {
	addressBytes, _ := hex.DecodeString(strings.TrimPrefix(addrInHex, "0x"))
	if len(addressBytes) == 21 {
		return base58.CheckEncode(addressBytes[1:], TronAddressPrefix)
	}
	return base58.CheckEncode(addressBytes, TronAddressPrefix)
}

// DecodeFromBase58 returns the 20-byte account JSON-RPC endpoints expect
// for a T... address.
func DecodeFromBase58(addr string) (common.Address, error) {
	payload, version, err := base58.CheckDecode(addr)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w %q: %w", ErrInvalidAddress, addr, err)
	}
	if version != TronAddressPrefix || len(payload) != common.AddressLength {
		return common.Address{}, fmt.Errorf("%w %q: version 0x%02x, %d bytes", ErrInvalidAddress, addr, version, len(payload))
	}
	return common.BytesToAddress(payload), nil
}

// ToRPCAddress accepts either a base58 address or a "0x" hex account and
// returns the lower-case hex form used in JSON-RPC params.
func ToRPCAddress(addr string) (string, error) {
	if strings.HasPrefix(addr, "0x") {
		if !common.IsHexAddress(addr) {
			return "", fmt.Errorf("%w %q", ErrInvalidAddress, addr)
		}
		return strings.ToLower(addr), nil
	}

	account, err := DecodeFromBase58(addr)
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(account.Bytes()), nil
}
