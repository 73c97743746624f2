// Package address validates destination addresses per asset.
package address

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"encore.dev/beta/errs"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
	"github.com/stellar/go/strkey"

	"encore.app/transfer/money"
)

var (
	ErrInvalidAddress   = errors.New("invalid address")
	ErrUnsupportedAsset = errors.New("address validation not supported for asset")
)

const tronAddressPrefix = 0x41

// Validator checks that an address is well formed for an asset on one network.
type Validator struct {
	network   string
	btcParams *chaincfg.Params
}

// NewValidator returns a validator for "mainnet", "testnet" or "regtest".
func NewValidator(network string) (*Validator, error) {
	var params *chaincfg.Params
	switch network {
	case "mainnet":
		params = &chaincfg.MainNetParams
	case "testnet":
		params = &chaincfg.TestNet3Params
	case "regtest":
		params = &chaincfg.RegressionNetParams
	default:
		return nil, fmt.Errorf("unsupported network: %s", network)
	}
	return &Validator{network: network, btcParams: params}, nil
}

func (v *Validator) Network() string { return v.network }

// Validate returns nil when addr is a valid destination for c.
func (v *Validator) Validate(c money.CurrencyType, addr string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return invalid(c, "address is empty")
	}

	var err error
	switch c.Code() {
	case "BTC":
		err = v.validateBitcoin(addr)
	case "BCH":
		err = v.validateBitcoinCash(addr)
	case "ETH", "USDT", "USDC":
		err = validateEthereum(addr)
	case "TRX":
		err = validateTron(addr)
	case "XLM":
		err = validateStellar(addr)
	default:
		return errs.WrapCode(ErrUnsupportedAsset, errs.Unimplemented, "no address rules for "+c.Code())
	}
	if err != nil {
		return invalid(c, err.Error())
	}
	return nil
}

func invalid(c money.CurrencyType, reason string) error {
	return errs.WrapCode(ErrInvalidAddress, errs.InvalidArgument, fmt.Sprintf("invalid %s address: %s", c.Code(), reason))
}

func (v *Validator) validateBitcoin(addr string) error {
	decoded, err := btcutil.DecodeAddress(addr, v.btcParams)
	if err != nil {
		return err
	}
	if !decoded.IsForNet(v.btcParams) {
		return fmt.Errorf("address is not for %s", v.network)
	}
	return nil
}

// validateBitcoinCash accepts legacy base58 addresses only. CashAddr
// destinations are rejected with a hint to use the legacy form.
func (v *Validator) validateBitcoinCash(addr string) error {
	lower := strings.ToLower(addr)
	for _, prefix := range []string{"bitcoincash:", "bchtest:", "bchreg:"} {
		if strings.HasPrefix(lower, prefix) {
			return errors.New("cashaddr format is not supported, use the legacy address")
		}
	}
	decoded, err := btcutil.DecodeAddress(addr, v.btcParams)
	if err != nil {
		return err
	}
	switch decoded.(type) {
	case *btcutil.AddressPubKeyHash, *btcutil.AddressScriptHash:
	default:
		return errors.New("segwit addresses do not exist on bitcoin cash")
	}
	if !decoded.IsForNet(v.btcParams) {
		return fmt.Errorf("address is not for %s", v.network)
	}
	return nil
}

func validateEthereum(addr string) error {
	if !common.IsHexAddress(addr) {
		return errors.New("not a 20-byte hex address")
	}
	body := strings.TrimPrefix(strings.TrimPrefix(addr, "0x"), "0X")
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return nil
	}
	if common.HexToAddress(addr).Hex() != addr {
		return errors.New("checksum mismatch")
	}
	return nil
}

func validateTron(addr string) error {
	raw, err := base58.Decode(addr)
	if err != nil {
		return err
	}
	if len(raw) != 25 || raw[0] != tronAddressPrefix {
		return errors.New("not a tron account address")
	}
	payload, checksum := raw[:21], raw[21:]
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	if !bytes.Equal(second[:4], checksum) {
		return errors.New("checksum mismatch")
	}
	return nil
}

func validateStellar(addr string) error {
	_, err := strkey.Decode(strkey.VersionByteAccountID, addr)
	return err
}
