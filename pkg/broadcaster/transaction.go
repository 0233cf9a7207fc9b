package broadcaster

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/wire"
)

var ErrEmptyTransaction = errors.New("empty transaction")

// Serializer is implemented by transaction types which know their own hex encoding.
type Serializer interface {
	Serialize() (string, error)
}

// EncodeTransaction converts tx into the hex payload handed to the plugins.
func EncodeTransaction(tx any) (string, error) {
	switch tx := tx.(type) {
	case string:
		return checkHex(tx)
	case []byte:
		if len(tx) == 0 {
			return "", ErrEmptyTransaction
		}
		return hex.EncodeToString(tx), nil
	case *wire.MsgTx:
		if tx == nil {
			return "", ErrEmptyTransaction
		}
		var buf bytes.Buffer
		if err := tx.Serialize(&buf); err != nil {
			return "", fmt.Errorf("could not serialize transaction: %w", err)
		}
		return hex.EncodeToString(buf.Bytes()), nil
	case Serializer:
		encoded, err := tx.Serialize()
		if err != nil {
			return "", fmt.Errorf("could not serialize transaction: %w", err)
		}
		return checkHex(encoded)
	case nil:
		return "", ErrEmptyTransaction
	}
	return "", fmt.Errorf("unsupported transaction type %T", tx)
}

func checkHex(encoded string) (string, error) {
	encoded = strings.ToLower(strings.TrimSpace(encoded))
	if encoded == "" {
		return "", ErrEmptyTransaction
	}
	if _, err := hex.DecodeString(encoded); err != nil {
		return "", fmt.Errorf("invalid transaction hex: %w", err)
	}
	return encoded, nil
}

// TxId computes the id of a hex encoded bitcoin style transaction.
func TxId(encoded string) (string, error) {
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	tx := wire.NewMsgTx(wire.TxVersion)
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		return "", fmt.Errorf("could not decode transaction: %w", err)
	}
	return tx.TxHash().String(), nil
}
