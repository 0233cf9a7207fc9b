package broadcaster_test

import (
	"errors"
	"testing"

	"github.com/BoltzExchange/broadcaster/pkg/broadcaster"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

type serializer struct {
	hex string
	err error
}

func (s serializer) Serialize() (string, error) {
	return s.hex, s.err
}

func testTransaction() *wire.MsgTx {
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{1}, 0), nil, nil))
	tx.AddTxOut(wire.NewTxOut(1000, []byte{0x51}))
	return tx
}

func TestEncodeTransaction(t *testing.T) {
	tests := []struct {
		name     string
		tx       any
		expected string
		wantErr  error
	}{
		{name: "hex", tx: "0200000001", expected: "0200000001"},
		{name: "hex is normalized", tx: " 02AB\n", expected: "02ab"},
		{name: "bytes", tx: []byte{0x02, 0xab}, expected: "02ab"},
		{name: "serializer", tx: serializer{hex: "02AB"}, expected: "02ab"},
		{name: "empty", tx: "", wantErr: broadcaster.ErrEmptyTransaction},
		{name: "empty bytes", tx: []byte{}, wantErr: broadcaster.ErrEmptyTransaction},
		{name: "nil", tx: nil, wantErr: broadcaster.ErrEmptyTransaction},
		{name: "nil msgtx", tx: (*wire.MsgTx)(nil), wantErr: broadcaster.ErrEmptyTransaction},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := broadcaster.EncodeTransaction(tc.tx)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, encoded)
		})
	}

	invalid := []any{"zz", "abc", 42, serializer{err: errors.New("could not sign")}}
	for _, tx := range invalid {
		_, err := broadcaster.EncodeTransaction(tx)
		require.Error(t, err, tx)
	}
}

func TestEncodeMsgTx(t *testing.T) {
	tx := testTransaction()

	encoded, err := broadcaster.EncodeTransaction(tx)
	require.NoError(t, err)

	txId, err := broadcaster.TxId(encoded)
	require.NoError(t, err)
	require.Equal(t, tx.TxHash().String(), txId)
	require.NoError(t, broadcaster.CheckTxId(txId))

	_, err = broadcaster.TxId("0200")
	require.Error(t, err)
}
