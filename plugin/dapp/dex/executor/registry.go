package executor

import (
	dbm "github.com/33cn/chain33/common/db"
	ctypes "github.com/33cn/chain33/types"

	pty "github.com/33cn/chain33-dex/plugin/dapp/dex/types"
)

// loadOperator reads the registered DexOperator for dexID, or the implicit
// reserved-dex operator when dexID is the reserved id; see entity.go's
// ReservedOperator doc comment for why the reserved dex never has a real
// registry row.
func loadOperator(db dbm.KV, dexID uint32, systemMatcherRegID pty.RegId) (*pty.DexOperator, error) {
	if dexID == pty.DexReservedID {
		return pty.ReservedOperator(systemMatcherRegID), nil
	}
	val, err := db.Get(calcOperatorKey(dexID))
	if err != nil {
		return nil, nil
	}
	op := &pty.DexOperator{}
	if err := op.Decode(pty.NewDecoder(val)); err != nil {
		return nil, err
	}
	if op.IsEmpty() {
		return nil, nil
	}
	return op, nil
}

// saveOperator persists a DexOperator record and returns its KeyValue,
// matching the DB.GetKVSet(acc) pattern account.DB uses for account writes.
func saveOperator(dexID uint32, op *pty.DexOperator) *ctypes.KeyValue {
	e := pty.NewEncoder()
	op.Encode(e)
	return &ctypes.KeyValue{Key: calcOperatorKey(dexID), Value: e.Bytes()}
}
