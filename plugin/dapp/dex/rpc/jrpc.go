package rpc

import (
	"context"
	"encoding/hex"

	ctypes "github.com/33cn/chain33/types"

	pty "github.com/33cn/chain33-dex/plugin/dapp/dex/types"
)

// Each Jrpc method below is the JSON-RPC entry point for the matching
// channelClient builder; result is always the tx's hex encoding, the
// convention every CreateRawXxxTx method in the example dapps follows so a
// caller can feed it straight to Chain33.SignRawTx.

func (j *Jrpc) CreateRawBuyLimitTx(in *pty.BuyLimitReq, result *interface{}) error {
	if in == nil {
		return ctypes.ErrInvalidParam
	}
	reply, err := j.cli.CreateRawBuyLimitTx(context.Background(), in)
	if err != nil {
		return err
	}
	*result = hex.EncodeToString(reply.Data)
	return nil
}

func (j *Jrpc) CreateRawSellLimitTx(in *pty.SellLimitReq, result *interface{}) error {
	if in == nil {
		return ctypes.ErrInvalidParam
	}
	reply, err := j.cli.CreateRawSellLimitTx(context.Background(), in)
	if err != nil {
		return err
	}
	*result = hex.EncodeToString(reply.Data)
	return nil
}

func (j *Jrpc) CreateRawBuyLimitExTx(in *pty.BuyLimitExReq, result *interface{}) error {
	if in == nil {
		return ctypes.ErrInvalidParam
	}
	reply, err := j.cli.CreateRawBuyLimitExTx(context.Background(), in)
	if err != nil {
		return err
	}
	*result = hex.EncodeToString(reply.Data)
	return nil
}

func (j *Jrpc) CreateRawSellLimitExTx(in *pty.SellLimitExReq, result *interface{}) error {
	if in == nil {
		return ctypes.ErrInvalidParam
	}
	reply, err := j.cli.CreateRawSellLimitExTx(context.Background(), in)
	if err != nil {
		return err
	}
	*result = hex.EncodeToString(reply.Data)
	return nil
}

func (j *Jrpc) CreateRawBuyMarketTx(in *pty.BuyMarketReq, result *interface{}) error {
	if in == nil {
		return ctypes.ErrInvalidParam
	}
	reply, err := j.cli.CreateRawBuyMarketTx(context.Background(), in)
	if err != nil {
		return err
	}
	*result = hex.EncodeToString(reply.Data)
	return nil
}

func (j *Jrpc) CreateRawSellMarketTx(in *pty.SellMarketReq, result *interface{}) error {
	if in == nil {
		return ctypes.ErrInvalidParam
	}
	reply, err := j.cli.CreateRawSellMarketTx(context.Background(), in)
	if err != nil {
		return err
	}
	*result = hex.EncodeToString(reply.Data)
	return nil
}

func (j *Jrpc) CreateRawBuyMarketExTx(in *pty.BuyMarketExReq, result *interface{}) error {
	if in == nil {
		return ctypes.ErrInvalidParam
	}
	reply, err := j.cli.CreateRawBuyMarketExTx(context.Background(), in)
	if err != nil {
		return err
	}
	*result = hex.EncodeToString(reply.Data)
	return nil
}

func (j *Jrpc) CreateRawSellMarketExTx(in *pty.SellMarketExReq, result *interface{}) error {
	if in == nil {
		return ctypes.ErrInvalidParam
	}
	reply, err := j.cli.CreateRawSellMarketExTx(context.Background(), in)
	if err != nil {
		return err
	}
	*result = hex.EncodeToString(reply.Data)
	return nil
}

func (j *Jrpc) CreateRawCancelOrderTx(in *pty.CancelOrderReq, result *interface{}) error {
	if in == nil {
		return ctypes.ErrInvalidParam
	}
	reply, err := j.cli.CreateRawCancelOrderTx(context.Background(), in)
	if err != nil {
		return err
	}
	*result = hex.EncodeToString(reply.Data)
	return nil
}

func (j *Jrpc) CreateRawSettleTx(in *pty.SettleReq, result *interface{}) error {
	if in == nil {
		return ctypes.ErrInvalidParam
	}
	reply, err := j.cli.CreateRawSettleTx(context.Background(), in)
	if err != nil {
		return err
	}
	*result = hex.EncodeToString(reply.Data)
	return nil
}
