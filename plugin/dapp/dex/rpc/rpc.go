package rpc

import (
	"context"

	ctypes "github.com/33cn/chain33/types"

	pty "github.com/33cn/chain33-dex/plugin/dapp/dex/types"
)

// Each method below builds its raw tx through dex's own CreateRawXxxTx
// (types/dex.go), which already assembles a complete *ctypes.Transaction —
// unlike trade's channelClient, there is no types.CreateFormatTx step and no
// protobuf action to encode, since dex payloads aren't a protobuf oneof; the
// only types.Encode here is of the finished tx.

func (c *channelClient) CreateRawBuyLimitTx(ctx context.Context, req *pty.BuyLimitReq) (*ctypes.UnsignTx, error) {
	tx, err := pty.CreateRawBuyLimitTx(req)
	if err != nil {
		return nil, err
	}
	return &ctypes.UnsignTx{Data: ctypes.Encode(tx)}, nil
}

func (c *channelClient) CreateRawSellLimitTx(ctx context.Context, req *pty.SellLimitReq) (*ctypes.UnsignTx, error) {
	tx, err := pty.CreateRawSellLimitTx(req)
	if err != nil {
		return nil, err
	}
	return &ctypes.UnsignTx{Data: ctypes.Encode(tx)}, nil
}

func (c *channelClient) CreateRawBuyLimitExTx(ctx context.Context, req *pty.BuyLimitExReq) (*ctypes.UnsignTx, error) {
	tx, err := pty.CreateRawBuyLimitExTx(req)
	if err != nil {
		return nil, err
	}
	return &ctypes.UnsignTx{Data: ctypes.Encode(tx)}, nil
}

func (c *channelClient) CreateRawSellLimitExTx(ctx context.Context, req *pty.SellLimitExReq) (*ctypes.UnsignTx, error) {
	tx, err := pty.CreateRawSellLimitExTx(req)
	if err != nil {
		return nil, err
	}
	return &ctypes.UnsignTx{Data: ctypes.Encode(tx)}, nil
}

func (c *channelClient) CreateRawBuyMarketTx(ctx context.Context, req *pty.BuyMarketReq) (*ctypes.UnsignTx, error) {
	tx, err := pty.CreateRawBuyMarketTx(req)
	if err != nil {
		return nil, err
	}
	return &ctypes.UnsignTx{Data: ctypes.Encode(tx)}, nil
}

func (c *channelClient) CreateRawSellMarketTx(ctx context.Context, req *pty.SellMarketReq) (*ctypes.UnsignTx, error) {
	tx, err := pty.CreateRawSellMarketTx(req)
	if err != nil {
		return nil, err
	}
	return &ctypes.UnsignTx{Data: ctypes.Encode(tx)}, nil
}

func (c *channelClient) CreateRawBuyMarketExTx(ctx context.Context, req *pty.BuyMarketExReq) (*ctypes.UnsignTx, error) {
	tx, err := pty.CreateRawBuyMarketExTx(req)
	if err != nil {
		return nil, err
	}
	return &ctypes.UnsignTx{Data: ctypes.Encode(tx)}, nil
}

func (c *channelClient) CreateRawSellMarketExTx(ctx context.Context, req *pty.SellMarketExReq) (*ctypes.UnsignTx, error) {
	tx, err := pty.CreateRawSellMarketExTx(req)
	if err != nil {
		return nil, err
	}
	return &ctypes.UnsignTx{Data: ctypes.Encode(tx)}, nil
}

func (c *channelClient) CreateRawCancelOrderTx(ctx context.Context, req *pty.CancelOrderReq) (*ctypes.UnsignTx, error) {
	tx, err := pty.CreateRawCancelOrderTx(req)
	if err != nil {
		return nil, err
	}
	return &ctypes.UnsignTx{Data: ctypes.Encode(tx)}, nil
}

func (c *channelClient) CreateRawSettleTx(ctx context.Context, req *pty.SettleReq) (*ctypes.UnsignTx, error) {
	tx, err := pty.CreateRawSettleTx(req)
	if err != nil {
		return nil, err
	}
	return &ctypes.UnsignTx{Data: ctypes.Encode(tx)}, nil
}
