package dex

import (
	"github.com/33cn/chain33/pluginmgr"
	ctypes "github.com/33cn/chain33/types"

	"github.com/33cn/chain33-dex/plugin/dapp/dex/commands"
	"github.com/33cn/chain33-dex/plugin/dapp/dex/executor"
	"github.com/33cn/chain33-dex/plugin/dapp/dex/rpc"
	pty "github.com/33cn/chain33-dex/plugin/dapp/dex/types"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     pty.DexX,
		ExecName: executor.GetName(),
		Exec:     executor.Init,
		Cmd:      commands.DexCmd,
		RPC:      rpc.Init,
	})
	ctypes.RegisterDappFork(pty.DexX, "Enable", 0)
}
