package lunte

import (
	"github.com/holepunchto/lunte/internal/linter"
)

// ConfigFiles are the names lunte looks up, nearest directory first.
var ConfigFiles = []string{".lunterc", ".lunterc.json"}

func init() {
	_ = linter.Global().RegisterTool(New(linter.DefaultToolsDir()), ConfigFiles...)
}
