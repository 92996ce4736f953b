package scanner

import (
	"log/slog"
	"sync"
)

// logger 会被多个 worker 并发调用，因此只初始化一次。
var logger = sync.OnceValue(func() *slog.Logger {
	return slog.Default().With("package", "scanner")
})
