package larek

import "errors"

// 公共错误定义
var (
	// ErrNotStarted 店面未启动
	ErrNotStarted = errors.New("shop not started")

	// ErrAlreadyStarted 店面已启动
	ErrAlreadyStarted = errors.New("shop already started")

	// ErrShopClosed 店面已关闭
	ErrShopClosed = errors.New("shop closed")

	// ErrConflictingAPI 同时指定了自定义 API 和内存后端
	ErrConflictingAPI = errors.New("WithAPI and WithInMemoryBackend are mutually exclusive")
)
