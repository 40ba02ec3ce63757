// Package larek 是 go-larek 店面核心的入口
//
// Shop 把事件总线、事件循环、应用状态、网络协作方和 Presenter 组装为一个
// fx 应用。渲染层通过 Events() 订阅状态变更，通过 Dispatch 发布用户意图；
// 所有状态迁移都在同一个循环协程内完成。
//
// 快速开始：
//
//	shop, err := larek.New(
//	    larek.WithConfigFile("larek.json"),
//	    larek.WithRenderer(myView),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := shop.Start(ctx); err != nil {
//	    return err
//	}
//	defer shop.Stop(context.Background())
//
//	_ = shop.Dispatch(types.EventProductAdd, "854cef69")
//	shop.Flush()
//
// 本地开发时可以使用内存后端代替 HTTP 接口：
//
//	shop, err := larek.New(larek.WithInMemoryBackend(nil))
package larek
