package appstate

import (
	"github.com/BMIWB/go-larek/internal/core/eventbus"
	pkgif "github.com/BMIWB/go-larek/pkg/interfaces"
	"github.com/BMIWB/go-larek/pkg/types"
)

// journal 按顺序记录所有事件
type journal struct {
	events []pkgif.WildcardEvent
}

func (j *journal) Handle(payload any) {
	j.events = append(j.events, payload.(pkgif.WildcardEvent))
}

func (j *journal) names() []string {
	out := make([]string, 0, len(j.events))
	for _, e := range j.events {
		out = append(out, e.Name)
	}
	return out
}

func (j *journal) last(name string) (any, bool) {
	for i := len(j.events) - 1; i >= 0; i-- {
		if j.events[i].Name == name {
			return j.events[i].Data, true
		}
	}
	return nil, false
}

func (j *journal) reset() {
	j.events = nil
}

func testCatalog() []types.ProductInfo {
	return []types.ProductInfo{
		{ID: "p1", Title: "Frontend handbook", Category: "soft-skill", Price: types.NewPrice(750)},
		{ID: "p2", Title: "Mouse", Category: "hard-skill", Price: types.NewPrice(1500)},
		{ID: "p3", Title: "Priceless mug", Category: "other", Price: types.NoPrice},
	}
}

func newTestState() (*AppData, *journal) {
	bus := eventbus.NewBus()
	j := &journal{}
	bus.OnAll(j)
	a := New(bus)
	a.SetCatalog(testCatalog())
	j.reset()
	return a, j
}

func mustFind(a *AppData, id string) *Product {
	p, ok := a.FindProduct(id)
	if !ok {
		panic("product " + id + " not in catalog")
	}
	return p
}
