package backend

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/BMIWB/go-larek/pkg/types"
)

// NewHandler 返回商店接口的 HTTP 处理器
//
// 路由挂在 prefix 下：GET /product/、GET /product/{id}、POST /order。
func NewHandler(store *Store, prefix string) http.Handler {
	router := mux.NewRouter()
	RegisterRoutes(router, store, prefix)
	return router
}

// RegisterRoutes 在已有路由上注册商店接口
func RegisterRoutes(router *mux.Router, store *Store, prefix string) {
	h := &handler{store: store}

	r := router
	if prefix != "" && prefix != "/" {
		r = router.PathPrefix(prefix).Subrouter()
	}
	r.HandleFunc("/product/", h.handleProductList).Methods(http.MethodGet)
	r.HandleFunc("/product/{id}", h.handleProductItem).Methods(http.MethodGet)
	r.HandleFunc("/order", h.handleOrder).Methods(http.MethodPost)
}

type handler struct {
	store *Store
}

// =============================================================================
// HTTP Handlers
// =============================================================================

func (h *handler) handleProductList(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.GetProductList(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, types.ListResponse[types.ProductInfo]{Total: len(items), Items: items})
}

func (h *handler) handleProductItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	item, err := h.store.GetProductItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			writeError(w, http.StatusNotFound, errors.New("NotFound"))
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *handler) handleOrder(w http.ResponseWriter, r *http.Request) {
	var order types.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("malformed order"))
		return
	}

	result, err := h.store.OrderProducts(r.Context(), order)
	if err != nil {
		if errors.Is(err, ErrInvalidOrder) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("请求处理失败", "status", status, "err", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
