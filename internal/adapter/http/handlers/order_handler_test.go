package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	response "github.com/seha3/repair-orders/internal/adapter/http/dto/response"
	"github.com/seha3/repair-orders/internal/adapter/persistence/memory"
	"github.com/seha3/repair-orders/internal/usecase"

	"github.com/gin-gonic/gin"
)

// Handler tests run the full stack below the transport: real use cases over
// in-memory repositories, so status codes and persisted effects are both
// observable.

type testIDs struct {
	mu sync.Mutex
	n  int
}

func (s *testIDs) NewID(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", prefix, s.n)
}

func newOrderRouter() (*gin.Engine, *memory.OrderMemoryRepository) {
	gin.SetMode(gin.TestMode)

	repo := memory.NewOrderMemoryRepository()
	ids := &testIDs{}

	orderHandler := NewOrderHandler(usecase.NewOrderLifecycleUseCase(repo, ids))
	lineItemHandler := NewLineItemHandler(usecase.NewLineItemUseCase(repo, ids), usecase.NewRealCostUseCase(repo, ids))

	r := gin.New()
	v1 := r.Group("/v1")
	orders := v1.Group("/orders")
	orders.POST("", orderHandler.CreateOrder)
	orders.GET("", orderHandler.ListOrders)
	orders.GET("/:id", orderHandler.GetOrder)
	orders.POST("/:id/transition", orderHandler.TransitionOrder)
	orders.POST("/:id/authorize", orderHandler.AuthorizeOrder)
	orders.POST("/:id/reauthorize", orderHandler.ReauthorizeOrder)
	orders.POST("/:id/recalc-real", orderHandler.RecalcRealCosts)
	orders.POST("/:id/services", lineItemHandler.AddService)
	orders.PATCH("/:id/services/:service_id", lineItemHandler.UpdateService)
	orders.DELETE("/:id/services/:service_id", lineItemHandler.DeleteService)
	orders.POST("/:id/services/:service_id/components", lineItemHandler.AddComponent)
	orders.PATCH("/:id/services/:service_id/components/:component_id", lineItemHandler.UpdateComponent)
	orders.DELETE("/:id/services/:service_id/components/:component_id", lineItemHandler.DeleteComponent)
	orders.PATCH("/:id/services/:service_id/labor-real", lineItemHandler.UpdateLaborReal)
	orders.PATCH("/:id/services/:service_id/components/:component_id/real", lineItemHandler.UpdateComponentReal)

	return r, repo
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeOrder(t *testing.T, w *httptest.ResponseRecorder) response.OrderResponse {
	t.Helper()
	var out response.OrderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding order response: %v (%s)", err, w.Body.String())
	}
	return out
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		r, _ := newOrderRouter()
		w := doJSON(t, r, http.MethodPost, "/v1/orders", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		r, _ := newOrderRouter()
		w := doJSON(t, r, http.MethodPost, "/v1/orders", `{"customer_id":"c1"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid source", func(t *testing.T) {
		r, _ := newOrderRouter()
		w := doJSON(t, r, http.MethodPost, "/v1/orders", `{"customer_id":"c1","vehicle_id":"v1","source":"WEB"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("created with folio", func(t *testing.T) {
		r, _ := newOrderRouter()
		w := doJSON(t, r, http.MethodPost, "/v1/orders", `{"customer_id":"c1","vehicle_id":"v1","source":"taller"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
		}
		order := decodeOrder(t, w)
		if order.Status != "CREATED" || order.DisplayID != "RO-001" || order.Source != "TALLER" {
			t.Fatalf("unexpected order: %+v", order)
		}
	})
}

func TestOrderHandler_ListAndGet(t *testing.T) {
	r, _ := newOrderRouter()

	doJSON(t, r, http.MethodPost, "/v1/orders", `{"customer_id":"c1","vehicle_id":"v1","source":"TALLER"}`)
	w := doJSON(t, r, http.MethodPost, "/v1/orders", `{"customer_id":"c2","vehicle_id":"v2","source":"CLIENTE"}`)
	second := decodeOrder(t, w)

	t.Run("list newest first", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/v1/orders", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var orders []response.OrderResponse
		if err := json.Unmarshal(w.Body.Bytes(), &orders); err != nil {
			t.Fatalf("decoding: %v", err)
		}
		if len(orders) != 2 || orders[0].ID != second.ID {
			t.Fatalf("expected newest first, got %+v", orders)
		}
	})

	t.Run("filter by customer", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/v1/orders?customer_id=c2", "")
		var orders []response.OrderResponse
		if err := json.Unmarshal(w.Body.Bytes(), &orders); err != nil {
			t.Fatalf("decoding: %v", err)
		}
		if len(orders) != 1 || orders[0].CustomerID != "c2" {
			t.Fatalf("expected only c2 orders, got %+v", orders)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/v1/orders/"+second.ID, "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/v1/orders/nope", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestOrderHandler_FullLifecycle(t *testing.T) {
	r, _ := newOrderRouter()

	w := doJSON(t, r, http.MethodPost, "/v1/orders", `{"customer_id":"c1","vehicle_id":"v1","source":"TALLER"}`)
	order := decodeOrder(t, w)
	base := "/v1/orders/" + order.ID

	// Quote: one service with one component, 500 + 250.
	w = doJSON(t, r, http.MethodPost, base+"/services", `{"name":"Cambio de aceite","labor_estimated":500}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("add service: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	serviceID := decodeOrder(t, w).Services[0].ID

	w = doJSON(t, r, http.MethodPost, base+"/services/"+serviceID+"/components", `{"name":"Filtro","estimated":250}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("add component: expected 201, got %d", w.Code)
	}
	componentID := decodeOrder(t, w).Services[0].Components[0].ID

	// Authorize requires DIAGNOSED.
	w = doJSON(t, r, http.MethodPost, base+"/authorize", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("authorize from CREATED: expected 409, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, base+"/transition", `{"to_status":"DIAGNOSED"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("transition: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, base+"/authorize", "")
	if w.Code != http.StatusOK {
		t.Fatalf("authorize: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	authorized := decodeOrder(t, w)
	if authorized.SubtotalEstimated != 750 || authorized.AuthorizedAmount != 870 {
		t.Fatalf("unexpected totals: %+v", authorized)
	}

	w = doJSON(t, r, http.MethodPost, base+"/transition", `{"to_status":"IN_PROGRESS"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("start repair: expected 200, got %d", w.Code)
	}

	// Capture over the 957 ceiling: the order goes on hold, no rejection.
	w = doJSON(t, r, http.MethodPatch, base+"/services/"+serviceID+"/labor-real", `{"value":1100}`)
	if w.Code != http.StatusOK {
		t.Fatalf("labor real: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	onHold := decodeOrder(t, w)
	if onHold.Status != "WAITING_FOR_APPROVAL" || onHold.RealTotal != 1100 {
		t.Fatalf("expected overcost hold: %+v", onHold)
	}

	// Captures are blocked while waiting.
	w = doJSON(t, r, http.MethodPatch, base+"/services/"+serviceID+"/components/"+componentID+"/real", `{"value":260}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("capture while waiting: expected 409, got %d", w.Code)
	}

	// Reauthorize at a higher amount and resume.
	w = doJSON(t, r, http.MethodPost, base+"/reauthorize", `{"amount":1300,"comment":"Cliente aprobó"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("reauthorize: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	reauthorized := decodeOrder(t, w)
	if reauthorized.Status != "AUTHORIZED" || reauthorized.AuthorizedAmount != 1300 {
		t.Fatalf("unexpected reauthorization: %+v", reauthorized)
	}

	for _, to := range []string{"IN_PROGRESS", "COMPLETED", "DELIVERED"} {
		w = doJSON(t, r, http.MethodPost, base+"/transition", fmt.Sprintf(`{"to_status":%q}`, to))
		if w.Code != http.StatusOK {
			t.Fatalf("transition to %s: expected 200, got %d (%s)", to, w.Code, w.Body.String())
		}
	}
}

func TestOrderHandler_Reauthorize(t *testing.T) {
	t.Run("rejects non-positive amount at binding", func(t *testing.T) {
		r, _ := newOrderRouter()
		w := doJSON(t, r, http.MethodPost, "/v1/orders/any/reauthorize", `{"amount":0}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing order", func(t *testing.T) {
		r, _ := newOrderRouter()
		w := doJSON(t, r, http.MethodPost, "/v1/orders/nope/reauthorize", `{"amount":100}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestOrderHandler_CancelledSink(t *testing.T) {
	r, _ := newOrderRouter()

	w := doJSON(t, r, http.MethodPost, "/v1/orders", `{"customer_id":"c1","vehicle_id":"v1","source":"TALLER"}`)
	order := decodeOrder(t, w)
	base := "/v1/orders/" + order.ID

	w = doJSON(t, r, http.MethodPost, base+"/transition", `{"to_status":"CANCELLED"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, base+"/services", `{"name":"Algo"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("edit cancelled: expected 409, got %d", w.Code)
	}

	// The rejected attempt lands on the order's error log.
	w = doJSON(t, r, http.MethodGet, base, "")
	got := decodeOrder(t, w)
	if len(got.Errors) != 1 || got.Errors[0].Code != "ORDER_CANCELLED" {
		t.Fatalf("expected ORDER_CANCELLED audit error: %+v", got.Errors)
	}
}

func TestOrderHandler_TransitionErrors(t *testing.T) {
	r, _ := newOrderRouter()

	w := doJSON(t, r, http.MethodPost, "/v1/orders", `{"customer_id":"c1","vehicle_id":"v1","source":"TALLER"}`)
	order := decodeOrder(t, w)
	base := "/v1/orders/" + order.ID

	t.Run("unknown status", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, base+"/transition", `{"to_status":"BOGUS"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("illegal edge", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, base+"/transition", `{"to_status":"DELIVERED"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}
