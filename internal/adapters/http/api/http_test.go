package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/curio/internal/adapters/http/api"
	"github.com/okian/curio/internal/adapters/repository"
	"github.com/okian/curio/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// mockRegistry implements the Dependencies interface with a scriptable
// in-memory collection.
type mockRegistry struct {
	items     []model.Item
	nextID    int64
	createErr error
	getErr    error
	deleteErr error
}

func newMockRegistry() *mockRegistry {
	return &mockRegistry{nextID: 1}
}

func (m *mockRegistry) CreateItem(_ context.Context, name string, description *string) (model.Item, error) {
	if m.createErr != nil {
		return model.Item{}, m.createErr
	}
	for _, item := range m.items {
		if model.NormalizeName(item.Name) == model.NormalizeName(name) {
			return model.Item{}, repository.ErrDuplicateName
		}
	}
	item := model.Item{ID: m.nextID, Name: name, Description: description}
	m.nextID++
	m.items = append(m.items, item)
	return item, nil
}

func (m *mockRegistry) ListItems(_ context.Context) []model.Item {
	out := make([]model.Item, len(m.items))
	copy(out, m.items)
	return out
}

func (m *mockRegistry) GetItem(_ context.Context, id int64) (model.Item, error) {
	if m.getErr != nil {
		return model.Item{}, m.getErr
	}
	for _, item := range m.items {
		if item.ID == id {
			return item, nil
		}
	}
	return model.Item{}, repository.ErrNotFound
}

func (m *mockRegistry) DeleteItem(_ context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, item := range m.items {
		if item.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newTestMux(reg *mockRegistry) *http.ServeMux {
	server := api.NewServer(reg, &mockStatsProvider{stats: map[string]interface{}{"itemCount": len(reg.items)}}, "test")
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		mux := newTestMux(newMockRegistry())

		Convey("When registering routes", func() {
			Convey("Then the health endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/health", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And the stats endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/stats", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And the metrics endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/metrics", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And the items collection should be accessible", func() {
				req := httptest.NewRequest("GET", "/items", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, "[]")
			})

			Convey("And unknown paths should return not found", func() {
				req := httptest.NewRequest("GET", "/unknown", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})

			Convey("And every API response should carry a request id", func() {
				req := httptest.NewRequest("GET", "/items", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
			})

			Convey("And a client-supplied request id should be echoed", func() {
				req := httptest.NewRequest("GET", "/items", nil)
				req.Header.Set("X-Request-ID", "req-42")
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Header().Get("X-Request-ID"), ShouldEqual, "req-42")
			})
		})
	})
}

func TestItemsHandler_Create(t *testing.T) {
	Convey("Given an items handler", t, func() {
		reg := newMockRegistry()
		handler := api.NewItemsHandler(reg)

		Convey("When creating a valid item", func() {
			body := `{"name": "apple", "description": "a red fruit"}`
			req := httptest.NewRequest("POST", "/items", strings.NewReader(body))
			w := httptest.NewRecorder()

			Convey("Then it should return 201 with the assigned id", func() {
				handler.HandleCollection(w, req)
				So(w.Code, ShouldEqual, http.StatusCreated)

				var item model.Item
				So(json.NewDecoder(w.Body).Decode(&item), ShouldBeNil)
				So(item.ID, ShouldEqual, 1)
				So(item.Name, ShouldEqual, "apple")
				So(item.Description, ShouldNotBeNil)
				So(*item.Description, ShouldEqual, "a red fruit")
			})
		})

		Convey("When the body is not valid JSON", func() {
			req := httptest.NewRequest("POST", "/items", strings.NewReader(`{not json`))
			w := httptest.NewRecorder()

			Convey("Then it should return 422", func() {
				handler.HandleCollection(w, req)
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			})
		})

		Convey("When the name is missing", func() {
			req := httptest.NewRequest("POST", "/items", strings.NewReader(`{"description": "no name"}`))
			w := httptest.NewRecorder()

			Convey("Then it should return 422 naming the field", func() {
				handler.HandleCollection(w, req)
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)

				var resp errorResponse
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp.Code, ShouldEqual, "validation_error")
				So(resp.Message, ShouldContainSubstring, "name")
			})
		})

		Convey("When the name is blank", func() {
			req := httptest.NewRequest("POST", "/items", strings.NewReader(`{"name": "   "}`))
			w := httptest.NewRecorder()

			Convey("Then it should return 422", func() {
				handler.HandleCollection(w, req)
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			})
		})

		Convey("When the name already exists", func() {
			first := httptest.NewRequest("POST", "/items", strings.NewReader(`{"name": "apple"}`))
			handler.HandleCollection(httptest.NewRecorder(), first)

			req := httptest.NewRequest("POST", "/items", strings.NewReader(`{"name": " Apple "}`))
			w := httptest.NewRecorder()

			Convey("Then it should return 400 with a duplicate_name code", func() {
				handler.HandleCollection(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var resp errorResponse
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp.Code, ShouldEqual, "duplicate_name")
			})
		})

		Convey("When the registry fails unexpectedly", func() {
			reg.createErr = fmt.Errorf("boom")
			req := httptest.NewRequest("POST", "/items", strings.NewReader(`{"name": "apple"}`))
			w := httptest.NewRecorder()

			Convey("Then it should return 500", func() {
				handler.HandleCollection(w, req)
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})

		Convey("When using an unsupported method on the collection", func() {
			req := httptest.NewRequest("PUT", "/items", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return not found", func() {
				handler.HandleCollection(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestItemsHandler_List(t *testing.T) {
	Convey("Given a handler with stored items", t, func() {
		reg := newMockRegistry()
		_, _ = reg.CreateItem(context.Background(), "apple", nil)
		_, _ = reg.CreateItem(context.Background(), "banana", nil)
		handler := api.NewItemsHandler(reg)

		Convey("When listing", func() {
			req := httptest.NewRequest("GET", "/items", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return the items in creation order", func() {
				handler.HandleCollection(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")

				var items []model.Item
				So(json.NewDecoder(w.Body).Decode(&items), ShouldBeNil)
				So(len(items), ShouldEqual, 2)
				So(items[0].Name, ShouldEqual, "apple")
				So(items[1].Name, ShouldEqual, "banana")
			})
		})
	})
}

func TestItemsHandler_Get(t *testing.T) {
	Convey("Given a handler with one stored item", t, func() {
		reg := newMockRegistry()
		created, _ := reg.CreateItem(context.Background(), "apple", nil)
		handler := api.NewItemsHandler(reg)

		Convey("When fetching it by id", func() {
			req := httptest.NewRequest("GET", "/items/1", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return the stored fields", func() {
				handler.HandleItem(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var item model.Item
				So(json.NewDecoder(w.Body).Decode(&item), ShouldBeNil)
				So(item, ShouldResemble, created)
			})
		})

		Convey("When fetching an unknown id", func() {
			req := httptest.NewRequest("GET", "/items/99", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return 404", func() {
				handler.HandleItem(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)

				var resp errorResponse
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp.Code, ShouldEqual, "not_found")
			})
		})

		Convey("When the id is not an integer", func() {
			req := httptest.NewRequest("GET", "/items/apple", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return 422", func() {
				handler.HandleItem(w, req)
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			})
		})

		Convey("When the registry fails unexpectedly", func() {
			reg.getErr = errors.New("boom")
			req := httptest.NewRequest("GET", "/items/1", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return 500", func() {
				handler.HandleItem(w, req)
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})
	})
}

func TestItemsHandler_Delete(t *testing.T) {
	Convey("Given a handler with one stored item", t, func() {
		reg := newMockRegistry()
		_, _ = reg.CreateItem(context.Background(), "apple", nil)
		handler := api.NewItemsHandler(reg)

		Convey("When deleting it", func() {
			req := httptest.NewRequest("DELETE", "/items/1", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return 204 with an empty body", func() {
				handler.HandleItem(w, req)
				So(w.Code, ShouldEqual, http.StatusNoContent)
				So(w.Body.Len(), ShouldEqual, 0)
			})
		})

		Convey("When deleting an unknown id", func() {
			req := httptest.NewRequest("DELETE", "/items/99", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return 404", func() {
				handler.HandleItem(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestHealthHandler_HandleHealth(t *testing.T) {
	Convey("Given a health handler", t, func() {
		handler := api.NewHealthHandler("staging")

		Convey("When handling a health check request", func() {
			req := httptest.NewRequest("GET", "/health", nil)
			w := httptest.NewRecorder()

			Convey("Then it should report ok with the environment", func() {
				handler.HandleHealth(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var resp map[string]string
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp["status"], ShouldEqual, "ok")
				So(resp["env"], ShouldEqual, "staging")
			})
		})
	})
}

func TestStatsHandler_HandleStats(t *testing.T) {
	Convey("Given a stats handler", t, func() {
		provider := &mockStatsProvider{
			stats: map[string]interface{}{
				"itemCount": 3,
				"started":   true,
			},
		}
		handler := api.NewStatsHandler(provider)

		Convey("When handling a stats request", func() {
			req := httptest.NewRequest("GET", "/stats", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return the stats", func() {
				handler.HandleStats(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var resp map[string]interface{}
				So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
				So(resp["itemCount"], ShouldEqual, 3)
				So(resp["started"], ShouldEqual, true)
			})
		})
	})
}

func TestItemLifecycleScenario(t *testing.T) {
	Convey("Given a freshly registered API", t, func() {
		mux := newTestMux(newMockRegistry())

		do := func(method, path, body string) *httptest.ResponseRecorder {
			var req *http.Request
			if body != "" {
				req = httptest.NewRequest(method, path, strings.NewReader(body))
			} else {
				req = httptest.NewRequest(method, path, nil)
			}
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			return w
		}

		Convey("When walking the create/list/delete scenario", func() {
			w := do("POST", "/items", `{"name": "apple"}`)
			So(w.Code, ShouldEqual, http.StatusCreated)
			var apple model.Item
			So(json.NewDecoder(w.Body).Decode(&apple), ShouldBeNil)
			So(apple.ID, ShouldEqual, 1)
			So(apple.Name, ShouldEqual, "apple")

			w = do("POST", "/items", `{"name": "banana"}`)
			So(w.Code, ShouldEqual, http.StatusCreated)
			var banana model.Item
			So(json.NewDecoder(w.Body).Decode(&banana), ShouldBeNil)
			So(banana.ID, ShouldEqual, 2)

			Convey("Then the list should hold both in creation order", func() {
				w := do("GET", "/items", "")
				So(w.Code, ShouldEqual, http.StatusOK)
				var items []model.Item
				So(json.NewDecoder(w.Body).Decode(&items), ShouldBeNil)
				So(len(items), ShouldEqual, 2)
				So(items[0].Name, ShouldEqual, "apple")
				So(items[1].Name, ShouldEqual, "banana")
			})

			Convey("And deleting the apple should make it unreachable", func() {
				So(do("DELETE", "/items/1", "").Code, ShouldEqual, http.StatusNoContent)
				So(do("GET", "/items/1", "").Code, ShouldEqual, http.StatusNotFound)

				w := do("GET", "/items", "")
				var items []model.Item
				So(json.NewDecoder(w.Body).Decode(&items), ShouldBeNil)
				So(len(items), ShouldEqual, 1)
				So(items[0].Name, ShouldEqual, "banana")
			})

			Convey("And the health endpoint should stay green throughout", func() {
				So(do("GET", "/health", "").Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}
