package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/require"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/catalog"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/customer"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
	errx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/core/error"
)

type mockCatalog struct {
	criteria []model.SearchCriteria
	shoes    []model.Shoe
	err      error
}

func (m *mockCatalog) Search(_ context.Context, c model.SearchCriteria) (*catalog.SearchResult, error) {
	m.criteria = append(m.criteria, c)
	if m.err != nil {
		return nil, m.err
	}
	if _, err := catalog.BuildFilter(c); err != nil {
		return nil, err
	}
	return &catalog.SearchResult{FoundShoes: len(m.shoes), Shoes: m.shoes, Message: "found"}, nil
}

func (m *mockCatalog) Recommend(context.Context) (*catalog.RecommendResult, error) {
	return &catalog.RecommendResult{Recommendations: m.shoes, Message: "top"}, m.err
}

func (m *mockCatalog) Facets(context.Context) (*catalog.FacetsResult, error) {
	return &catalog.FacetsResult{Brands: []string{"Nike"}, Message: "facets"}, m.err
}

func (m *mockCatalog) CheckAvailability(_ context.Context, name string, size model.NumberArg) (*catalog.AvailabilityResult, error) {
	return &catalog.AvailabilityResult{Available: name != "", Shoes: m.shoes}, m.err
}

type mockCustomers struct {
	requests []customer.SaveRequest
	err      error
}

func (m *mockCustomers) Save(_ context.Context, req customer.SaveRequest) (*customer.SaveResult, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &customer.SaveResult{Success: true, CustomerID: "c-1", Message: "saved"}, nil
}

func newTestRegistry(t *testing.T, c *mockCatalog, cu *mockCustomers) *Registry {
	t.Helper()
	r, err := NewRegistry(c, cu)
	require.NoError(t, err)
	return r
}

func invoke(t *testing.T, r *Registry, ctx context.Context, name, args string) map[string]any {
	t.Helper()
	for _, bt := range r.Tools() {
		info, err := bt.Info(ctx)
		require.NoError(t, err)
		if info.Name != name {
			continue
		}
		out, err := bt.(tool.InvokableTool).InvokableRun(ctx, args)
		require.NoError(t, err, "tools report failures as payloads")
		var payload map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &payload))
		return payload
	}
	t.Fatalf("tool %s not registered", name)
	return nil
}

func TestRegistryDescriptors(t *testing.T) {
	r := newTestRegistry(t, &mockCatalog{}, &mockCustomers{})

	require.Equal(t, []string{
		ToolCheckAvailability,
		ToolGetBrandsAndCategories,
		ToolGetRecommendations,
		ToolSaveCustomerInfo,
		ToolSearchShoes,
	}, r.Names())
	require.Len(t, r.Infos(), 5)
	require.Len(t, r.Tools(), 5)
	for _, info := range r.Infos() {
		require.NotEmpty(t, info.Desc)
		require.NotNil(t, info.ParamsOneOf)
	}
	require.True(t, r.Has(ToolSearchShoes))
	require.False(t, r.Has("place_order"))
}

func TestSearchToolDecodesNumbersAndStrings(t *testing.T) {
	c := &mockCatalog{shoes: []model.Shoe{{Name: "Nike Running 1", InStock: true}}}
	r := newTestRegistry(t, c, &mockCustomers{})

	payload := invoke(t, r, context.Background(), ToolSearchShoes, `{"category":"running","price_max":"800","size":42}`)
	require.Equal(t, "found", payload["message"])
	require.Len(t, c.criteria, 1)
	require.Equal(t, "running", c.criteria[0].Category)
	require.Equal(t, model.NumberArg("800"), c.criteria[0].PriceMax)
	require.Equal(t, model.NumberArg("42"), c.criteria[0].Size)
}

func TestSearchToolInvalidArgumentBecomesPayload(t *testing.T) {
	r := newTestRegistry(t, &mockCatalog{}, &mockCustomers{})

	payload := invoke(t, r, context.Background(), ToolSearchShoes, `{"price_max":"cheap"}`)
	require.Contains(t, payload["error"], "invalid price_max")

	payload = invoke(t, r, context.Background(), ToolSearchShoes, `not json`)
	require.Contains(t, payload["error"], "invalid arguments for search_shoes")
}

func TestToolStoreFailureBecomesPayload(t *testing.T) {
	c := &mockCatalog{err: errx.UpstreamUnavailable("Recommendation error", errors.New("no reachable servers"))}
	r := newTestRegistry(t, c, &mockCustomers{})

	payload := invoke(t, r, context.Background(), ToolGetRecommendations, `{}`)
	require.Equal(t, "Recommendation error: no reachable servers", payload["error"])
}

func TestSaveCustomerToolUsesSession(t *testing.T) {
	cu := &mockCustomers{}
	r := newTestRegistry(t, &mockCatalog{}, cu)

	state := model.NewSessionState("s1")
	state.History = append(state.History, userTurn("I want these"))
	state.AddInterestedProduct("Nike Running 1")
	ctx := WithSession(context.Background(), state)

	payload := invoke(t, r, ctx, ToolSaveCustomerInfo, `{"first_name":"Imad","age":"30"}`)
	require.Equal(t, true, payload["success"])
	require.Equal(t, "c-1", payload["customer_id"])

	require.Len(t, cu.requests, 1)
	require.Equal(t, []string{"Nike Running 1"}, cu.requests[0].InterestedProducts)
	require.Equal(t, []model.Turn{{Role: "user", Content: "I want these"}}, cu.requests[0].ConversationHistory)
	require.True(t, state.CustomerSaved)
	require.Equal(t, "c-1", state.CustomerID)
}

func TestSaveCustomerToolRequiresFirstName(t *testing.T) {
	cu := &mockCustomers{}
	r := newTestRegistry(t, &mockCatalog{}, cu)

	payload := invoke(t, r, context.Background(), ToolSaveCustomerInfo, `{"last_name":"Dabli"}`)
	require.Contains(t, payload["error"], "invalid arguments for save_customer_info")
	require.Empty(t, cu.requests)
}

func TestSaveCustomerToolFailureShape(t *testing.T) {
	cu := &mockCustomers{err: errors.New("duplicate")}
	r := newTestRegistry(t, &mockCatalog{}, cu)

	payload := invoke(t, r, context.Background(), ToolSaveCustomerInfo, `{"first_name":"Sara"}`)
	require.Equal(t, false, payload["success"])
	require.Equal(t, "duplicate", payload["error"])
}

func TestNormalizeArguments(t *testing.T) {
	r := newTestRegistry(t, &mockCatalog{}, &mockCustomers{})
	ctx := context.Background()

	out, err := r.NormalizeArguments(ctx, ToolSearchShoes, `{"brand":"  Nike ","color":7,"in_stock_only":"false","limit":50,"gender":null}`)
	require.NoError(t, err)
	require.JSONEq(t, `{"brand":"Nike","color":"7","in_stock_only":false}`, out)

	out, err = r.NormalizeArguments(ctx, ToolGetBrandsAndCategories, ``)
	require.NoError(t, err)
	require.Equal(t, "{}", out)

	out, err = r.NormalizeArguments(ctx, ToolSearchShoes, `[1,2]`)
	require.NoError(t, err)
	require.Equal(t, `[1,2]`, out)

	out, err = r.NormalizeArguments(ctx, "unknown", `{"a":1}`)
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, out)
}

func TestUnknownTool(t *testing.T) {
	r := newTestRegistry(t, &mockCatalog{}, &mockCustomers{})
	out, err := r.UnknownTool(context.Background(), "place_order", `{}`)
	require.NoError(t, err)
	require.Equal(t, "Error: Function place_order not found", out)
}

func TestShoesFromResult(t *testing.T) {
	shoes, ok := ShoesFromResult(`{"found_shoes":1,"shoes":[{"name":"Nike Running 1","in_stock":true}],"message":"x"}`)
	require.True(t, ok)
	require.Equal(t, "Nike Running 1", shoes[0].Name)

	shoes, ok = ShoesFromResult(`{"recommendations":[{"name":"Puma Casual 3"}]}`)
	require.True(t, ok)
	require.Len(t, shoes, 1)

	_, ok = ShoesFromResult(`{"available_brands":["Nike"]}`)
	require.False(t, ok)
	_, ok = ShoesFromResult(`Error: Function x not found`)
	require.False(t, ok)
}

func userTurn(content string) *schema.Message {
	return schema.UserMessage(content)
}
