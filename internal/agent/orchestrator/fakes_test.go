package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/catalog"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/customer"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
)

// step is one scripted model answer. A nil msg with a nil err blocks until the
// call context is done.
type step struct {
	msg *schema.Message
	err error
}

type modelCall struct {
	model string
	bound bool
	input []*schema.Message
	opts  *einomodel.Options
}

// script is shared by every fake model built from one factory.
type script struct {
	mu    sync.Mutex
	steps []step
	calls []modelCall
}

func (s *script) push(steps ...step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, steps...)
}

func (s *script) recorded() []modelCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]modelCall(nil), s.calls...)
}

type fakeChatModel struct {
	name   string
	script *script
	tools  []*schema.ToolInfo
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	f.script.mu.Lock()
	in := make([]*schema.Message, len(input))
	copy(in, input)
	f.script.calls = append(f.script.calls, modelCall{
		model: f.name,
		bound: len(f.tools) > 0,
		input: in,
		opts:  einomodel.GetCommonOptions(&einomodel.Options{}, opts...),
	})
	if len(f.script.steps) == 0 {
		f.script.mu.Unlock()
		return nil, errors.New("script exhausted")
	}
	st := f.script.steps[0]
	f.script.steps = f.script.steps[1:]
	f.script.mu.Unlock()

	if st.msg == nil && st.err == nil {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return st.msg, st.err
}

func (f *fakeChatModel) Stream(context.Context, []*schema.Message, ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not supported")
}

func (f *fakeChatModel) WithTools(tools []*schema.ToolInfo) (einomodel.ToolCallingChatModel, error) {
	return &fakeChatModel{name: f.name, script: f.script, tools: tools}, nil
}

func (s *script) factory(ctx context.Context, name string) (einomodel.ToolCallingChatModel, error) {
	return &fakeChatModel{name: name, script: s}, nil
}

type fakeCatalog struct {
	shoes []model.Shoe

	mu       sync.Mutex
	searches []model.SearchCriteria
}

func (c *fakeCatalog) Search(_ context.Context, criteria model.SearchCriteria) (*catalog.SearchResult, error) {
	c.mu.Lock()
	c.searches = append(c.searches, criteria)
	c.mu.Unlock()

	var out []model.Shoe
	for _, s := range c.shoes {
		if criteria.Category != "" && !strings.EqualFold(s.Category, criteria.Category) {
			continue
		}
		if criteria.PriceMax.IsSet() {
			if limit, err := criteria.PriceMax.Float64(); err == nil && s.Price > limit {
				continue
			}
		}
		out = append(out, s)
	}
	return &catalog.SearchResult{FoundShoes: len(out), Shoes: out}, nil
}

func (c *fakeCatalog) Recommend(context.Context) (*catalog.RecommendResult, error) {
	return &catalog.RecommendResult{Recommendations: c.shoes}, nil
}

func (c *fakeCatalog) Facets(context.Context) (*catalog.FacetsResult, error) {
	return &catalog.FacetsResult{Brands: []string{"Nike"}, Categories: []string{"running"}}, nil
}

func (c *fakeCatalog) CheckAvailability(_ context.Context, name string, _ model.NumberArg) (*catalog.AvailabilityResult, error) {
	return &catalog.AvailabilityResult{Available: len(c.shoes) > 0, Shoes: c.shoes}, nil
}

type fakeCustomers struct {
	mu    sync.Mutex
	saved []customer.SaveRequest
	err   error
}

func (c *fakeCustomers) Save(_ context.Context, req customer.SaveRequest) (*customer.SaveResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	c.saved = append(c.saved, req)
	return &customer.SaveResult{Success: true, CustomerID: "cust-1", Message: "saved"}, nil
}

func (c *fakeCustomers) requests() []customer.SaveRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]customer.SaveRequest(nil), c.saved...)
}
