package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"github.com/go-playground/validator/v10"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/catalog"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/customer"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
	errx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/core/error"
	logx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/pkg/logger"
)

// Catalog is the read side of the shoe inventory.
type Catalog interface {
	Search(ctx context.Context, criteria model.SearchCriteria) (*catalog.SearchResult, error)
	Recommend(ctx context.Context) (*catalog.RecommendResult, error)
	Facets(ctx context.Context) (*catalog.FacetsResult, error)
	CheckAvailability(ctx context.Context, name string, size model.NumberArg) (*catalog.AvailabilityResult, error)
}

// Customers persists customer leads.
type Customers interface {
	Save(ctx context.Context, req customer.SaveRequest) (*customer.SaveResult, error)
}

type RecommendationsInput struct {
	Preferences string `json:"preferences,omitempty"`
}

type FacetsInput struct{}

type AvailabilityInput struct {
	ShoeName string          `json:"shoe_name,omitempty"`
	Size     model.NumberArg `json:"size,omitempty"`
}

// Registry is the fixed set of tools offered to the model. It is immutable
// after NewRegistry and safe for concurrent use.
type Registry struct {
	catalog   Catalog
	customers Customers

	tools  []tool.BaseTool
	infos  []*schema.ToolInfo
	params map[string]map[string]*schema.ParameterInfo
}

func NewRegistry(c Catalog, customers Customers) (*Registry, error) {
	if c == nil || customers == nil {
		return nil, errors.New("tools: catalog and customers are required")
	}
	r := &Registry{
		catalog:   c,
		customers: customers,
		params:    map[string]map[string]*schema.ParameterInfo{},
	}
	v := validator.New()

	r.add(newTool(searchShoesInfo, v, r.searchShoes), searchShoesInfo, searchShoesParams)
	r.add(newTool(recommendationsInfo, v, r.recommendations), recommendationsInfo, recommendationsParams)
	r.add(newTool(facetsInfo, v, r.facets), facetsInfo, nil)
	r.add(newTool(availabilityInfo, v, r.checkAvailability), availabilityInfo, availabilityParams)
	r.add(newTool(saveCustomerInfo, v, r.saveCustomer), saveCustomerInfo, saveCustomerParams)

	return r, nil
}

func (r *Registry) add(t tool.BaseTool, info *schema.ToolInfo, params map[string]*schema.ParameterInfo) {
	if _, dup := r.params[info.Name]; dup {
		panic(fmt.Sprintf("tools: duplicate tool name %q", info.Name))
	}
	if params == nil {
		params = map[string]*schema.ParameterInfo{}
	}
	r.tools = append(r.tools, t)
	r.infos = append(r.infos, info)
	r.params[info.Name] = params
}

// Tools returns the executable tools in descriptor order.
func (r *Registry) Tools() []tool.BaseTool {
	return append([]tool.BaseTool(nil), r.tools...)
}

// Infos returns the descriptors advertised to the model.
func (r *Registry) Infos() []*schema.ToolInfo {
	return append([]*schema.ToolInfo(nil), r.infos...)
}

// Names returns the tool names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.params))
	for n := range r.params {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Has(name string) bool {
	_, ok := r.params[name]
	return ok
}

// UnknownTool answers a call to a tool that is not registered. The text is fed
// back to the model; the turn continues.
func (r *Registry) UnknownTool(_ context.Context, name, input string) (string, error) {
	err := errx.UnknownTool(name)
	logx.Warn().Str("code", string(err.Code)).Str("tool_name", name).Str("arguments", input).Msg("model requested an unknown tool")
	return "Error: " + err.Message, nil
}

// NormalizeArguments conforms model-produced arguments to the advertised
// parameters: undeclared keys and nulls are dropped, strings are trimmed,
// scalars sent for string parameters are stringified and "true"/"false"
// strings for boolean parameters become booleans. Arguments that are not a
// JSON object are passed through for the tool to reject.
func (r *Registry) NormalizeArguments(_ context.Context, name, arguments string) (string, error) {
	params, ok := r.params[name]
	if !ok {
		return arguments, nil
	}
	trimmed := strings.TrimSpace(arguments)
	if trimmed == "" || trimmed == "null" {
		return "{}", nil
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(trimmed), &m); err != nil {
		return arguments, nil
	}

	for k, v := range m {
		p, declared := params[k]
		if !declared {
			logx.Debug().Str("tool_name", name).Str("argument", k).Msg("dropping undeclared tool argument")
			delete(m, k)
			continue
		}
		if v == nil {
			delete(m, k)
			continue
		}
		switch p.Type {
		case schema.String:
			switch vv := v.(type) {
			case string:
				m[k] = strings.TrimSpace(vv)
			case float64, bool:
				m[k] = fmt.Sprint(vv)
			}
		case schema.Boolean:
			if s, ok := v.(string); ok {
				if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
					m[k] = b
				}
			}
		}
	}

	b, err := json.Marshal(m)
	if err != nil {
		return arguments, nil
	}
	return string(b), nil
}

func (r *Registry) searchShoes(ctx context.Context, in *model.SearchCriteria) (*catalog.SearchResult, error) {
	return r.catalog.Search(ctx, *in)
}

func (r *Registry) recommendations(ctx context.Context, in *RecommendationsInput) (*catalog.RecommendResult, error) {
	if in.Preferences != "" {
		logx.Debug().Str("preferences", in.Preferences).Msg("recommendations requested with preferences")
	}
	return r.catalog.Recommend(ctx)
}

func (r *Registry) facets(ctx context.Context, _ *FacetsInput) (*catalog.FacetsResult, error) {
	return r.catalog.Facets(ctx)
}

func (r *Registry) checkAvailability(ctx context.Context, in *AvailabilityInput) (*catalog.AvailabilityResult, error) {
	return r.catalog.CheckAvailability(ctx, in.ShoeName, in.Size)
}

// saveCustomer fills the transcript and interested products from the running
// session when the model leaves them out, and marks the session saved.
func (r *Registry) saveCustomer(ctx context.Context, in *customer.SaveRequest) (*customer.SaveResult, error) {
	req := *in
	state := SessionFrom(ctx)
	if state != nil {
		if len(req.ConversationHistory) == 0 {
			req.ConversationHistory = state.Transcript()
		}
		if len(req.InterestedProducts) == 0 {
			req.InterestedProducts = append([]string(nil), state.InterestedProducts...)
		}
	}

	res, err := r.customers.Save(ctx, req)
	if err != nil {
		return customer.Failed(err), nil
	}
	if state != nil {
		state.CustomerSaved = true
		state.CustomerID = res.CustomerID
	}
	return res, nil
}

// ShoesFromResult extracts shoe records from a tool payload. Only search,
// recommendation and availability payloads carry shoes.
func ShoesFromResult(content string) ([]model.Shoe, bool) {
	var payload struct {
		Shoes           []model.Shoe `json:"shoes"`
		Recommendations []model.Shoe `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, false
	}
	shoes := append(payload.Shoes, payload.Recommendations...)
	return shoes, len(shoes) > 0
}
