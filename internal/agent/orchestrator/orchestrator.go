package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/conversations"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/customer"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/prompts"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/tools"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/tracker"
	errx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/core/error"
	logx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/pkg/logger"
)

// DefaultSessionID is used when a caller does not name a session.
const DefaultSessionID = "default"

const (
	defaultCallTimeout = 45 * time.Second
	defaultTemperature = 0.7
	defaultTopP        = 0.9
)

// Config holds everything the orchestrator needs. Tracker, Messages and
// Callbacks are optional.
type Config struct {
	Sessions  model.SessionStore
	Registry  *tools.Registry
	Customers tools.Customers
	Models    *ModelPool
	Tracker   *tracker.Tracker
	Messages  *conversations.MessagesManager
	Callbacks einocb.Handler

	Prompt          model.PromptConfig
	Temperature     float32
	TopP            float32
	CallTimeout     time.Duration
	SanitizeReplies bool
}

// Reply is the result of one chat turn. Shoes is nil, encoded as null, when no
// shoe-bearing tool ran during the turn.
type Reply struct {
	Message   string       `json:"message"`
	Shoes     []model.Shoe `json:"shoes_data"`
	SessionID string       `json:"session_id"`
}

// Orchestrator runs chat turns: one model call with the tools offered, the
// requested tools, then a second model call without tools for the final reply.
// CLI and HTTP share one instance.
type Orchestrator struct {
	sessions  model.SessionStore
	registry  *tools.Registry
	customers tools.Customers
	models    *ModelPool
	tracker   *tracker.Tracker
	messages  *conversations.MessagesManager
	callbacks einocb.Handler
	toolsNode *compose.ToolsNode
	locks     *keyedMutex

	systemPrompt string
	temperature  float32
	topP         float32
	callTimeout  time.Duration
	sanitize     bool
}

func New(ctx context.Context, cfg Config) (*Orchestrator, error) {
	if cfg.Sessions == nil {
		return nil, errors.New("orchestrator: session store is nil")
	}
	if cfg.Registry == nil || cfg.Customers == nil {
		return nil, errors.New("orchestrator: tool registry and customers are required")
	}
	if cfg.Models == nil {
		return nil, errors.New("orchestrator: model pool is nil")
	}

	o := &Orchestrator{
		sessions:    cfg.Sessions,
		registry:    cfg.Registry,
		customers:   cfg.Customers,
		models:      cfg.Models,
		tracker:     cfg.Tracker,
		messages:    cfg.Messages,
		callbacks:   cfg.Callbacks,
		locks:       newKeyedMutex(),
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		callTimeout: cfg.CallTimeout,
		sanitize:    cfg.SanitizeReplies,
	}
	if o.tracker == nil {
		o.tracker = tracker.New(nil, nil)
	}
	if o.messages == nil {
		o.messages = conversations.NewMessagesManager(model.ChatConfig{})
	}
	if o.temperature <= 0 {
		o.temperature = defaultTemperature
	}
	if o.topP <= 0 {
		o.topP = defaultTopP
	}
	if o.callTimeout <= 0 {
		o.callTimeout = defaultCallTimeout
	}

	toolsNode, err := compose.NewToolNode(ctx, &compose.ToolsNodeConfig{
		Tools:                cfg.Registry.Tools(),
		ExecuteSequentially:  true,
		UnknownToolsHandler:  cfg.Registry.UnknownTool,
		ToolArgumentsHandler: cfg.Registry.NormalizeArguments,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Failed to create tools node")
		return nil, fmt.Errorf("failed to create tools node: %w", err)
	}
	o.toolsNode = toolsNode

	systemPrompt, err := prompts.RenderSystem(o.withCallbacks(ctx, "system_prompt", "ChatTemplate", components.ComponentOfPrompt), cfg.Prompt)
	if err != nil {
		return nil, err
	}
	o.systemPrompt = systemPrompt

	logx.Debug().Strs("tools", cfg.Registry.Names()).Str("model", cfg.Models.Name()).Msg("orchestrator ready")
	return o, nil
}

// Chat runs one turn for sessionID and returns the assistant reply.
func (o *Orchestrator) Chat(ctx context.Context, sessionID, text string) (*Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errx.InvalidArgument("Message is required", nil)
	}
	if sessionID = strings.TrimSpace(sessionID); sessionID == "" {
		sessionID = DefaultSessionID
	}
	ctx = logx.WithSession(ctx, sessionID)

	unlock := o.locks.Lock(sessionID)
	defer unlock()

	state, err := o.sessions.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	o.messages.StartIfEmpty(state, o.systemPrompt)
	mark := o.messages.AppendUser(state, text)

	obs := o.tracker.Observe(state, text)
	if obs.StepBefore != obs.StepAfter {
		logx.Ctx(ctx).Debug().
			Str("step_before", string(obs.StepBefore)).
			Str("step_after", string(obs.StepAfter)).
			Msg("contact step advanced")
	}
	if obs.ReadyToSave && !state.CustomerSaved {
		o.saveCustomer(ctx, state)
	}

	if o.tracker.ShouldRequestContact(state) {
		o.tracker.BeginContact(state)
		state.History = append(state.History, schema.AssistantMessage(prompts.ContactRequest, nil))
		logx.Ctx(ctx).Info().Int("interest_score", state.InterestScore).Msg("requesting contact details")
		if err := o.save(ctx, state); err != nil {
			return nil, err
		}
		return &Reply{Message: prompts.ContactRequest, SessionID: sessionID}, nil
	}

	var note string
	if state.ContactGathering || obs.ReadyToSave {
		note = prompts.ContactNote(state)
	}

	content, shoes, err := o.respond(ctx, state, note)
	if err != nil {
		o.messages.Rollback(state, mark)
		// A caller that went away says nothing about the model; keep it.
		if cerr := ctx.Err(); cerr != nil {
			logx.Ctx(ctx).Info().Err(err).Msg("turn abandoned by caller")
			err = cerr
		} else {
			next := o.models.Rotate()
			logx.Ctx(ctx).Warn().Err(err).Str("next_model", next).Msg("model turn failed; rotating model")
		}
		if serr := o.save(context.WithoutCancel(ctx), state); serr != nil {
			logx.Ctx(ctx).Error().Err(serr).Msg("failed to save session after model failure")
		}
		return nil, err
	}

	if err := o.save(ctx, state); err != nil {
		return nil, err
	}

	if o.sanitize {
		content = SanitizeReply(content)
	}
	return &Reply{Message: content, Shoes: shoes, SessionID: sessionID}, nil
}

// EndSession finalises a session: contact details collected so far are saved
// when a first name is known and nothing was saved yet, then the session is
// dropped. The save result is nil when no save was attempted.
func (o *Orchestrator) EndSession(ctx context.Context, sessionID string) (*customer.SaveResult, error) {
	if sessionID = strings.TrimSpace(sessionID); sessionID == "" {
		sessionID = DefaultSessionID
	}
	ctx = logx.WithSession(ctx, sessionID)

	unlock := o.locks.Lock(sessionID)
	defer unlock()

	state, err := o.sessions.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var res *customer.SaveResult
	if state.ContactInfo.FirstName != "" && !state.CustomerSaved {
		res = o.saveCustomer(ctx, state)
	}
	if err := o.sessions.Delete(ctx, sessionID); err != nil {
		return res, err
	}
	logx.Ctx(ctx).Debug().Msg("session ended")
	return res, nil
}

// respond runs the model calls of one turn and appends the resulting messages
// to the history. It returns the raw final content and the shoes of the last
// shoe-bearing tool result.
func (o *Orchestrator) respond(ctx context.Context, state *model.SessionState, note string) (string, []model.Shoe, error) {
	cm, err := o.models.Current(ctx)
	if err != nil {
		return "", nil, errx.ModelCallFailed(o.models.Name(), err)
	}

	first, err := o.generate(ctx, cm.Name, cm.WithTools, o.messages.BuildModelInput(state, note),
		einomodel.WithToolChoice(schema.ToolChoiceAllowed))
	if err != nil {
		return "", nil, err
	}
	if len(first.ToolCalls) == 0 {
		state.History = append(state.History, schema.AssistantMessage(first.Content, nil))
		return first.Content, nil, nil
	}

	assignToolCallIDs(state.History, first)
	state.History = append(state.History, first)
	logx.Ctx(ctx).Debug().Int("tool_count", len(first.ToolCalls)).Msg("Calling tools")

	toolCtx := tools.WithSession(o.withCallbacks(ctx, "tools", "ToolsNode", compose.ComponentOfToolsNode), state)
	results, err := o.toolsNode.Invoke(toolCtx, first)
	if err != nil {
		return "", nil, errx.Internal(fmt.Errorf("tool execution: %w", err))
	}

	var shoes []model.Shoe
	for _, res := range results {
		state.History = append(state.History, res)
		if found, ok := tools.ShoesFromResult(res.Content); ok {
			shoes = found
			if added := o.tracker.RecordProducts(state, found); added > 0 {
				logx.Ctx(ctx).Debug().Int("added", added).Msg("interested products updated")
			}
		}
	}

	second, err := o.generate(ctx, cm.Name, cm.Base, o.messages.BuildModelInput(state, note))
	if err != nil {
		return "", nil, err
	}
	state.History = append(state.History, schema.AssistantMessage(second.Content, nil))
	return second.Content, shoes, nil
}

func (o *Orchestrator) generate(ctx context.Context, name string, cm einomodel.BaseChatModel, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
	defer cancel()
	callCtx = o.withCallbacks(callCtx, name, "ChatModel", components.ComponentOfChatModel)

	opts = append(opts, einomodel.WithTemperature(o.temperature), einomodel.WithTopP(o.topP))
	out, err := cm.Generate(callCtx, input, opts...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return nil, errx.UpstreamTimeout("Model call timed out", err)
		}
		return nil, errx.ModelCallFailed(name, err)
	}
	if out == nil {
		return nil, errx.ModelCallFailed(name, errors.New("empty response"))
	}
	logUsage(ctx, name, out)
	return out, nil
}

func (o *Orchestrator) withCallbacks(ctx context.Context, name, typ string, component components.Component) context.Context {
	if o.callbacks == nil {
		return ctx
	}
	return einocb.InitCallbacks(ctx, &einocb.RunInfo{Name: name, Type: typ, Component: component}, o.callbacks)
}

// saveCustomer stores the contact details and transcript gathered so far. A
// failed save is logged and leaves the session unsaved.
func (o *Orchestrator) saveCustomer(ctx context.Context, state *model.SessionState) *customer.SaveResult {
	info := state.ContactInfo
	req := customer.SaveRequest{
		FirstName:           info.FirstName,
		LastName:            info.LastName,
		Phone:               info.Phone,
		InterestedProducts:  append([]string(nil), state.InterestedProducts...),
		ConversationHistory: state.Transcript(),
	}
	if info.Age != nil {
		req.Age = model.Number(float64(*info.Age))
	}

	res, err := o.customers.Save(ctx, req)
	if err != nil {
		logx.Ctx(ctx).Error().Err(err).Msg("failed to save customer")
		return customer.Failed(err)
	}
	state.CustomerSaved = true
	state.CustomerID = res.CustomerID
	logx.Ctx(ctx).Info().Str("customer_id", res.CustomerID).Msg("customer details saved")
	return res
}

func (o *Orchestrator) save(ctx context.Context, state *model.SessionState) error {
	if err := o.sessions.Save(ctx, state.SessionID, state); err != nil {
		logx.Ctx(ctx).Error().Err(err).Msg("failed to save session")
		return err
	}
	return nil
}

// assignToolCallIDs fills in ids some providers leave empty, numbering on from
// the tool calls already in history so ids stay unique within the session.
func assignToolCallIDs(history []*schema.Message, msg *schema.Message) {
	seq := 0
	for _, m := range history {
		if m != nil {
			seq += len(m.ToolCalls)
		}
	}
	for i := range msg.ToolCalls {
		seq++
		if strings.TrimSpace(msg.ToolCalls[i].ID) == "" {
			msg.ToolCalls[i].ID = fmt.Sprintf("call_%d", seq)
		}
	}
}

func logUsage(ctx context.Context, name string, out *schema.Message) {
	if out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return
	}
	usage := out.ResponseMeta.Usage
	inC, outC, totalC := model.ComputeCost(usage, model.ResolvePricing(name))
	logx.Ctx(ctx).Debug().
		Str("model", name).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
}
