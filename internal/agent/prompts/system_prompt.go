package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/tools"
)

//go:embed template/system_prompt.txt
var coreSystemPrompt string

// RenderSystem renders the assistant persona through the eino prompt component
// so prompt callbacks fire.
func RenderSystem(ctx context.Context, config model.PromptConfig) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(coreSystemPrompt),
	)
	vars := map[string]any{
		"AssistantName":    config.AssistantName,
		"StoreName":        config.StoreName,
		"StoreLocation":    config.StoreLocation,
		"Currency":         config.Currency,
		"SizeSystem":       config.SizeSystem,
		"SearchTool":       tools.ToolSearchShoes,
		"RecommendTool":    tools.ToolGetRecommendations,
		"FacetsTool":       tools.ToolGetBrandsAndCategories,
		"AvailabilityTool": tools.ToolCheckAvailability,
		"SaveTool":         tools.ToolSaveCustomerInfo,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("system prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("system prompt render: empty result")
	}
	return msgs[0].Content, nil
}
