package tools

import "github.com/cloudwego/eino/schema"

const (
	ToolSearchShoes            = "search_shoes"
	ToolGetRecommendations     = "get_shoe_recommendations"
	ToolGetBrandsAndCategories = "get_brands_and_categories"
	ToolCheckAvailability      = "check_shoe_availability"
	ToolSaveCustomerInfo       = "save_customer_info"
)

var searchShoesParams = map[string]*schema.ParameterInfo{
	"brand":         {Type: schema.String, Desc: "Shoe brand, e.g. Nike, Adidas, Puma, Reebok, New Balance"},
	"category":      {Type: schema.String, Desc: "Shoe category, e.g. Running, Basketball, Casual, Training"},
	"price_min":     {Type: schema.Number, Desc: "Minimum price in DH"},
	"price_max":     {Type: schema.Number, Desc: "Maximum price in DH"},
	"color":         {Type: schema.String, Desc: "Shoe color"},
	"gender":        {Type: schema.String, Desc: "Target gender: Men, Women or Unisex"},
	"size":          {Type: schema.Number, Desc: "Shoe size (EU, 36-47)"},
	"in_stock_only": {Type: schema.Boolean, Desc: "Only show in-stock items (default true)"},
	"min_rating":    {Type: schema.Number, Desc: "Minimum rating (1-5)"},
}

var recommendationsParams = map[string]*schema.ParameterInfo{
	"preferences": {Type: schema.String, Desc: "Customer preferences in free text"},
}

var availabilityParams = map[string]*schema.ParameterInfo{
	"shoe_name": {Type: schema.String, Desc: "Name of the shoe"},
	"size":      {Type: schema.Number, Desc: "Shoe size (EU)"},
}

var saveCustomerParams = map[string]*schema.ParameterInfo{
	"first_name": {Type: schema.String, Desc: "Customer's first name", Required: true},
	"last_name":  {Type: schema.String, Desc: "Customer's last name"},
	"age":        {Type: schema.Number, Desc: "Customer's age"},
	"phone":      {Type: schema.String, Desc: "Customer's phone number"},
	"interested_products": {
		Type:     schema.Array,
		Desc:     "Names of the shoes the customer is interested in",
		ElemInfo: &schema.ParameterInfo{Type: schema.String},
	},
	"conversation_history": {
		Type: schema.Array,
		Desc: "Conversation turns as {role, content} objects",
		ElemInfo: &schema.ParameterInfo{
			Type: schema.Object,
			SubParams: map[string]*schema.ParameterInfo{
				"role":    {Type: schema.String},
				"content": {Type: schema.String},
			},
		},
	},
}

func toolInfo(name, desc string, params map[string]*schema.ParameterInfo) *schema.ToolInfo {
	if params == nil {
		params = map[string]*schema.ParameterInfo{}
	}
	return &schema.ToolInfo{
		Name:        name,
		Desc:        desc,
		ParamsOneOf: schema.NewParamsOneOfByParams(params),
	}
}

var (
	searchShoesInfo = toolInfo(ToolSearchShoes,
		"Search the store inventory for shoes matching the customer's preferences. All criteria are optional and combined.",
		searchShoesParams)
	recommendationsInfo = toolInfo(ToolGetRecommendations,
		"Get the top-rated shoes currently in stock as general recommendations.",
		recommendationsParams)
	facetsInfo = toolInfo(ToolGetBrandsAndCategories,
		"Get the brands, categories and colors available in the store.",
		nil)
	availabilityInfo = toolInfo(ToolCheckAvailability,
		"Check whether a specific shoe is in stock, optionally in a given EU size.",
		availabilityParams)
	saveCustomerInfo = toolInfo(ToolSaveCustomerInfo,
		"Save the customer's contact information once they have shared it. Only first_name is required.",
		saveCustomerParams)
)
