package prompts

import (
	"fmt"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/tools"
)

// ContactRequest is sent in place of a model reply when the shopper looks ready to buy.
const ContactRequest = "I can see you're really interested in some of our shoes! 😊 " +
	"To help you with your purchase and keep you updated about availability and special offers, " +
	"could I get your first name?"

// Greeting opens an interactive session.
func Greeting(config model.PromptConfig) string {
	return fmt.Sprintf("Hello! Welcome to %s in %s! 👋\n"+
		"I'm %s, your shoe shopping assistant. How can I help you find the perfect shoes today?\n"+
		"You can tell me about:\n"+
		"• The occasion (running, work, casual, sports)\n"+
		"• Your preferred brand or style\n"+
		"• Your budget range in %s\n"+
		"• Your size (%s) and color preferences\n"+
		"• Or just ask for recommendations!",
		config.StoreName, config.StoreLocation, config.AssistantName, config.Currency, config.SizeSystem)
}

// Farewell closes an interactive session.
func Farewell(config model.PromptConfig) string {
	return fmt.Sprintf("Thanks for shopping with us at %s! Come back anytime! 👟✨", config.StoreName)
}

// ContactNote tells the model which contact detail to ask for next. It is
// added to the model input for one call and never stored.
func ContactNote(state *model.SessionState) string {
	info := state.ContactInfo
	switch state.ContactStep {
	case model.ContactStepLastName:
		return fmt.Sprintf("The customer's first name is %s. Thank them by name and ask for their last name. Keep it short.", info.FirstName)
	case model.ContactStepPhone:
		return "You are collecting the customer's contact details. Ask for their phone number so the store can reach them. Keep it short."
	case model.ContactStepAge:
		return "You are collecting the customer's contact details. Ask for their age, and say they can skip this question. Keep it short."
	case model.ContactStepDone:
		if state.CustomerSaved {
			return fmt.Sprintf("The customer's details are saved. Thank %s warmly and continue helping with their shoe choice. Do not call %s.", info.FirstName, tools.ToolSaveCustomerInfo)
		}
		return ""
	default:
		return ""
	}
}
