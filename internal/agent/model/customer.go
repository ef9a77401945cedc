package model

import "time"

// Turn is one non-system message of a conversation transcript.
type Turn struct {
	Role    string `json:"role" bson:"role"`
	Content string `json:"content" bson:"content"`
}

// Customer is the lead record persisted once a shopper shares contact details.
// Absent optional fields are omitted from the stored document.
type Customer struct {
	FirstName           string    `json:"first_name" bson:"first_name"`
	LastName            string    `json:"last_name,omitempty" bson:"last_name,omitempty"`
	Age                 *int      `json:"age,omitempty" bson:"age,omitempty"`
	Phone               string    `json:"phone,omitempty" bson:"phone,omitempty"`
	InterestedProducts  []string  `json:"interested_products" bson:"interested_products"`
	ConversationHistory []Turn    `json:"conversation_history" bson:"conversation_history"`
	CreatedAt           time.Time `json:"created_at" bson:"created_at"`
}
