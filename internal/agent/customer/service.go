package customer

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
	errx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/core/error"
	logx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/pkg/logger"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/pkg/phone"
)

const msgSaved = "Customer information saved successfully!"

// Store inserts customer documents and returns the new record id.
type Store interface {
	Insert(ctx context.Context, c *model.Customer) (string, error)
}

type SaveRequest struct {
	FirstName           string          `json:"first_name" validate:"required,max=100"`
	LastName            string          `json:"last_name,omitempty" validate:"max=100"`
	Age                 model.NumberArg `json:"age,omitempty"`
	Phone               string          `json:"phone,omitempty" validate:"max=32"`
	InterestedProducts  []string        `json:"interested_products,omitempty"`
	ConversationHistory []model.Turn    `json:"conversation_history,omitempty"`
}

type SaveResult struct {
	Success    bool   `json:"success"`
	CustomerID string `json:"customer_id,omitempty"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Failed builds the result reported when a save does not go through.
func Failed(err error) *SaveResult {
	return &SaveResult{Success: false, Error: err.Error()}
}

type Service struct {
	store    Store
	validate *validator.Validate
	region   string
	now      func() time.Time
}

func NewService(store Store, phoneRegion string) (*Service, error) {
	if store == nil {
		return nil, errors.New("customer store is required")
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Service{
		store:    store,
		validate: v,
		region:   phoneRegion,
		now:      time.Now,
	}, nil
}

// Save validates and stores one customer record. Optional fields left empty
// are not written. Nothing is written when validation fails.
func (s *Service) Save(ctx context.Context, req SaveRequest) (*SaveResult, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Phone = strings.TrimSpace(req.Phone)

	if err := s.validate.Struct(req); err != nil {
		return nil, errx.Validation(validationMessage(err), err)
	}

	doc := &model.Customer{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		InterestedProducts:  req.InterestedProducts,
		ConversationHistory: req.ConversationHistory,
		CreatedAt:           s.now().UTC(),
	}
	if doc.InterestedProducts == nil {
		doc.InterestedProducts = []string{}
	}
	if doc.ConversationHistory == nil {
		doc.ConversationHistory = []model.Turn{}
	}
	if req.Phone != "" {
		doc.Phone = phone.NormalizeE164(req.Phone, s.region)
	}
	if req.Age.IsSet() {
		age, err := req.Age.Int()
		if err != nil {
			return nil, errx.InvalidArgument("invalid age", err)
		}
		if age < 0 || age > 120 {
			return nil, errx.Validation("age out of range", nil)
		}
		if age > 0 {
			doc.Age = &age
		}
	}

	id, err := s.store.Insert(ctx, doc)
	if err != nil {
		return nil, errx.UpstreamUnavailable("Error saving customer", err)
	}
	logx.Info().Str("customer_id", id).Int("interested_products", len(doc.InterestedProducts)).Msg("customer saved")

	return &SaveResult{Success: true, CustomerID: id, Message: msgSaved}, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid customer information"
	}
	f := verrs[0]
	if f.Tag() == "required" {
		return fmt.Sprintf("%s is required", f.Field())
	}
	return fmt.Sprintf("%s is invalid", f.Field())
}
