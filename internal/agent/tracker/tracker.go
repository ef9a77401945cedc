package tracker

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
)

const (
	DefaultMinInterest = 2
	DefaultMinTurns    = 3
)

var (
	declineWords = map[string]struct{}{
		"skip": {}, "no": {}, "nope": {}, "pass": {}, "non": {},
	}
	declinePhrases = []string{"prefer not", "rather not", "don't want to say"}
)

// Tracker scores purchase intent and walks the contact-gathering steps.
type Tracker struct {
	scorer      InterestScorer
	extractor   ContactExtractor
	minInterest int
	minTurns    int
}

// New builds a Tracker. Nil collaborators fall back to the keyword scorer and
// the regex extractor.
func New(scorer InterestScorer, extractor ContactExtractor) *Tracker {
	if scorer == nil {
		scorer = NewKeywordScorer()
	}
	if extractor == nil {
		extractor = NewRegexExtractor()
	}
	return &Tracker{
		scorer:      scorer,
		extractor:   extractor,
		minInterest: DefaultMinInterest,
		minTurns:    DefaultMinTurns,
	}
}

// Observation describes what one user message changed.
type Observation struct {
	InterestDelta int
	Fragments     ContactFragments
	StepBefore    model.ContactStep
	StepAfter     model.ContactStep
	// ReadyToSave is set on the turn the contact sequence reaches done.
	ReadyToSave bool
}

// Observe folds one user message into state.
func (t *Tracker) Observe(state *model.SessionState, text string) Observation {
	state.Turns++

	obs := Observation{StepBefore: state.ContactStep}
	if delta := t.scorer.Score(text); delta > 0 {
		state.InterestScore += delta
		obs.InterestDelta = delta
	}

	obs.Fragments = t.extractor.Extract(text)
	if obs.Fragments.Phone != "" {
		state.ContactInfo.Phone = obs.Fragments.Phone
	}
	if obs.Fragments.Age > 0 {
		age := obs.Fragments.Age
		state.ContactInfo.Age = &age
	}

	if state.ContactGathering {
		obs.ReadyToSave = t.advance(state, text)
	}
	obs.StepAfter = state.ContactStep
	return obs
}

func (t *Tracker) advance(state *model.SessionState, text string) bool {
	start := state.ContactStep
	info := &state.ContactInfo
	words := strings.Fields(text)

	switch start {
	case model.ContactStepFirstName:
		if len(words) > 0 {
			info.FirstName = title(words[0])
			state.ContactStep = start.Next()
		}
	case model.ContactStepLastName:
		if len(words) > 0 {
			info.LastName = title(words[len(words)-1])
			state.ContactStep = start.Next()
		}
	case model.ContactStepAge:
		if info.Age == nil && declined(text) {
			state.ContactStep = start.Next()
		}
	}

	if state.ContactStep == model.ContactStepPhone && info.Phone != "" {
		state.ContactStep = state.ContactStep.Next()
	}
	if state.ContactStep == model.ContactStepAge && info.Age != nil {
		state.ContactStep = state.ContactStep.Next()
	}

	if state.ContactStep == model.ContactStepDone && start != model.ContactStepDone {
		state.ContactGathering = false
		return true
	}
	return false
}

// ShouldRequestContact reports whether the next reply should ask for contact
// details instead of calling the model.
func (t *Tracker) ShouldRequestContact(state *model.SessionState) bool {
	return state.InterestScore >= t.minInterest &&
		!state.ContactRequested &&
		!state.CustomerSaved &&
		state.Turns >= t.minTurns &&
		len(state.InterestedProducts) > 0
}

// BeginContact starts the contact sequence. It happens at most once per session.
func (t *Tracker) BeginContact(state *model.SessionState) {
	state.ContactRequested = true
	state.ContactGathering = true
	state.ContactStep = model.ContactStepFirstName
}

// RecordProducts adds the names of in-stock shoes to the interested set and
// returns how many were new.
func (t *Tracker) RecordProducts(state *model.SessionState, shoes []model.Shoe) int {
	added := 0
	for _, s := range shoes {
		if s.InStock && state.AddInterestedProduct(s.Name) {
			added++
		}
	}
	return added
}

func title(word string) string {
	return cases.Title(language.Und).String(word)
}

func declined(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range declinePhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	for _, w := range strings.Fields(lower) {
		if _, ok := declineWords[strings.Trim(w, ".,!?")]; ok {
			return true
		}
	}
	return false
}
