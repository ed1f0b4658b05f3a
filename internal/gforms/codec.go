package gforms

import "github.com/heartmarshall/formcraft-backend/internal/domain"

// DefaultQuestionTitle is used when the model omits a title.
const DefaultQuestionTitle = "Untitled Question"

// Scale questions ignore model output and always use this range.
const (
	scaleLow       = 1
	scaleHigh      = 5
	scaleLowLabel  = "Poor"
	scaleHighLabel = "Excellent"
)

// Encode maps a question kind and its options to the provider question body.
// Unknown kinds fall back to a single-line text question. Options are used
// only by choice kinds.
func Encode(kind domain.QuestionKind, options []string) Question {
	switch kind {
	case domain.QuestionKindParagraph:
		return Question{TextQuestion: &TextQuestion{Paragraph: true}}
	case domain.QuestionKindMultipleChoice:
		return Question{ChoiceQuestion: &ChoiceQuestion{Type: ChoiceRadio, Options: toOptions(options)}}
	case domain.QuestionKindCheckbox:
		return Question{ChoiceQuestion: &ChoiceQuestion{Type: ChoiceCheckbox, Options: toOptions(options)}}
	case domain.QuestionKindDropdown:
		return Question{ChoiceQuestion: &ChoiceQuestion{Type: ChoiceDropDown, Options: toOptions(options)}}
	case domain.QuestionKindScale:
		return Question{ScaleQuestion: &ScaleQuestion{
			Low:       scaleLow,
			High:      scaleHigh,
			LowLabel:  scaleLowLabel,
			HighLabel: scaleHighLabel,
		}}
	default:
		return Question{TextQuestion: &TextQuestion{Paragraph: false}}
	}
}

func toOptions(values []string) []Option {
	opts := make([]Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, Option{Value: v})
	}
	return opts
}

// NewCreateQuestion wraps a draft into a create-item operation at index.
func NewCreateQuestion(draft domain.QuestionDraft, index int, required bool) Request {
	title := draft.Title
	if title == "" {
		title = DefaultQuestionTitle
	}

	q := Encode(draft.Kind, draft.Options)
	q.Required = required

	return Request{CreateItem: &CreateItem{
		Item:     Item{Title: title, Payload: NewQuestionPayload(QuestionItem{Question: q})},
		Location: Location{Index: index},
	}}
}

// NewSetDescription returns the operation that sets the form description.
func NewSetDescription(description string) Request {
	return Request{UpdateFormInfo: &UpdateFormInfo{
		Info:       Info{Description: description},
		UpdateMask: "description",
	}}
}

// Renumber returns a copy of reqs with create-item indices assigned
// consecutively from start. Other operations keep their place and take no index.
func Renumber(reqs []Request, start int) []Request {
	out := make([]Request, len(reqs))
	next := start
	for i, r := range reqs {
		if r.CreateItem != nil {
			ci := *r.CreateItem
			ci.Location = Location{Index: next}
			next++
			r.CreateItem = &ci
		}
		out[i] = r
	}
	return out
}

// CountCreateItems returns the number of create-item operations in reqs.
func CountCreateItems(reqs []Request) int {
	n := 0
	for _, r := range reqs {
		if r.CreateItem != nil {
			n++
		}
	}
	return n
}

// DraftsFromRequests recovers question drafts from create-item operations.
// Non-question items are skipped.
func DraftsFromRequests(reqs []Request) []domain.QuestionDraft {
	drafts := make([]domain.QuestionDraft, 0, len(reqs))
	for _, r := range reqs {
		if r.CreateItem == nil {
			continue
		}
		q, err := r.CreateItem.Item.Payload.Question()
		if err != nil {
			continue
		}
		drafts = append(drafts, Decode(r.CreateItem.Item.Title, q.Question))
	}
	return drafts
}

// Decode is the inverse of Encode for bodies Encode can produce.
func Decode(title string, q Question) domain.QuestionDraft {
	d := domain.QuestionDraft{Title: title, Kind: domain.QuestionKindShortAnswer}
	switch {
	case q.TextQuestion != nil && q.TextQuestion.Paragraph:
		d.Kind = domain.QuestionKindParagraph
	case q.ScaleQuestion != nil:
		d.Kind = domain.QuestionKindScale
	case q.ChoiceQuestion != nil:
		switch q.ChoiceQuestion.Type {
		case ChoiceCheckbox:
			d.Kind = domain.QuestionKindCheckbox
		case ChoiceDropDown:
			d.Kind = domain.QuestionKindDropdown
		default:
			d.Kind = domain.QuestionKindMultipleChoice
		}
		d.Options = make([]string, 0, len(q.ChoiceQuestion.Options))
		for _, o := range q.ChoiceQuestion.Options {
			d.Options = append(d.Options, o.Value)
		}
	}
	return d
}
