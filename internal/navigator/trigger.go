package navigator

import (
	"fmt"
	"strings"

	"github.com/WIIN2602/Farm2Hand/internal/models"
)

// TriggerKind is the vocabulary of user intents the navigator understands.
type TriggerKind int

const (
	FreeText TriggerKind = iota
	BrowseProducts
	BrowseCategories
	StartOrder
	TrackOrders
	SelectCategory
	Back
	BackToCategories
)

var triggerNames = map[TriggerKind]string{
	FreeText:         "freeText",
	BrowseProducts:   "browseProducts",
	BrowseCategories: "browseCategories",
	StartOrder:       "startOrder",
	TrackOrders:      "trackOrders",
	SelectCategory:   "selectCategory",
	Back:             "back",
	BackToCategories: "backToCategories",
}

func (k TriggerKind) String() string {
	if name, ok := triggerNames[k]; ok {
		return name
	}
	return "unknown"
}

// Trigger is one user intent. Category is set for SelectCategory and Text for FreeText.
type Trigger struct {
	Kind     TriggerKind
	Category models.CategoryName
	Text     string
}

// On builds a payload-free trigger.
func On(kind TriggerKind) Trigger { return Trigger{Kind: kind} }

// Choose builds a SelectCategory trigger.
func Choose(name models.CategoryName) Trigger {
	return Trigger{Kind: SelectCategory, Category: name}
}

// Say builds a FreeText trigger.
func Say(text string) Trigger { return Trigger{Kind: FreeText, Text: text} }

// Localized question-menu labels.
const (
	QuestionBrowseProducts   = "ดูสินค้า"
	QuestionBrowseCategories = "ค้นหาสินค้า"
	QuestionStartOrder       = "สั่งซื้อ"
	QuestionHowToBuy         = "ถามวิธีซื้อ"
	QuestionTrackOrders      = "ติดตามออเดอร์"
)

// ParseQuestion maps a clicked question label to its trigger. Unrecognised
// text becomes a FreeText trigger carrying the text verbatim.
func ParseQuestion(text string) Trigger {
	switch text {
	case QuestionBrowseProducts:
		return On(BrowseProducts)
	case QuestionBrowseCategories:
		return On(BrowseCategories)
	case QuestionStartOrder:
		return On(StartOrder)
	case QuestionTrackOrders:
		return On(TrackOrders)
	default:
		return Say(text)
	}
}

// ParseTrigger decodes a wire name such as "browseProducts". FreeText is not
// accepted here; callers send questions separately.
func ParseTrigger(name, category string) (Trigger, error) {
	for kind, n := range triggerNames {
		if kind == FreeText || !strings.EqualFold(n, name) {
			continue
		}
		if kind != SelectCategory {
			return On(kind), nil
		}
		cat, err := models.ParseCategoryName(category)
		if err != nil {
			return Trigger{}, err
		}
		return Choose(cat), nil
	}
	return Trigger{}, fmt.Errorf("unknown trigger %q", name)
}
