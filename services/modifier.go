package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yeremiapane/restaurant-pos/models"
)

// ValidationErrors carries the rule violations that block a selection
// from confirming. Each message is shown to the operator verbatim.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, "; ")
}

// SelectionSet maps a modifier group name to the options chosen in it.
// Option ids within a group are a set: an id never appears twice.
type SelectionSet map[string][]models.ModifierOption

// PriceDelta sums the price deltas of every selected option.
func (s SelectionSet) PriceDelta() decimal.Decimal {
	total := decimal.Zero
	for _, opts := range s {
		for _, opt := range opts {
			total = total.Add(decimal.NewFromFloat(opt.PriceDelta))
		}
	}
	return total
}

// CanonicalKey renders the selections into an order-independent key:
// group names sorted, option ids sorted within each group. Two
// semantically identical selections entered in different order always
// produce the same key.
func (s SelectionSet) CanonicalKey() string {
	groups := make([]string, 0, len(s))
	for name, opts := range s {
		if len(opts) == 0 {
			continue
		}
		ids := make([]int, 0, len(opts))
		for _, opt := range opts {
			ids = append(ids, int(opt.ID))
		}
		sort.Ints(ids)

		var b strings.Builder
		b.WriteString(name)
		b.WriteByte('=')
		for i, id := range ids {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%d", id)
		}
		groups = append(groups, b.String())
	}
	sort.Strings(groups)
	return strings.Join(groups, ";")
}

func (s SelectionSet) clone() SelectionSet {
	out := make(SelectionSet, len(s))
	for name, opts := range s {
		out[name] = append([]models.ModifierOption(nil), opts...)
	}
	return out
}

// ModifierSelector walks an operator through customizing one menu item.
// Toggle applies the group's selection semantics; Confirm validates the
// whole set and hands back the selections for the ticket line.
type ModifierSelector struct {
	item     models.Menu
	selected SelectionSet
}

func NewModifierSelector(item models.Menu) *ModifierSelector {
	return &ModifierSelector{
		item:     item,
		selected: make(SelectionSet),
	}
}

// Toggle flips one option and reports whether the selection changed.
// Exclusive groups replace any prior choice; capped groups reject new
// selections at the cap, though toggling off is always allowed.
func (ms *ModifierSelector) Toggle(group models.ModifierGroup, option models.ModifierOption) bool {
	current := ms.selected[group.Name]

	if idx := indexOfOption(current, option.ID); idx >= 0 {
		// Already selected: toggle off.
		ms.selected[group.Name] = append(current[:idx], current[idx+1:]...)
		return true
	}

	switch group.Cardinality() {
	case models.ExclusiveChoice:
		ms.selected[group.Name] = []models.ModifierOption{option}
		return true
	default:
		if len(current) >= group.MaxSelections {
			return false
		}
		ms.selected[group.Name] = append(current, option)
		return true
	}
}

// Validate returns human-readable rule violations. An empty slice means
// the selections are confirmable.
func (ms *ModifierSelector) Validate() ValidationErrors {
	var errs ValidationErrors
	for _, group := range ms.item.ModifierGroups {
		selections := ms.selected[group.Name]

		if group.Required && len(selections) == 0 {
			errs = append(errs, fmt.Sprintf("%s is required", group.Name))
		}
		if len(selections) > group.MaxSelections {
			errs = append(errs, fmt.Sprintf("%s allows maximum %d selections", group.Name, group.MaxSelections))
		}
	}
	return errs
}

// Confirm validates and, if clean, returns a copy of the selections.
// Items without modifier groups confirm immediately with an empty set.
func (ms *ModifierSelector) Confirm() (SelectionSet, ValidationErrors) {
	if !ms.item.HasModifiers() {
		return SelectionSet{}, nil
	}
	if errs := ms.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return ms.selected.clone(), nil
}

// Selections exposes the running selections for rendering.
func (ms *ModifierSelector) Selections() SelectionSet {
	return ms.selected.clone()
}

// DisplayTotal is the per-unit price shown in the dialog: base price
// plus every selected delta.
func (ms *ModifierSelector) DisplayTotal() decimal.Decimal {
	return decimal.NewFromFloat(ms.item.Price).Add(ms.selected.PriceDelta())
}

// BuildSelections resolves chosen option ids against the item's groups
// and validates the result. Duplicate ids collapse (set semantics);
// unknown groups or options are hard errors, rule violations come back
// as messages the UI can show verbatim.
func BuildSelections(item models.Menu, chosen map[string][]uint) (SelectionSet, ValidationErrors, error) {
	groupsByName := make(map[string]models.ModifierGroup, len(item.ModifierGroups))
	for _, g := range item.ModifierGroups {
		groupsByName[g.Name] = g
	}

	selections := make(SelectionSet)
	for name, ids := range chosen {
		group, ok := groupsByName[name]
		if !ok {
			return nil, nil, fmt.Errorf("menu item %q has no modifier group %q", item.Name, name)
		}

		seen := make(map[uint]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true

			opt, ok := findOption(group, id)
			if !ok {
				return nil, nil, fmt.Errorf("group %q has no option %d", name, id)
			}
			selections[name] = append(selections[name], opt)
		}
	}

	var errs ValidationErrors
	for _, group := range item.ModifierGroups {
		picked := selections[group.Name]
		if group.Required && len(picked) == 0 {
			errs = append(errs, fmt.Sprintf("%s is required", group.Name))
		}
		if len(picked) > group.MaxSelections {
			errs = append(errs, fmt.Sprintf("%s allows maximum %d selections", group.Name, group.MaxSelections))
		}
	}
	if len(errs) > 0 {
		return nil, errs, nil
	}
	return selections, nil, nil
}

func findOption(group models.ModifierGroup, id uint) (models.ModifierOption, bool) {
	for _, opt := range group.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return models.ModifierOption{}, false
}

func indexOfOption(opts []models.ModifierOption, id uint) int {
	for i, opt := range opts {
		if opt.ID == id {
			return i
		}
	}
	return -1
}
