package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/WIIN2602/Farm2Hand/internal/navigator"
	"github.com/WIIN2602/Farm2Hand/internal/widget"
)

// item represents a list item. A nil action marks a display-only row.
type item struct {
	title, desc string
	action      *widget.Action
	// cartLine is the product id of a cart row on the order summary.
	cartLine int
}

// FilterValue implements list.Item interface
func (i item) FilterValue() string { return i.title }

// Title implements list.Item interface
func (i item) Title() string { return i.title }

// Description implements list.Item interface
func (i item) Description() string { return i.desc }

func trigger(name string) *widget.Action {
	return &widget.Action{Type: widget.ActionTrigger, Trigger: name}
}

// itemsFor lists the choices of a rendered panel.
func itemsFor(p widget.Panel) []list.Item {
	var items []list.Item
	switch {
	case p.Questions != nil:
		for _, q := range p.Questions {
			a := &widget.Action{Type: widget.ActionAsk, Text: q.Label}
			if q.Trigger != "" {
				a = trigger(q.Trigger)
			}
			items = append(items, item{title: q.Label, action: a})
		}
		items = append(items, item{title: p.ShowMoreLabel, action: &widget.Action{Type: widget.ActionShowMore}})

	case p.Products != nil:
		for _, card := range p.Products {
			desc := fmt.Sprintf("฿%s / %s · %s", card.Price.StringFixed(0), card.Unit, card.Farmer)
			i := item{title: card.Name, desc: desc}
			if card.Selectable {
				i.action = &widget.Action{Type: widget.ActionSelectProduct, ProductID: card.ID}
			} else {
				i.desc = "สินค้าหมด · " + desc
			}
			items = append(items, i)
		}

	case p.Categories != nil:
		for _, c := range p.Categories {
			items = append(items, item{
				title:  c.Emoji + " " + string(c.Name),
				desc:   c.Description,
				action: &widget.Action{Type: widget.ActionTrigger, Trigger: navigator.SelectCategory.String(), Category: string(c.Name)},
			})
		}

	case p.CategoryProducts != nil:
		for _, cp := range p.CategoryProducts {
			items = append(items, item{
				title:  cp.LocalizedName,
				desc:   fmt.Sprintf("%s · ฿%s / %s", cp.Name, cp.Price.StringFixed(0), cp.Unit),
				action: &widget.Action{Type: widget.ActionSelectCategoryProduct, Name: cp.Name},
			})
		}
		items = append(items, item{title: "← หมวดหมู่", action: trigger(navigator.BackToCategories.String())})

	case p.Summary != nil:
		items = summaryItems(p)

	case p.Orders != nil:
		for _, o := range p.Orders {
			items = append(items, item{
				title:  fmt.Sprintf("#%s · %s", o.ShortID, o.StatusLabel),
				desc:   fmt.Sprintf("฿%s · %s", o.Total.StringFixed(0), o.ActionLabel),
				action: &widget.Action{Type: widget.ActionRequestTracking, OrderID: o.ID},
			})
		}
	}
	return items
}

func summaryItems(p widget.Panel) []list.Item {
	s := p.Summary
	if s.Empty {
		return []list.Item{item{title: "ตะกร้าว่างเปล่า", desc: "เลือกซื้อสินค้า", action: trigger(s.ExitAction)}}
	}

	var items []list.Item
	for _, line := range s.Items {
		items = append(items, item{
			title:    fmt.Sprintf("%s × %d", line.Name, line.Quantity),
			desc:     "฿" + line.LineTotal().StringFixed(0) + "  (+/- จำนวน, x ลบ)",
			cartLine: line.ID,
		})
	}
	for _, product := range p.AddableProducts {
		items = append(items, item{
			title:  "+ " + product.Name,
			desc:   fmt.Sprintf("฿%s / %s", product.Price.StringFixed(0), product.Unit),
			action: &widget.Action{Type: widget.ActionAddToCart, ProductID: product.ID},
		})
	}
	for _, m := range s.Methods {
		title := "○ " + m.Label
		if m.Selected {
			title = "● " + m.Label
		}
		items = append(items, item{
			title:  title,
			action: &widget.Action{Type: widget.ActionSelectPaymentMethod, PaymentMethod: string(m.ID)},
		})
	}
	items = append(items, item{
		title:  "ยืนยันการสั่งซื้อ",
		desc:   "รวม ฿" + s.Total.StringFixed(0),
		action: &widget.Action{Type: widget.ActionConfirmOrder},
	})
	return items
}
