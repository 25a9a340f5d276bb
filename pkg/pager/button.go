package pager

import (
	"fmt"
	"strings"
)

// ButtonID identifies one of the four navigation buttons.
type ButtonID int

const (
	ButtonFirst ButtonID = iota
	ButtonPrev
	ButtonNext
	ButtonLast
)

var buttonNames = [...]string{"first", "prev", "next", "last"}

func (id ButtonID) String() string {
	if id < ButtonFirst || id > ButtonLast {
		return fmt.Sprintf("ButtonID(%d)", int(id))
	}
	return buttonNames[id]
}

// CustomID is the default custom id carried by the button.
func (id ButtonID) CustomID() string { return "pager:" + id.String() }

// ButtonStyle is the visual style of a button.
type ButtonStyle int

const (
	StylePrimary ButtonStyle = iota + 1
	StyleSecondary
	StyleSuccess
	StyleDanger
)

func (s ButtonStyle) String() string {
	switch s {
	case StylePrimary:
		return "PRIMARY"
	case StyleSecondary:
		return "SECONDARY"
	case StyleSuccess:
		return "SUCCESS"
	case StyleDanger:
		return "DANGER"
	default:
		return fmt.Sprintf("ButtonStyle(%d)", int(s))
	}
}

// ParseButtonStyle accepts PRIMARY, SECONDARY, SUCCESS or DANGER (any case).
// An empty string yields StyleSecondary.
func ParseButtonStyle(s string) (ButtonStyle, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return StyleSecondary, nil
	case "PRIMARY":
		return StylePrimary, nil
	case "SECONDARY":
		return StyleSecondary, nil
	case "SUCCESS":
		return StyleSuccess, nil
	case "DANGER":
		return StyleDanger, nil
	default:
		return 0, fmt.Errorf("pager: unknown button style %q", s)
	}
}

// Button is one interactive button of a rendered row.
type Button struct {
	CustomID string
	Label    string
	Emoji    string
	Style    ButtonStyle
	URL      string
	Disabled bool
}

// Buttons holds the four navigation buttons.
type Buttons struct {
	First Button
	Prev  Button
	Next  Button
	Last  Button
}

// Get returns a pointer to the button identified by id, or nil.
func (b *Buttons) Get(id ButtonID) *Button {
	switch id {
	case ButtonFirst:
		return &b.First
	case ButtonPrev:
		return &b.Prev
	case ButtonNext:
		return &b.Next
	case ButtonLast:
		return &b.Last
	}
	return nil
}

// Lookup maps a custom id back to a navigation button.
func (b Buttons) Lookup(customID string) (ButtonID, bool) {
	if customID == "" {
		return 0, false
	}
	switch customID {
	case b.First.CustomID:
		return ButtonFirst, true
	case b.Prev.CustomID:
		return ButtonPrev, true
	case b.Next.CustomID:
		return ButtonNext, true
	case b.Last.CustomID:
		return ButtonLast, true
	}
	return 0, false
}

// Row returns the buttons in display order.
func (b Buttons) Row() Row {
	return Row{Buttons: []Button{b.First, b.Prev, b.Next, b.Last}}
}

func (b *Buttons) setDisabled(disabled bool, ids ...ButtonID) {
	for _, id := range ids {
		if btn := b.Get(id); btn != nil {
			btn.Disabled = disabled
		}
	}
}

// ButtonAppearance is the configurable look of a navigation button.
type ButtonAppearance struct {
	Emoji string
	Label string
	Style ButtonStyle
}

// ButtonsAppearance holds the appearance of all four buttons.
type ButtonsAppearance struct {
	First ButtonAppearance
	Prev  ButtonAppearance
	Next  ButtonAppearance
	Last  ButtonAppearance
}

func (a *ButtonsAppearance) get(id ButtonID) *ButtonAppearance {
	switch id {
	case ButtonFirst:
		return &a.First
	case ButtonPrev:
		return &a.Prev
	case ButtonNext:
		return &a.Next
	case ButtonLast:
		return &a.Last
	}
	return nil
}

// merge copies the non-zero values of in onto a.
func (a *ButtonAppearance) merge(in ButtonAppearance) {
	if in.Emoji != "" {
		a.Emoji = in.Emoji
	}
	if in.Label != "" {
		a.Label = in.Label
	}
	if in.Style != 0 {
		a.Style = in.Style
	}
}

// Row is one action row of buttons.
type Row struct {
	Buttons []Button
}

func cloneRow(r Row) Row {
	return Row{Buttons: append([]Button(nil), r.Buttons...)}
}

// RowPosition places caller supplied rows relative to the navigation row.
type RowPosition int

const (
	RowBelow RowPosition = iota
	RowAbove
)
