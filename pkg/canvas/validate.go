package canvas

import (
	"errors"
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid canvas")

var colorPattern = regexp.MustCompile(`^([1-6]|#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6})$`)

var colorRule = validation.Match(colorPattern).Error(`must be a preset "1" to "6" or a hex color`)

// Validate checks the shape of n. Kind-specific fields such as file, text and
// url may be omitted for any type.
func (n Node) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.ID, validation.Required),
		validation.Field(&n.Type, validation.Required, validation.In(NodeFile, NodeText, NodeLink, NodeGroup)),
		validation.Field(&n.Color, colorRule),
		validation.Field(&n.BackgroundStyle, validation.In(BackgroundCover, BackgroundRatio, BackgroundRepeat)),
	)
}

// Validate checks the shape of e. Endpoints are not checked against node ids.
func (e Edge) Validate() error {
	sides := []interface{}{SideTop, SideRight, SideBottom, SideLeft}
	ends := []interface{}{EndNone, EndArrow}
	return validation.ValidateStruct(&e,
		validation.Field(&e.ID, validation.Required),
		validation.Field(&e.FromNode, validation.Required),
		validation.Field(&e.ToNode, validation.Required),
		validation.Field(&e.FromSide, validation.In(sides...)),
		validation.Field(&e.ToSide, validation.In(sides...)),
		validation.Field(&e.FromEnd, validation.In(ends...)),
		validation.Field(&e.ToEnd, validation.In(ends...)),
		validation.Field(&e.Color, colorRule),
	)
}

// Validate checks every node and edge and that no id is used twice.
// The returned error wraps ErrInvalid.
func (d Document) Validate() error {
	err := validation.ValidateStruct(&d,
		validation.Field(&d.Nodes),
		validation.Field(&d.Edges),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	seen := make(map[string]bool, len(d.Nodes)+len(d.Edges))
	for _, n := range d.Nodes {
		if seen[n.ID] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalid, n.ID)
		}
		seen[n.ID] = true
	}
	for _, e := range d.Edges {
		if seen[e.ID] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalid, e.ID)
		}
		seen[e.ID] = true
	}
	return nil
}
