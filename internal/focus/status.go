package focus

import "fmt"

// Status is a snapshot of the controller for display. Element and Line are
// 1-based.
type Status struct {
	Active    bool
	Selecting bool
	Element   int
	Elements  int
	Line      int
	Lines     int
}

// Status returns the current display snapshot.
func (c *Controller) Status() Status {
	if c.state != StateActive {
		return Status{}
	}
	pos, ok := c.Position()
	if !ok {
		return Status{Active: true, Selecting: true, Elements: len(c.blocks)}
	}
	return Status{
		Active:   true,
		Element:  pos.BlockIndex + 1,
		Elements: len(c.blocks),
		Line:     pos.LineIndex + 1,
		Lines:    len(c.lines),
	}
}

func (s Status) String() string {
	switch {
	case !s.Active:
		return "Line Focus: OFF"
	case s.Selecting:
		return "Line Focus: ON (selecting)"
	default:
		return fmt.Sprintf("Line Focus: ON (Element %d/%d, Line %d/%d)", s.Element, s.Elements, s.Line, s.Lines)
	}
}
