package level

import "fmt"

// Campaign is an ordered run through a set of levels.
type Campaign struct {
	levels []Descriptor
	index  int
}

// NewCampaign loads all levels from src and positions at the first.
func NewCampaign(src Source) (*Campaign, error) {
	levels, err := src.LoadAll()
	if err != nil {
		return nil, err
	}
	return &Campaign{levels: levels}, nil
}

// List returns summaries of all levels in order.
func (c *Campaign) List() []Summary {
	out := make([]Summary, len(c.levels))
	for i := range c.levels {
		out[i] = c.levels[i].Summarize()
	}
	return out
}

// Len returns the number of levels.
func (c *Campaign) Len() int {
	return len(c.levels)
}

// Index returns the position of the current level.
func (c *Campaign) Index() int {
	return c.index
}

// Current returns the current level.
func (c *Campaign) Current() *Descriptor {
	return &c.levels[c.index]
}

// SetCurrentByID moves to the level with the given ID.
func (c *Campaign) SetCurrentByID(id int) error {
	for i := range c.levels {
		if c.levels[i].ID == id {
			c.index = i
			return nil
		}
	}
	return &LoadError{LevelID: id, Err: fmt.Errorf("%w in campaign", ErrNotFound)}
}

// HasNext reports whether a level follows the current one.
func (c *Campaign) HasNext() bool {
	return c.index < len(c.levels)-1
}

// Next advances to the following level. It returns false, and stays put,
// at the end of the campaign.
func (c *Campaign) Next() bool {
	if !c.HasNext() {
		return false
	}
	c.index++
	return true
}
