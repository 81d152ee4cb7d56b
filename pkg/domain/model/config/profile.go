package config

import "github.com/rpad300/godmode-sub015/pkg/domain/types"

// Person represents a tracked person configuration
type Person struct {
	ID      types.PersonID
	Name    string
	Aliases []string
}

// Dimension represents a profile dimension configuration
type Dimension struct {
	ID          string
	Name        string
	Description string
}

// ProfileConfig holds all profiling-related configuration
type ProfileConfig struct {
	Persons    []Person
	Dimensions []Dimension
	Prompt     string
}

// Person returns the person with the given ID, or nil
func (c *ProfileConfig) Person(id types.PersonID) *Person {
	for i := range c.Persons {
		if c.Persons[i].ID == id {
			return &c.Persons[i]
		}
	}
	return nil
}
