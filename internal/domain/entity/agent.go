package entity

type AgentType string

const (
	AgentTypeWebsite AgentType = "website"
	AgentTypeCooking AgentType = "cooking"
)

// AgentProfile is the static configuration handed to the controller:
// which tools it may call, with what instructions and which model.
type AgentProfile struct {
	Type         AgentType
	Name         string
	Model        string
	Instructions string
	DefaultTask  string
	Tools        []ToolName
}

func (p AgentProfile) Allows(name ToolName) bool {
	for _, t := range p.Tools {
		if t == name {
			return true
		}
	}
	return false
}
