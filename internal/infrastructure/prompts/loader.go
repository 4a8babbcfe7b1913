package prompts

import (
	_ "embed"

	"browser-toolkit/internal/domain/entity"
)

//go:embed website.txt
var WebsiteAgentPrompt string

//go:embed cooking.txt
var CookingAgentPrompt string

const (
	DefaultWebsiteTask = "go to https://ui.chaicode.com/auth/signup and fill the signup form with random data then go https://ui.chaicode.com/auth/login and fill the login form with same data that is for signup"
	DefaultCookingTask = "Hey"
)

func WebsiteAgentProfile() entity.AgentProfile {
	return entity.AgentProfile{
		Type:         entity.AgentTypeWebsite,
		Name:         "websiteAutomationAgent",
		Instructions: WebsiteAgentPrompt,
		DefaultTask:  DefaultWebsiteTask,
		Tools: []entity.ToolName{
			entity.ToolOpenWebsite,
			entity.ToolExtractElements,
			entity.ToolClickElement,
			entity.ToolFillForm,
			entity.ToolTakeScreenshot,
		},
	}
}

func CookingAgentProfile() entity.AgentProfile {
	return entity.AgentProfile{
		Type:         entity.AgentTypeCooking,
		Name:         "Cooking Agent",
		Model:        "gpt-4.1-mini",
		Instructions: CookingAgentPrompt,
		DefaultTask:  DefaultCookingTask,
		Tools: []entity.ToolName{
			entity.ToolGetCurrentTime,
			entity.ToolGetMenu,
		},
	}
}

// Profile looks a profile up by agent type.
func Profile(agentType entity.AgentType) (entity.AgentProfile, bool) {
	switch agentType {
	case entity.AgentTypeWebsite:
		return WebsiteAgentProfile(), true
	case entity.AgentTypeCooking:
		return CookingAgentProfile(), true
	}
	return entity.AgentProfile{}, false
}
