package domain

// ServiceID identifies an offering from the services catalog.
type ServiceID string

const (
	ServiceWebsiteDevelopment   ServiceID = "website-development"
	ServiceAppDevelopment       ServiceID = "app-development"
	ServiceGameDevelopment      ServiceID = "game-development"
	ServiceLogoDesign           ServiceID = "logo-design"
	ServiceSEOBacklinks         ServiceID = "seo-backlinks"
	ServiceUIUXDesign           ServiceID = "ui-ux-design"
	ServiceVideoProduction      ServiceID = "video-production"
	ServiceChatbotDevelopment   ServiceID = "chatbot-development"
	ServiceCRMERPIntegration    ServiceID = "crm-erp-integration"
	ServiceCustomAPIDevelopment ServiceID = "custom-api-development"
	ServiceContentWriting       ServiceID = "content-writing"
	ServiceOther                ServiceID = "other"
)

// BookableServices are the offerings a demo can be booked for.
var BookableServices = []ServiceID{
	ServiceWebsiteDevelopment,
	ServiceAppDevelopment,
	ServiceGameDevelopment,
	ServiceLogoDesign,
	ServiceSEOBacklinks,
	ServiceUIUXDesign,
	ServiceVideoProduction,
	ServiceChatbotDevelopment,
	ServiceCRMERPIntegration,
	ServiceCustomAPIDevelopment,
	ServiceContentWriting,
}

// ContactServices adds the catch-all "other" to the bookable set.
var ContactServices = append(append([]ServiceID{}, BookableServices...), ServiceOther)

// ServiceBreakdown is one group of the per-service statistics.
type ServiceBreakdown struct {
	Service      string   `json:"service"`
	Count        int      `json:"count"`
	StatusCounts []string `json:"statusCounts"`
}
