// Package catalog holds the static service offerings shown on the public site.
package catalog

import "github.com/spec-kit/lead-intake/internal/domain"

// Service is a catalog summary entry.
type Service struct {
	ID          domain.ServiceID `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Icon        string           `json:"icon"`
	Image       string           `json:"image"`
}

// ServiceDetail extends Service with marketing copy.
type ServiceDetail struct {
	Service
	LongDescription string   `json:"longDescription"`
	Features        []string `json:"features"`
	Technologies    []string `json:"technologies"`
}

var services = []Service{
	{domain.ServiceWebsiteDevelopment, "Website Development", "Get modern, fast, responsive websites for your business or brand.", "FaLaptopCode", "https://images.unsplash.com/photo-1519389950473-47ba0277781c?auto=format&fit=crop&w=400&q=80"},
	{domain.ServiceAppDevelopment, "App Development", "We build Android & iOS apps tailored to your goals.", "FaMobileAlt", "https://images.unsplash.com/photo-1519125323398-675f0ddb6308?auto=format&fit=crop&w=400&q=80"},
	{domain.ServiceGameDevelopment, "Game Development", "2D/3D browser or mobile games built from scratch.", "FaGamepad", "https://images.unsplash.com/photo-1461749280684-dccba630e2f6?auto=format&fit=crop&w=400&q=80"},
	{domain.ServiceLogoDesign, "Logo Design", "High-quality branding & logos that define your identity.", "FaPaintBrush", "https://images.unsplash.com/photo-1506744038136-46273834b3fb?auto=format&fit=crop&w=400&q=80"},
	{domain.ServiceSEOBacklinks, "SEO & Backlinks", "Rank higher on Google with optimized SEO strategies.", "FaSearch", "https://images.unsplash.com/photo-1517694712202-14dd9538aa97?auto=format&fit=crop&w=400&q=80"},
	{domain.ServiceUIUXDesign, "UI/UX Design", "Clean, beautiful, user-friendly interfaces for web and apps.", "FaUserAlt", "https://images.unsplash.com/photo-1515378791036-0648a3ef77b2?auto=format&fit=crop&w=400&q=80"},
	{domain.ServiceVideoProduction, "Video Production & Animation", "Professional video content and engaging animations for your brand.", "FaVideo", "https://images.unsplash.com/photo-1574717024653-61fd2cf4d44d?auto=format&fit=crop&w=400&q=80"},
	{domain.ServiceChatbotDevelopment, "Chatbot Development", "Intelligent chatbots to enhance customer service and engagement.", "FaRobot", "https://images.unsplash.com/photo-1531746790731-6c087fecd65a?auto=format&fit=crop&w=400&q=80"},
	{domain.ServiceCRMERPIntegration, "CRM/ERP Integrations", "Seamless integration of business systems for better workflow.", "FaCogs", "https://images.unsplash.com/photo-1551288049-bebda4e38f71?auto=format&fit=crop&w=400&q=80"},
	{domain.ServiceCustomAPIDevelopment, "Custom API Development", "Robust APIs to connect your applications and services.", "FaCode", "https://images.unsplash.com/photo-1555066931-4365d14bab8c?auto=format&fit=crop&w=400&q=80"},
	{domain.ServiceContentWriting, "Content Writing & Copywriting", "Compelling content that converts visitors into customers.", "FaPen", "https://images.unsplash.com/photo-1455390582262-044cdead277a?auto=format&fit=crop&w=400&q=80"},
}

var details = map[domain.ServiceID]ServiceDetail{
	domain.ServiceWebsiteDevelopment: {
		Service:         services[0],
		LongDescription: "We create stunning, high-performance websites that drive results. Our websites are built with the latest technologies, ensuring they are fast, secure, and optimized for search engines.",
		Features: []string{
			"Responsive Design",
			"SEO Optimization",
			"Fast Loading Speed",
			"Mobile-First Approach",
			"Content Management System",
			"E-commerce Integration",
		},
		Technologies: []string{"React", "Node.js", "MongoDB", "Express", "Next.js", "WordPress"},
	},
	domain.ServiceAppDevelopment: {
		Service:         services[1],
		LongDescription: "Transform your ideas into powerful mobile applications. We develop native and cross-platform apps that provide exceptional user experiences and drive business growth.",
		Features: []string{
			"Native iOS & Android Development",
			"Cross-Platform Solutions",
			"UI/UX Design",
			"App Store Optimization",
			"Push Notifications",
			"Offline Functionality",
		},
		Technologies: []string{"React Native", "Flutter", "Swift", "Kotlin", "Firebase", "AWS"},
	},
}

// List returns a copy of every catalog entry.
func List() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// Get returns the detailed entry for id. Only services with published
// detail pages are found.
func Get(id string) (ServiceDetail, bool) {
	detail, ok := details[domain.ServiceID(id)]
	return detail, ok
}

// Name resolves a display name, falling back to the raw id.
func Name(id domain.ServiceID) string {
	for _, s := range services {
		if s.ID == id {
			return s.Name
		}
	}
	return string(id)
}
