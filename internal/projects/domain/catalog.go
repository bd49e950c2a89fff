package domain

// Section is one of the nine fixed report categories a student marks
// complete.
type Section struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var Sections = []Section{
	{ID: "A", Name: "Architectural Style", Description: "Define system architecture patterns"},
	{ID: "B", Name: "System Architecture", Description: "Overall system design and components"},
	{ID: "C", Name: "Service Decomposition", Description: "Break down into microservices"},
	{ID: "D", Name: "Data Architecture", Description: "Database design and data flow"},
	{ID: "E", Name: "Request Flow", Description: "Sequence diagrams and flows"},
	{ID: "F", Name: "Cloud Deployment", Description: "Infrastructure and deployment"},
	{ID: "G", Name: "Security", Description: "Security measures and compliance"},
	{ID: "H", Name: "Scalability", Description: "Scaling strategies and performance"},
	{ID: "I", Name: "Cost Analysis", Description: "Cost estimation and optimization"},
}

func IsSection(id string) bool {
	for _, s := range Sections {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Diagram node types.
const (
	NodeClient   = "client"
	NodeGateway  = "gateway"
	NodeService  = "service"
	NodeDatabase = "database"
	NodeCache    = "cache"
	NodeExternal = "external"
)

var NodeTypes = []string{NodeClient, NodeGateway, NodeService, NodeDatabase, NodeCache, NodeExternal}

func IsNodeType(t string) bool {
	for _, nt := range NodeTypes {
		if nt == t {
			return true
		}
	}
	return false
}

// Protocols are the connection protocols offered by the builder. Connection
// protocol stays free text; these are suggestions.
var Protocols = []string{"HTTP/REST", "gRPC", "Message Queue", "WebSocket", "Database Connection"}

// SecurityMeasureIDs lists the measures the security checklist knows about.
var SecurityMeasureIDs = []string{
	"jwt",
	"oauth2",
	"encryption",
	"rateLimiting",
	"paymentSecurity",
	"ddosProtection",
	"apiSecurity",
	"logging",
	"accessControl",
}
