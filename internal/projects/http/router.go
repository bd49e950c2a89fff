package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group. Mutating
// routes additionally pass through the write middleware (may be nil).
func (h *Handler) Register(rg *gin.RouterGroup, write ...gin.HandlerFunc) {
	rg.GET("", h.get)
	rg.GET("/status", h.status)
	rg.GET("/diagram", h.diagram)
	rg.GET("/export/:format", h.export)
	rg.GET("/microservices", h.listMicroservices)
	rg.GET("/nodes", h.listNodes)
	rg.GET("/connections", h.listConnections)
	rg.GET("/events", h.events)

	w := rg.Group("", write...)
	w.PATCH("", h.update)
	w.POST("/save", h.save)
	w.POST("/reset", h.reset)
	w.PUT("/import", h.importProject)
	w.POST("/sections/:id/toggle", h.toggleSection)
	w.POST("/security/:id/toggle", h.toggleSecurity)

	w.POST("/microservices", h.addMicroservice)
	w.PATCH("/microservices/:id", h.updateMicroservice)
	w.DELETE("/microservices/:id", h.removeMicroservice)

	w.POST("/nodes", h.addNode)
	w.PATCH("/nodes/:id", h.updateNode)
	w.DELETE("/nodes/:id", h.removeNode)

	w.POST("/connections", h.addConnection)
	w.PATCH("/connections/:id", h.updateConnection)
	w.DELETE("/connections/:id", h.removeConnection)
}
