package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/archdesign/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/archdesign/internal/export"
	"github.com/GoSim-25-26J-441/archdesign/internal/projects/domain"
)

func (h *Handler) get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": h.store.Get()})
}

func (h *Handler) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "status": export.Summarize(h.store.Get())})
}

func (h *Handler) diagram(c *gin.Context) {
	p := h.store.Get()
	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"nodes":    p.DiagramNodes,
		"edges":    p.ResolvedConnections(),
		"dangling": p.DanglingConnections(),
	})
}

func (h *Handler) export(c *gin.Context) {
	format := c.Param("format")
	p := h.store.Get()
	body, contentType, err := export.Render(p, format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(p, format)+`"`)
	c.Data(http.StatusOK, contentType, body)
}

func (h *Handler) update(c *gin.Context) {
	var req domain.ProjectUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	p, err := h.store.Update(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) save(c *gin.Context) {
	p, err := h.store.Save(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "lastUpdated": p.LastUpdated})
}

func (h *Handler) reset(c *gin.Context) {
	p, err := h.store.Reset(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) importProject(c *gin.Context) {
	var req domain.Project
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	p, err := h.store.Replace(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) toggleSection(c *gin.Context) {
	p, err := h.store.ToggleSectionComplete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "completedSections": p.CompletedSections})
}

func (h *Handler) toggleSecurity(c *gin.Context) {
	enabled, err := h.store.ToggleSecurityMeasure(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": c.Param("id"), "enabled": enabled})
}

func (h *Handler) listMicroservices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "microservices": h.store.Get().Microservices})
}

func (h *Handler) addMicroservice(c *gin.Context) {
	var req domain.Microservice
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	svc, err := h.store.AddMicroservice(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "microservice": svc})
}

func (h *Handler) updateMicroservice(c *gin.Context) {
	var req domain.MicroserviceUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	found, err := h.store.UpdateMicroservice(c.Request.Context(), c.Param("id"), req)
	h.respondFound(c, found, err, "microservice not found")
}

func (h *Handler) removeMicroservice(c *gin.Context) {
	found, err := h.store.RemoveMicroservice(c.Request.Context(), c.Param("id"))
	h.respondFound(c, found, err, "microservice not found")
}

func (h *Handler) listNodes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "nodes": h.store.Get().DiagramNodes})
}

func (h *Handler) addNode(c *gin.Context) {
	var req domain.DiagramNode
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	n, err := h.store.AddDiagramNode(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "node": n})
}

func (h *Handler) updateNode(c *gin.Context) {
	var req domain.DiagramNodeUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	found, err := h.store.UpdateDiagramNode(c.Request.Context(), c.Param("id"), req)
	h.respondFound(c, found, err, "node not found")
}

func (h *Handler) removeNode(c *gin.Context) {
	found, err := h.store.RemoveDiagramNode(c.Request.Context(), c.Param("id"))
	h.respondFound(c, found, err, "node not found")
}

func (h *Handler) listConnections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "connections": h.store.Get().DiagramConnections})
}

func (h *Handler) addConnection(c *gin.Context) {
	var req domain.DiagramConnection
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	conn, err := h.store.AddConnection(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "connection": conn})
}

func (h *Handler) updateConnection(c *gin.Context) {
	var req domain.DiagramConnectionUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	found, err := h.store.UpdateConnection(c.Request.Context(), c.Param("id"), req)
	h.respondFound(c, found, err, "connection not found")
}

func (h *Handler) removeConnection(c *gin.Context) {
	found, err := h.store.RemoveConnection(c.Request.Context(), c.Param("id"))
	h.respondFound(c, found, err, "connection not found")
}

// respondFound answers 404 for an absent id. The store treats that case as
// a no-op, so nothing was written.
func (h *Handler) respondFound(c *gin.Context, found bool, err error, notFound string) {
	if err != nil {
		h.fail(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": notFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateID):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrInvalidNodeType),
		errors.Is(err, domain.ErrUnknownSection),
		errors.Is(err, domain.ErrInvalidProject):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	default:
		h.log.Error("project operation failed",
			zap.String("request_id", middleware.GetRequestID(c.Request.Context())),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to persist project"})
	}
}
