package feedexport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tmcewan/feedexport/post"
)

// APIServer exposes the extraction pipeline over HTTP, for callers that
// hold rendered markup but not this library (the popup-style frontends).
type APIServer struct {
	exporter *Exporter
}

// NewAPIServer creates an API server around the given exporter.
func NewAPIServer(exporter *Exporter) *APIServer {
	return &APIServer{exporter: exporter}
}

// SetupRouter configures the Gin router with all API routes.
func (s *APIServer) SetupRouter() *gin.Engine {
	router := gin.Default()

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	})

	api := router.Group("/api/v1")
	{
		api.POST("/export", s.HandleExport)
		api.POST("/render", s.HandleRender)
	}
	router.GET("/health", s.HandleHealth)

	return router
}

// ExportResponse is the response for POST /api/v1/export.
type ExportResponse struct {
	Posts    []post.Record `json:"posts"`
	Total    int           `json:"total"`
	Markdown string        `json:"markdown"`
	Filename string        `json:"filename"`
}

// RenderRequest is the request for POST /api/v1/render.
type RenderRequest struct {
	Posts []post.Record `json:"posts" binding:"required"`
}

// HandleExport handles POST /api/v1/export. The request body is the
// rendered HTML of a feed page; the response carries the structured records
// and the rendered document.
func (s *APIServer) HandleExport(c *gin.Context) {
	doc, err := s.exporter.ExportSnapshot(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ExportResponse{
		Posts:    doc.Records,
		Total:    len(doc.Records),
		Markdown: doc.Markdown,
		Filename: doc.Filename,
	})
}

// HandleRender handles POST /api/v1/render: records in, Markdown document
// out.
func (s *APIServer) HandleRender(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.String(http.StatusOK, s.exporter.RenderDocument(req.Posts))
}

// HandleHealth handles GET /health.
func (s *APIServer) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
