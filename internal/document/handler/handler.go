package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkweld/inkweld/backend/go-services/internal/assistant"
	"github.com/inkweld/inkweld/backend/go-services/internal/document"
	"github.com/inkweld/inkweld/backend/go-services/internal/document/store"
	"github.com/inkweld/inkweld/backend/go-services/internal/export"
	"github.com/inkweld/inkweld/backend/go-services/internal/share"
	"github.com/inkweld/inkweld/backend/go-services/pkg/metrics"
)

// passwordHeader carries the credential attempt for protected documents.
const passwordHeader = "X-Document-Password"

// RegisterDocumentRoutes wires the listing/editing surface. All semantics
// live in the store and codecs; these handlers are pass-throughs.
func RegisterDocumentRoutes(r *gin.Engine, st *store.Store, exporters *export.Registry) {
	r.GET("/api/documents", func(c *gin.Context) {
		list := st.List()
		out := make([]gin.H, 0, len(list))
		for _, d := range list {
			out = append(out, gin.H{
				"id":        d.ID,
				"title":     d.Title,
				"updatedAt": d.UpdatedAt,
				"protected": d.Protection().Protected(),
			})
		}
		c.JSON(http.StatusOK, out)
	})

	r.POST("/api/documents", func(c *gin.Context) {
		d := st.Create(c.Request.Context())
		c.JSON(http.StatusCreated, d)
	})

	r.GET("/api/documents/:id", func(c *gin.Context) {
		d, ok := gatedDocument(c, st)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, d)
	})

	r.PUT("/api/documents/:id", func(c *gin.Context) {
		var req struct {
			Title    string   `json:"title"`
			Content  []string `json:"content"`
			Password *string  `json:"password,omitempty"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		id := c.Param("id")
		d, err := st.Get(id)
		if err != nil {
			// the store treats unknown ids as a no-op; interactive callers
			// still get told
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		d.Title = req.Title
		if req.Content != nil {
			d.Content = req.Content
		}
		if req.Password != nil {
			d.Password = *req.Password // empty string removes protection
		}
		st.Update(c.Request.Context(), d)

		updated, err := st.Get(id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	r.DELETE("/api/documents/:id", func(c *gin.Context) {
		st.Delete(c.Request.Context(), c.Param("id"))
		c.Status(http.StatusNoContent)
	})

	r.GET("/api/documents/:id/share", func(c *gin.Context) {
		d, ok := gatedDocument(c, st)
		if !ok {
			return
		}
		token := share.Encode(d.Title, d.Content)
		c.JSON(http.StatusOK, gin.H{
			"token":    token,
			"fragment": share.FragmentPath(token),
		})
	})

	r.GET("/api/documents/:id/export/:format", func(c *gin.Context) {
		d, ok := gatedDocument(c, st)
		if !ok {
			return
		}
		e, err := exporters.Get(c.Param("format"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "formats": exporters.Formats()})
			return
		}
		out, err := e.Export(d)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, e.ContentType(), out)
	})

	r.POST("/api/import", func(c *gin.Context) {
		var req struct {
			Fragment string `json:"fragment"`
			Token    string `json:"token"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		token := req.Token
		if token == "" {
			var err error
			token, err = share.ParseFragment(req.Fragment)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "not a share link"})
				return
			}
		}

		// the fragment is consumed by this single decode attempt, success
		// or failure; the client must not retry it
		payload, err := share.Decode(token)
		if err != nil {
			metrics.ShareDecodes.WithLabelValues("failure").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not import the shared document: the link may be corrupted"})
			return
		}
		metrics.ShareDecodes.WithLabelValues("success").Inc()

		d := st.ImportShared(c.Request.Context(), payload)
		c.JSON(http.StatusCreated, d)
	})
}

// gatedDocument loads a document and applies the deterrent-password gate.
// A wrong attempt is a retryable 403, never a lockout.
func gatedDocument(c *gin.Context, st *store.Store) (*document.Document, bool) {
	d, err := st.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return nil, false
	}
	if !d.Protection().Check(c.GetHeader(passwordHeader)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "incorrect password", "retryable": true})
		return nil, false
	}
	return d, true
}

// RegisterAssistantRoutes wires the conversational assistant pass-through.
// Without a configured credential the feature reports unavailable; it never
// crashes the host.
func RegisterAssistantRoutes(r *gin.Engine, client *assistant.Client) {
	r.POST("/api/assistant/chat", func(c *gin.Context) {
		if !client.Available() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant unavailable"})
			return
		}
		var req struct {
			Message string              `json:"message"`
			History []assistant.Message `json:"history"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
			return
		}
		reply, err := client.Chat(c.Request.Context(), req.History, req.Message)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "assistant request failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reply": reply})
	})
}
