package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/churrascometro/churrascometro/internal/services/shopping"
)

type storeRequest struct {
	Name   string             `json:"name"`
	Prices map[string]float64 `json:"prices"`
}

func (s *Server) handleChecklist(c *gin.Context) {
	mode := shopping.Mode(c.DefaultQuery("mode", string(shopping.ModeRecipe)))
	if !mode.Valid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "mode must be recipe or market"})
		return
	}
	list, err := s.shopping.Checklist(c.Request.Context(), mode)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleShareChecklist(c *gin.Context) {
	text, err := s.shopping.ShareText(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.String(http.StatusOK, text)
}

func (s *Server) handleToggle(c *gin.Context) {
	key := c.Param("key")
	checked, err := s.shopping.Toggle(c.Request.Context(), key)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "checked": checked})
}

func (s *Server) handleRemoveItem(c *gin.Context) {
	lc, err := s.shopping.RemoveItem(c.Request.Context(), c.Param("key"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lc)
}

func (s *Server) handleClearChecks(c *gin.Context) {
	if err := s.shopping.ClearChecks(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListStores(c *gin.Context) {
	stores, err := s.shopping.ListStores(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stores)
}

func (s *Server) handleGetStore(c *gin.Context) {
	store, err := s.shopping.GetStore(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

func (s *Server) handleAddStore(c *gin.Context) {
	var req storeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	store, err := s.shopping.AddStore(c.Request.Context(), req.Name, req.Prices)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, store)
}

func (s *Server) handleSetStorePrices(c *gin.Context) {
	var req storeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	store, err := s.shopping.SetStorePrices(c.Request.Context(), c.Param("id"), req.Prices)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

func (s *Server) handleDeleteStore(c *gin.Context) {
	if err := s.shopping.DeleteStore(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleCompare(c *gin.Context) {
	totals, err := s.shopping.Compare(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}
