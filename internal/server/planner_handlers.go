package server

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/services/planner"
)

type catalogEntry struct {
	calculator.ItemDefinition
	Price float64 `json:"price"`
}

type namedInput struct {
	Name   string           `json:"name"`
	Config calculator.Input `json:"config"`
}

type priceRequest struct {
	Price *float64 `json:"price"`
	Text  string   `json:"text"`
}

// bindInput decodes an event. Omitted meats mean the default selection.
func bindInput(c *gin.Context, in *calculator.Input) bool {
	if err := c.ShouldBindJSON(in); err != nil {
		badBody(c, err)
		return false
	}
	if in.SelectedMeats == nil {
		in.SelectedMeats = calculator.DefaultSelectedMeats()
	}
	return true
}

func (s *Server) recordCalculation(in calculator.Input, r calculator.Result) {
	if s.metrics == nil {
		return
	}
	d := in.Duration
	if !d.Valid() {
		d = calculator.DurationShort
	}
	s.metrics.observeCalculation(string(d), r.Totals.TotalCost)
}

// ============================================================================
// CALCULATOR
// ============================================================================

func (s *Server) handleCatalog(c *gin.Context) {
	overrides, err := s.planner.Overrides(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	defs := calculator.Catalog()
	out := make([]catalogEntry, len(defs))
	for i, def := range defs {
		out[i] = catalogEntry{ItemDefinition: def, Price: calculator.EffectivePrice(def.Key, overrides)}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCalculate(c *gin.Context) {
	var in calculator.Input
	if !bindInput(c, &in) {
		return
	}
	result, err := s.planner.Calculate(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	s.recordCalculation(in, result)
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleBudget(c *gin.Context) {
	in := calculator.DefaultReverseInput()
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	result, err := s.planner.Budget(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ============================================================================
// PRICES
// ============================================================================

func (s *Server) handleListPrices(c *gin.Context) {
	entries, err := s.planner.PriceList(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) handleSetPrice(c *gin.Context) {
	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	key := c.Param("key")
	var (
		price float64
		err   error
	)
	if req.Price != nil {
		price = calculator.RoundCents(*req.Price)
		err = s.planner.SetPrice(c.Request.Context(), key, *req.Price)
	} else {
		price, err = s.planner.SetPriceText(c.Request.Context(), key, req.Text)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "price": price})
}

func (s *Server) handleResetPrice(c *gin.Context) {
	if err := s.planner.ResetPrice(c.Request.Context(), c.Param("key")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleResetPrices(c *gin.Context) {
	if err := s.planner.ResetPrices(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleAddCustomItem(c *gin.Context) {
	var input planner.CustomItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badBody(c, err)
		return
	}
	item, err := s.planner.AddCustomItem(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) handleDeleteCustomItem(c *gin.Context) {
	if err := s.planner.DeleteCustomItem(c.Request.Context(), c.Param("key")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ============================================================================
// PROFILES
// ============================================================================

// handleListProfiles returns JSON, or the YAML export of the custom
// profiles with ?format=yaml.
func (s *Server) handleListProfiles(c *gin.Context) {
	if c.Query("format") == "yaml" {
		var buf bytes.Buffer
		if _, err := s.planner.ExportProfiles(c.Request.Context(), &buf); err != nil {
			writeError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="perfis.yaml"`)
		c.Data(http.StatusOK, "application/yaml", buf.Bytes())
		return
	}

	profiles, err := s.planner.ListProfiles(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (s *Server) handleGetProfile(c *gin.Context) {
	p, err := s.planner.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleSaveProfile(c *gin.Context) {
	var req namedInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	p, err := s.planner.SaveProfile(c.Request.Context(), req.Name, req.Config)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) handleImportProfiles(c *gin.Context) {
	n, err := s.planner.ImportProfiles(c.Request.Context(), c.Request.Body)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"imported": n})
}

func (s *Server) handleDeleteProfile(c *gin.Context) {
	if err := s.planner.DeleteProfile(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ============================================================================
// HISTORY
// ============================================================================

func (s *Server) handleListHistory(c *gin.Context) {
	page := models.DefaultPagination()
	if v, err := strconv.Atoi(c.Query("page")); err == nil {
		page.Page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil {
		page.PageSize = v
	}

	list, err := s.planner.ListHistory(c.Request.Context(), page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleGetHistory(c *gin.Context) {
	e, err := s.planner.GetHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (s *Server) handleSaveEvent(c *gin.Context) {
	var req namedInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	if req.Config.SelectedMeats == nil {
		req.Config.SelectedMeats = calculator.DefaultSelectedMeats()
	}

	saved, err := s.planner.SaveEvent(c.Request.Context(), req.Name, req.Config)
	if err != nil {
		writeError(c, err)
		return
	}
	s.recordCalculation(req.Config, saved.Result)
	c.JSON(http.StatusCreated, saved)
}

func (s *Server) handleDeleteHistory(c *gin.Context) {
	if err := s.planner.DeleteHistory(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleClearHistory(c *gin.Context) {
	if err := s.planner.ClearHistory(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
