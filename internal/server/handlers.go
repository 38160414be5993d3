package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dshills/sitegen/internal/audit"
	"github.com/dshills/sitegen/internal/cache"
	"github.com/dshills/sitegen/internal/llm"
	"github.com/dshills/sitegen/internal/logger"
	"github.com/dshills/sitegen/internal/mutate"
	"github.com/dshills/sitegen/internal/pipeline"
	"github.com/dshills/sitegen/internal/site"
)

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type generateRequest struct {
	Prompt  string       `json:"prompt"`
	Options site.Options `json:"options"`
}

type generateMeta struct {
	GenerationTimeMs int64  `json:"generationTimeMs"`
	Cached           bool   `json:"cached"`
	Model            string `json:"model"`
}

type generateResponse struct {
	Success   bool              `json:"success"`
	Site      site.Document     `json:"site"`
	Analysis  site.Requirements `json:"analysis"`
	Meta      generateMeta      `json:"meta"`
	Fallbacks []string          `json:"fallbacks,omitempty"`
}

type mutateRequest struct {
	Command             string           `json:"command"`
	CurrentData         site.Content     `json:"currentData"`
	CurrentColors       site.ColorScheme `json:"currentColors"`
	CurrentFonts        site.FontScheme  `json:"currentFonts"`
	CurrentSectionOrder []string         `json:"currentSectionOrder"`
	TemplateID          string           `json:"templateId"`
	Title               string           `json:"title"`
}

func (r mutateRequest) document() site.Document {
	return site.Document{
		SchemaVersion: site.ContentSchemaVersion,
		TemplateID:    r.TemplateID,
		Title:         r.Title,
		Content:       r.CurrentData,
		Design:        site.Design{Colors: r.CurrentColors, Fonts: r.CurrentFonts},
		SectionOrder:  r.CurrentSectionOrder,
	}
}

type mutateResponse struct {
	Success     bool           `json:"success"`
	Changes     site.ChangeSet `json:"changes"`
	Explanation string         `json:"explanation"`
	Suggestions []string       `json:"additionalSuggestions,omitempty"`
	Site        site.Document  `json:"site"`
	Diff        string         `json:"diff"`
	Changed     []string       `json:"changed"`
}

type auditRequest struct {
	Site    site.Document `json:"site"`
	Suggest bool          `json:"suggest"`
}

type auditResponse struct {
	Success     bool               `json:"success"`
	Findings    audit.Findings     `json:"findings"`
	Score       int                `json:"score"`
	Suggestions []audit.Suggestion `json:"suggestions,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body", Details: err.Error()})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, errorBody{Error: pipeline.ErrEmptyPrompt.Error()})
		return
	}

	res, err := s.deps.Pipeline.Generate(c.Request.Context(), req.Prompt, req.Options)
	if err != nil {
		s.fail(c, "failed to generate site", err)
		return
	}
	c.JSON(http.StatusOK, generateResponse{
		Success:  true,
		Site:     res.Site,
		Analysis: res.Analysis,
		Meta: generateMeta{
			GenerationTimeMs: res.Duration.Milliseconds(),
			Cached:           res.Cached,
			Model:            res.Model,
		},
		Fallbacks: res.Fallbacks,
	})
}

func (s *Server) handleMutate(c *gin.Context) {
	var req mutateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body", Details: err.Error()})
		return
	}
	res, err := s.deps.Mutator.Apply(c.Request.Context(), req.Command, req.document())
	if errors.Is(err, mutate.ErrEmptyCommand) {
		c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	if err != nil {
		s.fail(c, "failed to process command", err)
		return
	}
	c.JSON(http.StatusOK, mutateResponse{
		Success:     true,
		Changes:     res.Changes,
		Explanation: res.Explanation,
		Suggestions: res.Suggestions,
		Site:        res.Site,
		Diff:        res.Diff,
		Changed:     res.Changed,
	})
}

func (s *Server) handleAudit(c *gin.Context) {
	var req auditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body", Details: err.Error()})
		return
	}
	f := audit.Run(req.Site)
	resp := auditResponse{Success: true, Findings: f, Score: audit.Score(f)}
	if req.Suggest && s.deps.Suggester != nil {
		sugg, err := s.deps.Suggester.Suggest(c.Request.Context(), req.Site, f)
		if err != nil {
			s.fail(c, "failed to generate suggestions", err)
			return
		}
		resp.Suggestions = sugg
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, cache.BuildReport(s.deps.Pipeline.CacheStats(), s.deps.Costs))
}

// fail writes a 500. Gateway errors carry a message fit for callers; other
// causes are reported by their error text.
func (s *Server) fail(c *gin.Context, msg string, err error) {
	_ = c.Error(err)
	details := err.Error()
	var ge *llm.Error
	if errors.As(err, &ge) {
		details = ge.Message
	}
	s.log.Warn(msg,
		logger.String(requestIDKey, c.GetString(requestIDKey)),
		logger.String("kind", string(llm.KindOf(err))),
		logger.Error(err),
	)
	c.JSON(http.StatusInternalServerError, errorBody{Error: msg, Details: details})
}
