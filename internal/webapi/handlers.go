package webapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huangsam/benchboard/core"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
	"go.uber.org/zap"
)

type handler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
	logger  *zap.Logger
}

// variantResponse describes one leaderboard and its submission form.
type variantResponse struct {
	Name        schema.VariantName `json:"name"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Formula     schema.Formula     `json:"formula"`
	Precision   int                `json:"precision"`
	Fields      []schema.FieldSpec `json:"fields"`
	Form        []schema.FormField `json:"form"`
	DefaultSort schema.SortSpec    `json:"default_sort"`
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) listVariants(c *gin.Context) {
	out := make([]variantResponse, len(schema.AllVariants))
	for i, v := range schema.AllVariants {
		out[i] = variantResponse{
			Name:        v.Name,
			Title:       v.Title,
			Description: v.Description,
			Formula:     v.Formula,
			Precision:   v.Precision,
			Fields:      v.Fields,
			Form:        v.FormFields(),
			DefaultSort: v.DefaultSort,
		}
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) getSummary(c *gin.Context) {
	summaries, err := core.GetSummaries(c.Request.Context(), h.mgr, schema.AllVariants)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *handler) getLeaderboard(c *gin.Context) {
	if _, err := schema.LookupVariant(c.Param("variant")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	cfg, err := contract.RevalidateView(h.baseCfg, contract.ViewParams{
		Variant:   c.Param("variant"),
		Sort:      c.Query("sort"),
		Direction: c.Query("dir"),
		Search:    c.Query("q"),
		Filter:    c.Query("filter"),
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := core.GetLeaderboard(c.Request.Context(), cfg, h.mgr)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *handler) submitScore(c *gin.Context) {
	v, err := schema.LookupVariant(c.Param("variant"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object of form values"})
		return
	}
	fields, err := contract.FormValues(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := core.SubmitRecord(c.Request.Context(), h.mgr.GetRecordStore(), v, fields)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("score submitted", zap.String("variant", string(v.Name)), zap.String("id", record.ID))
	c.JSON(http.StatusCreated, record)
}

// fail maps domain errors to HTTP responses.
func (h *handler) fail(c *gin.Context, err error) {
	var (
		ve *schema.ValidationError
		fe *schema.FetchError
		se *schema.SubmitError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    err.Error(),
			"fields":   ve.Fields(),
			"problems": ve.Problems,
		})
	case errors.As(err, &fe), errors.As(err, &se):
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
