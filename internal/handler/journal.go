package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mental-wellness-api/internal/service"
)

// JournalHandler serves /api/journal.
type JournalHandler struct {
	Journals *service.JournalService
}

func NewJournalHandler(s *service.JournalService) *JournalHandler {
	if s == nil {
		panic("nil journal service passed to NewJournalHandler")
	}
	return &JournalHandler{Journals: s}
}

type journalReq struct {
	Title   string  `json:"title" validate:"required"`
	Content string  `json:"content" validate:"required"`
	Tags    *string `json:"tags"`
}

type tagCount struct {
	Tags  string `json:"tags"`
	Count int64  `json:"count"`
}

type journalStatsResp struct {
	AverageSentiment float64    `json:"average_sentiment"`
	TopTags          []tagCount `json:"top_tags"`
}

// Create: POST /api/journal. The stored row carries the computed sentiment.
func (h *JournalHandler) Create(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req journalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	entry, err := h.Journals.Create(c.Request().Context(), id, service.JournalInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// List: GET /api/journal/:username?page=&limit=
func (h *JournalHandler) List(c echo.Context) error {
	page, limit, err := pageParams(c)
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.Journals.ListByUsername(c.Request().Context(), c.Param("username"), page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Stats: GET /api/journal/stats/:username
func (h *JournalHandler) Stats(c echo.Context) error {
	st, err := h.Journals.Stats(c.Request().Context(), c.Param("username"))
	if err != nil {
		return respondError(c, err)
	}
	resp := journalStatsResp{
		AverageSentiment: st.AverageSentiment,
		TopTags:          make([]tagCount, 0, len(st.TopTags)),
	}
	for _, f := range st.TopTags {
		resp.TopTags = append(resp.TopTags, tagCount{Tags: f.Value, Count: f.Count})
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete: DELETE /api/journal/:id
func (h *JournalHandler) Delete(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	entryID, ok := parseEntryID(c)
	if !ok {
		// no row can match, answer as for any id the caller does not own
		return respondError(c, service.ErrNotFoundOrUnauthorized)
	}
	if err := h.Journals.Delete(c.Request().Context(), id, entryID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Journal entry deleted"})
}
