package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mental-wellness-api/internal/service"
)

// MoodHandler serves /api/moods and /api/stats.
type MoodHandler struct {
	Moods *service.MoodService
}

func NewMoodHandler(s *service.MoodService) *MoodHandler {
	if s == nil {
		panic("nil mood service passed to NewMoodHandler")
	}
	return &MoodHandler{Moods: s}
}

type moodReq struct {
	Mood    string  `json:"mood" validate:"required"`
	Feeling *string `json:"feeling"`
	Notes   *string `json:"notes"`
}

type moodCount struct {
	Mood  string `json:"mood"`
	Count int64  `json:"count"`
}

type feelingCount struct {
	Feeling string `json:"feeling"`
	Count   int64  `json:"count"`
}

type moodStatsResp struct {
	TopMoods    []moodCount    `json:"topMoods"`
	TopFeelings []feelingCount `json:"topFeelings"`
}

// Create: POST /api/moods
func (h *MoodHandler) Create(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req moodReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	entry, err := h.Moods.Create(c.Request().Context(), id, service.MoodInput{
		Mood:    req.Mood,
		Feeling: req.Feeling,
		Notes:   req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// List: GET /api/moods/:username?page=&limit=
func (h *MoodHandler) List(c echo.Context) error {
	page, limit, err := pageParams(c)
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.Moods.ListByUsername(c.Request().Context(), c.Param("username"), page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// ListByDate: GET /api/moods/date/:username/:date
func (h *MoodHandler) ListByDate(c echo.Context) error {
	entries, err := h.Moods.ListByDate(c.Request().Context(), c.Param("username"), c.Param("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

// Stats: GET /api/stats/:username
func (h *MoodHandler) Stats(c echo.Context) error {
	st, err := h.Moods.Stats(c.Request().Context(), c.Param("username"))
	if err != nil {
		return respondError(c, err)
	}
	resp := moodStatsResp{
		TopMoods:    make([]moodCount, 0, len(st.TopMoods)),
		TopFeelings: make([]feelingCount, 0, len(st.TopFeelings)),
	}
	for _, f := range st.TopMoods {
		resp.TopMoods = append(resp.TopMoods, moodCount{Mood: f.Value, Count: f.Count})
	}
	for _, f := range st.TopFeelings {
		resp.TopFeelings = append(resp.TopFeelings, feelingCount{Feeling: f.Value, Count: f.Count})
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete: DELETE /api/moods/:id
func (h *MoodHandler) Delete(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	entryID, ok := parseEntryID(c)
	if !ok {
		// no row can match, answer as for any id the caller does not own
		return respondError(c, service.ErrNotFoundOrUnauthorized)
	}
	if err := h.Moods.Delete(c.Request().Context(), id, entryID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Mood entry deleted"})
}

