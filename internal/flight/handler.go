package flight

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skytrip/internal/calendar"
	"skytrip/internal/results"
	"skytrip/internal/searchform"
)

type FlightHandler struct {
	service *Service
}

func NewFlightHandler(s *Service) *FlightHandler {
	return &FlightHandler{
		service: s,
	}
}

func (h *FlightHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.HealthHandler)
	router.GET("/v1/airports/nearby", h.NearbyAirportsHandler)
	router.GET("/v1/explore", h.ExploreHandler)

	s := router.Group("/v1/sessions")
	s.POST("", h.CreateSessionHandler)
	s.GET("/:id", h.SnapshotHandler)
	s.DELETE("/:id", h.DeleteSessionHandler)
	s.POST("/:id/airports", h.AirportInputHandler)
	s.POST("/:id/airports/select", h.AirportSelectHandler)
	s.PUT("/:id/form", h.UpdateFormHandler)
	s.GET("/:id/calendar", h.OpenCalendarHandler)
	s.POST("/:id/calendar/click", h.CalendarClickHandler)
	s.POST("/:id/calendar/hover", h.CalendarHoverHandler)
	s.POST("/:id/calendar/navigate", h.CalendarNavigateHandler)
	s.POST("/:id/calendar/close", h.CloseCalendarHandler)
	s.POST("/:id/search", h.SearchHandler)
	s.POST("/:id/search/more", h.LoadMoreHandler)
	s.DELETE("/:id/search/cache", h.InvalidateCacheHandler)
	s.PUT("/:id/results/filters", h.SetFiltersHandler)
	s.POST("/:id/results/:itineraryId/toggle", h.ToggleItineraryHandler)
}

// HealthHandler godoc
// @Summary      Liveness check
// @Description  Always 200 while the process serves; status is "degraded" when Redis is unreachable.
// @Tags         system
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func (h *FlightHandler) HealthHandler(c *gin.Context) {
	status, cacheStatus := "ok", "ok"
	if err := h.service.Ping(c.Request.Context()); err != nil {
		status, cacheStatus = "degraded", "unavailable"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "cache": cacheStatus})
}

// CreateSessionHandler godoc
// @Summary      Open a search screen
// @Tags         sessions
// @Produce      json
// @Success      201 {object} Snapshot
// @Router       /v1/sessions [post]
func (h *FlightHandler) CreateSessionHandler(c *gin.Context) {
	snap, err := h.service.CreateSession(c.Request.Context())
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

// SnapshotHandler godoc
// @Summary      Current state of a search screen
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} Snapshot
// @Failure      404 {object} map[string]string
// @Router       /v1/sessions/{id} [get]
func (h *FlightHandler) SnapshotHandler(c *gin.Context) {
	snap, err := h.service.Snapshot(c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *FlightHandler) DeleteSessionHandler(c *gin.Context) {
	if err := h.service.DeleteSession(c.Param("id")); err != nil {
		sendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AirportInputHandler godoc
// @Summary      Type into an airport field
// @Description  Suggestions are fetched after a short pause in typing; poll the session to read them.
// @Tags         airports
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        request body AirportInputRequest true "Typed text"
// @Success      202 {object} autocomplete.State
// @Failure      400 {object} map[string]string
// @Router       /v1/sessions/{id}/airports [post]
func (h *FlightHandler) AirportInputHandler(c *gin.Context) {
	var req AirportInputRequest
	if !bindJSON(c, &req) {
		return
	}
	st, err := h.service.AirportInput(c.Param("id"), req)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, st)
}

// AirportSelectHandler godoc
// @Summary      Pick an airport suggestion
// @Tags         airports
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        request body AirportSelectRequest true "Chosen suggestion"
// @Success      200 {object} Snapshot
// @Failure      404 {object} map[string]string
// @Router       /v1/sessions/{id}/airports/select [post]
func (h *FlightHandler) AirportSelectHandler(c *gin.Context) {
	var req AirportSelectRequest
	if !bindJSON(c, &req) {
		return
	}
	snap, err := h.service.AirportSelect(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// UpdateFormHandler godoc
// @Summary      Change trip type, cabin, passengers or legs
// @Tags         form
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        request body FormUpdateRequest true "Changes"
// @Success      200 {object} Snapshot
// @Failure      400 {object} map[string]string
// @Router       /v1/sessions/{id}/form [put]
func (h *FlightHandler) UpdateFormHandler(c *gin.Context) {
	var req FormUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	snap, err := h.service.UpdateForm(c.Param("id"), req)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// OpenCalendarHandler godoc
// @Summary      Open the date picker
// @Tags         calendar
// @Produce      json
// @Param        id    path  string true  "Session ID"
// @Param        leg   query int    false "Leg index"
// @Param        field query string false "departure or return"
// @Success      200 {object} calendar.View
// @Router       /v1/sessions/{id}/calendar [get]
func (h *FlightHandler) OpenCalendarHandler(c *gin.Context) {
	leg, err := strconv.Atoi(c.DefaultQuery("leg", "0"))
	if err != nil {
		sendError(c, newAppError(http.StatusBadRequest, ErrorCodeValidation, "leg must be a number", err))
		return
	}
	field := calendar.Field(c.DefaultQuery("field", string(calendar.FieldDeparture)))
	if field != calendar.FieldDeparture && field != calendar.FieldReturn {
		sendError(c, newAppError(http.StatusBadRequest, ErrorCodeValidation, "field must be departure or return", nil))
		return
	}

	v, err := h.service.OpenCalendar(c.Request.Context(), c.Param("id"), leg, field)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// CalendarClickHandler godoc
// @Summary      Click a day
// @Tags         calendar
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        request body CalendarClickRequest true "Day as YYYY-MM-DD"
// @Success      200 {object} CalendarResult
// @Router       /v1/sessions/{id}/calendar/click [post]
func (h *FlightHandler) CalendarClickHandler(c *gin.Context) {
	var req CalendarClickRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.service.CalendarClick(c.Param("id"), req.Day)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *FlightHandler) CalendarHoverHandler(c *gin.Context) {
	var req CalendarHoverRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.service.CalendarHover(c.Param("id"), req.Day)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *FlightHandler) CalendarNavigateHandler(c *gin.Context) {
	var req CalendarNavigateRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.service.CalendarNavigate(c.Request.Context(), c.Param("id"), req.Delta)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *FlightHandler) CloseCalendarHandler(c *gin.Context) {
	snap, err := h.service.CloseCalendar(c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SearchHandler godoc
// @Summary      Search flights with the current form
// @Tags         search
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} Snapshot
// @Failure      422 {object} map[string]string
// @Failure      502 {object} map[string]string
// @Router       /v1/sessions/{id}/search [post]
func (h *FlightHandler) SearchHandler(c *gin.Context) {
	snap, err := h.service.Search(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// LoadMoreHandler godoc
// @Summary      Poll an unfinished search for more results
// @Tags         search
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} Snapshot
// @Router       /v1/sessions/{id}/search/more [post]
func (h *FlightHandler) LoadMoreHandler(c *gin.Context) {
	snap, err := h.service.LoadMore(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *FlightHandler) InvalidateCacheHandler(c *gin.Context) {
	if err := h.service.InvalidateCache(c.Request.Context(), c.Param("id")); err != nil {
		sendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetFiltersHandler godoc
// @Summary      Filter and sort the results
// @Tags         results
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        request body results.FilterState true "Filter state"
// @Success      200 {object} results.View
// @Router       /v1/sessions/{id}/results/filters [put]
func (h *FlightHandler) SetFiltersHandler(c *gin.Context) {
	var req results.FilterState
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.service.SetFilters(c.Param("id"), req)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// ToggleItineraryHandler godoc
// @Summary      Expand or collapse a result row
// @Tags         results
// @Produce      json
// @Param        id          path string true "Session ID"
// @Param        itineraryId path string true "Itinerary ID"
// @Success      200 {object} results.View
// @Failure      422 {object} map[string]string
// @Router       /v1/sessions/{id}/results/{itineraryId}/toggle [post]
func (h *FlightHandler) ToggleItineraryHandler(c *gin.Context) {
	v, err := h.service.ToggleItinerary(c.Request.Context(), c.Param("id"), c.Param("itineraryId"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// NearbyAirportsHandler godoc
// @Summary      Airports near a coordinate
// @Tags         airports
// @Produce      json
// @Param        lat    query number true  "Latitude"
// @Param        lng    query number true  "Longitude"
// @Param        locale query string false "Locale"
// @Success      200 {array} autocomplete.Suggestion
// @Router       /v1/airports/nearby [get]
func (h *FlightHandler) NearbyAirportsHandler(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if err := errors.Join(errLat, errLng); err != nil {
		sendError(c, newAppError(http.StatusBadRequest, ErrorCodeValidation, "lat and lng must be numbers", err))
		return
	}

	out, err := h.service.NearbyAirports(c.Request.Context(), lat, lng, c.Query("locale"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ExploreHandler godoc
// @Summary      Cheapest destinations from an origin
// @Tags         search
// @Produce      json
// @Param        originEntityId query string true  "Origin entity id"
// @Param        cabinClass     query string false "Cabin class"
// @Success      200 {object} map[string]interface{}
// @Router       /v1/explore [get]
func (h *FlightHandler) ExploreHandler(c *gin.Context) {
	origin := c.Query("originEntityId")
	if origin == "" {
		sendError(c, newAppError(http.StatusBadRequest, ErrorCodeValidation, "originEntityId is required", nil))
		return
	}

	resp, err := h.service.Explore(c.Request.Context(), origin, searchform.CabinClass(c.Query("cabinClass")))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid request format: %v", err),
			"code":  ErrorCodeValidation,
		})
		return false
	}
	return true
}

func sendError(c *gin.Context, err error) {
	var appErr *AppError

	if errors.As(toAppError(err), &appErr) {
		c.JSON(appErr.Status, gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}

	// Default to 500 for unknown errors
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal Server Error",
		"code":    ErrorCodeInternalFailure,
		"details": err.Error(),
	})
}
