package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"airvana/internal/client"
	"airvana/internal/editor"
	"airvana/internal/estimator"
	"airvana/internal/geometry"
	"airvana/internal/http/middleware"
	"airvana/internal/service"
)

type Handler struct {
	userService      *service.UserService
	plotService      *service.PlotService
	weatherService   *service.WeatherService
	dashboardService *service.DashboardService
	geocoder         *client.NominatimClient
	sessions         *editor.Hub
	log              zerolog.Logger
}

func NewHandler(
	userService *service.UserService,
	plotService *service.PlotService,
	weatherService *service.WeatherService,
	dashboardService *service.DashboardService,
	geocoder *client.NominatimClient,
	sessions *editor.Hub,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		userService:      userService,
		plotService:      plotService,
		weatherService:   weatherService,
		dashboardService: dashboardService,
		geocoder:         geocoder,
		sessions:         sessions,
		log:              log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	r.POST("/register-person", h.registerPerson)
	r.POST("/login", h.login)

	protected := r.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/api/users/me/plots", h.listMyPlots)
	protected.GET("/debug/user/:userID/plots", h.listUserPlots)
	protected.GET("/api/species", h.listSpecies)

	protected.POST("/save-coordinates", h.saveCoordinates)
	protected.POST("/save-plot", h.savePlots)
	protected.POST("/rename-plot", h.renamePlot)
	protected.POST("/delete-plot", h.deletePlotByName)
	protected.DELETE("/delete-terrain", h.deletePlotByID)

	protected.POST("/get_open_meteo/:plotID", h.fetchWeather)
	protected.GET("/calcola_co2/:plotID", h.hourlySeries)
	protected.POST("/co2_by_species/:plotID", h.speciesSeries)
	protected.GET("/api/weather/exists", h.weatherExists)

	protected.GET("/api/geocode/search", h.geocodeSearch)
	protected.GET("/api/geocode/reverse", h.geocodeReverse)

	ed := protected.Group("/api/editor")
	{
		ed.GET("/state", h.editorState)
		ed.POST("/plots", h.editorCreateDraft)
		ed.DELETE("/draft", h.editorDiscardDraft)
		ed.POST("/draft/commit", h.editorCommitDraft)
		ed.POST("/plots/:plotID/select", h.editorSelectPlot)
		ed.DELETE("/plots/:plotID", h.editorDeletePlot)
		ed.POST("/plots/:plotID/polygon", h.editorAttachPolygon)
		ed.DELETE("/plots/:plotID/polygon", h.editorDetachPolygon)
		ed.POST("/plots/:plotID/species", h.editorAddSpecies)
		ed.PUT("/plots/:plotID/species/:index", h.editorEditSpecies)
		ed.DELETE("/plots/:plotID/species/:index", h.editorRemoveSpecies)
		ed.POST("/shapes", h.editorShapeCreated)
		ed.PUT("/shapes/:layerID", h.editorShapeEdited)
		ed.DELETE("/shapes/:layerID", h.editorShapeDeleted)
	}
}

func (h *Handler) registerPerson(c *gin.Context) {
	var req struct {
		Email     string `json:"mail" binding:"required"`
		Password  string `json:"password" binding:"required"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		City      string `json:"city"`
		Province  string `json:"province"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	user, err := h.userService.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		City:      req.City,
		Province:  req.Province,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(gin.H{"idutente": user.ID, "mail": user.Email}))
}

func (h *Handler) login(c *gin.Context) {
	var req struct {
		Email    string `json:"mail" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	token, user, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{
		"token":    token,
		"idutente": user.ID,
		"mail":     user.Email,
	}))
}

func (h *Handler) listMyPlots(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing user"))
		return
	}

	plots, err := h.plotService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(plots))
}

// listUserPlots serves the debug view of another user's plots.
func (h *Handler) listUserPlots(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid user id"))
		return
	}

	plots, err := h.plotService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(plots))
}

func (h *Handler) listSpecies(c *gin.Context) {
	species, err := h.plotService.ListSpecies(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(species))
}

type plotPayload struct {
	Name        string                   `json:"terrainName" binding:"required"`
	Coordinates []geometry.Point         `json:"coordinates" binding:"required"`
	Species     []estimator.SpeciesEntry `json:"species"`
}

func (h *Handler) saveCoordinates(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing user"))
		return
	}

	var req plotPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	plot, err := h.plotService.SaveCoordinates(c.Request.Context(), userID, service.SavePlotInput{
		Name:     req.Name,
		Vertices: req.Coordinates,
		Species:  req.Species,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.dashboardService.Invalidate(plot.ID)
	h.sessions.Drop(userID)
	c.JSON(http.StatusCreated, successResponse(gin.H{"terrain_id": plot.ID}))
}

// savePlots is the bulk fallback: each plot is saved independently and
// per-plot failures are reported without aborting the rest.
func (h *Handler) savePlots(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing user"))
		return
	}

	var req struct {
		Plots []plotPayload `json:"plots" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	type result struct {
		Name      string     `json:"terrainName"`
		TerrainID *uuid.UUID `json:"terrain_id,omitempty"`
		Error     string     `json:"error,omitempty"`
	}
	results := make([]result, 0, len(req.Plots))
	for _, p := range req.Plots {
		plot, err := h.plotService.SaveCoordinates(c.Request.Context(), userID, service.SavePlotInput{
			Name:     p.Name,
			Vertices: p.Coordinates,
			Species:  p.Species,
		})
		if err != nil {
			results = append(results, result{Name: p.Name, Error: err.Error()})
			continue
		}
		h.dashboardService.Invalidate(plot.ID)
		results = append(results, result{Name: p.Name, TerrainID: &plot.ID})
	}

	h.sessions.Drop(userID)
	c.JSON(http.StatusOK, successResponse(results))
}

func (h *Handler) renamePlot(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing user"))
		return
	}

	var req struct {
		OldName string `json:"old_name" binding:"required"`
		NewName string `json:"new_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	plot, err := h.plotService.Rename(c.Request.Context(), userID, req.OldName, req.NewName)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.sessions.Drop(userID)
	c.JSON(http.StatusOK, successResponse(gin.H{"terrain_id": plot.ID, "terrainName": plot.Name}))
}

func (h *Handler) deletePlotByName(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing user"))
		return
	}

	var req struct {
		Name string `json:"terrainName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	plotID, err := h.plotService.DeleteByName(c.Request.Context(), userID, req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.dashboardService.Invalidate(plotID)
	h.sessions.Drop(userID)
	c.JSON(http.StatusOK, successResponse(gin.H{"deleted": req.Name}))
}

func (h *Handler) deletePlotByID(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing user"))
		return
	}

	plotID, err := uuid.Parse(c.Query("terrain_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid terrain id"))
		return
	}

	if err := h.plotService.DeleteByID(c.Request.Context(), userID, plotID); err != nil {
		h.handleError(c, err)
		return
	}

	h.dashboardService.Invalidate(plotID)
	h.sessions.Drop(userID)
	c.JSON(http.StatusOK, successResponse(gin.H{"deleted": plotID}))
}

// fetchWeather pulls today's forecast for the plot and returns the
// stored hourly rows, derivation included.
func (h *Handler) fetchWeather(c *gin.Context) {
	_, plotID, ok := h.ownedPlotID(c)
	if !ok {
		return
	}

	rows, err := h.weatherService.FetchAndStore(c.Request.Context(), plotID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.dashboardService.Invalidate(plotID)
	c.JSON(http.StatusOK, successResponse(rows))
}

func (h *Handler) hourlySeries(c *gin.Context) {
	_, plotID, ok := h.ownedPlotID(c)
	if !ok {
		return
	}
	day, ok := h.dayParam(c)
	if !ok {
		return
	}

	rows, err := h.dashboardService.Hourly(c.Request.Context(), plotID, day)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(rows))
}

func (h *Handler) speciesSeries(c *gin.Context) {
	_, plotID, ok := h.ownedPlotID(c)
	if !ok {
		return
	}
	day, ok := h.dayParam(c)
	if !ok {
		return
	}

	breakdown, err := h.dashboardService.BySpecies(c.Request.Context(), plotID, day)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(breakdown))
}

func (h *Handler) weatherExists(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing user"))
		return
	}

	plotID, err := uuid.Parse(c.Query("plot_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid plot id"))
		return
	}
	if _, err := h.plotService.GetOwned(c.Request.Context(), userID, plotID); err != nil {
		h.handleError(c, err)
		return
	}
	day, ok := h.dayParam(c)
	if !ok {
		return
	}

	exists, err := h.weatherService.Exists(c.Request.Context(), plotID, day)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"exists": exists}))
}

func (h *Handler) geocodeSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, errorResponse("query is required"))
		return
	}

	results, err := h.geocoder.Search(c.Request.Context(), query)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(results))
}

func (h *Handler) geocodeReverse(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lon, err2 := strconv.ParseFloat(c.Query("lon"), 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid coordinates"))
		return
	}

	result, err := h.geocoder.Reverse(c.Request.Context(), lat, lon)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(result))
}

// session loads the user's editing session, seeding a fresh one from the
// stored plots.
func (h *Handler) session(c *gin.Context) (*editor.Session, uuid.UUID, bool) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing user"))
		return nil, uuid.Nil, false
	}

	sess, fresh := h.sessions.Session(userID)
	if fresh {
		plots, err := h.plotService.EditorPlots(c.Request.Context(), userID)
		if err != nil {
			h.handleError(c, err)
			return nil, uuid.Nil, false
		}
		sess.Load(plots)
	}
	return sess, userID, true
}

func (h *Handler) editorState(c *gin.Context) {
	sess, _, ok := h.session(c)
	if !ok {
		return
	}

	state := gin.H{"plots": sess.Plots()}
	if draft, ok := sess.Draft(); ok {
		state["draft"] = draft
	}
	if selected, ok := sess.Selected(); ok {
		state["selected"] = selected
	}
	c.JSON(http.StatusOK, successResponse(state))
}

func (h *Handler) editorCreateDraft(c *gin.Context) {
	sess, _, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"terrainName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	draft, err := sess.CreateDraft(req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(draft))
}

func (h *Handler) editorDiscardDraft(c *gin.Context) {
	sess, _, ok := h.session(c)
	if !ok {
		return
	}
	if err := sess.DiscardDraft(); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"discarded": true}))
}

func (h *Handler) editorCommitDraft(c *gin.Context) {
	sess, _, ok := h.session(c)
	if !ok {
		return
	}

	saved, err := sess.CommitDraft(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	if plotID, err := uuid.Parse(saved.ID); err == nil {
		h.dashboardService.Invalidate(plotID)
	}
	c.JSON(http.StatusCreated, successResponse(saved))
}

func (h *Handler) editorSelectPlot(c *gin.Context) {
	sess, _, ok := h.session(c)
	if !ok {
		return
	}

	selection, err := sess.SelectPlot(c.Param("plotID"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(selection))
}

func (h *Handler) editorDeletePlot(c *gin.Context) {
	sess, userID, ok := h.session(c)
	if !ok {
		return
	}

	rawID := c.Param("plotID")
	selection, stored, err := removePlot(rawID,
		func(plotID uuid.UUID) error {
			return h.plotService.DeleteByID(c.Request.Context(), userID, plotID)
		},
		sess.DeletePlot,
	)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if stored {
		plotID, _ := uuid.Parse(rawID)
		h.dashboardService.Invalidate(plotID)
	}
	c.JSON(http.StatusOK, successResponse(selection))
}

// removePlot deletes a plot from storage before dropping it from the
// editing session, so a storage failure leaves the session untouched.
// IDs that are not uuids belong to unsaved drafts and skip storage. The
// second return reports whether a stored plot was removed.
func removePlot(rawID string, removeStored func(uuid.UUID) error, removeSession func(string) (editor.Selection, error)) (editor.Selection, bool, error) {
	plotID, parseErr := uuid.Parse(rawID)
	if parseErr == nil {
		if err := removeStored(plotID); err != nil && !errors.Is(err, service.ErrNotFound) {
			return editor.Selection{}, false, err
		}
	}

	selection, err := removeSession(rawID)
	if err != nil {
		return editor.Selection{}, false, err
	}
	return selection, parseErr == nil, nil
}

func (h *Handler) editorAttachPolygon(c *gin.Context) {
	sess, _, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Coordinates []geometry.Point `json:"coordinates" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	plot, err := sess.AttachPolygon(c.Param("plotID"), req.Coordinates)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(plot))
}

func (h *Handler) editorDetachPolygon(c *gin.Context) {
	sess, _, ok := h.session(c)
	if !ok {
		return
	}

	plot, err := sess.DetachPolygon(c.Param("plotID"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(plot))
}

type speciesPayload struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity"`
}

func (h *Handler) editorAddSpecies(c *gin.Context) {
	sess, _, ok := h.session(c)
	if !ok {
		return
	}

	var req speciesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	plot, err := sess.AddSpecies(c.Param("plotID"), req.Name, req.Quantity)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(plot))
}

func (h *Handler) editorEditSpecies(c *gin.Context) {
	sess, _, ok := h.session(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid species index"))
		return
	}

	var req speciesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	plot, err := sess.EditSpecies(c.Param("plotID"), index, req.Name, req.Quantity)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(plot))
}

func (h *Handler) editorRemoveSpecies(c *gin.Context) {
	sess, _, ok := h.session(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid species index"))
		return
	}

	plot, err := sess.RemoveSpecies(c.Param("plotID"), index)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(plot))
}

type shapePayload struct {
	LayerID     string           `json:"layer_id" binding:"required"`
	Coordinates []geometry.Point `json:"coordinates" binding:"required"`
}

func (h *Handler) editorShapeCreated(c *gin.Context) {
	sess, _, ok := h.session(c)
	if !ok {
		return
	}

	var req shapePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	plot, err := sess.ShapeCreated(req.LayerID, req.Coordinates)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(plot))
}

func (h *Handler) editorShapeEdited(c *gin.Context) {
	sess, _, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Coordinates []geometry.Point `json:"coordinates" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	plot, err := sess.ShapeEdited(c.Param("layerID"), req.Coordinates)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(plot))
}

func (h *Handler) editorShapeDeleted(c *gin.Context) {
	sess, _, ok := h.session(c)
	if !ok {
		return
	}

	plot, err := sess.ShapeDeleted(c.Param("layerID"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(plot))
}

// ownedPlotID parses :plotID and checks ownership in one step.
func (h *Handler) ownedPlotID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing user"))
		return uuid.Nil, uuid.Nil, false
	}

	plotID, err := uuid.Parse(c.Param("plotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid plot id"))
		return uuid.Nil, uuid.Nil, false
	}

	if _, err := h.plotService.GetOwned(c.Request.Context(), userID, plotID); err != nil {
		h.handleError(c, err)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, plotID, true
}

// dayParam reads the giorno query parameter (YYYY-MM-DD), defaulting to
// today.
func (h *Handler) dayParam(c *gin.Context) (time.Time, bool) {
	raw := c.Query("giorno")
	if raw == "" {
		return time.Now(), true
	}
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid giorno, expected YYYY-MM-DD"))
		return time.Time{}, false
	}
	return day, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, editor.ErrPlotNotFound),
		errors.Is(err, editor.ErrNoDraft):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, editor.ErrNameRequired),
		errors.Is(err, editor.ErrUnknownSpecies),
		errors.Is(err, editor.ErrInvalidQuantity),
		errors.Is(err, editor.ErrSpeciesIndex),
		errors.Is(err, editor.ErrNoActiveTarget),
		errors.Is(err, editor.ErrTooFewVertices),
		errors.Is(err, geometry.ErrCentroidUnavailable):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, editor.ErrDraftExists),
		errors.Is(err, editor.ErrDraftInProgress),
		errors.Is(err, editor.ErrCommitInProgress),
		errors.Is(err, service.ErrStale):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
