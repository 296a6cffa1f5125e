package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/lunch/internal/entities"
)

// RestaurantCommands is the command layer the restaurant endpoints are built on.
// Errors are expected to be *commands.Error values.
type RestaurantCommands interface {
	ListRestaurants(ctx context.Context) ([]entities.Restaurant, error)
	AddRestaurant(ctx context.Context, name, category string) (entities.Restaurant, error)
	UpdateRestaurant(ctx context.Context, originalName, newName, category string) (entities.Restaurant, error)
	DeleteRestaurant(ctx context.Context, name string) error
	RollLunch(ctx context.Context, category string) (entities.Restaurant, error)
	History(ctx context.Context, limit int) ([]entities.HistoryRecord, error)
}

type RestaurantsController struct {
	commands RestaurantCommands
	log      *slog.Logger
}

func NewRestaurantsController(commands RestaurantCommands, log *slog.Logger) *RestaurantsController {
	if log == nil {
		log = slog.Default()
	}
	return &RestaurantsController{commands: commands, log: log}
}

// RestaurantRequest is the body accepted when creating or updating a restaurant.
type RestaurantRequest struct {
	Name     string `json:"name" form:"name"`
	Category string `json:"category" form:"category"`
}

// RollRequest is the body accepted by POST /api/roll.
type RollRequest struct {
	Category string `json:"category" form:"category"`
}

// ListRestaurants returns every restaurant
// GET /api/restaurants
func (rc *RestaurantsController) ListRestaurants(c *gin.Context) {
	restaurants, err := rc.commands.ListRestaurants(c.Request.Context())
	if err != nil {
		respondCommandError(c, rc.log, err)
		return
	}
	if restaurants == nil {
		restaurants = []entities.Restaurant{}
	}
	c.JSON(http.StatusOK, restaurants)
}

// AddRestaurant creates a restaurant
// POST /api/restaurants
func (rc *RestaurantsController) AddRestaurant(c *gin.Context) {
	var req RestaurantRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	restaurant, err := rc.commands.AddRestaurant(c.Request.Context(), req.Name, req.Category)
	if err != nil {
		respondCommandError(c, rc.log, err)
		return
	}

	respondCreated(c, restaurant)
}

// UpdateRestaurant renames and/or recategorizes a restaurant. An empty name in the
// body keeps the current one.
// PUT /api/restaurants/:name
func (rc *RestaurantsController) UpdateRestaurant(c *gin.Context) {
	originalName := c.Param("name")

	var req RestaurantRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	newName := req.Name
	if newName == "" {
		newName = originalName
	}

	restaurant, err := rc.commands.UpdateRestaurant(c.Request.Context(), originalName, newName, req.Category)
	if err != nil {
		respondCommandError(c, rc.log, err)
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

// DeleteRestaurant removes a restaurant. Unknown names succeed.
// DELETE /api/restaurants/:name
func (rc *RestaurantsController) DeleteRestaurant(c *gin.Context) {
	name := c.Param("name")
	if err := rc.commands.DeleteRestaurant(c.Request.Context(), name); err != nil {
		respondCommandError(c, rc.log, err)
		return
	}
	respondSuccess(c, name+" deleted")
}

// Roll picks a random restaurant from the category given in the query string
// GET /api/roll?category=Cheap
func (rc *RestaurantsController) Roll(c *gin.Context) {
	rc.roll(c, c.Query("category"))
}

// RollPost picks a random restaurant from the category given in the body
// POST /api/roll
func (rc *RestaurantsController) RollPost(c *gin.Context) {
	var req RollRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	rc.roll(c, req.Category)
}

func (rc *RestaurantsController) roll(c *gin.Context, category string) {
	restaurant, err := rc.commands.RollLunch(c.Request.Context(), category)
	if err != nil {
		respondCommandError(c, rc.log, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// History returns recent picks, newest first
// GET /api/history?limit=14
func (rc *RestaurantsController) History(c *gin.Context) {
	limit, ok := parseLimitQuery(c, "limit", 0)
	if !ok {
		return
	}

	records, err := rc.commands.History(c.Request.Context(), limit)
	if err != nil {
		respondCommandError(c, rc.log, err)
		return
	}
	if records == nil {
		records = []entities.HistoryRecord{}
	}
	c.JSON(http.StatusOK, records)
}
