package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petmeet/petmeet/models"
	"github.com/petmeet/petmeet/policy"
	"github.com/petmeet/petmeet/serializers"
	"github.com/petmeet/petmeet/store"
	"github.com/petmeet/petmeet/utils"
)

// AnimalController manages pet profiles.
type AnimalController struct {
	store *store.Store
	pager Paginator
}

// NewAnimalController builds the animal handlers.
func NewAnimalController(s *store.Store, pager Paginator) *AnimalController {
	return &AnimalController{store: s, pager: pager}
}

type createAnimalRequest struct {
	Name  string  `json:"name" binding:"required,max=50"`
	Breed *string `json:"breed" binding:"omitempty,max=80"`
	Type  string  `json:"type" binding:"required,oneof=dog cat"`
}

type updateAnimalRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=50"`
	Breed *string `json:"breed" binding:"omitempty,max=80"`
	Type  *string `json:"type" binding:"omitempty,oneof=dog cat"`
}

// ListUserAnimals lists the animals owned by a user.
func (a *AnimalController) ListUserAnimals(ctx *gin.Context) {
	userID, ok := parseID(ctx, "id", "user")
	if !ok {
		return
	}
	page, ok := a.pager.request(ctx)
	if !ok {
		return
	}
	rctx := ctx.Request.Context()
	if _, err := a.store.GetUser(rctx, userID); err != nil {
		respondError(ctx, err, "user")
		return
	}
	animals, total, err := a.store.ListUserAnimals(rctx, userID, page.window())
	if err != nil {
		respondError(ctx, err, "animal")
		return
	}
	writePage(ctx, page, total, serializers.AnimalIndexList(animals))
}

// CreateAnimal registers a pet owned by the caller.
func (a *AnimalController) CreateAnimal(ctx *gin.Context) {
	var req createAnimalRequest
	if !bindJSON(ctx, &req) {
		return
	}
	var c cleaner
	name := c.label("name", req.Name, 50)
	if !c.ok(ctx) {
		return
	}
	me := principal(ctx)
	animal := &models.Animal{
		Name:   name,
		Breed:  req.Breed,
		Type:   req.Type,
		UserID: me.ID,
	}
	if err := a.store.CreateAnimal(ctx.Request.Context(), animal); err != nil {
		respondError(ctx, err, "animal")
		return
	}
	animal.User = me
	utils.Created(ctx, serializers.NewAnimalDetail(animal))
}

// GetAnimal returns one animal with its owner.
func (a *AnimalController) GetAnimal(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "animal")
	if !ok {
		return
	}
	animal, err := a.store.GetAnimal(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, "animal")
		return
	}
	utils.Success(ctx, serializers.NewAnimalDetail(animal))
}

// UpdateAnimal lets the owner edit the profile. A PUT without breed clears it.
func (a *AnimalController) UpdateAnimal(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "animal")
	if !ok {
		return
	}
	rctx := ctx.Request.Context()
	animal, err := a.store.GetAnimal(rctx, id)
	if err != nil {
		respondError(ctx, err, "animal")
		return
	}
	if err := policy.CanEditAnimal(principal(ctx), animal); err != nil {
		respondError(ctx, err, "animal")
		return
	}

	var req updateAnimalRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !requireFull(ctx, field{"name", req.Name != nil}, field{"type", req.Type != nil}) {
		return
	}
	var c cleaner
	if req.Name != nil {
		animal.Name = c.label("name", *req.Name, 50)
	}
	if !c.ok(ctx) {
		return
	}
	if req.Type != nil {
		animal.Type = *req.Type
	}
	if req.Breed != nil || ctx.Request.Method == http.MethodPut {
		animal.Breed = req.Breed
	}
	if err := a.store.UpdateAnimal(rctx, animal); err != nil {
		respondError(ctx, err, "animal")
		return
	}
	utils.Success(ctx, serializers.NewAnimalDetail(animal))
}

// DeleteAnimal removes the caller's animal.
func (a *AnimalController) DeleteAnimal(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "animal")
	if !ok {
		return
	}
	rctx := ctx.Request.Context()
	animal, err := a.store.GetAnimal(rctx, id)
	if err != nil {
		respondError(ctx, err, "animal")
		return
	}
	if err := policy.CanEditAnimal(principal(ctx), animal); err != nil {
		respondError(ctx, err, "animal")
		return
	}
	if err := a.store.DeleteAnimal(rctx, id); err != nil {
		respondError(ctx, err, "animal")
		return
	}
	ctx.Status(http.StatusNoContent)
}
