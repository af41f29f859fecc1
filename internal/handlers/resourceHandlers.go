package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"cybershield/internal/models"
	"cybershield/internal/services"
	"cybershield/internal/utils"
)

type ResourceHandler struct {
	resourceService services.ResourceService
}

func NewResourceHandler(resourceService services.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

func (h *ResourceHandler) GetResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.resourceService.GetResources(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"resources": resources,
	})
}

func (h *ResourceHandler) GetResourceByID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	resource, err := h.resourceService.GetResourceByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"resource": resource,
	})
}

func (h *ResourceHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	user, err := utils.GetUserFromContext(r)
	if err != nil {
		utils.SendJSONError(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var input services.CreateResourceInput
	if isMultipart(r) {
		input.Title = r.FormValue("title")
		input.Description = r.FormValue("description")
		input.Category = r.FormValue("category")
		input.Link = r.FormValue("link")
		input.ImageURL = r.FormValue("imageUrl")

		imageURL, err := utils.SaveUploadedImage(r, "image")
		if err != nil && !errors.Is(err, utils.ErrNoUpload) {
			utils.SendJSONError(w, "Invalid upload: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err == nil {
			input.ImageURL = imageURL
		}
	} else if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	resource, err := h.resourceService.CreateResource(r.Context(), user, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"resource": resource,
	})
}

func (h *ResourceHandler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	user, err := utils.GetUserFromContext(r)
	if err != nil {
		utils.SendJSONError(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	id, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var update models.ResourceUpdate
	if isMultipart(r) {
		update.Title = formValuePtr(r, "title")
		update.Description = formValuePtr(r, "description")
		update.Category = formValuePtr(r, "category")
		update.Link = formValuePtr(r, "link")
		update.ImageURL = formValuePtr(r, "imageUrl")

		imageURL, err := utils.SaveUploadedImage(r, "image")
		if err != nil && !errors.Is(err, utils.ErrNoUpload) {
			utils.SendJSONError(w, "Invalid upload: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err == nil {
			update.ImageURL = &imageURL
		}
	} else if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.SendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	resource, err := h.resourceService.UpdateResource(r.Context(), user, id, update)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"resource": resource,
	})
}

func (h *ResourceHandler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	user, err := utils.GetUserFromContext(r)
	if err != nil {
		utils.SendJSONError(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	id, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	if err := h.resourceService.DeleteResource(r.Context(), user, id); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Resource deleted",
	})
}
