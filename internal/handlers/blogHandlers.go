package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"cybershield/internal/models"
	"cybershield/internal/services"
	"cybershield/internal/utils"
)

type BlogHandler struct {
	blogService services.BlogService
}

func NewBlogHandler(blogService services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

func (h *BlogHandler) GetBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogService.GetBlogs(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"blogs":   blogs,
	})
}

func (h *BlogHandler) GetBlogByID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	blog, err := h.blogService.GetBlogByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"blog":    blog,
	})
}

func (h *BlogHandler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	user, err := utils.GetUserFromContext(r)
	if err != nil {
		utils.SendJSONError(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var input services.CreateBlogInput
	if isMultipart(r) {
		input.Title = r.FormValue("title")
		input.Content = r.FormValue("content")
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

	blog, err := h.blogService.CreateBlog(r.Context(), user, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"blog":    blog,
	})
}

func (h *BlogHandler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	user, err := utils.GetUserFromContext(r)
	if err != nil {
		utils.SendJSONError(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	id, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var update models.BlogUpdate
	if isMultipart(r) {
		update.Title = formValuePtr(r, "title")
		update.Content = formValuePtr(r, "content")
		update.Status = formValuePtr(r, "status")
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

	blog, err := h.blogService.UpdateBlog(r.Context(), user, id, update)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"blog":    blog,
	})
}

func (h *BlogHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	user, err := utils.GetUserFromContext(r)
	if err != nil {
		utils.SendJSONError(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	id, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	if err := h.blogService.DeleteBlog(r.Context(), user, id); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Blog deleted",
	})
}
