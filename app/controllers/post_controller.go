package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"blogposts/app/metrics"
	"blogposts/app/models"
	"blogposts/app/repositories"
	"blogposts/app/services"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService    *services.PostService
	metricsManager *metrics.Manager
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, metricsManager *metrics.Manager) *PostController {
	return &PostController{
		postService:    postService,
		metricsManager: metricsManager,
	}
}

// RegisterRoutes wires the post endpoints into the router
func (pc *PostController) RegisterRoutes(router *mux.Router) {
	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", pc.Index).Methods("GET").Name("list-posts")
	posts.HandleFunc("", pc.Create).Methods("POST").Name("create-post")
	posts.HandleFunc("/{id}", pc.Show).Methods("GET").Name("get-post")
	posts.HandleFunc("/{id}", pc.Edit).Methods("PUT").Name("update-post")
	posts.HandleFunc("/{id}", pc.Delete).Methods("DELETE").Name("delete-post")
}

// Index lists all posts as a bare JSON array
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		pc.sendServiceError(w, r, err)
		return
	}

	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, newPostView(post))
	}
	pc.sendJSON(w, http.StatusOK, views)
}

// Show returns a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	post, err := pc.postService.GetPost(r.Context(), id)
	if err != nil {
		pc.sendServiceError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, newPostView(post))
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Debugf("create post, unmarshal json: %s", err)
		pc.sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := models.Validator().Struct(req); err != nil {
		pc.sendServiceError(w, r, models.ValidationErrorFrom(err))
		return
	}

	post, err := pc.postService.CreatePost(r.Context(), req.toNewPost())
	if err != nil {
		pc.sendServiceError(w, r, err)
		return
	}
	if pc.metricsManager != nil {
		pc.metricsManager.CounterPostsCreated.Inc()
	}

	w.Header().Set("Location", "/posts/"+post.ID)
	pc.sendJSON(w, http.StatusCreated, newPostView(post))
}

// Edit applies a partial update to an existing post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req updatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Debugf("update post %s, unmarshal json: %s", id, err)
		pc.sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.ID != nil && !sameID(*req.ID, id) {
		pc.sendError(w, "Request path id and request body id must match", http.StatusBadRequest)
		return
	}

	if err := pc.postService.UpdatePost(r.Context(), id, req.toUpdate()); err != nil {
		pc.sendServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a post. It succeeds whether or not the post existed.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := pc.postService.DeletePost(r.Context(), id); err != nil {
		pc.sendServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// Helper methods for consistent response handling

func (pc *PostController) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Errorf("failed to write response: %s", err)
	}
}

func (pc *PostController) sendError(w http.ResponseWriter, message string, status int) {
	pc.sendJSON(w, status, map[string]string{"error": message})
}

// sendServiceError maps service errors onto status codes
func (pc *PostController) sendServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		pc.sendError(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, repositories.ErrNotFound):
		pc.sendError(w, "Post not found", http.StatusNotFound)
	default:
		log.Errorf("%s %s: %s", r.Method, r.URL.Path, err)
		pc.sendError(w, "Internal server error", http.StatusInternalServerError)
	}
}
