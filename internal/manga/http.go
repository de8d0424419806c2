package manga

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/midgard/midgard-core/internal/auth"
	"github.com/midgard/midgard-core/internal/domain"
)

// RegisterRoutes mounts the public catalog endpoints and the guarded
// favorites endpoints.
func RegisterRoutes(public, protected *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}

	public.GET("/manga", handler.list)
	public.GET("/manga/popular", handler.popular)

	protected.POST("/me/favorites", handler.addFavorite)
	protected.GET("/me/favorites", handler.listFavorites)
}

type httpHandler struct {
	service *Service
}

type mangaResponse struct {
	ID         string    `json:"id"`
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Popularity int64     `json:"popularity"`
	CoverURL   string    `json:"coverUrl,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (h *httpHandler) list(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"statusCode": http.StatusBadRequest,
				"message":    "page deve ser um número",
			})
			return
		}
		page = parsed
	}

	entries, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		auth.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, marshalEntries(entries))
}

func (h *httpHandler) popular(c *gin.Context) {
	entries, err := h.service.MostPopular(c.Request.Context())
	if err != nil {
		auth.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, marshalEntries(entries))
}

func (h *httpHandler) addFavorite(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		auth.WriteError(c, domain.Unauthorized("Token não informado"))
		return
	}

	slug := c.Query("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"statusCode": http.StatusBadRequest,
			"message":    "slug é obrigatório",
		})
		return
	}

	entry, err := h.service.Favorite(c.Request.Context(), principal.UserID, slug)
	if err != nil {
		auth.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, marshalEntry(entry))
}

func (h *httpHandler) listFavorites(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		auth.WriteError(c, domain.Unauthorized("Token não informado"))
		return
	}

	entries, err := h.service.Favorites(c.Request.Context(), principal.UserID)
	if err != nil {
		auth.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, marshalEntries(entries))
}

func marshalEntry(entry Entry) mangaResponse {
	return mangaResponse{
		ID:         entry.ID,
		Slug:       entry.Slug,
		Title:      entry.Title,
		Author:     entry.Author,
		Popularity: entry.Popularity,
		CoverURL:   entry.CoverURL,
		UpdatedAt:  entry.UpdatedAt.UTC(),
	}
}

func marshalEntries(entries []Entry) []mangaResponse {
	out := make([]mangaResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, marshalEntry(entry))
	}
	return out
}
