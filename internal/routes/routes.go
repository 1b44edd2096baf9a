package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/softdesk/internal/config"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	Profile  *handlers.ProfileHandler
	Projects *handlers.ProjectHandler
	Issues   *handlers.IssueHandler
	Comments *handlers.CommentHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter, per IP
	api.Use(rateLimit(cfg.RateLimitMax))

	api.Get("/health", h.Health.Check)

	v1 := api.Group("/v1")

	// Public auth endpoints get a stricter limit. Middleware is attached per
	// route so it never leaks onto the protected groups.
	authLimit := rateLimit(cfg.AuthRateLimitMax)
	v1.Post("/register", authLimit, h.Auth.Register)
	v1.Post("/token", authLimit, h.Auth.Login)
	v1.Post("/token/refresh", authLimit, h.Auth.Refresh)
	v1.Post("/token/verify", authLimit, h.Auth.Verify)

	jwt := middleware.JWTProtected(cfg)
	actor := middleware.CurrentActor(db)

	v1.Post("/logout", jwt, actor, h.Auth.Logout)
	v1.Get("/profile", jwt, actor, h.Profile.Get)
	v1.Patch("/profile", jwt, actor, h.Profile.Update)

	projects := v1.Group("/projects", jwt, actor)
	projects.Get("/", h.Projects.List)
	projects.Post("/", h.Projects.Create)
	projects.Get("/:project_id", h.Projects.Get)
	projects.Put("/:project_id", h.Projects.Update)
	projects.Patch("/:project_id", h.Projects.Update)
	projects.Delete("/:project_id", h.Projects.Delete)
	projects.Get("/:project_id/contributors", h.Projects.Contributors)
	projects.Post("/:project_id/add_contributor", h.Projects.AddContributor)
	projects.Delete("/:project_id/remove_contributor", h.Projects.RemoveContributor)

	issues := projects.Group("/:project_id/issues")
	issues.Get("/", h.Issues.List)
	issues.Post("/", h.Issues.Create)
	issues.Get("/:issue_id", h.Issues.Get)
	issues.Put("/:issue_id", h.Issues.Update)
	issues.Patch("/:issue_id", h.Issues.Update)
	issues.Delete("/:issue_id", h.Issues.Delete)

	comments := issues.Group("/:issue_id/comments")
	comments.Get("/", h.Comments.List)
	comments.Post("/", h.Comments.Create)
	comments.Get("/:comment_id", h.Comments.Get)
	comments.Put("/:comment_id", h.Comments.Update)
	comments.Patch("/:comment_id", h.Comments.Update)
	comments.Delete("/:comment_id", h.Comments.Delete)
}

func rateLimit(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}
