package router

import (
	"context"
	"net/http"
	"time"

	"github.com/finds-lab/backend/config"
	"github.com/finds-lab/backend/internal/model"
	"github.com/finds-lab/backend/pkg/authenticator"
	"github.com/finds-lab/backend/pkg/logger"
	"github.com/finds-lab/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// HandlerFunc is the endpoint signature. The request is already bound from
// uri, query, or body parameters before the handler runs.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before (or after) the handler. It may derive a new
// context, which replaces the current one for the rest of the chain.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response has been written.
type CloserFunc func(ctx context.Context)

type Router struct {
	engine *gin.Engine
	group  gin.IRouter

	cfg          config.Configs
	log          logger.Logger
	db           *gorm.DB
	tokenEngine  authenticator.TokenEngine[model.AccessToken]
	sessionStore sessions.Store

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, log logger.Logger) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	return &Router{
		engine: engine,
		group:  engine,
		cfg:    cfg,
		log:    log,
		db:     db,
		tokenEngine: authenticator.NewTokenEngine[model.AccessToken](
			cfg.Auth.TokenSecret, time.Duration(cfg.Auth.AccessToken.Expiration)),
		sessionStore: sessions.NewCookieStore([]byte(cfg.Session.Secret)),
	}
}

// Branch returns a shallow copy of the router whose middleware chains can be
// extended without affecting the parent.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = make([]MiddlewareFunc, len(r.befores))
	copy(clone.befores, r.befores)
	clone.afters = make([]MiddlewareFunc, len(r.afters))
	copy(clone.afters, r.afters)
	clone.closers = make([]CloserFunc, len(r.closers))
	copy(clone.closers, r.closers)
	return &clone
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Static(relativePath, root string) {
	r.group.Static(relativePath, root)
}

func (r *Router) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   r.cfg.ApiServer.AllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler(r.engine)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.group.GET(pattern, wrapHandler(r, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.group.POST(pattern, wrapHandler(r, handler))
}

func PUT[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.group.PUT(pattern, wrapHandler(r, handler))
}

func PATCH[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.group.PATCH(pattern, wrapHandler(r, handler))
}

func DELETE[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.group.DELETE(pattern, wrapHandler(r, handler))
}

func (r *Router) baseContext(ginCtx *gin.Context) context.Context {
	ctx := ginCtx.Request.Context()
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.log)
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)
	ctx = xcontext.WithSessionStore(ctx, r.sessionStore)
	ctx = xcontext.WithHTTPRequest(ctx, ginCtx.Request)
	ctx = xcontext.WithHTTPWriter(ctx, ginCtx.Writer)
	ctx = xcontext.WithErrorHolder(ctx)
	ctx = xcontext.WithResponseHolder(ctx)
	return ctx
}
