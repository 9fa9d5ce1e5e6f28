package app

import (
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/workbench-backend/internal/adapter/blob"
	postgres "github.com/heartmarshall/workbench-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/workbench-backend/internal/adapter/postgres/audit"
	authmethodrepo "github.com/heartmarshall/workbench-backend/internal/adapter/postgres/authmethod"
	chatrepo "github.com/heartmarshall/workbench-backend/internal/adapter/postgres/chat"
	filerepo "github.com/heartmarshall/workbench-backend/internal/adapter/postgres/file"
	noterepo "github.com/heartmarshall/workbench-backend/internal/adapter/postgres/note"
	orgrepo "github.com/heartmarshall/workbench-backend/internal/adapter/postgres/organization"
	spacerepo "github.com/heartmarshall/workbench-backend/internal/adapter/postgres/space"
	userrepo "github.com/heartmarshall/workbench-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/workbench-backend/internal/auth"
	"github.com/heartmarshall/workbench-backend/internal/service/access"
	authsvc "github.com/heartmarshall/workbench-backend/internal/service/auth"
	"github.com/heartmarshall/workbench-backend/internal/service/chat"
	"github.com/heartmarshall/workbench-backend/internal/service/file"
	"github.com/heartmarshall/workbench-backend/internal/service/note"
	"github.com/heartmarshall/workbench-backend/internal/service/organization"
	"github.com/heartmarshall/workbench-backend/internal/service/space"
	"github.com/heartmarshall/workbench-backend/internal/service/user"
	"github.com/heartmarshall/workbench-backend/internal/transport/middleware"
	"github.com/heartmarshall/workbench-backend/internal/transport/rest"
	"github.com/heartmarshall/workbench-backend/internal/transport/rest/loader"
)

// server is the assembled HTTP surface plus the pieces Run drives in the
// background.
type server struct {
	http    *http.Server
	auth    *authsvc.Service
	limiter *middleware.RateLimiter
}

func newServer(in *Infra, blobs *blob.Store) *server {
	cfg, logger, pool := in.Config, in.Log, in.Pool

	// Repositories.
	users := userrepo.New(pool)
	authMethods := authmethodrepo.New(pool)
	orgs := orgrepo.New(pool)
	spaces := spacerepo.New(pool)
	chats := chatrepo.New(pool)
	notes := noterepo.New(pool)
	files := filerepo.New(pool)
	audit := auditrepo.New(pool)
	tx := postgres.NewTxManager(pool)

	// Services.
	checker := access.NewChecker(spaces, orgs)
	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	authService := authsvc.NewService(logger, users, in.Tokens, authMethods, spaces, audit, tx, jwt, cfg.Auth)
	userService := user.NewService(logger, users, audit, tx)
	orgService := organization.NewService(logger, orgs, users, audit, tx, cfg.Limits)
	spaceService := space.NewService(logger, spaces, orgs, checker, files, blobs, audit, tx, cfg.Limits)
	chatService := chat.NewService(logger, chats, checker, in.Search, audit, tx, cfg.Limits)
	noteService := note.NewService(logger, notes, checker, in.Search, audit, tx, cfg.Limits)
	fileService := file.NewService(logger, files, blobs, checker, audit, tx, cfg.Limits)

	// Handlers.
	components := []rest.Component{
		{Name: "database", Pinger: rest.PingFunc(pool.Ping), Critical: true},
		{Name: "storage", Pinger: blobs},
	}
	if in.Redis != nil {
		components = append(components, rest.Component{Name: "redis", Pinger: in.Redis, Critical: true})
	}
	if in.Meili != nil {
		components = append(components, rest.Component{Name: "search", Pinger: in.Meili})
	}

	handlers := rest.Handlers{
		Health:       rest.NewHealthHandler(Version, components...),
		Auth:         rest.NewAuthHandler(authService, logger),
		Profile:      rest.NewProfileHandler(userService, logger),
		Organization: rest.NewOrganizationHandler(orgService, logger),
		Space:        rest.NewSpaceHandler(spaceService, logger),
		Chat:         rest.NewChatHandler(chatService, logger),
		Note:         rest.NewNoteHandler(noteService, logger),
		File:         rest.NewFileHandler(fileService, cfg.Limits.MaxUploadBytes, logger),
		Search:       rest.NewSearchHandler(in.Search, logger),
	}

	// Middleware: Logger runs inside Auth so it sees the user id.
	var (
		limiter   *middleware.RateLimiter
		authLimit middleware.Middleware
	)
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(rateLimitCleanup)
		authLimit = limiter.Limit(cfg.RateLimit.Rate, cfg.RateLimit.Burst)
	}
	router := rest.NewRouter(handlers, authLimit,
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.ClientIP(cfg.Server.TrustProxy),
		middleware.CORS(cfg.CORS),
		middleware.Auth(authService),
		loader.Middleware(users),
		middleware.Logger(logger),
	)

	return &server{
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
			Handler:           router,
			ReadHeaderTimeout: cfg.Server.ReadTimeout,
			ReadTimeout:       cfg.Server.ReadTimeout,
			WriteTimeout:      cfg.Server.WriteTimeout,
			IdleTimeout:       cfg.Server.IdleTimeout,
		},
		auth:    authService,
		limiter: limiter,
	}
}
