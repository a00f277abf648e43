// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	checkinfeature "github.com/mkovarik/kulturhub/internal/app/features/checkin"
	dashboardfeature "github.com/mkovarik/kulturhub/internal/app/features/dashboard"
	errorsfeature "github.com/mkovarik/kulturhub/internal/app/features/errors"
	eventsfeature "github.com/mkovarik/kulturhub/internal/app/features/events"
	financefeature "github.com/mkovarik/kulturhub/internal/app/features/finance"
	galleryfeature "github.com/mkovarik/kulturhub/internal/app/features/gallery"
	healthfeature "github.com/mkovarik/kulturhub/internal/app/features/health"
	homefeature "github.com/mkovarik/kulturhub/internal/app/features/home"
	joinfeature "github.com/mkovarik/kulturhub/internal/app/features/join"
	loginfeature "github.com/mkovarik/kulturhub/internal/app/features/login"
	logoutfeature "github.com/mkovarik/kulturhub/internal/app/features/logout"
	membersfeature "github.com/mkovarik/kulturhub/internal/app/features/members"
	registrationsfeature "github.com/mkovarik/kulturhub/internal/app/features/registrations"
	"github.com/mkovarik/kulturhub/internal/app/system/auth"
	"github.com/mkovarik/kulturhub/internal/app/system/mailer"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// BuildHandler constructs the root HTTP handler (router) for the app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed. The public site (events, gallery, join,
// /mycode) is open; everything under /admin requires an admin session.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	mail := mailer.New(
		appCfg.MailSMTPHost,
		appCfg.MailSMTPPort,
		appCfg.MailSMTPUser,
		appCfg.MailSMTPPass,
		appCfg.MailFrom,
		appCfg.MailFromName,
		logger,
	)

	var oauthCfg *oauth2.Config
	if appCfg.GoogleClientID != "" && appCfg.GoogleClientSecret != "" {
		oauthCfg = &oauth2.Config{
			ClientID:     appCfg.GoogleClientID,
			ClientSecret: appCfg.GoogleClientSecret,
			RedirectURL:  appCfg.BaseURL + "/login/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	eventsHandler := eventsfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/events", eventsfeature.PublicRoutes(eventsHandler))

	galleryHandler := galleryfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/gallery", galleryfeature.PublicRoutes(galleryHandler))

	joinHandler := joinfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	r.Mount("/join", joinfeature.Routes(joinHandler))

	registrationsHandler := registrationsfeature.NewHandler(deps.MongoDatabase, mail, appCfg.BaseURL, errLog, logger)
	r.Mount("/mycode", registrationsfeature.PublicRoutes(registrationsHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, mail, appCfg.BaseURL, oauthCfg, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Back office
	dashboardHandler := dashboardfeature.NewHandler(deps.MongoDatabase, errLog, logger)
	membersHandler := membersfeature.NewHandler(deps.MongoDatabase, mail, errLog, logger)
	financeHandler := financefeature.NewHandler(deps.MongoDatabase, errLog, logger)
	checkinHandler := checkinfeature.NewHandler(deps.MongoDatabase, errLog, logger)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Use(auth.RequireRole("admin"))

		r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler))

		r.Route("/admin", func(r chi.Router) {
			r.Mount("/events/{eventID}/registrations", registrationsfeature.AdminRoutes(registrationsHandler))
			r.Mount("/events", eventsfeature.AdminRoutes(eventsHandler))
			r.Mount("/gallery", galleryfeature.AdminRoutes(galleryHandler))
			r.Mount("/members", membersfeature.Routes(membersHandler))
			r.Mount("/finance", financefeature.Routes(financeHandler))
			r.Mount("/checkin", checkinfeature.Routes(checkinHandler))
		})
	})

	return r, nil
}
