package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/move-academia/academy-api/docs"
	v1 "github.com/move-academia/academy-api/internal/api/handler/v1"
	"github.com/move-academia/academy-api/internal/api/middleware"
	"github.com/move-academia/academy-api/internal/config"
	"github.com/move-academia/academy-api/internal/pkg/mailer"
	"github.com/move-academia/academy-api/internal/repository"
	"github.com/move-academia/academy-api/internal/repository/dao"
	"github.com/move-academia/academy-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

type handlers struct {
	auth       *v1.AuthHandler
	dashboard  *v1.DashboardHandler
	person     *v1.PersonHandler
	class      *v1.ClassHandler
	enrollment *v1.EnrollmentHandler
	session    *v1.SessionHandler
	event      *v1.EventHandler
	content    *v1.ContentHandler
	contact    *v1.ContactHandler
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()
	s.MountHandlers(s.initHandlers(db))

	return s
}

func (s *Server) initHandlers(db *gorm.DB) handlers {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	personRepo := repository.NewPersonRepository(dao.NewPersonDAO(db))
	classRepo := repository.NewClassRepository(dao.NewClassDAO(db))
	enrollmentRepo := repository.NewEnrollmentRepository(dao.NewEnrollmentDAO(db))
	sessionRepo := repository.NewSessionRepository(dao.NewSessionDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	contentRepo := repository.NewContentRepository(dao.NewContentDAO(db))

	identitySvc := service.NewIdentityService(userRepo)
	authSvc := service.NewAuthService(userRepo, personRepo)
	personSvc := service.NewPersonService(personRepo)
	catalogSvc := service.NewCatalogService(classRepo)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, personRepo)
	dashboardSvc := service.NewDashboardService(classRepo, enrollmentSvc, personRepo)
	attendanceSvc := service.NewAttendanceService(sessionRepo, enrollmentRepo)
	eventSvc := service.NewEventService(eventRepo)
	contentSvc := service.NewContentService(contentRepo)

	var sender mailer.Sender = mailer.NewNoopSender()
	if s.Config.Mailer.Provider == "resend" {
		sender = mailer.NewResendSender(s.Config.Mailer.APIKey, s.Config.Mailer.FromAddress)
	}

	return handlers{
		auth:       v1.NewAuthHandler(s.Config.API, authSvc, identitySvc),
		dashboard:  v1.NewDashboardHandler(dashboardSvc, identitySvc),
		person:     v1.NewPersonHandler(personSvc, identitySvc),
		class:      v1.NewClassHandler(catalogSvc, identitySvc),
		enrollment: v1.NewEnrollmentHandler(enrollmentSvc, identitySvc),
		session:    v1.NewSessionHandler(attendanceSvc, identitySvc),
		event:      v1.NewEventHandler(eventSvc, identitySvc),
		content:    v1.NewContentHandler(contentSvc, identitySvc),
		contact:    v1.NewContactHandler(s.Config.Mailer, sender),
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	// Public routes. The optional JWT lets signed-in callers see extra
	// content (drafts, restricted events) on the same endpoints.
	public := s.Router.Group(basePath, authenticator.OptionalJWT())
	{
		public.POST("/auth/signup", h.auth.HandleSignup)
		public.POST("/auth/login", h.auth.HandleLogin)

		public.GET("/dashboard", h.dashboard.HandleGetDashboard)

		public.GET("/classes", h.class.HandleListClasses)
		public.GET("/classes/:classID", h.class.HandleGetClass)

		public.GET("/events", h.event.HandleListEvents)

		public.GET("/posts", h.content.HandleListPosts)
		public.GET("/posts/:postID", h.content.HandleGetPost)
		public.GET("/testimonials", h.content.HandleListTestimonials)

		public.POST("/contact", h.contact.HandleContact)
		public.POST("/contact/trial", h.contact.HandleTrialClass)
	}

	authed := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		authed.PUT("/auth/password", h.auth.HandleUpdatePassword)
		authed.GET("/users/:userID/roles", h.auth.HandleListRoles)
		authed.POST("/users/:userID/roles", h.auth.HandleGrantRole)
		authed.DELETE("/users/:userID/roles/:role", h.auth.HandleRevokeRole)

		authed.GET("/agenda", h.dashboard.HandleGetAgenda)

		authed.GET("/profiles/me", h.person.HandleGetOwnProfile)
		authed.GET("/profiles", h.person.HandleListProfiles)
		authed.PUT("/profiles/:profileID", h.person.HandleUpdateProfile)

		authed.GET("/athletes", h.person.HandleListAthletes)
		authed.POST("/athletes", h.person.HandleCreateAthlete)
		authed.GET("/athletes/mine", h.person.HandleListOwnAthletes)
		authed.POST("/athletes/mine", h.person.HandleAddOwnAthlete)
		authed.PUT("/athletes/:athleteID", h.person.HandleUpdateAthlete)
		authed.DELETE("/athletes/:athleteID", h.person.HandleDeleteAthlete)
		authed.GET("/athletes/:athleteID/guardians", h.person.HandleListGuardians)
		authed.POST("/athletes/:athleteID/guardians", h.person.HandleAddGuardian)
		authed.DELETE("/guardians/:linkID", h.person.HandleRemoveGuardian)

		authed.POST("/classes", h.class.HandleCreateClass)
		authed.PUT("/classes/:classID", h.class.HandleUpdateClass)
		authed.DELETE("/classes/:classID", h.class.HandleDeleteClass)
		authed.POST("/classes/:classID/schedules", h.class.HandleAddSchedule)
		authed.DELETE("/schedules/:scheduleID", h.class.HandleDeleteSchedule)

		authed.GET("/enrollments/mine", h.enrollment.HandleListOwnEnrollments)
		authed.POST("/enrollments", h.enrollment.HandleAddEnrollment)
		authed.GET("/classes/:classID/enrollments", h.enrollment.HandleListClassEnrollments)
		authed.PUT("/enrollments/:enrollmentID/status", h.enrollment.HandleUpdateEnrollmentStatus)
		authed.DELETE("/enrollments/:enrollmentID", h.enrollment.HandleDeleteEnrollment)

		authed.POST("/sessions", h.session.HandleCreateSession)
		authed.GET("/classes/:classID/sessions", h.session.HandleListSessions)
		authed.PUT("/sessions/:sessionID", h.session.HandleUpdateSession)
		authed.DELETE("/sessions/:sessionID", h.session.HandleDeleteSession)
		authed.GET("/sessions/:sessionID/attendance", h.session.HandleGetRoster)
		authed.PUT("/sessions/:sessionID/attendance", h.session.HandleSaveAttendance)

		authed.POST("/events", h.event.HandleCreateEvent)
		authed.PUT("/events/:eventID", h.event.HandleUpdateEvent)
		authed.DELETE("/events/:eventID", h.event.HandleDeleteEvent)

		authed.POST("/posts", h.content.HandleCreatePost)
		authed.PUT("/posts/:postID", h.content.HandleUpdatePost)
		authed.DELETE("/posts/:postID", h.content.HandleDeletePost)
		authed.POST("/posts/:postID/images", h.content.HandleAttachImage)
		authed.POST("/testimonials", h.content.HandleCreateTestimonial)
		authed.PUT("/testimonials/:testimonialID", h.content.HandleUpdateTestimonial)
		authed.DELETE("/testimonials/:testimonialID", h.content.HandleDeleteTestimonial)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Move Academia API"
	docs.SwaggerInfo.Description = "Role-aware scheduling, attendance and enrollment API for a sports academy."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
