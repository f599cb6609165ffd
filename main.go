package main

import (
	"log"
	"strings"
	"time"

	"server/auth"
	"server/config"
	"server/db"
	"server/handlers"
	"server/models"
	"server/storage"
	"server/utils"
	"server/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName     = "token"
	sessionExpirationTime = 365 * 86400 // 1 year
)

func main() {
	db.Init(config.MYSQL_DSN, config.SQLITE_FILE)
	models.Init()
	storage.Init()

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.FailedRequestLog)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	// HTML templates
	router.LoadHTMLGlob("templates/*.tmpl")

	sessionKey := config.SESSION_KEY
	if sessionKey == "" {
		sessionKey = utils.RandSalt(32)
		log.Println("SESSION_KEY not set, sessions will not survive a restart")
	}
	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(sessionKey))
	cookieStore.Options(sessions.Options{MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/photos"})))
	}
	router.Use(utils.NoCacheHeaders) // No cache by default, individual end-points can override that

	// Custom Auth Router
	authRouter := &auth.Router{Base: router}
	// User info handlers
	router.POST("/user/login", handlers.UserLogin)
	router.GET("/user/status", handlers.UserGetStatus)
	authRouter.POST("/user/logout", handlers.UserLogout)
	authRouter.POST("/user/save", handlers.UserCreate)
	authRouter.GET("/user/events", handlers.SessionEvents)
	// Album handlers
	authRouter.GET("/album/list", handlers.AlbumList)
	authRouter.POST("/album/create", handlers.AlbumCreate)
	authRouter.POST("/album/save", handlers.AlbumSave)
	authRouter.POST("/album/delete", handlers.AlbumDelete)
	authRouter.GET("/album/share", handlers.AlbumShare)
	// Memory handlers
	authRouter.GET("/memory/list", handlers.MemoryList)
	authRouter.POST("/memory/create", handlers.MemoryCreate)
	authRouter.POST("/memory/delete", handlers.MemoryDelete)
	// Bucket handlers
	authRouter.GET("/bucket/list", handlers.BucketList)
	authRouter.POST("/bucket/save", handlers.BucketSave)

	/*
	 *	Public web interface - no session gate
	 */
	router.GET("/w/album/:slug", web.AlbumView)
	router.GET("/photos/*path", utils.PhotoCacheHeaders, web.PhotoView)
	router.GET("/robots.txt", web.DisallowRobots)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
