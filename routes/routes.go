package routes

import (
	"net/http"

	"agora/ads"
	"agora/auth"
	"agora/business"
	"agora/chat"
	"agora/community"
	"agora/jobs"
	"agora/middleware"
	"agora/products"
	"agora/profile"
	"agora/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/userpic/*filepath", http.Dir("static/userpic"))
	router.ServeFiles("/static/jobpic/*filepath", http.Dir("static/jobpic"))
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
	router.ServeFiles("/static/communitypic/*filepath", http.Dir("static/communitypic"))
	router.ServeFiles("/static/chatpic/*filepath", http.Dir("static/chatpic"))
	router.ServeFiles("/static/adpic/*filepath", http.Dir("static/adpic"))
	router.ServeFiles("/static/resumes/*filepath", http.Dir("static/resumes"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))

	router.POST("/api/auth/request-otp", rl.Limit(auth.RequestOTP))
	router.POST("/api/auth/verify-otp", rl.Limit(auth.VerifyOTP))
}

func AddJobRoutes(router *httprouter.Router, h *jobs.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/jobs", middleware.OptionalAuth(h.GetJobs))
	router.POST("/api/jobs", rl.Limit(middleware.Authenticate(h.CreateJob)))
	router.PATCH("/api/jobs/job/:jobid/status", middleware.Authenticate(h.UpdateJobStatus))
	router.DELETE("/api/jobs/job/:jobid", middleware.Authenticate(h.DeleteJob))
	router.POST("/api/jobs/job/:jobid/apply", rl.Limit(middleware.Authenticate(h.Apply)))
	router.GET("/api/jobs/job/:jobid/pdf", middleware.Authenticate(h.ExportJobPDF))

	router.GET("/api/jobs/myjobs/applications", middleware.Authenticate(h.MyJobsApplications))
	router.PATCH("/api/jobs/myjobs/applications", middleware.Authenticate(h.UpdateApplicationStatus))
	router.DELETE("/api/jobs/myjobs/applications", middleware.Authenticate(h.DeleteApplication))
}

func AddBusinessRoutes(router *httprouter.Router, h *business.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/business/:userid", middleware.OptionalAuth(h.GetAccount))
	router.POST("/api/business", rl.Limit(middleware.Authenticate(h.CreateAccount)))
	router.PUT("/api/business/:userid", middleware.Authenticate(h.UpdateAccount))
	router.DELETE("/api/business/:userid", middleware.Authenticate(h.DeleteAccount))
	router.GET("/api/business/:userid/qr", h.StorefrontQR)
}

func AddCommunityRoutes(router *httprouter.Router, h *community.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/communities", rl.Limit(middleware.Authenticate(h.CreateCommunity)))
	router.GET("/api/communities/:communityid/members", middleware.OptionalAuth(h.GetMembers))
	router.GET("/api/communities/:communityid/posts", middleware.OptionalAuth(h.GetPosts))
	router.POST("/api/communities/:communityid/join", middleware.Authenticate(h.Join))
	router.POST("/api/communities/:communityid/leave", middleware.Authenticate(h.Leave))
	router.POST("/api/communities/:communityid/posts", rl.Limit(middleware.Authenticate(h.CreatePost)))
}

func AddProductRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/products", middleware.OptionalAuth(products.GetProducts))
	router.GET("/api/products/:productid", middleware.OptionalAuth(products.GetProduct))
	router.POST("/api/products", rl.Limit(middleware.Authenticate(products.CreateProduct)))
	router.POST("/api/products/:productid/variants", middleware.Authenticate(products.AddVariant))
	router.DELETE("/api/products/:productid", middleware.Authenticate(products.DeleteProduct))
}

func AddAdsRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/ads", ads.GetAds)
	router.POST("/api/ads", rl.Limit(middleware.Authenticate(ads.CreateAd)))
	router.PATCH("/api/ads/:adid/deactivate", middleware.Authenticate(ads.DeactivateAd))
	router.DELETE("/api/ads/:adid", middleware.Authenticate(ads.DeleteAd))
}

func AddProfileRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/user/:userid", middleware.OptionalAuth(profile.GetProfile))
	router.PUT("/api/profile/edit", middleware.Authenticate(profile.UpdateProfile))
	router.POST("/api/profile/images", rl.Limit(middleware.Authenticate(profile.UploadImage)))
	router.POST("/api/profile/resume", rl.Limit(middleware.Authenticate(profile.UploadResume)))
	router.POST("/api/profile/images/assign", middleware.Authenticate(profile.AssignImageRole))
	router.GET("/api/profile/images", middleware.Authenticate(profile.ListImages))
}

func AddChatRoutes(router *httprouter.Router, hub *chat.Hub) {
	router.GET("/ws/chat/:chatid", chat.WebSocketHandler(hub))
	router.POST("/api/chats", middleware.Authenticate(chat.CreateChat))
	router.GET("/api/chats", middleware.Authenticate(chat.ListChats))
	router.GET("/api/chats/:chatid/messages", middleware.Authenticate(chat.GetMessages))
}
