package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/doctorhouse/booking-api/internal/handlers"
	"github.com/doctorhouse/booking-api/internal/middleware"
	"github.com/doctorhouse/booking-api/internal/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Println("WARNING: JWT_SECRET is not set; token endpoints will fail.")
	}

	// --- Database Connection ---
	// A process that cannot reach the store must not start serving.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(os.Getenv("MONGO_URI")))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	dbName := os.Getenv("MONGO_DATABASE")
	if dbName == "" {
		dbName = "Doctor-House"
	}
	db := client.Database(dbName)
	log.Println("Successfully connected to MongoDB!")

	h := handlers.NewHandler(db)

	verify := middleware.AuthMiddleware()
	requireAdmin := middleware.RequireRole(models.RoleAdmin, middleware.MongoRoleLookup(db))

	// --- Gin Router ---
	r := gin.Default()

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// --- Routes ---
	r.GET("/", h.Root)
	r.GET("/api/health", h.Health)
	r.POST("/jwt", h.IssueToken)

	userRoutes := r.Group("/users")
	{
		userRoutes.GET("", verify, requireAdmin, h.ListUsers)
		userRoutes.GET("/admin/:email", verify, h.CheckAdmin)
		userRoutes.POST("", h.RegisterUser)
		userRoutes.PATCH("/admin/:id", verify, requireAdmin, h.ElevateUser)
		userRoutes.DELETE("/:id", verify, requireAdmin, h.DeleteUser)
		userRoutes.GET("/username/:username", h.ResolveUsername)
	}

	cartRoutes := r.Group("/carts", verify)
	{
		cartRoutes.GET("", h.ListCartItems)
		cartRoutes.POST("", h.AddCartItem)
		cartRoutes.PATCH("/:id", h.UpdateCartItem)
		cartRoutes.DELETE("/:id", h.RemoveCartItem)
	}

	menuRoutes := r.Group("/menu")
	{
		menuRoutes.GET("", h.ListMenu)
		menuRoutes.GET("/:id", h.GetMenuItem)
		menuRoutes.POST("", verify, requireAdmin, h.CreateMenuItem)
		menuRoutes.PATCH("/:id", verify, requireAdmin, h.UpdateMenuItem)
		menuRoutes.DELETE("/:id", verify, requireAdmin, h.DeleteMenuItem)
	}

	appointmentRoutes := r.Group("/appointments", verify)
	{
		appointmentRoutes.GET("", h.ListAppointments)
		appointmentRoutes.POST("", h.CreateAppointment)
		appointmentRoutes.PATCH("/:id", h.UpdateAppointment)
		appointmentRoutes.DELETE("/:id", h.CancelAppointment)
	}
	r.GET("/all-appointments", verify, requireAdmin, h.ListAllAppointments)

	profileRoutes := r.Group("/userprofile", verify)
	{
		profileRoutes.GET("", h.GetProfile)
		// POST and PUT are the same upsert: at most one profile per email.
		profileRoutes.POST("", h.UpsertProfile)
		profileRoutes.PUT("", h.UpsertProfile)
		profileRoutes.DELETE("", h.DeleteProfile)
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "5100"
	}
	log.Printf("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
