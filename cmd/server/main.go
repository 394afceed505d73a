package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/rorfeny/workhours-api/pkg/archive"
	"github.com/rorfeny/workhours-api/pkg/database"
	"github.com/rorfeny/workhours-api/pkg/handlers"
	"github.com/rorfeny/workhours-api/pkg/ledger"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB()
	shifts := ledger.New(db)

	store, err := archive.NewStore()
	if err != nil {
		log.Fatalf("could not open report storage: %v", err)
	}

	// Best-effort archival check, once per session start. Safe to re-run: an
	// already-archived month short-circuits, and a failure leaves the report
	// regenerable on demand.
	if err := archive.RunMonthlyArchival(shifts, store, time.Now()); err != nil {
		log.Printf("monthly archival check failed: %v", err)
	}

	h := &handlers.Handler{Ledger: shifts, Store: store}

	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Work Hours API",
			"version": "1.0.0",
		})
	})

	r.POST("/shifts", h.AddShift)
	r.GET("/shifts/:month", h.GetMonth)
	r.PUT("/shifts/:id/times", h.UpdateShiftTimes)
	r.GET("/weeks/:month", h.GetWeeks)

	reports := r.Group("/reports")
	{
		reports.GET("/archived", h.ListArchived)
		reports.GET("/archived/:month", h.DownloadArchived)
		reports.GET("/:month/pdf", h.MonthPDF)
		reports.GET("/:month/xlsx", h.MonthXLSX)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
