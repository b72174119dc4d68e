package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/staffdesk/staffdesk/internal/config"
	"github.com/staffdesk/staffdesk/internal/domain/employee"
	appHTTP "github.com/staffdesk/staffdesk/internal/handler/http"
	"github.com/staffdesk/staffdesk/internal/pkg/database"
	"github.com/staffdesk/staffdesk/internal/pkg/jwt"
	"github.com/staffdesk/staffdesk/internal/repository/memory"
	"github.com/staffdesk/staffdesk/internal/repository/postgresql"
	serviceAuth "github.com/staffdesk/staffdesk/internal/service/auth"
	employeeService "github.com/staffdesk/staffdesk/internal/service/employee"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	var employeeRepo employee.EmployeeRepository
	switch cfg.Store.Type {
	case "postgres":
		dsn := cfg.DatabaseURL()
		db, err := database.NewPostgreSQLDB(dsn)
		if err != nil {
			fmt.Println("Error connecting to database:", err)
			return
		}
		employeeRepo = postgresql.NewEmployeeRepository(db)
	case "memory":
		employeeRepo = memory.NewSeededEmployeeRepository()
	default:
		log.Fatal("Unsupported store type: ", cfg.Store.Type)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	adminCredential, err := serviceAuth.NewAdminCredential(cfg.Admin.Username, cfg.Admin.Password)
	if err != nil {
		log.Fatal("Failed to initialize admin credential:", err)
	}

	authService := serviceAuth.NewAuthService(adminCredential, JWTService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)

	authHandler := appHTTP.NewAuthHandler(authService)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(JWTService, authHandler, employeeHandler, cfg.App.Env)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
