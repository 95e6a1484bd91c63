package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"ide-assistant-be/internal/entity"
	"ide-assistant-be/internal/repository/specification"
	"ide-assistant-be/internal/repository/unitofwork"
	"ide-assistant-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds an admin user and optionally promotes a login to lead of a project.
//
//	go run ./cmd/seed -admin <login>
//	go run ./cmd/seed -lead <login> -project <name>
func main() {
	adminLogin := flag.String("admin", "", "github login to register with the admin role")
	leadLogin := flag.String("lead", "", "github login to promote to project lead")
	projectName := flag.String("project", "", "project to attach the lead to")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	if *adminLogin != "" {
		seedAdmin(ctx, uow, *adminLogin)
	}
	if *leadLogin != "" {
		if *projectName == "" {
			log.Fatal("Error: -lead requires -project")
		}
		seedLead(ctx, uow, *leadLogin, *projectName)
	}
	if *adminLogin == "" && *leadLogin == "" {
		flag.Usage()
	}
}

func seedAdmin(ctx context.Context, uow unitofwork.UnitOfWork, login string) {
	users := uow.UserRepository()

	user, err := users.FindOne(ctx, specification.ByLogin{Login: login})
	if err != nil {
		log.Fatal("Error: lookup user:", err)
	}
	if user == nil {
		user = &entity.User{
			Id:        uuid.New(),
			Login:     login,
			Role:      entity.UserRoleAdmin,
			CreatedAt: time.Now(),
		}
		if err := users.Create(ctx, user); err != nil {
			log.Fatal("Error: create admin user:", err)
		}
		log.Printf("✅ Created admin user %q", login)
		return
	}

	if err := users.UpdateRole(ctx, user.Id, entity.UserRoleAdmin); err != nil {
		log.Fatal("Error: promote user:", err)
	}
	log.Printf("✅ Promoted user %q to admin", login)
}

func seedLead(ctx context.Context, uow unitofwork.UnitOfWork, login, projectName string) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByLogin{Login: login})
	if err != nil {
		log.Fatal("Error: lookup user:", err)
	}
	if user == nil {
		log.Fatalf("Error: no user found for login %q; they must log in once first", login)
	}

	projects := uow.ProjectRepository()
	project, err := projects.FindOne(ctx, specification.ByProjectName{Name: projectName})
	if err != nil {
		log.Fatal("Error: lookup project:", err)
	}
	if project == nil {
		project = &entity.Project{
			Id:        uuid.New(),
			Name:      projectName,
			CreatedAt: time.Now(),
		}
		if err := projects.CreateIfAbsent(ctx, project); err != nil {
			log.Fatal("Error: create project:", err)
		}
		project, err = projects.FindOne(ctx, specification.ByProjectName{Name: projectName})
		if err != nil || project == nil {
			log.Fatal("Error: project missing after create:", err)
		}
	}

	if err := projects.AddLead(ctx, project.Id, user.Id); err != nil {
		log.Fatal("Error: add project lead:", err)
	}
	log.Printf("✅ User %q is now a lead of project %q", login, projectName)
}
