package integration

import (
	"net/http"
	"testing"

	"taskboard/db"
	"taskboard/internal/auth"
	"taskboard/internal/task"
	"taskboard/internal/web"
	"taskboard/middleware"
	"taskboard/tests/testutils"

	"github.com/stretchr/testify/require"
)

// testEnv wires the full application against a temp database
type testEnv struct {
	server      *testutils.TestServer
	authService *auth.Service
	taskService *task.Service
}

func setupTestEnv(t *testing.T) (*testEnv, func()) {
	factory, dbCleanup := testutils.SetupTestRepositoryFactory(t)
	cfg := testutils.GetTestConfig()

	dbManager := db.NewDBManager()

	tokenService := auth.NewTokenService(cfg.JwtKey)
	authService := auth.NewService(factory.NewUserRepository(), tokenService, dbManager)
	taskService := task.NewService(factory.NewTaskRepository(), dbManager)

	authHandlers := auth.NewAuthHandlers(authService)
	taskHandlers := task.NewTaskHandlers(taskService)
	mw := middleware.NewMiddleware(authService)

	webHandler := web.NewWebHandler(authService, taskService, cfg.SessionSecret)
	router := webHandler.SetupRoutes(mw, authHandlers, taskHandlers)

	server := testutils.NewTestServer(t, router)

	cleanup := func() {
		server.Close()
		dbManager.Stop()
		dbCleanup()
	}

	return &testEnv{
		server:      server,
		authService: authService,
		taskService: taskService,
	}, cleanup
}

// registerAndLogin creates an account and returns a fresh bearer token
func registerAndLogin(t *testing.T, env *testEnv, username, password string) string {
	resp := env.server.POST("/auth/register", "", map[string]string{
		"username": username,
		"password": password,
	})
	var registerBody map[string]interface{}
	testutils.AssertJSONResponse(t, resp, http.StatusCreated, &registerBody)

	resp = env.server.POST("/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	var loginBody map[string]string
	testutils.AssertJSONResponse(t, resp, http.StatusOK, &loginBody)
	require.NotEmpty(t, loginBody["token"])

	return loginBody["token"]
}
