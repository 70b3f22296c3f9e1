//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"cleaning-feedback-bot/cmd/bootstrap"
	"cleaning-feedback-bot/cmd/bootstrap/components"
	"cleaning-feedback-bot/internal/infra/db"
	"cleaning-feedback-bot/internal/infra/telegram"
	"cleaning-feedback-bot/internal/pkg/config"
	"cleaning-feedback-bot/tests/common/dbtest"
	"cleaning-feedback-bot/tests/common/tgtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "bot"
	pgPassword = "botpass"
	pgPort     = nat.Port("5432/tcp")
)

var (
	pgOnce      sync.Once
	pgContainer testcontainers.Container
	pgErr       error
)

// Env is one isolated bot: its own database, HTTP router and fake Bot API.
type Env struct {
	Pool   *pgxpool.Pool
	Router *gin.Engine
	Config config.Config
	Bot    *tgtest.FakeBot
}

// ------------------------------------------------------------
// テストスイートごとの環境構築
// ------------------------------------------------------------
func newEnv(t *testing.T) Env {
	gin.SetMode(gin.TestMode)

	host, port := postgresAddr(t)
	dbConfig := createDatabase(t, host, port)

	pool, closePool, err := db.Connect(dbConfig)
	require.NoError(t, err, "データベース接続に失敗")
	t.Cleanup(closePool)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	require.NoError(t, db.Migrate(ctx, pool, slog.Default()), "マイグレーションに失敗")

	cfg := config.NewTestConfig()
	cfg.DB = dbConfig

	env := Env{Pool: pool, Config: cfg, Bot: tgtest.NewFakeBot(1)}
	env.Router = startApp(t, env)
	return env
}

// startApp wires the real modules around the fake Bot API and the test pool.
func startApp(t *testing.T, env Env) *gin.Engine {
	var router *gin.Engine

	app := fx.New(
		fx.Supply(env.Config, env.Pool),
		fx.Provide(
			func() *gin.Engine { return gin.New() },
			func() telegram.BotAPI { return env.Bot },
		),
		bootstrap.LoggerModule,
		bootstrap.MetricsModule,
		bootstrap.TokenModule,
		bootstrap.TelegramClientModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Invoke(bootstrap.StartIntake),
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリケーションの起動に失敗")

	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		if err := app.Stop(stopCtx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})
	return router
}

// ------------------------------------------------------------
// データベース作成（スイートごとに別DB）
// ------------------------------------------------------------
func createDatabase(t *testing.T, host string, port nat.Port) config.DBConfig {
	name := "bot_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", pgUser, pgPassword, host, port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "管理者接続に失敗")
	defer admin.Close()

	// 並列スイートが同時に CREATE DATABASE するとテンプレートのロックで失敗することがある
	for attempt := 0; ; attempt++ {
		if _, err = admin.Exec(ctx, "CREATE DATABASE "+name); err == nil || attempt == 4 {
			break
		}
		slog.Warn("データベース作成を再試行中", "attempt", attempt+1, "error", err.Error())
		time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
	}
	require.NoError(t, err, "テスト用データベースの作成に失敗")

	t.Cleanup(func() {
		dropCtx, dropCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dropCancel()
		dropPool, err := pgxpool.New(dropCtx, adminDSN)
		if err != nil {
			return
		}
		defer dropPool.Close()
		if _, err := dropPool.Exec(dropCtx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("テストデータベースの削除に失敗しました", "database", name, "error", err.Error())
		}
	})

	return config.DBConfig{
		Host:     host,
		Port:     port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "UTC",
	}
}

// ------------------------------------------------------------
// PostgreSQLコンテナはプロセス内で一度だけ起動し、ryuk に後始末を任せる
// ------------------------------------------------------------
func postgresAddr(t *testing.T) (string, nat.Port) {
	pgOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		pgContainer, pgErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17",
				ExposedPorts: []string{string(pgPort)},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
					"POSTGRES_DB":       "postgres",
				},
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=256m"},
				// 耐久性は不要なのでディスク同期を切る
				Cmd: []string{"postgres", "-c", "fsync=off", "-c", "synchronous_commit=off", "-c", "full_page_writes=off"},
				WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
					return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", pgUser, pgPassword, host, port.Port())
				}).WithStartupTimeout(60 * time.Second),
				Labels: map[string]string{"purpose": "e2e-tests"},
			},
			Started: true,
		})
	})
	require.NoError(t, pgErr, "PostgreSQLコンテナの起動に失敗")

	ctx := context.Background()
	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, pgPort)
	require.NoError(t, err)
	return host, port
}

// ------------------------------------------------------------
// E2Eテストスイートで共通のセットアップ
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool // 各テストで使う DB 接続
	Config config.Config
	Bot    *tgtest.FakeBot
}

func (s *SharedSuite) SetupSuite() {
	env := newEnv(s.T())
	s.DB = env.Pool
	s.Router = env.Router
	s.Config = env.Config
	s.Bot = env.Bot
}

func (s *SharedSuite) SetupSubTest() {
	// サブテストごとに全テーブルを空にする
	err := dbtest.ResetDB(s.DB)
	require.NoError(s.T(), err, "Failed to reset database state")
}
