package main

import (
	"io"

	"go.uber.org/zap"

	"github.com/cppla/postbox/config"
	"github.com/cppla/postbox/routes"
	"github.com/cppla/postbox/store"
	"github.com/cppla/postbox/utils"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	closers := []io.Closer{closerFunc(utils.CloseRedis)}

	if err := utils.EnsureUploadDir(cfg.UploadDir); err != nil {
		utils.Sugar.Fatalf("upload dir: %v", err)
	}

	var mirror store.UserMirror
	if cfg.MirrorEnabled() {
		db, err := config.OpenDatabase(cfg)
		if err != nil {
			utils.Sugar.Fatalf("user mirror: %v", err)
		}
		gm, err := store.NewGormMirror(db)
		if err != nil {
			utils.Sugar.Fatalf("user mirror: %v", err)
		}
		mirror = gm
		closers = append(closers, gm)
	}

	users := store.NewUserStore(mirror, utils.Logger.Named("users"))
	posts := store.NewPostStore()
	if !cfg.DisableSeedUsers {
		if err := users.Seed(utils.HashPassword); err != nil {
			utils.Sugar.Fatalf("seed users: %v", err)
		}
	}

	r := routes.SetupRouter(users, posts)

	utils.Logger.Info("starting server", zap.String("port", cfg.AppPort), zap.Bool("mirror", mirror != nil))
	closers = append(closers, closerFunc(utils.SyncLogger))
	if err := utils.GraceServer(":"+cfg.AppPort, r, closers...); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
